package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/licensure/examprep/internal/selfupdate"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update examprep to the latest release",
	Long: "update downloads the latest examprep release from GitHub, verifies it against " +
		"the release checksums and replaces the running binary. Use --check to only report.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		check, _ := cmd.Flags().GetBool("check")
		target, _ := cmd.Flags().GetString("to")

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		u := selfupdate.New(selfupdate.WithTimeout(2 * time.Minute))
		err := runUpdate(ctx, cmd.OutOrStdout(), u, version, target, check)
		if errors.Is(err, fs.ErrPermission) {
			return fmt.Errorf("%w\n\nTry running: sudo examprep update", err)
		}
		return err
	},
}

func init() {
	updateCmd.Flags().Bool("check", false, "Only report whether a newer release exists")
	updateCmd.Flags().String("to", "", "Install this release tag (e.g. v1.4.0) instead of the latest")
}

func runUpdate(ctx context.Context, out io.Writer, u *selfupdate.Updater, current, target string, check bool) error {
	if check {
		rel, err := u.Check(ctx, current)
		switch {
		case errors.Is(err, selfupdate.ErrDevBuild):
			fmt.Fprintln(out, "Development build; no release to compare against.")
			return nil
		case err != nil:
			return err
		case rel.Newer:
			fmt.Fprintf(out, "examprep %s is available (running %s).\n%s\n", rel.Latest, rel.Current, rel.URL)
		default:
			fmt.Fprintf(out, "examprep %s is the latest release.\n", rel.Current)
		}
		return nil
	}

	err := u.Install(ctx, current, target, func(s selfupdate.Step) {
		fmt.Fprintln(out, s.Detail)
	})
	switch {
	case errors.Is(err, selfupdate.ErrDevBuild):
		fmt.Fprintln(out, "Cannot update a development build. Install a release build first.")
		return nil
	case errors.Is(err, selfupdate.ErrAlreadyLatest):
		fmt.Fprintln(out, "Already running the latest version.")
		return nil
	}
	return err
}

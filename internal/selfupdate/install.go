package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bufio"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/mod/semver"
)

const (
	binaryName    = "examprep"
	checksumsFile = "checksums.txt"

	// maxChecksumsSize caps the checksums download; real files are a
	// few hundred bytes.
	maxChecksumsSize = 64 << 10
)

// Step is one progress report from Install.
type Step struct {
	Name   string // check, download, verify, extract, replace, done
	Detail string
}

func hostPlatform() (string, string) {
	return runtime.GOOS, runtime.GOARCH
}

// assetName returns the release archive name for a version and platform,
// e.g. examprep_1.4.0_linux_amd64.tar.gz.
func assetName(version, goos, goarch string) (string, error) {
	switch goarch {
	case "amd64", "arm64":
	default:
		return "", fmt.Errorf("no release build for architecture %s", goarch)
	}
	ext := ".tar.gz"
	switch goos {
	case "linux", "darwin":
	case "windows":
		ext = ".zip"
	default:
		return "", fmt.Errorf("no release build for %s", goos)
	}
	return fmt.Sprintf("%s_%s_%s_%s%s", binaryName, strings.TrimPrefix(version, "v"), goos, goarch, ext), nil
}

// Install replaces the running binary with the release tagged target.
// An empty target means the latest release. Pinning a target older than
// current is allowed; pinning current returns ErrAlreadyLatest.
func (u *Updater) Install(ctx context.Context, current, target string, report func(Step)) error {
	if report == nil {
		report = func(Step) {}
	}
	if !semver.IsValid(current) {
		return ErrDevBuild
	}

	switch {
	case target == "":
		report(Step{Name: "check", Detail: "Checking for the latest release..."})
		rel, err := u.Check(ctx, current)
		if err != nil {
			return err
		}
		if !rel.Newer {
			return ErrAlreadyLatest
		}
		target = rel.Latest
	case !semver.IsValid(target):
		return fmt.Errorf("version %q: %w", target, ErrBadVersion)
	case semver.Compare(target, current) == 0:
		return ErrAlreadyLatest
	}

	asset, err := assetName(target, u.goos, u.goarch)
	if err != nil {
		return err
	}
	exe, err := u.execPath()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	dir := filepath.Dir(exe)
	releaseURL := fmt.Sprintf("%s/%s/%s/releases/download/%s", u.downloadURL, u.owner, u.repo, target)

	report(Step{Name: "download", Detail: fmt.Sprintf("Downloading %s...", asset)})
	archive, sum, err := u.download(ctx, releaseURL+"/"+asset, dir)
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}
	defer func() { _ = os.Remove(archive) }()

	report(Step{Name: "verify", Detail: "Verifying checksum..."})
	want, err := u.expectedSum(ctx, releaseURL+"/"+checksumsFile, asset)
	if err != nil {
		return err
	}
	if !strings.EqualFold(want, sum) {
		return fmt.Errorf("%w for %s: want %s, got %s", ErrChecksum, asset, want, sum)
	}

	report(Step{Name: "extract", Detail: "Unpacking " + binaryName + "..."})
	staged, err := stageBinary(archive, asset, dir)
	if err != nil {
		return fmt.Errorf("extract binary: %w", err)
	}
	defer func() { _ = os.Remove(staged) }()

	report(Step{Name: "replace", Detail: "Replacing " + exe + "..."})
	if err := replaceFile(staged, exe); err != nil {
		return fmt.Errorf("replace binary: %w", err)
	}

	report(Step{Name: "done", Detail: "Updated to " + target})
	return nil
}

func (u *Updater) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := u.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
	return resp, nil
}

// download streams url into a temp file under dir and returns its path
// and hex SHA-256.
func (u *Updater) download(ctx context.Context, url, dir string) (string, string, error) {
	resp, err := u.get(ctx, url)
	if err != nil {
		return "", "", err
	}
	defer func() { _ = resp.Body.Close() }()

	f, err := os.CreateTemp(dir, ".examprep-download-*")
	if err != nil {
		return "", "", err
	}
	h := sha256.New()
	_, err = io.Copy(io.MultiWriter(f, h), resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(f.Name())
		return "", "", err
	}
	return f.Name(), hex.EncodeToString(h.Sum(nil)), nil
}

func (u *Updater) expectedSum(ctx context.Context, url, asset string) (string, error) {
	resp, err := u.get(ctx, url)
	if err != nil {
		return "", fmt.Errorf("download checksums: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	sums, err := parseChecksums(io.LimitReader(resp.Body, maxChecksumsSize))
	if err != nil {
		return "", fmt.Errorf("read checksums: %w", err)
	}
	sum, ok := sums[asset]
	if !ok {
		return "", fmt.Errorf("%w: %s not listed in %s", ErrChecksum, asset, checksumsFile)
	}
	return sum, nil
}

// parseChecksums reads sha256sum output. Binary-mode entries ("hash *name")
// are accepted; anything else that is not two fields is skipped.
func parseChecksums(r io.Reader) (map[string]string, error) {
	sums := make(map[string]string)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) != 2 {
			continue
		}
		sums[strings.TrimPrefix(fields[1], "*")] = strings.ToLower(fields[0])
	}
	return sums, sc.Err()
}

// stageBinary copies the executable out of the archive into a temp file
// under dir, ready to be renamed over the running binary.
func stageBinary(archive, asset, dir string) (string, error) {
	out, err := os.CreateTemp(dir, ".examprep-new-*")
	if err != nil {
		return "", err
	}
	staged := out.Name()

	if strings.HasSuffix(asset, ".zip") {
		err = copyFromZip(archive, binaryName+".exe", out)
	} else {
		err = copyFromTarGz(archive, binaryName, out)
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(staged)
		return "", err
	}
	return staged, nil
}

func copyFromTarGz(archive, name string, w io.Writer) error {
	f, err := os.Open(archive)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("open gzip: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%s not found in archive", name)
		}
		if err != nil {
			return fmt.Errorf("read tar: %w", err)
		}
		if hdr.Typeflag == tar.TypeReg && path.Base(hdr.Name) == name {
			_, err = io.Copy(w, tr)
			return err
		}
	}
}

func copyFromZip(archive, name string, w io.Writer) error {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("open zip: %w", err)
	}
	defer func() { _ = zr.Close() }()

	for _, f := range zr.File {
		if f.FileInfo().IsDir() || path.Base(f.Name) != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		defer func() { _ = rc.Close() }()
		_, err = io.Copy(w, rc)
		return err
	}
	return fmt.Errorf("%s not found in archive", name)
}

// replaceFile renames staged over target, carrying over target's mode.
func replaceFile(staged, target string) error {
	info, err := os.Stat(target)
	if err != nil {
		return err
	}
	if err := os.Chmod(staged, info.Mode().Perm()); err != nil {
		return err
	}
	return os.Rename(staged, target)
}

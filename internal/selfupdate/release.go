// Package selfupdate checks GitHub for newer examprep releases and
// replaces the running binary with a verified release build.
package selfupdate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const (
	defaultOwner = "licensure"
	defaultRepo  = "examprep"

	defaultAPIURL      = "https://api.github.com"
	defaultDownloadURL = "https://github.com"
)

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum verification failed")
	ErrBadVersion    = errors.New("not a semantic version")
)

// Release is the outcome of a version check.
type Release struct {
	Current string
	Latest  string
	URL     string

	// Newer reports whether Latest sorts after Current.
	Newer bool
}

// Updater talks to the GitHub releases API and download host.
type Updater struct {
	owner, repo string
	apiURL      string
	downloadURL string
	client      *http.Client
	execPath    func() (string, error)
	goos        string
	goarch      string
}

type Option func(*Updater)

// WithRepository points the updater at another owner/repo.
func WithRepository(owner, repo string) Option {
	return func(u *Updater) { u.owner, u.repo = owner, repo }
}

// WithAPIURL overrides the GitHub API base URL.
func WithAPIURL(url string) Option {
	return func(u *Updater) { u.apiURL = strings.TrimRight(url, "/") }
}

// WithDownloadURL overrides the host release assets are fetched from.
func WithDownloadURL(url string) Option {
	return func(u *Updater) { u.downloadURL = strings.TrimRight(url, "/") }
}

func WithTimeout(d time.Duration) Option {
	return func(u *Updater) { u.client = &http.Client{Timeout: d} }
}

func withExecPath(fn func() (string, error)) Option {
	return func(u *Updater) { u.execPath = fn }
}

func withPlatform(goos, goarch string) Option {
	return func(u *Updater) { u.goos, u.goarch = goos, goarch }
}

// New returns an Updater for the examprep repository.
func New(opts ...Option) *Updater {
	u := &Updater{
		owner:       defaultOwner,
		repo:        defaultRepo,
		apiURL:      defaultAPIURL,
		downloadURL: defaultDownloadURL,
		client:      &http.Client{Timeout: 30 * time.Second},
		execPath:    os.Executable,
	}
	u.goos, u.goarch = hostPlatform()
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Check compares current against the latest published release. Builds
// without a semantic version (local go builds) return ErrDevBuild.
func (u *Updater) Check(ctx context.Context, current string) (*Release, error) {
	if !semver.IsValid(current) {
		return nil, ErrDevBuild
	}

	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", u.apiURL, u.owner, u.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query latest release: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("query latest release: HTTP %d", resp.StatusCode)
	}

	var body struct {
		TagName string `json:"tag_name"`
		HTMLURL string `json:"html_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}
	if !semver.IsValid(body.TagName) {
		return nil, fmt.Errorf("latest release tag %q: %w", body.TagName, ErrBadVersion)
	}

	return &Release{
		Current: current,
		Latest:  body.TagName,
		URL:     body.HTMLURL,
		Newer:   semver.Compare(body.TagName, current) > 0,
	}, nil
}

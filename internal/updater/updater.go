// Package updater provides online version checking against the Github
// releases of the project.
package updater

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const (
	ghOwner = "rusq"
	ghRepo  = "gptok"

	numReleases = 1
)

var (
	ErrStatus        = errors.New("invalid status code")
	ErrNoVersions    = errors.New("no versions found")
	ErrNoNewReleases = errors.New("no new releases")
)

// Updater checks the project releases feed.
type Updater struct {
	releasesURL string
	cl          *http.Client
}

// Option is the Updater option.
type Option func(*Updater)

// WithURL overrides the releases feed URL.
func WithURL(uri string) Option {
	return func(u *Updater) {
		if uri != "" {
			u.releasesURL = uri
		}
	}
}

// WithClient sets the HTTP client to use.
func WithClient(cl *http.Client) Option {
	return func(u *Updater) {
		if cl != nil {
			u.cl = cl
		}
	}
}

func New(opt ...Option) *Updater {
	u := &Updater{
		releasesURL: fmt.Sprintf("https://api.github.com/repos/%s/%s/releases?per_page=%d", ghOwner, ghRepo, numReleases),
		cl:          http.DefaultClient,
	}
	for _, fn := range opt {
		fn(u)
	}
	return u
}

// Release describes a published release.
type Release struct {
	Version    string
	ReleasedAt time.Time
	Notes      string
	IsStable   bool
}

// IsNewer reports whether the release is newer than the current version.
// A current version that is not a valid semantic version, i.e. a dev
// build, is always older.
func (r Release) IsNewer(current string) bool {
	if !strings.HasPrefix(current, "v") {
		current = "v" + current
	}
	return semver.Compare(r.Version, current) > 0
}

// Latest returns the latest release published on Github.
func (u *Updater) Latest(ctx context.Context) (Release, error) {
	gr, err := u.latestRelease(ctx)
	if err != nil {
		return Release{}, err
	}
	r := Release{
		Version:    gr.TagName,
		ReleasedAt: gr.PublishedAt,
		Notes:      gr.Body,
		IsStable:   !gr.PreRelease,
	}
	if gr.Draft {
		return r, ErrNoNewReleases
	}
	return r, nil
}

type ghReleaseResponse struct {
	TagName     string    `json:"tag_name"`
	PublishedAt time.Time `json:"published_at"`
	Body        string    `json:"body"`
	PreRelease  bool      `json:"prerelease"`
	Draft       bool      `json:"draft"`
}

// latestRelease fetches the latest release from the Github releases feed.
func (u *Updater) latestRelease(ctx context.Context) (*ghReleaseResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.releasesURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := u.cl.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: want 200, got %d", ErrStatus, resp.StatusCode)
	}
	var releases []ghReleaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&releases); err != nil {
		return nil, fmt.Errorf("failed to decode github response: %w", err)
	}
	if len(releases) == 0 {
		return nil, ErrNoVersions
	}
	rel := releases[0]
	if rel.TagName == "" || !semver.IsValid(rel.TagName) {
		return nil, ErrNoVersions
	}
	return &rel, nil
}

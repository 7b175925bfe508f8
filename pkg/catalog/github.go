package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/MystenLabs/suiup/pkg/errors"
	"github.com/MystenLabs/suiup/pkg/logging"
	"github.com/MystenLabs/suiup/pkg/types"
)

const (
	defaultAPIBase = "https://api.github.com"
	userAgent      = "suiup"
	requestTimeout = 30 * time.Second
)

// githubRelease mirrors the fields of the GitHub releases API response
// that suiup consumes.
type githubRelease struct {
	TagName     string        `json:"tag_name"`
	PublishedAt time.Time     `json:"published_at"`
	Assets      []types.Asset `json:"assets"`
}

// GitHub is the production catalog client. It queries the GitHub
// releases API with an optional bearer token (rate-limit avoidance; no
// token is not an error) and keeps an ETag-validated list cache on
// disk so unchanged lists cost one conditional request.
type GitHub struct {
	apiBase string
	token   string
	client  *http.Client
	cache   *listCache
	log     zerolog.Logger
}

// Option configures the GitHub client.
type Option func(*GitHub)

// WithToken sets the bearer token sent on API requests.
func WithToken(token string) Option {
	return func(g *GitHub) { g.token = token }
}

// WithAPIBase overrides the API base URL (tests).
func WithAPIBase(base string) Option {
	return func(g *GitHub) { g.apiBase = base }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(g *GitHub) { g.client = c }
}

// NewGitHub creates a catalog client caching release lists under
// cacheDir.
func NewGitHub(cacheDir string, opts ...Option) *GitHub {
	g := &GitHub{
		apiBase: defaultAPIBase,
		client:  &http.Client{Timeout: requestTimeout},
		cache:   newListCache(cacheDir),
		log:     logging.GetLogger("catalog"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ListReleases implements Client.
func (g *GitHub) ListReleases(ctx context.Context, tool types.ToolID, network *types.Network) ([]types.ReleaseDescriptor, error) {
	repo := tool.Profile().Repo
	url := fmt.Sprintf("%s/repos/%s/releases", g.apiBase, repo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot build release list request")
	}
	g.setHeaders(req)
	if etag, ok := g.cache.etag(repo); ok {
		req.Header.Set("If-None-Match", etag)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrNetworkUnavailable,
			"cannot query releases for %s", repo)
	}
	defer func() { _ = resp.Body.Close() }()

	var raw []githubRelease
	switch {
	case resp.StatusCode == http.StatusNotModified:
		g.log.Debug().Str("repo", repo).Msg("Release list unchanged, using cache")
		cached, ok := g.cache.load(repo)
		if !ok {
			// 304 with no usable cache; refetch unconditionally.
			return g.listUncached(ctx, tool, network)
		}
		raw = cached
	case resp.StatusCode == http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
			return nil, errors.Wrapf(err, errors.ErrNetworkUnavailable,
				"cannot decode release list for %s", repo)
		}
		g.cache.store(repo, raw, resp.Header.Get("ETag"))
	default:
		return nil, errors.Newf(errors.ErrNetworkUnavailable,
			"release list request for %s failed with status %s", repo, resp.Status)
	}

	return g.toDescriptors(tool, network, raw), nil
}

// listUncached refetches without the conditional header. Used when the
// server reports 304 but the local cache has been cleaned.
func (g *GitHub) listUncached(ctx context.Context, tool types.ToolID, network *types.Network) ([]types.ReleaseDescriptor, error) {
	g.cache.invalidate(tool.Profile().Repo)
	return g.ListReleases(ctx, tool, network)
}

// FetchArtifact implements Client.
func (g *GitHub) FetchArtifact(ctx context.Context, rel types.ReleaseDescriptor, tag types.PlatformTag) (*Artifact, error) {
	asset, ok := rel.AssetFor(tag)
	if !ok {
		return nil, errors.Newf(errors.ErrUnsupportedPlatform,
			"no %s artifact published for %s", tag, rel.Tool).
			WithDetail("version", rel.Version)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, asset.URL, nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot build download request")
	}
	g.setHeaders(req)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrNetworkUnavailable,
			"cannot download %s", asset.Name)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, errors.Newf(errors.ErrNetworkUnavailable,
			"download of %s failed with status %s", asset.Name, resp.Status)
	}

	size := resp.ContentLength
	if size <= 0 {
		size = asset.Size
	}
	return &Artifact{Name: asset.Name, Size: size, Body: resp.Body}, nil
}

func (g *GitHub) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", userAgent)
	if g.token != "" {
		req.Header.Set("Authorization", "token "+g.token)
	}
}

// toDescriptors converts raw GitHub releases into descriptors,
// dropping tags that do not parse and applying the network filter.
func (g *GitHub) toDescriptors(tool types.ToolID, network *types.Network, raw []githubRelease) []types.ReleaseDescriptor {
	descriptors := make([]types.ReleaseDescriptor, 0, len(raw))
	for _, r := range raw {
		desc, err := parseRelease(tool, r)
		if err != nil {
			g.log.Debug().Str("tag", r.TagName).Err(err).Msg("Skipping unparseable release tag")
			continue
		}
		if network != nil && (desc.Network == nil || *desc.Network != *network) {
			continue
		}
		descriptors = append(descriptors, desc)
	}
	return descriptors
}

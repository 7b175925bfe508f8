package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// listCache persists the last-seen release list and its ETag per
// repository. A failed cache read or write is never an error; the list
// is simply refetched.
type listCache struct {
	dir string
}

func newListCache(dir string) *listCache {
	return &listCache{dir: dir}
}

func (c *listCache) fileBase(repo string) string {
	return strings.ReplaceAll(repo, "/", "_")
}

func (c *listCache) etagPath(repo string) string {
	return filepath.Join(c.dir, "etag_"+c.fileBase(repo)+".txt")
}

func (c *listCache) listPath(repo string) string {
	return filepath.Join(c.dir, "releases_"+c.fileBase(repo)+".json")
}

func (c *listCache) etag(repo string) (string, bool) {
	data, err := os.ReadFile(c.etagPath(repo))
	if err != nil || len(data) == 0 {
		return "", false
	}
	return strings.TrimSpace(string(data)), true
}

func (c *listCache) load(repo string) ([]githubRelease, bool) {
	data, err := os.ReadFile(c.listPath(repo))
	if err != nil {
		return nil, false
	}
	var releases []githubRelease
	if err := json.Unmarshal(data, &releases); err != nil {
		return nil, false
	}
	return releases, true
}

func (c *listCache) store(repo string, releases []githubRelease, etag string) {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return
	}
	if data, err := json.MarshalIndent(releases, "", "  "); err == nil {
		_ = os.WriteFile(c.listPath(repo), data, 0644)
	}
	if etag != "" {
		_ = os.WriteFile(c.etagPath(repo), []byte(etag), 0644)
	}
}

func (c *listCache) invalidate(repo string) {
	_ = os.Remove(c.etagPath(repo))
	_ = os.Remove(c.listPath(repo))
}

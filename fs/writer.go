// Package fs exports cached pages as markdown files.
package fs

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/natmusissunny/legalrights"
	"gopkg.in/yaml.v3"
)

// URLToPath converts a page URL to a relative file path rooted at the
// host. Pages that differ only by query string get a hash suffix so they
// do not overwrite each other.
//
// Example: https://flk.npc.gov.cn/detail?id=7 → flk.npc.gov.cn/detail-1a2b3c4d.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", legalrights.Errorf(legalrights.EINVALID, "URL has no host: %q", rawURL)
	}

	host := strings.ToLower(u.Hostname())
	p := strings.TrimPrefix(path.Clean("/"+u.Path), "/")
	if p == "" || strings.HasSuffix(u.Path, "/") {
		p = path.Join(p, "index")
	}
	p = strings.TrimSuffix(p, path.Ext(p))

	if u.RawQuery != "" {
		p += fmt.Sprintf("-%08x", uint32(xxhash.Sum64String(u.RawQuery)))
	}

	return path.Join(host, p) + ".md", nil
}

// frontmatter is the YAML header of an exported page.
type frontmatter struct {
	Source  string    `yaml:"source"`
	Title   string    `yaml:"title"`
	Fetched time.Time `yaml:"fetched"`
	Hash    string    `yaml:"hash,omitempty"`
}

// FormatPage formats a page with YAML frontmatter.
func FormatPage(page *legalrights.Page) (string, error) {
	header, err := yaml.Marshal(frontmatter{
		Source:  page.URL,
		Title:   page.Title,
		Fetched: page.FetchedAt.UTC(),
		Hash:    page.ContentHash,
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(page.Content)
	return b.String(), nil
}

// Writer writes pages as markdown files below a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WritePage writes a page to disk and returns the path written.
func (w *Writer) WritePage(ctx context.Context, page *legalrights.Page) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if page.URL == "" {
		return "", legalrights.Errorf(legalrights.EINVALID, "page URL required")
	}

	relPath, err := URLToPath(page.URL)
	if err != nil {
		return "", err
	}
	fullPath := filepath.Join(w.baseDir, filepath.FromSlash(relPath))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", err
	}

	content, err := FormatPage(page)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		return "", err
	}
	return fullPath, nil
}

package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/natmusissunny/legalrights"
)

// Ensure Export implements legalrights.PageWriter at compile time.
var _ legalrights.PageWriter = (*Export)(nil)

// Export writes a complete set of pages with replace-on-commit semantics.
// Pages go to dir.tmp and are moved to dir on Commit, so an interrupted
// export never leaves a half-written directory in place.
type Export struct {
	dir    string
	writer *Writer
	count  int
}

// NewExport creates an export targeting dir.
func NewExport(dir string) *Export {
	dir = filepath.Clean(dir)
	return &Export{
		dir:    dir,
		writer: NewWriter(dir + ".tmp"),
	}
}

// SavePage writes page into the temporary directory.
func (e *Export) SavePage(ctx context.Context, page *legalrights.Page) error {
	if _, err := e.writer.WritePage(ctx, page); err != nil {
		return err
	}
	e.count++
	return nil
}

// Count returns the number of pages saved so far.
func (e *Export) Count() int {
	return e.count
}

// Commit replaces dir with the exported pages.
func (e *Export) Commit() error {
	tmp := e.writer.baseDir
	if err := os.MkdirAll(tmp, 0755); err != nil {
		return err
	}
	if err := os.RemoveAll(e.dir); err != nil {
		return err
	}
	return os.Rename(tmp, e.dir)
}

// Abort discards the exported pages.
func (e *Export) Abort() error {
	return os.RemoveAll(e.writer.baseDir)
}

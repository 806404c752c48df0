// Package export delivers exported document bytes to a destination chosen by
// the caller: a local directory or an S3-compatible bucket.
package export

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/docspace/internal/filex"
)

// Sink stores an exported document under a suggested name and returns the
// location it ended up at.
type Sink interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
}

// DirSink writes exports into a local directory. Existing files are never
// overwritten; a numeric suffix is added instead.
type DirSink struct {
	dir string
}

func NewDirSink(dir string) *DirSink {
	return &DirSink{dir: dir}
}

func (s *DirSink) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir, err := filex.EnsureDir(s.dir)
	if err != nil {
		return "", fmt.Errorf("export dir: %w", err)
	}

	path, err := filex.WriteUnique(dir, filex.SafeName(name, "document.txt"), data)
	if err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

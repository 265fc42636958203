// Package refdata loads the static patent and company reference documents
// and exposes them as an immutable Catalog.
package refdata

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/turtacn/InfringeCheck/pkg/errors"
)

// Source opens a named reference document.  Implementations exist for the
// local filesystem (FileSource) and for MinIO / S3 object storage
// (storage/minio.ObjectSource).
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// FileSource reads documents from a local directory.
type FileSource struct {
	Dir string
}

// NewFileSource returns a FileSource rooted at dir.
func NewFileSource(dir string) FileSource {
	return FileSource{Dir: dir}
}

// Open opens <Dir>/<name>.
func (s FileSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := filepath.Join(s.Dir, name)
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDataSourceUnavailable, "failed to open reference document").
			WithDetail("path=" + path)
	}
	return f, nil
}

//Personal.AI order the ending

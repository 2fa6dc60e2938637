package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path"
	"time"
)

var (
	// ErrNotExist is returned when the named asset does not exist.
	ErrNotExist = errors.New("shell asset does not exist")

	// ErrInvalidName is returned for names that are not relative slash paths.
	ErrInvalidName = errors.New("invalid shell asset name")
)

// Asset is an opened shell file. Callers close Body.
type Asset struct {
	Name        string
	Body        io.ReadCloser
	ContentType string
	Size        int64
	ModTime     time.Time
}

// Source opens shell assets by name.
type Source interface {
	Open(ctx context.Context, name string) (*Asset, error)
}

// SourceFunc is a function adapter for Source.
type SourceFunc func(ctx context.Context, name string) (*Asset, error)

// Open implements Source.
func (f SourceFunc) Open(ctx context.Context, name string) (*Asset, error) {
	return f(ctx, name)
}

// FSSource serves assets from an fs.FS.
type FSSource struct {
	fsys fs.FS
}

// NewFSSource creates a source over fsys.
func NewFSSource(fsys fs.FS) *FSSource {
	return &FSSource{fsys: fsys}
}

// NewDirSource creates a source over a local directory.
func NewDirSource(dir string) *FSSource {
	return NewFSSource(os.DirFS(dir))
}

// Open implements Source.
func (s *FSSource) Open(ctx context.Context, name string) (*Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !fs.ValidPath(name) || name == "." {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	f, err := s.fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotExist, name)
		}
		return nil, fmt.Errorf("open %s: %w", name, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat %s: %w", name, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotExist, name)
	}

	return &Asset{
		Name:        name,
		Body:        f,
		ContentType: ContentType(name),
		Size:        info.Size(),
		ModTime:     info.ModTime(),
	}, nil
}

// ContentType returns the MIME type for name from its extension.
func ContentType(name string) string {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// Package samplefs writes exported response bodies to a directory.
package samplefs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/isre1late/json-samples/internal/core"
	apperrors "github.com/isre1late/json-samples/internal/errors"
	"github.com/spf13/afero"
)

const fileMode os.FileMode = 0o644

var _ core.SampleStore = (*Store)(nil)

// Options configures a Store.
type Options struct {
	// Fs defaults to the OS filesystem.
	Fs afero.Fs
	// Dir must already exist; the store never creates it.
	Dir string
}

// Store writes one file per sample into Dir.
type Store struct {
	fs  afero.Fs
	dir string
}

// New constructs a Store.
func New(opts Options) *Store {
	fsys := opts.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Store{fs: fsys, dir: opts.Dir}
}

// Dir returns the output directory.
func (s *Store) Dir() string {
	return s.dir
}

// Prepare verifies that the output directory exists and is a directory.
func (s *Store) Prepare(_ context.Context) error {
	info, err := s.fs.Stat(s.dir)
	if err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeFilesystem, "output directory %q", s.dir)
	}
	if !info.IsDir() {
		return apperrors.Newf(apperrors.ErrCodeFilesystem, "output path %q is not a directory", s.dir)
	}
	return nil
}

// Write creates or truncates Dir/name and writes body verbatim. The returned
// bool reports whether a file of that name existed before the write.
func (s *Store) Write(ctx context.Context, name, body string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, apperrors.Wrap(err, apperrors.ErrCodeCanceled, "write sample")
	}
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return false, apperrors.Validation("sample name must be a plain file name")
	}

	path := filepath.Join(s.dir, name)
	existed, err := afero.Exists(s.fs, path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, apperrors.Wrapf(err, apperrors.ErrCodeFilesystem, "stat sample %s", name)
	}

	if err = afero.WriteFile(s.fs, path, []byte(body), fileMode); err != nil {
		return existed, apperrors.Wrapf(err, apperrors.ErrCodeFilesystem, "write sample %s", name)
	}
	return existed, nil
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/suparena/datasetstore/errors"
)

const (
	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644
)

// Backend implements backend.Backend by storing each key as a file under a directory.
type Backend struct {
	fs        afero.Fs
	directory string
}

// New creates the directory if it is missing and returns a Backend rooted there.
// A nil fs means the operating system filesystem.
func New(fsys afero.Fs, directory string) (*Backend, error) {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if directory == "" {
		return nil, errors.NewValidationError("directory", "must not be empty")
	}
	if err := fsys.MkdirAll(directory, dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create directory %q: %w", directory, err)
	}
	return &Backend{fs: fsys, directory: directory}, nil
}

// Location returns {directory}/{key}.
func (b *Backend) Location(key string) string {
	return filepath.Join(b.directory, key)
}

// Write creates the parent directory when absent and replaces any existing file.
func (b *Backend) Write(ctx context.Context, key string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := b.Location(key)
	if err := b.fs.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("failed to create directory for %q: %w", path, err)
	}
	if err := afero.WriteFile(b.fs, path, content, filePerm); err != nil {
		return fmt.Errorf("failed to write %q: %w", path, err)
	}
	return nil
}

// Read returns the file content, or a NotFoundError when the file does not exist.
func (b *Backend) Read(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := b.Location(key)
	content, err := afero.ReadFile(b.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("file", path)
		}
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}
	return content, nil
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package local

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suparena/datasetstore/errors"
)

func TestNewCreatesDirectory(t *testing.T) {
	fsys := afero.NewMemMapFs()

	b, err := New(fsys, "test_data")
	require.NoError(t, err)

	ok, err := afero.DirExists(fsys, "test_data")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, filepath.Join("test_data", "users.csv"), b.Location("users.csv"))
}

func TestNewRejectsEmptyDirectory(t *testing.T) {
	_, err := New(afero.NewMemMapFs(), "")
	assert.True(t, errors.IsValidationError(err))
}

func TestNewReportsPermissionFailure(t *testing.T) {
	fsys := afero.NewReadOnlyFs(afero.NewMemMapFs())

	_, err := New(fsys, "data")
	assert.Error(t, err)
}

func TestWriteReadOverwrite(t *testing.T) {
	ctx := context.Background()
	b, err := New(afero.NewMemMapFs(), "data")
	require.NoError(t, err)

	require.NoError(t, b.Write(ctx, "users.json", []byte("first")))
	require.NoError(t, b.Write(ctx, "users.json", []byte("second")))

	content, err := b.Read(ctx, "users.json")
	require.NoError(t, err)
	assert.Equal(t, "second", string(content))
}

func TestWriteCreatesParentDirectories(t *testing.T) {
	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	b, err := New(fsys, "data")
	require.NoError(t, err)

	require.NoError(t, b.Write(ctx, filepath.Join("nested", "users.csv"), []byte("a\n1\n")))

	ok, err := afero.Exists(fsys, filepath.Join("data", "nested", "users.csv"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestReadMissingFile(t *testing.T) {
	b, err := New(afero.NewMemMapFs(), "test_data")
	require.NoError(t, err)

	_, err = b.Read(context.Background(), "missing.json")
	assert.True(t, errors.IsNotFound(err))
	assert.Contains(t, err.Error(), filepath.Join("test_data", "missing.json"))
}

func TestOsFilesystem(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "data")

	b, err := New(nil, dir)
	require.NoError(t, err)

	require.NoError(t, b.Write(ctx, "users.parquet", []byte{0x50, 0x41, 0x52, 0x31}))

	onDisk, err := os.ReadFile(filepath.Join(dir, "users.parquet"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x50, 0x41, 0x52, 0x31}, onDisk)

	_, err = b.Read(ctx, "other.parquet")
	assert.True(t, errors.IsNotFound(err))
}

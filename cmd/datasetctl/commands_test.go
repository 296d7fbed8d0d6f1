package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suparena/datasetstore"
	"github.com/suparena/datasetstore/errors"
)

func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--env-file", ""))
	err := cmd.Execute()
	return out.String(), err
}

func TestSaveAndRetrieveFromYAML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATASETSTORE_LOCAL_DIRECTORY", filepath.Join(dir, "data"))

	input := filepath.Join(dir, "people.yaml")
	require.NoError(t, os.WriteFile(input, []byte("- name: Alice\n  age: 30\n- name: Bob\n  age: 25\n"), 0o644))

	out, err := runCmd(t, "", "save", "people", "--in", input, "--format", "parquet")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 2 records to "+filepath.Join(dir, "data", "people.parquet"))

	out, err = runCmd(t, "", "retrieve", "people", "--format", "parquet")
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []map[string]any{
		{"name": "Alice", "age": float64(30)},
		{"name": "Bob", "age": float64(25)},
	}, got)
}

func TestUpdateFromStdin(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATASETSTORE_LOCAL_DIRECTORY", dir)

	_, err := runCmd(t, `[{"name":"Alice","age":30}]`, "save", "people", "-f", "csv")
	require.NoError(t, err)
	_, err = runCmd(t, `[{"name":"Carol","age":41}]`, "update", "people", "-f", "csv")
	require.NoError(t, err)

	out, err := runCmd(t, "", "retrieve", "people", "-f", "csv")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"Carol","age":"41"}]`, out)
}

func TestRetrieveMissing(t *testing.T) {
	t.Setenv("DATASETSTORE_LOCAL_DIRECTORY", t.TempDir())

	_, err := runCmd(t, "", "retrieve", "missing", "--format", "json")
	assert.True(t, errors.IsNotFound(err))
}

func TestInvalidFormatFlag(t *testing.T) {
	t.Setenv("DATASETSTORE_LOCAL_DIRECTORY", t.TempDir())

	_, err := runCmd(t, "[]", "save", "people", "--format", "invalid")
	assert.True(t, errors.IsInvalidFormat(err))
}

func TestVersion(t *testing.T) {
	out, err := runCmd(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "datasetctl version")
	assert.Contains(t, out, datasetstore.GetVersionInfo().String())
	assert.Contains(t, out, "(commit ")
}

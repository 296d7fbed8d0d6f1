/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mock_test

import (
	"context"
	"testing"

	"github.com/suparena/datasetstore/backend"
	"github.com/suparena/datasetstore/backend/mock"
	"github.com/suparena/datasetstore/errors"
)

var _ backend.Backend = (*mock.Backend)(nil)

func TestMockBackend(t *testing.T) {
	ctx := context.Background()

	t.Run("BasicOperations", func(t *testing.T) {
		m := mock.New("prefix")

		if err := m.Write(ctx, "users.json", []byte(`[]`)); err != nil {
			t.Fatalf("Write failed: %v", err)
		}

		content, err := m.Read(ctx, "users.json")
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if string(content) != `[]` {
			t.Fatalf("Read content mismatch: %q", content)
		}

		if _, ok := m.GetData()["prefix/users.json"]; !ok {
			t.Fatalf("Expected data under prefix/users.json, got %v", m.GetData())
		}
		if m.Writes() != 1 || m.Reads() != 1 {
			t.Fatalf("Unexpected call counts: writes=%d reads=%d", m.Writes(), m.Reads())
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		m := mock.New("")

		_, err := m.Read(ctx, "missing.csv")
		if !errors.IsNotFound(err) {
			t.Fatalf("Expected not found error, got: %v", err)
		}
	})

	t.Run("ErrorSimulation", func(t *testing.T) {
		writeErr := errors.NewBackendUnavailableError("mock", nil)
		readErr := errors.NewBackendUnavailableError("mock", nil)
		m := mock.New("").WithWriteError(writeErr).WithReadError(readErr)

		if err := m.Write(ctx, "a.json", nil); err != writeErr {
			t.Fatalf("Expected write error, got: %v", err)
		}
		if _, err := m.Read(ctx, "a.json"); err != readErr {
			t.Fatalf("Expected read error, got: %v", err)
		}
		if m.Writes() != 1 || m.Reads() != 1 {
			t.Fatalf("Failed calls should still be counted: writes=%d reads=%d", m.Writes(), m.Reads())
		}
	})

	t.Run("Clear", func(t *testing.T) {
		m := mock.New("")
		_ = m.Write(ctx, "a.json", []byte("x"))
		m.Clear()

		if len(m.GetData()) != 0 || m.Writes() != 0 {
			t.Fatal("Clear should remove data and reset counters")
		}
	})
}

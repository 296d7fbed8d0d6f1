/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory implementation of the Backend interface for testing
package mock

import (
	"context"
	"path"
	"sync"

	"github.com/suparena/datasetstore/errors"
)

// Backend is a mock implementation of backend.Backend for testing
type Backend struct {
	mu         sync.RWMutex
	root       string
	data       map[string][]byte
	writeError error
	readError  error
	writes     int
	reads      int
}

// New creates a new mock Backend whose locations are prefixed with root
func New(root string) *Backend {
	return &Backend{
		root: root,
		data: make(map[string][]byte),
	}
}

// WithWriteError makes Write operations return an error
func (m *Backend) WithWriteError(err error) *Backend {
	m.writeError = err
	return m
}

// WithReadError makes Read operations return an error
func (m *Backend) WithReadError(err error) *Backend {
	m.readError = err
	return m
}

// Location joins the root and key with a slash
func (m *Backend) Location(key string) string {
	if m.root == "" {
		return key
	}
	return path.Join(m.root, key)
}

// Write stores a copy of content under key
func (m *Backend) Write(ctx context.Context, key string, content []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writes++
	if m.writeError != nil {
		return m.writeError
	}

	m.data[m.Location(key)] = append([]byte(nil), content...)
	return nil
}

// Read returns a copy of the content stored under key
func (m *Backend) Read(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reads++
	if m.readError != nil {
		return nil, m.readError
	}

	content, exists := m.data[m.Location(key)]
	if !exists {
		return nil, errors.NewNotFoundError("object", m.Location(key))
	}
	return append([]byte(nil), content...), nil
}

// Helper methods for testing

// GetData returns a copy of the stored objects keyed by location
func (m *Backend) GetData() map[string][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string][]byte, len(m.data))
	for k, v := range m.data {
		result[k] = append([]byte(nil), v...)
	}
	return result
}

// Writes returns the number of Write calls, failed ones included
func (m *Backend) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}

// Reads returns the number of Read calls, failed ones included
func (m *Backend) Reads() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reads
}

// Clear removes all data and resets the call counters
func (m *Backend) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string][]byte)
	m.writes = 0
	m.reads = 0
}

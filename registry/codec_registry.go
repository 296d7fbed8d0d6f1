/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"sync"

	"github.com/suparena/datasetstore/codec"
	"github.com/suparena/datasetstore/errors"
	"github.com/suparena/datasetstore/storagemodels"
)

// CodecRegistry maps each format to the codec that serializes it.
type CodecRegistry struct {
	mu     sync.RWMutex
	codecs map[storagemodels.Format]codec.Codec
}

// NewCodecRegistry returns an empty registry.
func NewCodecRegistry() *CodecRegistry {
	return &CodecRegistry{
		codecs: make(map[storagemodels.Format]codec.Codec),
	}
}

// Default returns a registry holding the built-in CSV, Parquet and JSON codecs.
func Default() *CodecRegistry {
	r := NewCodecRegistry()
	r.Register(codec.CSV{})
	r.Register(codec.Parquet{})
	r.Register(codec.JSON{})
	return r
}

// Register adds c under its format.
// It panics if the format is not recognized or a codec is already registered for it,
// to prevent accidental overrides.
func (r *CodecRegistry) Register(c codec.Codec) {
	f := c.Format()
	if !f.Valid() {
		panic(fmt.Sprintf("codec registry: cannot register codec for unrecognized format %v", f))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.codecs[f]; exists {
		panic(fmt.Sprintf("codec registry: codec for format %q already registered", f))
	}
	r.codecs[f] = c
}

// Lookup returns the codec registered for f.
// Unrecognized or unregistered formats yield an InvalidFormatError.
func (r *CodecRegistry) Lookup(f storagemodels.Format) (codec.Codec, error) {
	if !f.Valid() {
		return nil, errors.NewInvalidFormatError(f)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.codecs[f]
	if !ok {
		return nil, errors.NewInvalidFormatError(f)
	}
	return c, nil
}

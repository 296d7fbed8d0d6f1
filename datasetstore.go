/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datasetstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/suparena/datasetstore/backend"
	"github.com/suparena/datasetstore/backend/local"
	"github.com/suparena/datasetstore/backend/s3"
	"github.com/suparena/datasetstore/codec"
	"github.com/suparena/datasetstore/config"
	"github.com/suparena/datasetstore/errors"
	"github.com/suparena/datasetstore/registry"
	"github.com/suparena/datasetstore/storagemodels"
)

// Store saves and retrieves named datasets through one backend for its whole lifetime.
// It holds no mutable state, so a single Store may be shared between goroutines;
// concurrent writes to the same name are not coordinated and the last writer wins.
type Store struct {
	backend backend.Backend
	codecs  *registry.CodecRegistry
	logger  zerolog.Logger
}

// Option customizes a Store.
type Option func(*storeOptions)

type storeOptions struct {
	logger    zerolog.Logger
	fs        afero.Fs
	s3Options []s3.Option
	codecs    *registry.CodecRegistry
}

// WithLogger enables debug events for every operation. Stores are silent by default.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *storeOptions) { o.logger = logger }
}

// WithFs sets the filesystem used by the local backend.
func WithFs(fs afero.Fs) Option {
	return func(o *storeOptions) { o.fs = fs }
}

// WithS3Options passes options through to the object-storage backend.
func WithS3Options(opts ...s3.Option) Option {
	return func(o *storeOptions) { o.s3Options = append(o.s3Options, opts...) }
}

// WithCodecs replaces the built-in codec registry.
func WithCodecs(codecs *registry.CodecRegistry) Option {
	return func(o *storeOptions) { o.codecs = codecs }
}

func applyOptions(opts []Option) storeOptions {
	o := storeOptions{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.codecs == nil {
		o.codecs = registry.Default()
	}
	return o
}

// New binds a Store to the backend described by cfg. A local configuration creates
// its directory, "data" when none is set; a remote one resolves credentials and creates the S3 client, failing
// with a BackendUnavailableError when they cannot be resolved.
func New(ctx context.Context, cfg config.StoreConfig, opts ...Option) (*Store, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := applyOptions(opts)

	var (
		b   backend.Backend
		err error
	)
	if cfg.IsRemote() {
		b, err = s3.New(ctx, cfg.Remote, o.s3Options...)
	} else {
		b, err = local.New(o.fs, cfg.LocalDirectory)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize backend: %w", err)
	}

	return newStore(b, o), nil
}

// NewWithBackend binds a Store to an already constructed backend.
func NewWithBackend(b backend.Backend, opts ...Option) *Store {
	return newStore(b, applyOptions(opts))
}

func newStore(b backend.Backend, o storeOptions) *Store {
	return &Store{
		backend: b,
		codecs:  o.codecs,
		logger:  o.logger.With().Str("component", "datasetstore").Logger(),
	}
}

// Save encodes data in the given format and writes it under name, replacing any
// dataset already stored there. The format is checked before any I/O.
func (s *Store) Save(ctx context.Context, name string, data storagemodels.Dataset, format storagemodels.Format) error {
	c, key, err := s.resolve(name, format)
	if err != nil {
		return err
	}

	content, err := c.Encode(data)
	if err != nil {
		return fmt.Errorf("failed to encode %q as %s: %w", name, format, err)
	}

	if err := s.backend.Write(ctx, key, content); err != nil {
		return err
	}

	s.logger.Debug().
		Str("dataset", name).
		Stringer("format", format).
		Str("location", s.backend.Location(key)).
		Int("records", len(data)).
		Int("bytes", len(content)).
		Msg("dataset saved")
	return nil
}

// Update is an alias of Save: the stored dataset is replaced, never merged.
func (s *Store) Update(ctx context.Context, name string, data storagemodels.Dataset, format storagemodels.Format) error {
	return s.Save(ctx, name, data, format)
}

// Retrieve reads the dataset stored under name and decodes it with the given format.
func (s *Store) Retrieve(ctx context.Context, name string, format storagemodels.Format) (storagemodels.Dataset, error) {
	c, key, err := s.resolve(name, format)
	if err != nil {
		return nil, err
	}

	content, err := s.backend.Read(ctx, key)
	if err != nil {
		return nil, err
	}

	data, err := c.Decode(content)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %q as %s: %w", name, format, err)
	}

	s.logger.Debug().
		Str("dataset", name).
		Stringer("format", format).
		Str("location", s.backend.Location(key)).
		Int("records", len(data)).
		Int("bytes", len(content)).
		Msg("dataset retrieved")
	return data, nil
}

// Key returns the full path or object key a dataset is stored at.
func (s *Store) Key(name string, format storagemodels.Format) (string, error) {
	_, key, err := s.resolve(name, format)
	if err != nil {
		return "", err
	}
	return s.backend.Location(key), nil
}

func (s *Store) resolve(name string, format storagemodels.Format) (codec.Codec, string, error) {
	c, err := s.codecs.Lookup(format)
	if err != nil {
		return nil, "", err
	}
	if strings.TrimSpace(name) == "" {
		return nil, "", errors.NewValidationError("name", "must not be empty")
	}
	return c, name + "." + format.Extension(), nil
}

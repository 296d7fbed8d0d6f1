/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suparena/datasetstore/codec"
	"github.com/suparena/datasetstore/errors"
	"github.com/suparena/datasetstore/storagemodels"
)

type badCodec struct{ codec.JSON }

func (badCodec) Format() storagemodels.Format { return storagemodels.Format(42) }

func TestDefaultRegistry(t *testing.T) {
	r := Default()

	for _, f := range storagemodels.Formats {
		c, err := r.Lookup(f)
		require.NoError(t, err)
		assert.Equal(t, f, c.Format())
	}
}

func TestLookupInvalidFormat(t *testing.T) {
	r := Default()

	_, err := r.Lookup(storagemodels.Format(0))
	assert.True(t, errors.IsInvalidFormat(err))

	_, err = r.Lookup(storagemodels.Format(99))
	assert.True(t, errors.IsInvalidFormat(err))
}

func TestLookupUnregisteredFormat(t *testing.T) {
	r := NewCodecRegistry()
	r.Register(codec.CSV{})

	_, err := r.Lookup(storagemodels.JSON)
	assert.True(t, errors.IsInvalidFormat(err))
}

func TestRegisterPanics(t *testing.T) {
	r := Default()
	assert.Panics(t, func() { r.Register(codec.JSON{}) }, "duplicate registration should panic")
	assert.Panics(t, func() { r.Register(badCodec{}) }, "unrecognized format should panic")
}

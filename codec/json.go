/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/suparena/datasetstore/storagemodels"
)

// JSON stores a dataset as an array of objects. Types, nesting and nulls
// survive a round trip: floats are always written with a fraction or exponent
// (30.0, not 30), so integers decode as int64 and floats as float64.
type JSON struct{}

func (JSON) Format() storagemodels.Format { return storagemodels.JSON }

func (JSON) Encode(data storagemodels.Dataset) ([]byte, error) {
	out := make([]map[string]any, len(data))
	for i, rec := range data {
		out[i] = markFloats(map[string]any(rec)).(map[string]any)
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal dataset: %w", err)
	}
	return b, nil
}

func (JSON) Decode(content []byte) (storagemodels.Dataset, error) {
	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()

	var raw []map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dataset: %w", err)
	}

	data := make(storagemodels.Dataset, len(raw))
	for i, obj := range raw {
		rec := make(storagemodels.Record, len(obj))
		for k, v := range obj {
			rec[k] = normalizeJSON(v)
		}
		data[i] = rec
	}
	return data, nil
}

func normalizeJSON(v any) any {
	switch tv := v.(type) {
	case json.Number:
		return storagemodels.NormalizeValue(tv)
	case map[string]any:
		for k, inner := range tv {
			tv[k] = normalizeJSON(inner)
		}
		return tv
	case []any:
		for i, inner := range tv {
			tv[i] = normalizeJSON(inner)
		}
		return tv
	default:
		return v
	}
}

// markFloats copies v, replacing floats with numbers that keep a fractional
// marker. NaN and infinities become invalid numbers and fail in json.Marshal.
func markFloats(v any) any {
	switch tv := v.(type) {
	case float64:
		return floatNumber(tv)
	case float32:
		return floatNumber(float64(tv))
	case []float64:
		out := make([]any, len(tv))
		for i, f := range tv {
			out[i] = floatNumber(f)
		}
		return out
	case storagemodels.Record:
		return markFloats(map[string]any(tv))
	case map[string]any:
		out := make(map[string]any, len(tv))
		for k, inner := range tv {
			out[k] = markFloats(inner)
		}
		return out
	case []any:
		out := make([]any, len(tv))
		for i, inner := range tv {
			out[i] = markFloats(inner)
		}
		return out
	default:
		return v
	}
}

func floatNumber(f float64) json.Number {
	format := byte('f')
	if abs := math.Abs(f); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	s := strconv.FormatFloat(f, format, -1, 64)
	if !strings.ContainsAny(s, ".eEN") && !strings.Contains(s, "Inf") {
		s += ".0"
	}
	return json.Number(s)
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Record maps field names to scalar values (string, int64, float64, bool or nil).
// JSON-encoded datasets may also carry nested maps and slices.
type Record map[string]any

// Dataset is an ordered sequence of records. Records need not share the same fields.
type Dataset []Record

// Format selects the serialization used for a stored dataset.
// The zero value is not a valid format.
type Format int

const (
	CSV Format = iota + 1
	Columnar
	JSON
)

// Formats lists every recognized format.
var Formats = []Format{CSV, Columnar, JSON}

// Valid reports whether f is one of the recognized formats.
func (f Format) Valid() bool {
	return f >= CSV && f <= JSON
}

func (f Format) String() string {
	switch f {
	case CSV:
		return "csv"
	case Columnar:
		return "columnar"
	case JSON:
		return "json"
	default:
		return "Format(" + strconv.Itoa(int(f)) + ")"
	}
}

// Extension returns the file extension used in storage keys, without the dot.
// It returns "" for unrecognized formats.
func (f Format) Extension() string {
	switch f {
	case CSV:
		return "csv"
	case Columnar:
		return "parquet"
	case JSON:
		return "json"
	default:
		return ""
	}
}

// ParseFormat resolves a format name. "parquet" is accepted as an alias for columnar.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return CSV, true
	case "columnar", "parquet":
		return Columnar, true
	case "json":
		return JSON, true
	default:
		return 0, false
	}
}

// NormalizeValue folds Go numeric kinds onto int64 and float64 so that values
// compare equal after a round trip. Other values are returned unchanged.
func NormalizeValue(v any) any {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case uint:
		return normalizeUint(uint64(n))
	case uint8:
		return int64(n)
	case uint16:
		return int64(n)
	case uint32:
		return int64(n)
	case uint64:
		return normalizeUint(n)
	case float32:
		return float64(n)
	case json.Number:
		// a fraction or exponent marks a float even when the value is integral
		if !strings.ContainsAny(n.String(), ".eE") {
			if i, err := n.Int64(); err == nil {
				return i
			}
		}
		if f, err := n.Float64(); err == nil {
			return f
		}
		return n.String()
	default:
		return v
	}
}

func normalizeUint(n uint64) any {
	if n > math.MaxInt64 {
		return float64(n)
	}
	return int64(n)
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package codec

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/suparena/datasetstore/storagemodels"
)

// Codec converts a dataset to and from the bytes of one serialization format.
type Codec interface {
	Format() storagemodels.Format

	Encode(data storagemodels.Dataset) ([]byte, error)

	Decode(content []byte) (storagemodels.Dataset, error)
}

// columns returns the sorted union of field names across all records.
// Missing fields are padded by the caller, so ragged datasets are accepted.
func columns(data storagemodels.Dataset) []string {
	seen := make(map[string]struct{})
	for _, rec := range data {
		for k := range rec {
			seen[k] = struct{}{}
		}
	}
	cols := make([]string, 0, len(seen))
	for k := range seen {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

// stringify renders a value the way row-oriented formats store it.
func stringify(v any) (string, error) {
	switch tv := storagemodels.NormalizeValue(v).(type) {
	case nil:
		return "", nil
	case string:
		return tv, nil
	case int64:
		return strconv.FormatInt(tv, 10), nil
	case float64:
		return strconv.FormatFloat(tv, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(tv), nil
	case []byte:
		return string(tv), nil
	default:
		// nested values are kept as JSON text
		b, err := json.Marshal(tv)
		if err != nil {
			return "", fmt.Errorf("unsupported value of type %T: %w", v, err)
		}
		return string(b), nil
	}
}

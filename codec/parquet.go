/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"
	"github.com/suparena/datasetstore/storagemodels"
)

// Parquet stores a dataset as a columnar table with one optional column per field.
//
// Column types are inferred from the values: all booleans give BOOLEAN, all
// integers give INT64, a mix of integers and floats gives DOUBLE, anything else
// is stored as a string column with stringified values. Missing fields and nil
// values are written as nulls and left out of the decoded records.
type Parquet struct{}

type columnKind int

const (
	kindNull columnKind = iota
	kindBool
	kindInt
	kindFloat
	kindString
)

const readBatchSize = 128

func (Parquet) Format() storagemodels.Format { return storagemodels.Columnar }

func (Parquet) Encode(data storagemodels.Dataset) ([]byte, error) {
	cols := columns(data)
	if len(cols) == 0 {
		return []byte{}, nil
	}

	kinds := make([]columnKind, len(cols))
	group := make(parquet.Group, len(cols))
	for i, col := range cols {
		kinds[i] = inferKind(data, col)
		group[col] = parquet.Optional(leafFor(kinds[i]))
	}
	schema := parquet.NewSchema("dataset", group)

	rows := make([]parquet.Row, 0, len(data))
	for i, rec := range data {
		row := make(parquet.Row, len(cols))
		for j, col := range cols {
			v, err := columnValue(kinds[j], rec[col])
			if err != nil {
				return nil, fmt.Errorf("record %d field %q: %w", i, col, err)
			}
			row[j] = v.Level(0, definitionLevel(v), j)
		}
		rows = append(rows, row)
	}

	var buf bytes.Buffer
	w := parquet.NewWriter(&buf, schema)
	if _, err := w.WriteRows(rows); err != nil {
		return nil, fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return buf.Bytes(), nil
}

func (Parquet) Decode(content []byte) (storagemodels.Dataset, error) {
	if len(content) == 0 {
		return storagemodels.Dataset{}, nil
	}

	f, err := parquet.OpenFile(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet content: %w", err)
	}

	fields := f.Schema().Fields()
	data := make(storagemodels.Dataset, 0, f.NumRows())
	for _, rg := range f.RowGroups() {
		if err := readRowGroup(rg, fields, &data); err != nil {
			return nil, err
		}
	}
	return data, nil
}

func readRowGroup(rg parquet.RowGroup, fields []parquet.Field, data *storagemodels.Dataset) error {
	rows := rg.Rows()
	defer rows.Close()

	batch := make([]parquet.Row, readBatchSize)
	for {
		n, err := rows.ReadRows(batch)
		for _, row := range batch[:n] {
			rec := make(storagemodels.Record, len(row))
			for _, v := range row {
				if v.IsNull() {
					continue
				}
				col := v.Column()
				if col < 0 || col >= len(fields) {
					return fmt.Errorf("parquet value references unknown column %d", col)
				}
				rec[fields[col].Name()] = fromParquet(v)
			}
			*data = append(*data, rec)
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read parquet rows: %w", err)
		}
	}
}

func inferKind(data storagemodels.Dataset, col string) columnKind {
	kind := kindNull
	for _, rec := range data {
		var k columnKind
		switch storagemodels.NormalizeValue(rec[col]).(type) {
		case nil:
			continue
		case bool:
			k = kindBool
		case int64:
			k = kindInt
		case float64:
			k = kindFloat
		default:
			return kindString
		}
		switch {
		case kind == kindNull || kind == k:
			kind = k
		case (kind == kindInt && k == kindFloat) || (kind == kindFloat && k == kindInt):
			kind = kindFloat
		default:
			return kindString
		}
	}
	if kind == kindNull {
		return kindString
	}
	return kind
}

func leafFor(kind columnKind) parquet.Node {
	switch kind {
	case kindBool:
		return parquet.Leaf(parquet.BooleanType)
	case kindInt:
		return parquet.Int(64)
	case kindFloat:
		return parquet.Leaf(parquet.DoubleType)
	default:
		return parquet.String()
	}
}

func columnValue(kind columnKind, v any) (parquet.Value, error) {
	nv := storagemodels.NormalizeValue(v)
	if nv == nil {
		return parquet.Value{}, nil
	}
	switch kind {
	case kindBool:
		return parquet.BooleanValue(nv.(bool)), nil
	case kindInt:
		return parquet.Int64Value(nv.(int64)), nil
	case kindFloat:
		switch n := nv.(type) {
		case int64:
			return parquet.DoubleValue(float64(n)), nil
		default:
			return parquet.DoubleValue(n.(float64)), nil
		}
	default:
		s, err := stringify(nv)
		if err != nil {
			return parquet.Value{}, err
		}
		return parquet.ByteArrayValue([]byte(s)), nil
	}
}

func definitionLevel(v parquet.Value) int {
	if v.IsNull() {
		return 0
	}
	return 1
}

func fromParquet(v parquet.Value) any {
	switch v.Kind() {
	case parquet.Boolean:
		return v.Boolean()
	case parquet.Int32:
		return int64(v.Int32())
	case parquet.Int64:
		return v.Int64()
	case parquet.Float:
		return float64(v.Float())
	case parquet.Double:
		return v.Double()
	default:
		return string(v.ByteArray())
	}
}

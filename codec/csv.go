/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package codec

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/suparena/datasetstore/storagemodels"
)

// CSV stores a dataset as a header row followed by one row per record.
//
// The header is the sorted union of all field names; a record missing a field
// gets an empty cell. Every value is stringified, so decoded records contain
// only strings and every header column is present in every record.
type CSV struct{}

func (CSV) Format() storagemodels.Format { return storagemodels.CSV }

func (CSV) Encode(data storagemodels.Dataset) ([]byte, error) {
	cols := columns(data)
	if len(cols) == 0 {
		return []byte{}, nil
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := writeRow(w, &buf, cols); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	row := make([]string, len(cols))
	for i, rec := range data {
		for j, col := range cols {
			s, err := stringify(rec[col])
			if err != nil {
				return nil, fmt.Errorf("record %d field %q: %w", i, col, err)
			}
			row[j] = s
		}
		if err := writeRow(w, &buf, row); err != nil {
			return nil, fmt.Errorf("failed to write csv record %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// writeRow writes a lone empty field as "" since a blank line is skipped by readers.
func writeRow(w *csv.Writer, buf *bytes.Buffer, row []string) error {
	if len(row) == 1 && row[0] == "" {
		w.Flush()
		if err := w.Error(); err != nil {
			return err
		}
		_, err := buf.WriteString("\"\"\n")
		return err
	}
	return w.Write(row)
}

func (CSV) Decode(content []byte) (storagemodels.Dataset, error) {
	r := csv.NewReader(bytes.NewReader(content))
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(rows) == 0 {
		return storagemodels.Dataset{}, nil
	}

	header := rows[0]
	data := make(storagemodels.Dataset, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(storagemodels.Record, len(header))
		for j, col := range header {
			rec[col] = row[j]
		}
		data = append(data, rec)
	}
	return data, nil
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/suparena/datasetstore"
	"github.com/suparena/datasetstore/codec"
	"github.com/suparena/datasetstore/errors"
	"github.com/suparena/datasetstore/storagemodels"
	"gopkg.in/yaml.v3"
)

func newWriteCmd(opts *rootOptions, use, short string) *cobra.Command {
	var (
		formatName string
		input      string
	)

	cmd := &cobra.Command{
		Use:   use + " NAME",
		Short: short,
		Long: short + `.

The dataset is read from --in as a JSON array of objects, or as a YAML sequence
of mappings when the file ends in .yaml or .yml. Use "-" to read JSON from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat(formatName)
			if err != nil {
				return err
			}
			data, err := readDataset(cmd.InOrStdin(), input)
			if err != nil {
				return err
			}

			store, err := opts.openStore(cmd)
			if err != nil {
				return err
			}
			write := store.Save
			if use == "update" {
				write = store.Update
			}
			if err := write(cmd.Context(), args[0], data, format); err != nil {
				return err
			}

			return printLocation(cmd, store, args[0], format, len(data))
		},
	}

	cmd.Flags().StringVarP(&formatName, "format", "f", "json", "Storage format: csv, parquet or json")
	cmd.Flags().StringVarP(&input, "in", "i", "-", "Dataset file (.json, .yaml, .yml) or - for stdin")
	return cmd
}

func newRetrieveCmd(opts *rootOptions) *cobra.Command {
	var formatName string

	cmd := &cobra.Command{
		Use:   "retrieve NAME",
		Short: "Print a stored dataset as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat(formatName)
			if err != nil {
				return err
			}
			store, err := opts.openStore(cmd)
			if err != nil {
				return err
			}

			data, err := store.Retrieve(cmd.Context(), args[0], format)
			if err != nil {
				return err
			}
			if data == nil {
				data = storagemodels.Dataset{}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(data)
		},
	}

	cmd.Flags().StringVarP(&formatName, "format", "f", "json", "Storage format: csv, parquet or json")
	return cmd
}

func parseFormat(name string) (storagemodels.Format, error) {
	format, ok := storagemodels.ParseFormat(name)
	if !ok {
		return 0, errors.NewInvalidFormatError(name)
	}
	return format, nil
}

func readDataset(stdin io.Reader, input string) (storagemodels.Dataset, error) {
	var (
		content []byte
		err     error
	)
	if input == "-" {
		content, err = io.ReadAll(stdin)
	} else {
		content, err = os.ReadFile(input)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	switch strings.ToLower(filepath.Ext(input)) {
	case ".yaml", ".yml":
		var records []map[string]any
		if err := yaml.Unmarshal(content, &records); err != nil {
			return nil, fmt.Errorf("failed to parse YAML dataset: %w", err)
		}
		data := make(storagemodels.Dataset, len(records))
		for i, rec := range records {
			data[i] = storagemodels.Record(rec)
		}
		return data, nil
	default:
		return codec.JSON{}.Decode(content)
	}
}

func printLocation(cmd *cobra.Command, store *datasetstore.Store, name string, format storagemodels.Format, records int) error {
	key, err := store.Key(name, format)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %d records to %s\n", records, key)
	return err
}

package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/suparena/datasetstore"
	"github.com/suparena/datasetstore/config"
	"github.com/suparena/datasetstore/logging"
)

type rootOptions struct {
	configPath string
	envFile    string
	verbosity  int
	logger     zerolog.Logger
}

// NewRootCmd builds the datasetctl command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "datasetctl",
		Short: "Save and retrieve datasets on local disk or S3",
		Long: `datasetctl stores named datasets as CSV, Parquet or JSON, either in a local
directory or under a key prefix in an S3 bucket.

The backend comes from --config (YAML) and DATASETSTORE_* environment variables,
for example DATASETSTORE_REMOTE_BUCKET or DATASETSTORE_LOCAL_DIRECTORY.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.logger = logging.Component(logging.New(opts.verbosity), "datasetctl")
			if opts.envFile != "" {
				if err := godotenv.Load(opts.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("failed to load %s: %w", opts.envFile, err)
				}
			}
			opts.logger.Debug().Str("command", cmd.Name()).Msg("Command started")
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML config file (default: environment and built-in defaults)")
	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading configuration")
	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.AddCommand(
		newWriteCmd(opts, "save", "Save a dataset, replacing any stored copy"),
		newWriteCmd(opts, "update", "Update a dataset (same as save: the stored copy is replaced)"),
		newRetrieveCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

func (o *rootOptions) openStore(cmd *cobra.Command) (*datasetstore.Store, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	return datasetstore.New(cmd.Context(), cfg, datasetstore.WithLogger(o.logger))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "datasetctl version %s\n", datasetstore.GetVersionInfo())
		},
	}
}

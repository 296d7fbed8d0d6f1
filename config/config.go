/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	storeerrors "github.com/suparena/datasetstore/errors"
)

// DefaultLocalDirectory is used when neither a directory nor a bucket is configured.
const DefaultLocalDirectory = "data"

// EnvPrefix prefixes environment overrides, e.g. DATASETSTORE_REMOTE_BUCKET.
const EnvPrefix = "DATASETSTORE"

// StoreConfig selects the backend of a DatasetStore. When Remote.Bucket is set the
// store writes to object storage and LocalDirectory is ignored.
type StoreConfig struct {
	LocalDirectory string       `mapstructure:"local_directory"`
	Remote         RemoteConfig `mapstructure:"remote"`
}

// RemoteConfig locates datasets in an S3 bucket.
type RemoteConfig struct {
	Bucket    string `mapstructure:"bucket"`
	KeyPrefix string `mapstructure:"key_prefix"`
	Region    string `mapstructure:"region"`

	// Endpoint and UsePathStyle target S3-compatible stores such as MinIO.
	Endpoint     string `mapstructure:"endpoint"`
	UsePathStyle bool   `mapstructure:"use_path_style"`

	// AccessKey and SecretKey are optional static credentials. When empty the
	// default AWS credential chain is used.
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// Default returns a local configuration rooted at DefaultLocalDirectory.
func Default() StoreConfig {
	return StoreConfig{LocalDirectory: DefaultLocalDirectory}
}

// Local returns a configuration for files under directory.
func Local(directory string) StoreConfig {
	return StoreConfig{LocalDirectory: directory}
}

// Remote returns a configuration for objects in bucket under keyPrefix.
func Remote(bucket, keyPrefix, region string) StoreConfig {
	return StoreConfig{Remote: RemoteConfig{Bucket: bucket, KeyPrefix: keyPrefix, Region: region}}
}

// IsRemote reports whether the object-storage backend is selected.
func (c StoreConfig) IsRemote() bool {
	return c.Remote.Bucket != ""
}

// WithDefaults returns c with an unset local directory replaced by
// DefaultLocalDirectory. Remote configurations are returned unchanged.
func (c StoreConfig) WithDefaults() StoreConfig {
	if !c.IsRemote() && c.LocalDirectory == "" {
		c.LocalDirectory = DefaultLocalDirectory
	}
	return c
}

// Validate checks that the selected backend is fully described.
func (c StoreConfig) Validate() error {
	if c.IsRemote() {
		if c.Remote.Region == "" {
			return storeerrors.NewValidationError("remote.region", "is required when a bucket is configured")
		}
		if (c.Remote.AccessKey == "") != (c.Remote.SecretKey == "") {
			return storeerrors.NewValidationError("remote.access_key", "access and secret keys must be set together")
		}
		return nil
	}
	if strings.TrimSpace(c.LocalDirectory) == "" {
		return storeerrors.NewValidationError("local_directory", "must not be empty")
	}
	return nil
}

// Load reads the configuration from an optional YAML file at path, then applies
// DATASETSTORE_* environment overrides and validates the result.
func Load(path string) (StoreConfig, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults register every key so environment overrides reach Unmarshal
	v.SetDefault("local_directory", DefaultLocalDirectory)
	v.SetDefault("remote.bucket", "")
	v.SetDefault("remote.key_prefix", "")
	v.SetDefault("remote.region", "")
	v.SetDefault("remote.endpoint", "")
	v.SetDefault("remote.use_path_style", false)
	v.SetDefault("remote.access_key", "")
	v.SetDefault("remote.secret_key", "")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) {
				return StoreConfig{}, fmt.Errorf("config file %q not found: %w", path, err)
			}
			return StoreConfig{}, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
	}

	var cfg StoreConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return StoreConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return StoreConfig{}, err
	}
	return cfg, nil
}

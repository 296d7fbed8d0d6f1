/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package s3

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	sdk "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/suparena/datasetstore/config"
	"github.com/suparena/datasetstore/errors"
)

const backendName = "s3"

// ObjectAPI is the subset of the S3 client used by Backend. *s3.Client satisfies it.
type ObjectAPI interface {
	PutObject(ctx context.Context, params *sdk.PutObjectInput, optFns ...func(*sdk.Options)) (*sdk.PutObjectOutput, error)
	GetObject(ctx context.Context, params *sdk.GetObjectInput, optFns ...func(*sdk.Options)) (*sdk.GetObjectOutput, error)
}

// Backend implements backend.Backend by storing each key as an object under a key prefix.
type Backend struct {
	client      ObjectAPI
	credentials aws.CredentialsProvider
	bucket      string
	keyPrefix   string
}

// Option customizes how New builds the backend.
type Option func(*options)

type options struct {
	client      ObjectAPI
	credentials aws.CredentialsProvider
}

// WithClient replaces the S3 client built from the AWS configuration.
func WithClient(client ObjectAPI) Option {
	return func(o *options) { o.client = client }
}

// WithCredentialsProvider overrides both static keys and the default credential chain.
func WithCredentialsProvider(provider aws.CredentialsProvider) Option {
	return func(o *options) { o.credentials = provider }
}

// LoadAWSConfig resolves the AWS configuration for cfg. Static keys take precedence
// over the default credential chain.
func LoadAWSConfig(ctx context.Context, cfg config.RemoteConfig, provider aws.CredentialsProvider) (aws.Config, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	switch {
	case provider != nil:
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(provider))
	case cfg.AccessKey != "":
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return awsCfg, nil
}

// New resolves credentials and creates the S3 client. Credentials that cannot be
// resolved yield a BackendUnavailableError before any data operation is attempted.
func New(ctx context.Context, cfg config.RemoteConfig, opts ...Option) (*Backend, error) {
	if cfg.Bucket == "" {
		return nil, errors.NewValidationError("remote.bucket", "must not be empty")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	awsCfg, err := LoadAWSConfig(ctx, cfg, o.credentials)
	if err != nil {
		return nil, errors.NewBackendUnavailableError(backendName, err)
	}
	if awsCfg.Credentials == nil {
		return nil, errors.NewBackendUnavailableError(backendName, stderrors.New("unable to locate credentials"))
	}

	b := &Backend{
		client:      o.client,
		credentials: awsCfg.Credentials,
		bucket:      cfg.Bucket,
		keyPrefix:   cfg.KeyPrefix,
	}
	if err := b.checkCredentials(ctx); err != nil {
		return nil, err
	}

	if b.client == nil {
		b.client = sdk.NewFromConfig(awsCfg, func(so *sdk.Options) {
			if cfg.Endpoint != "" {
				so.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			so.UsePathStyle = cfg.UsePathStyle
		})
	}
	return b, nil
}

// Location returns {keyPrefix}/{key}.
func (b *Backend) Location(key string) string {
	if b.keyPrefix == "" {
		return key
	}
	return path.Join(b.keyPrefix, key)
}

// Write puts content at the object key, replacing any existing object.
func (b *Backend) Write(ctx context.Context, key string, content []byte) error {
	if err := b.checkCredentials(ctx); err != nil {
		return err
	}

	objectKey := b.Location(key)
	_, err := b.client.PutObject(ctx, &sdk.PutObjectInput{
		Bucket:        aws.String(b.bucket),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(content),
		ContentLength: aws.Int64(int64(len(content))),
	})
	if err != nil {
		return b.classify(err, objectKey, "PutObject")
	}
	return nil
}

// Read gets the object content, or a NotFoundError when the key is missing.
func (b *Backend) Read(ctx context.Context, key string) ([]byte, error) {
	if err := b.checkCredentials(ctx); err != nil {
		return nil, err
	}

	objectKey := b.Location(key)
	out, err := b.client.GetObject(ctx, &sdk.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return nil, b.classify(err, objectKey, "GetObject")
	}
	defer out.Body.Close()

	content, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %q: %w", objectKey, err)
	}
	return content, nil
}

// checkCredentials retrieves credentials through the cached provider so that an
// expired or missing identity is reported as BackendUnavailable on every call.
func (b *Backend) checkCredentials(ctx context.Context) error {
	if _, err := b.credentials.Retrieve(ctx); err != nil {
		return errors.NewBackendUnavailableError(backendName, fmt.Errorf("failed to retrieve credentials: %w", err))
	}
	return nil
}

func (b *Backend) classify(err error, objectKey, op string) error {
	var noSuchKey *types.NoSuchKey
	if stderrors.As(err, &noSuchKey) {
		return errors.NewNotFoundError("object", objectKey)
	}

	var apiErr smithy.APIError
	if stderrors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return errors.NewNotFoundError("object", objectKey)
		case "InvalidAccessKeyId", "SignatureDoesNotMatch", "ExpiredToken", "NoSuchBucket":
			return errors.NewBackendUnavailableError(backendName, err)
		}
	}

	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return errors.NewBackendUnavailableError(backendName, err)
	}

	return fmt.Errorf("%s %q failed: %w", op, objectKey, err)
}

/*
Package backend defines the storage medium used by a DatasetStore.

The Backend interface is deliberately byte-oriented; serialization is the job
of the codec package:

	type Backend interface {
	    Write(ctx context.Context, key string, content []byte) error
	    Read(ctx context.Context, key string) ([]byte, error)
	    Location(key string) string
	}

Implementations:
  - local: files under a directory, through an afero filesystem
  - s3: objects under a key prefix in an S3 (or S3-compatible) bucket
  - mock: in-memory implementation for testing

Writes overwrite silently and there is no locking; concurrent writers to the
same key race and the last one wins.
*/
package backend

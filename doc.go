/*
Package datasetstore persists and retrieves named tabular datasets on the local
filesystem or in S3-compatible object storage, as CSV, Parquet or JSON.

A Store is bound to one backend when it is created and composes two small
pieces for every call: a codec (how records become bytes) and a backend (where
the bytes live). Any format works with any backend.

Basic Usage:

	// Local files under ./data
	store, err := datasetstore.New(ctx, config.Default())

	// Or objects under s3://my-bucket/exports
	store, err := datasetstore.New(ctx, config.Remote("my-bucket", "exports", "us-west-2"))

	data := storagemodels.Dataset{
	    {"name": "Alice", "age": 30},
	    {"name": "Bob", "age": 25},
	}
	err = store.Save(ctx, "people", data, storagemodels.Columnar) // people.parquet
	got, err := store.Retrieve(ctx, "people", storagemodels.Columnar)

Update is an alias of Save: the stored dataset is replaced, never merged.

Round trips:
  - JSON keeps types, nesting and nulls; integers come back as int64.
  - Parquet keeps bool, int64, float64 and string columns; nulls are omitted.
  - CSV stringifies every value; the header is the sorted union of field names
    and missing fields become empty strings.

Failures are reported through the errors package: InvalidFormat before any I/O,
NotFound when nothing is stored under the name, BackendUnavailable when
credentials or connectivity are missing. Nothing is retried.
*/
package datasetstore

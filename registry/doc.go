/*
Package registry manages the codecs available to a DatasetStore.

Each recognized storagemodels.Format is bound to exactly one codec:

	codecs := registry.Default() // CSV, Parquet (columnar) and JSON

	c, err := codecs.Lookup(storagemodels.JSON)
	if errors.IsInvalidFormat(err) {
	    // the selector is not one of the recognized formats
	}

A registry can also be assembled by hand, for instance to swap in a codec with
different encoding options:

	codecs := registry.NewCodecRegistry()
	codecs.Register(myCSV{})

The registry is thread-safe and should be populated during initialization.
*/
package registry

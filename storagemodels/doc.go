/*
Package storagemodels contains the data types shared by the codecs, the backends
and the DatasetStore façade.

A Dataset is an ordered slice of Records; each Record maps a field name to a
scalar value:

	data := storagemodels.Dataset{
	    {"name": "Alice", "age": 30},
	    {"name": "Bob", "age": 25},
	}

Format is a closed enumeration of the supported serializations:

	storagemodels.CSV      // stored as {name}.csv
	storagemodels.Columnar // stored as {name}.parquet
	storagemodels.JSON     // stored as {name}.json

The zero Format and any value outside the enumeration are rejected by every
operation before any I/O happens.
*/
package storagemodels

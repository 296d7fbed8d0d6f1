/*
Package errors provides semantic error types for the datasetstore library.

The package defines the failure classes a caller can act on, each checkable with
the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrNotFound           = errors.New("dataset not found")
	    ErrInvalidFormat      = errors.New("invalid format")
	    ErrBackendUnavailable = errors.New("backend unavailable")
	    ErrInvalidInput       = errors.New("invalid input")
	)

Usage:

	data, err := store.Retrieve(ctx, "users", storagemodels.JSON)
	if err != nil {
	    if errors.IsNotFound(err) {
	        // nothing saved under that name yet
	        return nil, nil
	    }
	    if errors.IsBackendUnavailable(err) {
	        // credentials or connectivity problem, surfaced without retry
	        return nil, err
	    }
	    return nil, err
	}

Errors raised while decoding stored content are not classified; they are
returned wrapped with the format that failed.
*/
package errors

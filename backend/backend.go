/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package backend

import (
	"context"
)

// Backend stores opaque content under a key relative to its configured root.
type Backend interface {
	// Write replaces whatever is stored at key with content.
	Write(ctx context.Context, key string, content []byte) error

	// Read returns the content stored at key, or a NotFoundError.
	Read(ctx context.Context, key string) ([]byte, error)

	// Location returns the full path or object key that key resolves to.
	Location(key string) string
}

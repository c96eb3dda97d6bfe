// Package promo validates promotional codes at order intake against gzipped
// code lists loaded once at start-up, from the local filesystem or S3.
package promo

import "context"

// Validator checks promotional codes. A code passes when it is 8 to 10
// characters long and appears in at least the configured number of loaded
// lists.
type Validator interface {
	Validate(ctx context.Context, code string) error

	// Close releases the loaded lists.
	Close() error
}

// Loader reads one gzipped code list, one code per line, into a Set.
type Loader interface {
	Load(ctx context.Context, path string) (*Set, error)
}

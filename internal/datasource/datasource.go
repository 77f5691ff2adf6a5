// Package datasource defines the minimal contract for byte sources the
// sniffer and loader read from. Implementations live in subpackages
// (file, httpds).
package datasource

import (
	"context"
	"io"
)

// Source yields a readable stream of CSV bytes.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

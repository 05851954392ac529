package rscore

import "github.com/pkg/errors"

// Sentinel errors returned by Codec methods, matching the distilled spec's
// error-kind table. All validation happens before any algebraic work; none
// of these can be produced mid-transform.
var (
	// ErrInvalidShape is returned when n or k is not a power of two, k > n,
	// or k == 0.
	ErrInvalidShape = errors.New("rscore: n and k must be powers of two with 0 < k <= n")

	// ErrFieldTooSmall is returned when n exceeds the field size, 2^16.
	ErrFieldTooSmall = errors.New("rscore: n exceeds the field size (2^16)")

	// ErrInsufficientShards is returned when fewer than k positions are
	// present at reconstruct time.
	ErrInsufficientShards = errors.New("rscore: fewer than k shards present")
)

package shard

import "github.com/pkg/errors"

// Sentinel errors for the shard layer, matching the distilled spec's error
// kind table for operations that cross the byte <-> field-element
// boundary.
var (
	// ErrInsufficientShards is returned by Join when fewer than k shards
	// are present.
	ErrInsufficientShards = errors.New("shard: fewer than k shards present")

	// ErrShardSizeMismatch is returned when the non-nil shards passed to
	// Join do not all share the same byte length, or when the shard slice
	// passed to Join does not have exactly n entries.
	ErrShardSizeMismatch = errors.New("shard: inconsistent shard sizes")
)

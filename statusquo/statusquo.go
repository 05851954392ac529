// Package statusquo wraps a conventional, off-the-shelf GF(2^16)-capable
// Reed-Solomon coder (github.com/klauspost/reedsolomon) for use as the
// "status quo" baseline the distilled spec's benchmark shell compares the
// novel-polynomial-basis core against. The distilled spec explicitly scopes
// a from-scratch baseline coder out of this repository (§1, "out of
// scope... a reference 'status quo' coder over GF(2^16) used only for
// comparison"); this package is that external collaborator, implemented by
// delegating to a real production library rather than hand-rolling a
// second field engine.
package statusquo

import (
	"github.com/klauspost/reedsolomon"
)

// Codec mirrors rscore.Codec's shape (n total shards, k of them data) but
// encodes/decodes through klauspost/reedsolomon instead of the novel
// polynomial basis. Its Split/Join signatures are close
// enough to rscore+shard's that the benchmark shell in cmd/rsbench can
// drive both with the same harness.
type Codec struct {
	enc          reedsolomon.Encoder
	dataShards   int
	parityShards int
}

// New constructs a status-quo codec for k data shards and n-k parity
// shards.
func New(n, k int) (*Codec, error) {
	enc, err := reedsolomon.New(k, n-k)
	if err != nil {
		return nil, err
	}
	return &Codec{enc: enc, dataShards: k, parityShards: n - k}, nil
}

// Split packs payload into equal-length shards the way reedsolomon.Split
// does, then computes parity in place.
func (c *Codec) Split(payload []byte) ([][]byte, error) {
	shards, err := c.enc.Split(payload)
	if err != nil {
		return nil, err
	}
	if err := c.enc.Encode(shards); err != nil {
		return nil, err
	}
	return shards, nil
}

// Join reconstructs payloadLen bytes of the original payload from shards,
// where a nil entry marks a missing shard.
func (c *Codec) Join(shards [][]byte, payloadLen int) ([]byte, error) {
	work := make([][]byte, len(shards))
	copy(work, shards)
	if err := c.enc.Reconstruct(work); err != nil {
		return nil, err
	}

	buf := make([]byte, 0, payloadLen)
	for _, s := range work[:c.dataShards] {
		if len(buf)+len(s) > payloadLen {
			buf = append(buf, s[:payloadLen-len(buf)]...)
			break
		}
		buf = append(buf, s...)
	}
	return buf, nil
}

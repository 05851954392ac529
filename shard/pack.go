// Package shard packs a byte payload into n equal-length shards of field
// elements and unpacks/reconstructs it back, on top of the rscore erasure
// codec. This is the "external collaborator" the distilled spec calls the
// shard layer: length alignment, envelope-free byte<->element packing, and
// (per SPEC_FULL.md §4.9) the element-stripe layout needed once a shard
// holds more than one field element.
package shard

import (
	"encoding/binary"

	"github.com/burdges/rs-ec-perf/rscore"
)

// payloadBytesPerRow returns how many bytes of real payload one pass of the
// core codec carries: k field elements, two bytes each.
func payloadBytesPerRow(c *rscore.Codec) int {
	return c.K * 2
}

// Split packs payload into c.N equal-length byte shards such that any c.K
// of them suffice to reconstruct payload exactly via Join. Payload is
// zero-padded up to a whole number of rows, where each row is one
// independent application of the core codec across a column-striped
// layout (SPEC_FULL.md §4.9): row i, column j holds codeword element j of
// the i-th codec call, and shard j is the concatenation, little-endian, of
// column j across every row.
func Split(c *rscore.Codec, payload []byte) ([][]byte, error) {
	perRow := payloadBytesPerRow(c)
	rows := (len(payload) + perRow - 1) / perRow
	if rows == 0 {
		rows = 1
	}

	shards := make([][]byte, c.N)
	for j := range shards {
		shards[j] = make([]byte, rows*2)
	}

	data := make([]uint16, c.N)
	for row := 0; row < rows; row++ {
		for i := range data {
			data[i] = 0
		}

		start := row * perRow
		end := start + perRow
		if end > len(payload) {
			end = len(payload)
		}
		if start < end {
			packLE(data[:c.K], payload[start:end])
		}

		codeword, err := c.Encode(data)
		if err != nil {
			return nil, err
		}
		for j := 0; j < c.N; j++ {
			binary.LittleEndian.PutUint16(shards[j][row*2:row*2+2], codeword[j])
		}
	}
	return shards, nil
}

// Join reconstructs the first payloadLen bytes of the original payload from
// shards, where a nil entry marks a missing ("optional") shard. It fails
// with ErrInsufficientShards if fewer than c.K shards are present, and
// ErrShardSizeMismatch if the present shards disagree on length or the
// slice does not have exactly c.N entries.
func Join(c *rscore.Codec, shards [][]byte, payloadLen int) ([]byte, error) {
	if len(shards) != c.N {
		return nil, ErrShardSizeMismatch
	}

	rowCount := 0
	present := 0
	for _, s := range shards {
		if s == nil {
			continue
		}
		present++
		if len(s)%2 != 0 {
			return nil, ErrShardSizeMismatch
		}
		if rowCount == 0 {
			rowCount = len(s) / 2
		} else if len(s)/2 != rowCount {
			return nil, ErrShardSizeMismatch
		}
	}
	if present < c.K {
		return nil, ErrInsufficientShards
	}

	erasure := make([]bool, c.N)
	anyErased := false
	for i, s := range shards {
		erasure[i] = s == nil
		anyErased = anyErased || s == nil
	}

	payload := make([]byte, rowCount*payloadBytesPerRow(c))
	codeword := make([]uint16, c.N)
	original := make([]uint16, c.N)

	for row := 0; row < rowCount; row++ {
		for j := 0; j < c.N; j++ {
			if shards[j] == nil {
				codeword[j] = 0
				original[j] = 0
				continue
			}
			v := binary.LittleEndian.Uint16(shards[j][row*2 : row*2+2])
			codeword[j] = v
			original[j] = v
		}

		if anyErased {
			if err := c.Reconstruct(codeword, erasure); err != nil {
				return nil, err
			}
			// DecodeMain zeroes every non-erased position; restore the
			// originally received symbols there before unpacking.
			for j := range codeword {
				if !erasure[j] {
					codeword[j] = original[j]
				}
			}
		}

		unpackLE(payload[row*payloadBytesPerRow(c):(row+1)*payloadBytesPerRow(c)], codeword[:c.K])
	}

	if len(payload) > payloadLen {
		payload = payload[:payloadLen]
	}
	return payload, nil
}

// packLE copies src into dst as little-endian field elements, zero-padding
// any trailing odd byte or short tail.
func packLE(dst []uint16, src []byte) {
	for i := range dst {
		var lo, hi byte
		if 2*i < len(src) {
			lo = src[2*i]
		}
		if 2*i+1 < len(src) {
			hi = src[2*i+1]
		}
		dst[i] = uint16(hi)<<8 | uint16(lo)
	}
}

// unpackLE writes src's field elements into dst as little-endian bytes.
// dst must have length 2*len(src).
func unpackLE(dst []byte, src []uint16) {
	for i, v := range src {
		binary.LittleEndian.PutUint16(dst[2*i:2*i+2], v)
	}
}

package shard

import (
	"bytes"
	"testing"

	"github.com/burdges/rs-ec-perf/rscore"
)

// TestScenarioC is the distilled spec's concrete scenario C: n=32, k=4,
// payload is 4 bytes; drop any four of the resulting 32 shards and
// reconstruct exactly.
func TestScenarioC(t *testing.T) {
	c, err := rscore.NewCodec(32, 4)
	if err != nil {
		t.Fatal(err)
	}
	payload := []byte{0x00, 0x01, 0x02, 0x03}

	shards, err := Split(c, payload)
	if err != nil {
		t.Fatal(err)
	}
	if len(shards) != 32 {
		t.Fatalf("got %d shards, want 32", len(shards))
	}

	received := make([][]byte, len(shards))
	copy(received, shards)
	for _, drop := range []int{1, 5, 17, 31} {
		received[drop] = nil
	}

	out, err := Join(c, received, len(payload))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, payload) {
		t.Fatalf("recovered payload = %v, want %v", out, payload)
	}
}

func TestSplitJoinRoundTripLargePayload(t *testing.T) {
	c, err := rscore.NewCodec(16, 4)
	if err != nil {
		t.Fatal(err)
	}
	// Large enough to need several rows: k=4 carries 8 bytes/row.
	payload := make([]byte, 8*5+3)
	for i := range payload {
		payload[i] = byte(i * 37)
	}

	shards, err := Split(c, payload)
	if err != nil {
		t.Fatal(err)
	}

	received := make([][]byte, len(shards))
	copy(received, shards)
	// Erase up to n-k = 12 shards.
	for _, drop := range []int{0, 2, 3, 6, 9, 10, 11, 12, 13, 14, 15} {
		received[drop] = nil
	}

	out, err := Join(c, received, len(payload))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, payload) {
		t.Fatalf("recovered payload mismatch:\n got %v\nwant %v", out, payload)
	}
}

func TestJoinNoErasuresIsIdentity(t *testing.T) {
	c, err := rscore.NewCodec(8, 2)
	if err != nil {
		t.Fatal(err)
	}
	payload := []byte{1, 2, 3}
	shards, err := Split(c, payload)
	if err != nil {
		t.Fatal(err)
	}
	out, err := Join(c, shards, len(payload))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, payload) {
		t.Fatalf("got %v, want %v", out, payload)
	}
}

// TestJoinInsufficientShards is scenario F at the shard layer: fewer than
// k shards present must fail with ErrInsufficientShards and must not
// allocate a result.
func TestJoinInsufficientShards(t *testing.T) {
	c, err := rscore.NewCodec(32, 4)
	if err != nil {
		t.Fatal(err)
	}
	shards, err := Split(c, []byte{1, 2, 3, 4})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 29; i++ { // leave only 3 < k=4
		shards[i] = nil
	}

	out, err := Join(c, shards, 4)
	if err != ErrInsufficientShards {
		t.Fatalf("got err=%v, want ErrInsufficientShards", err)
	}
	if out != nil {
		t.Fatalf("got non-nil output %v on failure", out)
	}
}

func TestJoinShardSizeMismatch(t *testing.T) {
	c, err := rscore.NewCodec(8, 4)
	if err != nil {
		t.Fatal(err)
	}
	shards, err := Split(c, []byte{1, 2, 3, 4, 5, 6, 7, 8})
	if err != nil {
		t.Fatal(err)
	}
	shards[0] = shards[0][:1] // odd length, not a valid element count

	if _, err := Join(c, shards, 8); err != ErrShardSizeMismatch {
		t.Fatalf("got err=%v, want ErrShardSizeMismatch", err)
	}
}

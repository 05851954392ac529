// Command rsbench compares the novel-polynomial-basis core
// (github.com/burdges/rs-ec-perf/rscore + .../shard) against the status-quo
// baseline (github.com/burdges/rs-ec-perf/statusquo, a thin wrapper around
// github.com/klauspost/reedsolomon) across a set of shapes and erasure
// patterns, logs the timings, and updates counters in the stats package the
// way the teacher's tunnel binaries update kcp.Snmp.
package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/klauspost/cpuid/v2"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/burdges/rs-ec-perf/rscore"
	"github.com/burdges/rs-ec-perf/shard"
	"github.com/burdges/rs-ec-perf/statusquo"
	"github.com/burdges/rs-ec-perf/stats"
)

// shape is one (n, k, payload size) benchmark case.
type shape struct {
	N, K       int
	PayloadLen int
}

var defaultShapes = []shape{
	{N: 8, K: 2, PayloadLen: 1 << 10},
	{N: 16, K: 4, PayloadLen: 1 << 14},
	{N: 32, K: 4, PayloadLen: 1 << 16},
	{N: 32, K: 16, PayloadLen: 1 << 16},
	{N: 64, K: 48, PayloadLen: 1 << 18},
}

func main() {
	app := cli.NewApp()
	app.Name = "rsbench"
	app.Usage = "benchmark the novel-polynomial-basis codec against the status-quo baseline"
	app.Flags = []cli.Flag{
		cli.IntFlag{Name: "repeat, r", Value: 3, Usage: "number of timed repetitions per shape"},
		cli.StringFlag{Name: "csv", Usage: "optional CSV file to append per-shape timings to"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	repeat := c.Int("repeat")
	if repeat <= 0 {
		repeat = 1
	}

	log.Printf("host: %s, %d physical cores, AVX2=%v AVX512F=%v",
		cpuid.CPU.BrandName, cpuid.CPU.PhysicalCores,
		cpuid.CPU.Supports(cpuid.AVX2), cpuid.CPU.Supports(cpuid.AVX512F))

	var csvFile *os.File
	if path := c.String("csv"); path != "" {
		f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			return errors.WithStack(err)
		}
		defer f.Close()
		csvFile = f
		if stat, _ := f.Stat(); stat != nil && stat.Size() == 0 {
			fmt.Fprintln(csvFile, "codec,n,k,payload,erased,ns_per_encode,ns_per_decode")
		}
	}

	for _, s := range defaultShapes {
		if err := benchShape(s, repeat, csvFile); err != nil {
			return err
		}
	}
	return nil
}

func benchShape(s shape, repeat int, csvFile *os.File) error {
	payload := make([]byte, s.PayloadLen)
	rand.New(rand.NewSource(int64(s.N*100003 + s.K))).Read(payload)

	erased := s.N - s.K // erase the maximum tolerable number of shards

	if err := benchNovel(s, payload, erased, repeat, csvFile); err != nil {
		return err
	}
	return benchStatusQuo(s, payload, erased, repeat, csvFile)
}

func benchNovel(s shape, payload []byte, erased, repeat int, csvFile *os.File) error {
	codec, err := rscore.NewCodec(s.N, s.K)
	if err != nil {
		return errors.WithStack(err)
	}

	var encodeTotal, decodeTotal time.Duration
	for i := 0; i < repeat; i++ {
		start := time.Now()
		shards, err := shard.Split(codec, payload)
		if err != nil {
			return errors.WithStack(err)
		}
		encodeTotal += time.Since(start)
		stats.DefaultCodec.AddEncoded(uint64(len(shards)))

		received := make([][]byte, len(shards))
		copy(received, shards)
		dropShards(received, erased)
		stats.DefaultCodec.AddErased(uint64(erased))

		start = time.Now()
		out, err := shard.Join(codec, received, len(payload))
		if err != nil {
			return errors.WithStack(err)
		}
		decodeTotal += time.Since(start)
		stats.DefaultCodec.AddDecoded(uint64(len(shards)))
		stats.DefaultCodec.AddReconstruct(1)
		stats.DefaultCodec.AddHealed(uint64(erased))

		if len(out) != len(payload) {
			stats.DefaultCodec.AddError(1)
			return errors.Errorf("novel: recovered length mismatch n=%d k=%d", s.N, s.K)
		}
	}

	report("novel", s, erased, encodeTotal/time.Duration(repeat), decodeTotal/time.Duration(repeat), csvFile)
	return nil
}

func benchStatusQuo(s shape, payload []byte, erased, repeat int, csvFile *os.File) error {
	codec, err := statusquo.New(s.N, s.K)
	if err != nil {
		return errors.WithStack(err)
	}

	var encodeTotal, decodeTotal time.Duration
	for i := 0; i < repeat; i++ {
		start := time.Now()
		shards, err := codec.Split(payload)
		if err != nil {
			return errors.WithStack(err)
		}
		encodeTotal += time.Since(start)

		received := make([][]byte, len(shards))
		copy(received, shards)
		dropShards(received, erased)

		start = time.Now()
		out, err := codec.Join(received, len(payload))
		if err != nil {
			return errors.WithStack(err)
		}
		decodeTotal += time.Since(start)

		if len(out) != len(payload) {
			return errors.Errorf("statusquo: recovered length mismatch n=%d k=%d", s.N, s.K)
		}
	}

	report("statusquo", s, erased, encodeTotal/time.Duration(repeat), decodeTotal/time.Duration(repeat), csvFile)
	return nil
}

func dropShards(shards [][]byte, count int) {
	for i := 0; i < count && i < len(shards); i++ {
		shards[i] = nil
	}
}

func report(codecName string, s shape, erased int, encode, decode time.Duration, csvFile *os.File) {
	log.Printf("%-9s n=%-3d k=%-3d payload=%-8d erased=%-3d encode=%-10s decode=%-10s",
		codecName, s.N, s.K, s.PayloadLen, erased, encode, decode)
	if csvFile != nil {
		fmt.Fprintf(csvFile, "%s,%d,%d,%d,%d,%d,%d\n",
			codecName, s.N, s.K, s.PayloadLen, erased, encode.Nanoseconds(), decode.Nanoseconds())
	}
}

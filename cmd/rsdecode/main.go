// Command rsdecode reconstructs a file from a (possibly incomplete)
// directory of shards previously written by rsencode.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/burdges/rs-ec-perf/rscore"
	"github.com/burdges/rs-ec-perf/shard"
)

// Meta mirrors rsencode's Meta; kept as a separate type so the two
// commands don't need to share an internal package for one small struct.
type Meta struct {
	DataShards  int `json:"datashards"`
	TotalShards int `json:"totalshards"`
	Length      int `json:"length"`
}

func main() {
	app := cli.NewApp()
	app.Name = "rsdecode"
	app.Usage = "reconstruct a file from erasure-coded shards"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "shards", Usage: "directory containing shard-NNNNN.bin and meta.json"},
		cli.StringFlag{Name: "out", Usage: "output file to write the reconstructed payload to"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	shardDir := c.String("shards")
	out := c.String("out")
	if shardDir == "" || out == "" {
		return errors.New("rsdecode: --shards and --out are required")
	}

	metaFile, err := os.Open(filepath.Join(shardDir, "meta.json"))
	if err != nil {
		return errors.WithStack(err)
	}
	var meta Meta
	err = json.NewDecoder(metaFile).Decode(&meta)
	metaFile.Close()
	if err != nil {
		return errors.WithStack(err)
	}

	codec, err := rscore.NewCodec(meta.TotalShards, meta.DataShards)
	if err != nil {
		return errors.WithStack(err)
	}

	shards := make([][]byte, meta.TotalShards)
	present := 0
	for i := range shards {
		name := filepath.Join(shardDir, fmt.Sprintf("shard-%05d.bin", i))
		data, err := os.ReadFile(name)
		if err != nil {
			continue // missing shard: leave nil, an "optional shard" per the spec
		}
		shards[i] = data
		present++
	}

	payload, err := shard.Join(codec, shards, meta.Length)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := os.WriteFile(out, payload, 0o644); err != nil {
		return errors.WithStack(err)
	}

	log.Printf("reconstructed %d bytes from %d/%d shards -> %s", len(payload), present, meta.TotalShards, out)
	return nil
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/corvid-engine/corvid/pkg/engine"
	"github.com/corvid-engine/corvid/pkg/engine/uci"
	"github.com/corvid-engine/corvid/pkg/search"
	"github.com/seekerror/logw"
)

var (
	depth = flag.Uint("depth", 0, "Search depth limit (zero if time-controlled only)")
	hash  = flag.Uint("hash", 64, "Transposition table size in MB (zero to disable)")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: corvid [options]

CORVID is a UCI chess engine.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	var s search.Negamax
	e := engine.New(ctx, "corvid", "corvid-engine", s, engine.WithOptions(engine.Options{
		Depth: *depth,
		Hash:  *hash,
	}))

	in := engine.ReadStdinLines(ctx)
	switch <-in {
	case uci.ProtocolName:
		driver, out := uci.NewDriver(ctx, e, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	default:
		flag.Usage()
		logw.Exitf(ctx, "Protocol not supported")
	}
}

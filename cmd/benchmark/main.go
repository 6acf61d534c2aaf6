package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/SlavaShishkanu/Order-book-test-task/engine"
	"github.com/SlavaShishkanu/Order-book-test-task/metrics"
	"github.com/SlavaShishkanu/Order-book-test-task/orderbook"
	"github.com/SlavaShishkanu/Order-book-test-task/protocol"
)

const midPrice = 50000

func main() {
	var (
		commands   = flag.Int("commands", 1_000_000, "number of generated commands")
		levels     = flag.Int("levels", 200, "price levels on each side of the mid price")
		index      = flag.String("index", "rbtree", "price tree: rbtree or btree")
		cpuprofile = flag.String("cpuprofile", "", "write a CPU profile to this file")
		seed       = flag.Int64("seed", 1, "random seed of the command stream")
	)
	flag.Parse()

	treeType, err := orderbook.ParsePriceTreeType(*index)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	input := generate(rand.New(rand.NewSource(*seed)), *commands, *levels)

	fmt.Println("=== Order book benchmark ===")
	fmt.Printf("Index:     %v\n", treeType)
	fmt.Printf("Commands:  %d\n", *commands)
	fmt.Printf("Levels:    %d per side\n\n", *levels)

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	book := orderbook.NewOrderBookWithType(treeType)
	eng := engine.NewEngine(book, protocol.NewSink(io.Discard), metrics.New(zerolog.Nop()), zerolog.Nop())

	start := time.Now()
	stats, err := eng.Run(context.Background(), strings.NewReader(input))
	elapsed := time.Since(start)
	if err != nil {
		fmt.Printf("Run stopped early: %v\n", err)
	}

	fmt.Println("=== Results ===")
	fmt.Printf("Elapsed:     %v\n", elapsed)
	fmt.Printf("Commands:    %d (%d updates, %d queries, %d orders)\n",
		stats.Commands, stats.Updates, stats.Queries, stats.Orders)
	fmt.Printf("Throughput:  %.0f commands/sec\n", float64(stats.Commands)/elapsed.Seconds())
	fmt.Printf("Latency:     %.3f μs/command\n", elapsed.Seconds()*1e6/float64(max(stats.Commands, 1)))
	fmt.Printf("Consumed:    %d\n", stats.Consumed)

	fmt.Println("\n=== Book ===")
	fmt.Printf("Levels:      %d\n", book.Size())
	fmt.Printf("Best bid:    %v\n", book.BestBid())
	fmt.Printf("Best ask:    %v\n", book.BestAsk())
}

// generate builds a command stream around midPrice. Orders are kept small
// relative to update sizes so the run rarely hits a liquidity error.
func generate(r *rand.Rand, n, levels int) string {
	var sb strings.Builder
	sb.Grow(n * 16)
	for i := 1; i <= levels; i++ {
		fmt.Fprintf(&sb, "u,%d,%d,bid\n", midPrice-i, 1000)
		fmt.Fprintf(&sb, "u,%d,%d,ask\n", midPrice+i, 1000)
	}
	for i := 0; i < n; i++ {
		offset := int64(r.Intn(levels) + 1)
		switch k := r.Intn(10); {
		case k < 6:
			if r.Intn(2) == 0 {
				fmt.Fprintf(&sb, "u,%d,%d,bid\n", midPrice-offset, r.Intn(1000)+100)
			} else {
				fmt.Fprintf(&sb, "u,%d,%d,ask\n", midPrice+offset, r.Intn(1000)+100)
			}
		case k == 6:
			sb.WriteString("q,best_bid\n")
		case k == 7:
			sb.WriteString("q,best_ask\n")
		case k == 8:
			fmt.Fprintf(&sb, "q,size,%d\n", midPrice+offset-int64(levels/2))
		default:
			if r.Intn(2) == 0 {
				fmt.Fprintf(&sb, "o,buy,%d\n", r.Intn(50)+1)
			} else {
				fmt.Fprintf(&sb, "o,sell,%d\n", r.Intn(50)+1)
			}
		}
	}
	return sb.String()
}

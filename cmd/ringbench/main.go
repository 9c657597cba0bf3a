// Command ringbench drives the seqlock SPMC ring buffer with a pool of
// submitter goroutines feeding an intake queue, a single goroutine
// draining that queue into the ring's WriteHandle, and a configurable
// set of reader goroutines, then reports what each reader actually
// saw. It exercises the core package end-to-end as a runnable program;
// the library itself has no go test -bench targets.
package main

import (
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/spf13/pflag"
	"github.com/valyala/fastrand"

	ringbuffer "github.com/aradilov/seqring"
	"github.com/aradilov/seqring/internal/intake"
)

func main() {
	var (
		slots      = pflag.IntP("slots", "n", 256, "ring slot count")
		readers    = pflag.IntP("readers", "r", 4, "number of reader goroutines")
		shared     = pflag.Bool("shared", true, "readers cooperate over one SharedReader instead of each getting an independent clone")
		count      = pflag.IntP("count", "c", 10_000, "messages to publish")
		submitters = pflag.IntP("submitters", "s", 3, "goroutines feeding the intake queue ahead of the single writer")
		jitter     = pflag.Bool("jitter", true, "jitter the writer's drain pacing with a fast PRNG")
	)
	pflag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	b := ringbuffer.NewBuffer[[8]byte](*slots)

	w, err := b.TryAcquireWriter()
	if err != nil {
		logger.Error("could not acquire writer claim on a fresh buffer", "err", err)
		os.Exit(1)
	}
	logger.Info("writer claim acquired", "slots", *slots, "readers", *readers, "shared", *shared)

	// Many submitter goroutines hand payloads to an intake queue;
	// the writer claim holder below is the sole drainer, decoupling
	// "who wants to publish" from the ring's single-writer model.
	in := intake.NewQueue[[8]byte](1 << 16)

	var sg sync.WaitGroup
	sg.Add(*submitters)
	perSubmitter := *count / *submitters
	for s := 0; s < *submitters; s++ {
		start := s * perSubmitter
		end := start + perSubmitter
		if s == *submitters-1 {
			end = *count
		}
		go func(from, to int) {
			defer sg.Done()
			for i := from; i < to; i++ {
				payload := [8]byte{byte(i), byte(i >> 8), byte(i >> 16), byte(i >> 24)}
				for !in.Push(payload) {
					time.Sleep(time.Microsecond)
				}
			}
		}(start, end)
	}

	var root *ringbuffer.SharedReader[[8]byte]
	if *shared {
		root = b.Reader()
	}

	type result struct {
		popped, empty int64
	}
	results := make([]result, *readers)

	var wg sync.WaitGroup
	wg.Add(*readers)
	stop := make(chan struct{})
	for i := 0; i < *readers; i++ {
		var r *ringbuffer.SharedReader[[8]byte]
		if *shared {
			r = root
		} else {
			r = b.Reader()
		}
		go func(idx int) {
			defer wg.Done()
			var popped, empty int64
			for {
				select {
				case <-stop:
					results[idx] = result{popped: popped, empty: empty}
					return
				default:
					if _, ok := r.Pop(); ok {
						popped++
					} else {
						empty++
					}
				}
			}
		}(i)
	}

	var rng fastrand.RNG
	for published := 0; published < *count; {
		payload, ok := in.Next()
		if !ok {
			time.Sleep(time.Microsecond)
			continue
		}
		w.Publish(payload)
		in.Release()
		published++
		if *jitter && rng.Uint32n(100) < 5 {
			time.Sleep(time.Microsecond)
		}
	}
	sg.Wait()
	close(stop)
	wg.Wait()
	w.Release()

	var totalPopped, totalEmpty int64
	for i, r := range results {
		totalPopped += r.popped
		totalEmpty += r.empty
		logger.Info("reader finished", "reader", i, "popped", r.popped, "empty", r.empty)
	}

	stats := in.SnapshotStats()
	logger.Info("run complete",
		"published", *count,
		"total_popped", totalPopped,
		"total_empty", totalEmpty,
		"global_version", b.GlobalVersion(),
		"intake_push_rejected", stats.PushRejected,
	)
}

// stringspace-bench drives concurrent load against a running
// stringspace-server and reports latency statistics per operation, in the
// spirit of the teacher's own benchmark tooling but talking to the wire
// protocol directly instead of shelling out to an external harness: a
// networked daemon is exercised through its own client, not through a
// subprocess.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"sort"
	"sync"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/stringspace/internal/wireclient"
)

// sample corpus used to generate queries and seed data.
var words = []string{
	"ssh", "sshfs", "ssl", "ssd", "sudo", "systemctl", "strace",
	"grep", "git", "golang", "google", "gopher", "gradle",
	"docker", "dockerfile", "debian", "dpkg",
	"python", "pip", "postgres", "perl",
	"kubernetes", "kubectl", "kafka",
}

// result holds one operation's recorded latencies, in nanoseconds.
type result struct {
	op        string
	latencies []time.Duration
}

func (r *result) summary() (mean, min, max time.Duration) {
	if len(r.latencies) == 0 {
		return 0, 0, 0
	}

	sorted := append([]time.Duration(nil), r.latencies...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var total time.Duration

	for _, d := range sorted {
		total += d
	}

	return total / time.Duration(len(sorted)), sorted[0], sorted[len(sorted)-1]
}

func main() {
	addr := flag.String("addr", "127.0.0.1:9315", "Server address")
	concurrency := flag.Int("concurrency", 8, "Number of concurrent client connections")
	requests := flag.Int("requests", 1000, "Total requests per worker")
	seed := flag.Int("seed-words", 500, "Number of words to insert before benchmarking")

	flag.Parse()

	if err := run(*addr, *concurrency, *requests, *seed); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(addr string, concurrency, requests, seedWords int) error {
	seedClient, err := wireclient.Dial(addr, 5*time.Second)
	if err != nil {
		return fmt.Errorf("stringspace-bench: connecting to seed: %w", err)
	}

	if err := seedData(seedClient, seedWords); err != nil {
		_ = seedClient.Close()
		return err
	}

	_ = seedClient.Close()

	ops := []string{"prefix", "substring", "similar", "fuzzy", "best-completions"}

	results := make([]*result, len(ops))
	for i, op := range ops {
		results[i] = &result{op: op}
	}

	var wg sync.WaitGroup

	var mu sync.Mutex

	for w := 0; w < concurrency; w++ {
		wg.Add(1)

		go func(worker int) {
			defer wg.Done()

			rng := rand.New(rand.NewSource(int64(worker) + 1)) //nolint:gosec // benchmark load, not cryptographic

			c, err := wireclient.Dial(addr, 5*time.Second)
			if err != nil {
				fmt.Fprintln(os.Stderr, "worker", worker, "dial error:", err)
				return
			}

			defer func() { _ = c.Close() }()

			for n := 0; n < requests; n++ {
				opIdx := rng.Intn(len(ops))
				query := words[rng.Intn(len(words))][:1+rng.Intn(3)]

				start := time.Now()

				var opErr error

				switch ops[opIdx] {
				case "prefix":
					_, opErr = c.Prefix(query)
				case "substring":
					_, opErr = c.Substring(query)
				case "similar":
					_, opErr = c.Similar(query, 0.7)
				case "fuzzy":
					_, opErr = c.FuzzySubsequence(query)
				case "best-completions":
					_, opErr = c.BestCompletions(query, 15)
				}

				elapsed := time.Since(start)

				if opErr != nil {
					continue
				}

				mu.Lock()
				results[opIdx].latencies = append(results[opIdx].latencies, elapsed)
				mu.Unlock()
			}
		}(w)
	}

	wg.Wait()

	fmt.Printf("%-18s %8s %10s %10s %10s\n", "operation", "count", "mean", "min", "max")

	for _, r := range results {
		mean, min, max := r.summary()
		fmt.Printf("%-18s %8d %10s %10s %10s\n", r.op, len(r.latencies), mean, min, max)
	}

	return nil
}

// seedData inserts up to n generated words so queries have something to
// match against.
func seedData(c *wireclient.Client, n int) error {
	batch := make([]string, 0, n)

	rng := rand.New(rand.NewSource(42)) //nolint:gosec // deterministic seed data, not cryptographic

	for len(batch) < n {
		base := words[rng.Intn(len(words))]
		suffix := rng.Intn(10000)
		batch = append(batch, fmt.Sprintf("%s%d", base, suffix))
	}

	const chunkSize = 200

	for i := 0; i < len(batch); i += chunkSize {
		end := i + chunkSize
		if end > len(batch) {
			end = len(batch)
		}

		if _, _, err := c.Insert(batch[i:end]...); err != nil {
			return fmt.Errorf("stringspace-bench: seeding: %w", err)
		}
	}

	return nil
}

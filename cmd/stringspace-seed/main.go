// stringspace-seed bulk-inserts words from a newline-delimited word list
// file into a running stringspace-server, batching requests across a
// worker pool the way the teacher's seeding tool parallelizes ticket
// creation across CPU cores.
package main

import (
	"bufio"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/stringspace/internal/wireclient"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:9315", "Server address")
	batchSize := flag.Int("batch-size", 500, "Words per insert request")

	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: stringspace-seed [flags] <word-list-file>")
		os.Exit(1)
	}

	if err := run(*addr, flag.Arg(0), *batchSize); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(addr, wordListPath string, batchSize int) error {
	words, err := readWords(wordListPath)
	if err != nil {
		return fmt.Errorf("stringspace-seed: reading word list: %w", err)
	}

	if len(words) == 0 {
		fmt.Println("no words to insert")
		return nil
	}

	batches := chunk(words, batchSize)

	numWorkers := runtime.NumCPU()
	if numWorkers > len(batches) {
		numWorkers = len(batches)
	}

	batchCh := make(chan []string, numWorkers*2)

	var accepted, total int64

	var wg sync.WaitGroup

	start := time.Now()

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			c, err := wireclient.Dial(addr, 5*time.Second)
			if err != nil {
				fmt.Fprintln(os.Stderr, "worker dial error:", err)
				return
			}

			defer func() { _ = c.Close() }()

			for batch := range batchCh {
				a, t, err := c.Insert(batch...)
				if err != nil {
					fmt.Fprintln(os.Stderr, "insert error:", err)
					continue
				}

				atomic.AddInt64(&accepted, int64(a))
				atomic.AddInt64(&total, int64(t))
			}
		}()
	}

	for _, b := range batches {
		batchCh <- b
	}

	close(batchCh)

	wg.Wait()

	fmt.Printf("Inserted %d of %d words in %s\n", accepted, total, time.Since(start))

	return nil
}

func readWords(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // operator-supplied path
	if err != nil {
		return nil, err
	}

	defer func() { _ = f.Close() }()

	var words []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		w := strings.TrimSpace(scanner.Text())
		if w == "" {
			continue
		}

		words = append(words, w)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return words, nil
}

func chunk(words []string, size int) [][]string {
	if size <= 0 {
		size = 1
	}

	var out [][]string

	for i := 0; i < len(words); i += size {
		end := i + size
		if end > len(words) {
			end = len(words)
		}

		out = append(out, words[i:end])
	}

	return out
}

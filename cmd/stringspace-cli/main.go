// stringspace-cli is an interactive REPL client for a running
// stringspace-server, driving the wire protocol through
// internal/wireclient.
//
// Usage:
//
//	stringspace-cli <addr>   Connect to a running server, e.g. 127.0.0.1:9315
//
// Commands (in REPL):
//
//	prefix <query>                   Prefix search
//	substring <query>                Substring search
//	similar <query> <threshold>      Jaro-Winkler similarity search
//	fuzzy <query>                    Fuzzy subsequence search
//	best <query> [limit]             Ranked best-completions search
//	insert <word> [word...]          Insert one or more words
//	datafile                         Show the server's data file path
//	help                             Show this help
//	exit / quit / q                  Exit
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/peterh/liner"

	"github.com/calvinalkan/stringspace/internal/wireclient"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: stringspace-cli <addr>")
		return fmt.Errorf("missing server address")
	}

	c, err := wireclient.Dial(os.Args[1], 5*time.Second)
	if err != nil {
		return err
	}

	defer func() { _ = c.Close() }()

	repl := &REPL{client: c, addr: os.Args[1]}

	return repl.Run()
}

// REPL is the interactive command loop against one stringspace-server.
type REPL struct {
	client *wireclient.Client
	addr   string
	liner  *liner.State
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".stringspace_cli_history")
}

// Run starts the REPL loop.
func (r *REPL) Run() error {
	r.liner = liner.NewLiner()
	defer r.liner.Close()

	r.liner.SetCtrlCAborts(true)
	r.liner.SetCompleter(r.completer)

	if f, err := os.Open(historyFile()); err == nil {
		_, _ = r.liner.ReadHistory(f)
		f.Close()
	}

	fmt.Printf("stringspace-cli connected to %s\n", r.addr)
	fmt.Println("Type 'help' for available commands.")
	fmt.Println()

	for {
		line, err := r.liner.Prompt("stringspace> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				fmt.Println("\nBye!")
				break
			}

			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.liner.AppendHistory(line)

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "exit", "quit", "q":
			fmt.Println("Bye!")
			r.saveHistory()

			return nil

		case "help", "?":
			r.printHelp()

		case "prefix":
			r.cmdPrefix(args)

		case "substring":
			r.cmdSubstring(args)

		case "similar":
			r.cmdSimilar(args)

		case "fuzzy":
			r.cmdFuzzy(args)

		case "best":
			r.cmdBest(args)

		case "insert":
			r.cmdInsert(args)

		case "datafile":
			r.cmdDataFile()

		default:
			fmt.Printf("Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}

	r.saveHistory()

	return nil
}

func (r *REPL) saveHistory() {
	if path := historyFile(); path != "" {
		if f, err := os.Create(path); err == nil {
			_, _ = r.liner.WriteHistory(f)
			f.Close()
		}
	}
}

func (r *REPL) completer(line string) []string {
	commands := []string{
		"prefix", "substring", "similar", "fuzzy", "best",
		"insert", "datafile", "help", "exit", "quit", "q",
	}

	var completions []string

	lower := strings.ToLower(line)
	for _, cmd := range commands {
		if strings.HasPrefix(cmd, lower) {
			completions = append(completions, cmd)
		}
	}

	return completions
}

func (r *REPL) printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  prefix <query>                   Prefix search")
	fmt.Println("  substring <query>                Substring search")
	fmt.Println("  similar <query> <threshold>      Jaro-Winkler similarity search")
	fmt.Println("  fuzzy <query>                    Fuzzy subsequence search")
	fmt.Println("  best <query> [limit]             Ranked best-completions search")
	fmt.Println("  insert <word> [word...]          Insert one or more words")
	fmt.Println("  datafile                         Show the server's data file path")
	fmt.Println("  help                             Show this help")
	fmt.Println("  exit / quit / q                  Exit")
}

func printMatches(matches []wireclient.Match, err error) {
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	if len(matches) == 0 {
		fmt.Println("(no matches)")
		return
	}

	for _, m := range matches {
		fmt.Printf("  %-30s freq=%-6d age=%d\n", m.Bytes, m.Frequency, m.Age)
	}
}

func (r *REPL) cmdPrefix(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: prefix <query>")
		return
	}

	printMatches(r.client.Prefix(args[0]))
}

func (r *REPL) cmdSubstring(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: substring <query>")
		return
	}

	printMatches(r.client.Substring(args[0]))
}

func (r *REPL) cmdSimilar(args []string) {
	if len(args) != 2 {
		fmt.Println("usage: similar <query> <threshold>")
		return
	}

	threshold, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		fmt.Printf("invalid threshold: %v\n", err)
		return
	}

	printMatches(r.client.Similar(args[0], threshold))
}

func (r *REPL) cmdFuzzy(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: fuzzy <query>")
		return
	}

	printMatches(r.client.FuzzySubsequence(args[0]))
}

func (r *REPL) cmdBest(args []string) {
	if len(args) < 1 || len(args) > 2 {
		fmt.Println("usage: best <query> [limit]")
		return
	}

	limit := 0

	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Printf("invalid limit: %v\n", err)
			return
		}

		limit = n
	}

	printMatches(r.client.BestCompletions(args[0], limit))
}

func (r *REPL) cmdInsert(args []string) {
	if len(args) == 0 {
		fmt.Println("usage: insert <word> [word...]")
		return
	}

	accepted, total, err := r.client.Insert(args...)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	fmt.Printf("Inserted %d of %d words\n", accepted, total)
}

func (r *REPL) cmdDataFile() {
	path, err := r.client.DataFile()
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	fmt.Println(path)
}

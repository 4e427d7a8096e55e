package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/meltforce/intervals/internal/workout"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	fromStdin := flag.Bool("stdin", false, "read one workout per line from standard input")
	keepGoing := flag.Bool("keep-going", false, "report failed inputs and continue with the rest")
	version := flag.Bool("version", false, "print version and exit")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: intervals [-stdin] [-keep-going] [workout ...]\n\n")
		fmt.Fprintf(os.Stderr, "Without arguments the built-in example sessions are evaluated.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *version {
		fmt.Println("intervals", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	inputs := flag.Args()
	if *fromStdin {
		lines, err := readLines(os.Stdin)
		if err != nil {
			log.Error("failed to read stdin", "error", err)
			os.Exit(1)
		}
		inputs = append(inputs, lines...)
	}
	if len(inputs) == 0 {
		inputs = workout.Examples
	}

	policy := workout.StopOnError
	if *keepGoing {
		policy = workout.SkipAndReport
	}

	outcomes := workout.EvaluateAll(inputs, policy)
	if failed := report(os.Stdout, os.Stderr, log, outcomes); failed > 0 {
		log.Error("evaluation failed", "failed", failed, "evaluated", len(outcomes), "inputs", len(inputs))
		os.Exit(1)
	}
}

// report prints one line per successful outcome to out and the error context
// of each failure to errOut. It returns the number of failures.
func report(out, errOut io.Writer, log *slog.Logger, outcomes []workout.Outcome) int {
	failed := 0
	for _, o := range outcomes {
		if o.Err == nil {
			fmt.Fprintln(out, o.Result)
			continue
		}

		failed++
		log.Error("invalid workout", "input", o.Input, "error", o.Err)
		var se *workout.SyntaxError
		if errors.As(o.Err, &se) {
			se.Context(errOut)
		}
	}
	return failed
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

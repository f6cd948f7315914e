// Command lazysort is a small demo CLI over the lazysort library: it
// reads whitespace-separated integers from stdin (or a random sample if
// none are given) and answers one query against them.
package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/niceyeti/lazysort"
	"github.com/niceyeti/lazysort/internal/telemetry"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "lazysort:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("lazysort", pflag.ContinueOnError)

	at := flags.Int("at", -1, "print the element at this rank")
	between := flags.IntSlice("between", nil, "print the band xs[lo:hi) for --between lo,hi")
	sliceArgs := flags.IntSlice("slice", nil, "print xs[start:stop:step] for --slice start,stop,step")
	indexOf := flags.Int("index-of", 0, "print the index of this value (use with --index-of-set)")
	indexOfSet := flags.Bool("index-of-set", false, "enables --index-of, since 0 is also a valid value to search for")
	countOf := flags.Int("count-of", 0, "count occurrences of this value (use with --count-of-set)")
	countOfSet := flags.Bool("count-of-set", false, "enables --count-of")
	randomN := flags.Int("random", 0, "if no stdin input is given, generate this many random elements instead")
	verbose := flags.BoolP("verbose", "v", false, "log diagnostics to stderr")
	dumpPivots := flags.Bool("dump-pivots", false, "print the pivot tree state after the query")

	if err := flags.Parse(args); err != nil {
		return err
	}

	v := viper.New()
	v.SetEnvPrefix("LAZYSORT")
	v.AutomaticEnv()
	v.SetDefault("sort_thresh", 12)
	v.SetDefault("contig_thresh", 8)

	if *verbose {
		telemetry.SetOutput(os.Stderr, zerolog.DebugLevel)
	}

	xs, err := readInts(os.Stdin, *randomN)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	seq, err := lazysort.NewOrdered(xs,
		lazysort.WithSortThreshold(v.GetInt("sort_thresh")),
		lazysort.WithContigThreshold(v.GetInt("contig_thresh")),
	)
	if err != nil {
		return err
	}

	switch {
	case *at >= 0:
		got, err := seq.At(*at)
		if err != nil {
			return err
		}
		fmt.Println(got)

	case len(*between) == 2:
		got, err := seq.Between((*between)[0], (*between)[1])
		if err != nil {
			return err
		}
		printInts(got)

	case len(*sliceArgs) == 3:
		got, err := seq.Slice((*sliceArgs)[0], (*sliceArgs)[1], (*sliceArgs)[2])
		if err != nil {
			return err
		}
		printInts(got)

	case *indexOfSet:
		idx, err := seq.IndexOf(*indexOf)
		if err != nil {
			return err
		}
		fmt.Println(idx)

	case *countOfSet:
		count, err := seq.CountOf(*countOf)
		if err != nil {
			return err
		}
		fmt.Println(count)

	default:
		fmt.Println(seq.Len())
	}

	if *dumpPivots {
		for _, p := range seq.DebugPivots() {
			fmt.Fprintf(os.Stderr, "pivot idx=%d flag=%s\n", p.Idx, p.Flag)
		}
	}

	return nil
}

// readInts reads whitespace-separated integers from r. If r is empty and
// n > 0, it generates n random integers instead so the CLI is usable
// without preparing an input file.
func readInts(r *os.File, n int) ([]int, error) {
	stat, err := r.Stat()
	if err == nil && (stat.Mode()&os.ModeCharDevice) != 0 && n > 0 {
		xs := make([]int, n)
		for i := range xs {
			xs[i] = rand.Intn(n * 10)
		}
		return xs, nil
	}

	var xs []int
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		for _, f := range strings.Fields(scanner.Text()) {
			x, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("parsing %q: %w", f, err)
			}
			xs = append(xs, x)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(xs) == 0 && n > 0 {
		xs = make([]int, n)
		for i := range xs {
			xs[i] = rand.Intn(n * 10)
		}
	}
	return xs, nil
}

func printInts(xs []int) {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	fmt.Println(strings.Join(parts, " "))
}

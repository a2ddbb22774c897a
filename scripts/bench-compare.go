//go:build ignore

// Package main compares two `go test -bench` outputs and fails on
// regressions. Usage: go run scripts/bench-compare.go <current.txt> <baseline.txt>
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
)

var (
	threshold  = flag.Float64("threshold", 0.20, "Regression threshold as a fraction (0.20 = 20% slower)")
	outputJSON = flag.Bool("json", false, "Output the comparison as JSON")
	showAll    = flag.Bool("all", false, "Show unchanged benchmarks too")
)

// benchLine matches `BenchmarkName-N  iterations  ns/op` with optional
// B/op and allocs/op columns.
var benchLine = regexp.MustCompile(`^(Benchmark\S+)\s+(\d+)\s+([\d.]+)\s+ns/op`)

type comparison struct {
	Name     string  `json:"name"`
	Current  float64 `json:"current_ns_per_op"`
	Baseline float64 `json:"baseline_ns_per_op,omitempty"`
	DeltaPct float64 `json:"delta_percent"`
	Verdict  string  `json:"verdict"`
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <current.txt> <baseline.txt>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() < 2 {
		flag.Usage()
		os.Exit(1)
	}

	current, err := parseBenchFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", flag.Arg(0), err)
		os.Exit(1)
	}
	baseline, err := parseBenchFile(flag.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", flag.Arg(1), err)
		os.Exit(1)
	}

	comparisons, regressed := compare(current, baseline)

	if *outputJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(comparisons); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
			os.Exit(1)
		}
	} else {
		printTable(comparisons)
	}

	if regressed > 0 {
		fmt.Fprintf(os.Stderr, "FAIL: %d benchmark(s) regressed by more than %.0f%%\n", regressed, *threshold*100)
		os.Exit(1)
	}
}

func parseBenchFile(path string) (map[string]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	results := make(map[string]float64)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		m := benchLine.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		if ns, err := strconv.ParseFloat(m[3], 64); err == nil {
			results[m[1]] = ns
		}
	}
	return results, scanner.Err()
}

func compare(current, baseline map[string]float64) ([]comparison, int) {
	names := make([]string, 0, len(current))
	for name := range current {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []comparison
	regressed := 0
	for _, name := range names {
		c := comparison{Name: name, Current: current[name]}
		base, ok := baseline[name]
		if !ok {
			c.Verdict = "new"
			out = append(out, c)
			continue
		}
		c.Baseline = base
		if base > 0 {
			c.DeltaPct = (current[name] - base) / base * 100
		}
		switch {
		case c.DeltaPct > *threshold*100:
			c.Verdict = "regression"
			regressed++
		case c.DeltaPct < -10:
			c.Verdict = "improved"
		default:
			c.Verdict = "ok"
		}
		if c.Verdict != "ok" || *showAll {
			out = append(out, c)
		}
	}
	return out, regressed
}

func printTable(comparisons []comparison) {
	if len(comparisons) == 0 {
		fmt.Println("No changes beyond the threshold.")
		return
	}
	fmt.Printf("%-50s %12s %12s %9s  %s\n", "BENCHMARK", "CURRENT", "BASELINE", "DELTA", "VERDICT")
	for _, c := range comparisons {
		baseline := "-"
		delta := "-"
		if c.Baseline > 0 {
			baseline = fmt.Sprintf("%.0f ns", c.Baseline)
			delta = fmt.Sprintf("%+.1f%%", c.DeltaPct)
		}
		fmt.Printf("%-50s %12s %12s %9s  %s\n",
			c.Name, fmt.Sprintf("%.0f ns", c.Current), baseline, delta, c.Verdict)
	}
}

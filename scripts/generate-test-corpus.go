//go:build ignore

// Package main generates a synthetic note corpus for benchmarking.
// Usage: go run scripts/generate-test-corpus.go -files 5000 -output testdata/bench
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
)

var (
	numFiles  = flag.Int("files", 5000, "Number of files to generate")
	outputDir = flag.String("output", "testdata/bench", "Output directory")
	seed      = flag.Int64("seed", 42, "Random seed for reproducibility")
)

var noteTemplate = `:PROPERTIES:
:ID: %s
:END:
#+title: %s
#+filetags: :%s:

* Overview

Notes on %s. Collected while working through %s.

* Details

- The %s approach needs a second look.
- Cross-reference [[id:%s][%s]] before the next review.

* Tasks

** TODO Revisit the %s section
** DONE Capture the initial %s sketch
`

var dailyTemplate = `#+title: %s

* Log

- Reviewed notes on %s.
- Started a draft about %s.

* Captured

** %s
Quick thought: the %s angle may simplify things.
`

var topics = []string{
	"garden design", "compiler internals", "sourdough starters", "trail maps",
	"reading list", "meeting notes", "api sketches", "woodworking",
	"bird sightings", "recipe ideas", "paper summaries", "travel plans",
	"budget tracking", "lecture notes", "project retros", "book reviews",
	"kernel tuning", "language learning", "music practice", "photo workflow",
}

var tags = []string{
	"project", "inbox", "reference", "journal", "idea",
	"review", "draft", "archive", "research", "personal",
}

var sections = []string{
	"background", "approach", "open questions", "references",
	"follow-ups", "summary", "timeline", "sources",
}

func main() {
	flag.Parse()
	rng := rand.New(rand.NewSource(*seed))

	subdirs := []string{"projects", "daily", "reference", "archive", "data/.attach"}
	for _, subdir := range subdirs {
		if err := os.MkdirAll(filepath.Join(*outputDir, subdir), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", subdir, err)
			os.Exit(1)
		}
	}

	if err := writeCorpusConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing corpus config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generating %d files in %s...\n", *numFiles, *outputDir)

	// Mix of plain notes, daily notes, encrypted variants, junk, and
	// files in excluded directories.
	noteCount := *numFiles * 60 / 100
	dailyCount := *numFiles * 15 / 100
	encryptedCount := *numFiles * 5 / 100
	junkCount := *numFiles * 10 / 100
	excludedCount := *numFiles - noteCount - dailyCount - encryptedCount - junkCount

	generated := 0
	for i := 0; i < noteCount; i++ {
		if err := generateNote(rng, i); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating note %d: %v\n", i, err)
		}
		generated++
	}
	for i := 0; i < dailyCount; i++ {
		if err := generateDaily(rng, i); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating daily note %d: %v\n", i, err)
		}
		generated++
	}
	for i := 0; i < encryptedCount; i++ {
		if err := generateEncrypted(rng, i); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating encrypted note %d: %v\n", i, err)
		}
		generated++
	}
	for i := 0; i < junkCount; i++ {
		if err := generateJunk(rng, i); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating junk file %d: %v\n", i, err)
		}
		generated++
	}
	for i := 0; i < excludedCount; i++ {
		if err := generateExcluded(rng, i); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating excluded file %d: %v\n", i, err)
		}
		generated++
	}

	fmt.Printf("Generated %d files successfully.\n", generated)
}

func writeCorpusConfig() error {
	cfg := `extensions:
  - org
exclude:
  - '^archive/'
  - '\.attach/'
`
	return os.WriteFile(filepath.Join(*outputDir, ".rove.yaml"), []byte(cfg), 0o644)
}

func pick(rng *rand.Rand, pool []string) string {
	return pool[rng.Intn(len(pool))]
}

func slug(s string) string {
	return strings.ReplaceAll(s, " ", "-")
}

func title(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func noteBody(rng *rand.Rand) string {
	topic := pick(rng, topics)
	other := pick(rng, topics)
	section := pick(rng, sections)
	id := fmt.Sprintf("%08x-%04x-%04x", rng.Uint32(), rng.Intn(0xffff), rng.Intn(0xffff))
	linkID := fmt.Sprintf("%08x-%04x-%04x", rng.Uint32(), rng.Intn(0xffff), rng.Intn(0xffff))

	return fmt.Sprintf(noteTemplate,
		id,
		title(topic),
		pick(rng, tags),
		topic, other,
		section,
		linkID, other,
		section, topic,
	)
}

func generateNote(rng *rand.Rand, index int) error {
	topic := pick(rng, topics)
	dir := "projects"
	if rng.Intn(3) == 0 {
		dir = "reference"
	}
	name := fmt.Sprintf("%s-%d.org", slug(topic), index)
	return os.WriteFile(filepath.Join(*outputDir, dir, name), []byte(noteBody(rng)), 0o644)
}

func generateDaily(rng *rand.Rand, index int) error {
	date := fmt.Sprintf("2025-%02d-%02d", 1+index%12, 1+index%28)
	content := fmt.Sprintf(dailyTemplate,
		date,
		pick(rng, topics), pick(rng, topics),
		title(pick(rng, topics)), pick(rng, sections),
	)
	name := date + ".org"
	if index >= 336 {
		// Dates repeat after a year of dailies, so suffix the overflow.
		name = fmt.Sprintf("%s-%d.org", date, index)
	}
	return os.WriteFile(filepath.Join(*outputDir, "daily", name), []byte(content), 0o644)
}

func generateEncrypted(rng *rand.Rand, index int) error {
	// Content is opaque to the scanner, so a placeholder blob suffices.
	ext := ".org.gpg"
	if index%2 == 1 {
		ext = ".org.age"
	}
	name := fmt.Sprintf("%s-%d%s", slug(pick(rng, topics)), index, ext)
	blob := make([]byte, 256+rng.Intn(1024))
	rng.Read(blob)
	return os.WriteFile(filepath.Join(*outputDir, "projects", name), blob, 0o644)
}

func generateJunk(rng *rand.Rand, index int) error {
	exts := []string{".txt", ".md", ".json", ".html", ".org~", ".png"}
	name := fmt.Sprintf("%s-%d%s", slug(pick(rng, topics)), index, exts[index%len(exts)])
	content := fmt.Sprintf("junk file %d about %s\n", index, pick(rng, topics))
	return os.WriteFile(filepath.Join(*outputDir, "data", name), []byte(content), 0o644)
}

func generateExcluded(rng *rand.Rand, index int) error {
	dir := "archive"
	if index%3 == 0 {
		dir = "data/.attach"
	}
	name := fmt.Sprintf("%s-%d.org", slug(pick(rng, topics)), index)
	return os.WriteFile(filepath.Join(*outputDir, dir, name), []byte(noteBody(rng)), 0o644)
}

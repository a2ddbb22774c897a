package logging

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/rovenotes/rove/internal/ui"
)

// followInterval is how often Follow polls the file for new lines.
const followInterval = 100 * time.Millisecond

// Entry is a parsed JSON log line.
type Entry struct {
	Time  time.Time      `json:"time"`
	Level string         `json:"level"`
	Msg   string         `json:"msg"`
	Attrs map[string]any `json:"-"`
	Raw   string         `json:"-"`
	Valid bool           `json:"-"`
}

// ViewerConfig holds the viewer's filters and rendering mode.
type ViewerConfig struct {
	// Level drops entries below this threshold (debug, info, warn, error).
	Level string
	// Pattern drops entries whose raw line does not match.
	Pattern *regexp.Regexp
	// NoColor disables styled output.
	NoColor bool
}

// Viewer reads, filters, and renders rove's JSON log files.
type Viewer struct {
	config ViewerConfig
	styles ui.Styles
	out    io.Writer
}

// NewViewer creates a log viewer writing to out.
func NewViewer(cfg ViewerConfig, out io.Writer) *Viewer {
	return &Viewer{
		config: cfg,
		styles: ui.GetStyles(cfg.NoColor),
		out:    out,
	}
}

// Tail returns the last n matching entries of the log file.
func (v *Viewer) Tail(path string, n int) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = file.Close() }()

	lines, err := readLines(file)
	if err != nil {
		return nil, fmt.Errorf("read log file: %w", err)
	}

	var entries []Entry
	for _, line := range lines {
		entry := v.parseLine(line)
		if v.matches(entry) {
			entries = append(entries, entry)
		}
	}

	// Filtering happens before the cut so --level error still yields n
	// entries when they exist further back.
	if len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	return entries, nil
}

// Follow watches the log file and sends new matching entries to the
// channel until ctx is cancelled. Rotation moves the file aside, so the
// open handle keeps draining the pre-rotation tail.
func (v *Viewer) Follow(ctx context.Context, path string, entries chan<- Entry) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("seek to end: %w", err)
	}

	reader := bufio.NewReader(file)
	ticker := time.NewTicker(followInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			for {
				line, err := reader.ReadString('\n')
				if err != nil {
					break
				}
				line = strings.TrimSuffix(line, "\n")
				if line == "" {
					continue
				}
				entry := v.parseLine(line)
				if !v.matches(entry) {
					continue
				}
				select {
				case entries <- entry:
				case <-ctx.Done():
					return nil
				}
			}
		}
	}
}

// Print renders entries to the viewer's output.
func (v *Viewer) Print(entries []Entry) {
	for _, entry := range entries {
		_, _ = fmt.Fprintln(v.out, v.FormatEntry(entry))
	}
}

// FormatEntry renders one entry as a single line.
func (v *Viewer) FormatEntry(entry Entry) string {
	if !entry.Valid {
		// Unparseable lines pass through untouched.
		return entry.Raw
	}

	timestamp := v.styles.Dim.Render(entry.Time.Format("15:04:05.000"))
	level := v.formatLevel(entry.Level)

	keys := make([]string, 0, len(entry.Attrs))
	for k := range entry.Attrs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	var attrs []string
	for _, k := range keys {
		attrs = append(attrs, fmt.Sprintf("%s=%v", k, entry.Attrs[k]))
	}
	attrStr := ""
	if len(attrs) > 0 {
		attrStr = " " + v.styles.Dim.Render(strings.Join(attrs, " "))
	}

	return fmt.Sprintf("%s %s %s%s", timestamp, level, entry.Msg, attrStr)
}

func (v *Viewer) formatLevel(level string) string {
	// Pad to a fixed width so messages line up; overlong names like
	// WARNING get clipped.
	label := fmt.Sprintf("%-5.5s", strings.ToUpper(level))

	style := v.styles.Success
	switch strings.ToLower(level) {
	case "debug":
		style = v.styles.Dim
	case "warn", "warning":
		style = v.styles.Warning
	case "error":
		style = v.styles.Error
	}
	return style.Render(label)
}

// parseLine parses a JSON log line; anything unparseable is kept raw.
func (v *Viewer) parseLine(line string) Entry {
	entry := Entry{Raw: line}

	var fields map[string]any
	if err := json.Unmarshal([]byte(line), &fields); err != nil {
		return entry
	}
	entry.Valid = true

	if ts, err := time.Parse(time.RFC3339Nano, stringField(fields, "time")); err == nil {
		entry.Time = ts
	}
	entry.Level = stringField(fields, "level")
	entry.Msg = stringField(fields, "msg")

	// Whatever slog appended beyond the standard keys is an attribute.
	delete(fields, "time")
	delete(fields, "level")
	delete(fields, "msg")
	entry.Attrs = fields
	return entry
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// matches applies the level threshold and the pattern filter.
func (v *Viewer) matches(entry Entry) bool {
	if v.config.Level != "" {
		if LevelFromString(entry.Level) < LevelFromString(v.config.Level) {
			return false
		}
	}
	if v.config.Pattern != nil && !v.config.Pattern.MatchString(entry.Raw) {
		return false
	}
	return true
}

// readLines loads a log file line by line with room for long entries.
func readLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	const maxCapacity = 1024 * 1024
	scanner.Buffer(make([]byte, maxCapacity), maxCapacity)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

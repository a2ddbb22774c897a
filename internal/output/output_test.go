package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Status("🔍", "Probing backends...")

	assert.Equal(t, "🔍 Probing backends...\n", buf.String())
}

func TestStatus_EmptyIconAligns(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Status("", "continuation line")

	assert.Equal(t, "   continuation line\n", buf.String())
}

func TestStatusf(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Statusf("📂", "Found %d managed files under %s", 42, "/notes")

	assert.Equal(t, "📂 Found 42 managed files under /notes\n", buf.String())
}

func TestFixedIcons(t *testing.T) {
	tests := []struct {
		name  string
		print func(*Writer, string)
		icon  string
	}{
		{"success", (*Writer).Success, "✅"},
		{"warning", (*Writer).Warning, "⚠️"},
		{"error", (*Writer).Error, "❌"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			tc.print(New(&buf), "backend probe done")

			assert.Contains(t, buf.String(), tc.icon)
			assert.Contains(t, buf.String(), "backend probe done")
		})
	}
}

func TestCode(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Code("root: ~/notes\nextensions: [org]")

	assert.Equal(t, "\n  root: ~/notes\n  extensions: [org]\n\n", buf.String())
}

func TestNewline(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Newline()

	assert.Equal(t, "\n", buf.String())
}

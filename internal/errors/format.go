package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// asRove unwraps err to the first RoveError in its chain.
func asRove(err error) (*RoveError, bool) {
	var re *RoveError
	ok := errors.As(err, &re)
	return re, ok
}

// FormatForCLI renders an error for terminal display: the message,
// an optional hint, and the error code for lookup.
func FormatForCLI(err error) string {
	if err == nil {
		return ""
	}

	re, ok := asRove(err)
	if !ok {
		re = Wrap(ErrCodeInternal, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Error: %s\n", re.Message)
	if re.Suggestion != "" {
		fmt.Fprintf(&b, "  Hint: %s\n", re.Suggestion)
	}
	fmt.Fprintf(&b, "  Code: %s\n", re.Code)
	return b.String()
}

// errorPayload is the wire shape produced by FormatJSON.
type errorPayload struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Category   string            `json:"category"`
	Severity   string            `json:"severity"`
	Details    map[string]string `json:"details,omitempty"`
	Suggestion string            `json:"suggestion,omitempty"`
	Cause      string            `json:"cause,omitempty"`
}

// FormatJSON marshals an error for machine consumption, as used by
// the --json output mode. A nil error marshals to JSON null.
func FormatJSON(err error) ([]byte, error) {
	if err == nil {
		return json.Marshal(nil)
	}

	re, ok := asRove(err)
	if !ok {
		re = Wrap(ErrCodeInternal, err)
	}

	p := errorPayload{
		Code:       re.Code,
		Message:    re.Message,
		Category:   string(re.Category),
		Severity:   string(re.Severity),
		Details:    re.Details,
		Suggestion: re.Suggestion,
	}
	if re.Cause != nil {
		p.Cause = re.Cause.Error()
	}
	return json.Marshal(p)
}

// FormatForLog flattens an error into key-value pairs for slog.
// Plain errors get a single "error" key; coded errors expand into
// error_code, message, category, and one detail_* key per detail.
func FormatForLog(err error) map[string]any {
	if err == nil {
		return nil
	}

	re, ok := asRove(err)
	if !ok {
		return map[string]any{"error": err.Error()}
	}

	fields := map[string]any{
		"error_code": re.Code,
		"message":    re.Message,
		"category":   string(re.Category),
		"severity":   string(re.Severity),
	}
	if re.Cause != nil {
		fields["cause"] = re.Cause.Error()
	}
	if re.Suggestion != "" {
		fields["suggestion"] = re.Suggestion
	}
	for k, v := range re.Details {
		fields["detail_"+k] = v
	}
	return fields
}

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jenian/credcheck/internal/report"
	"golang.org/x/term"
)

// AbsentMarker is printed in place of a value that is not set
const AbsentMarker = "None"

// ANSI color codes
const (
	colorReset = "\033[0m"
	colorBold  = "\033[1m"
	colorRed   = "\033[31m"
)

// colorDisabled reports whether the user opted out of colors
// (https://no-color.org: any non-empty NO_COLOR)
func colorDisabled() bool {
	return os.Getenv("NO_COLOR") != ""
}

// colorSupported reports whether w is a terminal that understands ANSI codes
func colorSupported(w io.Writer) bool {
	if colorDisabled() {
		return false
	}
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return false
	}
	// On Windows ANSI processing has to be switched on (formatter_windows.go)
	return enableANSI(f.Fd())
}

type palette bool

func (p palette) color(code string) string {
	if p {
		return code
	}
	return ""
}

// JSONOutput represents the JSON output format
type JSONOutput struct {
	Credentials []JSONCredential `json:"credentials"`
	Missing     []string         `json:"missing"`
}

// JSONCredential is one entry of the JSON output
type JSONCredential struct {
	Key    string  `json:"key"`
	Value  *string `json:"value"`
	Source string  `json:"source,omitempty"`
}

// Format writes the report to w, as JSON or as one line per credential
func Format(w io.Writer, result report.Report, jsonOutput bool) error {
	if jsonOutput {
		return formatJSON(w, result)
	}
	return formatHumanReadable(w, result)
}

// formatJSON outputs results in JSON format
func formatJSON(w io.Writer, result report.Report) error {
	output := JSONOutput{
		Credentials: make([]JSONCredential, 0, len(result.Entries)),
		Missing:     result.Missing(),
	}
	for _, e := range result.Entries {
		output.Credentials = append(output.Credentials, JSONCredential{
			Key:    e.Key,
			Value:  e.Value,
			Source: e.Source,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// formatHumanReadable writes "### KEY :  value" lines. Values are printed
// verbatim; the label is highlighted on terminals, red when absent.
func formatHumanReadable(w io.Writer, result report.Report) error {
	p := palette(colorSupported(w))

	for _, e := range result.Entries {
		value := AbsentMarker
		labelColor := p.color(colorBold)
		if e.Value != nil {
			value = *e.Value
		} else {
			labelColor += p.color(colorRed)
		}

		if _, err := fmt.Fprintf(w, "### %s%s%s :  %s\n", labelColor, e.Key, p.color(colorReset), value); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return nil
}

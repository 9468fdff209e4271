// ABOUTME: Shared helpers for CLI commands
// ABOUTME: Output writer, table setup, repeated flags and time parsing
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/harperreed/callbook/timeparse"
)

// stdout is where commands print; tests swap it for a buffer.
var stdout io.Writer = os.Stdout

// now is the clock used when parsing relative dates.
var now = time.Now

const timeLayout = "2006-01-02 15:04"

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

func truncate(s string, n int) string {
	r := []rune(strings.ReplaceAll(s, "\n", " "))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-1]) + "…"
}

// parseWhen accepts "2006-01-02 15:04", "2006-01-02", RFC3339 or an English
// phrase such as "tomorrow at 3pm".
func parseWhen(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{timeLayout, "2006-01-02", time.RFC3339} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	if t, ok := timeparse.Parse(s, now(), false); ok {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("cannot understand time %q", s)
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*s = append(*s, part)
		}
	}
	return nil
}

func requireID(args []string, what string) (string, error) {
	if len(args) < 1 || strings.TrimSpace(args[0]) == "" {
		return "", fmt.Errorf("%s ID is required", what)
	}
	return args[0], nil
}

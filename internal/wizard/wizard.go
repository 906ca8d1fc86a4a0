// Package wizard collects confusion counts interactively or from piped input.
package wizard

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spboyer/confmat/internal/metrics"
	"golang.org/x/term"
)

// IsTerminal reports whether r is an interactive terminal.
func IsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// countFields are the prompted counts in tp, tn, fp, fn order.
var countFields = []struct {
	name, title, description string
}{
	{"tp", "True positives", "Positive cases predicted positive"},
	{"tn", "True negatives", "Negative cases predicted negative"},
	{"fp", "False positives", "Negative cases predicted positive"},
	{"fn", "False negatives", "Positive cases predicted negative"},
}

func countInput(i int, value *string) *huh.Input {
	return huh.NewInput().
		Title(countFields[i].title).
		Description(countFields[i].description).
		Placeholder("0").
		Value(value).
		Validate(func(s string) error {
			_, err := ParseCount(s)
			return err
		})
}

// RunCountsWizard runs an interactive huh form asking for the four
// confusion counts. When in is not a terminal each count is read from
// its own line and prompted in accessible mode.
func RunCountsWizard(in io.Reader, out io.Writer) (metrics.Counts, error) {
	values := make([]string, len(countFields))

	if IsTerminal(in) {
		inputs := make([]huh.Field, len(countFields))
		for i := range countFields {
			inputs[i] = countInput(i, &values[i])
		}
		form := huh.NewForm(huh.NewGroup(inputs...)).
			WithInput(in).
			WithOutput(out)
		if err := form.Run(); err != nil {
			return metrics.Counts{}, fmt.Errorf("wizard failed: %w", err)
		}
		return countsFromStrings(values)
	}

	// The accessible prompt scans its reader ahead, so every field gets a
	// reader holding only its own line.
	lines := bufio.NewReader(in)
	for i, f := range countFields {
		line, err := readLine(lines)
		if errors.Is(err, io.EOF) {
			return metrics.Counts{}, fmt.Errorf("unexpected end of input: expected 4 counts (tp tn fp fn), got %d", i)
		}
		if err != nil {
			return metrics.Counts{}, fmt.Errorf("reading %s: %w", f.name, err)
		}
		if _, err := ParseCount(line); err != nil {
			return metrics.Counts{}, fmt.Errorf("%s: %w", f.name, err)
		}

		form := huh.NewForm(huh.NewGroup(countInput(i, &values[i]))).
			WithInput(strings.NewReader(line + "\n")).
			WithOutput(out).
			WithAccessible(true)
		if err := form.Run(); err != nil {
			return metrics.Counts{}, fmt.Errorf("wizard failed: %w", err)
		}
	}
	return countsFromStrings(values)
}

// readLine returns the next line without its terminator. A final line
// without a newline is returned as is; io.EOF means no line was left.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadCounts reads four whitespace-separated counts (tp tn fp fn) from r.
func ReadCounts(r io.Reader) (metrics.Counts, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	var fields []string
	for scanner.Scan() {
		fields = append(fields, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return metrics.Counts{}, fmt.Errorf("reading counts: %w", err)
	}
	if len(fields) != 4 {
		return metrics.Counts{}, fmt.Errorf("expected 4 counts (tp tn fp fn), got %d", len(fields))
	}
	return countsFromStrings(fields)
}

// ParseCount parses a single count. Blank input counts as zero; negative
// values are left for the calculator to reject.
func ParseCount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return v, nil
}

func countsFromStrings(fields []string) (metrics.Counts, error) {
	var v [4]float64
	for i, name := range []string{"tp", "tn", "fp", "fn"} {
		n, err := ParseCount(fields[i])
		if err != nil {
			return metrics.Counts{}, fmt.Errorf("%s: %w", name, err)
		}
		v[i] = n
	}
	return metrics.Counts{TP: v[0], TN: v[1], FP: v[2], FN: v[3]}, nil
}

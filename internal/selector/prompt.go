package selector

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"modelswitch/internal/metrics"
)

// ErrInputExhausted means the input ended before a valid selection was read.
var ErrInputExhausted = errors.New("input ended before a model was selected")

// Prompt asks for a number in [1, count] until one is given and returns it.
// Invalid answers are rejected and asked again without limit.
func Prompt(r io.Reader, w io.Writer, count int, rec *metrics.Recorder) (int, error) {
	if count < 1 {
		return 0, fmt.Errorf("nothing to select from")
	}
	sc := bufio.NewScanner(r)
	for {
		fmt.Fprintf(w, "Select model [1-%d]: ", count)
		if !sc.Scan() {
			fmt.Fprintln(w)
			if err := sc.Err(); err != nil {
				return 0, fmt.Errorf("read selection: %w", err)
			}
			return 0, ErrInputExhausted
		}
		answer := strings.TrimSpace(sc.Text())
		n, err := strconv.Atoi(answer)
		if err != nil {
			rec.Rejected(metrics.ReasonNonNumeric)
			fmt.Fprintf(w, "Invalid selection %q: enter a number between 1 and %d.\n", answer, count)
			continue
		}
		if n < 1 || n > count {
			rec.Rejected(metrics.ReasonOutOfRange)
			fmt.Fprintf(w, "Selection %d is out of range (1-%d).\n", n, count)
			continue
		}
		return n, nil
	}
}

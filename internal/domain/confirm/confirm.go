// Package confirm defines how destructive actions get user approval.
//
// Surfaces collect the answer wherever their users live: the web page runs
// the browser's native confirm dialog and reports a pre-answered result,
// the terminal surface renders its own yes/no view, and command line tools
// ask on stdin.
package confirm

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Confirmer answers a single confirmation prompt.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// Func adapts a plain function to the Confirmer interface.
type Func func(ctx context.Context, prompt string) (bool, error)

// Confirm implements Confirmer.
func (f Func) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// Answered returns a Confirmer carrying an answer that was already given,
// e.g. by the browser before the request reached us.
func Answered(ok bool) Confirmer {
	return Func(func(context.Context, string) (bool, error) {
		return ok, nil
	})
}

// Prompt returns an interactive Confirmer that writes the prompt to w and
// reads a y/N line from r. Anything but yes is a decline.
func Prompt(r io.Reader, w io.Writer) Confirmer {
	scanner := bufio.NewScanner(r)
	return Func(func(ctx context.Context, prompt string) (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		if _, err := fmt.Fprintf(w, "%s [y/N]: ", prompt); err != nil {
			return false, err
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return false, err
			}
			return false, nil
		}
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	})
}

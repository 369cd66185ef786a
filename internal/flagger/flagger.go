// Package flagger invokes an external command to set the flagged
// attribute, the one field the primary store cannot persist through its
// public interface. Calls are fire-and-forget from the caller's point of
// view: a failure is reported once as a warning and never retried.
package flagger

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Runner wraps the configured flag command.
type Runner struct {
	argv []string
}

// New builds a Runner from a whitespace-separated command line. An empty
// command yields nil, meaning flag changes are unavailable.
func New(command string) *Runner {
	argv := strings.Fields(command)
	if len(argv) == 0 {
		return nil
	}
	return &Runner{argv: argv}
}

// SetFlag runs the command with the reminder identifier and the boolean
// appended as the final two arguments.
func (r *Runner) SetFlag(id string, flagged bool) error {
	args := append(append([]string{}, r.argv[1:]...), id, strconv.FormatBool(flagged))
	out, err := exec.Command(r.argv[0], args...).CombinedOutput()
	if err != nil {
		if len(out) > 0 {
			return fmt.Errorf("%s: %w: %s", r.argv[0], err, strings.TrimSpace(string(out)))
		}
		return fmt.Errorf("%s: %w", r.argv[0], err)
	}
	return nil
}

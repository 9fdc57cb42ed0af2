package toolchain

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/lunarepo/lunar/internal/errors"
)

// runCommand executes command with args in dir, capturing both streams
// separately. A non-zero exit is not an error; the caller inspects the
// Output. The error return is reserved for commands that never ran (binary
// missing, dir invalid) and for context cancellation, where partial output
// is still returned.
func runCommand(ctx context.Context, dir, command string, args []string) (Output, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := Output{
		ExitCode: -1,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}

	if err == nil {
		out.ExitCode = 0
		return out, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		out.ExitCode = exitErr.ExitCode()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return out, ctxErr
		}
		return out, nil
	}

	return out, err
}

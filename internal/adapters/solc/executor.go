package solc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"go.trai.ch/solbuild/internal/core/domain"
	"go.trai.ch/solbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// stderrTailLimit bounds how much compiler stderr is kept for error reports.
const stderrTailLimit = 4096

var _ ports.CompilerExecutor = (*Executor)(nil)

// Executor runs compiler binaries as subprocesses speaking standard JSON on
// stdin/stdout. One executor serves every backend kind; the binary is picked
// per job from the version-qualified name in the binary directory, falling
// back to the bare kind name on PATH.
type Executor struct {
	binDir string
	logger ports.Logger
}

// NewExecutor creates an Executor looking up binaries under binDir. An empty
// binDir searches PATH only.
func NewExecutor(binDir string, logger ports.Logger) *Executor {
	return &Executor{binDir: binDir, logger: logger}
}

// Execute feeds the standard-JSON input to the compiler and returns its raw
// stdout. Process failures carry the exit code and a captured stderr tail as
// error metadata. No timeout is imposed here; cancel via ctx.
func (e *Executor) Execute(ctx context.Context, job domain.CompilerJob, input json.RawMessage) (json.RawMessage, error) {
	binary, err := e.resolveBinary(job.Kind, job.Version.String())
	if err != nil {
		return nil, err
	}

	//nolint:gosec // binary is resolved from the configured compiler directory
	cmd := exec.CommandContext(ctx, binary, "--standard-json")
	cmd.Stdin = bytes.NewReader(input)

	var stdout bytes.Buffer
	stderr := &tailWriter{limit: stderrTailLimit}
	cmd.Stdout = &stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		perr := zerr.With(zerr.Wrap(err, "compiler process failed"), "job", job.ID)
		perr = zerr.With(perr, "binary", binary)
		perr = zerr.With(perr, "exit_code", exitCode)
		return nil, zerr.With(perr, "stderr_tail", stderr.String())
	}

	return stdout.Bytes(), nil
}

// resolveBinary finds the compiler binary for a kind and version. Candidates
// in the binary directory are tried most-specific first ("solc-v0.8.26",
// then "solc-0.8.26"); a bare kind name on PATH is the last resort for
// setups that manage versions externally.
func (e *Executor) resolveBinary(kind domain.CompilerKind, version string) (string, error) {
	if e.binDir != "" {
		candidates := []string{
			fmt.Sprintf("%s-v%s", kind, version),
			fmt.Sprintf("%s-%s", kind, version),
		}
		for _, name := range candidates {
			path := filepath.Join(e.binDir, name)
			if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
				return path, nil
			}
		}
	}

	if path, err := exec.LookPath(string(kind)); err == nil {
		return path, nil
	}

	err := zerr.With(zerr.New("compiler binary not found"), "compiler", string(kind))
	return "", zerr.With(err, "version", version)
}

// tailWriter keeps the trailing bytes of everything written to it.
type tailWriter struct {
	limit int
	buf   []byte
}

func (w *tailWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	if len(w.buf) > w.limit {
		w.buf = w.buf[len(w.buf)-w.limit:]
	}
	return len(p), nil
}

func (w *tailWriter) String() string {
	return string(w.buf)
}

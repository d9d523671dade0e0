package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"

	"aether/cmd/aether/codegen"
)

// Defaults used when the corresponding Checker field is zero.
const (
	DefaultCommand = "cargo"
	DefaultTimeout = 5 * time.Minute
)

// DefaultArgs are passed when Command is also left at its default.
var DefaultArgs = []string{"check"}

// Checker compile-checks a generated crate in a throwaway directory.
type Checker struct {
	Command string
	Args    []string
	// Timeout bounds a single run. Zero means DefaultTimeout, negative means
	// no limit beyond the caller's context.
	Timeout time.Duration
	TempDir string
	Logger  *slog.Logger
}

// Result of one compile check. Diagnostics holds stdout and stderr of the
// toolchain, unmodified and interleaved.
type Result struct {
	OK          bool
	Diagnostics string
	Elapsed     time.Duration
	TimedOut    bool
}

func (c Checker) withDefaults() Checker {
	if c.Command == "" {
		c.Command = DefaultCommand
		if c.Args == nil {
			c.Args = DefaultArgs
		}
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.TempDir == "" {
		c.TempDir = os.TempDir()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// Check stages b under <TempDir>/aether_check_<uuid> and runs
// `<Command> <Args...> --manifest-path <dir>/Cargo.toml` there.
//
// A failing compile is not an error: it comes back as a Result with OK unset.
// Errors are returned only when staging fails or the command cannot be
// started. The staging directory is always removed.
func (c Checker) Check(ctx context.Context, b Bundle) (Result, error) {
	c = c.withDefaults()
	log := c.Logger

	dir := filepath.Join(c.TempDir, "aether_check_"+uuid.NewString())
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			log.Warn("staging directory not removed", "dir", dir, "err", err)
		}
	}()

	log.Debug("staging crate", "dir", dir, "files", len(b.Files), "assets", len(b.Assets))
	if err := writeBundle(dir, b); err != nil {
		return Result{}, fmt.Errorf("staging %s: %w", dir, err)
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	args := append(slices.Clone(c.Args), "--manifest-path", filepath.Join(dir, codegen.ManifestPath))
	cmd := exec.CommandContext(ctx, c.Command, args...)
	cmd.Dir = dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	cmd.Cancel = func() error {
		return killTree(int32(cmd.Process.Pid))
	}
	cmd.WaitDelay = 5 * time.Second

	log.Debug("running toolchain", "command", cmd.String())
	start := time.Now()
	err := cmd.Run()
	res := Result{Diagnostics: out.String(), Elapsed: time.Since(start)}
	log.Debug("toolchain finished", "elapsed", res.Elapsed, "err", err)

	switch {
	case err == nil:
		res.OK = true
		return res, nil
	case ctx.Err() != nil && cmd.ProcessState != nil:
		res.TimedOut = true
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return res, nil
	}
	return res, fmt.Errorf("running %s: %w", c.Command, err)
}

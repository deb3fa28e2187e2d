// Package compiler turns résumé markup into PDF by running the Typst
// command line compiler in a scratch copy of a theme directory.
package compiler

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/shlex"
	"github.com/otiai10/copy"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/flashresume/flashresume/pkg/theme"
)

const (
	DefaultCommand = "typst compile"
	DefaultTimeout = 30 * time.Second

	outputFile = "output.pdf"
	pdfMIME    = "application/pdf"
)

var ErrEmptyCommand = errors.New("compiler command is empty")

// Compiler renders complete markup into a binary document.
type Compiler interface {
	Compile(ctx context.Context, text []byte) ([]byte, error)
}

// Error is returned when the compiler process fails. Stderr carries the
// diagnostics of the compiler.
type Error struct {
	Stderr   string
	ExitCode int
	Err      error
}

func (e *Error) Error() string {
	if e.Stderr == "" {
		return "compilation failed: " + e.Err.Error()
	}
	return "compilation failed: " + e.Stderr
}

func (e *Error) Unwrap() error { return e.Err }

type Typst struct {
	args     []string
	themeDir string
	mainFile string
	timeout  time.Duration
	logger   *zap.Logger
}

var _ Compiler = (*Typst)(nil)

type Option func(*Typst)

// WithThemeDir sets the directory copied next to the compiled file so
// that relative imports of the theme resolve.
func WithThemeDir(dir string) Option {
	return func(t *Typst) {
		t.themeDir = dir
	}
}

func WithMainFile(name string) Option {
	return func(t *Typst) {
		t.mainFile = name
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(t *Typst) {
		t.timeout = timeout
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(t *Typst) {
		t.logger = logger
	}
}

// NewTypst creates a compiler running command. The input and output paths
// are appended to its arguments.
func NewTypst(command string, opts ...Option) (*Typst, error) {
	args, err := shlex.Split(command)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to split compiler command %q", command)
	}
	if len(args) == 0 {
		return nil, errors.WithStack(ErrEmptyCommand)
	}

	t := &Typst{args: args}

	for _, opt := range opts {
		opt(t)
	}

	if t.mainFile == "" {
		t.mainFile = theme.DefaultMainFile
	}
	if t.timeout <= 0 {
		t.timeout = DefaultTimeout
	}
	if t.logger == nil {
		t.logger = zap.NewNop()
	}

	return t, nil
}

func (t *Typst) Compile(ctx context.Context, text []byte) ([]byte, error) {
	workDir, err := os.MkdirTemp("", "flashresume-compile-*")
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			t.logger.Info("failed to remove compile workspace", zap.String("dir", workDir), zap.Error(err))
		}
	}()

	if t.themeDir != "" {
		if err := copy.Copy(t.themeDir, workDir); err != nil {
			return nil, errors.Wrapf(err, "failed to copy theme %q", t.themeDir)
		}
	}

	input := "temp_" + t.mainFile
	if err := os.WriteFile(filepath.Join(workDir, input), text, 0o600); err != nil {
		return nil, errors.WithStack(err)
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	args := append(append([]string(nil), t.args[1:]...), input, outputFile)

	cmd := exec.CommandContext(ctx, t.args[0], args...)
	cmd.Dir = workDir
	cmd.WaitDelay = time.Second
	setProcessGroup(cmd)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	t.logger.Info("compiling", zap.String("command", t.args[0]), zap.Strings("args", args), zap.String("theme", t.themeDir))

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, &Error{Err: errors.Errorf("timed out after %s", t.timeout), ExitCode: -1}
		}

		cerr := &Error{
			Stderr:   strings.TrimSpace(stderr.String()),
			ExitCode: -1,
			Err:      err,
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			cerr.ExitCode = exitErr.ExitCode()
		}

		t.logger.Info("compilation failed", zap.Int("exit_code", cerr.ExitCode), zap.String("stderr", cerr.Stderr))

		return nil, cerr
	}

	data, err := os.ReadFile(filepath.Join(workDir, outputFile))
	if err != nil {
		return nil, errors.Wrap(err, "output file was not created")
	}

	if detected := mimetype.Detect(data); !detected.Is(pdfMIME) {
		return nil, errors.Errorf("unexpected output type %s", detected.String())
	}

	t.logger.Info("compiled", zap.Int("size", len(data)))

	return data, nil
}

// Version runs the compiler binary with --version and extracts the first
// semantic version from its output.
func (t *Typst) Version(ctx context.Context) (*semver.Version, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, t.args[0], "--version").Output()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to run %s --version", t.args[0])
	}

	for _, field := range strings.Fields(string(out)) {
		if v, err := semver.NewVersion(field); err == nil {
			return v, nil
		}
	}

	return nil, errors.Errorf("no version in %q", strings.TrimSpace(string(out)))
}

// CheckVersion fails when the compiler is older than minVersion. An empty
// minVersion accepts any version.
func (t *Typst) CheckVersion(ctx context.Context, minVersion string) (*semver.Version, error) {
	v, err := t.Version(ctx)
	if err != nil {
		return nil, err
	}
	if minVersion == "" {
		return v, nil
	}

	constraint, err := semver.NewConstraint(">= " + minVersion)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid minimum version %q", minVersion)
	}
	if !constraint.Check(v) {
		return v, errors.Errorf("compiler version %s is older than %s", v, minVersion)
	}

	return v, nil
}

// Package runner executes scripts under a root directory as child processes
// and captures their output.
package runner

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jbvmio/scripthub"
	"github.com/jbvmio/scripthub/powershell"
	"go.uber.org/zap"
)

// ErrScriptNotFound is returned when the resolved script path does not exist.
var ErrScriptNotFound = errors.New("script file not found")

// Result is the outcome of a run that started and exited. Output holds stdout
// on success and stderr on failure.
type Result struct {
	ID       string
	Success  bool
	Output   string
	ExitCode int
	Duration time.Duration
}

// exitCoder is satisfied by *exec.ExitError.
type exitCoder interface {
	ExitCode() int
}

// DefaultInterpreters maps lowercase file extensions to the command prefix
// used to run them. Extensions not listed are executed directly.
func DefaultInterpreters() map[string][]string {
	return map[string][]string{
		`.js`:  {`node`},
		`.mjs`: {`node`},
		`.sh`:  {`sh`},
		`.py`:  {`python3`},
		`.ps1`: powershell.Interpreter(),
	}
}

// Runner resolves script paths against a root directory and runs them.
type Runner struct {
	root         string
	workDir      string
	interpreters map[string][]string
	exec         scripthub.Executor
	logger       *zap.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithInterpreters merges the given extension mappings over the defaults. An
// empty command prefix means the file is executed directly.
func WithInterpreters(m map[string][]string) Option {
	return func(r *Runner) {
		for ext, cmd := range m {
			ext = strings.ToLower(ext)
			if !strings.HasPrefix(ext, `.`) {
				ext = `.` + ext
			}
			r.interpreters[ext] = cmd
		}
	}
}

// WithWorkDir sets the working directory of spawned scripts. When unset they
// run in the server's working directory. It has no effect with WithExecutor.
func WithWorkDir(dir string) Option {
	return func(r *Runner) {
		r.workDir = dir
	}
}

// WithExecutor replaces the process executor.
func WithExecutor(e scripthub.Executor) Option {
	return func(r *Runner) {
		r.exec = e
	}
}

// New returns a Runner rooted at root.
func New(root string, L *zap.Logger, opts ...Option) *Runner {
	r := &Runner{
		root:         root,
		interpreters: DefaultInterpreters(),
		logger:       L.With(zap.String(`process`, `runner`)),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.exec == nil {
		r.exec = &Process{Dir: r.workDir}
	}
	return r
}

// Run executes scriptPath with args appended and blocks until the process
// exits. A non-zero exit is reported through Result, not as an error; an error
// is returned only when the script is missing or the process could not run.
func (r *Runner) Run(scriptPath string, args []string) (*Result, error) {
	id := uuid.NewString()
	fullPath := filepath.Join(r.root, scriptPath)
	L := r.logger.With(zap.String(`run`, id), zap.String(`script`, scriptPath))
	L.Info("received request to run script", zap.Strings(`args`, args), zap.String(`path`, fullPath))

	if !scripthub.FileExists(fullPath) {
		L.Error("script file does not exist", zap.String(`path`, fullPath))
		return nil, fmt.Errorf("%w: %s", ErrScriptNotFound, scriptPath)
	}

	var stdout, stderr bytes.Buffer
	outW := io.MultiWriter(&stdout, &scripthub.LogWriter{L: L, Msg: "script output", Stream: `stdout`, Level: zap.InfoLevel})
	errW := io.MultiWriter(&stderr, &scripthub.LogWriter{L: L, Msg: "script error", Stream: `stderr`, Level: zap.ErrorLevel})

	start := time.Now()
	err := r.exec.Execute(outW, errW, r.Command(fullPath, args)...)
	res := &Result{ID: id, Duration: time.Since(start)}

	var ec exitCoder
	switch {
	case err == nil:
		res.Success = true
		res.Output = stdout.String()
	case errors.As(err, &ec):
		res.ExitCode = ec.ExitCode()
		res.Output = stderr.String()
	default:
		L.Error("error running script", zap.Error(err))
		return nil, fmt.Errorf("error running script %q: %w", scriptPath, err)
	}
	L.Info("script process closed", zap.Int(`code`, res.ExitCode), zap.Duration(`duration`, res.Duration))
	return res, nil
}

// Command returns the full argument list used to run the script at fullPath.
func (r *Runner) Command(fullPath string, args []string) []string {
	prefix := r.interpreters[strings.ToLower(filepath.Ext(fullPath))]
	cmd := make([]string, 0, len(prefix)+1+len(args))
	cmd = append(cmd, prefix...)
	cmd = append(cmd, fullPath)
	return append(cmd, args...)
}

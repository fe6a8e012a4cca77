package runner

import (
	"errors"
	"fmt"
	"io"
	"os/exec"

	"golang.org/x/sync/errgroup"
)

// Process executes commands as local child processes. The child inherits the
// server's environment, and its working directory too when Dir is empty.
type Process struct {
	Dir string
}

// Execute starts args[0] with the remaining args and drains its stdout and
// stderr concurrently until both are closed, then waits for the exit status.
func (p *Process) Execute(stdout, stderr io.Writer, args ...string) error {
	if len(args) == 0 {
		return errors.New("command is required")
	}
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Dir = p.Dir

	outPipe, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("error creating stdout pipe: %w", err)
	}
	errPipe, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("error creating stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("error starting %q: %w", args[0], err)
	}

	var g errgroup.Group
	g.Go(func() error { return drain(stdout, outPipe) })
	g.Go(func() error { return drain(stderr, errPipe) })
	copyErr := g.Wait()

	// Wait closes the pipes, so it must only run once both readers are done.
	if err := cmd.Wait(); err != nil {
		return err
	}
	if copyErr != nil {
		return fmt.Errorf("error reading output of %q: %w", args[0], copyErr)
	}
	return nil
}

// drain copies r to w until EOF. If w fails, the rest of r is discarded so the
// child never blocks on a full pipe.
func drain(w io.Writer, r io.Reader) error {
	if _, err := io.Copy(w, r); err != nil {
		io.Copy(io.Discard, r)
		return err
	}
	return nil
}

package execution

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"goldrun/internal/config"
	"goldrun/internal/domain"
	gferrors "goldrun/internal/errors"
)

// killGrace bounds how long output is still read after the subject's group was killed
const killGrace = time.Second

// Runner executes the subject executable, one fresh process per request
type Runner struct {
	subjectPath string
	timeout     time.Duration
	env         []string
}

// NewRunner creates a new Runner
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{
		subjectPath: cfg.SubjectPath,
		timeout:     cfg.Timeout,
	}
}

// SetEnv adds variables to the subject's environment.
func (r *Runner) SetEnv(env ...string) {
	r.env = append(r.env, env...)
}

// SubjectPath returns the executable being run.
func (r *Runner) SubjectPath() string {
	return r.subjectPath
}

// Timeout returns the per-run time bound.
func (r *Runner) Timeout() time.Duration {
	return r.timeout
}

// Check reports a launch failure before any case runs when the subject is missing or not executable.
func (r *Runner) Check() error {
	if filepath.Base(r.subjectPath) == r.subjectPath {
		if _, err := exec.LookPath(r.subjectPath); err != nil {
			return gferrors.SubjectLaunchFailure(r.subjectPath, err)
		}
		return nil
	}

	info, err := os.Stat(r.subjectPath)
	if err != nil {
		return gferrors.SubjectLaunchFailure(r.subjectPath, err)
	}
	if info.IsDir() {
		return gferrors.SubjectLaunchFailure(r.subjectPath, errors.New("is a directory"))
	}
	return nil
}

// Run starts the subject, waits up to the timeout and captures its output.
// The subject is always reaped before Run returns, and on unix its whole process
// group is killed once it exits, so no descendant outlives the case.
func (r *Runner) Run(ctx context.Context, req Request) domain.ExecutionResult {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.subjectPath, req.Args()...)
	if len(r.env) > 0 {
		cmd.Env = append(os.Environ(), r.env...)
	}
	// Without an input path the subject reads its default source; stdin stays empty.
	cmd.Stdin = nil
	cmd.WaitDelay = killGrace
	configureKill(cmd)

	stdoutR, stdoutW, err := os.Pipe()
	if err != nil {
		return domain.ExecutionResult{Status: domain.StatusLaunchFailed, Err: err}
	}
	stderrR, stderrW, err := os.Pipe()
	if err != nil {
		stdoutR.Close()
		stdoutW.Close()
		return domain.ExecutionResult{Status: domain.StatusLaunchFailed, Err: err}
	}
	cmd.Stdout = stdoutW
	cmd.Stderr = stderrW

	start := time.Now()
	err = cmd.Start()
	// The subject holds its own copies of the write ends from here on.
	stdoutW.Close()
	stderrW.Close()
	if err != nil {
		stdoutR.Close()
		stderrR.Close()
		return domain.ExecutionResult{
			Status: domain.StatusLaunchFailed,
			Err:    err,
		}
	}

	var stdout, stderr bytes.Buffer
	var wg sync.WaitGroup
	wg.Add(2)
	go capture(&wg, &stdout, stdoutR)
	go capture(&wg, &stderr, stderrR)

	// The exit status is not part of the contract: stdout is compared whatever the code.
	_ = cmd.Wait()
	duration := time.Since(start)

	// Anything the subject left behind dies with it, so capture ends at the subject's exit.
	killGroup(cmd)
	drain(&wg, killGrace, stdoutR, stderrR)

	result := domain.ExecutionResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Status:   domain.StatusCompleted,
		Duration: duration,
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		result.Status = domain.StatusTimedOut
	}
	return result
}

func capture(wg *sync.WaitGroup, buf *bytes.Buffer, r io.Reader) {
	defer wg.Done()
	_, _ = io.Copy(buf, r)
}

// drain waits for the readers to reach EOF, closing the pipes after grace
// when a process outside the subject's group still holds a write end.
func drain(wg *sync.WaitGroup, grace time.Duration, pipes ...*os.File) {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(grace):
		for _, p := range pipes {
			p.Close()
		}
		<-done
	}
	for _, p := range pipes {
		p.Close()
	}
}

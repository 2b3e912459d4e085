package setupctl

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"syscall"
	"time"

	"checkctl/internal/daemonapi"
)

// daemonPattern is the invocation signature matched in the process table.
const daemonPattern = "ollama serve"

// Supervisor owns the daemon lifecycle. Every operation re-derives its state
// from the live process table; the PID file is a cleanup hint only. Two
// independent invocations may therefore race on Start: both can observe
// "not running" and both spawn, and the post-spawn re-verification passes
// for either. That window is accepted rather than closed with a
// cross-process lock.
type Supervisor struct {
	Bin     string // daemon binary name
	BaseURL string // daemon HTTP endpoint
	PIDFile string
	LogFile string // daemon stdout/stderr when spawned by us

	Settle     time.Duration // pause between spawn and the liveness re-check
	GraceWait  time.Duration // wait after SIGTERM before escalating
	KillWait   time.Duration // wait after SIGKILL before giving up
	RestartGap time.Duration // pause between stop and start
	ProbeWait  time.Duration // per-probe timeout for status checks
	VerifyWait time.Duration // total budget for post-install verification

	// Injection points for tests. Defaults query the real process table,
	// spawn the real daemon and signal real processes.
	findPID func() (int, bool)
	spawn   func() (int, error)
	signal  func(pid int, sig syscall.Signal) error
	probe   func(ctx context.Context) error
}

func newSupervisor(cfg *Config) *Supervisor {
	s := &Supervisor{
		Bin:        "ollama",
		BaseURL:    cfg.DaemonURL,
		PIDFile:    cfg.PIDFile,
		LogFile:    "ollama.log",
		Settle:     time.Duration(envInt("CHECKCTL_SETTLE_SECONDS", 3)) * time.Second,
		GraceWait:  2 * time.Second,
		KillWait:   2 * time.Second,
		RestartGap: time.Second,
		ProbeWait:  2 * time.Second,
		VerifyWait: 15 * time.Second,
	}
	s.findPID = s.findDaemonPID
	s.spawn = s.spawnDaemon
	s.signal = func(pid int, sig syscall.Signal) error { return syscall.Kill(pid, sig) }
	s.probe = s.probeListing
	return s
}

// Status is the per-call view of the daemon. Alive and Ready are distinct: a
// freshly spawned daemon is alive before it accepts requests.
type Status struct {
	Alive bool
	PID   int
	Ready bool
}

// findDaemonPID queries the process table for the daemon's invocation
// signature. Several PIDs may match (runner children); the first is the
// serving process.
func (s *Supervisor) findDaemonPID() (int, bool) {
	out, err := runCmdOutput(context.Background(), "pgrep", "-f", daemonPattern)
	if err != nil || out == "" {
		return 0, false
	}
	for _, field := range strings.Fields(out) {
		if pid, err := strconv.Atoi(field); err == nil {
			return pid, true
		}
	}
	return 0, false
}

// spawnDaemon starts the daemon detached in its own session so it outlives
// this invocation, with output redirected to the daemon log file.
func (s *Supervisor) spawnDaemon() (int, error) {
	cmd := exec.Command(s.Bin, "serve")
	if logf, err := os.OpenFile(s.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
		cmd.Stdout = logf
		cmd.Stderr = logf
	} else {
		debug("open %s: %v; daemon output discarded", s.LogFile, err)
	}
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return 0, err
	}
	pid := cmd.Process.Pid
	// Reap in the background so a fast-failing daemon does not linger as a
	// zombie while we settle.
	go func() { _ = cmd.Wait() }()
	return pid, nil
}

func (s *Supervisor) probeListing(ctx context.Context) error {
	_, err := daemonapi.NewClient(s.BaseURL).Tags(ctx)
	return err
}

// Start spawns the daemon unless the process table already holds one.
func (s *Supervisor) Start() error {
	if pid, ok := s.findPID(); ok {
		info("daemon already running (pid %d)", pid)
		return nil
	}
	info("starting %q...", daemonPattern)
	pid, err := s.spawn()
	if err != nil {
		return fmt.Errorf("%w: spawn %s: %v", ErrStartFailed, s.Bin, err)
	}
	// Spawn success is not liveness: a misconfigured daemon exits right
	// away. Settle, then require it in the process table.
	time.Sleep(s.Settle)
	livePID, ok := s.findPID()
	if !ok {
		return fmt.Errorf("%w: process %d exited during startup; check %s", ErrStartFailed, pid, s.LogFile)
	}
	if err := writePIDHint(s.PIDFile, livePID); err != nil {
		warn("could not write pid file %s: %v", s.PIDFile, err)
	}
	info("daemon started (pid %d)", livePID)
	return nil
}

// Stop terminates the daemon with SIGTERM, escalating to SIGKILL after
// GraceWait. The escalation bounds shutdown latency while still letting a
// well-behaved daemon flush its state.
func (s *Supervisor) Stop() error {
	pid, ok := s.findPID()
	if !ok {
		info("daemon not running")
		clearPIDHint(s.PIDFile) // drop a stale hint if one was left behind
		return nil
	}
	info("stopping daemon (pid %d)...", pid)
	if err := s.signal(pid, syscall.SIGTERM); err != nil {
		debug("SIGTERM pid %d: %v", pid, err)
	}
	time.Sleep(s.GraceWait)
	if _, ok := s.findPID(); !ok {
		clearPIDHint(s.PIDFile)
		info("daemon stopped")
		return nil
	}
	warn("daemon did not exit after SIGTERM; escalating to SIGKILL")
	if err := s.signal(pid, syscall.SIGKILL); err != nil {
		debug("SIGKILL pid %d: %v", pid, err)
	}
	time.Sleep(s.KillWait)
	if _, ok := s.findPID(); ok {
		return fmt.Errorf("%w: pid %d survived SIGKILL; inspect it manually (ps -p %d)", ErrStopFailed, pid, pid)
	}
	clearPIDHint(s.PIDFile)
	info("daemon stopped")
	return nil
}

// Restart is stop, a short gap, then start. A failed stop aborts the
// restart: starting on top of an unkillable instance risks port contention.
func (s *Supervisor) Restart() error {
	if err := s.Stop(); err != nil {
		return fmt.Errorf("restart aborted: %w", err)
	}
	time.Sleep(s.RestartGap)
	return s.Start()
}

// CurrentStatus reports process-table liveness plus API readiness.
func (s *Supervisor) CurrentStatus() Status {
	st := Status{}
	pid, ok := s.findPID()
	if !ok {
		return st
	}
	st.Alive, st.PID = true, pid
	ctx, cancel := context.WithTimeout(context.Background(), s.ProbeWait)
	defer cancel()
	st.Ready = s.probe(ctx) == nil
	return st
}

// Verify ensures the daemon is up and answering its listing endpoint,
// starting it first when needed. Used as the final gate after setup.
func (s *Supervisor) Verify() error {
	if _, ok := s.findPID(); !ok {
		if err := s.Start(); err != nil {
			return fmt.Errorf("%w: %v", ErrVerificationFailed, err)
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.VerifyWait)
	defer cancel()
	for {
		if err := s.probe(ctx); err == nil {
			info("daemon is serving at %s", s.BaseURL)
			return nil
		}
		select {
		case <-time.After(time.Second):
		case <-ctx.Done():
			return fmt.Errorf("%w: %s did not answer /api/tags within %s; check %s", ErrVerificationFailed, s.BaseURL, s.VerifyWait, s.LogFile)
		}
	}
}

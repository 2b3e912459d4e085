package setupctl

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Unified command runner
type Cmd struct {
	Path   string
	Args   []string
	Env    map[string]string // additional env vars
	Dir    string            // working directory
	Stream bool              // if true, stream stdout/err via scanner
}

func RunCmd(ctx context.Context, c Cmd) error {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	if c.Dir != "" {
		cmd.Dir = c.Dir
	}
	// inherit environment
	cmd.Env = os.Environ()
	for k, v := range c.Env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
	}
	if c.Stream {
		stdout, _ := cmd.StdoutPipe()
		stderr, _ := cmd.StderrPipe()
		if err := cmd.Start(); err != nil {
			return err
		}
		go stream("OUT", stdout)
		go stream("ERR", stderr)
		return cmd.Wait()
	}
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Helpers built on RunCmd
func runCmdVerbose(ctx context.Context, name string, args ...string) error {
	return RunCmd(ctx, Cmd{Path: name, Args: args, Stream: false})
}

func runCmdStreaming(ctx context.Context, name string, args ...string) error {
	return RunCmd(ctx, Cmd{Path: name, Args: args, Stream: true})
}

// runCmdOutput runs a command and returns its trimmed stdout.
func runCmdOutput(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	err := cmd.Run()
	return strings.TrimSpace(out.String()), err
}

// runMaybeSudo tries sudo if not root, else runs directly.
func runMaybeSudo(name string, args ...string) error {
	if os.Geteuid() == 0 {
		return runCmdVerbose(context.Background(), name, args...)
	}
	if _, err := exec.LookPath("sudo"); err == nil {
		return runCmdVerbose(context.Background(), "sudo", append([]string{name}, args...)...)
	}
	return runCmdVerbose(context.Background(), name, args...)
}

type ioReader interface {
	Read(p []byte) (n int, err error)
}

func stream(prefix string, r ioReader) {
	s := bufio.NewScanner(r)
	for s.Scan() {
		fmt.Println(s.Text())
	}
}

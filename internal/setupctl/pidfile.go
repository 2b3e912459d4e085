package setupctl

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

// The PID file is a best-effort cache for cleanup and diagnostics, written
// after a confirmed start and removed after a confirmed (or assumed) stop.
// It is never consulted for liveness: the process table is the single
// source of truth, so a stale or missing file changes nothing.

func writePIDHint(path string, pid int) error {
	return os.WriteFile(path, []byte(strconv.Itoa(pid)+"\n"), 0o644)
}

func readPIDHint(path string) (int, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}

func clearPIDHint(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		debug("remove pid file %s: %v", path, err)
	}
}

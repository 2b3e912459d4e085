package setupctl

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Minimum interpreter version accepted for the document-processing CLI's
// dependencies. Running on anything older produces confusing failures deep
// inside those packages, so below-minimum is rejected up front.
const (
	pythonMinMajor = 3
	pythonMinMinor = 8
)

const ollamaInstallScript = "https://ollama.com/install.sh"

// ensurePython makes sure a python3 interpreter at or above the minimum
// version is on PATH, installing one via the platform's package manager when
// absent. An interpreter that is present but too old is a fatal
// configuration error, distinct from absence: it is never auto-replaced.
func ensurePython(platform HostPlatform) error {
	if _, err := exec.LookPath("python3"); err != nil {
		info("python3 not found; installing...")
		if err := installPython(platform); err != nil {
			return err
		}
	}
	out, err := runCmdOutput(context.Background(), "python3", "--version")
	if err != nil {
		return fmt.Errorf("%w: python3 --version: %v", ErrInstallationFailed, err)
	}
	major, minor, err := parsePythonVersion(out)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInstallationFailed, err)
	}
	if !pythonVersionOK(major, minor) {
		return fmt.Errorf("%w: python %d.%d is below the minimum %d.%d; upgrade python and re-run",
			ErrInstallationFailed, major, minor, pythonMinMajor, pythonMinMinor)
	}
	debug("python %d.%d accepted", major, minor)

	// pip ships inside the venv we create later; a missing host pip is only
	// worth a note.
	if err := runCmdOutputSilent("python3", "-m", "pip", "--version"); err != nil {
		debug("host pip not available: %v", err)
	}
	return nil
}

func runCmdOutputSilent(name string, args ...string) error {
	_, err := runCmdOutput(context.Background(), name, args...)
	return err
}

func installPython(platform HostPlatform) error {
	switch platform {
	case PlatformDarwin:
		if err := runCmdStreaming(context.Background(), "brew", "install", "python3"); err != nil {
			return fmt.Errorf("%w: brew install python3: %v (install python3 manually and re-run)", ErrInstallationFailed, err)
		}
	case PlatformLinux, PlatformWSL:
		if err := runMaybeSudo("apt-get", "install", "-y", "python3", "python3-venv", "python3-pip"); err != nil {
			return fmt.Errorf("%w: apt-get install python3: %v (install python3 manually and re-run)", ErrInstallationFailed, err)
		}
	default:
		return fmt.Errorf("%w: cannot install python on %s", ErrUnsupportedPlatform, platform)
	}
	return nil
}

// parsePythonVersion extracts major.minor from `python3 --version` output,
// e.g. "Python 3.11.4".
func parsePythonVersion(out string) (major, minor int, err error) {
	fields := strings.Fields(out)
	if len(fields) < 2 {
		return 0, 0, fmt.Errorf("unexpected python version output: %q", out)
	}
	parts := strings.Split(fields[len(fields)-1], ".")
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("unexpected python version output: %q", out)
	}
	major, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("unexpected python version output: %q", out)
	}
	minor, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("unexpected python version output: %q", out)
	}
	return major, minor, nil
}

func pythonVersionOK(major, minor int) bool {
	if major != pythonMinMajor {
		return major > pythonMinMajor
	}
	return minor >= pythonMinMinor
}

// ensureOllama makes sure the daemon binary is on PATH. Present and !force
// short-circuits; installation is never silent. Installer failures are fatal
// and not retried automatically: unattended retry of a privileged network
// install is the wrong policy, so the user is told to retry by hand.
func ensureOllama(platform HostPlatform, force bool) error {
	if _, err := exec.LookPath("ollama"); err == nil && !force {
		info("ollama already installed")
		return nil
	}
	switch platform {
	case PlatformDarwin:
		info("installing ollama via homebrew...")
		if err := runCmdStreaming(context.Background(), "brew", "install", "ollama"); err != nil {
			return fmt.Errorf("%w: brew install ollama: %v (retry manually: brew install ollama)", ErrInstallationFailed, err)
		}
	case PlatformLinux, PlatformWSL:
		info("installing ollama via the vendor script...")
		script := fmt.Sprintf("curl -fsSL %s | sh", ollamaInstallScript)
		if err := runCmdStreaming(context.Background(), "sh", "-c", script); err != nil {
			return fmt.Errorf("%w: vendor install script: %v (retry manually: %s)", ErrInstallationFailed, err, script)
		}
	default:
		return fmt.Errorf("%w: cannot install ollama on %s", ErrUnsupportedPlatform, platform)
	}
	if _, err := exec.LookPath("ollama"); err != nil {
		return fmt.Errorf("%w: ollama still not on PATH after install; open a new shell or install manually", ErrInstallationFailed)
	}
	info("ollama installed")
	return nil
}

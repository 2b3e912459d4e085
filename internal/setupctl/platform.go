package setupctl

import (
	"os"
	"runtime"
	"strings"
)

// HostPlatform selects the install strategy for the current host.
type HostPlatform int

const (
	PlatformUnsupported HostPlatform = iota
	PlatformLinux
	PlatformDarwin
	// PlatformWSL is a POSIX subsystem on a Windows host. Installation works
	// like Linux, but callers may want the distinction for messaging.
	PlatformWSL
)

func (p HostPlatform) String() string {
	switch p {
	case PlatformLinux:
		return "linux"
	case PlatformDarwin:
		return "macos"
	case PlatformWSL:
		return "windows (wsl)"
	default:
		return "unsupported"
	}
}

// Detect classifies the running host. It is total: unknown systems map to
// PlatformUnsupported instead of an error, so callers decide whether to
// abort. Pure supervisor operations never need the result.
func Detect() HostPlatform {
	return classifyPlatform(runtime.GOOS, readProcVersion())
}

func classifyPlatform(goos, procVersion string) HostPlatform {
	switch goos {
	case "darwin":
		return PlatformDarwin
	case "linux":
		// WSL kernels identify themselves in /proc/version.
		if strings.Contains(strings.ToLower(procVersion), "microsoft") {
			return PlatformWSL
		}
		return PlatformLinux
	default:
		return PlatformUnsupported
	}
}

func readProcVersion() string {
	data, err := os.ReadFile("/proc/version")
	if err != nil {
		return ""
	}
	return string(data)
}

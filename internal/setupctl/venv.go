package setupctl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// VenvInfo describes a managed virtualenv.
type VenvInfo struct {
	Name    string
	Root    string
	Created bool // false when an existing environment was reused
}

// fallbackPyDeps is installed when no requirements manifest is present.
var fallbackPyDeps = []string{"requests", "PyPDF2", "python-docx", "reportlab"}

// ensureVenv creates the named virtualenv, or reuses it when it already
// exists and force is false. Force recreation is delete-then-create: a crash
// between the two leaves no environment rather than a half-written one.
func ensureVenv(name, pythonVersion string, force bool) (VenvInfo, error) {
	if active := os.Getenv("VIRTUAL_ENV"); active != "" {
		warn("a virtualenv is already active (%s); the managed environment is separate from it", active)
	}
	root, err := expandHome(name)
	if err != nil {
		return VenvInfo{}, err
	}
	if pathExists(root) {
		if !force {
			warn("virtualenv %q already exists; reusing it (pass --force to recreate)", name)
			return VenvInfo{Name: name, Root: root, Created: false}, nil
		}
		info("removing existing virtualenv %q", name)
		if err := os.RemoveAll(root); err != nil {
			return VenvInfo{}, fmt.Errorf("remove %s: %w", root, err)
		}
	}
	py := pythonBin(pythonVersion)
	info("creating virtualenv %q with %s", name, py)
	if err := runCmdVerbose(context.Background(), py, "-m", "venv", root); err != nil {
		return VenvInfo{}, fmt.Errorf("create venv %s: %w", root, err)
	}
	return VenvInfo{Name: name, Root: root, Created: true}, nil
}

// pythonBin maps a requested version like "3.11" to the interpreter name.
func pythonBin(version string) string {
	if version == "" || version == "3" {
		return "python3"
	}
	return "python" + version
}

// resolveActivation returns the venv's activation script, trying the POSIX
// layout first and the Windows layout second. This is the one place the
// structure of a previously created environment is double-checked.
func resolveActivation(root string) (string, error) {
	for _, rel := range []string{
		filepath.Join("bin", "activate"),
		filepath.Join("Scripts", "activate"),
	} {
		p := filepath.Join(root, rel)
		if pathExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: no bin/activate or Scripts/activate under %s (recreate with: checkctl setup --force)", ErrActivationNotFound, root)
}

// venvPip returns the pip binary inside the venv, POSIX layout first.
func venvPip(root string) string {
	p := filepath.Join(root, "bin", "pip")
	if pathExists(p) {
		return p
	}
	return filepath.Join(root, "Scripts", "pip")
}

// installVenvDeps installs the document-processing CLI's dependencies into
// the venv. Layered: the requirements manifest when present, the hardcoded
// fallback set otherwise. The caller decides fatality — fatal during initial
// setup, a warning during routine update.
func installVenvDeps(root, requirements string, upgrade bool) error {
	pip := venvPip(root)
	args := []string{"install"}
	if upgrade {
		args = append(args, "--upgrade")
	}
	if requirements != "" && pathExists(requirements) {
		info("installing python dependencies from %s", requirements)
		return runCmdStreaming(context.Background(), pip, append(args, "-r", requirements)...)
	}
	warn("%s not found; installing the fallback dependency set: %s", requirements, strings.Join(fallbackPyDeps, ", "))
	return runCmdStreaming(context.Background(), pip, append(args, fallbackPyDeps...)...)
}

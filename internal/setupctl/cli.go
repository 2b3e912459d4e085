package setupctl

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"checkctl/internal/config"
)

const toolVersion = "1.0.0"

const (
	defaultModel        = "llama3.1:8b-instruct-q8_0"
	defaultVenvName     = "venv"
	defaultDaemonURL    = "http://127.0.0.1:11434"
	defaultPIDFile      = "ollama.pid"
	defaultRequirements = "requirements.txt"
)

// Config is the dispatcher's configuration record, assembled from built-in
// defaults, environment variables, an optional config file and command-line
// flags (highest precedence).
type Config struct {
	Model         string
	VenvName      string
	PythonVersion string
	Requirements  string
	DaemonURL     string
	PIDFile       string

	Force     bool
	SkipModel bool
	SkipDeps  bool
	SkipVenv  bool
	Verbose   bool
	LogLvl    string
}

func defaultConfig() *Config {
	cfg := &Config{
		Model:        envStr("CHECKCTL_MODEL", defaultModel),
		VenvName:     defaultVenvName,
		Requirements: defaultRequirements,
		DaemonURL:    envStr("CHECKCTL_DAEMON_URL", defaultDaemonURL),
		PIDFile:      defaultPIDFile,
		LogLvl:       envStr("CHECKCTL_LOG_LEVEL", "info"),
	}
	applyFileConfig(cfg)
	return cfg
}

// applyFileConfig overlays values from checkctl.{yaml,yml,json,toml} in the
// working directory, or from the file named by CHECKCTL_CONFIG.
func applyFileConfig(cfg *Config) {
	path := os.Getenv("CHECKCTL_CONFIG")
	if path == "" {
		path = config.FindDefault(".")
	}
	if path == "" {
		return
	}
	fc, err := config.Load(path)
	if err != nil {
		warn("config file %s: %v; continuing with defaults", path, err)
		return
	}
	debug("loaded config file %s", path)
	if fc.Model != "" {
		cfg.Model = fc.Model
	}
	if fc.VenvName != "" {
		cfg.VenvName = fc.VenvName
	}
	if fc.PythonVersion != "" {
		cfg.PythonVersion = fc.PythonVersion
	}
	if fc.Requirements != "" {
		cfg.Requirements = fc.Requirements
	}
	if fc.DaemonURL != "" {
		cfg.DaemonURL = fc.DaemonURL
	}
	if fc.PIDFile != "" {
		cfg.PIDFile = fc.PIDFile
	}
}

// isUsageErr classifies errors that should be followed by help text on
// stderr: our own usage sentinel plus cobra's unknown command/flag errors.
func isUsageErr(err error) bool {
	if errors.Is(err, ErrUsage) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "unknown command") ||
		strings.Contains(msg, "unknown flag") ||
		strings.Contains(msg, "unknown shorthand")
}

// MainWithArgs is a testable variant of Main that accepts args explicitly.
// It returns an exit code: 0 for success, 1 for any fatal error.
func MainWithArgs(args []string) int {
	cfg := defaultConfig()
	root := buildRootCmdWith(cfg)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error: "+err.Error())
		if isUsageErr(err) {
			fmt.Fprint(os.Stderr, root.UsageString())
		}
		return 1
	}
	return 0
}

// Main returns an exit code for use by cmd/checkctl.
func Main() int { return MainWithArgs(os.Args[1:]) }

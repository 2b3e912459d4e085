package setupctl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"checkctl/internal/daemonapi"
)

// runSetup is the full provisioning path: platform check, host
// dependencies, virtualenv, daemon start, model pull, verification. Every
// step is idempotent, so re-running setup is always safe.
func runSetup(cfg *Config) error {
	platform := fnDetect()
	info("detected platform: %s", platform)
	if platform == PlatformUnsupported {
		return fmt.Errorf("%w: %s/%s; checkctl supports linux, macOS and Windows via WSL", ErrUnsupportedPlatform, runtime.GOOS, runtime.GOARCH)
	}

	if cfg.SkipDeps {
		info("skipping host dependency installation (--skip-deps)")
	} else {
		if err := fnEnsurePython(platform); err != nil {
			return err
		}
		if err := fnEnsureOllama(platform, cfg.Force); err != nil {
			return err
		}
	}

	if cfg.SkipVenv {
		info("skipping virtualenv creation (--skip-venv)")
	} else {
		env, err := fnEnsureVenv(cfg.VenvName, cfg.PythonVersion, cfg.Force)
		if err != nil {
			return err
		}
		if _, err := resolveActivation(env.Root); err != nil {
			return err
		}
		if err := fnInstallVenvDeps(env.Root, cfg.Requirements, cfg.Force); err != nil {
			return fmt.Errorf("%w: python dependencies: %v", ErrInstallationFailed, err)
		}
	}

	sup := fnNewSupervisor(cfg)
	if err := sup.Start(); err != nil {
		return err
	}

	if cfg.SkipModel {
		info("skipping model pull (--skip-model)")
	} else {
		// pull failures are warnings and never abort setup
		if err := fnPullModel(cfg.Model); err != nil {
			return err
		}
	}

	if err := sup.Verify(); err != nil {
		return err
	}
	info("setup complete; try: checksupport suggest manuscript.pdf")
	return nil
}

func runStart(cfg *Config) error   { return fnNewSupervisor(cfg).Start() }
func runStop(cfg *Config) error    { return fnNewSupervisor(cfg).Stop() }
func runRestart(cfg *Config) error { return fnNewSupervisor(cfg).Restart() }

// runStatus prints the two-part daemon view: process-table liveness and API
// readiness. A PID hint that disagrees with the process table is reported as
// stale, never believed.
func runStatus(cfg *Config) error {
	sup := fnNewSupervisor(cfg)
	st := sup.CurrentStatus()
	if !st.Alive {
		if pid, ok := readPIDHint(cfg.PIDFile); ok {
			warn("stale pid file %s (pid %d); the daemon is not running", cfg.PIDFile, pid)
		}
		info("daemon: not running (start it with: checkctl start)")
		return nil
	}
	info("daemon: running (pid %d)", st.PID)
	if st.Ready {
		info("api: serving at %s", cfg.DaemonURL)
	} else {
		warn("api: process is alive but %s is not answering yet", cfg.DaemonURL)
	}
	return nil
}

// runUninstall removes what setup created: the daemon process, the
// virtualenv and the PID hint. Pulled models live in the daemon's own store
// and are left alone.
func runUninstall(cfg *Config) error {
	sup := fnNewSupervisor(cfg)
	if err := sup.Stop(); err != nil {
		return err
	}
	root, err := expandHome(cfg.VenvName)
	if err != nil {
		return err
	}
	if pathExists(root) {
		info("removing virtualenv %q", cfg.VenvName)
		if err := os.RemoveAll(root); err != nil {
			return fmt.Errorf("remove %s: %w", root, err)
		}
	}
	clearPIDHint(cfg.PIDFile)
	info("uninstalled; pulled models remain under %s (remove with: ollama rm NAME)", filepath.Join(homeDir(), ".ollama", "models"))
	return nil
}

// runUpdate refreshes the venv dependencies and re-pulls the configured
// model. Both steps are best-effort: a routine update must not leave the
// user worse off than before it ran.
func runUpdate(cfg *Config) error {
	root, err := expandHome(cfg.VenvName)
	if err != nil {
		return err
	}
	if !pathExists(root) {
		return fmt.Errorf("no virtualenv %q; run: checkctl setup", cfg.VenvName)
	}
	if _, err := resolveActivation(root); err != nil {
		return err
	}
	if err := fnInstallVenvDeps(root, cfg.Requirements, true); err != nil {
		warn("dependency refresh failed: %v (retry with: checkctl update)", err)
	}
	return fnPullModel(cfg.Model)
}

func runVersion(cfg *Config) error {
	fmt.Printf("checkctl %s\n", toolVersion)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if v, err := daemonapi.NewClient(cfg.DaemonURL).Version(ctx); err == nil {
		fmt.Printf("ollama %s\n", v.Version)
	}
	return nil
}

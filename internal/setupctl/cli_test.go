package setupctl

import (
	"errors"
	"testing"
)

// saveDispatch snapshots the dispatcher-level actions.
func saveDispatch(t *testing.T) {
	t.Helper()
	oldSetup := fnSetup
	oldStatus := fnStatus
	oldStart := fnStart
	oldStop := fnStop
	oldRestart := fnRestart
	oldUninstall := fnUninstall
	oldUpdate := fnUpdate
	oldVersion := fnVersion
	oldPull := fnPullModel
	oldList := fnListModels
	t.Cleanup(func() {
		fnSetup = oldSetup
		fnStatus = oldStatus
		fnStart = oldStart
		fnStop = oldStop
		fnRestart = oldRestart
		fnUninstall = oldUninstall
		fnUpdate = oldUpdate
		fnVersion = oldVersion
		fnPullModel = oldPull
		fnListModels = oldList
	})
}

func TestDispatchRoutesCommands(t *testing.T) {
	saveDispatch(t)
	calls := map[string]int{}
	fnSetup = func(cfg *Config) error { calls["setup"]++; return nil }
	fnStatus = func(cfg *Config) error { calls["status"]++; return nil }
	fnStart = func(cfg *Config) error { calls["start"]++; return nil }
	fnStop = func(cfg *Config) error { calls["stop"]++; return nil }
	fnRestart = func(cfg *Config) error { calls["restart"]++; return nil }
	fnUninstall = func(cfg *Config) error { calls["uninstall"]++; return nil }
	fnUpdate = func(cfg *Config) error { calls["update"]++; return nil }
	fnListModels = func(baseURL string) error { calls["list-models"]++; return nil }

	for _, cmd := range []string{"setup", "status", "start", "stop", "restart", "uninstall", "update", "list-models"} {
		cfg := defaultConfig()
		root := buildRootCmdWith(cfg)
		root.SetArgs([]string{cmd})
		if err := root.Execute(); err != nil {
			t.Fatalf("%s: unexpected err: %v", cmd, err)
		}
		if calls[cmd] != 1 {
			t.Fatalf("%s: dispatched %d times", cmd, calls[cmd])
		}
	}
}

func TestSetupFlagsFillConfig(t *testing.T) {
	saveDispatch(t)
	var seen Config
	fnSetup = func(cfg *Config) error { seen = *cfg; return nil }

	cfg := defaultConfig()
	root := buildRootCmdWith(cfg)
	root.SetArgs([]string{"setup", "-m", "demo-model:1b", "--skip-deps", "--force", "--venv-name", "checksupport_env", "--python-version", "3.11"})
	if err := root.Execute(); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if seen.Model != "demo-model:1b" {
		t.Fatalf("model = %q", seen.Model)
	}
	if !seen.SkipDeps || !seen.Force {
		t.Fatalf("flags not applied: %+v", seen)
	}
	if seen.VenvName != "checksupport_env" || seen.PythonVersion != "3.11" {
		t.Fatalf("venv flags not applied: %+v", seen)
	}
	if seen.SkipModel || seen.SkipVenv {
		t.Fatalf("unset flags must stay false: %+v", seen)
	}
}

func TestPullModelArgHandling(t *testing.T) {
	saveDispatch(t)
	var pulled string
	fnPullModel = func(name string) error { pulled = name; return nil }

	cfg := defaultConfig()
	root := buildRootCmdWith(cfg)
	root.SetArgs([]string{"pull-model"})
	if err := root.Execute(); !errors.Is(err, ErrUsage) {
		t.Fatalf("expected ErrUsage without a name, got %v", err)
	}

	root = buildRootCmdWith(defaultConfig())
	root.SetArgs([]string{"pull-model", "mistral:instruct"})
	if err := root.Execute(); err != nil {
		t.Fatalf("pull-model: %v", err)
	}
	if pulled != "mistral:instruct" {
		t.Fatalf("pulled %q", pulled)
	}
}

func TestVerboseFlagRaisesLogLevel(t *testing.T) {
	saveDispatch(t)
	var seen Config
	fnStatus = func(cfg *Config) error { seen = *cfg; return nil }

	cfg := defaultConfig()
	root := buildRootCmdWith(cfg)
	root.SetArgs([]string{"status", "-v"})
	if err := root.Execute(); err != nil {
		t.Fatalf("status -v: %v", err)
	}
	if seen.LogLvl != "debug" {
		t.Fatalf("verbose should force debug level, got %q", seen.LogLvl)
	}
	SetLogLevel("info") // reset for other tests
}

func TestMainWithArgsExitCodes(t *testing.T) {
	saveDispatch(t)
	fnStatus = func(cfg *Config) error { return nil }
	fnStop = func(cfg *Config) error { return errors.New("pid 9 survived SIGKILL") }

	if code := MainWithArgs([]string{"status"}); code != 0 {
		t.Fatalf("status exit = %d", code)
	}
	if code := MainWithArgs([]string{"stop"}); code != 1 {
		t.Fatalf("failed stop exit = %d", code)
	}
	if code := MainWithArgs([]string{"definitely-not-a-command"}); code != 1 {
		t.Fatalf("unknown command exit = %d", code)
	}
	if code := MainWithArgs([]string{"help"}); code != 0 {
		t.Fatalf("help exit = %d", code)
	}
}

func TestIsUsageErr(t *testing.T) {
	if !isUsageErr(ErrUsage) {
		t.Fatalf("ErrUsage must classify as usage")
	}
	if !isUsageErr(errors.New(`unknown command "bogus" for "checkctl"`)) {
		t.Fatalf("cobra unknown command must classify as usage")
	}
	if isUsageErr(errors.New("daemon start failed")) {
		t.Fatalf("fatal runtime errors are not usage errors")
	}
}

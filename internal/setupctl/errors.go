package setupctl

import "errors"

// Fatal error classes. Informational outcomes (already installed, already
// running, not running) are logged and never returned as errors; warnings
// (model pull failure, dependency refresh failure during update) are logged
// with a manual-retry hint and execution continues.
var (
	ErrUsage               = errors.New("usage error")
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	ErrInstallationFailed  = errors.New("installation failed")
	ErrActivationNotFound  = errors.New("activation script not found")
	ErrStartFailed         = errors.New("daemon start failed")
	ErrStopFailed          = errors.New("daemon stop failed")
	ErrVerificationFailed  = errors.New("daemon verification failed")
)

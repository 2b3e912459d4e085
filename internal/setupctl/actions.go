package setupctl

// Indirection layer to allow stubbing in tests

var (
	fnDetect          = Detect
	fnEnsurePython    = ensurePython
	fnEnsureOllama    = ensureOllama
	fnEnsureVenv      = ensureVenv
	fnInstallVenvDeps = installVenvDeps
	fnNewSupervisor   = newSupervisor

	fnSetup     = runSetup
	fnStatus    = runStatus
	fnStart     = runStart
	fnStop      = runStop
	fnRestart   = runRestart
	fnUninstall = runUninstall
	fnUpdate    = runUpdate
	fnVersion   = runVersion

	fnPullModel  = pullModel
	fnListModels = listModels
	fnRunPull    = runOllamaPull
)

package cli

// Config holds the configuration of one generate or clean run
type Config struct {
	// Directories to scan. A trailing /... scans recursively.
	Directories []string

	// ModuleName overrides the module path read from go.mod
	ModuleName string

	// Suffix names companions <file><Suffix>.go
	Suffix string

	// ExperimentalInheritance enables the inheritance(...) option
	ExperimentalInheritance bool

	// Check reports stale companions without writing them
	Check bool

	// Verbose enables detailed logging and error reporting
	Verbose bool
}

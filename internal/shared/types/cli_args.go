package types

// AggregateArgs represents the command-line arguments for the aggregate command.
type AggregateArgs struct {
	ConfigFile    string
	ProwlerDir    string
	ScoutSuiteDir string
	OutputDir     string
	ReportTypes   []string
}

// RemediateArgs represents the command-line arguments for the remediate command.
type RemediateArgs struct {
	Apply       bool
	FindingType string
	Resource    string
	Severity    string
	FindingsDir string
}

// ServeArgs represents the command-line arguments for the serve command.
type ServeArgs struct {
	Addr        string
	FindingsDir string
}

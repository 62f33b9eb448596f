package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	ProwlerDir    string   `json:"prowler_dir" yaml:"prowler_dir" toml:"prowler_dir"`
	ScoutSuiteDir string   `json:"scoutsuite_dir" yaml:"scoutsuite_dir" toml:"scoutsuite_dir"`
	OutputDir     string   `json:"output_dir" yaml:"output_dir" toml:"output_dir"`
	ReportTypes   []string `json:"report_types" yaml:"report_types" toml:"report_types"`
	Addr          string   `json:"addr" yaml:"addr" toml:"addr"`
}

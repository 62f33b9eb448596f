package entity

// Summary holds derived counts over one aggregation run. It is recomputed in
// full from the finding set on every run, never updated incrementally.
type Summary struct {
	TotalFindings   int            `json:"total_findings"`
	BySeverity      map[string]int `json:"by_severity"`
	ByCloudProvider map[string]int `json:"by_cloud_provider"`
	BySource        map[string]int `json:"by_source"`
	ByAccount       map[string]int `json:"by_account"`
	Timestamp       string         `json:"timestamp"`
}

package entity

// RemediationStatus é o estado terminal de uma tentativa de remediação.
type RemediationStatus string

const (
	RemediationFixed   RemediationStatus = "fixed"
	RemediationFailed  RemediationStatus = "failed"
	RemediationSkipped RemediationStatus = "skipped"
	RemediationManual  RemediationStatus = "manual"
)

// RemediationResult is the per-finding outcome of a remediation run. Results
// live only for the duration of the run; they are not persisted.
type RemediationResult struct {
	FindingID string            `json:"finding_id"`
	Resource  string            `json:"resource"`
	Status    RemediationStatus `json:"status"`
	Message   string            `json:"message"`
}

// RemediationReport buckets the results of a single remediation run.
type RemediationReport struct {
	Fixed   []RemediationResult `json:"fixed"`
	Failed  []RemediationResult `json:"failed"`
	Skipped []RemediationResult `json:"skipped"`
	Manual  []RemediationResult `json:"manual"`
}

// Add routes a result into the bucket matching its status.
func (r *RemediationReport) Add(result RemediationResult) {
	switch result.Status {
	case RemediationFixed:
		r.Fixed = append(r.Fixed, result)
	case RemediationFailed:
		r.Failed = append(r.Failed, result)
	case RemediationManual:
		r.Manual = append(r.Manual, result)
	default:
		r.Skipped = append(r.Skipped, result)
	}
}

// Total returns the number of findings processed in the run.
func (r *RemediationReport) Total() int {
	return len(r.Fixed) + len(r.Failed) + len(r.Skipped) + len(r.Manual)
}

package entity

// Severity é o nível normalizado de criticidade de um finding.
type Severity string

const (
	SeverityCritical      Severity = "Critical"
	SeverityHigh          Severity = "High"
	SeverityMedium        Severity = "Medium"
	SeverityLow           Severity = "Low"
	SeverityInformational Severity = "Informational"
)

// Remediation option types.
const (
	OptionTypeCLI            = "cli"
	OptionTypeTerraform      = "terraform"
	OptionTypeCloudFormation = "cloudformation"
	OptionTypeOther          = "other"
	OptionTypeConsole        = "console"
)

// RemediationOption is one concrete way of fixing a finding: a CLI command,
// an IaC snippet, or a sequence of console steps.
type RemediationOption struct {
	Type  string   `json:"type"`
	Code  string   `json:"code,omitempty"`
	HTML  string   `json:"html,omitempty"`
	Steps []string `json:"steps,omitempty"`
	Note  string   `json:"note,omitempty"`
}

// Remediation carries the structured fix guidance extracted from the scanner.
type Remediation struct {
	Summary string              `json:"summary"`
	DocURL  string              `json:"doc_url,omitempty"`
	Options []RemediationOption `json:"options,omitempty"`
}

// Finding is the normalized security finding record shared by all scanner
// sources. Findings are immutable snapshots: each aggregation run produces a
// whole new artifact, never updates to an old one.
type Finding struct {
	Source        string      `json:"source"`
	CloudProvider string      `json:"cloud_provider"`
	FindingID     string      `json:"finding_id"`
	Title         string      `json:"title"`
	Severity      Severity    `json:"severity"`
	Status        string      `json:"status"`
	Resource      string      `json:"resource"`
	ResourceArn   string      `json:"resource_arn"`
	Region        string      `json:"region"`
	AccountID     string      `json:"account_id"`
	Description   string      `json:"description"`
	Issue         string      `json:"issue"`
	Risk          string      `json:"risk"`
	Remediation   Remediation `json:"remediation"`
	Compliance    []string    `json:"compliance"`
	Timestamp     string      `json:"timestamp"`
}

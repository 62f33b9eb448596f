package scanner

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/diillson/cloudsec-dashboard-go/internal/domain/entity"
)

const (
	prowlerSourceName = "Prowler"
	prowlerGlob       = "prowler-output-*.json"
	ocsfSuffix        = ".ocsf.json"
)

// prowlerCheck espelha o formato de saída JSON do Prowler v3.x (lista de checks).
type prowlerCheck struct {
	Status         string                     `json:"Status"`
	CheckID        string                     `json:"CheckID"`
	CheckTitle     string                     `json:"CheckTitle"`
	Severity       string                     `json:"Severity"`
	ResourceID     string                     `json:"ResourceId"`
	ResourceArn    string                     `json:"ResourceArn"`
	Region         string                     `json:"Region"`
	AccountID      string                     `json:"AccountId"`
	Description    string                     `json:"Description"`
	StatusExtended string                     `json:"StatusExtended"`
	Risk           string                     `json:"Risk"`
	Compliance     map[string]json.RawMessage `json:"Compliance"`
	Remediation    prowlerRemediation         `json:"Remediation"`
}

type prowlerRemediation struct {
	Recommendation struct {
		Text string `json:"Text"`
		URL  string `json:"Url"`
	} `json:"Recommendation"`
	Code struct {
		CLI       string `json:"CLI"`
		Terraform string `json:"Terraform"`
		NativeIaC string `json:"NativeIaC"`
		Other     string `json:"Other"`
	} `json:"Code"`
}

// LoadProwlerFindings loads the latest Prowler result file per account root
// and normalizes every failed check. When the root contains purely numeric
// subdirectories, each one is treated as an independent account scan root.
func (r *ScannerRepositoryImpl) LoadProwlerFindings(root string) ([]entity.Finding, error) {
	roots := numericAccountDirs(root)
	if len(roots) == 0 {
		roots = []string{root}
	}

	var findings []entity.Finding
	var loadErrs []string

	for _, accountRoot := range roots {
		accountFindings, err := loadProwlerAccountDir(accountRoot)
		if err != nil {
			loadErrs = append(loadErrs, err.Error())
			continue
		}
		findings = append(findings, accountFindings...)
	}

	if len(loadErrs) > 0 {
		return findings, fmt.Errorf("error loading Prowler results: %s", strings.Join(loadErrs, "; "))
	}
	return findings, nil
}

// loadProwlerAccountDir lê o arquivo de resultado mais recente de um diretório
// de conta e normaliza apenas os checks com Status == FAIL.
func loadProwlerAccountDir(dir string) ([]entity.Finding, error) {
	matches, err := filepath.Glob(filepath.Join(dir, prowlerGlob))
	if err != nil {
		return nil, fmt.Errorf("error listing Prowler results in %s: %w", dir, err)
	}

	// O formato OCSF usa outra estrutura e é ignorado aqui.
	candidates := matches[:0]
	for _, m := range matches {
		if !strings.HasSuffix(m, ocsfSuffix) {
			candidates = append(candidates, m)
		}
	}

	latest := latestResultFile(candidates)
	if latest == "" {
		return nil, nil
	}

	data, err := os.ReadFile(latest)
	if err != nil {
		return nil, fmt.Errorf("error reading Prowler file %s: %w", latest, err)
	}

	var checks []prowlerCheck
	if err := json.Unmarshal(data, &checks); err != nil {
		return nil, fmt.Errorf("error parsing Prowler JSON %s: %w", latest, err)
	}

	now := time.Now()
	var findings []entity.Finding
	for _, check := range checks {
		if check.Status != "FAIL" {
			continue
		}
		findings = append(findings, normalizeProwlerCheck(check, now))
	}
	return findings, nil
}

// normalizeProwlerCheck converts one failed Prowler check into the common
// finding format. Missing fields default to empty strings; the check ID
// falls back to "unknown" so the record stays addressable.
func normalizeProwlerCheck(check prowlerCheck, now time.Time) entity.Finding {
	findingID := check.CheckID
	if findingID == "" {
		findingID = "unknown"
	}

	compliance := make([]string, 0, len(check.Compliance))
	for framework := range check.Compliance {
		compliance = append(compliance, framework)
	}

	return entity.Finding{
		Source:        prowlerSourceName,
		CloudProvider: "AWS",
		FindingID:     findingID,
		Title:         check.CheckTitle,
		Severity:      MapSeverity(check.Severity),
		Status:        check.Status,
		Resource:      check.ResourceID,
		ResourceArn:   check.ResourceArn,
		Region:        check.Region,
		AccountID:     check.AccountID,
		Description:   check.Description,
		Issue:         check.StatusExtended,
		Risk:          check.Risk,
		Remediation:   extractProwlerRemediation(check.Remediation),
		Compliance:    compliance,
		Timestamp:     now.Format(time.RFC3339),
	}
}

// placeholderRegex identifica tokens <PLACEHOLDER> em comandos CLI sugeridos.
var placeholderRegex = regexp.MustCompile(`<[A-Za-z0-9_-]+>`)

// extractProwlerRemediation lifts the nested Prowler remediation block into
// the structured format: one option per non-empty code variant plus a
// synthesized console option built from the recommendation text.
func extractProwlerRemediation(raw prowlerRemediation) entity.Remediation {
	remediation := entity.Remediation{
		Summary: raw.Recommendation.Text,
		DocURL:  raw.Recommendation.URL,
	}

	if cli := strings.TrimSpace(raw.Code.CLI); cli != "" {
		option := entity.RemediationOption{Type: entity.OptionTypeCLI, Code: cli}
		if placeholders := placeholderRegex.FindAllString(cli, -1); len(placeholders) > 0 {
			option.Note = fmt.Sprintf("Replace placeholders before running: %s", strings.Join(placeholders, ", "))
		}
		remediation.Options = append(remediation.Options, option)
	}
	if tf := strings.TrimSpace(raw.Code.Terraform); tf != "" {
		remediation.Options = append(remediation.Options, entity.RemediationOption{Type: entity.OptionTypeTerraform, Code: tf})
	}
	if iac := strings.TrimSpace(raw.Code.NativeIaC); iac != "" {
		remediation.Options = append(remediation.Options, entity.RemediationOption{Type: entity.OptionTypeCloudFormation, Code: iac})
	}
	if other := strings.TrimSpace(raw.Code.Other); other != "" {
		remediation.Options = append(remediation.Options, entity.RemediationOption{Type: entity.OptionTypeOther, Code: other})
	}

	if remediation.Summary != "" {
		remediation.Options = append(remediation.Options, entity.RemediationOption{
			Type:  entity.OptionTypeConsole,
			Steps: consoleSteps(remediation.Summary),
		})
	}

	return remediation
}

const (
	maxConsoleSteps    = 5
	minConsoleStepSize = 10
)

// consoleSteps splits the recommendation text into sentence fragments usable
// as console steps. Fragments of 10 characters or fewer are dropped; when
// nothing survives the filter the whole summary becomes the single step.
func consoleSteps(summary string) []string {
	var steps []string
	for _, fragment := range strings.Split(summary, ". ") {
		fragment = strings.TrimSpace(strings.TrimSuffix(fragment, "."))
		if len(fragment) <= minConsoleStepSize {
			continue
		}
		steps = append(steps, fragment)
		if len(steps) == maxConsoleSteps {
			break
		}
	}
	if len(steps) == 0 {
		return []string{summary}
	}
	return steps
}

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
	scoutSuiteSourceName = "ScoutSuite"
	scoutSuiteResultsDir = "scoutsuite-results"
	scoutSuiteGlob       = "scoutsuite_results_azure-*.js"
	scoutSuitePrefix     = "scoutsuite_results ="
)

// scoutSuiteReport espelha a parte do relatório do ScoutSuite que usamos.
// O arquivo é um JS que atribui um objeto JSON à variável scoutsuite_results.
type scoutSuiteReport struct {
	AccountID string                       `json:"account_id"`
	Services  map[string]scoutSuiteService `json:"services"`
}

type scoutSuiteService struct {
	Findings map[string]scoutSuiteFinding `json:"findings"`
}

type scoutSuiteFinding struct {
	Description  string   `json:"description"`
	Rationale    string   `json:"rationale"`
	Remediation  string   `json:"remediation"`
	References   []string `json:"references"`
	Level        string   `json:"level"`
	FlaggedItems int      `json:"flagged_items"`
	Items        []string `json:"items"`
}

// LoadScoutSuiteFindings loads the latest ScoutSuite Azure report under root
// and normalizes every flagged finding, one record per affected resource.
func (r *ScannerRepositoryImpl) LoadScoutSuiteFindings(root string) ([]entity.Finding, error) {
	resultsDir := filepath.Join(root, scoutSuiteResultsDir)
	if _, err := os.Stat(resultsDir); err != nil {
		return nil, nil
	}

	matches, err := filepath.Glob(filepath.Join(resultsDir, scoutSuiteGlob))
	if err != nil {
		return nil, fmt.Errorf("error listing ScoutSuite results in %s: %w", resultsDir, err)
	}

	latest := latestResultFile(matches)
	if latest == "" {
		return nil, nil
	}

	report, err := parseScoutSuiteFile(latest)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var findings []entity.Finding
	for serviceName, service := range report.Services {
		for findingID, finding := range service.Findings {
			if finding.FlaggedItems <= 0 {
				continue
			}
			if len(finding.Items) == 0 {
				findings = append(findings, normalizeScoutSuiteFinding(findingID, finding, serviceName, "", report.AccountID, now))
				continue
			}
			for _, itemID := range finding.Items {
				findings = append(findings, normalizeScoutSuiteFinding(findingID, finding, serviceName, itemID, report.AccountID, now))
			}
		}
	}
	return findings, nil
}

// parseScoutSuiteFile strips the JavaScript assignment prefix and decodes the
// remaining JSON object literal.
func parseScoutSuiteFile(path string) (*scoutSuiteReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading ScoutSuite file %s: %w", path, err)
	}

	content := string(data)
	idx := strings.Index(content, scoutSuitePrefix)
	if idx < 0 {
		return nil, fmt.Errorf("error parsing ScoutSuite file %s: scoutsuite_results assignment not found", path)
	}
	jsonStr := strings.TrimSpace(content[idx+len(scoutSuitePrefix):])

	var report scoutSuiteReport
	if err := json.Unmarshal([]byte(jsonStr), &report); err != nil {
		return nil, fmt.Errorf("error parsing ScoutSuite JSON %s: %w", path, err)
	}
	return &report, nil
}

// normalizeScoutSuiteFinding converts one flagged ScoutSuite finding (plus an
// optional affected item) into the common finding format.
func normalizeScoutSuiteFinding(findingID string, finding scoutSuiteFinding, serviceName, itemID, accountID string, now time.Time) entity.Finding {
	title := finding.Description
	if title == "" {
		title = findingID
	}

	// item_id vem como caminho pontuado:
	// "subscriptions.XXX.resource_groups.XXX.providers.XXX.resource_name"
	resource := fmt.Sprintf("%s (multiple resources)", serviceName)
	if itemID != "" {
		resource = itemID
		if parts := strings.Split(itemID, "."); len(parts) > 0 {
			resource = parts[len(parts)-1]
		}
	}

	return entity.Finding{
		Source:        scoutSuiteSourceName,
		CloudProvider: "Azure",
		FindingID:     findingID,
		Title:         title,
		Severity:      mapScoutSuiteLevel(finding.Level),
		Status:        "FAIL",
		Resource:      resource,
		ResourceArn:   itemID,
		Region:        "global",
		AccountID:     accountID,
		Description:   finding.Description,
		Issue:         fmt.Sprintf("%s - %d resource(s) affected", finding.Description, finding.FlaggedItems),
		Risk:          finding.Rationale,
		Remediation:   extractScoutSuiteRemediation(finding.Remediation),
		Compliance:    finding.References,
		Timestamp:     now.Format(time.RFC3339),
	}
}

// Comandos embutidos no texto de remediação: um prefixo de CLI conhecido
// seguido de texto até a quebra de linha ou a próxima tag HTML.
var embeddedCommandRegex = regexp.MustCompile(`\b(?:az|aws|gcloud)\s+[^\n<]+`)

const maxEmbeddedCommands = 3

// extractScoutSuiteRemediation treats the ScoutSuite remediation text as an
// HTML console option and additionally surfaces up to three CLI command
// fragments embedded in it.
func extractScoutSuiteRemediation(text string) entity.Remediation {
	remediation := entity.Remediation{Summary: text}
	if text == "" {
		return remediation
	}

	remediation.Options = append(remediation.Options, entity.RemediationOption{
		Type: entity.OptionTypeConsole,
		HTML: text,
	})

	commands := embeddedCommandRegex.FindAllString(text, maxEmbeddedCommands)
	for _, command := range commands {
		remediation.Options = append(remediation.Options, entity.RemediationOption{
			Type: entity.OptionTypeCLI,
			Code: strings.TrimSpace(command),
		})
	}
	return remediation
}

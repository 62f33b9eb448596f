package usecase

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/diillson/cloudsec-dashboard-go/internal/adapter/driven/awscli"
	"github.com/diillson/cloudsec-dashboard-go/internal/domain/entity"
	"github.com/diillson/cloudsec-dashboard-go/internal/domain/repository"
	"github.com/diillson/cloudsec-dashboard-go/internal/shared/types"
)

// RemediateUseCase runs the remediation engine over the latest aggregated
// findings: filter, deduplicate, dispatch to fixers, report.
type RemediateUseCase struct {
	findingsRepo repository.FindingsRepository
	identityRepo repository.IdentityRepository
	runner       awscli.CommandRunner
	console      types.ConsoleInterface
	stdin        io.Reader
}

// NewRemediateUseCase creates a new remediate use case. stdin feeds the
// apply-mode confirmation prompt.
func NewRemediateUseCase(
	findingsRepo repository.FindingsRepository,
	identityRepo repository.IdentityRepository,
	runner awscli.CommandRunner,
	console types.ConsoleInterface,
	stdin io.Reader,
) *RemediateUseCase {
	return &RemediateUseCase{
		findingsRepo: findingsRepo,
		identityRepo: identityRepo,
		runner:       runner,
		console:      console,
		stdin:        stdin,
	}
}

// Run executa o processo de remediação. O único erro fatal é o diretório de
// findings inexistente; todo o resto é isolado por item e resumido no final.
func (uc *RemediateUseCase) Run(ctx context.Context, args *types.RemediateArgs) (*entity.RemediationReport, error) {
	report := &entity.RemediationReport{}
	dryRun := !args.Apply

	if dryRun {
		uc.console.LogWarning("DRY RUN MODE - No changes will be made. Run with --apply to actually fix issues.")
	} else {
		uc.console.LogWarning("APPLY MODE - Changes WILL be made to your AWS account")
	}

	findings, err := uc.findingsRepo.LoadLatestFindings(args.FindingsDir)
	if err != nil {
		if errors.Is(err, types.ErrNoFindingsDir) {
			return nil, err
		}
		if errors.Is(err, types.ErrNoAggregatedFindings) {
			uc.console.LogWarning("No aggregated findings found in %s. Run the aggregator first.", args.FindingsDir)
			return report, nil
		}
		uc.console.LogError("Failed to load findings: %s", err)
		return report, nil
	}

	findings = FilterFindings(findings, args.FindingType, args.Resource, args.Severity)
	if len(findings) == 0 {
		uc.console.LogInfo("No findings match the specified criteria.")
		return report, nil
	}
	uc.console.LogInfo("Found %d findings to process", len(findings))

	// O agregador mantém duplicatas (uma por framework de compliance);
	// aqui cada issue única é remediada no máximo uma vez por execução.
	unique := DedupFindings(findings)
	uc.console.LogInfo("Processing %d unique findings...", len(unique))

	if !dryRun {
		if !uc.confirmApply(ctx) {
			uc.console.LogInfo("Aborted.")
			return report, nil
		}
	}

	progress := uc.console.ProgressWithTotal(len(unique))
	for _, finding := range unique {
		result := uc.remediateFinding(ctx, finding, dryRun)
		report.Add(result)

		icon := pterm.FgGreen.Sprint("✓")
		if result.Status == entity.RemediationFailed {
			icon = pterm.FgRed.Sprint("✗")
		}
		uc.console.Println(fmt.Sprintf("  %s [%s] %s: %s", icon, result.FindingID, result.Resource, result.Message))
		progress.Increment()
	}
	progress.Stop()

	uc.printReport(report, dryRun)
	return report, nil
}

// remediateFinding dispatches one finding through the state machine with
// terminal states fixed / failed / skipped / manual.
func (uc *RemediateUseCase) remediateFinding(ctx context.Context, finding entity.Finding, dryRun bool) entity.RemediationResult {
	result := entity.RemediationResult{
		FindingID: finding.FindingID,
		Resource:  finding.Resource,
	}

	fixer, ok := remediationTable[finding.FindingID]
	if !ok {
		result.Status = entity.RemediationSkipped
		result.Message = "no automated remediation available"
		return result
	}

	success, message := fixer(ctx, finding, uc.runner, dryRun)
	result.Message = message

	switch {
	case strings.Contains(message, "[MANUAL]"):
		result.Status = entity.RemediationManual
	case success:
		result.Status = entity.RemediationFixed
	default:
		result.Status = entity.RemediationFailed
	}
	return result
}

// confirmApply faz o preflight de identidade e pede a confirmação interativa
// antes de qualquer comando externo.
func (uc *RemediateUseCase) confirmApply(ctx context.Context) bool {
	account, arn, err := uc.identityRepo.GetCallerIdentity(ctx)
	if err != nil {
		uc.console.LogWarning("Could not resolve AWS caller identity: %s", err)
	} else {
		uc.console.LogInfo("Applying fixes as %s (account %s)", arn, account)
	}

	uc.console.LogWarning("WARNING: You are about to modify AWS resources!")
	uc.console.Print("Type 'yes' to continue: ")

	scanner := bufio.NewScanner(uc.stdin)
	if !scanner.Scan() {
		return false
	}
	return strings.ToLower(strings.TrimSpace(scanner.Text())) == "yes"
}

// printReport exibe o resumo da execução de remediação.
func (uc *RemediateUseCase) printReport(report *entity.RemediationReport, dryRun bool) {
	uc.console.Println()
	table := uc.console.CreateTable()
	table.AddColumn("Outcome")
	table.AddColumn("Count")
	table.AddRow("Fixed", len(report.Fixed))
	table.AddRow("Failed", len(report.Failed))
	table.AddRow("Skipped (no auto-remediation)", len(report.Skipped))
	table.AddRow("Manual intervention required", len(report.Manual))
	uc.console.Print(table.Render())

	if len(report.Manual) > 0 {
		uc.console.LogWarning("Manual remediation required:")
		for _, item := range report.Manual {
			uc.console.Println(fmt.Sprintf("  • %s", item.Message))
		}
	}

	if len(report.Failed) > 0 {
		uc.console.LogError("Failed remediations:")
		for _, item := range report.Failed {
			uc.console.Println(fmt.Sprintf("  • [%s] %s: %s", item.FindingID, item.Resource, item.Message))
		}
	}

	if dryRun && len(report.Fixed) > 0 {
		uc.console.LogInfo("To apply these fixes, run again with --apply")
	}
}

// FilterFindings restricts the set by finding type, resource and severity.
// Filters compose with logical AND; severity matches case-insensitively.
func FilterFindings(findings []entity.Finding, findingType, resource, severity string) []entity.Finding {
	var filtered []entity.Finding
	for _, f := range findings {
		if findingType != "" && f.FindingID != findingType {
			continue
		}
		if resource != "" && f.Resource != resource {
			continue
		}
		if severity != "" && !strings.EqualFold(string(f.Severity), severity) {
			continue
		}
		filtered = append(filtered, f)
	}
	return filtered
}

// DedupFindings drops findings sharing (finding_id, resource), keeping the
// first occurrence so each unique issue is remediated at most once per run.
func DedupFindings(findings []entity.Finding) []entity.Finding {
	type key struct {
		findingID string
		resource  string
	}
	seen := map[key]struct{}{}

	var unique []entity.Finding
	for _, f := range findings {
		k := key{f.FindingID, f.Resource}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, f)
	}
	return unique
}

package usecase

import (
	"context"
	"time"

	"github.com/diillson/cloudsec-dashboard-go/internal/domain/entity"
	"github.com/diillson/cloudsec-dashboard-go/internal/domain/repository"
	"github.com/diillson/cloudsec-dashboard-go/internal/shared/types"
)

// AggregateUseCase orchestrates one aggregation run: load both scanner
// sources, merge, summarize and export the snapshot triple.
type AggregateUseCase struct {
	scannerRepo repository.ScannerRepository
	exportRepo  repository.ExportRepository
	configRepo  repository.ConfigRepository
	console     types.ConsoleInterface
}

// NewAggregateUseCase creates a new aggregate use case.
func NewAggregateUseCase(
	scannerRepo repository.ScannerRepository,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	console types.ConsoleInterface,
) *AggregateUseCase {
	return &AggregateUseCase{
		scannerRepo: scannerRepo,
		exportRepo:  exportRepo,
		configRepo:  configRepo,
		console:     console,
	}
}

// Run executa a agregação completa e exporta os artefatos.
func (uc *AggregateUseCase) Run(ctx context.Context, args *types.AggregateArgs) error {
	if err := uc.mergeConfigFile(args); err != nil {
		return err
	}

	status := uc.console.Status("Aggregating security findings...")

	// Falha de parse em uma fonte derruba só a contribuição dela;
	// as demais continuam agregando.
	findings := uc.loadSource(args.ProwlerDir, "Prowler", uc.scannerRepo.LoadProwlerFindings)
	findings = append(findings, uc.loadSource(args.ScoutSuiteDir, "ScoutSuite", uc.scannerRepo.LoadScoutSuiteFindings)...)

	status.Stop()

	uc.console.LogInfo("Total findings aggregated: %d", len(findings))

	summary := Summarize(findings)
	timestamp := time.Now().Format("20060102_150405")

	jsonPath, err := uc.exportRepo.ExportFindingsToJSON(findings, args.OutputDir, timestamp)
	if err != nil {
		return err
	}
	uc.console.LogSuccess("Findings exported: %s", jsonPath)

	// Exportação CSV é best-effort: falha não aborta a execução.
	for _, reportType := range args.ReportTypes {
		switch reportType {
		case "csv":
			csvPath, err := uc.exportRepo.ExportFindingsToCSV(findings, args.OutputDir, timestamp)
			if err != nil {
				uc.console.LogWarning("CSV export skipped: %s", err)
			} else {
				uc.console.LogSuccess("CSV exported: %s", csvPath)
			}
		case "pdf":
			pdfPath, err := uc.exportRepo.ExportFindingsToPDF(findings, summary, args.OutputDir, timestamp)
			if err != nil {
				uc.console.LogError("Failed to export findings to PDF: %s", err)
			} else {
				uc.console.LogSuccess("PDF exported: %s", pdfPath)
			}
		}
	}

	summaryPath, err := uc.exportRepo.ExportSummaryToJSON(summary, args.OutputDir, timestamp)
	if err != nil {
		return err
	}
	uc.console.LogSuccess("Summary exported: %s", summaryPath)

	uc.printSummary(summary)
	return nil
}

// loadSource carrega uma fonte e registra avisos/erros sem abortar a execução.
func (uc *AggregateUseCase) loadSource(dir, name string, load func(string) ([]entity.Finding, error)) []entity.Finding {
	findings, err := load(dir)
	if err != nil {
		uc.console.LogError("Failed to load %s results: %s", name, err)
	}
	if len(findings) == 0 {
		uc.console.LogWarning("No %s results found in %s", name, dir)
		return nil
	}
	uc.console.LogInfo("Loaded %d %s findings (failures only)", len(findings), name)
	return findings
}

// mergeConfigFile preenche argumentos não informados na CLI a partir do
// arquivo de configuração, quando fornecido.
func (uc *AggregateUseCase) mergeConfigFile(args *types.AggregateArgs) error {
	if args.ConfigFile == "" {
		return nil
	}

	config, err := uc.configRepo.LoadConfigFile(args.ConfigFile)
	if err != nil {
		return err
	}

	if args.ProwlerDir == "" {
		args.ProwlerDir = config.ProwlerDir
	}
	if args.ScoutSuiteDir == "" {
		args.ScoutSuiteDir = config.ScoutSuiteDir
	}
	if args.OutputDir == "" {
		args.OutputDir = config.OutputDir
	}
	if len(args.ReportTypes) == 0 && len(config.ReportTypes) > 0 {
		args.ReportTypes = config.ReportTypes
	}
	return nil
}

// printSummary exibe a tabela de resumo no console.
func (uc *AggregateUseCase) printSummary(summary *entity.Summary) {
	table := uc.console.CreateTable()
	table.AddColumn("Severity")
	table.AddColumn("Count")

	for _, severity := range []entity.Severity{
		entity.SeverityCritical,
		entity.SeverityHigh,
		entity.SeverityMedium,
		entity.SeverityLow,
		entity.SeverityInformational,
	} {
		if count, ok := summary.BySeverity[string(severity)]; ok {
			table.AddRow(string(severity), count)
		}
	}

	uc.console.Println()
	uc.console.Print(table.Render())
	uc.console.LogInfo("Total: %d | AWS: %d | Azure: %d",
		summary.TotalFindings,
		summary.ByCloudProvider["AWS"],
		summary.ByCloudProvider["Azure"],
	)
}

// Summarize recomputes the full summary from the finding set. Counts are
// derived and non-authoritative; nothing is updated incrementally.
func Summarize(findings []entity.Finding) *entity.Summary {
	summary := &entity.Summary{
		TotalFindings:   len(findings),
		BySeverity:      map[string]int{},
		ByCloudProvider: map[string]int{},
		BySource:        map[string]int{},
		ByAccount:       map[string]int{},
		Timestamp:       time.Now().Format(time.RFC3339),
	}

	for _, f := range findings {
		summary.BySeverity[string(f.Severity)]++
		summary.ByCloudProvider[f.CloudProvider]++
		summary.BySource[f.Source]++

		account := f.AccountID
		if account == "" {
			account = "unknown"
		}
		summary.ByAccount[account]++
	}

	return summary
}

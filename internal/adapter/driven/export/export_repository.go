package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/diillson/cloudsec-dashboard-go/internal/domain/entity"
	"github.com/diillson/cloudsec-dashboard-go/internal/domain/repository"
	"github.com/jung-kurt/gofpdf"
)

// Nomes base dos artefatos. O consumidor sempre seleciona o arquivo mais
// recente de cada tipo, então os nomes carregam o timestamp da execução.
const (
	findingsBaseName = "aggregated_findings"
	summaryBaseName  = "findings_summary"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// --- Funções de Exportação dos Findings ---

func (r *ExportRepositoryImpl) ExportFindingsToJSON(findings []entity.Finding, outputDir, timestamp string) (string, error) {
	outputFilename, err := generateFilename(findingsBaseName, outputDir, timestamp, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating findings JSON file: %w", err)
	}
	defer file.Close()

	// O artefato é sempre um array, mesmo sem findings.
	if findings == nil {
		findings = []entity.Finding{}
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(findings); err != nil {
		return "", fmt.Errorf("error encoding findings JSON: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportFindingsToCSV(findings []entity.Finding, outputDir, timestamp string) (string, error) {
	outputFilename, err := generateFilename(findingsBaseName, outputDir, timestamp, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating findings CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	headers := []string{
		"Source", "Cloud Provider", "Finding ID", "Title", "Severity", "Status",
		"Resource", "Resource ARN", "Region", "Account ID",
		"Issue", "Risk", "Remediation", "Compliance", "Timestamp",
	}
	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, f := range findings {
		record := []string{
			f.Source,
			f.CloudProvider,
			f.FindingID,
			cleanRichTags(f.Title),
			string(f.Severity),
			f.Status,
			f.Resource,
			f.ResourceArn,
			f.Region,
			f.AccountID,
			cleanRichTags(f.Issue),
			cleanRichTags(f.Risk),
			cleanRichTags(formatRemediationCell(f.Remediation)),
			strings.Join(f.Compliance, "\n"),
			f.Timestamp,
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("error writing CSV record: %w", err)
		}
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportSummaryToJSON(summary *entity.Summary, outputDir, timestamp string) (string, error) {
	outputFilename, err := generateFilename(summaryBaseName, outputDir, timestamp, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating summary JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(summary); err != nil {
		return "", fmt.Errorf("error encoding summary JSON: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportFindingsToPDF(findings []entity.Finding, summary *entity.Summary, outputDir, timestamp string) (string, error) {
	outputFilename, err := generateFilename(findingsBaseName, outputDir, timestamp, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{192, 0, 0}
	headerTextColor := [3]int{255, 255, 255}
	sectionTitleColor := [3]int{0, 0, 0}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	drawSection := func(title string, content string) {
		content = cleanRichTags(content)
		if strings.TrimSpace(content) == "" {
			return
		}
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(7)

		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)

		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.MultiCell(190, 5, tr(content), "", "L", false)
		pdf.Ln(8)
	}

	// Página de resumo
	pdf.AddPage()
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr("  Cloud Security Findings Report"), "", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("  Total Findings: %d", summary.TotalFindings)), "", 1, "L", true, 0, "")
	pdf.Ln(10)

	drawSection("By Severity", formatCountMap(summary.BySeverity))
	drawSection("By Cloud Provider", formatCountMap(summary.ByCloudProvider))
	drawSection("By Source", formatCountMap(summary.BySource))
	drawSection("By Account", formatCountMap(summary.ByAccount))

	// Uma seção por severidade, da mais crítica para a menos
	severityOrder := []entity.Severity{
		entity.SeverityCritical,
		entity.SeverityHigh,
		entity.SeverityMedium,
		entity.SeverityLow,
		entity.SeverityInformational,
	}

	const maxFindingsPerSeverity = 25

	for _, severity := range severityOrder {
		var lines []string
		for _, f := range findings {
			if f.Severity != severity {
				continue
			}
			lines = append(lines, fmt.Sprintf("[%s] %s | %s (%s)", f.Source, f.FindingID, f.Resource, f.Region))
			if len(lines) == maxFindingsPerSeverity {
				break
			}
		}
		if len(lines) == 0 {
			continue
		}
		if count := summary.BySeverity[string(severity)]; count > len(lines) {
			lines = append(lines, fmt.Sprintf("... (+%d more)", count-len(lines)))
		}

		pdf.AddPage()
		drawSection(fmt.Sprintf("%s Findings", severity), strings.Join(lines, "\n"))
	}

	// Rodapé
	pdf.SetY(-15)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	footerText := fmt.Sprintf("Generated by Cloud Security Dashboard (Go) | %s", time.Now().Format("2006-01-02"))
	pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing findings PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// --- Funções Auxiliares ---

// generateFilename monta o nome do artefato com o timestamp da execução e
// garante que o diretório exista. Todos os artefatos de uma execução usam o
// mesmo timestamp, formando um snapshot consistente.
func generateFilename(base, dir, timestamp, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}

// formatRemediationCell achata a remediação estruturada para uma célula CSV.
func formatRemediationCell(remediation entity.Remediation) string {
	var parts []string
	if remediation.Summary != "" {
		parts = append(parts, remediation.Summary)
	}
	if remediation.DocURL != "" {
		parts = append(parts, fmt.Sprintf("See: %s", remediation.DocURL))
	}
	for _, option := range remediation.Options {
		if option.Type == entity.OptionTypeCLI && option.Code != "" {
			parts = append(parts, fmt.Sprintf("CLI Fix: %s", option.Code))
		}
	}
	return strings.Join(parts, "\n")
}

// formatCountMap renderiza um mapa de contagens em ordem decrescente.
func formatCountMap(counts map[string]int) string {
	type kv struct {
		k string
		v int
	}
	pairs := make([]kv, 0, len(counts))
	for k, v := range counts {
		pairs = append(pairs, kv{k, v})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].v != pairs[j].v {
			return pairs[i].v > pairs[j].v
		}
		return pairs[i].k < pairs[j].k
	})

	var b strings.Builder
	for _, p := range pairs {
		b.WriteString(fmt.Sprintf("%s: %d\n", p.k, p.v))
	}
	return b.String()
}

// Regex para limpar formatação pterm (rich tags) e sequências ANSI de cor/estilo.
var richTagRegex = regexp.MustCompile(`\[/?([a-zA-Z]+|#[0-9a-fA-F]{6})\]`)
var ansiRegex = regexp.MustCompile(`\x1B\[[0-9;]*[A-Za-z]`)

// cleanRichTags remove tags de formatação do pterm e sequências ANSI.
func cleanRichTags(text string) string {
	text = richTagRegex.ReplaceAllString(text, "")
	text = ansiRegex.ReplaceAllString(text, "")
	return text
}

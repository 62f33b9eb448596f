package repository

import (
	"github.com/diillson/cloudsec-dashboard-go/internal/domain/entity"
)

// ExportRepository writes the aggregation artifacts. All artifacts of one
// run share the same timestamp suffix so they always form a consistent
// snapshot triple.
type ExportRepository interface {
	ExportFindingsToJSON(findings []entity.Finding, outputDir, timestamp string) (string, error)
	ExportFindingsToCSV(findings []entity.Finding, outputDir, timestamp string) (string, error)
	ExportFindingsToPDF(findings []entity.Finding, summary *entity.Summary, outputDir, timestamp string) (string, error)
	ExportSummaryToJSON(summary *entity.Summary, outputDir, timestamp string) (string, error)
}

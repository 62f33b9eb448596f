package repository

import (
	"github.com/diillson/cloudsec-dashboard-go/internal/domain/entity"
)

// FindingsRepository reads back the artifacts written by a previous
// aggregation run, always selecting the latest snapshot per artifact type.
type FindingsRepository interface {
	LoadLatestFindings(dir string) ([]entity.Finding, error)
	LoadLatestSummary(dir string) (*entity.Summary, error)
}

package repository

import (
	"github.com/diillson/cloudsec-dashboard-go/internal/domain/entity"
)

// ScannerRepository defines the interface for loading raw scanner output and
// normalizing it into Finding records. A missing result file is not an error:
// the loader returns an empty slice. A parse failure returns whatever
// findings were recovered plus the error, so one bad account directory does
// not discard the others.
type ScannerRepository interface {
	LoadProwlerFindings(root string) ([]entity.Finding, error)
	LoadScoutSuiteFindings(root string) ([]entity.Finding, error)
}

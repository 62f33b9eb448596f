package scanner

import (
	"github.com/diillson/cloudsec-dashboard-go/internal/domain/repository"
)

// ScannerRepositoryImpl implementa o ScannerRepository.
type ScannerRepositoryImpl struct{}

// NewScannerRepository cria uma nova implementação do ScannerRepository.
func NewScannerRepository() repository.ScannerRepository {
	return &ScannerRepositoryImpl{}
}

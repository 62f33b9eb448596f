package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/diillson/cloudsec-dashboard-go/internal/domain/entity"
	"github.com/diillson/cloudsec-dashboard-go/internal/domain/repository"
	"github.com/diillson/cloudsec-dashboard-go/internal/shared/types"
)

// FindingsStoreImpl implementa o FindingsRepository lendo os artefatos
// gravados pelo agregador.
type FindingsStoreImpl struct{}

// NewFindingsStore cria uma nova implementação do FindingsRepository.
func NewFindingsStore() repository.FindingsRepository {
	return &FindingsStoreImpl{}
}

// LoadLatestFindings carrega o artefato de findings mais recente do diretório.
func (s *FindingsStoreImpl) LoadLatestFindings(dir string) ([]entity.Finding, error) {
	latest, err := latestArtifact(dir, "aggregated_findings_*.json", types.ErrNoAggregatedFindings)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(latest)
	if err != nil {
		return nil, fmt.Errorf("error reading findings file %s: %w", latest, err)
	}

	var findings []entity.Finding
	if err := json.Unmarshal(data, &findings); err != nil {
		return nil, fmt.Errorf("error parsing findings JSON %s: %w", latest, err)
	}
	return findings, nil
}

// LoadLatestSummary carrega o artefato de resumo mais recente do diretório.
func (s *FindingsStoreImpl) LoadLatestSummary(dir string) (*entity.Summary, error) {
	latest, err := latestArtifact(dir, "findings_summary_*.json", types.ErrNoSummary)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(latest)
	if err != nil {
		return nil, fmt.Errorf("error reading summary file %s: %w", latest, err)
	}

	var summary entity.Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("error parsing summary JSON %s: %w", latest, err)
	}
	return &summary, nil
}

// latestArtifact selects the newest artifact matching the pattern. Artifact
// names embed the run timestamp in a sortable format, so the
// lexicographically greatest name is the latest snapshot.
func latestArtifact(dir, pattern string, notFound error) (string, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", types.ErrNoFindingsDir
	}

	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return "", fmt.Errorf("error listing artifacts in %s: %w", dir, err)
	}
	if len(matches) == 0 {
		return "", notFound
	}

	sort.Strings(matches)
	return matches[len(matches)-1], nil
}

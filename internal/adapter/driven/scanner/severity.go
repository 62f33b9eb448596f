package scanner

import (
	"strings"

	"github.com/diillson/cloudsec-dashboard-go/internal/domain/entity"
)

// severityTable mapeia os formatos de severidade dos scanners para os níveis
// padronizados do dashboard.
var severityTable = map[string]entity.Severity{
	"CRITICAL":      entity.SeverityCritical,
	"HIGH":          entity.SeverityHigh,
	"MEDIUM":        entity.SeverityMedium,
	"LOW":           entity.SeverityLow,
	"INFO":          entity.SeverityInformational,
	"INFORMATIONAL": entity.SeverityInformational,
}

// MapSeverity normalizes a free-text severity string to one of the fixed
// levels. Anything unrecognized, including the empty string, maps to Medium.
func MapSeverity(raw string) entity.Severity {
	if severity, ok := severityTable[strings.ToUpper(raw)]; ok {
		return severity
	}
	return entity.SeverityMedium
}

// scoutSuiteLevelTable traduz os níveis do ScoutSuite (danger/warning/info).
var scoutSuiteLevelTable = map[string]entity.Severity{
	"danger":  entity.SeverityHigh,
	"warning": entity.SeverityMedium,
	"info":    entity.SeverityLow,
}

func mapScoutSuiteLevel(level string) entity.Severity {
	if severity, ok := scoutSuiteLevelTable[level]; ok {
		return severity
	}
	return entity.SeverityMedium
}

package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/cloudsec-dashboard-go/internal/domain/entity"
)

const scoutSuiteFixture = `scoutsuite_results =
{
  "account_id": "tenant-1234",
  "services": {
    "storageaccounts": {
      "findings": {
        "storage-account-https-only": {
          "description": "Storage accounts should require HTTPS",
          "rationale": "Unencrypted traffic can be intercepted",
          "remediation": "In the Azure portal, enable secure transfer. Or run az storage account update --https-only true to fix it.",
          "references": ["CIS Azure 3.1"],
          "level": "danger",
          "flagged_items": 2,
          "items": [
            "subscriptions.sub1.storage_accounts.storageacct1",
            "subscriptions.sub1.storage_accounts.storageacct2"
          ]
        },
        "storage-account-ok": {
          "description": "All good",
          "level": "info",
          "flagged_items": 0,
          "items": []
        }
      }
    },
    "keyvault": {
      "findings": {
        "keyvault-soft-delete": {
          "description": "Key vaults without soft delete",
          "level": "warning",
          "flagged_items": 3,
          "items": []
        }
      }
    }
  }
}`

func writeScoutSuiteFile(t *testing.T, root, name, content string) {
	t.Helper()
	resultsDir := filepath.Join(root, "scoutsuite-results")
	require.NoError(t, os.MkdirAll(resultsDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(resultsDir, name), []byte(content), 0644))
}

func TestLoadScoutSuiteFindingsFanOut(t *testing.T) {
	root := t.TempDir()
	writeScoutSuiteFile(t, root, "scoutsuite_results_azure-tenant-20250114_120000.js", scoutSuiteFixture)

	repo := &ScannerRepositoryImpl{}
	findings, err := repo.LoadScoutSuiteFindings(root)
	require.NoError(t, err)
	// 2 itens flagados + 1 finding sem itens = 3 registros; flagged_items 0 é ignorado.
	require.Len(t, findings, 3)

	byResource := map[string]entity.Finding{}
	for _, f := range findings {
		byResource[f.Resource] = f
	}

	f, ok := byResource["storageacct1"]
	require.True(t, ok, "expected per-item record for storageacct1")
	assert.Equal(t, "ScoutSuite", f.Source)
	assert.Equal(t, "Azure", f.CloudProvider)
	assert.Equal(t, "storage-account-https-only", f.FindingID)
	assert.Equal(t, entity.SeverityHigh, f.Severity)
	assert.Equal(t, "FAIL", f.Status)
	assert.Equal(t, "global", f.Region)
	assert.Equal(t, "tenant-1234", f.AccountID)
	assert.Equal(t, "subscriptions.sub1.storage_accounts.storageacct1", f.ResourceArn)
	assert.Contains(t, f.Issue, "2 resource(s) affected")
	assert.Equal(t, []string{"CIS Azure 3.1"}, f.Compliance)

	aggregate, ok := byResource["keyvault (multiple resources)"]
	require.True(t, ok, "expected aggregate record for keyvault")
	assert.Equal(t, entity.SeverityMedium, aggregate.Severity)
	assert.Empty(t, aggregate.ResourceArn)
}

func TestLoadScoutSuiteFindingsEmbeddedCommands(t *testing.T) {
	root := t.TempDir()
	writeScoutSuiteFile(t, root, "scoutsuite_results_azure-tenant-20250114_120000.js", scoutSuiteFixture)

	repo := &ScannerRepositoryImpl{}
	findings, err := repo.LoadScoutSuiteFindings(root)
	require.NoError(t, err)

	for _, f := range findings {
		if f.FindingID != "storage-account-https-only" {
			continue
		}
		require.NotEmpty(t, f.Remediation.Options)
		assert.Equal(t, entity.OptionTypeConsole, f.Remediation.Options[0].Type)
		assert.NotEmpty(t, f.Remediation.Options[0].HTML)

		require.Len(t, f.Remediation.Options, 2)
		cli := f.Remediation.Options[1]
		assert.Equal(t, entity.OptionTypeCLI, cli.Type)
		assert.Contains(t, cli.Code, "az storage account update")
	}
}

func TestLoadScoutSuiteFindingsMissingDir(t *testing.T) {
	repo := &ScannerRepositoryImpl{}
	findings, err := repo.LoadScoutSuiteFindings(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, findings)
}

func TestLoadScoutSuiteFindingsNoAssignmentPrefix(t *testing.T) {
	root := t.TempDir()
	writeScoutSuiteFile(t, root, "scoutsuite_results_azure-tenant-20250114_120000.js", `{"account_id":"x"}`)

	repo := &ScannerRepositoryImpl{}
	_, err := repo.LoadScoutSuiteFindings(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scoutsuite_results assignment not found")
}

func TestParseScoutSuiteFileStripsPrefix(t *testing.T) {
	root := t.TempDir()
	writeScoutSuiteFile(t, root, "scoutsuite_results_azure-tenant-20250114_120000.js",
		"scoutsuite_results =\n  {\"account_id\": \"abc\", \"services\": {}}")

	report, err := parseScoutSuiteFile(filepath.Join(root, "scoutsuite-results", "scoutsuite_results_azure-tenant-20250114_120000.js"))
	require.NoError(t, err)
	assert.Equal(t, "abc", report.AccountID)
}

func TestExtractScoutSuiteRemediationEmpty(t *testing.T) {
	remediation := extractScoutSuiteRemediation("")
	assert.Empty(t, remediation.Options)
	assert.Empty(t, remediation.Summary)
}

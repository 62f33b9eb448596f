package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/cloudsec-dashboard-go/internal/adapter/driven/awscli"
	"github.com/diillson/cloudsec-dashboard-go/internal/domain/entity"
	"github.com/diillson/cloudsec-dashboard-go/internal/shared/types"
)

func encryptionFinding(resource string) entity.Finding {
	return entity.Finding{
		Source:        "Prowler",
		CloudProvider: "AWS",
		FindingID:     "s3_bucket_default_encryption",
		Severity:      entity.SeverityHigh,
		Status:        "FAIL",
		Resource:      resource,
		Region:        "us-east-1",
		AccountID:     "123456789012",
	}
}

func newRemediateTestCase(findings []entity.Finding, runner *fakeRunner, stdin string) (*RemediateUseCase, *fakeConsole) {
	console := &fakeConsole{}
	uc := NewRemediateUseCase(
		&fakeFindingsRepo{findings: findings},
		&fakeIdentityRepo{account: "123456789012", arn: "arn:aws:iam::123456789012:user/test"},
		runner,
		console,
		strings.NewReader(stdin),
	)
	return uc, console
}

func TestRemediateDryRunDoesNotExecute(t *testing.T) {
	runner := &fakeRunner{}
	uc, console := newRemediateTestCase([]entity.Finding{encryptionFinding("my-bucket")}, runner, "")

	report, err := uc.Run(context.Background(), &types.RemediateArgs{})
	require.NoError(t, err)

	assert.Empty(t, runner.calls, "dry run must not execute commands")
	require.Len(t, report.Fixed, 1)
	assert.Contains(t, report.Fixed[0].Message, "[DRY RUN]")
	assert.Contains(t, console.output(), "DRY RUN MODE")
}

func TestRemediateApplyExecutesAfterConfirmation(t *testing.T) {
	runner := &fakeRunner{}
	uc, _ := newRemediateTestCase([]entity.Finding{encryptionFinding("my-bucket")}, runner, "yes\n")

	report, err := uc.Run(context.Background(), &types.RemediateArgs{Apply: true})
	require.NoError(t, err)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, "aws", runner.calls[0][0])
	assert.Contains(t, runner.calls[0], "put-bucket-encryption")
	require.Len(t, report.Fixed, 1)
	assert.NotContains(t, report.Fixed[0].Message, "[DRY RUN]")
}

func TestRemediateApplyAbortsWithoutConfirmation(t *testing.T) {
	runner := &fakeRunner{}
	uc, console := newRemediateTestCase([]entity.Finding{encryptionFinding("my-bucket")}, runner, "no\n")

	report, err := uc.Run(context.Background(), &types.RemediateArgs{Apply: true})
	require.NoError(t, err)

	assert.Empty(t, runner.calls)
	assert.Equal(t, 0, report.Total())
	assert.Contains(t, console.output(), "Aborted")
}

func TestRemediateDedupOneAttemptPerIssue(t *testing.T) {
	// O mesmo finding aparece uma vez por framework de compliance.
	findings := []entity.Finding{
		encryptionFinding("my-bucket"),
		encryptionFinding("my-bucket"),
		encryptionFinding("other-bucket"),
	}
	runner := &fakeRunner{}
	uc, _ := newRemediateTestCase(findings, runner, "yes\n")

	report, err := uc.Run(context.Background(), &types.RemediateArgs{Apply: true})
	require.NoError(t, err)

	assert.Len(t, runner.calls, 2)
	assert.Equal(t, 2, report.Total())
}

func TestRemediateSkipsUnknownFindingType(t *testing.T) {
	finding := encryptionFinding("my-bucket")
	finding.FindingID = "iam_root_mfa_enabled"
	runner := &fakeRunner{}
	uc, _ := newRemediateTestCase([]entity.Finding{finding}, runner, "")

	report, err := uc.Run(context.Background(), &types.RemediateArgs{})
	require.NoError(t, err)

	require.Len(t, report.Skipped, 1)
	assert.Equal(t, "no automated remediation available", report.Skipped[0].Message)
}

func TestRemediateManualFinding(t *testing.T) {
	finding := encryptionFinding("my-bucket")
	finding.FindingID = "s3_bucket_logging_enabled"
	runner := &fakeRunner{}
	uc, _ := newRemediateTestCase([]entity.Finding{finding}, runner, "")

	report, err := uc.Run(context.Background(), &types.RemediateArgs{})
	require.NoError(t, err)

	assert.Empty(t, runner.calls)
	require.Len(t, report.Manual, 1)
	assert.Contains(t, report.Manual[0].Message, "[MANUAL]")
	assert.Contains(t, report.Manual[0].Message, "put-bucket-logging")
}

func TestRemediateInvalidBucketResource(t *testing.T) {
	// Resource igual ao account ID indica um check de nível de conta
	// reportado contra a própria conta, sem bucket alvo.
	finding := encryptionFinding("123456789012")
	runner := &fakeRunner{}
	uc, _ := newRemediateTestCase([]entity.Finding{finding}, runner, "")

	report, err := uc.Run(context.Background(), &types.RemediateArgs{})
	require.NoError(t, err)

	assert.Empty(t, runner.calls)
	require.Len(t, report.Failed, 1)
	assert.Contains(t, report.Failed[0].Message, "Cannot determine bucket name")
}

func TestRemediateBenignConflictIsSuccess(t *testing.T) {
	finding := encryptionFinding("")
	finding.FindingID = "accessanalyzer_enabled"
	finding.Resource = "123456789012"
	runner := &fakeRunner{results: []awscli.CommandResult{
		{Stderr: "An error occurred (ConflictException): analyzer already exists", ExitCode: 254},
	}}
	uc, _ := newRemediateTestCase([]entity.Finding{finding}, runner, "yes\n")

	report, err := uc.Run(context.Background(), &types.RemediateArgs{Apply: true})
	require.NoError(t, err)

	require.Len(t, report.Fixed, 1)
	assert.Contains(t, report.Fixed[0].Message, "already exists")
}

func TestRemediateCommandFailure(t *testing.T) {
	runner := &fakeRunner{results: []awscli.CommandResult{
		{Stderr: "AccessDenied", ExitCode: 255},
	}}
	uc, _ := newRemediateTestCase([]entity.Finding{encryptionFinding("my-bucket")}, runner, "yes\n")

	report, err := uc.Run(context.Background(), &types.RemediateArgs{Apply: true})
	require.NoError(t, err, "per-finding failures must not fail the run")

	require.Len(t, report.Failed, 1)
	assert.Contains(t, report.Failed[0].Message, "AccessDenied")
}

func TestRemediateAWSCLINotFound(t *testing.T) {
	runner := &fakeRunner{err: awscli.ErrAWSCLINotFound}
	uc, _ := newRemediateTestCase([]entity.Finding{encryptionFinding("my-bucket")}, runner, "yes\n")

	report, err := uc.Run(context.Background(), &types.RemediateArgs{Apply: true})
	require.NoError(t, err)

	require.Len(t, report.Failed, 1)
	assert.Contains(t, report.Failed[0].Message, "aws CLI not found")
}

func TestRemediateMissingFindingsDirIsFatal(t *testing.T) {
	console := &fakeConsole{}
	uc := NewRemediateUseCase(
		&fakeFindingsRepo{err: types.ErrNoFindingsDir},
		&fakeIdentityRepo{},
		&fakeRunner{},
		console,
		strings.NewReader(""),
	)

	_, err := uc.Run(context.Background(), &types.RemediateArgs{})
	assert.ErrorIs(t, err, types.ErrNoFindingsDir)
}

func TestRemediateNoArtifactsIsNotFatal(t *testing.T) {
	console := &fakeConsole{}
	uc := NewRemediateUseCase(
		&fakeFindingsRepo{err: types.ErrNoAggregatedFindings},
		&fakeIdentityRepo{},
		&fakeRunner{},
		console,
		strings.NewReader(""),
	)

	report, err := uc.Run(context.Background(), &types.RemediateArgs{})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Total())
	assert.Contains(t, console.output(), "Run the aggregator first")
}

func TestFilterFindings(t *testing.T) {
	findings := []entity.Finding{
		encryptionFinding("bucket-a"),
		encryptionFinding("bucket-b"),
		{FindingID: "accessanalyzer_enabled", Resource: "bucket-a", Severity: entity.SeverityLow},
	}

	byType := FilterFindings(findings, "s3_bucket_default_encryption", "", "")
	assert.Len(t, byType, 2)

	byResource := FilterFindings(findings, "", "bucket-a", "")
	assert.Len(t, byResource, 2)

	bySeverity := FilterFindings(findings, "", "", "HIGH")
	assert.Len(t, bySeverity, 2, "severity filter is case-insensitive")

	combined := FilterFindings(findings, "s3_bucket_default_encryption", "bucket-a", "high")
	assert.Len(t, combined, 1)

	none := FilterFindings(findings, "nope", "", "")
	assert.Empty(t, none)
}

func TestDedupFindingsPreservesOrder(t *testing.T) {
	findings := []entity.Finding{
		encryptionFinding("bucket-b"),
		encryptionFinding("bucket-a"),
		encryptionFinding("bucket-b"),
	}

	unique := DedupFindings(findings)
	require.Len(t, unique, 2)
	assert.Equal(t, "bucket-b", unique[0].Resource)
	assert.Equal(t, "bucket-a", unique[1].Resource)
}

func TestRemediationTableAliases(t *testing.T) {
	// Aliases históricos do mesmo problema compartilham o fixer.
	for _, id := range []string{
		"s3_bucket_default_encryption",
		"s3_bucket_server_side_encryption_enabled",
		"s3_bucket_public_access",
		"s3_bucket_level_public_access_block",
		"s3_bucket_policy_public_write_access",
		"s3_bucket_acl_prohibited",
		"s3_bucket_versioning_enabled",
		"s3_bucket_no_mfa_delete",
		"s3_bucket_logging_enabled",
		"accessanalyzer_enabled",
		"s3_account_level_public_access_blocks",
	} {
		_, ok := remediationTable[id]
		assert.True(t, ok, "missing fixer for %s", id)
	}
}

func TestFixAccountLevelPublicAccessBlock(t *testing.T) {
	finding := entity.Finding{
		FindingID: "s3_account_level_public_access_blocks",
		Resource:  "123456789012",
		AccountID: "123456789012",
	}
	runner := &fakeRunner{}
	uc, _ := newRemediateTestCase([]entity.Finding{finding}, runner, "yes\n")

	report, err := uc.Run(context.Background(), &types.RemediateArgs{Apply: true})
	require.NoError(t, err)

	require.Len(t, runner.calls, 1)
	assert.Contains(t, runner.calls[0], "s3control")
	assert.Contains(t, runner.calls[0], "123456789012")
	require.Len(t, report.Fixed, 1)
}

func TestFixIAMAccessAnalyzerDefaultRegion(t *testing.T) {
	finding := entity.Finding{FindingID: "accessanalyzer_enabled"}
	runner := &fakeRunner{}
	uc, _ := newRemediateTestCase([]entity.Finding{finding}, runner, "")

	report, err := uc.Run(context.Background(), &types.RemediateArgs{})
	require.NoError(t, err)

	require.Len(t, report.Fixed, 1)
	assert.Contains(t, report.Fixed[0].Message, "us-east-1")
}

package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/diillson/cloudsec-dashboard-go/internal/adapter/driven/awscli"
	"github.com/diillson/cloudsec-dashboard-go/internal/domain/entity"
)

// FixerFunc valida um finding, monta exatamente um comando da AWS CLI e o
// executa (ou apenas o descreve, em dry run). Retorna (sucesso, mensagem).
type FixerFunc func(ctx context.Context, finding entity.Finding, runner awscli.CommandRunner, dryRun bool) (bool, string)

// remediationTable mapeia finding IDs do Prowler para suas funções de
// remediação. Finding types fora da tabela são pulados (sem remediação
// automática). Aliases históricos do mesmo problema apontam para o mesmo fixer.
var remediationTable = map[string]FixerFunc{
	// S3 Encryption findings
	"s3_bucket_default_encryption":             fixS3DefaultEncryption,
	"s3_bucket_server_side_encryption_enabled": fixS3DefaultEncryption,

	// S3 Public Access findings
	"s3_bucket_public_access":              fixS3PublicAccessBlock,
	"s3_bucket_level_public_access_block":  fixS3PublicAccessBlock,
	"s3_bucket_policy_public_write_access": fixS3PublicAccessBlock,
	"s3_bucket_acl_prohibited":             fixS3PublicAccessBlock,

	// S3 Versioning findings (MFA delete exige versioning primeiro)
	"s3_bucket_versioning_enabled": fixS3Versioning,
	"s3_bucket_no_mfa_delete":      fixS3Versioning,

	// S3 Logging (manual: precisa de bucket de destino)
	"s3_bucket_logging_enabled": fixS3Logging,

	// IAM Access Analyzer
	"accessanalyzer_enabled": fixIAMAccessAnalyzer,

	// Account-level S3 settings
	"s3_account_level_public_access_blocks": fixAccountLevelPublicAccessBlock,
}

const publicAccessBlockConfig = "BlockPublicAcls=true,IgnorePublicAcls=true,BlockPublicPolicy=true,RestrictPublicBuckets=true"

const sseConfigJSON = `{"Rules":[{"ApplyServerSideEncryptionByDefault":{"SSEAlgorithm":"AES256"}}]}`

// bucketFromFinding extracts a usable bucket name. A record whose resource
// equals its account ID is degenerate (account-level check reported against
// the account itself) and cannot target a bucket.
func bucketFromFinding(finding entity.Finding) (string, bool) {
	bucket := finding.Resource
	if bucket == "" || bucket == finding.AccountID {
		return "", false
	}
	return bucket, true
}

// runAWS executes one aws CLI invocation and folds launch failures into a
// (success, message) pair.
func runAWS(ctx context.Context, runner awscli.CommandRunner, args ...string) (awscli.CommandResult, bool, string) {
	result, err := runner.Run(ctx, "aws", args...)
	if err != nil {
		return result, false, fmt.Sprintf("Failed to run aws CLI: %s", err)
	}
	return result, true, ""
}

func fixS3DefaultEncryption(ctx context.Context, finding entity.Finding, runner awscli.CommandRunner, dryRun bool) (bool, string) {
	bucket, ok := bucketFromFinding(finding)
	if !ok {
		return false, "Cannot determine bucket name from finding"
	}

	if dryRun {
		return true, fmt.Sprintf("[DRY RUN] Would enable AES-256 encryption on bucket: %s", bucket)
	}

	result, launched, message := runAWS(ctx, runner,
		"s3api", "put-bucket-encryption",
		"--bucket", bucket,
		"--server-side-encryption-configuration", sseConfigJSON,
	)
	if !launched {
		return false, message
	}
	if result.ExitCode != 0 {
		return false, fmt.Sprintf("Failed to enable encryption on %s: %s", bucket, strings.TrimSpace(result.Stderr))
	}
	return true, fmt.Sprintf("Successfully enabled encryption on bucket: %s", bucket)
}

func fixS3PublicAccessBlock(ctx context.Context, finding entity.Finding, runner awscli.CommandRunner, dryRun bool) (bool, string) {
	bucket, ok := bucketFromFinding(finding)
	if !ok {
		return false, "Cannot determine bucket name from finding"
	}

	if dryRun {
		return true, fmt.Sprintf("[DRY RUN] Would block public access on bucket: %s", bucket)
	}

	result, launched, message := runAWS(ctx, runner,
		"s3api", "put-public-access-block",
		"--bucket", bucket,
		"--public-access-block-configuration", publicAccessBlockConfig,
	)
	if !launched {
		return false, message
	}
	if result.ExitCode != 0 {
		return false, fmt.Sprintf("Failed to block public access on %s: %s", bucket, strings.TrimSpace(result.Stderr))
	}
	return true, fmt.Sprintf("Successfully blocked public access on bucket: %s", bucket)
}

func fixS3Versioning(ctx context.Context, finding entity.Finding, runner awscli.CommandRunner, dryRun bool) (bool, string) {
	bucket, ok := bucketFromFinding(finding)
	if !ok {
		return false, "Cannot determine bucket name from finding"
	}

	if dryRun {
		return true, fmt.Sprintf("[DRY RUN] Would enable versioning on bucket: %s", bucket)
	}

	result, launched, message := runAWS(ctx, runner,
		"s3api", "put-bucket-versioning",
		"--bucket", bucket,
		"--versioning-configuration", "Status=Enabled",
	)
	if !launched {
		return false, message
	}
	if result.ExitCode != 0 {
		return false, fmt.Sprintf("Failed to enable versioning on %s: %s", bucket, strings.TrimSpace(result.Stderr))
	}
	return true, fmt.Sprintf("Successfully enabled versioning on bucket: %s", bucket)
}

// fixS3Logging declina automação: habilitar logging exige um bucket de
// destino que não dá para inferir do finding.
func fixS3Logging(ctx context.Context, finding entity.Finding, runner awscli.CommandRunner, dryRun bool) (bool, string) {
	bucket := finding.Resource

	return false, fmt.Sprintf(
		"[MANUAL] S3 logging for %s requires a target bucket. Run: aws s3api put-bucket-logging --bucket %s --bucket-logging-status '{\"LoggingEnabled\":{\"TargetBucket\":\"YOUR-LOG-BUCKET\",\"TargetPrefix\":\"%s/\"}}'",
		bucket, bucket, bucket,
	)
}

func fixIAMAccessAnalyzer(ctx context.Context, finding entity.Finding, runner awscli.CommandRunner, dryRun bool) (bool, string) {
	region := finding.Region
	if region == "" {
		region = "us-east-1"
	}
	analyzerName := fmt.Sprintf("security-analyzer-%s", region)

	if dryRun {
		return true, fmt.Sprintf("[DRY RUN] Would create IAM Access Analyzer in region: %s", region)
	}

	result, launched, message := runAWS(ctx, runner,
		"accessanalyzer", "create-analyzer",
		"--analyzer-name", analyzerName,
		"--type", "ACCOUNT",
		"--region", region,
	)
	if !launched {
		return false, message
	}
	if result.ExitCode == 0 {
		return true, fmt.Sprintf("Successfully created IAM Access Analyzer in region: %s", region)
	}
	if isBenignConflict(result.Stderr) {
		return true, fmt.Sprintf("IAM Access Analyzer already exists in region: %s", region)
	}
	return false, fmt.Sprintf("Failed to create IAM Access Analyzer in %s: %s", region, strings.TrimSpace(result.Stderr))
}

func fixAccountLevelPublicAccessBlock(ctx context.Context, finding entity.Finding, runner awscli.CommandRunner, dryRun bool) (bool, string) {
	accountID := finding.AccountID
	if accountID == "" {
		return false, "Cannot determine account ID from finding"
	}

	if dryRun {
		return true, fmt.Sprintf("[DRY RUN] Would enable account-level S3 public access block for account: %s", accountID)
	}

	result, launched, message := runAWS(ctx, runner,
		"s3control", "put-public-access-block",
		"--account-id", accountID,
		"--public-access-block-configuration", publicAccessBlockConfig,
	)
	if !launched {
		return false, message
	}
	if result.ExitCode != 0 {
		return false, fmt.Sprintf("Failed to enable account-level public access block: %s", strings.TrimSpace(result.Stderr))
	}
	return true, "Successfully enabled account-level S3 public access block"
}

// isBenignConflict detects the idempotent-conflict signatures the AWS CLI
// emits when the fix is already in place.
func isBenignConflict(stderr string) bool {
	return strings.Contains(stderr, "ConflictException") || strings.Contains(stderr, "already exists")
}

package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/diillson/cloudsec-dashboard-go/internal/domain/repository"
)

// IdentityRepositoryImpl implementa o IdentityRepository via STS.
type IdentityRepositoryImpl struct{}

// NewIdentityRepository cria uma nova implementação do IdentityRepository.
func NewIdentityRepository() repository.IdentityRepository {
	return &IdentityRepositoryImpl{}
}

// GetCallerIdentity resolves the account and principal behind the ambient
// AWS credentials, the same ones the aws CLI will pick up.
func (r *IdentityRepositoryImpl) GetCallerIdentity(ctx context.Context) (string, string, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return "", "", fmt.Errorf("error loading AWS configuration: %w", err)
	}

	client := sts.NewFromConfig(cfg)
	output, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", "", fmt.Errorf("error calling sts:GetCallerIdentity: %w", err)
	}

	return aws.ToString(output.Account), aws.ToString(output.Arn), nil
}

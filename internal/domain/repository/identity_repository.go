package repository

import "context"

// IdentityRepository resolves the cloud identity behind the ambient
// credentials. Used as a preflight before apply-mode remediation so the
// operator sees which account is about to be modified.
type IdentityRepository interface {
	GetCallerIdentity(ctx context.Context) (accountID string, arn string, err error)
}

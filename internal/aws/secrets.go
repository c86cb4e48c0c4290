package aws

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// tokenKey is the field read when the secret holds a JSON document
const tokenKey = "token"

// secretsAPI is the subset of the Secrets Manager client used here
type secretsAPI interface {
	GetSecretValue(ctx context.Context, in *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// TokenSource reads the API bearer token from a Secrets Manager secret
type TokenSource struct {
	sm       secretsAPI
	secretID string
}

// NewTokenSource creates a TokenSource for secretID
func NewTokenSource(client *Client, secretID string) *TokenSource {
	return &TokenSource{sm: client.SecretsManager, secretID: secretID}
}

// Token returns the secret value. A JSON secret of the form
// {"token": "..."} yields the token field; anything else is used verbatim.
func (s *TokenSource) Token(ctx context.Context) (string, error) {
	out, err := s.sm.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(s.secretID),
	})
	if err != nil {
		return "", fmt.Errorf("failed to get secret %s: %w", s.secretID, err)
	}

	value := strings.TrimSpace(aws.ToString(out.SecretString))
	if value == "" {
		return "", fmt.Errorf("secret %s has no string value", s.secretID)
	}

	if strings.HasPrefix(value, "{") {
		var doc map[string]string
		if err := json.Unmarshal([]byte(value), &doc); err == nil {
			if token := doc[tokenKey]; token != "" {
				return token, nil
			}
			return "", fmt.Errorf("secret %s has no %q field", s.secretID, tokenKey)
		}
	}
	return value, nil
}

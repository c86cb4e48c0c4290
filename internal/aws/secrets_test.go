package aws

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

type fakeSecrets struct {
	value *string
	err   error
	asked string
}

func (f *fakeSecrets) GetSecretValue(_ context.Context, in *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.asked = aws.ToString(in.SecretId)
	if f.err != nil {
		return nil, f.err
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: f.value}, nil
}

func TestTokenSource(t *testing.T) {
	tests := []struct {
		name    string
		value   *string
		want    string
		wantErr string
	}{
		{name: "plain", value: aws.String("abc123\n"), want: "abc123"},
		{name: "json", value: aws.String(`{"token":"abc123","user":"ops"}`), want: "abc123"},
		{name: "json without token", value: aws.String(`{"user":"ops"}`), wantErr: `no "token" field`},
		{name: "brace but not json", value: aws.String("{abc"), want: "{abc"},
		{name: "empty", value: aws.String("  "), wantErr: "no string value"},
		{name: "binary only", value: nil, wantErr: "no string value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeSecrets{value: tt.value}
			ts := &TokenSource{sm: fake, secretID: "cirrus/prod"}

			got, err := ts.Token(context.Background())
			if fake.asked != "cirrus/prod" {
				t.Errorf("asked for secret %q", fake.asked)
			}
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Token: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTokenSourceLookupFailure(t *testing.T) {
	boom := errors.New("access denied")
	ts := &TokenSource{sm: &fakeSecrets{err: boom}, secretID: "cirrus/prod"}

	if _, err := ts.Token(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gagankishoreint-glitch/credai/internal/application/dto"
	"github.com/gagankishoreint-glitch/credai/pkg/auth"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := newApp(&out).Run(context.Background(), append([]string{name}, args...))
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestScoreCommand(t *testing.T) {
	t.Run("json input and output", func(t *testing.T) {
		path := writeFile(t, "strong.json", `{
			"annualRevenue": 4000000, "operatingExpenses": 50000,
			"loanAmount": 500000, "yearsInBusiness": 8, "creditScore": 800
		}`)

		out, err := run(t, "score", "--file", path, "--explain")
		require.NoError(t, err)

		var got dto.AssessmentResponse
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, 770, got.PolicyScore)
		assert.Equal(t, 833, got.CreditScore)
		assert.Equal(t, "A", got.RiskGrade)
		assert.Equal(t, "approved", got.Decision)
		assert.NotNil(t, got.Features)
		assert.NotEmpty(t, got.Contributions)
	})

	t.Run("yaml input and output", func(t *testing.T) {
		path := writeFile(t, "weak.yaml", strings.Join([]string{
			"annualRevenue: 100000",
			"operatingExpenses: '20000'",
			"loanAmount: 300000",
			"yearsInBusiness: 1",
		}, "\n"))

		out, err := run(t, "--format", "yaml", "score", "-f", path)
		require.NoError(t, err)
		assert.Contains(t, out, "policyScore: 510")
		assert.Contains(t, out, "decision: pending")
		assert.Contains(t, out, "text: Early Stage Venture Risk")
		assert.NotContains(t, out, "features:")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := run(t, "score", "--file", filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("unsupported format", func(t *testing.T) {
		path := writeFile(t, "empty.json", `{}`)
		_, err := run(t, "--format", "xml", "score", "--file", path)
		assert.Error(t, err)
	})
}

func TestBatchCommand(t *testing.T) {
	t.Run("bare list", func(t *testing.T) {
		path := writeFile(t, "batch.json", `[
			{"annualRevenue": 200000, "loanAmount": 100000},
			{"annualRevenue": 4000000, "yearsInBusiness": 8, "loanAmount": 100000},
			{}
		]`)

		out, err := run(t, "batch", "--file", path, "--workers", "2")
		require.NoError(t, err)

		var got dto.ScoreBatchResponse
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		require.Len(t, got.Results, 3)
		assert.Equal(t, 670, got.Results[0].PolicyScore)
		assert.Equal(t, 770, got.Results[1].PolicyScore)
		assert.Equal(t, 620, got.Results[2].PolicyScore)
	})

	t.Run("wrapped document", func(t *testing.T) {
		path := writeFile(t, "batch.yaml", "applications:\n  - annualRevenue: 200000\n    loanAmount: 100000\n")

		out, err := run(t, "batch", "--file", path)
		require.NoError(t, err)

		var got dto.ScoreBatchResponse
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		require.Len(t, got.Results, 1)
		assert.Equal(t, "analyzing", got.Results[0].Status)
	})
}

func TestParseBatch(t *testing.T) {
	apps, err := parseBatch([]byte(""))
	require.NoError(t, err)
	assert.Empty(t, apps)

	_, err = parseBatch([]byte("applications: [1, 2"))
	assert.Error(t, err)
}

func TestModelCommand(t *testing.T) {
	out, err := run(t, "model")
	require.NoError(t, err)

	var got dto.ModelInfoResponse
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "logistic_regression", got.Algorithm)
	assert.Equal(t, 750, got.ApproveAbove)
	assert.Equal(t, 500, got.RejectBelow)
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_PRIVATE_KEY_PATH", "")

	t.Run("signs with a secret", func(t *testing.T) {
		userID := "7d7c4c2e-3c41-4b5c-9a51-0d2a1c5f8e11"
		out, err := run(t, "token", "--secret", "s3cret", "--user", userID, "--role", auth.RoleUnderwriter)
		require.NoError(t, err)

		svc, err := auth.NewJWTService(auth.JWTConfig{Secret: "s3cret", Issuer: "credai"})
		require.NoError(t, err)
		claims, err := svc.ValidateToken(strings.TrimSpace(out))
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID.String())
		assert.True(t, claims.HasRole(auth.RoleUnderwriter))
	})

	t.Run("requires key material", func(t *testing.T) {
		_, err := run(t, "token")
		assert.Error(t, err)
	})

	t.Run("rejects a malformed user id", func(t *testing.T) {
		_, err := run(t, "token", "--secret", "s3cret", "--user", "bob")
		assert.Error(t, err)
	})
}

func TestDevCertsCommand(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "dev-certs", "--out", dir, "--host", "credai.local")
	require.NoError(t, err)
	assert.Contains(t, out, dir)

	for _, f := range []string{"ca.pem", "server.pem", "server-key.pem"} {
		assert.FileExists(t, filepath.Join(dir, f))
	}
}

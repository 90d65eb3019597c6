package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(t *testing.T, secret string, expiration time.Duration) *JWTService {
	t.Helper()
	svc, err := NewJWTService(JWTConfig{
		Secret:     secret,
		Issuer:     "credai-test",
		Expiration: expiration,
	})
	require.NoError(t, err)
	return svc
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestJWTService(t, "test-secret-key-for-unit-tests", 15*time.Minute)
	userID := uuid.New()

	tokenString, err := svc.GenerateToken(userID, []string{RoleApplicant})
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := svc.ValidateToken(tokenString)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, []string{RoleApplicant}, claims.Roles)
	assert.Equal(t, "credai-test", claims.Issuer)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestGenerateAndValidateToken_RSA(t *testing.T) {
	privPEM, pubPEM, err := GenerateKeyPair()
	require.NoError(t, err)

	issuer, err := NewJWTService(JWTConfig{PrivateKeyPEM: string(privPEM), Expiration: time.Minute})
	require.NoError(t, err)
	validator, err := NewJWTService(JWTConfig{PublicKeyPEM: string(pubPEM)})
	require.NoError(t, err)

	userID := uuid.New()
	token, err := issuer.GenerateToken(userID, []string{RoleUnderwriter})
	require.NoError(t, err)

	claims, err := validator.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)

	_, err = validator.GenerateToken(userID, nil)
	assert.ErrorIs(t, err, ErrSigningUnavailable)
}

func TestValidateToken_RejectsOtherAlgorithm(t *testing.T) {
	_, pubPEM, err := GenerateKeyPair()
	require.NoError(t, err)
	validator, err := NewJWTService(JWTConfig{PublicKeyPEM: string(pubPEM)})
	require.NoError(t, err)

	hmacToken, err := newTestJWTService(t, string(pubPEM), time.Minute).GenerateToken(uuid.New(), nil)
	require.NoError(t, err)

	_, err = validator.ValidateToken(hmacToken)
	assert.Error(t, err)
}

func TestValidateToken_Issuer(t *testing.T) {
	minted, err := NewJWTService(JWTConfig{Secret: "shared", Issuer: "elsewhere", Expiration: time.Minute})
	require.NoError(t, err)
	token, err := minted.GenerateToken(uuid.New(), nil)
	require.NoError(t, err)

	_, err = newTestJWTService(t, "shared", time.Minute).ValidateToken(token)
	assert.Error(t, err, "issuer is enforced when configured")

	lenient, err := NewJWTService(JWTConfig{Secret: "shared"})
	require.NoError(t, err)
	_, err = lenient.ValidateToken(token)
	assert.NoError(t, err)
}

func TestNewJWTService_RequiresKeyMaterial(t *testing.T) {
	_, err := NewJWTService(JWTConfig{})
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestJWTService(t, "test-secret-key-for-unit-tests", -1*time.Hour)

	tokenString, err := svc.GenerateToken(uuid.New(), []string{RoleApplicant})
	require.NoError(t, err)

	_, err = svc.ValidateToken(tokenString)
	assert.Error(t, err)
}

func TestValidateToken_InvalidSignature(t *testing.T) {
	svc1 := newTestJWTService(t, "secret-one", 15*time.Minute)
	svc2 := newTestJWTService(t, "secret-two", 15*time.Minute)

	tokenString, err := svc1.GenerateToken(uuid.New(), []string{RoleApplicant})
	require.NoError(t, err)

	_, err = svc2.ValidateToken(tokenString)
	assert.Error(t, err)
}

func TestValidateToken_NilUser(t *testing.T) {
	svc := newTestJWTService(t, "secret", time.Minute)

	tokenString, err := svc.GenerateToken(uuid.Nil, nil)
	require.NoError(t, err)

	_, err = svc.ValidateToken(tokenString)
	assert.ErrorContains(t, err, "user_id")
}

func TestHasRole(t *testing.T) {
	claims := Claims{Roles: []string{RoleAdmin, RoleUnderwriter}}

	assert.True(t, claims.HasRole(RoleAdmin))
	assert.True(t, claims.HasRole(RoleUnderwriter))
	assert.False(t, claims.HasRole(RoleApplicant))
}

func TestClaimsFromContext(t *testing.T) {
	_, ok := ClaimsFromContext(context.Background())
	assert.False(t, ok)

	expected := &Claims{UserID: uuid.New(), Roles: []string{RoleApplicant}}
	got, ok := ClaimsFromContext(ContextWithClaims(context.Background(), expected))
	require.True(t, ok)
	assert.Equal(t, expected.UserID, got.UserID)
}

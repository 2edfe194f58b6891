package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookreview/config"
	"bookreview/internal/domain/entity"
	"bookreview/internal/domain/service"
)

const testSecret = "test_access_secret_key_very_long_for_testing"

func newTestJWTService(t *testing.T, ttl time.Duration) service.TokenService {
	t.Helper()

	cfg := &config.Config{Auth: &config.AuthConfig{TokenTTL: ttl}}
	cfg.SecretKey.Access = testSecret

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc
}

func TestNewJWTService_RequiresSecretAndTTL(t *testing.T) {
	_, err := NewJWTService(&config.Config{Auth: &config.AuthConfig{TokenTTL: time.Hour}})
	assert.Error(t, err)

	cfg := &config.Config{}
	cfg.SecretKey.Access = testSecret
	_, err = NewJWTService(cfg)
	assert.Error(t, err)
}

func TestJWTService_IssueAndDecode(t *testing.T) {
	svc := newTestJWTService(t, 2*time.Hour)
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	token, expiresAt, err := svc.Issue("nowak", entity.RoleUser, t0)
	require.NoError(t, err)
	assert.Equal(t, t0.Add(2*time.Hour), expiresAt)

	claim, err := svc.Decode(token, t0.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, &entity.AuthClaim{Username: "nowak", Role: entity.RoleUser}, claim)
	assert.Equal(t, 2*time.Hour, svc.TTL())
}

func TestJWTService_ExpiryBoundary(t *testing.T) {
	svc := newTestJWTService(t, time.Hour)
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	token, _, err := svc.Issue("kowalski", entity.RoleAdmin, t0)
	require.NoError(t, err)

	_, err = svc.Decode(token, t0.Add(time.Hour-time.Second))
	assert.NoError(t, err, "one second before expiry is still valid")

	_, err = svc.Decode(token, t0.Add(time.Hour))
	assert.ErrorIs(t, err, service.ErrTokenExpired, "expiry instant is already invalid")

	_, err = svc.Decode(token, t0.Add(48*time.Hour))
	assert.ErrorIs(t, err, service.ErrTokenExpired)
}

func TestJWTService_ExpiryBoundary_SubSecondIssue(t *testing.T) {
	svc := newTestJWTService(t, time.Hour)
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 900*int(time.Millisecond), time.UTC)

	token, expiresAt, err := svc.Issue("kowalski", entity.RoleUser, t0)
	require.NoError(t, err)
	assert.Equal(t, t0.Add(time.Hour), expiresAt)

	_, err = svc.Decode(token, t0.Add(time.Hour-500*time.Millisecond))
	assert.NoError(t, err, "half a second before expiry is still valid")

	_, err = svc.Decode(token, t0.Add(time.Hour-time.Nanosecond))
	assert.NoError(t, err)

	_, err = svc.Decode(token, t0.Add(time.Hour))
	assert.ErrorIs(t, err, service.ErrTokenExpired)

	_, err = svc.Decode(token, t0.Add(time.Hour+50*time.Millisecond))
	assert.ErrorIs(t, err, service.ErrTokenExpired, "expired before the rounded-up exp claim")
}

func TestJWTService_AnySingleCharacterEditIsRejected(t *testing.T) {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

	svc := newTestJWTService(t, time.Hour)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	token, _, err := svc.Issue("nowak", entity.RoleUser, now)
	require.NoError(t, err)

	accepted := 0
	for i := range len(token) {
		for _, c := range []byte(alphabet + ".") {
			if c == token[i] {
				continue
			}
			edited := []byte(token)
			edited[i] = c

			if _, err := svc.Decode(string(edited), now); err == nil {
				accepted++
				t.Errorf("edited token accepted: position %d %q -> %q", i, token[i], c)
			}
		}
	}
	assert.Zero(t, accepted)
}

func TestJWTService_FinalSignatureCharacterEdit(t *testing.T) {
	svc := newTestJWTService(t, time.Hour)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	token, _, err := svc.Issue("nowak", entity.RoleUser, now)
	require.NoError(t, err)

	last := len(token) - 1
	for _, c := range []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_") {
		if c == token[last] {
			continue
		}
		edited := token[:last] + string(c)

		claim, err := svc.Decode(edited, now)
		assert.Nil(t, claim)
		assert.Error(t, err, "last char %q -> %q", token[last], c)
	}
}

func TestJWTService_BadSignature(t *testing.T) {
	svc := newTestJWTService(t, time.Hour)
	now := time.Now()

	token, _, err := svc.Issue("nowak", entity.RoleUser, now)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = svc.Decode(tampered, now)
	assert.ErrorIs(t, err, service.ErrTokenBadSignature)
}

func TestJWTService_ForeignSecret(t *testing.T) {
	svc := newTestJWTService(t, time.Hour)
	now := time.Now()

	claims := sessionClaims{
		Role: "ADMIN",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "mallory",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("another-secret"))
	require.NoError(t, err)

	_, err = svc.Decode(forged, now)
	assert.ErrorIs(t, err, service.ErrTokenBadSignature)
}

func TestJWTService_Malformed(t *testing.T) {
	svc := newTestJWTService(t, time.Hour)
	now := time.Now()

	sign := func(claims jwt.Claims, method jwt.SigningMethod) string {
		token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)
		return token
	}
	exp := jwt.NewNumericDate(now.Add(time.Hour))
	expNanos := now.Add(time.Hour).UnixNano()

	tests := map[string]string{
		"garbage":         "clearly-not-a-jwt-token-format",
		"empty":           "",
		"missing subject": sign(sessionClaims{Role: "USER", ExpiresAtNanos: expNanos, RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: exp}}, jwt.SigningMethodHS256),
		"unknown role":    sign(sessionClaims{Role: "ROOT", ExpiresAtNanos: expNanos, RegisteredClaims: jwt.RegisteredClaims{Subject: "nowak", ExpiresAt: exp}}, jwt.SigningMethodHS256),
		"missing expiry":  sign(sessionClaims{Role: "USER", ExpiresAtNanos: expNanos, RegisteredClaims: jwt.RegisteredClaims{Subject: "nowak"}}, jwt.SigningMethodHS256),
		"missing exp_ns":  sign(sessionClaims{Role: "USER", RegisteredClaims: jwt.RegisteredClaims{Subject: "nowak", ExpiresAt: exp}}, jwt.SigningMethodHS256),
		"unexpected alg":  sign(sessionClaims{Role: "USER", ExpiresAtNanos: expNanos, RegisteredClaims: jwt.RegisteredClaims{Subject: "nowak", ExpiresAt: exp}}, jwt.SigningMethodHS512),
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			claim, err := svc.Decode(token, now)
			assert.Nil(t, claim)
			assert.ErrorIs(t, err, service.ErrTokenMalformed)
		})
	}
}

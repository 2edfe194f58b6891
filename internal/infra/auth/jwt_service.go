package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"bookreview/config"
	"bookreview/internal/domain/entity"
	"bookreview/internal/domain/service"
	"bookreview/internal/errors"
)

// sessionClaims is the payload of a session token.
// The registered exp claim has second precision and is rounded up, so the
// exact expiry travels alongside it in nanoseconds.
type sessionClaims struct {
	Role           string `json:"role"`
	ExpiresAtNanos int64  `json:"exp_ns"`
	jwt.RegisteredClaims
}

// jwtService is a concrete implementation of the TokenService interface using HS256 JWTs.
type jwtService struct {
	secret []byte        // Secret key for signing access tokens.
	ttl    time.Duration // Time-to-live for access tokens.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	ttl := time.Duration(0)
	if cfg.Auth != nil {
		ttl = cfg.Auth.TokenTTL
	}
	if ttl <= 0 {
		return nil, errors.New("auth.tokenTTL must be positive")
	}

	return &jwtService{
		secret: []byte(cfg.SecretKey.Access),
		ttl:    ttl,
	}, nil
}

// Issue signs a token for username and role that expires exactly ttl after now.
func (s *jwtService) Issue(username string, role entity.Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(s.ttl)

	claims := sessionClaims{
		Role:           role.String(),
		ExpiresAtNanos: expiresAt.UnixNano(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(ceilSecond(expiresAt)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "sign token")
	}

	return token, expiresAt, nil
}

// Decode verifies signature and expiry as of now. It never consults the store.
func (s *jwtService) Decode(tokenString string, now time.Time) (*entity.AuthClaim, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		s.keyFunc,
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, service.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, service.ErrTokenBadSignature
		default:
			return nil, service.ErrTokenMalformed
		}
	}

	role, ok := entity.ParseRole(claims.Role)
	if claims.Subject == "" || !ok || claims.ExpiresAtNanos == 0 {
		return nil, service.ErrTokenMalformed
	}
	if !now.Before(time.Unix(0, claims.ExpiresAtNanos)) {
		return nil, service.ErrTokenExpired
	}

	return &entity.AuthClaim{Username: claims.Subject, Role: role}, nil
}

// keyFunc only hands out the key for HS256 so a token signed with any other
// algorithm is reported as malformed rather than as a bad signature.
func (s *jwtService) keyFunc(token *jwt.Token) (any, error) {
	if token.Method != jwt.SigningMethodHS256 {
		return nil, errors.Errorf("unexpected signing method %s", token.Method.Alg())
	}

	return s.secret, nil
}

func ceilSecond(t time.Time) time.Time {
	if truncated := t.Truncate(time.Second); !truncated.Equal(t) {
		return truncated.Add(time.Second)
	}

	return t
}

// TTL returns the lifetime of issued tokens.
func (s *jwtService) TTL() time.Duration {
	return s.ttl
}

package facades

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sbilibin2017/gw-chat-assistant/internal/apperrors"
	"github.com/sbilibin2017/gw-chat-assistant/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testClientID = "client-123.apps.googleusercontent.com"

func newTestGoogleFacade(t *testing.T) (*GoogleFacade, *rsa.PrivateKey) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	jwks := keyfunc.NewGiven(map[string]keyfunc.GivenKey{
		"kid-1": keyfunc.NewGivenRSA(&key.PublicKey, keyfunc.GivenKeyOptions{Algorithm: "RS256"}),
	})
	return NewGoogleFacade(jwks, testClientID), key
}

func signGoogleToken(t *testing.T, key *rsa.PrivateKey, mutate func(c jwt.MapClaims)) string {
	t.Helper()
	claims := jwt.MapClaims{
		"iss":            "https://accounts.google.com",
		"aud":            testClientID,
		"sub":            "1098765432101234",
		"email":          "Jane.Doe@Gmail.com",
		"email_verified": true,
		"name":           "Jane Doe",
		"iat":            time.Now().Unix(),
		"exp":            time.Now().Add(time.Hour).Unix(),
	}
	if mutate != nil {
		mutate(claims)
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = "kid-1"
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestGoogleFacade_Verify(t *testing.T) {
	f, key := newTestGoogleFacade(t)

	identity, err := f.Verify(context.Background(), signGoogleToken(t, key, nil))

	require.NoError(t, err)
	assert.Equal(t, &models.GoogleIdentity{
		Subject: "1098765432101234",
		Email:   "jane.doe@gmail.com",
		Name:    "Jane Doe",
	}, identity)
}

func TestGoogleFacade_Verify_StringEmailVerified(t *testing.T) {
	f, key := newTestGoogleFacade(t)

	_, err := f.Verify(context.Background(), signGoogleToken(t, key, func(c jwt.MapClaims) {
		c["iss"] = "accounts.google.com"
		c["email_verified"] = "true"
	}))

	assert.NoError(t, err)
}

func TestGoogleFacade_Verify_Rejects(t *testing.T) {
	f, key := newTestGoogleFacade(t)
	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token func() string
	}{
		{"garbage", func() string { return "not-a-token" }},
		{"wrong audience", func() string {
			return signGoogleToken(t, key, func(c jwt.MapClaims) { c["aud"] = "someone-else" })
		}},
		{"wrong issuer", func() string {
			return signGoogleToken(t, key, func(c jwt.MapClaims) { c["iss"] = "https://evil.example.com" })
		}},
		{"expired", func() string {
			return signGoogleToken(t, key, func(c jwt.MapClaims) { c["exp"] = time.Now().Add(-time.Hour).Unix() })
		}},
		{"no expiry", func() string {
			return signGoogleToken(t, key, func(c jwt.MapClaims) { delete(c, "exp") })
		}},
		{"unverified email", func() string {
			return signGoogleToken(t, key, func(c jwt.MapClaims) { c["email_verified"] = false })
		}},
		{"missing email", func() string {
			return signGoogleToken(t, key, func(c jwt.MapClaims) { delete(c, "email") })
		}},
		{"foreign key", func() string { return signGoogleToken(t, otherKey, nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := f.Verify(context.Background(), tt.token())

			assert.Nil(t, identity)
			assert.ErrorIs(t, err, models.ErrInvalidGoogleToken)
			assert.Equal(t, apperrors.Auth, apperrors.KindOf(err))
		})
	}
}

func TestGoogleFacade_Disabled(t *testing.T) {
	var f *GoogleFacade
	_, err := f.Verify(context.Background(), "x")
	assert.ErrorIs(t, err, models.ErrGoogleDisabled)

	_, err = NewGoogleFacade(nil, testClientID).Verify(context.Background(), "x")
	assert.ErrorIs(t, err, models.ErrGoogleDisabled)
}

package facades

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sbilibin2017/gw-chat-assistant/internal/apperrors"
	"github.com/sbilibin2017/gw-chat-assistant/internal/logger"
	"github.com/sbilibin2017/gw-chat-assistant/internal/models"
)

var googleIssuers = map[string]struct{}{
	"accounts.google.com":         {},
	"https://accounts.google.com": {},
}

// NewGoogleJWKS fetches Google's signing keys and keeps them refreshed until ctx is done.
func NewGoogleJWKS(ctx context.Context, url string) (*keyfunc.JWKS, error) {
	options := keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   time.Hour,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			logger.Log.Errorw("google jwks refresh error", "error", err)
		},
	}
	return keyfunc.Get(url, options)
}

type googleClaims struct {
	Email         string `json:"email"`
	EmailVerified any    `json:"email_verified"` // bool, or "true" in older tokens
	Name          string `json:"name"`
	jwt.RegisteredClaims
}

// GoogleFacade verifies Google ID tokens issued to this application.
type GoogleFacade struct {
	jwks     *keyfunc.JWKS
	clientID string
}

func NewGoogleFacade(jwks *keyfunc.JWKS, clientID string) *GoogleFacade {
	return &GoogleFacade{jwks: jwks, clientID: clientID}
}

// Verify checks signature, issuer, audience, expiry and email verification
// of an ID token and returns the identity it asserts.
func (f *GoogleFacade) Verify(ctx context.Context, credential string) (*models.GoogleIdentity, error) {
	if f == nil || f.jwks == nil || f.clientID == "" {
		return nil, models.ErrGoogleDisabled
	}

	var claims googleClaims
	token, err := jwt.ParseWithClaims(credential, &claims, f.jwks.Keyfunc,
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithAudience(f.clientID),
		jwt.WithExpirationRequired(),
	)
	if err == nil && !token.Valid {
		err = errors.New("invalid token")
	}
	if err == nil {
		err = checkGoogleClaims(&claims)
	}
	if err != nil {
		logger.Log.Warnw("google token rejected", "error", err)
		return nil, apperrors.Wrap(apperrors.Auth, models.ErrInvalidGoogleToken.Message, err)
	}

	return &models.GoogleIdentity{
		Subject: claims.Subject,
		Email:   models.NormalizeLogin(claims.Email),
		Name:    strings.TrimSpace(claims.Name),
	}, nil
}

func checkGoogleClaims(c *googleClaims) error {
	if _, ok := googleIssuers[c.Issuer]; !ok {
		return fmt.Errorf("unexpected issuer %q", c.Issuer)
	}
	if c.Subject == "" {
		return errors.New("sub claim missing")
	}
	if strings.TrimSpace(c.Email) == "" {
		return errors.New("email claim missing")
	}
	switch v := c.EmailVerified.(type) {
	case bool:
		if v {
			return nil
		}
	case string:
		if strings.EqualFold(v, "true") {
			return nil
		}
	}
	return errors.New("email not verified")
}

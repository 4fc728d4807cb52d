package services

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-chat-assistant/internal/apperrors"
	"github.com/sbilibin2017/gw-chat-assistant/internal/hasher"
	"github.com/sbilibin2017/gw-chat-assistant/internal/logger"
	"github.com/sbilibin2017/gw-chat-assistant/internal/metrics"
	"github.com/sbilibin2017/gw-chat-assistant/internal/models"
)

const maxUsernameLength = 50

// maxProvisionAttempts bounds username retries when provisioning Google users.
const maxProvisionAttempts = 5

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Create(ctx context.Context, u models.NewUser) (*models.User, error)
}

// TokenGenerator issues access tokens.
type TokenGenerator interface {
	Generate(ctx context.Context, userID int64, username string) (string, error)
}

// GoogleVerifier verifies Google ID tokens.
type GoogleVerifier interface {
	Verify(ctx context.Context, credential string) (*models.GoogleIdentity, error)
}

// AuthService handles registration, login and session lookup.
type AuthService struct {
	reader    UserReader
	writer    UserWriter
	tokens    TokenGenerator
	google    GoogleVerifier // nil disables Google sign-in
	validator *Validator
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, tokens TokenGenerator, google GoogleVerifier) *AuthService {
	return &AuthService{
		reader:    reader,
		writer:    writer,
		tokens:    tokens,
		google:    google,
		validator: NewValidator(),
	}
}

// Register creates an account. Username and email are unique ignoring case.
func (svc *AuthService) Register(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	req.Email = models.NormalizeLogin(req.Email)
	req.Username = models.NormalizeLogin(req.Username)
	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		req.FullName = &name
		if name == "" {
			req.FullName = nil
		}
	}

	if err := svc.validator.Struct(req); err != nil {
		recordAuth("signup", err)
		return nil, err
	}
	if len(req.Password) > hasher.MaxPasswordBytes {
		err := apperrors.New(apperrors.Validation, "password must be at most 72 bytes")
		recordAuth("signup", err)
		return nil, err
	}

	existing, err := svc.reader.GetByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return nil, err
	}
	if existing != nil {
		logger.Log.Infow("user already exists", "username", req.Username, "email", req.Email)
		err := models.ErrEmailTaken
		if existing.Username == req.Username {
			err = models.ErrUsernameTaken
		}
		recordAuth("signup", err)
		return nil, err
	}

	hash, err := hasher.Hash(req.Password)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	user, err := svc.writer.Create(ctx, models.NewUser{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
		FullName:     req.FullName,
	})
	if err != nil {
		logger.Log.Errorw("failed to save user", "username", req.Username, "err", err)
		recordAuth("signup", err)
		return nil, err
	}

	recordAuth("signup", nil)
	logger.Log.Infow("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login authenticates by username or email and returns an access token.
// A login containing "@" is matched against emails only, anything else
// against usernames only. Unknown users, wrong passwords and inactive
// accounts are indistinguishable.
func (svc *AuthService) Login(ctx context.Context, login, password string) (string, error) {
	login = models.NormalizeLogin(login)
	if login == "" || password == "" {
		recordAuth("password", models.ErrInvalidCredentials)
		return "", models.ErrInvalidCredentials
	}

	username, email := login, ""
	if strings.Contains(login, "@") {
		username, email = "", login
	}

	user, err := svc.reader.GetByUsernameOrEmail(ctx, username, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", err
	}
	if user == nil || !user.IsActive || !hasher.Verify(password, user.PasswordHash) {
		logger.Log.Infow("invalid credentials", "login", login)
		recordAuth("password", models.ErrInvalidCredentials)
		return "", models.ErrInvalidCredentials
	}

	recordAuth("password", nil)
	return svc.issue(ctx, user)
}

// LoginWithGoogle signs in with a Google ID token, provisioning an account
// for first-time users.
func (svc *AuthService) LoginWithGoogle(ctx context.Context, credential string) (string, error) {
	if svc.google == nil {
		return "", models.ErrGoogleDisabled
	}

	identity, err := svc.google.Verify(ctx, credential)
	if err != nil {
		recordAuth("google", err)
		return "", err
	}

	user, err := svc.reader.GetByUsernameOrEmail(ctx, "", identity.Email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", err
	}
	if user == nil {
		if user, err = svc.provisionGoogleUser(ctx, identity); err != nil {
			recordAuth("google", err)
			return "", err
		}
	}
	if !user.IsActive {
		recordAuth("google", models.ErrInvalidCredentials)
		return "", models.ErrInvalidCredentials
	}

	recordAuth("google", nil)
	return svc.issue(ctx, user)
}

func (svc *AuthService) provisionGoogleUser(ctx context.Context, identity *models.GoogleIdentity) (*models.User, error) {
	// Google accounts never log in with a password; store a hash nobody knows.
	hash, err := hasher.Hash(uuid.NewString())
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	var fullName *string
	if identity.Name != "" {
		fullName = &identity.Name
	}

	base := GoogleUsername(identity)
	var user *models.User
	for attempt := 0; attempt < maxProvisionAttempts; attempt++ {
		user, err = svc.writer.Create(ctx, models.NewUser{
			Email:        identity.Email,
			Username:     withUsernameSuffix(base, attempt),
			PasswordHash: hash,
			FullName:     fullName,
		})
		if !errors.Is(err, models.ErrUsernameTaken) {
			break
		}
		logger.Log.Infow("google username taken, retrying", "username", withUsernameSuffix(base, attempt))
	}
	if err != nil {
		logger.Log.Errorw("failed to provision google user", "email", identity.Email, "err", err)
		return nil, err
	}

	logger.Log.Infow("google user provisioned", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// GoogleUsername derives a username from the email local part and the
// first characters of the Google subject.
func GoogleUsername(identity *models.GoogleIdentity) string {
	local, _, _ := strings.Cut(identity.Email, "@")
	local = models.NormalizeLogin(local)

	suffix := identity.Subject
	if len(suffix) > 6 {
		suffix = suffix[:6]
	}

	if limit := maxUsernameLength - len(suffix) - 1; utf8.RuneCountInString(local) > limit {
		local = string([]rune(local)[:limit])
	}
	return local + "_" + suffix
}

// withUsernameSuffix returns base for the first attempt and base with a
// numeric suffix afterwards, kept within the username length limit.
func withUsernameSuffix(base string, attempt int) string {
	if attempt == 0 {
		return base
	}
	suffix := strconv.Itoa(attempt + 1)
	if limit := maxUsernameLength - len(suffix); utf8.RuneCountInString(base) > limit {
		base = string([]rune(base)[:limit])
	}
	return base + suffix
}

// GetUser returns the active user behind a session.
func (svc *AuthService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", id, "err", err)
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, models.ErrUnauthorized
	}
	return user, nil
}

func (svc *AuthService) issue(ctx context.Context, user *models.User) (string, error) {
	token, err := svc.tokens.Generate(ctx, user.ID, user.Username)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return "", err
	}
	return token, nil
}

func recordAuth(method string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	metrics.AuthAttemptsTotal.WithLabelValues(method, outcome).Inc()
}

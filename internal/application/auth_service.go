package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"contacts-api/config"
	"contacts-api/internal/domain/entity"
	repo "contacts-api/internal/domain/repository"
	"contacts-api/pkg/helpers"
	"contacts-api/pkg/mailer"
	tpl "contacts-api/pkg/mailer/templates"
)

var (
	ErrEmailTaken          = errors.New("account already exists")
	ErrInvalidEmail        = errors.New("invalid email")
	ErrEmailNotConfirmed   = errors.New("email not confirmed")
	ErrInvalidPassword     = errors.New("invalid password")
	ErrVerification        = errors.New("verification error")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

// AuthService owns signup, login, email confirmation, and token refresh.
type AuthService struct {
	Repo   repo.UserRepository
	Tokens *helpers.TokenManager
	Pub    *helpers.RabbitPublisher
	Logger *logrus.Logger
	Cfg    *config.Config
}

func NewAuthService(r repo.UserRepository, tokens *helpers.TokenManager, pub *helpers.RabbitPublisher, logger *logrus.Logger, cfg *config.Config) *AuthService {
	return &AuthService{Repo: r, Tokens: tokens, Pub: pub, Logger: logger, Cfg: cfg}
}

// TokenPair is the login/refresh response payload.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// Signup creates an unconfirmed account and enqueues the confirmation email.
func (s *AuthService) Signup(ctx context.Context, username, email, password string) (*entity.User, error) {
	existing, err := s.Repo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Username: username,
		Email:    email,
		Password: hash,
		Avatar:   helpers.GravatarURL(email),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.enqueueConfirmationEmail(ctx, u)
	return u, nil
}

func (s *AuthService) enqueueConfirmationEmail(ctx context.Context, u *entity.User) {
	if s.Pub == nil || s.Cfg == nil || !s.Cfg.MailSendEnabled {
		return
	}
	token, exp, err := s.Tokens.Issue(u.Email, helpers.ScopeEmailConfirm, 0)
	if err != nil {
		s.Logger.WithError(err).WithField("email", u.Email).Error("issue confirmation token failed")
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: tpl.ConfirmEmail,
		Data: map[string]any{
			"Username":       u.Username,
			"RecipientEmail": u.Email,
			"AppName":        s.Cfg.AppName,
			"CompanyName":    s.Cfg.CompanyName,
			"SupportURL":     s.Cfg.SupportURL,
			"ConfirmURL":     s.Cfg.ConfirmEmailURL + "/" + token,
			"ExpiresAtText":  exp.UTC().Format("02 January 2006, 15:04 MST"),
		},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithField("email", u.Email).Warn("enqueue confirmation email failed")
	}
}

// Login verifies credentials and issues a fresh token pair. The refresh token
// replaces whatever was stored before; only one stays active per user.
func (s *AuthService) Login(ctx context.Context, email, password string) (TokenPair, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return TokenPair{}, ErrInvalidEmail
		}
		return TokenPair{}, err
	}
	if !u.Confirmed {
		return TokenPair{}, ErrEmailNotConfirmed
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return TokenPair{}, ErrInvalidPassword
	}
	return s.issuePair(ctx, u)
}

func (s *AuthService) issuePair(ctx context.Context, u *entity.User) (TokenPair, error) {
	access, _, err := s.Tokens.Issue(u.Email, helpers.ScopeAccess, 0)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue access token: %w", err)
	}
	refresh, _, err := s.Tokens.Issue(u.Email, helpers.ScopeRefresh, 0)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue refresh token: %w", err)
	}
	if err := s.Repo.UpdateRefreshToken(ctx, u.ID, refresh); err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh, TokenType: "bearer"}, nil
}

// ConfirmEmail resolves a confirmation-scoped token and flips the confirmed
// flag. Returns true when the account was already confirmed.
func (s *AuthService) ConfirmEmail(ctx context.Context, token string) (bool, error) {
	email, err := s.Tokens.Decode(token, helpers.ScopeEmailConfirm)
	if err != nil {
		return false, ErrVerification
	}
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, ErrVerification
		}
		return false, err
	}
	if u.Confirmed {
		return true, nil
	}
	if err := s.Repo.ConfirmEmail(ctx, email); err != nil {
		return false, err
	}
	return false, nil
}

// Refresh validates a refresh-scoped token against the stored one and rotates
// the pair. A stale token clears the stored one so the user must log in again.
func (s *AuthService) Refresh(ctx context.Context, token string) (TokenPair, error) {
	email, err := s.Tokens.Decode(token, helpers.ScopeRefresh)
	if err != nil {
		s.logTokenFailure("refresh", err)
		return TokenPair{}, ErrInvalidRefreshToken
	}
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return TokenPair{}, ErrInvalidRefreshToken
		}
		return TokenPair{}, err
	}
	if u.RefreshToken != token {
		if clearErr := s.Repo.UpdateRefreshToken(ctx, u.ID, ""); clearErr != nil {
			s.Logger.WithError(clearErr).WithField("user_id", u.ID).Warn("clear refresh token failed")
		}
		return TokenPair{}, ErrInvalidRefreshToken
	}
	return s.issuePair(ctx, u)
}

func (s *AuthService) logTokenFailure(op string, err error) {
	if s.Logger == nil {
		return
	}
	// expired / scope mismatch / malformed stay distinguishable in logs even
	// though the API reports all of them as unauthorized
	s.Logger.WithError(err).WithField("op", op).Debug("token rejected")
}

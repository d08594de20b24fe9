package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperr"
)

const defaultSessionTTL = 24 * time.Hour

// --- DTOs ---

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Account   AccountResponse `json:"account"`
}

// --- Interface ---

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, token string) error
	// Validate resolves a session token to the owning account id. It returns
	// ErrUnauthenticated for absent or expired tokens; expired sessions are
	// removed as a side effect.
	Validate(ctx context.Context, token string) (string, error)
}

type authService struct {
	accountRepo repository.AccountRepository
	sessionRepo repository.SessionRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
	hasher      passwordComparer
	ttl         time.Duration
}

type passwordComparer interface {
	Compare(hashed, plain string) bool
}

// NewAuthService returns a new instance of AuthService. The session lifetime
// is read from SESSION_TTL (a Go duration string) and falls back to 24h.
func NewAuthService(
	accountRepo repository.AccountRepository,
	sessionRepo repository.SessionRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	hasher passwordComparer,
) AuthService {
	ttl := defaultSessionTTL
	if raw := os.Getenv("SESSION_TTL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			ttl = parsed
		}
	}
	return &authService{
		accountRepo: accountRepo,
		sessionRepo: sessionRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
		hasher:      hasher,
		ttl:         ttl,
	}
}

// --- Implementation ---

func newSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}
	return hex.EncodeToString(buf), nil
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("email and password are required: %w", apperr.ErrValidation)
	}

	account, err := s.accountRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			// Same failure as a wrong password, so callers cannot probe
			// which emails exist.
			return nil, apperr.ErrIncorrectCredential
		}
		return nil, err
	}

	if !s.hasher.Compare(account.Password, req.Password) {
		return nil, apperr.ErrIncorrectCredential
	}
	if !account.IsActive || account.Status != model.StatusActive {
		return nil, apperr.ErrIncorrectCredential
	}

	token, err := newSessionToken()
	if err != nil {
		return nil, err
	}

	session := model.Session{
		Token:     token,
		AccountID: account.AccountID,
		ExpiresAt: time.Now().Add(s.ttl),
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.sessionRepo.Create(txCtx, &session); err != nil {
			return err
		}
		return s.auditRepo.Log(txCtx, auditEntry(account.AccountID, model.ActionLogin, account.AccountID, account.UserName, nil))
	})
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		Account:   toAccountResponse(*account),
	}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	session, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			// Logging out twice is not an error.
			return nil
		}
		return err
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.sessionRepo.DeleteByToken(txCtx, token); err != nil {
			return err
		}
		return s.auditRepo.Log(txCtx, auditEntry(session.AccountID, model.ActionLogout, session.AccountID, session.Account.UserName, nil))
	})
}

func (s *authService) Validate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", apperr.ErrUnauthenticated
	}

	session, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return "", apperr.ErrUnauthenticated
		}
		return "", err
	}

	if session.Expired() {
		_ = s.sessionRepo.DeleteByToken(ctx, token)
		return "", apperr.ErrUnauthenticated
	}

	return session.AccountID, nil
}

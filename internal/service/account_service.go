package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"time"

	"backend/internal/model"
	"backend/internal/repository"
	ws "backend/internal/websocket"
	"backend/pkg/apperr"
	"backend/pkg/pagination"
	"backend/pkg/password"
)

var phonePattern = regexp.MustCompile(`^0\d{9}$`)

const (
	minPasswordLength = 8
	idAttempts        = 10
	birthDayLayout    = "2006-01-02"
)

// --- DTOs ---

type CreateAccountRequest struct {
	UserName    string `json:"user_name"`
	Password    string `json:"password"`
	RoleID      *uint  `json:"role_id"`
	BirthDay    string `json:"birth_day"`
	Address     string `json:"address"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Gender      string `json:"gender"`
}

type UpdateAccountRequest struct {
	UserName     *string `json:"user_name"`
	RoleID       *uint   `json:"role_id"`
	BirthDay     *string `json:"birth_day"`
	Address      *string `json:"address"`
	Email        *string `json:"email"`
	PhoneNumber  *string `json:"phone_number"`
	Gender       *string `json:"gender"`
	ToggleStatus bool    `json:"toggle_status"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type AccountResponse struct {
	AccountID   string `json:"account_id"`
	UserName    string `json:"user_name"`
	RoleID      uint   `json:"role_id"`
	RoleName    string `json:"role_name"`
	BirthDay    string `json:"birth_day"`
	Address     string `json:"address"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Gender      string `json:"gender"`
	Status      string `json:"status"`
	IsActive    bool   `json:"is_active"`
}

type AccountListResponse struct {
	Accounts []AccountResponse `json:"accounts"`
	Meta     pagination.Meta   `json:"meta"`
}

// --- Interface ---

type AccountService interface {
	Create(ctx context.Context, actorID string, req CreateAccountRequest) (*AccountResponse, error)
	Get(ctx context.Context, id string) (*AccountResponse, error)
	List(ctx context.Context, params pagination.Params) (*AccountListResponse, error)
	Update(ctx context.Context, actorID string, id string, req UpdateAccountRequest) (*AccountResponse, error)
	ChangePassword(ctx context.Context, accountID, keepToken string, req ChangePasswordRequest) error
}

type accountService struct {
	accountRepo repository.AccountRepository
	roleRepo    repository.RoleRepository
	sessionRepo repository.SessionRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
	hasher      password.Hasher
	hub         *ws.Hub
}

// NewAccountService returns a new instance of AccountService
func NewAccountService(
	accountRepo repository.AccountRepository,
	roleRepo repository.RoleRepository,
	sessionRepo repository.SessionRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	hasher password.Hasher,
	hub *ws.Hub,
) AccountService {
	return &accountService{
		accountRepo: accountRepo,
		roleRepo:    roleRepo,
		sessionRepo: sessionRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
		hasher:      hasher,
		hub:         hub,
	}
}

// --- Implementation ---

func toAccountResponse(a model.Account) AccountResponse {
	return AccountResponse{
		AccountID:   a.AccountID,
		UserName:    a.UserName,
		RoleID:      a.RoleID,
		RoleName:    a.Role.Name,
		BirthDay:    a.BirthDay.Format(birthDayLayout),
		Address:     a.Address,
		Email:       a.Email,
		PhoneNumber: a.PhoneNumber,
		Gender:      model.GenderLabel(a.Gender),
		Status:      a.Status,
		IsActive:    a.IsActive,
	}
}

// randomAccountID draws a random five-digit numeric string.
func randomAccountID() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(100000))
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}
	return fmt.Sprintf("%05d", n.Int64()), nil
}

func (s *accountService) Create(ctx context.Context, actorID string, req CreateAccountRequest) (*AccountResponse, error) {
	if !phonePattern.MatchString(req.PhoneNumber) {
		return nil, apperr.ErrPhoneFormat
	}
	if len(req.Password) < minPasswordLength {
		return nil, apperr.ErrPasswordTooShort
	}
	if req.UserName == "" || req.Email == "" || req.Address == "" || req.BirthDay == "" || req.RoleID == nil {
		return nil, fmt.Errorf("user_name, email, address, birth_day and role_id are required: %w", apperr.ErrValidation)
	}
	if !model.ValidGender(req.Gender) {
		return nil, fmt.Errorf("gender must be one of MALE, FEMALE, OTHER: %w", apperr.ErrValidation)
	}

	birthDay, err := time.Parse(birthDayLayout, req.BirthDay)
	if err != nil {
		return nil, fmt.Errorf("birth_day must be formatted as YYYY-MM-DD: %w", apperr.ErrValidation)
	}

	role, err := s.roleRepo.GetByID(ctx, *req.RoleID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrRoleNotFound
		}
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}

	// The insert can hit two unique indexes: the email and the generated id.
	// An email clash is final; an id clash gets a fresh draw.
	for attempt := 0; attempt < idAttempts; attempt++ {
		id, err := randomAccountID()
		if err != nil {
			return nil, err
		}
		if exists, err := s.accountRepo.ExistsByID(ctx, id); err != nil {
			return nil, err
		} else if exists {
			continue
		}

		account := model.Account{
			AccountID:   id,
			UserName:    req.UserName,
			Password:    hash,
			RoleID:      role.ID,
			BirthDay:    birthDay,
			Address:     req.Address,
			Email:       req.Email,
			PhoneNumber: req.PhoneNumber,
			Gender:      req.Gender,
			Status:      model.StatusActive,
			IsActive:    true,
		}

		err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
			if err := s.accountRepo.Create(txCtx, &account); err != nil {
				return err
			}
			// Details deliberately omit the password.
			return s.auditRepo.Log(txCtx, auditEntry(actorID, model.ActionCreateAccount, account.AccountID, account.UserName, map[string]string{
				"email": account.Email,
				"role":  role.Name,
			}))
		})
		if err == nil {
			broadcastAudit(s.hub, model.ActionCreateAccount, account.AccountID, account.UserName)

			account.Role = *role
			res := toAccountResponse(account)
			return &res, nil
		}
		if !errors.Is(err, apperr.ErrConflict) {
			return nil, err
		}
		if _, lookupErr := s.accountRepo.GetByEmail(ctx, req.Email); lookupErr == nil {
			return nil, fmt.Errorf("email is already registered: %w", apperr.ErrConflict)
		} else if !errors.Is(lookupErr, apperr.ErrNotFound) {
			return nil, lookupErr
		}
	}
	return nil, fmt.Errorf("could not allocate an account id after %d attempts: %w", idAttempts, apperr.ErrInternal)
}

func (s *accountService) Get(ctx context.Context, id string) (*AccountResponse, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	res := toAccountResponse(*account)
	return &res, nil
}

func (s *accountService) List(ctx context.Context, params pagination.Params) (*AccountListResponse, error) {
	accounts, total, err := s.accountRepo.List(ctx, params.Page, params.Limit)
	if err != nil {
		return nil, err
	}

	res := make([]AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		res = append(res, toAccountResponse(a))
	}
	return &AccountListResponse{
		Accounts: res,
		Meta:     pagination.NewMeta(params, total),
	}, nil
}

func (s *accountService) Update(ctx context.Context, actorID string, id string, req UpdateAccountRequest) (*AccountResponse, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.PhoneNumber != nil {
		if !phonePattern.MatchString(*req.PhoneNumber) {
			return nil, apperr.ErrPhoneFormat
		}
		account.PhoneNumber = *req.PhoneNumber
	}
	if req.UserName != nil {
		if *req.UserName == "" {
			return nil, fmt.Errorf("user_name must not be empty: %w", apperr.ErrValidation)
		}
		account.UserName = *req.UserName
	}
	if req.RoleID != nil {
		role, err := s.roleRepo.GetByID(ctx, *req.RoleID)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return nil, apperr.ErrRoleNotFound
			}
			return nil, err
		}
		account.RoleID = role.ID
		account.Role = *role
	}
	if req.BirthDay != nil {
		birthDay, err := time.Parse(birthDayLayout, *req.BirthDay)
		if err != nil {
			return nil, fmt.Errorf("birth_day must be formatted as YYYY-MM-DD: %w", apperr.ErrValidation)
		}
		account.BirthDay = birthDay
	}
	if req.Address != nil {
		account.Address = *req.Address
	}
	if req.Email != nil {
		if *req.Email == "" {
			return nil, fmt.Errorf("email must not be empty: %w", apperr.ErrValidation)
		}
		account.Email = *req.Email
	}
	if req.Gender != nil {
		if !model.ValidGender(*req.Gender) {
			return nil, fmt.Errorf("gender must be one of MALE, FEMALE, OTHER: %w", apperr.ErrValidation)
		}
		account.Gender = *req.Gender
	}
	if req.ToggleStatus {
		account.Status = model.ToggledStatus(account.Status)
		account.IsActive = account.Status == model.StatusActive
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.accountRepo.Update(txCtx, account); err != nil {
			return err
		}
		return s.auditRepo.Log(txCtx, auditEntry(actorID, model.ActionUpdateAccount, account.AccountID, account.UserName, req))
	})
	if err != nil {
		return nil, err
	}

	broadcastAudit(s.hub, model.ActionUpdateAccount, account.AccountID, account.UserName)

	res := toAccountResponse(*account)
	return &res, nil
}

func (s *accountService) ChangePassword(ctx context.Context, accountID, keepToken string, req ChangePasswordRequest) error {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}

	if !s.hasher.Compare(account.Password, req.OldPassword) {
		return fmt.Errorf("old password does not match: %w", apperr.ErrIncorrectCredential)
	}
	if len(req.NewPassword) < minPasswordLength {
		return apperr.ErrPasswordTooShort
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.accountRepo.UpdatePassword(txCtx, accountID, hash); err != nil {
			return err
		}
		// Any other live session for this account is revoked.
		if err := s.sessionRepo.DeleteByAccount(txCtx, accountID, keepToken); err != nil {
			return err
		}
		return s.auditRepo.Log(txCtx, auditEntry(accountID, model.ActionChangePassword, account.AccountID, account.UserName, nil))
	})
	if err != nil {
		return err
	}

	broadcastAudit(s.hub, model.ActionChangePassword, account.AccountID, account.UserName)
	return nil
}

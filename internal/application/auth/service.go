package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/uniform-shop-api/internal/application/invite"
	"github.com/uniform-shop-api/internal/application/token"
	"github.com/uniform-shop-api/internal/domain"
	"github.com/uniform-shop-api/internal/pkg/id"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Bearer string
	User   *domain.User
}

// ResendOutcome distinguishes internally why no verification email went out.
// Handlers collapse OutcomeSent and OutcomeNoAccount into one response;
// only OutcomeAlreadyVerified may differ observably.
type ResendOutcome int

const (
	OutcomeSent ResendOutcome = iota
	OutcomeAlreadyVerified
	OutcomeNoAccount
)

type InviteOptions struct {
	SupplierID *string `json:"supplier_id"`
	Email      *string `json:"email" validate:"omitempty,email"`
}

type Service interface {
	Register(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)

	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, rawToken, newPassword string) error

	ResendVerification(ctx context.Context, email string) (ResendOutcome, error)
	ConfirmEmail(ctx context.Context, rawToken string) error

	RequestEmailChange(ctx context.Context, userID, newEmail string) error
	ConfirmEmailChange(ctx context.Context, rawToken string) error

	CreateInvite(ctx context.Context, opts InviteOptions) (string, error)
	AcceptInvite(ctx context.Context, rawToken, userID string) (*invite.Result, error)
}

type userStore interface {
	Put(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type supplierStore interface {
	Get(ctx context.Context, supplierID string) (*domain.Supplier, error)
}

type mailer interface {
	SendEmail(to, subject, body string) error
}

type jwtSigner interface {
	Sign(userID, role string) (string, error)
}

// DynamoDB attribute names used in partial update maps.
const (
	fieldEmail           = "email"
	fieldPasswordHash    = "password_hash"
	fieldRole            = "role"
	fieldSupplierID      = "supplier_id"
	fieldSupplierPending = "supplier_pending"
	fieldVerified        = "verified"
)

type ServiceDeps struct {
	UserRepo     userStore
	SupplierRepo supplierStore
	Tokens       token.Service
	Invites      invite.Service
	Mailer       mailer
	JWTProvider  jwtSigner
	BaseURL      string
}

type service struct {
	deps ServiceDeps
}

func NewService(deps ServiceDeps) Service {
	return &service{deps: deps}
}

func (s *service) Register(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	if _, err := s.deps.UserRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleCustomer,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Enable:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.deps.UserRepo.Put(ctx, u); err != nil {
		return nil, err
	}

	// The account is created even if the verification email cannot go out;
	// the user can request a resend.
	if err := s.sendVerification(ctx, u.UserID, u.Email); err != nil {
		slog.Warn("could not send verification email", "user_id", u.UserID, "err", err)
	}
	return u, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	u, err := s.deps.UserRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !u.Enable {
		return nil, fmt.Errorf("account disabled: %w", domain.ErrUnauthorized)
	}
	bearer, err := s.deps.JWTProvider.Sign(u.UserID, u.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Bearer: bearer, User: u}, nil
}

// RequestPasswordReset always reports success for an unknown address — the
// caller-visible behavior must not reveal whether the account exists.
func (s *service) RequestPasswordReset(ctx context.Context, email string) error {
	u, err := s.deps.UserRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			slog.Debug("password reset requested for unknown address")
			return nil
		}
		return err
	}

	raw, err := s.deps.Tokens.Issue(ctx, u.UserID, u.Email, domain.PurposeResetPassword)
	if err != nil {
		return err
	}
	link := fmt.Sprintf("%s/reset-password?token=%s", s.deps.BaseURL, raw)
	return s.deps.Mailer.SendEmail(u.Email, "Reset your password",
		"Use the link below to choose a new password. It expires shortly.\r\n\r\n"+link)
}

func (s *service) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	c, err := s.deps.Tokens.Consume(ctx, rawToken, domain.PurposeResetPassword)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.deps.UserRepo.Update(ctx, c.UserID, map[string]interface{}{
		fieldPasswordHash: string(hash),
	})
}

func (s *service) ResendVerification(ctx context.Context, email string) (ResendOutcome, error) {
	u, err := s.deps.UserRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return OutcomeNoAccount, nil
		}
		return 0, err
	}
	if u.Verified {
		return OutcomeAlreadyVerified, nil
	}
	if err := s.sendVerification(ctx, u.UserID, u.Email); err != nil {
		return 0, err
	}
	return OutcomeSent, nil
}

func (s *service) ConfirmEmail(ctx context.Context, rawToken string) error {
	c, err := s.deps.Tokens.Consume(ctx, rawToken, domain.PurposeVerifyEmail)
	if err != nil {
		return err
	}
	return s.deps.UserRepo.Update(ctx, c.UserID, map[string]interface{}{
		fieldVerified: true,
	})
}

func (s *service) RequestEmailChange(ctx context.Context, userID, newEmail string) error {
	// Early courtesy check; the authoritative conflict check happens again at
	// confirmation since the address can be claimed in between.
	if other, err := s.deps.UserRepo.GetByEmail(ctx, newEmail); err == nil && other.UserID != userID {
		return fmt.Errorf("email already in use: %w", domain.ErrConflict)
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	raw, err := s.deps.Tokens.Issue(ctx, userID, newEmail, domain.PurposeChangeEmail)
	if err != nil {
		return err
	}
	link := fmt.Sprintf("%s/change-email?token=%s", s.deps.BaseURL, raw)
	return s.deps.Mailer.SendEmail(newEmail, "Confirm your new email address",
		"Confirm this address for your account using the link below.\r\n\r\n"+link)
}

func (s *service) ConfirmEmailChange(ctx context.Context, rawToken string) error {
	c, err := s.deps.Tokens.Consume(ctx, rawToken, domain.PurposeChangeEmail)
	if err != nil {
		return err
	}
	// The token only proves the intent was authorized; the address may have
	// been claimed by another account since issuance. The swap, not the
	// token, is rejected here.
	if other, err := s.deps.UserRepo.GetByEmail(ctx, c.Email); err == nil && other.UserID != c.UserID {
		return fmt.Errorf("email claimed by another account: %w", domain.ErrConflict)
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return s.deps.UserRepo.Update(ctx, c.UserID, map[string]interface{}{
		fieldEmail:    c.Email,
		fieldVerified: true,
	})
}

func (s *service) CreateInvite(ctx context.Context, opts InviteOptions) (string, error) {
	if opts.SupplierID != nil {
		if _, err := s.deps.SupplierRepo.Get(ctx, *opts.SupplierID); err != nil {
			return "", err
		}
	}
	raw, err := s.deps.Invites.Issue(ctx, invite.Options{
		SupplierID: opts.SupplierID,
		Email:      opts.Email,
	})
	if err != nil {
		return "", err
	}
	if opts.Email != nil {
		link := fmt.Sprintf("%s/accept-invite?token=%s", s.deps.BaseURL, raw)
		if err := s.deps.Mailer.SendEmail(*opts.Email, "You are invited as a supplier",
			"Accept your supplier invitation using the link below.\r\n\r\n"+link); err != nil {
			return "", err
		}
	}
	return raw, nil
}

func (s *service) AcceptInvite(ctx context.Context, rawToken, userID string) (*invite.Result, error) {
	res, err := s.deps.Invites.Consume(ctx, rawToken, userID)
	if err != nil {
		return nil, err
	}

	// The email binding on an invite is advisory: a mismatch is logged for
	// operators but does not block acceptance.
	if res.Email != nil {
		if u, err := s.deps.UserRepo.Get(ctx, userID); err == nil && u.Email != *res.Email {
			slog.Warn("invite accepted by a different address than invited",
				"user_id", userID, "invited", *res.Email)
		}
	}

	updates := map[string]interface{}{
		fieldRole: domain.RoleSupplier,
	}
	if res.SupplierID != nil {
		updates[fieldSupplierID] = *res.SupplierID
		updates[fieldSupplierPending] = false
	} else {
		updates[fieldSupplierPending] = true
	}
	if err := s.deps.UserRepo.Update(ctx, userID, updates); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *service) sendVerification(ctx context.Context, userID, email string) error {
	raw, err := s.deps.Tokens.Issue(ctx, userID, email, domain.PurposeVerifyEmail)
	if err != nil {
		return err
	}
	link := fmt.Sprintf("%s/verify-email?token=%s", s.deps.BaseURL, raw)
	return s.deps.Mailer.SendEmail(email, "Verify your email",
		"Confirm your email address using the link below.\r\n\r\n"+link)
}

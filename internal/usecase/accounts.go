package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "github.com/MUHMMADSALEH/E-Commeerce-app/internal/entity"
)

const minPasswordLen = 6

type RegisterInput struct {
	Name      string
	Email     string
	Password  string
	AdminCode string
}

type AuthResult struct {
	Token   string         `json:"token"`
	Account domain.Account `json:"user"`
}

type Accounts struct {
	repo      AccountRepo
	hasher    PasswordHasher
	tokens    TokenIssuer
	adminCode string
	now       func() time.Time
}

func NewAccounts(repo AccountRepo, hasher PasswordHasher, tokens TokenIssuer, adminCode string) *Accounts {
	return &Accounts{repo: repo, hasher: hasher, tokens: tokens, adminCode: adminCode, now: time.Now}
}

func (uc *Accounts) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	name := strings.TrimSpace(in.Name)
	email := domain.NormalizeEmail(in.Email)
	switch {
	case name == "" || email == "" || in.Password == "":
		return AuthResult{}, invalid("Name, email and password are required")
	case !domain.ValidEmail(email):
		return AuthResult{}, invalid("Email is invalid")
	case len(in.Password) < minPasswordLen:
		return AuthResult{}, invalid("Password must be at least %d characters", minPasswordLen)
	}

	role := domain.RoleUser
	if uc.adminCodeMatches(in.AdminCode) {
		role = domain.RoleAdmin
	}

	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}
	acc := domain.Account{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    uc.now().UTC(),
	}
	if err := uc.repo.Create(ctx, &acc); err != nil {
		if errors.Is(err, ErrAccountExists) {
			return AuthResult{}, err
		}
		return AuthResult{}, fmt.Errorf("create account: %w", err)
	}
	return uc.issue(acc)
}

func (uc *Accounts) adminCodeMatches(code string) bool {
	if uc.adminCode == "" || code == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(code), []byte(uc.adminCode)) == 1
}

// Login answers ErrInvalidCredentials for both unknown email and wrong password.
func (uc *Accounts) Login(ctx context.Context, email, password string) (AuthResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return AuthResult{}, invalid("Email and password are required")
	}
	acc, err := uc.repo.GetByEmail(ctx, domain.NormalizeEmail(email))
	if errors.Is(err, ErrNotFound) {
		return AuthResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return AuthResult{}, fmt.Errorf("load account: %w", err)
	}
	if err := uc.hasher.Compare(acc.PasswordHash, password); err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}
	return uc.issue(acc)
}

func (uc *Accounts) issue(acc domain.Account) (AuthResult, error) {
	tok, err := uc.tokens.Issue(acc)
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue token: %w", err)
	}
	return AuthResult{Token: tok, Account: acc}, nil
}

// Resolve turns a verified token subject into a principal using the stored role.
func (uc *Accounts) Resolve(ctx context.Context, accountID string) (domain.Principal, error) {
	acc, err := uc.repo.GetByID(ctx, accountID)
	if errors.Is(err, ErrNotFound) {
		return domain.Principal{}, ErrUnauthenticated
	}
	if err != nil {
		return domain.Principal{}, fmt.Errorf("load account: %w", err)
	}
	return domain.Principal{AccountID: acc.ID, Role: acc.Role}, nil
}

func (uc *Accounts) Profile(ctx context.Context, caller domain.Principal) (domain.Account, error) {
	return uc.repo.GetByID(ctx, caller.AccountID)
}

func (uc *Accounts) List(ctx context.Context, caller domain.Principal) ([]domain.Account, error) {
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}
	return uc.repo.List(ctx)
}

func (uc *Accounts) Get(ctx context.Context, caller domain.Principal, id string) (domain.Account, error) {
	if !caller.IsAdmin() {
		return domain.Account{}, ErrForbidden
	}
	return uc.repo.GetByID(ctx, id)
}

func (uc *Accounts) UpdateRole(ctx context.Context, caller domain.Principal, id, role string) (domain.Account, error) {
	if !caller.IsAdmin() {
		return domain.Account{}, ErrForbidden
	}
	r, err := domain.ParseRole(role)
	if err != nil {
		return domain.Account{}, invalid("Invalid role")
	}
	if id == caller.AccountID && r != domain.RoleAdmin {
		return domain.Account{}, invalid("Cannot demote yourself from admin role")
	}
	return uc.repo.UpdateRole(ctx, id, r)
}

func (uc *Accounts) Delete(ctx context.Context, caller domain.Principal, id string) error {
	if !caller.IsAdmin() {
		return ErrForbidden
	}
	if id == caller.AccountID {
		return invalid("Cannot delete your own admin account")
	}
	return uc.repo.Delete(ctx, id)
}

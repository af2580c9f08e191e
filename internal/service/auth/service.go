// Package auth handles registration and login. Registration writes the
// account and its role profile as one atomic unit; a dangling account
// with no profile is never observable.
package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/teame/hospital-api/internal/model"
	"github.com/teame/hospital-api/internal/repository"
	"github.com/teame/hospital-api/pkg/auth"
	apperr "github.com/teame/hospital-api/pkg/errors"
	"github.com/teame/hospital-api/pkg/security"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type Service struct {
	accountRepo repository.AccountRepository
	tokenSvc    auth.TokenService
	hasher      security.PasswordHasher
}

func NewService(accountRepo repository.AccountRepository, tokenSvc auth.TokenService,
	hasher security.PasswordHasher) *Service {
	return &Service{
		accountRepo: accountRepo,
		tokenSvc:    tokenSvc,
		hasher:      hasher,
	}
}

// Register provisions an account plus its role profile. Doctors always
// start PENDING regardless of caller input; patients and admins are
// activated immediately and receive a token for immediate login.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	username := normalize(req.Username)
	email := normalize(req.Email)

	if err := s.checkDuplicates(ctx, username, email); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperr.BadRequest("invalid password", err)
	}

	account := &model.Account{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         req.Role,
	}

	switch req.Role {
	case model.RolePatient:
		account.Status = model.AccountStatusActivated
		patient := &model.Patient{
			Name:    req.Name,
			Age:     req.Age,
			Contact: req.Contact,
		}
		err = s.accountRepo.CreateWithPatient(ctx, account, patient)

	case model.RoleDoctor:
		account.Status = model.AccountStatusPending
		doctor := &model.Doctor{
			Name:            req.Name,
			Specialization:  req.Specialization,
			Availability:    "NO",
			Phone:           req.Phone,
			ConsultationFee: req.ConsultationFee,
			Status:          model.DoctorStatusPending,
		}
		err = s.accountRepo.CreateWithDoctor(ctx, account, doctor)

	case model.RoleAdmin:
		account.Status = model.AccountStatusActivated
		err = s.accountRepo.CreateAdmin(ctx, account)

	default:
		return nil, apperr.BadRequest("unknown role", nil)
	}
	if err != nil {
		return nil, err
	}

	resp := &model.AuthResponse{
		Username: account.Username,
		Email:    account.Email,
		Role:     account.Role,
		Status:   account.Status,
		Message:  "Registration successful",
	}

	if account.Status == model.AccountStatusActivated {
		token, err := s.tokenSvc.Generate(account)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		resp.Token = token
	} else {
		resp.Message = "Registration successful. Pending admin approval."
	}
	return resp, nil
}

// Login authenticates by username. Unknown accounts and wrong
// passwords fail identically so callers cannot probe for usernames.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	account, err := s.accountRepo.GetByUsername(ctx, normalize(req.Username))
	if err != nil {
		return nil, apperr.Unauthorized(ErrInvalidCredentials)
	}

	if err := s.hasher.Compare(account.PasswordHash, req.Password); err != nil {
		return nil, apperr.Unauthorized(ErrInvalidCredentials)
	}

	switch account.Status {
	case model.AccountStatusDeactivated:
		return nil, apperr.Unauthorized(errors.New("account is deactivated"))
	case model.AccountStatusBlocked:
		return nil, apperr.Unauthorized(errors.New("account is blocked"))
	}

	token, err := s.tokenSvc.Generate(account)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &model.AuthResponse{
		Token:    token,
		Username: account.Username,
		Email:    account.Email,
		Role:     account.Role,
		Status:   account.Status,
		Message:  "Login successful",
	}, nil
}

// ValidateToken resolves a bearer token to an actor.
func (s *Service) ValidateToken(ctx context.Context, token string) (*model.Actor, error) {
	return s.tokenSvc.Validate(token)
}

func (s *Service) checkDuplicates(ctx context.Context, username, email string) error {
	if _, err := s.accountRepo.GetByUsername(ctx, username); err == nil {
		return apperr.DuplicateAccount("username")
	}
	if _, err := s.accountRepo.GetByEmail(ctx, email); err == nil {
		return apperr.DuplicateAccount("email")
	}
	// The store's unique indexes settle the race two concurrent
	// registrations can still win past this pre-check.
	return nil
}

func normalize(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

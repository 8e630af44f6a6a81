package service

import (
	"errors"
	"strings"

	"cleanic/internal/directory"
	"cleanic/internal/models"
	"cleanic/internal/repository"

	"go.uber.org/zap"
)

var ( // Define custom errors
	ErrMissingCredentials   = errors.New("username and password are required")
	ErrUserNotFound         = errors.New("user not found in directory")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrDirectoryUnavailable = errors.New("directory unavailable")
	ErrDirectoryBindFailed  = errors.New("directory bind failed")
	ErrNotProvisioned       = errors.New("user not provisioned")
	ErrPendingApproval      = errors.New("account pending approval")
)

type AuthService interface {
	Login(username, password string) (*models.Personnel, string, error)
}

type authService struct {
	directory directory.Directory
	personnel repository.PersonnelRepository
	tokens    *TokenService
	logger    *zap.Logger
}

func NewAuthService(dir directory.Directory, personnel repository.PersonnelRepository, tokens *TokenService, logger *zap.Logger) AuthService {
	return &authService{
		directory: dir,
		personnel: personnel,
		tokens:    tokens,
		logger:    logger,
	}
}

// Login turns a (username, password) pair into a provisioned staff
// record plus a signed session token. The directory verifies the
// password; the credential store decides whether a session may exist.
func (s *authService) Login(username, password string) (*models.Personnel, string, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return nil, "", ErrMissingCredentials
	}

	rawLogin := strings.TrimSpace(username)
	login := directory.NormalizeLogin(rawLogin)

	dn, err := s.directory.ResolveDN(login, rawLogin)
	if err != nil {
		switch {
		case errors.Is(err, directory.ErrNotFound):
			s.logger.Warn("Login not found in directory", zap.String("login", login))
			return nil, "", ErrUserNotFound
		default:
			s.logger.Error("Directory lookup failed", zap.String("login", login), zap.Error(err))
			return nil, "", ErrDirectoryUnavailable
		}
	}

	if err := s.directory.BindUser(dn, password); err != nil {
		switch {
		case errors.Is(err, directory.ErrInvalidCredentials):
			s.logger.Warn("User bind refused", zap.String("login", login))
			return nil, "", ErrInvalidCredentials
		case errors.Is(err, directory.ErrUnavailable):
			s.logger.Error("Directory unreachable during user bind", zap.Error(err))
			return nil, "", ErrDirectoryUnavailable
		default:
			s.logger.Error("User bind failed", zap.String("login", login), zap.Error(err))
			return nil, "", ErrDirectoryBindFailed
		}
	}

	p, err := s.personnel.GetByLogin(login)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("Authenticated login has no personnel record", zap.String("login", login))
			return nil, "", ErrNotProvisioned
		}
		s.logger.Error("Personnel lookup failed", zap.String("login", login), zap.Error(err))
		return nil, "", err
	}
	if models.NormalizeRole(p.Role) == models.RolePending {
		return nil, "", ErrPendingApproval
	}

	token, err := s.tokens.Mint(p)
	if err != nil {
		s.logger.Error("Failed to mint session token", zap.String("login", login), zap.Error(err))
		return nil, "", err
	}

	s.logger.Info("User logged in successfully.", zap.String("login", login), zap.String("role", string(p.Role)))
	return p, token, nil
}

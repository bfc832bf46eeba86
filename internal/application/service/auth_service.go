package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/quotation-api/internal/domain/entity"
	"github.com/sangkips/quotation-api/internal/domain/repository"
	"github.com/sangkips/quotation-api/pkg/apperror"
	"github.com/sangkips/quotation-api/pkg/utils"
	"go.uber.org/zap"
)

// minPasswordLength applies to operator-chosen passwords.
const minPasswordLength = 8

var (
	errPasswordTooShort = errors.New("must be at least 8 characters")
	errWrongPassword    = errors.New("is incorrect")
	errUnknownRole      = errors.New("is not a known role")
)

// AuthService handles authentication-related operations
type AuthService struct {
	userRepo   repository.UserRepository
	roleRepo   repository.RoleRepository
	jwtManager *utils.JWTManager
	log        *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	jwtManager *utils.JWTManager,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		roleRepo:   roleRepo,
		jwtManager: jwtManager,
		log:        log.Named("auth"),
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil || !utils.CheckPasswordHash(input.Password, user.Password) {
		s.log.Info("login rejected", zap.String("email", input.Email))
		return nil, apperror.ErrInvalidCredentials
	}
	if !user.Active {
		return nil, apperror.ErrAccountDisabled
	}

	return s.issueTokens(ctx, user.ID)
}

// RefreshToken generates new tokens from a refresh token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*LoginOutput, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}
	return s.issueTokens(ctx, userID)
}

func (s *AuthService) issueTokens(ctx context.Context, userID uuid.UUID) (*LoginOutput, error) {
	user, err := s.userRepo.GetWithRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidToken
	}
	if !user.Active {
		return nil, apperror.ErrAccountDisabled
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, user.RoleNames(), user.GetPermissions())
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// GetCurrentUser returns the current user by ID
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetWithRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// ChangePasswordInput represents the change password input
type ChangePasswordInput struct {
	UserID          uuid.UUID
	CurrentPassword string
	NewPassword     string
}

// ChangePassword changes the user's password
func (s *AuthService) ChangePassword(ctx context.Context, input *ChangePasswordInput) error {
	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}

	if !utils.CheckPasswordHash(input.CurrentPassword, user.Password) {
		return apperror.NewFieldError("current_password", errWrongPassword)
	}
	if len(input.NewPassword) < minPasswordLength {
		return apperror.NewFieldError("new_password", errPasswordTooShort)
	}

	hashedPassword, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	user.Password = hashedPassword
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	s.log.Info("password changed", zap.Stringer("user_id", user.ID))
	return nil
}

// CreateOperatorInput represents a new operator account
type CreateOperatorInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// CreateOperator adds a user with a single role, staff by default
func (s *AuthService) CreateOperator(ctx context.Context, input *CreateOperatorInput) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}
	if len(input.Password) < minPasswordLength {
		return nil, apperror.NewFieldError("password", errPasswordTooShort)
	}

	roleName := input.Role
	if roleName == "" {
		roleName = entity.RoleStaff
	}
	role, err := s.roleRepo.GetByName(ctx, roleName)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, apperror.NewFieldError("role", errUnknownRole)
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Name:     strings.TrimSpace(input.Name),
		Email:    email,
		Password: hashedPassword,
		Active:   true,
		Roles:    []entity.Role{*role},
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperror.WrapConflict("Email already registered", err)
		}
		return nil, err
	}

	s.log.Info("operator created", zap.String("email", email), zap.String("role", roleName))
	return s.GetCurrentUser(ctx, user.ID)
}

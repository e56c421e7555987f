package identity

import (
	"context"
	"errors"
	"time"

	"github.com/dentalcalc/backend/internal/domain/identity"
	"github.com/dentalcalc/backend/internal/domain/shared"
	"github.com/dentalcalc/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultSeeder populates a freshly registered clinic with starter data,
// such as the standard service categories.
type DefaultSeeder interface {
	SeedDefaults(ctx context.Context, clinicID uuid.UUID) error
}

// AuthService handles registration, login and session operations
type AuthService struct {
	clinicRepo identity.ClinicRepository
	userRepo   identity.UserRepository
	seeder     DefaultSeeder
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	clinicRepo identity.ClinicRepository,
	userRepo identity.UserRepository,
	seeder DefaultSeeder,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		clinicRepo: clinicRepo,
		userRepo:   userRepo,
		seeder:     seeder,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// Register creates a clinic with its owner account and logs the owner in
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if _, err := s.clinicRepo.FindBySlug(ctx, req.Slug); err == nil {
		return nil, shared.NewDomainError("SLUG_TAKEN", "A clinic with this slug already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	clinic, err := identity.NewClinic(req.ClinicName, req.Slug)
	if err != nil {
		return nil, err
	}

	owner, err := identity.NewUser(clinic.ID, req.Email, req.DisplayName, req.Password, identity.RoleOwner)
	if err != nil {
		return nil, err
	}

	if err := s.clinicRepo.Save(ctx, clinic); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, owner); err != nil {
		return nil, err
	}

	// Starter categories are a convenience; the clinic can manage its own
	// list, so a seed failure does not abort registration.
	if err := s.seeder.SeedDefaults(ctx, clinic.ID); err != nil {
		s.logger.Warn("Failed to seed defaults for new clinic",
			zap.String("clinic_id", clinic.ID.String()),
			zap.Error(err))
	}

	s.logger.Info("Clinic registered",
		zap.String("clinic_id", clinic.ID.String()),
		zap.String("slug", clinic.Slug))

	return s.issueToken(owner)
}

// Login authenticates a user and returns an access token
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Warn("User not found during login", zap.String("email", req.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !user.Active {
		s.logger.Warn("Login attempt for deactivated account", zap.String("email", req.Email))
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	clinic, err := s.clinicRepo.FindByID(ctx, user.ClinicID)
	if err != nil {
		return nil, err
	}
	if !clinic.Active {
		s.logger.Warn("Login attempt into inactive clinic", zap.String("clinic_id", clinic.ID.String()))
		return nil, shared.NewDomainError("CLINIC_INACTIVE", "Clinic has been deactivated")
	}

	if !user.VerifyPassword(req.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("email", req.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	user.RecordLogin(time.Now())
	if err := s.userRepo.Save(ctx, user); err != nil {
		// A missing login timestamp is not worth failing the login over.
		s.logger.Error("Failed to record login", zap.Error(err))
	}

	s.logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("clinic_id", user.ClinicID.String()))

	return s.issueToken(user)
}

// Logout revokes the presented token by blacklisting its JTI until the token
// would have expired on its own.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.RemainingValidity(time.Now())); err != nil {
		s.logger.Error("Failed to blacklist token", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to log out")
	}

	s.logger.Info("User logged out", zap.String("user_id", claims.UserID))
	return nil
}

// Me returns the authenticated user's profile
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// ChangePassword verifies the current password and installs a new one
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := user.ChangePassword(req.OldPassword, req.NewPassword); err != nil {
		return err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	s.logger.Info("User password changed", zap.String("user_id", userID.String()))
	return nil
}

func (s *AuthService) issueToken(user *identity.User) (*AuthResponse, error) {
	token, err := s.jwtService.GenerateToken(auth.GenerateTokenInput{
		ClinicID: user.ClinicID,
		UserID:   user.ID,
		Email:    user.Email,
		Role:     string(user.Role),
	})
	if err != nil {
		s.logger.Error("Failed to generate token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication token")
	}

	return &AuthResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		User:        ToUserResponse(user),
	}, nil
}

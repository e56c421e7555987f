package identity

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dentalcalc/backend/internal/domain/identity"
	"github.com/dentalcalc/backend/internal/domain/shared"
	"github.com/dentalcalc/backend/internal/infrastructure/auth"
	"github.com/dentalcalc/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockClinicRepository is a mock implementation of identity.ClinicRepository
type MockClinicRepository struct {
	mock.Mock
}

func (m *MockClinicRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Clinic, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Clinic), args.Error(1)
}

func (m *MockClinicRepository) FindBySlug(ctx context.Context, slug string) (*identity.Clinic, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Clinic), args.Error(1)
}

func (m *MockClinicRepository) Save(ctx context.Context, clinic *identity.Clinic) error {
	args := m.Called(ctx, clinic)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockDefaultSeeder is a mock implementation of DefaultSeeder
type MockDefaultSeeder struct {
	mock.Mock
}

func (m *MockDefaultSeeder) SeedDefaults(ctx context.Context, clinicID uuid.UUID) error {
	args := m.Called(ctx, clinicID)
	return args.Error(0)
}

// MockLogoStorage is a mock implementation of LogoStorage
type MockLogoStorage struct {
	mock.Mock
}

func (m *MockLogoStorage) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	args := m.Called(ctx, key, contentType, body, size)
	return args.String(0), args.Error(1)
}

type authFixture struct {
	clinicRepo *MockClinicRepository
	userRepo   *MockUserRepository
	seeder     *MockDefaultSeeder
	jwtService *auth.JWTService
	blacklist  *auth.InMemoryTokenBlacklist
	service    *AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		clinicRepo: new(MockClinicRepository),
		userRepo:   new(MockUserRepository),
		seeder:     new(MockDefaultSeeder),
		jwtService: auth.NewJWTService(config.JWTConfig{
			Secret:     "test-secret-key-for-auth-service-tests",
			Expiration: time.Hour,
			Issuer:     "test-issuer",
		}),
		blacklist: auth.NewInMemoryTokenBlacklist(),
	}
	f.service = NewAuthService(f.clinicRepo, f.userRepo, f.seeder, f.jwtService, f.blacklist, zap.NewNop())
	return f
}

func mustUser(t *testing.T, clinicID uuid.UUID, email, password string) *identity.User {
	t.Helper()
	user, err := identity.NewUser(clinicID, email, "Dr. Test", password, identity.RoleOwner)
	require.NoError(t, err)
	return user
}

func mustClinic(t *testing.T, name, slug string) *identity.Clinic {
	t.Helper()
	clinic, err := identity.NewClinic(name, slug)
	require.NoError(t, err)
	return clinic
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates clinic with owner and returns token", func(t *testing.T) {
		f := newAuthFixture()
		f.clinicRepo.On("FindBySlug", ctx, "bright-smile").Return(nil, shared.ErrNotFound)
		f.userRepo.On("FindByEmail", ctx, "owner@brightsmile.example").Return(nil, shared.ErrNotFound)
		f.clinicRepo.On("Save", ctx, mock.AnythingOfType("*identity.Clinic")).Return(nil)
		f.userRepo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)
		f.seeder.On("SeedDefaults", ctx, mock.AnythingOfType("uuid.UUID")).Return(nil)

		resp, err := f.service.Register(ctx, RegisterRequest{
			ClinicName:  "Bright Smile",
			Slug:        "bright-smile",
			Email:       "owner@brightsmile.example",
			Password:    "s3cure-password",
			DisplayName: "Dr. Owner",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, "owner", resp.User.Role)
		assert.Equal(t, "owner@brightsmile.example", resp.User.Email)

		claims, err := f.jwtService.ValidateToken(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, resp.User.ClinicID.String(), claims.ClinicID)

		f.seeder.AssertCalled(t, "SeedDefaults", ctx, resp.User.ClinicID)
	})

	t.Run("rejects taken slug", func(t *testing.T) {
		f := newAuthFixture()
		existing := mustClinic(t, "Bright Smile", "bright-smile")
		f.clinicRepo.On("FindBySlug", ctx, "bright-smile").Return(existing, nil)

		_, err := f.service.Register(ctx, RegisterRequest{
			ClinicName: "Another Clinic",
			Slug:       "bright-smile",
			Email:      "other@example.com",
			Password:   "s3cure-password",
		})
		require.Error(t, err)

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "SLUG_TAKEN", de.Code)
		f.clinicRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects taken email", func(t *testing.T) {
		f := newAuthFixture()
		f.clinicRepo.On("FindBySlug", ctx, "new-clinic").Return(nil, shared.ErrNotFound)
		existing := mustUser(t, uuid.New(), "owner@brightsmile.example", "s3cure-password")
		f.userRepo.On("FindByEmail", ctx, "owner@brightsmile.example").Return(existing, nil)

		_, err := f.service.Register(ctx, RegisterRequest{
			ClinicName: "New Clinic",
			Slug:       "new-clinic",
			Email:      "owner@brightsmile.example",
			Password:   "s3cure-password",
		})
		require.Error(t, err)

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "EMAIL_TAKEN", de.Code)
	})

	t.Run("seed failure does not abort registration", func(t *testing.T) {
		f := newAuthFixture()
		f.clinicRepo.On("FindBySlug", ctx, "bright-smile").Return(nil, shared.ErrNotFound)
		f.userRepo.On("FindByEmail", ctx, "owner@brightsmile.example").Return(nil, shared.ErrNotFound)
		f.clinicRepo.On("Save", ctx, mock.Anything).Return(nil)
		f.userRepo.On("Save", ctx, mock.Anything).Return(nil)
		f.seeder.On("SeedDefaults", ctx, mock.Anything).Return(assert.AnError)

		resp, err := f.service.Register(ctx, RegisterRequest{
			ClinicName: "Bright Smile",
			Slug:       "bright-smile",
			Email:      "owner@brightsmile.example",
			Password:   "s3cure-password",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("returns token for valid credentials", func(t *testing.T) {
		f := newAuthFixture()
		clinic := mustClinic(t, "Bright Smile", "bright-smile")
		user := mustUser(t, clinic.ID, "owner@brightsmile.example", "s3cure-password")

		f.userRepo.On("FindByEmail", ctx, "owner@brightsmile.example").Return(user, nil)
		f.clinicRepo.On("FindByID", ctx, clinic.ID).Return(clinic, nil)
		f.userRepo.On("Save", ctx, user).Return(nil)

		resp, err := f.service.Login(ctx, LoginRequest{
			Email:    "owner@brightsmile.example",
			Password: "s3cure-password",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, resp.AccessToken)
		assert.NotNil(t, user.LastLoginAt)

		claims, err := f.jwtService.ValidateToken(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), claims.UserID)
		assert.Equal(t, clinic.ID.String(), claims.ClinicID)
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		f := newAuthFixture()
		clinic := mustClinic(t, "Bright Smile", "bright-smile")
		user := mustUser(t, clinic.ID, "owner@brightsmile.example", "s3cure-password")

		f.userRepo.On("FindByEmail", ctx, "owner@brightsmile.example").Return(user, nil)
		f.clinicRepo.On("FindByID", ctx, clinic.ID).Return(clinic, nil)

		_, err := f.service.Login(ctx, LoginRequest{
			Email:    "owner@brightsmile.example",
			Password: "wrong-password",
		})
		require.Error(t, err)

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "INVALID_CREDENTIALS", de.Code)
	})

	t.Run("rejects unknown email with the same error as a bad password", func(t *testing.T) {
		f := newAuthFixture()
		f.userRepo.On("FindByEmail", ctx, "nobody@example.com").Return(nil, shared.ErrNotFound)

		_, err := f.service.Login(ctx, LoginRequest{
			Email:    "nobody@example.com",
			Password: "whatever-pass",
		})
		require.Error(t, err)

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "INVALID_CREDENTIALS", de.Code)
	})

	t.Run("rejects deactivated account", func(t *testing.T) {
		f := newAuthFixture()
		user := mustUser(t, uuid.New(), "owner@brightsmile.example", "s3cure-password")
		user.Deactivate()

		f.userRepo.On("FindByEmail", ctx, "owner@brightsmile.example").Return(user, nil)

		_, err := f.service.Login(ctx, LoginRequest{
			Email:    "owner@brightsmile.example",
			Password: "s3cure-password",
		})
		require.Error(t, err)

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "ACCOUNT_DEACTIVATED", de.Code)
	})

	t.Run("rejects login into deactivated clinic", func(t *testing.T) {
		f := newAuthFixture()
		clinic := mustClinic(t, "Bright Smile", "bright-smile")
		clinic.Deactivate()
		user := mustUser(t, clinic.ID, "owner@brightsmile.example", "s3cure-password")

		f.userRepo.On("FindByEmail", ctx, "owner@brightsmile.example").Return(user, nil)
		f.clinicRepo.On("FindByID", ctx, clinic.ID).Return(clinic, nil)

		_, err := f.service.Login(ctx, LoginRequest{
			Email:    "owner@brightsmile.example",
			Password: "s3cure-password",
		})
		require.Error(t, err)

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "CLINIC_INACTIVE", de.Code)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("blacklists the token JTI", func(t *testing.T) {
		f := newAuthFixture()
		clinic := mustClinic(t, "Bright Smile", "bright-smile")
		user := mustUser(t, clinic.ID, "owner@brightsmile.example", "s3cure-password")

		f.userRepo.On("FindByEmail", ctx, "owner@brightsmile.example").Return(user, nil)
		f.clinicRepo.On("FindByID", ctx, clinic.ID).Return(clinic, nil)
		f.userRepo.On("Save", ctx, user).Return(nil)

		resp, err := f.service.Login(ctx, LoginRequest{
			Email:    "owner@brightsmile.example",
			Password: "s3cure-password",
		})
		require.NoError(t, err)

		claims, err := f.jwtService.ValidateToken(resp.AccessToken)
		require.NoError(t, err)

		require.NoError(t, f.service.Logout(ctx, claims))

		blacklisted, err := f.blacklist.IsBlacklisted(ctx, claims.ID)
		require.NoError(t, err)
		assert.True(t, blacklisted)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces password after verifying the old one", func(t *testing.T) {
		f := newAuthFixture()
		user := mustUser(t, uuid.New(), "owner@brightsmile.example", "old-password-1")

		f.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		f.userRepo.On("Save", ctx, user).Return(nil)

		err := f.service.ChangePassword(ctx, user.ID, ChangePasswordRequest{
			OldPassword: "old-password-1",
			NewPassword: "new-password-1",
		})
		require.NoError(t, err)

		assert.True(t, user.VerifyPassword("new-password-1"))
		assert.False(t, user.VerifyPassword("old-password-1"))
	})

	t.Run("rejects wrong current password", func(t *testing.T) {
		f := newAuthFixture()
		user := mustUser(t, uuid.New(), "owner@brightsmile.example", "old-password-1")

		f.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

		err := f.service.ChangePassword(ctx, user.ID, ChangePasswordRequest{
			OldPassword: "not-the-password",
			NewPassword: "new-password-1",
		})
		require.Error(t, err)

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "INVALID_PASSWORD", de.Code)
		f.userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestClinicService(t *testing.T) {
	ctx := context.Background()

	newClinicService := func() (*MockClinicRepository, *MockLogoStorage, *ClinicService) {
		clinicRepo := new(MockClinicRepository)
		storage := new(MockLogoStorage)
		return clinicRepo, storage, NewClinicService(clinicRepo, storage, zap.NewNop())
	}

	t.Run("updates the clinic profile", func(t *testing.T) {
		clinicRepo, _, svc := newClinicService()
		clinic := mustClinic(t, "Bright Smile", "bright-smile")

		clinicRepo.On("FindByID", ctx, clinic.ID).Return(clinic, nil)
		clinicRepo.On("Save", ctx, clinic).Return(nil)

		resp, err := svc.UpdateProfile(ctx, clinic.ID, UpdateClinicProfileRequest{
			Name:    "Bright Smile Dental",
			Email:   "hello@brightsmile.example",
			Phone:   "+20 100 000 0000",
			Address: "12 Nile St, Cairo",
		})
		require.NoError(t, err)

		assert.Equal(t, "Bright Smile Dental", resp.Name)
		assert.Equal(t, "hello@brightsmile.example", resp.Email)
	})

	t.Run("uploads logo and stores its URL", func(t *testing.T) {
		clinicRepo, storage, svc := newClinicService()
		clinic := mustClinic(t, "Bright Smile", "bright-smile")
		body := strings.NewReader("png-bytes")

		clinicRepo.On("FindByID", ctx, clinic.ID).Return(clinic, nil)
		clinicRepo.On("Save", ctx, clinic).Return(nil)
		expectedKey := "clinics/" + clinic.ID.String() + "/logo.png"
		storage.On("Upload", ctx, expectedKey, "image/png", body, int64(9)).
			Return("https://cdn.example.com/"+expectedKey, nil)

		resp, err := svc.UploadLogo(ctx, clinic.ID, "image/png", body, 9)
		require.NoError(t, err)

		assert.Equal(t, "https://cdn.example.com/"+expectedKey, resp.LogoURL)
	})

	t.Run("rejects unsupported logo content type", func(t *testing.T) {
		clinicRepo, storage, svc := newClinicService()

		_, err := svc.UploadLogo(ctx, uuid.New(), "application/pdf", strings.NewReader("%PDF"), 4)
		require.Error(t, err)

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "INVALID_LOGO_TYPE", de.Code)
		clinicRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

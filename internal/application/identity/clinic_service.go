package identity

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/dentalcalc/backend/internal/domain/identity"
	"github.com/dentalcalc/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LogoStorage stores uploaded clinic logos and returns a URL the frontend
// can render.
type LogoStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}

var allowedLogoTypes = map[string]string{
	"image/png":     ".png",
	"image/jpeg":    ".jpg",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

// ClinicService manages the clinic profile
type ClinicService struct {
	clinicRepo identity.ClinicRepository
	storage    LogoStorage
	logger     *zap.Logger
}

// NewClinicService creates a new clinic profile service
func NewClinicService(clinicRepo identity.ClinicRepository, storage LogoStorage, logger *zap.Logger) *ClinicService {
	return &ClinicService{
		clinicRepo: clinicRepo,
		storage:    storage,
		logger:     logger,
	}
}

// GetProfile returns the clinic profile
func (s *ClinicService) GetProfile(ctx context.Context, clinicID uuid.UUID) (*ClinicResponse, error) {
	clinic, err := s.clinicRepo.FindByID(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	return ToClinicResponse(clinic), nil
}

// UpdateProfile replaces the clinic's contact details
func (s *ClinicService) UpdateProfile(ctx context.Context, clinicID uuid.UUID, req UpdateClinicProfileRequest) (*ClinicResponse, error) {
	clinic, err := s.clinicRepo.FindByID(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	if err := clinic.UpdateProfile(req.Name, req.Email, req.Phone, req.Address); err != nil {
		return nil, err
	}

	if err := s.clinicRepo.Save(ctx, clinic); err != nil {
		return nil, err
	}

	return ToClinicResponse(clinic), nil
}

// UploadLogo stores a logo image and records its URL on the clinic. The key
// is derived from the clinic ID, so a re-upload replaces the previous logo.
func (s *ClinicService) UploadLogo(ctx context.Context, clinicID uuid.UUID, contentType string, body io.Reader, size int64) (*ClinicResponse, error) {
	ext, ok := allowedLogoTypes[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		return nil, shared.NewDomainError("INVALID_LOGO_TYPE", "Logo must be a PNG, JPEG, WebP or SVG image")
	}

	clinic, err := s.clinicRepo.FindByID(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	key := path.Join("clinics", clinicID.String(), fmt.Sprintf("logo%s", ext))
	url, err := s.storage.Upload(ctx, key, contentType, body, size)
	if err != nil {
		s.logger.Error("Failed to upload clinic logo",
			zap.String("clinic_id", clinicID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("UPLOAD_FAILED", "Failed to store logo")
	}

	clinic.SetLogoURL(url)
	if err := s.clinicRepo.Save(ctx, clinic); err != nil {
		return nil, err
	}

	return ToClinicResponse(clinic), nil
}

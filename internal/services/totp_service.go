package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image/png"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"sda-backend/internal/models"
	"sda-backend/internal/repositories"
)

const totpIssuer = "SDA Pro"

var (
	ErrNoTOTPSecret    = errors.New("no TOTP secret generated")
	ErrTOTPNotEnabled  = errors.New("TOTP is not enabled")
	ErrInvalidTOTPCode = errors.New("invalid TOTP code")
)

// TOTPSetupResponse carries the provisioning secret and QR code
type TOTPSetupResponse struct {
	Secret      string `json:"secret"`
	QRCode      string `json:"qr_code"`
	Issuer      string `json:"issuer"`
	AccountName string `json:"account_name"`
}

// TOTPService manages optional 2FA for the associate account
type TOTPService struct {
	profileRepo *repositories.ProfileRepository
}

func NewTOTPService(profileRepo *repositories.ProfileRepository) *TOTPService {
	return &TOTPService{profileRepo: profileRepo}
}

// GenerateSetup creates a new TOTP secret and QR code. The secret is
// stored immediately but 2FA stays disabled until the first code verifies.
func (s *TOTPService) GenerateSetup(ctx context.Context, profile *models.UserProfile) (*TOTPSetupResponse, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: profile.EmpID,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return nil, err
	}

	if err := s.profileRepo.SetTOTP(ctx, key.Secret(), false); err != nil {
		return nil, err
	}

	qrImage, err := key.Image(200, 200)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, qrImage); err != nil {
		return nil, err
	}
	qrBase64 := base64.StdEncoding.EncodeToString(buf.Bytes())

	return &TOTPSetupResponse{
		Secret:      key.Secret(),
		QRCode:      "data:image/png;base64," + qrBase64,
		Issuer:      totpIssuer,
		AccountName: profile.EmpID,
	}, nil
}

// VerifyAndEnable verifies a TOTP code and turns 2FA on
func (s *TOTPService) VerifyAndEnable(ctx context.Context, code string) error {
	profile, err := s.profileRepo.Get(ctx)
	if err != nil {
		return err
	}
	if profile.TOTPSecret == "" {
		return ErrNoTOTPSecret
	}
	if !totp.Validate(code, profile.TOTPSecret) {
		return ErrInvalidTOTPCode
	}
	return s.profileRepo.SetTOTP(ctx, profile.TOTPSecret, true)
}

// Verify validates a TOTP code during login
func (s *TOTPService) Verify(ctx context.Context, code string) (bool, error) {
	profile, err := s.profileRepo.Get(ctx)
	if err != nil {
		return false, err
	}
	if !profile.TOTPEnabled || profile.TOTPSecret == "" {
		return false, ErrTOTPNotEnabled
	}
	if totp.Validate(code, profile.TOTPSecret) {
		return true, nil
	}
	return false, ErrInvalidTOTPCode
}

// Disable turns 2FA off after verifying the current code
func (s *TOTPService) Disable(ctx context.Context, code string) error {
	profile, err := s.profileRepo.Get(ctx)
	if err != nil {
		return err
	}
	if !profile.TOTPEnabled {
		return ErrTOTPNotEnabled
	}
	if !totp.Validate(code, profile.TOTPSecret) {
		return ErrInvalidTOTPCode
	}
	return s.profileRepo.SetTOTP(ctx, "", false)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-exam-admin/internal/config"
	"github.com/MKhiriev/go-exam-admin/internal/logger"
	"github.com/MKhiriev/go-exam-admin/internal/store"
	"github.com/MKhiriev/go-exam-admin/internal/utils"
	"github.com/MKhiriev/go-exam-admin/models"
)

// otpLifetime is how long an issued verification code stays valid.
const otpLifetime = 5 * time.Minute

// authService is the concrete implementation of AuthService.
// It accepts the one configured OTP code for every administrator phone,
// issues HMAC-SHA256 access tokens and opaque refresh tokens that are
// rotated on every refresh.
type authService struct {
	// users resolves phones and token subjects to accounts.
	users store.UserRepository

	// auth stores OTP hashes and refresh token hashes.
	auth store.AuthRepository

	// otpCode is the code every issued OTP equals. It is stored only as a
	// bcrypt hash with cost otpCost.
	otpCode string
	otpCost int

	// tokenSignKey signs access tokens and keys the refresh token HMAC.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued access token.
	tokenIssuer string

	accessTokenDuration  time.Duration
	refreshTokenDuration time.Duration

	ids *utils.UUIDGenerator
	now func() time.Time

	logger *logger.Logger
}

// NewAuthService constructs an AuthService from the mock backend settings.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(users store.UserRepository, auth store.AuthRepository, cfg config.MockServerConfig, logger *logger.Logger) AuthService {
	return &authService{
		users:                users,
		auth:                 auth,
		otpCode:              cfg.OTPCode,
		otpCost:              bcrypt.DefaultCost,
		tokenSignKey:         cfg.TokenSignKey,
		tokenIssuer:          cfg.TokenIssuer,
		accessTokenDuration:  cfg.AccessTokenDuration,
		refreshTokenDuration: cfg.RefreshTokenDuration,
		ids:                  utils.NewUUIDGenerator(),
		now:                  time.Now,
		logger:               logger,
	}
}

// RequestOTP issues a verification code for phone.
//
// Returns:
//   - store.ErrNotFound (wrapped) if no account has this phone.
//   - ErrNotAdmin if the account is not an administrator.
func (a *authService) RequestOTP(ctx context.Context, phone string) error {
	log := logger.FromContext(ctx)

	user, err := a.users.FindUserByPhone(ctx, phone)
	if err != nil {
		log.Err(err).Str("phone", phone).Msg("user search by phone failed")
		return fmt.Errorf("user search by phone failed: %w", err)
	}

	if user.Role != models.RoleAdmin {
		log.Warn().Int64("user_id", user.ID).Msg("otp requested for non-admin account")
		return ErrNotAdmin
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(a.otpCode), a.otpCost)
	if err != nil {
		return fmt.Errorf("hash otp: %w", err)
	}

	if err := a.auth.SaveOTP(ctx, phone, string(hash), a.now().Add(otpLifetime)); err != nil {
		return fmt.Errorf("save otp: %w", err)
	}

	log.Info().Int64("user_id", user.ID).Msg("otp issued")
	return nil
}

// VerifyOTP checks code against the pending OTP of phone. A correct code is
// consumed; a wrong one is kept so the user can retry until it expires.
func (a *authService) VerifyOTP(ctx context.Context, phone, code string) (models.VerifyResult, error) {
	log := logger.FromContext(ctx)

	hash, expiresAt, err := a.auth.GetOTP(ctx, phone)
	if errors.Is(err, store.ErrNotFound) {
		return models.VerifyResult{}, ErrOTPExpired
	}
	if err != nil {
		return models.VerifyResult{}, fmt.Errorf("get otp: %w", err)
	}

	if a.now().After(expiresAt) {
		if err := a.auth.DeleteOTP(ctx, phone); err != nil {
			log.Err(err).Msg("error deleting expired otp")
		}
		return models.VerifyResult{}, ErrOTPExpired
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)); err != nil {
		log.Warn().Str("phone", phone).Msg("wrong otp")
		return models.VerifyResult{}, ErrInvalidOTP
	}

	if err := a.auth.DeleteOTP(ctx, phone); err != nil {
		return models.VerifyResult{}, fmt.Errorf("delete otp: %w", err)
	}

	user, err := a.users.FindUserByPhone(ctx, phone)
	if err != nil {
		return models.VerifyResult{}, fmt.Errorf("user search by phone failed: %w", err)
	}

	pair, err := a.issue(ctx, user)
	if err != nil {
		return models.VerifyResult{}, err
	}

	return models.VerifyResult{TokenPair: pair, Roles: []string{user.Role}}, nil
}

// Refresh exchanges a refresh token for a new pair. The old token is
// deleted even when it turns out to be expired.
func (a *authService) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	if refreshToken == "" {
		return models.TokenPair{}, ErrInvalidRefreshToken
	}

	userID, expiresAt, err := a.auth.ConsumeRefreshToken(ctx, utils.HashString(refreshToken, a.tokenSignKey))
	if errors.Is(err, store.ErrNotFound) {
		return models.TokenPair{}, ErrInvalidRefreshToken
	}
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("consume refresh token: %w", err)
	}

	if a.now().After(expiresAt) {
		return models.TokenPair{}, ErrInvalidRefreshToken
	}

	user, err := a.users.GetUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return models.TokenPair{}, ErrInvalidRefreshToken
	}
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("get user: %w", err)
	}

	return a.issue(ctx, user)
}

// ParseToken validates and parses a raw JWT string. Any validation failure
// is normalised to ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseToken(ctx context.Context, token string) (utils.AccessClaims, error) {
	claims, err := utils.ValidateAndParseJWTToken(token, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return utils.AccessClaims{}, ErrTokenIsExpiredOrInvalid
	}

	return claims, nil
}

func (a *authService) Profile(ctx context.Context, userID int64) (models.UserProfile, error) {
	user, err := a.users.GetUser(ctx, userID)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (a *authService) issue(ctx context.Context, user models.UserProfile) (models.TokenPair, error) {
	access, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, []string{user.Role}, a.accessTokenDuration, a.tokenSignKey)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	refresh := a.ids.Generate()
	expiresAt := a.now().Add(a.refreshTokenDuration)
	if err := a.auth.SaveRefreshToken(ctx, utils.HashString(refresh, a.tokenSignKey), user.ID, expiresAt); err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return models.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/MKhiriev/go-exam-admin/internal/adapter"
	"github.com/MKhiriev/go-exam-admin/internal/logger"
	"github.com/MKhiriev/go-exam-admin/internal/session"
	"github.com/MKhiriev/go-exam-admin/internal/utils"
	"github.com/MKhiriev/go-exam-admin/internal/validators"
	"github.com/MKhiriev/go-exam-admin/models"
)

// LoginFlow is the console's login state machine:
// Anonymous → OTPSent → Authenticated, back to Anonymous on ChangeNumber,
// Logout, or when the session is found cleared.
type LoginFlow struct {
	adapter   adapter.ServerAdapter
	session   *session.Session
	validator validators.Validator
	logger    *logger.Logger

	mu      sync.Mutex
	state   LoginState
	phone   string
	profile models.UserProfile
}

func NewLoginFlow(serverAdapter adapter.ServerAdapter, sess *session.Session, logger *logger.Logger) *LoginFlow {
	return &LoginFlow{
		adapter:   serverAdapter,
		session:   sess,
		validator: validators.NewExamValidator(),
		logger:    logger,
	}
}

func (f *LoginFlow) State() LoginState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *LoginFlow) Phone() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phone
}

func (f *LoginFlow) Profile() models.UserProfile {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.profile
}

// normalizePhone drops the separators people type into phone numbers.
func normalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')', '\t':
			return -1
		}
		return r
	}, strings.TrimSpace(phone))
}

func (f *LoginFlow) RequestOTP(ctx context.Context, phone string) error {
	if err := f.expect(LoginAnonymous); err != nil {
		return err
	}

	phone = normalizePhone(phone)
	if err := f.validator.Validate(ctx, models.LoginRequest{PhoneNumber: phone}); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if _, err := f.adapter.Login(ctx, phone); err != nil {
		f.logger.Err(err).Msg("otp request failed")
		return mapAdapterError(err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != LoginAnonymous {
		return ErrInvalidLoginTransition
	}
	f.state = LoginOTPSent
	f.phone = phone
	return nil
}

func (f *LoginFlow) ChangeNumber() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != LoginOTPSent {
		return fmt.Errorf("%w: change number from %s", ErrInvalidLoginTransition, f.state)
	}
	f.state = LoginAnonymous
	f.phone = ""
	return nil
}

func (f *LoginFlow) Verify(ctx context.Context, code string) error {
	if err := f.expect(LoginOTPSent); err != nil {
		return err
	}
	phone := f.Phone()

	code = strings.TrimSpace(code)
	if err := f.validator.Validate(ctx, models.VerifyRequest{Code: code}, validators.FieldCode); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOTP, err)
	}

	result, err := f.adapter.VerifyOTP(ctx, phone, code)
	if err != nil {
		f.logger.Err(err).Msg("otp verification failed")
		return mapAdapterError(err)
	}

	if !result.HasRole(models.RoleAdmin) {
		f.logger.Warn().Strs("roles", result.Roles).Msg("non-admin account tried to log in")
		f.reset()
		return ErrNotAdmin
	}

	if err := f.session.SetTokens(ctx, result.AccessToken, result.RefreshToken); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	profile := models.UserProfile{PhoneNumber: phone, Role: models.RoleAdmin}
	if claims, err := utils.ParseUnverifiedClaims(result.AccessToken); err == nil {
		if id, err := claims.UserID(); err == nil {
			profile.ID = id
		}
	}

	f.mu.Lock()
	f.state = LoginAuthenticated
	f.profile = profile
	f.mu.Unlock()

	f.logger.Info().Int64("user_id", profile.ID).Msg("logged in")
	return nil
}

func (f *LoginFlow) Restore(ctx context.Context) (models.UserProfile, error) {
	if err := f.expect(LoginAnonymous); err != nil {
		return models.UserProfile{}, err
	}
	if !f.session.IsAuthenticated() {
		return models.UserProfile{}, ErrNoSession
	}

	profile, err := f.adapter.Me(ctx)
	if err != nil {
		f.logger.Err(err).Msg("session restore failed")
		if !f.session.IsAuthenticated() {
			return models.UserProfile{}, ErrSessionExpired
		}
		return models.UserProfile{}, mapAdapterError(err)
	}

	if profile.Role != models.RoleAdmin {
		if err := f.session.Clear(ctx); err != nil {
			f.logger.Err(err).Msg("error clearing session")
		}
		return models.UserProfile{}, ErrNotAdmin
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = LoginAuthenticated
	f.phone = profile.PhoneNumber
	f.profile = profile
	return profile, nil
}

// Logout always leaves the flow Anonymous; the returned error only reports
// that the persisted tokens could not be deleted.
func (f *LoginFlow) Logout(ctx context.Context) error {
	if err := f.expect(LoginAuthenticated); err != nil {
		return err
	}

	f.reset()
	if err := f.session.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	f.logger.Info().Msg("logged out")
	return nil
}

func (f *LoginFlow) SyncSession() LoginState {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == LoginAuthenticated && !f.session.IsAuthenticated() {
		f.logger.Info().Msg("session cleared, returning to login")
		f.state = LoginAnonymous
		f.phone = ""
		f.profile = models.UserProfile{}
	}
	return f.state
}

func (f *LoginFlow) expect(state LoginState) error {
	if current := f.State(); current != state {
		return fmt.Errorf("%w: in state %s", ErrInvalidLoginTransition, current)
	}
	return nil
}

func (f *LoginFlow) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = LoginAnonymous
	f.phone = ""
	f.profile = models.UserProfile{}
}

// IsSessionError reports whether err means the user has to log in again.
func IsSessionError(err error) bool {
	return errors.Is(err, ErrSessionExpired)
}

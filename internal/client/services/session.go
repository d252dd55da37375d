// Package services contains application services for the LawLink client.
// This file defines the session manager: the single owner of the
// authenticated identity and bearer token, their persistence across runs,
// and all identity-changing operations.
package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/lawlink/internal/client/api"
	"github.com/dmitrijs2005/lawlink/internal/client/models"
	sessionrepo "github.com/dmitrijs2005/lawlink/internal/client/repositories/session"
	"github.com/dmitrijs2005/lawlink/internal/dbx"
	"github.com/dmitrijs2005/lawlink/internal/logging"
)

const (
	keyIdentity = "identity"
	keyToken    = "token"

	// resendCooldown guards against accidental double-submission of the
	// OTP resend request. Not a security control.
	resendCooldown = 60 * time.Second
)

// ErrResendCooldown is returned when a resend is attempted before the
// cooldown from the previous one has elapsed. No request is issued.
var ErrResendCooldown = errors.New("please wait before requesting another code")

// Session is the client-held pairing of identity and bearer token. It is
// not authoritative: a stale or revoked token only surfaces when a
// subsequent API call fails.
type Session struct {
	Identity models.Identity
	Token    string
}

// RegisterParams collects the registration form. Lawyer accounts require
// the professional fields; client accounts need only the first three.
type RegisterParams struct {
	Username string      `validate:"required,min=3"`
	Email    string      `validate:"required,email"`
	Password string      `validate:"required,min=8"`
	Role     models.Role `validate:"required,oneof=Client Lawyer"`

	PhoneNumber           string `validate:"required_if=Role Lawyer"`
	Address               string `validate:"required_if=Role Lawyer"`
	BarRegistrationNumber string `validate:"required_if=Role Lawyer"`
}

// SessionManager mediates all identity-changing operations and is the
// single source of truth consumed by guards and views.
type SessionManager struct {
	api      api.AuthAPI
	db       *sql.DB
	log      logging.Logger
	validate *validator.Validate
	now      func() time.Time

	mu         sync.RWMutex
	current    *Session
	restored   bool
	lastResend map[string]time.Time
}

func NewSessionManager(apiClient api.AuthAPI, db *sql.DB, log logging.Logger) *SessionManager {
	return &SessionManager{
		api:        apiClient,
		db:         db,
		log:        log,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		now:        time.Now,
		lastResend: make(map[string]time.Time),
	}
}

func (m *SessionManager) getSessionRepo() sessionrepo.Repository {
	return sessionrepo.NewSQLiteRepository(m.db)
}

// Restore loads the persisted identity and token at startup. The session is
// trusted without a backend round trip; a revoked token is only discovered
// on the next failing API call. If the token happens to be a JWT whose
// expiry is already past, a warning is logged so the staleness window is at
// least visible.
func (m *SessionManager) Restore(ctx context.Context) error {
	defer func() {
		m.mu.Lock()
		m.restored = true
		m.mu.Unlock()
	}()

	repo := m.getSessionRepo()

	identityRaw, err := repo.Get(ctx, keyIdentity)
	if err != nil {
		return err
	}
	tokenRaw, err := repo.Get(ctx, keyToken)
	if err != nil {
		return err
	}
	if len(identityRaw) == 0 || len(tokenRaw) == 0 {
		return nil
	}

	var identity models.Identity
	if err := json.Unmarshal(identityRaw, &identity); err != nil {
		return fmt.Errorf("corrupt persisted identity: %w", err)
	}

	token := string(tokenRaw)
	m.warnIfExpired(ctx, token)

	m.mu.Lock()
	m.current = &Session{Identity: identity, Token: token}
	m.mu.Unlock()
	m.api.SetToken(token)

	m.log.Info(ctx, "session restored", "user_id", identity.ID, "role", identity.Role)
	return nil
}

// warnIfExpired peeks at the token's exp claim without verifying the
// signature. Opaque (non-JWT) tokens are ignored.
func (m *SessionManager) warnIfExpired(ctx context.Context, token string) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return
	}
	if exp.Before(m.now()) {
		m.log.Warn(ctx, "restored session token is already expired; next API call will fail",
			"expired_at", exp.Time)
	}
}

// Restored reports whether Restore has completed. Guards return a pending
// decision until it has, so a slow startup never causes a premature
// redirect.
func (m *SessionManager) Restored() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.restored
}

// Current returns the authoritative session, or nil when unauthenticated.
func (m *SessionManager) Current() *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Login authenticates against the backend and, on success, persists the
// identity and token in one transaction and returns the identity for
// role-based dispatch. No automatic retry.
func (m *SessionManager) Login(ctx context.Context, email, password string) (*models.Identity, error) {
	user, err := m.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	identityRaw, err := json.Marshal(user.Identity)
	if err != nil {
		return nil, fmt.Errorf("encoding identity: %w", err)
	}

	err = dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := sessionrepo.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keyIdentity, identityRaw); err != nil {
			return err
		}
		return repo.Set(ctx, keyToken, []byte(user.Token))
	})
	if err != nil {
		return nil, fmt.Errorf("persisting session: %w", err)
	}

	m.mu.Lock()
	m.current = &Session{Identity: user.Identity, Token: user.Token}
	m.mu.Unlock()

	m.log.Info(ctx, "logged in", "user_id", user.ID, "role", user.Role)
	return &user.Identity, nil
}

// Register creates an account, branching on the requested role. It returns
// the email to be confirmed in the follow-up OTP verification step.
func (m *SessionManager) Register(ctx context.Context, p RegisterParams) (string, error) {
	if err := m.validate.Struct(p); err != nil {
		return "", &api.Error{Kind: api.KindRegistration, Message: registrationHint(err), Err: err}
	}

	if p.Role == models.RoleLawyer {
		return m.api.RegisterLawyer(ctx, api.LawyerRegistration{
			Username:              p.Username,
			Email:                 p.Email,
			Password:              p.Password,
			PhoneNumber:           p.PhoneNumber,
			Address:               p.Address,
			BarRegistrationNumber: p.BarRegistrationNumber,
		})
	}
	return m.api.Register(ctx, p.Username, p.Email, p.Password)
}

// registrationHint renders the first validation failure in a form the user
// can act on.
func registrationHint(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid registration details"
	}
	f := verrs[0]
	switch f.Tag() {
	case "required", "required_if":
		return fmt.Sprintf("%s is required", f.Field())
	case "email":
		return "email address is not valid"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", f.Field(), f.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", f.Field(), f.Param())
	default:
		return fmt.Sprintf("%s is invalid", f.Field())
	}
}

// VerifyOTP exchanges the one-time code for account activation. A confirmed
// account still has no session; the user logs in afterwards.
func (m *SessionManager) VerifyOTP(ctx context.Context, email, code string) error {
	return m.api.VerifyOTP(ctx, email, code)
}

// ResendOTP requests reissuance of the one-time code, subject to a
// client-enforced cooldown per email.
func (m *SessionManager) ResendOTP(ctx context.Context, email string) error {
	m.mu.Lock()
	last, ok := m.lastResend[email]
	if ok && m.now().Sub(last) < resendCooldown {
		m.mu.Unlock()
		return ErrResendCooldown
	}
	m.mu.Unlock()

	if err := m.api.SendOTP(ctx, email); err != nil {
		return err
	}

	m.mu.Lock()
	m.lastResend[email] = m.now()
	m.mu.Unlock()
	return nil
}

// Logout clears the persisted session and the in-memory identity. The
// caller is expected to navigate back to the unauthenticated view.
func (m *SessionManager) Logout(ctx context.Context) error {
	if err := m.getSessionRepo().Clear(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()
	m.api.ClearToken()

	m.log.Info(ctx, "logged out")
	return nil
}

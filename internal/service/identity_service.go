package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/syncfit/syncfit-backend/internal/domain"
	"github.com/syncfit/syncfit-backend/internal/observability"
	"github.com/syncfit/syncfit-backend/internal/repository"
	"github.com/syncfit/syncfit-backend/internal/security"
)

var (
	ErrAlreadyRegistered  = errors.New("email already registered")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrInvalidCode        = errors.New("invalid verification code")
	ErrCodeExpired        = errors.New("verification code expired")
	ErrAlreadyVerified    = errors.New("account already verified")
	ErrNotFound           = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDeliveryFailed     = errors.New("verification email delivery failed")
	ErrStoreUnavailable   = errors.New("store unavailable")
)

// IdentityConfig is the explicit configuration for the identity manager.
type IdentityConfig struct {
	CodeTTL time.Duration
}

// RegistrationCodeRequest starts or restarts a registration attempt.
type RegistrationCodeRequest struct {
	Email string
}

func (r RegistrationCodeRequest) Validate() error {
	if r.Email == "" {
		return ErrInvalidRequest
	}
	return nil
}

// CompleteRegistrationRequest finishes registration. ProvisionalRef is the
// record reference returned by RequestRegistrationCode.
type CompleteRegistrationRequest struct {
	Name           string
	Email          string
	Password       string
	Code           string
	ProvisionalRef uint
}

func (r CompleteRegistrationRequest) Validate() error {
	if r.Name == "" || r.Email == "" || r.Password == "" || r.Code == "" || r.ProvisionalRef == 0 {
		return ErrInvalidRequest
	}
	return nil
}

type LoginCodeRequest struct {
	Email string
}

func (r LoginCodeRequest) Validate() error {
	if r.Email == "" {
		return ErrInvalidRequest
	}
	return nil
}

type LoginRequest struct {
	Email    string
	Password string
	Code     string
}

func (r LoginRequest) Validate() error {
	if r.Email == "" || r.Password == "" || r.Code == "" {
		return ErrInvalidRequest
	}
	return nil
}

// CodeIssueResult references the provisional record a registration code was
// issued for. The caller echoes Ref back on completion.
type CodeIssueResult struct {
	Ref       uint      `json:"ref"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthResult is the success payload of CompleteRegistration and Login.
type AuthResult struct {
	User      domain.PublicUser `json:"user"`
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expires_at"`
}

// keyedMutex serializes operations per key. Entries are never evicted; the
// key space is bounded by the set of emails actively authenticating.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()
	m.Lock()
	return m.Unlock
}

// IdentityService owns the identity record lifecycle: provisional creation,
// OTP issuance, promotion to verified, and login-time re-verification.
// Operations on the same email are serialized through a keyed mutex so two
// interleaved registration attempts cannot both promote to verified.
type IdentityService struct {
	cfg      IdentityConfig
	userRepo repository.UserRepository
	tokenSvc *TokenService
	mailer   Mailer
	emailMu  *keyedMutex
}

func NewIdentityService(cfg IdentityConfig, userRepo repository.UserRepository, tokenSvc *TokenService, mailer Mailer) *IdentityService {
	if cfg.CodeTTL <= 0 {
		cfg.CodeTTL = 10 * time.Minute
	}
	return &IdentityService{
		cfg:      cfg,
		userRepo: userRepo,
		tokenSvc: tokenSvc,
		mailer:   mailer,
		emailMu:  newKeyedMutex(),
	}
}

// RequestRegistrationCode issues a fresh code for email. An existing
// provisional record is reused (resend); a verified record rejects with
// ErrAlreadyRegistered.
func (s *IdentityService) RequestRegistrationCode(ctx context.Context, req RegistrationCodeRequest) (*CodeIssueResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	unlock := s.emailMu.Lock(req.Email)
	defer unlock()

	existing, err := s.userRepo.FindByEmail(req.Email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, storeErr(err)
	}
	if existing != nil && existing.Verified {
		observability.RecordAuthCodeIssued(ctx, "registration", "already_registered")
		return nil, ErrAlreadyRegistered
	}

	code, err := security.NewOTPCode()
	if err != nil {
		return nil, storeErr(err)
	}
	expiresAt := time.Now().UTC().Add(s.cfg.CodeTTL)

	created := false
	record := existing
	if record == nil {
		record = &domain.User{Email: req.Email}
		record.SetOTP(code, expiresAt)
		if err := s.userRepo.Create(record); err != nil {
			return nil, storeErr(err)
		}
		created = true
	} else {
		record.SetOTP(code, expiresAt)
		if err := s.userRepo.Save(record); err != nil {
			return nil, storeErr(err)
		}
	}

	if err := s.mailer.SendVerificationCode(ctx, CodeNotification{
		Email:     req.Email,
		Code:      code,
		ExpiresAt: expiresAt,
		Flow:      "registration",
	}); err != nil {
		// A pre-existing record keeps its stale code; it stops matching
		// once expired.
		if created {
			if delErr := s.userRepo.DeleteByID(record.ID); delErr != nil {
				return nil, storeErr(delErr)
			}
		}
		observability.RecordAuthCodeIssued(ctx, "registration", "delivery_failed")
		return nil, ErrDeliveryFailed
	}

	observability.RecordAuthCodeIssued(ctx, "registration", "success")
	return &CodeIssueResult{Ref: record.ID, ExpiresAt: expiresAt}, nil
}

// CompleteRegistration promotes a provisional record to verified. The error
// precedence is load-bearing: record/email match, then code, then expiry,
// then verified state, then duplicate-email check.
func (s *IdentityService) CompleteRegistration(ctx context.Context, req CompleteRegistrationRequest) (*AuthResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	unlock := s.emailMu.Lock(req.Email)
	defer unlock()

	record, err := s.userRepo.FindByID(req.ProvisionalRef)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			observability.RecordAuthRegistration(ctx, "invalid_request")
			return nil, ErrInvalidRequest
		}
		return nil, storeErr(err)
	}
	if record.Email != req.Email {
		observability.RecordAuthRegistration(ctx, "invalid_request")
		return nil, ErrInvalidRequest
	}

	if record.OTPCode == nil || *record.OTPCode != req.Code {
		observability.RecordAuthRegistration(ctx, "invalid_code")
		return nil, ErrInvalidCode
	}
	if record.OTPExpiresAt == nil || time.Now().UTC().After(*record.OTPExpiresAt) {
		if !record.Verified {
			if err := s.userRepo.DeleteByID(record.ID); err != nil {
				return nil, storeErr(err)
			}
		}
		observability.RecordAuthRegistration(ctx, "code_expired")
		return nil, ErrCodeExpired
	}
	if record.Verified {
		observability.RecordAuthRegistration(ctx, "already_verified")
		return nil, ErrAlreadyVerified
	}

	// Another attempt may have verified this email while this one was in
	// flight; the surviving record wins and the rest are swept.
	if _, err := s.userRepo.FindVerifiedByEmailExcluding(req.Email, record.ID); err == nil {
		if err := s.userRepo.DeleteProvisionalByEmail(req.Email, 0); err != nil {
			return nil, storeErr(err)
		}
		observability.RecordAuthRegistration(ctx, "already_registered")
		return nil, ErrAlreadyRegistered
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, storeErr(err)
	}

	if err := s.userRepo.DeleteProvisionalByEmail(req.Email, record.ID); err != nil {
		return nil, storeErr(err)
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, storeErr(err)
	}
	record.Name = req.Name
	record.PasswordHash = hash
	record.Verified = true
	record.ClearOTP()
	if err := s.userRepo.Save(record); err != nil {
		return nil, storeErr(err)
	}

	token, expiresAt, err := s.tokenSvc.Issue(record)
	if err != nil {
		return nil, storeErr(err)
	}
	observability.RecordAuthRegistration(ctx, "success")
	return &AuthResult{User: record.Public(), Token: token, ExpiresAt: expiresAt}, nil
}

// RequestLoginCode issues a fresh code for an already verified account.
func (s *IdentityService) RequestLoginCode(ctx context.Context, req LoginCodeRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	unlock := s.emailMu.Lock(req.Email)
	defer unlock()

	record, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			observability.RecordAuthCodeIssued(ctx, "login", "not_found")
			return ErrNotFound
		}
		return storeErr(err)
	}
	if !record.Verified {
		observability.RecordAuthCodeIssued(ctx, "login", "not_found")
		return ErrNotFound
	}

	code, err := security.NewOTPCode()
	if err != nil {
		return storeErr(err)
	}
	expiresAt := time.Now().UTC().Add(s.cfg.CodeTTL)
	record.SetOTP(code, expiresAt)
	if err := s.userRepo.Save(record); err != nil {
		return storeErr(err)
	}

	if err := s.mailer.SendVerificationCode(ctx, CodeNotification{
		Email:     req.Email,
		Name:      record.Name,
		Code:      code,
		ExpiresAt: expiresAt,
		Flow:      "login",
	}); err != nil {
		// The stored code is left in place; it dies with its expiry.
		observability.RecordAuthCodeIssued(ctx, "login", "delivery_failed")
		return ErrDeliveryFailed
	}

	observability.RecordAuthCodeIssued(ctx, "login", "success")
	return nil
}

// Login checks password before code so a wrong password never reveals
// whether a code was requested.
func (s *IdentityService) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	unlock := s.emailMu.Lock(req.Email)
	defer unlock()

	record, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			observability.RecordAuthLogin(ctx, "invalid_credentials")
			return nil, ErrInvalidCredentials
		}
		return nil, storeErr(err)
	}

	ok, err := security.VerifyPassword(record.PasswordHash, req.Password)
	if err != nil {
		return nil, storeErr(err)
	}
	if !ok {
		observability.RecordAuthLogin(ctx, "invalid_credentials")
		return nil, ErrInvalidCredentials
	}

	if record.OTPCode == nil || *record.OTPCode != req.Code {
		observability.RecordAuthLogin(ctx, "invalid_code")
		return nil, ErrInvalidCode
	}
	if record.OTPExpiresAt == nil || time.Now().UTC().After(*record.OTPExpiresAt) {
		observability.RecordAuthLogin(ctx, "code_expired")
		return nil, ErrCodeExpired
	}

	// One-time use: a successful login consumes the code.
	record.ClearOTP()
	if err := s.userRepo.Save(record); err != nil {
		return nil, storeErr(err)
	}

	token, expiresAt, err := s.tokenSvc.Issue(record)
	if err != nil {
		return nil, storeErr(err)
	}
	observability.RecordAuthLogin(ctx, "success")
	return &AuthResult{User: record.Public(), Token: token, ExpiresAt: expiresAt}, nil
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}

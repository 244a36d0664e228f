package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"isaarte/internal/kv"
	"isaarte/internal/repos"
)

var (
	ErrCodeMismatch = errors.New("verification code mismatch")
	ErrCodeExpired  = errors.New("verification code expired")
	ErrResendWait   = errors.New("wait before requesting another code")
)

const (
	otpTTL            = 10 * time.Minute
	otpResendCooldown = 60 * time.Second
)

// RecoveryService drives the email -> code -> reset wizard. Codes are kept in
// the kv port; delivery is simulated (the code is only ever logged).
type RecoveryService struct {
	KV    kv.Store
	Users *repos.UserRepo
	Auth  *AuthService

	// Now is swappable for tests.
	Now func() time.Time
}

func NewRecoveryService(store kv.Store, users *repos.UserRepo, auth *AuthService) *RecoveryService {
	return &RecoveryService{KV: store, Users: users, Auth: auth, Now: time.Now}
}

type pendingReset struct {
	Code     string    `json:"code"`
	IssuedAt time.Time `json:"issued_at"`
	Verified bool      `json:"verified"`
}

func resetKey(email string) string { return "reset:" + email }

// RequestCode issues a 6-digit code for the account's email and returns it so
// the caller can log the simulated delivery. Re-requests inside the cooldown
// window are refused.
func (s *RecoveryService) RequestCode(email string) (string, error) {
	if _, err := s.Users.ByEmail(email); err != nil {
		return "", ErrNoSuchEmail
	}

	var pending pendingReset
	if err := kv.GetJSON(s.KV, resetKey(email), &pending); err == nil {
		if s.Now().Sub(pending.IssuedAt) < otpResendCooldown {
			return "", ErrResendWait
		}
	}

	code, err := sixDigits()
	if err != nil {
		return "", err
	}
	pending = pendingReset{Code: code, IssuedAt: s.Now()}
	if err := kv.SetJSON(s.KV, resetKey(email), pending); err != nil {
		return "", err
	}
	return code, nil
}

// VerifyCode checks the submitted code and marks the wizard as verified.
func (s *RecoveryService) VerifyCode(email, code string) error {
	var pending pendingReset
	if err := kv.GetJSON(s.KV, resetKey(email), &pending); err != nil {
		return ErrCodeMismatch
	}
	if s.Now().Sub(pending.IssuedAt) > otpTTL {
		_ = s.KV.Delete(resetKey(email))
		return ErrCodeExpired
	}
	if pending.Code != code {
		return ErrCodeMismatch
	}
	pending.Verified = true
	return kv.SetJSON(s.KV, resetKey(email), pending)
}

// Reset sets the new password once the code step has been passed, and
// discards the pending state.
func (s *RecoveryService) Reset(email, password string) error {
	var pending pendingReset
	if err := kv.GetJSON(s.KV, resetKey(email), &pending); err != nil || !pending.Verified {
		return ErrCodeMismatch
	}
	if s.Now().Sub(pending.IssuedAt) > otpTTL {
		_ = s.KV.Delete(resetKey(email))
		return ErrCodeExpired
	}
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return ErrNoSuchEmail
	}
	if err := s.Auth.SetPassword(u.ID, password); err != nil {
		return err
	}
	return s.KV.Delete(resetKey(email))
}

func sixDigits() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	n := uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	return fmt.Sprintf("%06d", n%1000000), nil
}

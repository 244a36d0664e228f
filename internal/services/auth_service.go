package services

import (
	"errors"
	"strings"

	"isaarte/internal/domain"
	"isaarte/internal/repos"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrBadCreds    = errors.New("invalid email or password")
	ErrEmailTaken  = errors.New("email already registered")
	ErrNoSuchEmail = errors.New("no account for email")
)

// SessionHook observes login/logout so collaborators (the cart store) can
// react without auth knowing their storage keys.
type SessionHook func(sid, userID string)

type AuthService struct {
	Users *repos.UserRepo

	loginHooks  []SessionHook
	logoutHooks []SessionHook
}

func (s *AuthService) OnLogin(fn SessionHook)  { s.loginHooks = append(s.loginHooks, fn) }
func (s *AuthService) OnLogout(fn SessionHook) { s.logoutHooks = append(s.logoutHooks, fn) }

func (s *AuthService) Login(sid, email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	for _, fn := range s.loginHooks {
		fn(sid, u.ID)
	}
	return u, nil
}

func (s *AuthService) Register(sid, name, email, password string) (*domain.User, error) {
	if u, _ := s.Users.ByEmail(email); u != nil {
		return nil, ErrEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}
	u := domain.User{
		ID:    uuid.NewString(),
		Email: strings.TrimSpace(email),
		Name:  strings.TrimSpace(name),
		Hash:  string(hash),
		Role:  "USER",
	}
	if err := s.Users.Create(u); err != nil {
		return nil, err
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	for _, fn := range s.loginHooks {
		fn(sid, u.ID)
	}
	return &u, nil
}

// Logout unbinds the session and notifies subscribers with the departing
// user's id so they can clear per-user state.
func (s *AuthService) Logout(sid string) error {
	var userID string
	if u, err := s.Users.SessionUser(sid); err == nil && u != nil {
		userID = u.ID
	}
	if err := s.Users.UnbindSession(sid); err != nil {
		return err
	}
	for _, fn := range s.logoutHooks {
		fn(sid, userID)
	}
	return nil
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}

func (s *AuthService) UpdateProfile(userID, name, email string) error {
	return s.Users.UpdateProfile(userID, name, email)
}

func (s *AuthService) SetPassword(userID, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return err
	}
	return s.Users.UpdatePassword(userID, string(hash))
}

// Package auth implements sign-up, login, logout and the session checks that
// gate the rest of the API.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"vidtrack/internal/apikey"
	"vidtrack/internal/database"
	"vidtrack/internal/logging"
	"vidtrack/internal/models"
	"vidtrack/internal/session"

	"github.com/samber/oops"
)

// CredentialStore is the persistence the service needs. FindByEmail returns
// database.ErrNotFound for an unknown email; Create returns
// database.ErrDuplicate for a taken one.
type CredentialStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminSecrets identify the bootstrap administrator at sign-up.
type AdminSecrets struct {
	Email    string
	Password string
}

type LoginResult struct {
	User *models.User
	// Resumed is set when the session already belonged to this user.
	Resumed bool
}

type Service struct {
	users  CredentialStore
	hasher PasswordHasher
	admin  AdminSecrets
	keys   *apikey.Store

	// dummyHash is verified against when the email is unknown so that both
	// login failures cost one bcrypt comparison.
	dummyHash string
}

func NewService(users CredentialStore, hasher PasswordHasher, admin AdminSecrets, keys *apikey.Store) (*Service, error) {
	if users == nil {
		return nil, oops.Code("AUTH_CONFIG").Errorf("credential store is required")
	}
	if hasher == nil {
		return nil, oops.Code("AUTH_CONFIG").Errorf("password hasher is required")
	}
	if admin.Email == "" || admin.Password == "" {
		return nil, oops.Code("AUTH_CONFIG").Errorf("admin secrets are required")
	}
	if keys == nil {
		keys = apikey.NewStore()
	}

	seed, err := apikey.Generate()
	if err != nil {
		return nil, oops.Code("AUTH_CONFIG").Wrap(err)
	}
	dummy, err := hasher.Hash(seed)
	if err != nil {
		return nil, err
	}

	return &Service{
		users:     users,
		hasher:    hasher,
		admin:     admin,
		keys:      keys,
		dummyHash: dummy,
	}, nil
}

// ValidEmail requires both an "@" and ".com".
func ValidEmail(email string) bool {
	return strings.Contains(email, "@") && strings.Contains(email, ".com")
}

func validPassword(password string) bool {
	return password != "" && len(password) <= MaxPasswordBytes
}

// roleFor grants admin only when both submitted values equal the configured
// secrets. Both comparisons always run.
func (s *Service) roleFor(creds Credentials) models.Role {
	emailOK := subtle.ConstantTimeCompare([]byte(creds.Email), []byte(s.admin.Email))
	passOK := subtle.ConstantTimeCompare([]byte(creds.Password), []byte(s.admin.Password))
	if emailOK&passOK == 1 {
		return models.RoleAdmin
	}
	return models.RoleUser
}

// SignUp creates the user and logs the session in as them.
func (s *Service) SignUp(ctx context.Context, sess session.Store, creds Credentials) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.signup")

	if !ValidEmail(creds.Email) {
		return nil, oops.Code("AUTH_INVALID_EMAIL").With("email", logging.MaskEmail(creds.Email)).Wrap(ErrInvalidEmail)
	}
	if !validPassword(creds.Password) {
		return nil, oops.Code("AUTH_INVALID_PASSWORD").With("length", len(creds.Password)).Wrap(ErrInvalidPassword)
	}

	hash, err := s.hasher.Hash(creds.Password)
	if err != nil {
		return nil, oops.Code("AUTH_HASH_FAILED").With("operation", "hash password").Wrap(err)
	}

	user := &models.User{
		Email:        creds.Email,
		PasswordHash: hash,
		Role:         s.roleFor(creds),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, oops.Code("AUTH_DUPLICATE_EMAIL").With("email", logging.MaskEmail(creds.Email)).Wrap(ErrDuplicateEmail)
		}
		return nil, oops.Code("AUTH_STORE_UNAVAILABLE").
			With("operation", "create user").
			Wrapf(errors.Join(ErrStoreUnavailable, err), "create user")
	}

	bind(sess, user)
	if err := sess.Save(); err != nil {
		return nil, oops.Code("AUTH_SESSION_SAVE_FAILED").With("operation", "save session").Wrap(err)
	}

	l.Info("user signed up", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Login checks the credentials and binds the session to the user. A session
// holding a different identity is overwritten.
func (s *Service) Login(ctx context.Context, sess session.Store, creds Credentials) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.users.FindByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			s.hasher.Verify(creds.Password, s.dummyHash)
			l.Warn("login failed", "email", logging.MaskEmail(creds.Email), "reason", "unknown email")
			return nil, oops.Code("AUTH_USER_NOT_FOUND").Wrap(ErrUserNotFound)
		}
		return nil, oops.Code("AUTH_STORE_UNAVAILABLE").
			With("operation", "find user by email").
			Wrapf(errors.Join(ErrStoreUnavailable, err), "find user")
	}

	if !s.hasher.Verify(creds.Password, user.PasswordHash) {
		l.Warn("login failed", "user_id", user.ID, "reason", "password mismatch")
		return nil, oops.Code("AUTH_INVALID_CREDENTIALS").With("user_id", user.ID).Wrap(ErrInvalidCredentials)
	}

	if prev, ok := sess.Get(session.KeyUser); ok {
		if prev == user.Email {
			return &LoginResult{User: user, Resumed: true}, nil
		}
		l.Info("replacing session identity", "user_id", user.ID)
	}

	// The role is copied as stored; the role guard re-parses it on use.
	bind(sess, user)
	if err := sess.Save(); err != nil {
		return nil, oops.Code("AUTH_SESSION_SAVE_FAILED").With("operation", "save session").Wrap(err)
	}

	l.Info("user logged in", "user_id", user.ID)
	return &LoginResult{User: user}, nil
}

// bind makes user the session identity. An API key issued to a previous
// identity does not carry over.
func bind(sess session.Store, user *models.User) {
	sess.Delete(session.KeyAPIKey)
	sess.Set(session.KeyUser, user.Email)
	sess.Set(session.KeyRole, string(user.Role))
}

// Logout forgets everything in the session. It succeeds whether or not the
// session was authenticated.
func (s *Service) Logout(ctx context.Context, sess session.Store) error {
	sess.Clear()
	if err := sess.Save(); err != nil {
		return oops.Code("AUTH_SESSION_SAVE_FAILED").With("operation", "clear session").Wrap(err)
	}
	logging.FromContext(ctx).Debug("session cleared")
	return nil
}

// Secret returns the stored identity and extends the session.
func (s *Service) Secret(ctx context.Context, sess session.Store) (string, error) {
	user, ok := sess.Get(session.KeyUser)
	if !ok {
		return "", oops.Code("AUTH_UNAUTHORIZED").Wrap(ErrUnauthorized)
	}
	sess.Renew()
	if err := sess.Save(); err != nil {
		return "", oops.Code("AUTH_SESSION_SAVE_FAILED").With("operation", "renew session").Wrap(err)
	}
	return user, nil
}

// Authorize passes only an authenticated caller holding want.
func Authorize(authenticated bool, role, want models.Role) error {
	if !authenticated || role != want {
		return oops.Code("AUTH_UNAUTHORIZED").With("role", role).Wrap(ErrUnauthorized)
	}
	return nil
}

// IssueAPIKey records a new key for the session's user and stores it in the
// session.
func (s *Service) IssueAPIKey(ctx context.Context, sess session.Store) (string, error) {
	user, ok := sess.Get(session.KeyUser)
	if !ok {
		return "", oops.Code("AUTH_UNAUTHORIZED").Wrap(ErrUnauthorized)
	}

	key, err := s.keys.Issue(user)
	if err != nil {
		return "", oops.Code("AUTH_APIKEY_FAILED").Wrap(err)
	}
	sess.Set(session.KeyAPIKey, key)
	if err := sess.Save(); err != nil {
		return "", oops.Code("AUTH_SESSION_SAVE_FAILED").With("operation", "save api key").Wrap(err)
	}

	logging.FromContext(ctx).Info("api key issued", "issued_total", s.keys.Len())
	return key, nil
}

package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/siamfleet/fleet-usage-api/internal/domain"
	"github.com/siamfleet/fleet-usage-api/internal/ports/out/userrepo"
)

// loginFailedMessage is returned for unknown handles and wrong passwords
// alike, so the endpoint cannot be used to enumerate accounts.
const loginFailedMessage = "Username หรือ Password ไม่ถูกต้อง"

type Service struct {
	users userrepo.Repository
}

func NewService(users userrepo.Repository) *Service {
	return &Service{users: users}
}

// Login resolves the handle against both username and employee id and
// verifies the password. The returned profile never carries the credential
// hash.
func (s *Service) Login(ctx context.Context, usernameOrEmployeeID, password string) (domain.Profile, error) {
	handle := strings.TrimSpace(usernameOrEmployeeID)
	if handle == "" || password == "" {
		return domain.Profile{}, &Error{Status: http.StatusBadRequest, Code: "VALIDATION_ERROR", Message: "Missing credentials"}
	}

	u, err := s.users.GetByLogin(ctx, handle)
	if err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			return domain.Profile{}, &Error{Status: http.StatusUnauthorized, Code: "AUTH_FAILED", Message: loginFailedMessage}
		}
		return domain.Profile{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return domain.Profile{}, &Error{Status: http.StatusUnauthorized, Code: "AUTH_FAILED", Message: loginFailedMessage}
	}

	return u.Profile(), nil
}

// ProfileByID loads the public profile for the user id bound to a session.
// A session pointing at a deleted user is treated as unauthorized.
func (s *Service) ProfileByID(ctx context.Context, id domain.UserID) (domain.Profile, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			return domain.Profile{}, &Error{Status: http.StatusUnauthorized, Code: "AUTH_FAILED", Message: "Unauthorized"}
		}
		return domain.Profile{}, err
	}
	return u.Profile(), nil
}

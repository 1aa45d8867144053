package auth

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	apperrors "github.com/streamnest/streamnest/backend/internal/errors"
)

// timeNow is swapped out in tests that exercise token expiry.
var timeNow = time.Now

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,50}$`)

func (s *Service) validateRegistration(req *RegisterRequest) error {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.TrimSpace(req.Username)

	if _, err := mail.ParseAddress(req.Email); err != nil {
		return apperrors.NewValidationError("email", "invalid email address")
	}
	if !usernamePattern.MatchString(req.Username) {
		return apperrors.NewValidationError("username",
			"username must be 3-50 characters of letters, digits or underscores")
	}
	if len(req.Password) < s.config.Password.MinLength {
		return apperrors.NewValidationError("password",
			fmt.Sprintf("password must be at least %d characters", s.config.Password.MinLength))
	}
	if len(req.Password) > s.config.Password.MaxLength {
		return apperrors.NewValidationError("password",
			fmt.Sprintf("password must not exceed %d characters", s.config.Password.MaxLength))
	}
	return nil
}

// Package validation checks user input before it is sent to the service.
// The service remains authoritative; these checks only prevent requests that
// are certain to be rejected.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/docspace/internal/client/models"
	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
)

// MaxUploadBytes is the largest image the service accepts.
const MaxUploadBytes = 5 << 20

// AllowedMimeTypes lists the image types the service analyses.
var AllowedMimeTypes = []string{"image/jpeg", "image/png"}

// ErrValidation is matched by every *Error.
var ErrValidation = errors.New("validation error")

// Error reports one rejected field.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", strings.ToLower(e.Field), e.Reason)
}

func (e *Error) Is(target error) bool { return target == ErrValidation }

var validate = validator.New(validator.WithRequiredStructEnabled())

// Register checks a registration form with the service's own rules: a
// username of 3 to 20 letters or digits (any script), an email containing
// "@", a password of at least 6 characters and a matching confirmation.
func Register(form models.RegisterForm) error {
	if err := validate.Struct(form); err != nil {
		return fromValidator(err)
	}
	return nil
}

// Login rejects empty credentials.
func Login(username, password string) error {
	if strings.TrimSpace(username) == "" {
		return &Error{Field: "Username", Reason: "is required"}
	}
	if password == "" {
		return &Error{Field: "Password", Reason: "is required"}
	}
	return nil
}

// CheckSize rejects empty payloads and payloads over MaxUploadBytes.
func CheckSize(n int64) error {
	if n <= 0 {
		return &Error{Field: "File", Reason: "is empty"}
	}
	if n > MaxUploadBytes {
		return &Error{
			Field:  "File",
			Reason: fmt.Sprintf("is %s, the limit is %s", humanize.IBytes(uint64(n)), humanize.IBytes(MaxUploadBytes)),
		}
	}
	return nil
}

// Upload validates an upload and returns the content type to send. The type
// is sniffed from the payload; a declared type must agree with it.
func Upload(req models.UploadRequest) (string, error) {
	if err := CheckSize(req.SizeBytes()); err != nil {
		return "", err
	}

	detected := mimetype.Detect(req.Data)
	if !mimetype.EqualsAny(detected.String(), AllowedMimeTypes...) {
		return "", &Error{
			Field:  "File",
			Reason: fmt.Sprintf("type %s is not supported, use JPEG or PNG", detected.String()),
		}
	}

	if req.MimeType != "" && !detected.Is(req.MimeType) {
		return "", &Error{
			Field:  "File",
			Reason: fmt.Sprintf("declared type %s does not match content %s", req.MimeType, detected.String()),
		}
	}
	return detected.String(), nil
}

func fromValidator(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &Error{Reason: err.Error()}
	}

	fe := verrs[0]
	var reason string
	switch fe.Tag() {
	case "required":
		reason = "is required"
	case "alphanum", "alphanumunicode":
		reason = "must contain only letters and digits"
	case "min":
		reason = fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "max":
		reason = fmt.Sprintf("must be at most %s characters long", fe.Param())
	case "email", "contains":
		reason = "must be a valid email address"
	case "eqfield":
		reason = "does not match the password"
	default:
		reason = "is invalid"
	}
	return &Error{Field: fe.Field(), Reason: reason}
}

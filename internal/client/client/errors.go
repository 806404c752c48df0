package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable       = errors.New("server unavailable")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrNotFound          = errors.New("not found")
	ErrService           = errors.New("service error")
	ErrMalformedResponse = errors.New("malformed response")
)

// Kind classifies a NetworkError.
type Kind int

const (
	// KindTransport means no usable response arrived (dial, TLS, timeout, read).
	KindTransport Kind = iota + 1
	// KindAuth is a 401 or 403.
	KindAuth
	// KindNotFound is a 404.
	KindNotFound
	// KindService is any other non-2xx status.
	KindService
	// KindMalformed is a 2xx response whose body could not be decoded.
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindService:
		return "service"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// NetworkError is returned by the Gateway for every failed call. Status is
// zero for transport failures.
type NetworkError struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s error (%d %s): %s", e.Kind, e.Status, http.StatusText(e.Status), e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Is lets callers match on the package sentinels with errors.Is.
func (e *NetworkError) Is(target error) bool {
	switch target {
	case ErrUnavailable:
		return e.Kind == KindTransport
	case ErrUnauthorized:
		return e.Kind == KindAuth
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrService:
		return e.Kind == KindService
	case ErrMalformedResponse:
		return e.Kind == KindMalformed
	}
	return false
}

func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return KindAuth
	case status == http.StatusNotFound:
		return KindNotFound
	default:
		return KindService
	}
}

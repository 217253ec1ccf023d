package client

import (
	"net/http"

	"pet-clinic/internal/platform/httpclient"

	"github.com/pkg/errors"
)

type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindUnauthorized ErrorKind = "unauthorized"
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
	KindServer       ErrorKind = "server"
	KindOther        ErrorKind = "other"
)

// APIError es un error devuelto por la API, ya clasificado.
type APIError struct {
	Status  int
	Kind    ErrorKind
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return http.StatusText(e.Status)
	}
	return e.Message
}

func kindOf(status int) ErrorKind {
	switch {
	case status == http.StatusBadRequest:
		return KindValidation
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusConflict:
		return KindConflict
	case status >= 500:
		return KindServer
	}
	return KindOther
}

func asAPIError(err error) error {
	var he *httpclient.HTTPError
	if !errors.As(err, &he) {
		return err
	}
	return &APIError{
		Status:  he.StatusCode,
		Kind:    kindOf(he.StatusCode),
		Message: he.Message,
		Fields:  he.Fields,
	}
}

// IsKind reporta si err es un *APIError de ese tipo.
func IsKind(err error, kind ErrorKind) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Kind == kind
}

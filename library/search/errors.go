package search

import (
	"github.com/Laisky/errors/v2"
)

// Sentinel errors classifying every failure a search operation can surface.
// Callers match them with errors.Is; wrapping preserves the classification.
var (
	// ErrCredentialsUnavailable indicates no usable authentication is
	// configured, neither an API-key pair nor a service-account file.
	ErrCredentialsUnavailable = errors.New("no usable google credentials configured")

	// ErrInvalidCredentialFormat indicates a service-account file exists but
	// cannot be parsed as valid credential material.
	ErrInvalidCredentialFormat = errors.New("service account credentials are malformed")

	// ErrInvalidArgument indicates the caller supplied an unusable input,
	// such as an empty query.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUpstreamRequest indicates the Custom Search API call failed with a
	// network error, timeout, non-2xx status, or malformed response.
	ErrUpstreamRequest = errors.New("upstream search request failed")

	// ErrQuotaExceeded is the distinguished rate-limit case of an upstream
	// failure, surfaced separately so callers can back off.
	ErrQuotaExceeded = errors.New("upstream search quota exceeded")
)

// ErrorKind is the stable tag attached to error results at the tool boundary.
type ErrorKind string

const (
	KindCredentialsUnavailable  ErrorKind = "credentials_unavailable"
	KindInvalidCredentialFormat ErrorKind = "invalid_credential_format"
	KindInvalidArgument         ErrorKind = "invalid_argument"
	KindUpstreamRequestFailed   ErrorKind = "upstream_request_failed"
	KindUpstreamQuotaExceeded   ErrorKind = "upstream_quota_exceeded"
)

// KindOf classifies err into an ErrorKind. Unrecognized errors are treated
// as upstream request failures, the broadest operational category.
func KindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrCredentialsUnavailable):
		return KindCredentialsUnavailable
	case errors.Is(err, ErrInvalidCredentialFormat):
		return KindInvalidCredentialFormat
	case errors.Is(err, ErrInvalidArgument):
		return KindInvalidArgument
	case errors.Is(err, ErrQuotaExceeded):
		return KindUpstreamQuotaExceeded
	default:
		return KindUpstreamRequestFailed
	}
}

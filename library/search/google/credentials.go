package google

import (
	"context"
	"os"
	"strings"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	oauthgoogle "golang.org/x/oauth2/google"
	"google.golang.org/api/option"

	appLog "github.com/elos-ai/google-search-mcp/library/log"
	"github.com/elos-ai/google-search-mcp/library/search"
)

// cseScope is the OAuth scope required by the Custom Search API.
const cseScope = "https://www.googleapis.com/auth/cse"

// Mode identifies which credential material a resolved transport uses.
type Mode string

const (
	// ModeAPIKey authenticates with an API key plus search-engine id pair.
	ModeAPIKey Mode = "api_key"
	// ModeServiceAccount authenticates with a service-account key file.
	ModeServiceAccount Mode = "service_account"
)

// Config is the immutable credential configuration read once at startup.
type Config struct {
	APIKey          string
	SearchEngineID  string
	CredentialsFile string
}

// HasAPIKeyPair reports whether both halves of the API-key pair are present.
func (c Config) HasAPIKeyPair() bool {
	return strings.TrimSpace(c.APIKey) != "" && strings.TrimSpace(c.SearchEngineID) != ""
}

// HasCredentialsFile reports whether a service-account file path is configured.
func (c Config) HasCredentialsFile() bool {
	return strings.TrimSpace(c.CredentialsFile) != ""
}

// Engine is a resolved transport capable of issuing one Custom Search call.
type Engine interface {
	Search(ctx context.Context, q search.Query) ([]search.ResultItem, error)
}

// ResolverOption customises a Resolver during construction.
type ResolverOption func(*Resolver)

// WithResolverLogger overrides the resolver's default logger.
func WithResolverLogger(logger logSDK.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithEngineOptions supplies options forwarded to API-key engines,
// primarily for endpoint and HTTP client injection in tests.
func WithEngineOptions(opts ...Option) ResolverOption {
	return func(r *Resolver) {
		r.engineOpts = append(r.engineOpts, opts...)
	}
}

// WithClientOptions supplies extra options forwarded to service-account
// engines, primarily for endpoint injection in tests.
func WithClientOptions(opts ...option.ClientOption) ResolverOption {
	return func(r *Resolver) {
		r.clientOpts = append(r.clientOpts, opts...)
	}
}

// Resolver selects a usable Custom Search transport from the configured
// credential material. The API-key pair is preferred; a service-account file
// is the fallback. Resolution is attempted fresh on every call, so there is
// no shared mutable state between concurrent invocations.
type Resolver struct {
	cfg        Config
	logger     logSDK.Logger
	engineOpts []Option
	clientOpts []option.ClientOption
}

// NewResolver constructs a Resolver around the immutable configuration.
func NewResolver(cfg Config, opts ...ResolverOption) *Resolver {
	resolver := &Resolver{
		cfg:    cfg,
		logger: appLog.Logger.Named("google_credentials"),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(resolver)
		}
	}

	return resolver
}

// Config returns the configuration the resolver was built with.
func (r *Resolver) Config() Config {
	return r.cfg
}

// Resolve produces an authenticated transport tagged with its credential
// mode. It returns search.ErrCredentialsUnavailable when neither mode is
// satisfiable and search.ErrInvalidCredentialFormat when a service-account
// file exists but cannot be parsed.
func (r *Resolver) Resolve(ctx context.Context) (Engine, Mode, error) {
	if r.cfg.HasAPIKeyPair() {
		engine := NewSearchEngine(r.cfg.APIKey, r.cfg.SearchEngineID, r.engineOpts...)
		return engine, ModeAPIKey, nil
	}

	if r.cfg.HasCredentialsFile() {
		engine, err := r.resolveServiceAccount(ctx)
		if err != nil {
			return nil, "", err
		}
		return engine, ModeServiceAccount, nil
	}

	return nil, "", errors.WithStack(search.ErrCredentialsUnavailable)
}

func (r *Resolver) resolveServiceAccount(ctx context.Context) (Engine, error) {
	path := strings.TrimSpace(r.cfg.CredentialsFile)

	data, err := os.ReadFile(path)
	if err != nil {
		r.logger.Warn("service account file is not readable",
			zap.Error(err), zap.String("path", path))
		return nil, errors.Wrapf(search.ErrCredentialsUnavailable,
			"read service account file %q: %v", path, err)
	}

	if _, err := oauthgoogle.JWTConfigFromJSON(data, cseScope); err != nil {
		r.logger.Warn("service account file is malformed",
			zap.Error(err), zap.String("path", path))
		return nil, errors.Wrapf(search.ErrInvalidCredentialFormat,
			"parse service account file %q: %v", path, err)
	}

	opts := append([]option.ClientOption{
		option.WithCredentialsFile(path),
		option.WithScopes(cseScope),
	}, r.clientOpts...)

	engine, err := NewServiceAccountEngine(ctx, r.cfg.SearchEngineID, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "build service account engine")
	}

	return engine, nil
}

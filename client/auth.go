package client

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/inference-gateway/adk/types"
)

// Security scheme location constants, matching OpenAPI's `in` field for API
// key security schemes. The generated APIKeySecurityScheme.Location field is
// a plain string with no enum of its own, so these are the values this
// client recognizes.
const (
	APIKeyLocationHeader = "header"
	APIKeyLocationQuery  = "query"
	APIKeyLocationCookie = "cookie"
)

// AuthConfig holds the simple, single-credential authentication the Client
// applies to every outgoing request: a bearer token by default, or an
// arbitrary header name when the target expects an API key instead.
type AuthConfig struct {
	// Token is the credential value.
	Token string
	// Header is the header to send Token under. Empty means "Authorization:
	// Bearer <token>"; any other value sends the raw token under that header
	// name instead.
	Header string
}

// apply sets the configured credential on req.
func (a *AuthConfig) apply(req *http.Request) {
	if a == nil || a.Token == "" {
		return
	}
	if a.Header == "" {
		req.Header.Set("Authorization", "Bearer "+a.Token)
		return
	}
	req.Header.Set(a.Header, a.Token)
}

// CredentialService resolves a credential for a given security scheme name,
// as advertised on an AgentCard. It lets a client support schemes whose
// credential must be fetched or refreshed (e.g. an OIDC access token)
// instead of a single static value.
type CredentialService interface {
	// Credential returns the current credential value for the named scheme.
	Credential(ctx context.Context, schemeName string) (string, error)
}

// StaticCredentialService is a CredentialService that always returns the
// same value, regardless of scheme name.
type StaticCredentialService struct {
	Token string
}

// Credential implements CredentialService.
func (s *StaticCredentialService) Credential(ctx context.Context, schemeName string) (string, error) {
	return s.Token, nil
}

var _ CredentialService = (*StaticCredentialService)(nil)

// AuthInterceptor applies credentials to outgoing requests by selecting the
// first security requirement from an AgentCard's Security list whose schemes
// can all be satisfied by the configured CredentialService, then applying
// each scheme's credential the way its SecurityScheme describes.
type AuthInterceptor struct {
	mu          sync.RWMutex
	card        *types.AgentCard
	credentials CredentialService
}

// NewAuthInterceptor creates an interceptor with no card yet discovered;
// call SetAgentCard once the card has been fetched.
func NewAuthInterceptor(credentials CredentialService) *AuthInterceptor {
	return &AuthInterceptor{credentials: credentials}
}

// SetAgentCard records the agent card whose security requirements govern
// future Apply calls.
func (a *AuthInterceptor) SetAgentCard(card *types.AgentCard) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.card = card
}

// Apply finds the first satisfiable security requirement advertised by the
// agent card and applies each of its schemes' credentials to req. If no
// card has been set, or the card advertises no security requirements,
// Apply is a no-op.
func (a *AuthInterceptor) Apply(ctx context.Context, req *http.Request) error {
	a.mu.RLock()
	card := a.card
	a.mu.RUnlock()

	if card == nil || len(card.Security) == 0 {
		return nil
	}

	for _, requirement := range card.Security {
		if err := a.applyRequirement(ctx, card, requirement, req); err == nil {
			return nil
		}
	}

	return fmt.Errorf("no security requirement advertised by the agent card could be satisfied")
}

func (a *AuthInterceptor) applyRequirement(ctx context.Context, card *types.AgentCard, requirement types.Security, req *http.Request) error {
	for schemeName := range requirement.Schemes {
		scheme, ok := card.SecuritySchemes[schemeName]
		if !ok {
			return fmt.Errorf("security scheme %q not declared in securitySchemes", schemeName)
		}

		credential, err := a.credentials.Credential(ctx, schemeName)
		if err != nil {
			return fmt.Errorf("resolve credential for scheme %q: %w", schemeName, err)
		}

		if err := applyScheme(scheme, credential, req); err != nil {
			return err
		}
	}

	return nil
}

func applyScheme(scheme types.SecurityScheme, credential string, req *http.Request) error {
	switch {
	case scheme.HTTPAuthSecurityScheme != nil:
		switch scheme.HTTPAuthSecurityScheme.Scheme {
		case "bearer":
			req.Header.Set("Authorization", "Bearer "+credential)
		case "basic":
			req.Header.Set("Authorization", "Basic "+credential)
		default:
			req.Header.Set("Authorization", scheme.HTTPAuthSecurityScheme.Scheme+" "+credential)
		}
		return nil

	case scheme.APIKeySecurityScheme != nil:
		s := scheme.APIKeySecurityScheme
		switch s.Location {
		case APIKeyLocationHeader, "":
			req.Header.Set(s.Name, credential)
		case APIKeyLocationQuery:
			q := req.URL.Query()
			q.Set(s.Name, credential)
			req.URL.RawQuery = q.Encode()
		case APIKeyLocationCookie:
			req.AddCookie(&http.Cookie{Name: s.Name, Value: credential})
		default:
			return fmt.Errorf("unsupported api key location: %s", s.Location)
		}
		return nil

	case scheme.Oauth2securityScheme != nil, scheme.OpenIDConnectSecurityScheme != nil:
		req.Header.Set("Authorization", "Bearer "+credential)
		return nil

	case scheme.MtlsSecurityScheme != nil:
		return nil

	default:
		return fmt.Errorf("unrecognized security scheme shape")
	}
}

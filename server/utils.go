package server

import (
	"github.com/google/uuid"
	"github.com/inference-gateway/adk/server/config"
	"github.com/inference-gateway/adk/types"
)

// StringPtr returns a pointer to the given string
func StringPtr(s string) *string {
	return &s
}

// BoolPtr returns a pointer to the given boolean
func BoolPtr(b bool) *bool {
	return &b
}

// GenerateTaskID generates a unique task ID using UUID v4
func GenerateTaskID() string {
	return uuid.New().String()
}

// CreateOIDCSecurityScheme creates an OpenID Connect security scheme
func CreateOIDCSecurityScheme(openIDConnectURL string, description string) types.SecurityScheme {
	return types.SecurityScheme{
		OpenIDConnectSecurityScheme: &types.OpenIdConnectSecurityScheme{
			OpenIDConnectURL: openIDConnectURL,
			Description:      StringPtr(description),
		},
	}
}

// CreateAPIKeySecurityScheme creates an API key security scheme
func CreateAPIKeySecurityScheme(name string, location string, description string) types.SecurityScheme {
	return types.SecurityScheme{
		APIKeySecurityScheme: &types.APIKeySecurityScheme{
			Name:        name,
			Location:    location,
			Description: StringPtr(description),
		},
	}
}

// CreateHTTPAuthSecurityScheme creates an HTTP authentication security scheme
func CreateHTTPAuthSecurityScheme(scheme string, bearerFormat *string, description string) types.SecurityScheme {
	return types.SecurityScheme{
		HTTPAuthSecurityScheme: &types.HTTPAuthSecurityScheme{
			Scheme:       scheme,
			BearerFormat: bearerFormat,
			Description:  StringPtr(description),
		},
	}
}

// CreateOAuth2SecurityScheme creates an OAuth 2.0 security scheme
func CreateOAuth2SecurityScheme(flows types.OAuthFlows, oauth2MetadataURL *string, description string) types.SecurityScheme {
	return types.SecurityScheme{
		Oauth2securityScheme: &types.OAuth2SecurityScheme{
			Flows:             flows,
			Oauth2metadataURL: oauth2MetadataURL,
			Description:       StringPtr(description),
		},
	}
}

// CreateMutualTLSSecurityScheme creates a mutual TLS security scheme
func CreateMutualTLSSecurityScheme(description string) types.SecurityScheme {
	return types.SecurityScheme{
		MtlsSecurityScheme: &types.MutualTlsSecurityScheme{
			Description: description,
		},
	}
}

// AgentCardSecurityConfig holds security configuration options for an agent card
type AgentCardSecurityConfig struct {
	EnableOIDC                        bool
	OIDCIssuerURL                     string
	SupportsAuthenticatedExtendedCard bool
	EnableAPIKey                      bool
	APIKeyName                        string
	APIKeyLocation                    string // "header", "query", "cookie"
	EnableMutualTLS                   bool
}

// ConfigureAgentCardSecurity adds security configuration to an agent card
func ConfigureAgentCardSecurity(card *types.AgentCard, securityConfig AgentCardSecurityConfig) {
	if card.SecuritySchemes == nil {
		card.SecuritySchemes = make(map[string]types.SecurityScheme)
	}

	card.Security = nil
	schemes := make(map[string]types.StringList)

	if securityConfig.EnableOIDC && securityConfig.OIDCIssuerURL != "" {
		card.SecuritySchemes["oidc"] = CreateOIDCSecurityScheme(
			securityConfig.OIDCIssuerURL,
			"OpenID Connect authentication",
		)
		schemes["oidc"] = types.StringList{}
	}

	if securityConfig.EnableAPIKey && securityConfig.APIKeyName != "" {
		location := securityConfig.APIKeyLocation
		if location == "" {
			location = "header"
		}
		card.SecuritySchemes["api_key"] = CreateAPIKeySecurityScheme(
			securityConfig.APIKeyName,
			location,
			"API key authentication",
		)
		schemes["api_key"] = types.StringList{}
	}

	if securityConfig.EnableMutualTLS {
		card.SecuritySchemes["mtls"] = CreateMutualTLSSecurityScheme(
			"Mutual TLS authentication",
		)
		schemes["mtls"] = types.StringList{}
	}

	if len(schemes) > 0 {
		card.Security = []types.Security{{Schemes: schemes}}
	}

	card.SupportsAuthenticatedExtendedCard = BoolPtr(securityConfig.SupportsAuthenticatedExtendedCard)
}

// CreateSecurityConfigFromAuthConfig creates security configuration from auth config
func CreateSecurityConfigFromAuthConfig(authConfig config.AuthConfig) AgentCardSecurityConfig {
	return AgentCardSecurityConfig{
		EnableOIDC:                        authConfig.Enable && authConfig.IssuerURL != "",
		OIDCIssuerURL:                     authConfig.IssuerURL,
		SupportsAuthenticatedExtendedCard: authConfig.Enable,
	}
}

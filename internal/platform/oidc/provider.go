// Package oidc connects the dashboard to a hosted OpenID Connect identity provider.
package oidc

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"leadswift_backend/internal/feature/auth/domain/entity"
)

// ErrMissingIDToken is returned when the token response carries no id_token.
var ErrMissingIDToken = errors.New("missing id_token in token response")

// Config はIdP接続設定です。IssuerURLが空の場合はOIDCログインを無効とします。
type Config struct {
	IssuerURL    string
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

// LoadConfig は環境変数からOIDC設定を読み込みます。
func LoadConfig() Config {
	scopes := []string{oidc.ScopeOpenID, "email", "profile"}
	if v := os.Getenv("OIDC_SCOPES"); v != "" {
		scopes = strings.Fields(strings.ReplaceAll(v, ",", " "))
	}
	return Config{
		IssuerURL:    os.Getenv("OIDC_ISSUER_URL"),
		ClientID:     os.Getenv("OIDC_CLIENT_ID"),
		ClientSecret: os.Getenv("OIDC_CLIENT_SECRET"),
		RedirectURL:  os.Getenv("OIDC_REDIRECT_URL"),
		Scopes:       scopes,
	}
}

// Enabled reports whether an identity provider is configured.
func (c Config) Enabled() bool {
	return c.IssuerURL != "" && c.ClientID != ""
}

// Provider runs the authorization-code flow against one issuer.
type Provider struct {
	oauth2   *oauth2.Config
	verifier *oidc.IDTokenVerifier
	client   *http.Client
}

// NewProvider discovers the issuer's endpoints and keys. Calls to the issuer use
// client when it is non-nil.
func NewProvider(ctx context.Context, cfg Config, client *http.Client) (*Provider, error) {
	if !cfg.Enabled() {
		return nil, errors.New("oidc issuer and client id are required")
	}
	if client != nil {
		// 鍵セットの取得にも同じクライアントが使われる
		ctx = oidc.ClientContext(ctx, client)
	}
	p, err := oidc.NewProvider(ctx, cfg.IssuerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to discover OIDC provider: %w", err)
	}
	oc := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     p.Endpoint(),
		RedirectURL:  cfg.RedirectURL,
		Scopes:       cfg.Scopes,
	}
	provider := newProvider(oc, p.Verifier(&oidc.Config{ClientID: cfg.ClientID}))
	provider.client = client
	return provider, nil
}

func newProvider(oc *oauth2.Config, verifier *oidc.IDTokenVerifier) *Provider {
	return &Provider{oauth2: oc, verifier: verifier}
}

// AuthCodeURL returns the issuer's authorization URL bound to state.
func (p *Provider) AuthCodeURL(state string) string {
	return p.oauth2.AuthCodeURL(state)
}

// Exchange trades code for tokens and returns the verified identity.
func (p *Provider) Exchange(ctx context.Context, code string) (*entity.Identity, error) {
	if p.client != nil {
		ctx = oidc.ClientContext(ctx, p.client)
	}
	tok, err := p.oauth2.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange token: %w", err)
	}
	raw, ok := tok.Extra("id_token").(string)
	if !ok || raw == "" {
		return nil, ErrMissingIDToken
	}
	idToken, err := p.verifier.Verify(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to verify ID token: %w", err)
	}

	var claims struct {
		Email         string `json:"email"`
		EmailVerified *bool  `json:"email_verified"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("failed to parse claims: %w", err)
	}
	if claims.EmailVerified != nil && !*claims.EmailVerified {
		return nil, errors.New("identity provider email is not verified")
	}
	return &entity.Identity{Subject: idToken.Subject, Email: claims.Email}, nil
}

package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"leadswift_backend/internal/feature/auth/domain/entity"
)

const (
	stateCookie       = "leadswift_oidc_state"
	stateCookieMaxAge = 600
)

// IdentityFlow is the hosted identity provider sign-in.
type IdentityFlow interface {
	Begin() (state, redirectURL string, err error)
	Complete(ctx context.Context, code string, meta entity.ClientMeta) (*entity.TokenPair, error)
}

// OIDCHandler serves the browser side of the identity provider flow.
type OIDCHandler struct {
	flow         IdentityFlow
	frontendURL  string
	secureCookie bool
}

// NewOIDCHandler creates the handler; the browser ends up on frontendURL either way.
func NewOIDCHandler(flow IdentityFlow, frontendURL string) *OIDCHandler {
	frontendURL = strings.TrimRight(frontendURL, "/")
	return &OIDCHandler{
		flow:         flow,
		frontendURL:  frontendURL,
		secureCookie: strings.HasPrefix(frontendURL, "https://"),
	}
}

// StartLogin redirects the browser to the identity provider.
func (h *OIDCHandler) StartLogin(c *gin.Context) {
	state, redirectURL, err := h.flow.Begin()
	if err != nil {
		slog.Error("oidc login start failed", "error", err)
		c.Redirect(http.StatusFound, h.home())
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, state, stateCookieMaxAge, "/", "", h.secureCookie, true)
	c.Redirect(http.StatusFound, redirectURL)
}

// Callback completes the flow. Every failure is logged and sends the browser home.
func (h *OIDCHandler) Callback(c *gin.Context) {
	expected, _ := c.Cookie(stateCookie)
	c.SetCookie(stateCookie, "", -1, "/", "", h.secureCookie, true)

	if e := c.Query("error"); e != "" {
		slog.Warn("identity provider returned an error", "error", e, "description", c.Query("error_description"), "remote_addr", c.ClientIP())
		c.Redirect(http.StatusFound, h.home())
		return
	}
	if expected == "" || c.Query("state") != expected {
		slog.Warn("oidc state mismatch", "remote_addr", c.ClientIP())
		c.Redirect(http.StatusFound, h.home())
		return
	}

	pair, err := h.flow.Complete(c.Request.Context(), c.Query("code"), clientMeta(c))
	if err != nil {
		slog.Error("oidc callback failed", "error", err, "remote_addr", c.ClientIP())
		c.Redirect(http.StatusFound, h.home())
		return
	}

	fragment := url.Values{}
	fragment.Set("access_token", pair.AccessToken)
	fragment.Set("refresh_token", pair.RefreshToken)
	fragment.Set("expires_in", strconv.FormatInt(pair.ExpiresIn, 10))
	c.Redirect(http.StatusFound, h.frontendURL+"/dashboard#"+fragment.Encode())
}

func (h *OIDCHandler) home() string {
	return h.frontendURL + "/"
}

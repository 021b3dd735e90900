// Package api はHTTPトランスポート層で共有されるリクエスト/レスポンス型を定義します。
package api

import "time"

// ErrorResponse はエラー時の共通レスポンスです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse は本文を持たない成功レスポンスです。
type MessageResponse struct {
	Message string `json:"message"`
}

// SignupRequest は /signup のリクエストボディです。
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest は /login のリクエストボディです。
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest は /auth/refresh と /auth/logout のリクエストボディです。
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenResponse はトークン発行時のレスポンスです。
type TokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// SessionUser is the signed-in user as seen by the dashboard.
type SessionUser struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

// SessionResponse mirrors the identity provider's session state.
type SessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *SessionUser `json:"user,omitempty"`
	ExpiresAt     *time.Time   `json:"expires_at,omitempty"`
}

// GeneratePitchRequest is the body of POST /api/generate-pitch.
type GeneratePitchRequest struct {
	LeadID string `json:"leadId" binding:"required"`
	UserID string `json:"userId" binding:"required"`
	Prompt string `json:"prompt"`
}

// GeneratePitchResponse is the body returned by POST /api/generate-pitch.
type GeneratePitchResponse struct {
	Text string `json:"text"`
}

// PitchResponse is a stored pitch.
type PitchResponse struct {
	ID        string    `json:"id"`
	LeadID    string    `json:"leadId"`
	UserID    string    `json:"userId"`
	Prompt    string    `json:"prompt"`
	Text      string    `json:"text"`
	Provider  string    `json:"provider"`
	CreatedAt time.Time `json:"createdAt"`
}

// MetricResponse is one analytics card.
type MetricResponse struct {
	Key           string  `json:"key"`
	Label         string  `json:"label"`
	Category      string  `json:"category"`
	Unit          string  `json:"unit"`
	Value         float64 `json:"value"`
	Previous      float64 `json:"previous"`
	ChangePercent float64 `json:"changePercent"`
}

// AnalyticsSummaryResponse aggregates the visible metrics.
type AnalyticsSummaryResponse struct {
	TotalCount float64 `json:"totalCount"`
	TotalUSD   float64 `json:"totalUsd"`
	Improving  int     `json:"improving"`
	Declining  int     `json:"declining"`
}

// AnalyticsOverviewResponse is the body of GET /api/analytics/overview.
type AnalyticsOverviewResponse struct {
	Metrics []MetricResponse         `json:"metrics"`
	Summary AnalyticsSummaryResponse `json:"summary"`
}

// ComplianceCheckResponse is a single compliance check row.
type ComplianceCheckResponse struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Status      string `json:"status"`
	Required    bool   `json:"required"`
}

// ComplianceReportResponse is the body of GET /api/compliance/checks.
type ComplianceReportResponse struct {
	Checks  []ComplianceCheckResponse `json:"checks"`
	Total   int                       `json:"total"`
	Passed  int                       `json:"passed"`
	Warning int                       `json:"warning"`
	Failed  int                       `json:"failed"`
	Score   int                       `json:"score"`
}

// ScanResponse is a compliance scan and its progress.
type ScanResponse struct {
	ID        string    `json:"id"`
	State     string    `json:"state"`
	Progress  int       `json:"progress"`
	StartedAt time.Time `json:"startedAt"`
}

// ToggleResponse is one settings switch.
type ToggleResponse struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Enabled     bool   `json:"enabled"`
}

// SettingsTabResponse is one settings tab.
type SettingsTabResponse struct {
	Key     string           `json:"key"`
	Title   string           `json:"title"`
	Toggles []ToggleResponse `json:"toggles"`
}

// SaveSettingsRequest is the body of PUT /api/settings.
type SaveSettingsRequest struct {
	Values map[string]bool `json:"values" binding:"required"`
}

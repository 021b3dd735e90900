// Package handler はsettingsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"leadswift_backend/internal/api"
	"leadswift_backend/internal/feature/settings/domain/entity"
	"leadswift_backend/internal/feature/settings/usecase"
	jwtmw "leadswift_backend/internal/platform/jwt"
)

// SettingsUsecase は設定画面のユースケースインターフェースです。
type SettingsUsecase interface {
	Tab(ctx context.Context, userID uint, key string) (*entity.Tab, error)
	All(ctx context.Context, userID uint) ([]entity.Tab, error)
	Toggle(ctx context.Context, userID uint, key string) (*entity.Toggle, error)
	Save(ctx context.Context, userID uint, values map[string]bool) ([]entity.Tab, error)
}

// SettingsHandler は設定画面のHTTPリクエストを処理します。
type SettingsHandler struct {
	uc SettingsUsecase
}

// NewSettingsHandler はSettingsHandlerを生成します。
func NewSettingsHandler(uc SettingsUsecase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// All は全タブを返します。
//
// エンドポイント: GET /api/settings
func (h *SettingsHandler) All(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	tabs, err := h.uc.All(c.Request.Context(), userID)
	if err != nil {
		internalError(c, "list settings failed", err, userID)
		return
	}
	c.JSON(http.StatusOK, toTabsResponse(tabs))
}

// Tab は1つのタブを返します。
//
// エンドポイント: GET /api/settings/:tab
func (h *SettingsHandler) Tab(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	tab, err := h.uc.Tab(c.Request.Context(), userID, c.Param("tab"))
	if errors.Is(err, usecase.ErrUnknownTab) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "settings tab not found"})
		return
	}
	if err != nil {
		internalError(c, "get settings tab failed", err, userID)
		return
	}
	c.JSON(http.StatusOK, toTabResponse(*tab))
}

// Toggle はスイッチを反転します。
//
// エンドポイント: POST /api/settings/toggles/:key
func (h *SettingsHandler) Toggle(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	tg, err := h.uc.Toggle(c.Request.Context(), userID, c.Param("key"))
	if errors.Is(err, usecase.ErrUnknownToggle) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "setting not found"})
		return
	}
	if err != nil {
		internalError(c, "toggle setting failed", err, userID)
		return
	}
	c.JSON(http.StatusOK, toToggleResponse(*tg))
}

// Save は複数の設定値をまとめて保存します。
//
// エンドポイント: PUT /api/settings
func (h *SettingsHandler) Save(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req api.SaveSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("save settings validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	tabs, err := h.uc.Save(c.Request.Context(), userID, req.Values)
	if errors.Is(err, usecase.ErrUnknownToggle) {
		slog.Warn("save settings rejected", "error", err, "user_id", userID)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		internalError(c, "save settings failed", err, userID)
		return
	}
	c.JSON(http.StatusOK, toTabsResponse(tabs))
}

func requireUser(c *gin.Context) (uint, bool) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
	}
	return userID, ok
}

func internalError(c *gin.Context, msg string, err error, userID uint) {
	slog.Error(msg, "error", err, "user_id", userID)
	c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
}

func toTabsResponse(tabs []entity.Tab) []api.SettingsTabResponse {
	out := make([]api.SettingsTabResponse, 0, len(tabs))
	for _, t := range tabs {
		out = append(out, toTabResponse(t))
	}
	return out
}

func toTabResponse(t entity.Tab) api.SettingsTabResponse {
	toggles := make([]api.ToggleResponse, 0, len(t.Toggles))
	for _, tg := range t.Toggles {
		toggles = append(toggles, toToggleResponse(tg))
	}
	return api.SettingsTabResponse{Key: t.Key, Title: t.Title, Toggles: toggles}
}

func toToggleResponse(tg entity.Toggle) api.ToggleResponse {
	return api.ToggleResponse{
		Key:         tg.Key,
		Label:       tg.Label,
		Description: tg.Description,
		Enabled:     tg.Enabled,
	}
}

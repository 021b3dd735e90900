// Package handler はcomplianceフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	"leadswift_backend/internal/api"
	"leadswift_backend/internal/feature/compliance/domain/entity"
	"leadswift_backend/internal/feature/compliance/usecase"
	jwtmw "leadswift_backend/internal/platform/jwt"
)

// ComplianceUsecase はコンプライアンス画面のユースケースインターフェースです。
type ComplianceUsecase interface {
	Report(ctx context.Context, status string) (entity.Report, error)
	StartScan(ctx context.Context, userID string) (*entity.ScanStatus, error)
	GetScan(ctx context.Context, id string) (*entity.ScanStatus, error)
}

// ComplianceHandler はチェックリストとスキャンのHTTPリクエストを処理します。
type ComplianceHandler struct {
	uc ComplianceUsecase
}

// NewComplianceHandler はComplianceHandlerを生成します。
func NewComplianceHandler(uc ComplianceUsecase) *ComplianceHandler {
	return &ComplianceHandler{uc: uc}
}

// Checks はステータスで絞り込んだチェックリストを返します。
//
// エンドポイント: GET /api/compliance/checks?status=
func (h *ComplianceHandler) Checks(c *gin.Context) {
	var status *string
	if err := runtime.BindQueryParameter("form", true, false, "status", c.Request.URL.Query(), &status); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid status"})
		return
	}

	var filter string
	if status != nil {
		filter = *status
	}

	r, err := h.uc.Report(c.Request.Context(), filter)
	if errors.Is(err, usecase.ErrInvalidStatus) {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid status"})
		return
	}
	if err != nil {
		slog.Error("compliance report failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}

	checks := make([]api.ComplianceCheckResponse, 0, len(r.Checks))
	for _, ch := range r.Checks {
		checks = append(checks, api.ComplianceCheckResponse{
			Key:         ch.Key,
			Title:       ch.Title,
			Description: ch.Description,
			Category:    ch.Category,
			Status:      ch.Status,
			Required:    ch.Required,
		})
	}
	c.JSON(http.StatusOK, api.ComplianceReportResponse{
		Checks:  checks,
		Total:   r.Total,
		Passed:  r.Passed,
		Warning: r.Warning,
		Failed:  r.Failed,
		Score:   r.Score,
	})
}

// StartScan はスキャンを開始します。
//
// エンドポイント: POST /api/compliance/scans
func (h *ComplianceHandler) StartScan(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	s, err := h.uc.StartScan(c.Request.Context(), ownerID(userID))
	if err != nil {
		slog.Error("start scan failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}

	c.Header("Location", "/api/compliance/scans/"+s.Scan.ID)
	c.JSON(http.StatusAccepted, toScanResponse(s))
}

// GetScan はスキャンの進捗を返します。
//
// エンドポイント: GET /api/compliance/scans/:id
func (h *ComplianceHandler) GetScan(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	s, err := h.uc.GetScan(c.Request.Context(), c.Param("id"))
	if errors.Is(err, usecase.ErrScanNotFound) || (err == nil && s.Scan.UserID != ownerID(userID)) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "scan not found"})
		return
	}
	if err != nil {
		slog.Error("get scan failed", "error", err, "scan_id", c.Param("id"))
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, toScanResponse(s))
}

func ownerID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func toScanResponse(s *entity.ScanStatus) api.ScanResponse {
	return api.ScanResponse{
		ID:        s.Scan.ID,
		State:     s.State,
		Progress:  s.Progress,
		StartedAt: s.Scan.StartedAt,
	}
}

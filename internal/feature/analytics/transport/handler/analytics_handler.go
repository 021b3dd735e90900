// Package handler はanalyticsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	"leadswift_backend/internal/api"
	"leadswift_backend/internal/feature/analytics/domain/entity"
)

// AnalyticsUsecase は分析画面のユースケースインターフェースです。
type AnalyticsUsecase interface {
	Overview(ctx context.Context, category string) (*entity.Overview, error)
}

// AnalyticsHandler は分析画面のHTTPリクエストを処理します。
type AnalyticsHandler struct {
	uc AnalyticsUsecase
}

// NewAnalyticsHandler はAnalyticsHandlerを生成します。
func NewAnalyticsHandler(uc AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// Overview は指標カードとサマリーを返します。
//
// エンドポイント: GET /api/analytics/overview?category=
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	var category *string
	if err := runtime.BindQueryParameter("form", true, false, "category", c.Request.URL.Query(), &category); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid category"})
		return
	}

	var filter string
	if category != nil {
		filter = *category
	}

	ov, err := h.uc.Overview(c.Request.Context(), filter)
	if err != nil {
		slog.Error("analytics overview failed", "error", err, "category", filter)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, toOverviewResponse(ov))
}

func toOverviewResponse(ov *entity.Overview) api.AnalyticsOverviewResponse {
	metrics := make([]api.MetricResponse, 0, len(ov.Metrics))
	for _, m := range ov.Metrics {
		metrics = append(metrics, api.MetricResponse{
			Key:           m.Key,
			Label:         m.Label,
			Category:      m.Category,
			Unit:          m.Unit,
			Value:         m.Value,
			Previous:      m.Previous,
			ChangePercent: m.ChangePercent(),
		})
	}
	return api.AnalyticsOverviewResponse{
		Metrics: metrics,
		Summary: api.AnalyticsSummaryResponse{
			TotalCount: ov.Summary.TotalCount,
			TotalUSD:   ov.Summary.TotalUSD,
			Improving:  ov.Summary.Improving,
			Declining:  ov.Summary.Declining,
		},
	}
}

// Package handler はpitchフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
	"github.com/yuin/goldmark"

	"leadswift_backend/internal/api"
	"leadswift_backend/internal/feature/pitch/domain/entity"
	"leadswift_backend/internal/feature/pitch/usecase"
	jwtmw "leadswift_backend/internal/platform/jwt"
)

// PitchUsecase はピッチ操作のユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type PitchUsecase interface {
	Generate(ctx context.Context, in entity.GenerateInput) (*entity.Pitch, error)
	List(ctx context.Context, userID, leadID string, limit int) ([]entity.Pitch, error)
	Get(ctx context.Context, id string) (*entity.Pitch, error)
}

// ListPitchesParams は GET /api/pitches のクエリパラメータです。
type ListPitchesParams struct {
	LeadID *string `form:"leadId" json:"leadId,omitempty"`
	Limit  *int    `form:"limit" json:"limit,omitempty"`
}

// PitchHandler はピッチ生成・参照のHTTPリクエストを処理します。
type PitchHandler struct {
	uc       PitchUsecase
	markdown goldmark.Markdown
}

// NewPitchHandler はPitchHandlerを生成します。
func NewPitchHandler(uc PitchUsecase) *PitchHandler {
	return &PitchHandler{uc: uc, markdown: goldmark.New()}
}

// GeneratePitch はピッチを生成して保存します。
//
// エンドポイント: POST /api/generate-pitch
// POST以外のメソッドは本文なしの405を返します。
func (h *PitchHandler) GeneratePitch(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		c.Header("Allow", http.MethodPost)
		c.AbortWithStatus(http.StatusMethodNotAllowed)
		return
	}

	var req api.GeneratePitchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("generate pitch validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "leadId and userId are required"})
		return
	}

	p, err := h.uc.Generate(c.Request.Context(), entity.GenerateInput{
		LeadID: req.LeadID,
		UserID: req.UserID,
		Prompt: req.Prompt,
	})
	switch {
	case err == nil:
		c.JSON(http.StatusOK, api.GeneratePitchResponse{Text: p.Text})
	case errors.Is(err, usecase.ErrInvalidInput):
		slog.Warn("generate pitch rejected", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrGenerationFailed):
		slog.Error("pitch generation failed", "error", err, "lead_id", req.LeadID)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "pitch generation failed"})
	default:
		slog.Error("pitch insert failed", "error", err, "lead_id", req.LeadID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to save pitch"})
	}
}

// ListPitches は認証ユーザーのピッチを新しい順に返します。
//
// エンドポイント: GET /api/pitches?leadId=&limit=
func (h *PitchHandler) ListPitches(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	var params ListPitchesParams
	query := c.Request.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "leadId", query, &params.LeadID); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid leadId"})
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", query, &params.Limit); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid limit"})
		return
	}

	leadID, limit := "", 0
	if params.LeadID != nil {
		leadID = *params.LeadID
	}
	if params.Limit != nil {
		limit = *params.Limit
	}

	pitches, err := h.uc.List(c.Request.Context(), ownerID(userID), leadID, limit)
	if err != nil {
		slog.Error("list pitches failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}

	out := make([]api.PitchResponse, 0, len(pitches))
	for i := range pitches {
		out = append(out, toResponse(&pitches[i]))
	}
	c.JSON(http.StatusOK, out)
}

// GetPitch は1件のピッチを返します。?format=html の場合は本文をHTMLに変換して返します。
//
// エンドポイント: GET /api/pitches/:id
func (h *PitchHandler) GetPitch(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	p, err := h.uc.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, usecase.ErrPitchNotFound) || (err == nil && p.UserID != ownerID(userID)) {
		// 他人のピッチも存在しないものとして扱う
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "pitch not found"})
		return
	}
	if err != nil {
		slog.Error("get pitch failed", "error", err, "pitch_id", c.Param("id"))
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}

	if c.Query("format") == "html" {
		var buf bytes.Buffer
		if err := h.markdown.Convert([]byte(p.Text), &buf); err != nil {
			slog.Error("pitch render failed", "error", err, "pitch_id", p.ID)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to render pitch"})
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
		return
	}
	c.JSON(http.StatusOK, toResponse(p))
}

// ownerID はJWTのユーザーIDをピッチのuserId表現に変換します。
func ownerID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func toResponse(p *entity.Pitch) api.PitchResponse {
	return api.PitchResponse{
		ID:        p.ID,
		LeadID:    p.LeadID,
		UserID:    p.UserID,
		Prompt:    p.Prompt,
		Text:      p.Text,
		Provider:  p.Provider,
		CreatedAt: p.CreatedAt,
	}
}

package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "github.com/chirag127/Image-Insight-AI/internal/errors"
	"github.com/chirag127/Image-Insight-AI/internal/model"
	"github.com/chirag127/Image-Insight-AI/internal/service"
)

// AnalysisHandler handles the analyze and history endpoints.
type AnalysisHandler struct {
	analysisService service.AnalysisService
}

// NewAnalysisHandler creates a new analysis handler.
func NewAnalysisHandler(analysisService service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

// AnalyzeRequest represents an image analysis request. Presence of the
// image is checked by the service, not the validator, so the error comes
// back in the domain envelope.
type AnalyzeRequest struct {
	ImageBase64 string `json:"imageBase64"`
}

// AIResponse is the normalized analysis payload.
type AIResponse struct {
	Description string   `json:"description"`
	Emotions    string   `json:"emotions"`
	Tags        []string `json:"tags"`
	RawResponse string   `json:"rawResponse,omitempty"`
}

// AnalysisItem is one history entry.
type AnalysisItem struct {
	ID         string     `json:"id"`
	ImageURL   string     `json:"imageUrl"`
	AIResponse AIResponse `json:"aiResponse"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// AnalyzeResponse wraps a created analysis.
type AnalyzeResponse struct {
	Success bool         `json:"success"`
	Data    AnalysisItem `json:"data"`
}

// HistoryResponse wraps the caller's history listing.
type HistoryResponse struct {
	Success bool           `json:"success"`
	Count   int            `json:"count"`
	Data    []AnalysisItem `json:"data"`
}

// AnalysisResponse wraps a single history entry.
type AnalysisResponse struct {
	Success bool         `json:"success"`
	Data    AnalysisItem `json:"data"`
}

func toAnalysisItem(analysis *model.ImageAnalysis, withRaw bool) AnalysisItem {
	item := AnalysisItem{
		ID:       analysis.ID.String(),
		ImageURL: analysis.ImageURL,
		AIResponse: AIResponse{
			Description: analysis.Description,
			Emotions:    analysis.Emotions,
			Tags:        analysis.Tags,
		},
		CreatedAt: analysis.CreatedAt,
	}
	if item.AIResponse.Tags == nil {
		item.AIResponse.Tags = []string{}
	}
	if withRaw {
		item.AIResponse.RawResponse = analysis.RawResponse
	}
	return item
}

// Analyze godoc
// @Summary Upload and analyze an image
// @Tags analysis
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AnalyzeRequest true "Base64 encoded image"
// @Success 200 {object} AnalyzeResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /analyze [post]
func (h *AnalysisHandler) Analyze(c echo.Context) error {
	claims, ok := currentClaims(c)
	if !ok {
		return notAuthenticated(c)
	}

	var req AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.NewErrorResponse("invalid request body"))
	}

	analysis, err := h.analysisService.Analyze(c.Request().Context(), claims.UserID, req.ImageBase64)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, AnalyzeResponse{
		Success: true,
		Data:    toAnalysisItem(analysis, true),
	})
}

// History godoc
// @Summary List the caller's analyses, newest first
// @Tags analysis
// @Produce json
// @Security BearerAuth
// @Success 200 {object} HistoryResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /history [get]
func (h *AnalysisHandler) History(c echo.Context) error {
	claims, ok := currentClaims(c)
	if !ok {
		return notAuthenticated(c)
	}

	analyses, err := h.analysisService.History(c.Request().Context(), claims.UserID)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	items := make([]AnalysisItem, 0, len(analyses))
	for i := range analyses {
		items = append(items, toAnalysisItem(&analyses[i], false))
	}

	return c.JSON(http.StatusOK, HistoryResponse{
		Success: true,
		Count:   len(items),
		Data:    items,
	})
}

// Get godoc
// @Summary Get a single analysis by id
// @Tags analysis
// @Produce json
// @Security BearerAuth
// @Param id path string true "Analysis ID"
// @Success 200 {object} AnalysisResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /history/{id} [get]
func (h *AnalysisHandler) Get(c echo.Context) error {
	claims, ok := currentClaims(c)
	if !ok {
		return notAuthenticated(c)
	}

	id, err := parseAnalysisID(c.Param("id"))
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	analysis, err := h.analysisService.Get(c.Request().Context(), claims.UserID, id)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, AnalysisResponse{
		Success: true,
		Data:    toAnalysisItem(analysis, true),
	})
}

// Delete godoc
// @Summary Delete a single analysis by id
// @Tags analysis
// @Produce json
// @Security BearerAuth
// @Param id path string true "Analysis ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /history/{id} [delete]
func (h *AnalysisHandler) Delete(c echo.Context) error {
	claims, ok := currentClaims(c)
	if !ok {
		return notAuthenticated(c)
	}

	id, err := parseAnalysisID(c.Param("id"))
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	if err := h.analysisService.Delete(c.Request().Context(), claims.UserID, id); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, MessageResponse{
		Success: true,
		Message: "Image analysis deleted",
	})
}

// parseAnalysisID treats a malformed id as not-found so probing with junk
// ids is indistinguishable from probing with real ones.
func parseAnalysisID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.ErrAnalysisNotFound
	}
	return id, nil
}

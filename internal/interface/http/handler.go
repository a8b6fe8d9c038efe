package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/trip-advisor/internal/domain/advisor"
)

// Handler wires the HTTP transport to the advisor service.
type Handler struct {
	advisorSvc advisor.Service
	logger     *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(advisorSvc advisor.Service, logger *slog.Logger) *Handler {
	return &Handler{
		advisorSvc: advisorSvc,
		logger:     logger.With("component", "http.handler"),
	}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListProfiles returns the known traveler identifiers.
func (h *Handler) ListProfiles(c *gin.Context) {
	ids, err := h.advisorSvc.ListProfiles(c.Request.Context())
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"profiles": ids})
}

// GetProfile returns one traveler profile.
func (h *Handler) GetProfile(c *gin.Context) {
	p, err := h.advisorSvc.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, p)
}

// Forecast generates the synthetic forecast.
func (h *Handler) Forecast(c *gin.Context) {
	var req advisor.ForecastRequest
	if !bind(c, &req) {
		return
	}
	resp, err := h.advisorSvc.GetForecast(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Windows returns the generic best and worst windows of a forecast.
func (h *Handler) Windows(c *gin.Context) {
	var req advisor.WindowsRequest
	if !bind(c, &req) {
		return
	}
	resp, err := h.advisorSvc.FindWindows(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EvaluateFlights ranks candidate flights for a traveler.
func (h *Handler) EvaluateFlights(c *gin.Context) {
	var req advisor.FlightsRequest
	if !bind(c, &req) {
		return
	}
	resp, err := h.advisorSvc.EvaluateFlights(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EvaluateHotels ranks candidate hotels for a traveler.
func (h *Handler) EvaluateHotels(c *gin.Context) {
	var req advisor.HotelsRequest
	if !bind(c, &req) {
		return
	}
	resp, err := h.advisorSvc.EvaluateHotels(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Synthesize combines caller supplied evaluations into a recommendation.
func (h *Handler) Synthesize(c *gin.Context) {
	var req advisor.SynthesizeRequest
	if !bind(c, &req) {
		return
	}
	resp, err := h.advisorSvc.Synthesize(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	observeRecommendation(string(resp.Confidence), resp.Compromise)
	c.JSON(http.StatusOK, resp)
}

// Recommend runs the full pipeline against the synthetic catalog.
func (h *Handler) Recommend(c *gin.Context) {
	var req advisor.RecommendRequest
	if !bind(c, &req) {
		return
	}
	resp, err := h.advisorSvc.Recommend(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	observeRecommendation(string(resp.Confidence), resp.Compromise)
	c.JSON(http.StatusOK, resp)
}

func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, codeInvalidRequest, err.Error(), err))
		return false
	}
	return true
}

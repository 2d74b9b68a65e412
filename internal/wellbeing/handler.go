package wellbeing

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"wellbeing-backend/internal/shared/server/middleware"
	"wellbeing-backend/internal/shared/server/respond"
)

// Analyzer is the service surface the HTTP handler depends on.
type Analyzer interface {
	Run(ctx context.Context, text string) Outcome
}

// Handler wires HTTP handlers to the analysis service.
type Handler struct {
	Svc Analyzer
}

// NewHandler constructs a Handler.
func NewHandler(svc Analyzer) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze", h.analyze)
	rg.GET("/colors", h.colors)
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type analyzeResponse struct {
	Outcome
	Display Display `json:"display"`
}

func (h *Handler) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "invalid request body", nil)
		return
	}
	if err := ValidateInput(req.Text); err != nil {
		switch {
		case errors.Is(err, ErrEmptyInput):
			respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, EmptyInputMessage, []map[string]string{
				{"field": "text", "issue": "required"},
			})
		default:
			respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "Please keep your message under "+strconv.Itoa(MaxInputChars)+" characters.", []map[string]string{
				{"field": "text", "issue": "too_long"},
			})
		}
		return
	}

	out := h.Svc.Run(c.Request.Context(), req.Text)
	c.Set(middleware.AnalysisIDKey, out.ID)
	c.Set(middleware.StrategyKey, string(out.Strategy))
	if out.FallbackReason != "" {
		c.Set(middleware.FallbackKey, out.FallbackReason)
	}

	respond.OK(c, analyzeResponse{Outcome: out, Display: DisplayFor(out.Record)})
}

func (h *Handler) colors(c *gin.Context) {
	resp := gin.H{}
	if mood, ok := c.GetQuery("mood"); ok {
		resp["moodColor"] = MoodToColor(mood)
	}
	if raw, ok := c.GetQuery("stress"); ok {
		level, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "stress must be an integer", nil)
			return
		}
		resp["stressColor"] = StressLevelToColor(level)
	}
	if len(resp) == 0 {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "mood or stress is required", nil)
		return
	}
	respond.OK(c, resp)
}

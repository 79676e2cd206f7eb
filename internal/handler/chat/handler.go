package chat

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/jwalitptl/zyra-api/internal/model"
	chatService "github.com/jwalitptl/zyra-api/internal/service/chat"
	apperrors "github.com/jwalitptl/zyra-api/pkg/errors"
)

type Handler struct {
	service chatService.ChatServicer
}

func NewHandler(service chatService.ChatServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/chat", h.Chat)
}

// Chat answers one widget message. A body that is not valid JSON is treated
// as an empty message; one cut off by the size limit gets a 413.
func (h *Handler) Chat(c *gin.Context) {
	logger := zerolog.Ctx(c.Request.Context())

	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			logger.Warn().Int64("limit", tooLarge.Limit).Msg("chat body too large")
			c.JSON(http.StatusRequestEntityTooLarge, model.ChatResponse{Reply: model.TooLargeReply})
			return
		}
		logger.Debug().Err(err).Msg("unreadable chat body")
		req = model.ChatRequest{}
	}

	resp, err := h.service.Reply(c.Request.Context(), chatService.Request{
		Message:      req.Message,
		BusinessSlug: req.BusinessSlug,
	})
	if err != nil {
		logger.Error().Err(err).
			Int("code", int(apperrors.CodeOf(err))).
			Str("business_slug", req.BusinessSlug).
			Msg("chat turn failed")
		c.JSON(http.StatusInternalServerError, model.ChatResponse{Reply: model.ErrorReply})
		return
	}

	c.JSON(http.StatusOK, model.ChatResponse{Reply: resp.Reply})
}

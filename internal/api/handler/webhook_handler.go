package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/artkulinaria/staffing-backoffice/internal/api/metrics"
	"github.com/artkulinaria/staffing-backoffice/internal/core/ports"
)

// UpdateDeduper suppresses provider redeliveries of the same update.
type UpdateDeduper interface {
	Seen(ctx context.Context, updateID int64) (bool, error)
	Mark(ctx context.Context, updateID int64) error
}

// UpdateDispatcher is the interface the handler uses to enqueue updates
// for asynchronous processing. Enqueue reports false when the queue is
// saturated and the update was not taken.
type UpdateDispatcher interface {
	Enqueue(upd ports.ChannelUpdate) bool
}

// WebhookHandler receives inbound updates from the messaging provider.
type WebhookHandler struct {
	dedup      UpdateDeduper
	dispatcher UpdateDispatcher
	logger     zerolog.Logger
}

func NewWebhookHandler(dedup UpdateDeduper, dispatcher UpdateDispatcher, logger zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{dedup: dedup, dispatcher: dispatcher, logger: logger}
}

// --- Provider wire types ---

type webhookChat struct {
	ID int64 `json:"id"`
}

type webhookMessage struct {
	MessageID int64        `json:"message_id"`
	Text      string       `json:"text"`
	Chat      *webhookChat `json:"chat"`
}

type webhookUpdate struct {
	UpdateID int64           `json:"update_id"`
	Message  *webhookMessage `json:"message"`
}

type webhookAck struct {
	OK bool `json:"ok"`
}

// Receive handles POST /webhook/telegram.
//
// The provider retries any non-2xx response, so every recognised payload
// is acknowledged with 200 regardless of what processing will make of
// it. The exceptions are malformed JSON (400) and a saturated update
// queue (503, deliberately provoking a retry once the backlog clears).
//
// @Summary      Receive a messaging provider update
// @Tags         webhook
// @Accept       json
// @Produce      json
// @Param        body  body      webhookUpdate  true  "Provider update"
// @Success      200   {object}  webhookAck
// @Failure      400   {object}  errorResponse
// @Router       /webhook/telegram [post]
func (h *WebhookHandler) Receive(c echo.Context) error {
	var upd webhookUpdate
	if err := c.Bind(&upd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if upd.Message == nil || upd.Message.Chat == nil || upd.Message.Chat.ID == 0 {
		metrics.LinkEventsTotal.WithLabelValues("ignored").Inc()
		return c.JSON(http.StatusOK, webhookAck{OK: true})
	}

	ctx := c.Request().Context()

	// Dedup failures fail open: processing an update twice is safe
	// (linking is idempotent), dropping one is not.
	seen, err := h.dedup.Seen(ctx, upd.UpdateID)
	if err != nil {
		h.logger.Warn().Err(err).Int64("update_id", upd.UpdateID).Msg("webhook dedup check failed")
	}
	if seen {
		metrics.LinkEventsTotal.WithLabelValues("duplicate").Inc()
		return c.JSON(http.StatusOK, webhookAck{OK: true})
	}

	// A saturated queue answers 503 before the update is marked seen, so
	// the provider's retry is not suppressed by dedup.
	accepted := h.dispatcher.Enqueue(ports.ChannelUpdate{
		UpdateID: upd.UpdateID,
		ChatID:   strconv.FormatInt(upd.Message.Chat.ID, 10),
		Text:     upd.Message.Text,
	})
	if !accepted {
		metrics.LinkEventsTotal.WithLabelValues("refused").Inc()
		return echo.NewHTTPError(http.StatusServiceUnavailable, "update queue is full")
	}

	if err := h.dedup.Mark(ctx, upd.UpdateID); err != nil {
		h.logger.Warn().Err(err).Int64("update_id", upd.UpdateID).Msg("webhook dedup mark failed")
	}

	metrics.LinkEventsTotal.WithLabelValues("accepted").Inc()
	return c.JSON(http.StatusOK, webhookAck{OK: true})
}

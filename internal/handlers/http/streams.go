package http

import (
	"time"

	"github.com/KirkDiggler/pkbattle/internal/models"
	streamRepo "github.com/KirkDiggler/pkbattle/internal/repositories/stream"
	"github.com/KirkDiggler/pkbattle/internal/services/battle"
	"github.com/KirkDiggler/pkbattle/internal/services/gift"
	"github.com/KirkDiggler/pkbattle/internal/services/leaderboard"
	"github.com/gofiber/fiber/v2"
)

type putStreamRequest struct {
	UserID          string              `json:"user_id"`
	Title           string              `json:"title"`
	Status          models.StreamStatus `json:"status"`
	CoHostStreamIDs []string            `json:"co_host_stream_ids"`
	StartedAt       time.Time           `json:"started_at"`
}

type livenessRequest struct {
	Liveness models.StreamLiveness `json:"liveness"`
}

// putStream mirrors the stream registry into the local store
func (h *Handler) putStream(c *fiber.Ctx) error {
	var req putStreamRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body must be a JSON object")
	}

	if req.UserID == "" {
		return badRequest(c, "user_id is required")
	}

	switch req.Status {
	case models.StreamStatusLive, models.StreamStatusEnded:
	default:
		return badRequest(c, "status must be live or ended")
	}

	startedAt := req.StartedAt
	if startedAt.IsZero() && req.Status == models.StreamStatusLive {
		startedAt = h.now().UTC()
	}

	stream := &models.Stream{
		ID:              c.Params("id"),
		UserID:          req.UserID,
		Title:           req.Title,
		Status:          req.Status,
		CoHostStreamIDs: req.CoHostStreamIDs,
		StartedAt:       startedAt,
	}

	if err := h.streams.SaveStream(c.UserContext(), &streamRepo.SaveStreamInput{Stream: stream}); err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(stream)
}

func (h *Handler) updateLiveness(c *fiber.Ctx) error {
	var req livenessRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body must be a JSON object")
	}

	switch req.Liveness {
	case models.StreamLivenessConnected, models.StreamLivenessReconnecting, models.StreamLivenessDisconnected:
	default:
		return badRequest(c, "liveness must be connected, reconnecting or disconnected")
	}

	out, err := h.battles.UpdateStreamLiveness(c.UserContext(), &battle.UpdateStreamLivenessInput{
		StreamID: c.Params("id"),
		Liveness: req.Liveness,
	})
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(fiber.Map{"battle": out.Battle})
}

// sendStreamGift sends a plain gift; the battle locator scores it when the recipient is battling
func (h *Handler) sendStreamGift(c *fiber.Ctx) error {
	var req giftRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body must be a JSON object")
	}

	if req.RecipientID == "" || req.GiftID == "" {
		return badRequest(c, "recipient_id and gift_id are required")
	}

	out, err := h.gifts.SendGift(c.UserContext(), &gift.SendGiftInput{
		StreamID:       c.Params("id"),
		SenderID:       currentUser(c),
		RecipientID:    req.RecipientID,
		GiftID:         req.GiftID,
		UnitValue:      req.UnitValue,
		Quantity:       req.Quantity,
		IdempotencyKey: idempotencyKey(c, req.IdempotencyKey),
	})
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"event":          out.Event,
		"replayed":       out.Replayed,
		"sender_balance": out.SenderBalance,
	})
}

func (h *Handler) getTopSenders(c *fiber.Ctx) error {
	recipientID := c.Query("recipient_id")
	if recipientID == "" {
		return badRequest(c, "recipient_id is required")
	}

	out, err := h.leaderboard.GetTopSenders(c.UserContext(), &leaderboard.GetTopSendersInput{
		StreamID:    c.Params("id"),
		RecipientID: recipientID,
		Limit:       c.QueryInt("limit", 0),
	})
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(fiber.Map{"entries": out.Entries})
}

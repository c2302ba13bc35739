package http

import (
	"time"

	"github.com/KirkDiggler/pkbattle/internal/services/battle"
	"github.com/gofiber/fiber/v2"
)

type startBattleRequest struct {
	HostStreamID         string `json:"host_stream_id"`
	OpponentID           string `json:"opponent_id"`
	Rounds               int    `json:"rounds"`
	RoundDurationSeconds int    `json:"round_duration_seconds"`

	// Nil keeps the default, zero skips the phase
	CountdownSeconds    *int `json:"countdown_seconds"`
	IntermissionSeconds *int `json:"intermission_seconds"`
}

type giftRequest struct {
	RecipientID    string `json:"recipient_id"`
	StreamID       string `json:"stream_id"`
	GiftID         string `json:"gift_id"`
	UnitValue      int64  `json:"unit_value"`
	Quantity       int64  `json:"quantity"`
	IdempotencyKey string `json:"idempotency_key"`
}

type endBattleRequest struct {
	Reason string `json:"reason"`
}

func seconds(n *int) *time.Duration {
	if n == nil {
		return nil
	}
	d := time.Duration(*n) * time.Second
	return &d
}

func (h *Handler) startBattle(c *fiber.Ctx) error {
	var req startBattleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body must be a JSON object")
	}

	if req.HostStreamID == "" || req.OpponentID == "" {
		return badRequest(c, "host_stream_id and opponent_id are required")
	}

	out, err := h.battles.StartBattle(c.UserContext(), &battle.StartBattleInput{
		HostStreamID: req.HostStreamID,
		ChallengerID: currentUser(c),
		OpponentID:   req.OpponentID,
		Config: &battle.BattleConfigInput{
			Rounds:               req.Rounds,
			RoundDuration:        time.Duration(req.RoundDurationSeconds) * time.Second,
			CountdownDuration:    seconds(req.CountdownSeconds),
			IntermissionDuration: seconds(req.IntermissionSeconds),
		},
	})
	if err != nil {
		return h.writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(out.Battle)
}

func (h *Handler) acceptBattle(c *fiber.Ctx) error {
	out, err := h.battles.AcceptBattle(c.UserContext(), &battle.AcceptBattleInput{
		BattleID: c.Params("id"),
		UserID:   currentUser(c),
	})
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(out.Battle)
}

func (h *Handler) sendBattleGift(c *fiber.Ctx) error {
	var req giftRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body must be a JSON object")
	}

	if req.RecipientID == "" || req.GiftID == "" {
		return badRequest(c, "recipient_id and gift_id are required")
	}

	out, err := h.battles.SendGift(c.UserContext(), &battle.SendGiftInput{
		BattleID:       c.Params("id"),
		SenderID:       currentUser(c),
		RecipientID:    req.RecipientID,
		StreamID:       req.StreamID,
		GiftID:         req.GiftID,
		UnitValue:      req.UnitValue,
		Quantity:       req.Quantity,
		IdempotencyKey: idempotencyKey(c, req.IdempotencyKey),
	})
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(out.Update)
}

func (h *Handler) endRound(c *fiber.Ctx) error {
	out, err := h.battles.EndRound(c.UserContext(), &battle.EndRoundInput{
		BattleID: c.Params("id"),
		UserID:   currentUser(c),
	})
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"battle": out.Battle,
		"round":  out.Round,
	})
}

func (h *Handler) endBattle(c *fiber.Ctx) error {
	var req endBattleRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "body must be a JSON object")
		}
	}

	out, err := h.battles.EndBattle(c.UserContext(), &battle.EndBattleInput{
		BattleID: c.Params("id"),
		UserID:   currentUser(c),
		Reason:   req.Reason,
	})
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(out.Battle)
}

func (h *Handler) getBattle(c *fiber.Ctx) error {
	out, err := h.battles.GetBattle(c.UserContext(), &battle.GetBattleInput{BattleID: c.Params("id")})
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(out.Battle)
}

func (h *Handler) getBattleStats(c *fiber.Ctx) error {
	out, err := h.battles.GetBattleStats(c.UserContext(), &battle.GetBattleStatsInput{
		BattleID: c.Params("id"),
		TopLimit: c.QueryInt("limit", 0),
	})
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(out.Stats)
}

// idempotencyKey prefers the Idempotency-Key header over the body field
func idempotencyKey(c *fiber.Ctx, fromBody string) string {
	if key := c.Get("Idempotency-Key"); key != "" {
		return key
	}
	return fromBody
}

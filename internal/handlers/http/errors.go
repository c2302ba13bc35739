package http

import (
	"errors"

	streamRepo "github.com/KirkDiggler/pkbattle/internal/repositories/stream"
	"github.com/KirkDiggler/pkbattle/internal/services/battle"
	"github.com/KirkDiggler/pkbattle/internal/services/gift"
	"github.com/KirkDiggler/pkbattle/internal/services/messaging"
	"github.com/gofiber/fiber/v2"
)

// Stable error codes returned in the error field
const (
	codeValidation          = "validation"
	codeUnauthenticated     = "unauthenticated"
	codeInternal            = "internal"
	codeNotFound            = "not_found"
	codeBattleNotFound      = "battle_not_found"
	codeStreamNotFound      = "stream_not_found"
	codeStreamNotLive       = "stream_not_live"
	codeBattleAlreadyActive = "battle_already_active"
	codeInvalidState        = "invalid_state"
	codeBattleNotActive     = "battle_not_active"
	codeNotOpponent         = "not_opponent"
	codeNotParticipant      = "not_participant"
	codeNotStreamOwner      = "not_stream_owner"
	codeInvalidRecipient    = "invalid_recipient"
	codeInsufficientFunds   = "insufficient_funds"
	codeRateLimited         = "rate_limited"
	codeBattleBusy          = "battle_busy"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// classify maps a service error to an HTTP status and error code
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, battle.ErrBattleNotFound):
		return fiber.StatusNotFound, codeBattleNotFound
	case errors.Is(err, streamRepo.ErrStreamNotFound):
		return fiber.StatusNotFound, codeStreamNotFound
	case errors.Is(err, battle.ErrStreamNotLive):
		return fiber.StatusUnprocessableEntity, codeStreamNotLive
	case errors.Is(err, battle.ErrBattleAlreadyActive):
		return fiber.StatusConflict, codeBattleAlreadyActive
	case errors.Is(err, battle.ErrInvalidState):
		return fiber.StatusConflict, codeInvalidState
	case errors.Is(err, battle.ErrBattleNotActive):
		return fiber.StatusConflict, codeBattleNotActive
	case errors.Is(err, battle.ErrNotOpponent):
		return fiber.StatusForbidden, codeNotOpponent
	case errors.Is(err, battle.ErrNotParticipant):
		return fiber.StatusForbidden, codeNotParticipant
	case errors.Is(err, battle.ErrNotStreamOwner):
		return fiber.StatusForbidden, codeNotStreamOwner
	case errors.Is(err, battle.ErrInvalidRecipient):
		return fiber.StatusUnprocessableEntity, codeInvalidRecipient
	case errors.Is(err, gift.ErrInsufficientFunds):
		return fiber.StatusPaymentRequired, codeInsufficientFunds
	case errors.Is(err, gift.ErrRateLimited):
		return fiber.StatusTooManyRequests, codeRateLimited
	case errors.Is(err, battle.ErrBattleBusy):
		return fiber.StatusServiceUnavailable, codeBattleBusy
	case errors.Is(err, battle.ErrInvalidOpponent),
		errors.Is(err, battle.ErrInvalidConfig),
		errors.Is(err, gift.ErrInvalidGift),
		errors.Is(err, gift.ErrSelfGift),
		errors.Is(err, gift.ErrMissingParty),
		errors.Is(err, gift.ErrInvalidAmount):
		return fiber.StatusBadRequest, codeValidation
	}

	return fiber.StatusInternalServerError, codeInternal
}

// writeError renders a service error. Internal errors are logged, never echoed.
func (h *Handler) writeError(c *fiber.Ctx, err error) error {
	status, code := classify(err)

	resp := errorResponse{Error: code}
	if code == codeInternal {
		h.logger.Error().Err(err).Str("path", c.Path()).Msg("unhandled service error")
	} else {
		resp.Detail = err.Error()
	}

	out, mErr := h.messaging.GetErrorMessage(c.UserContext(), &messaging.GetErrorMessageInput{ErrorType: code})
	if mErr == nil {
		resp.Message = out.Message
	}

	return c.Status(status).JSON(resp)
}

func badRequest(c *fiber.Ctx, detail string) error {
	return c.Status(fiber.StatusBadRequest).JSON(errorResponse{
		Error:   codeValidation,
		Message: "The request is invalid.",
		Detail:  detail,
	})
}

// handleFiberError renders routing errors such as unknown paths in the API shape
func (h *Handler) handleFiberError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := codeInternal
		switch fe.Code {
		case fiber.StatusNotFound, fiber.StatusMethodNotAllowed:
			code = codeNotFound
		case fiber.StatusBadRequest, fiber.StatusRequestEntityTooLarge:
			code = codeValidation
		}
		return c.Status(fe.Code).JSON(errorResponse{Error: code, Message: fe.Message})
	}

	return h.writeError(c, err)
}

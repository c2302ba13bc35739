package http

import (
	"github.com/KirkDiggler/pkbattle/internal/services/gift"
	"github.com/gofiber/fiber/v2"
)

type creditRequest struct {
	Amount    int64  `json:"amount"`
	Reference string `json:"reference"`
}

func (h *Handler) creditWallet(c *fiber.Ctx) error {
	var req creditRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body must be a JSON object")
	}

	out, err := h.gifts.CreditCoins(c.UserContext(), &gift.CreditCoinsInput{
		UserID:    c.Params("userId"),
		Amount:    req.Amount,
		Reference: req.Reference,
	})
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"wallet":      out.Wallet,
		"transaction": out.Transaction,
	})
}

func (h *Handler) getWallet(c *fiber.Ctx) error {
	out, err := h.gifts.GetWallet(c.UserContext(), &gift.GetWalletInput{
		UserID:           c.Params("userId"),
		TransactionLimit: c.QueryInt("transactions", 20),
	})
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"wallet":       out.Wallet,
		"transactions": out.Transactions,
	})
}

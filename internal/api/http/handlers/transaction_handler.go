package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/service"
)

// TransactionHandler manages the requester's ledger endpoints. Every route is gated.
type TransactionHandler struct {
	service  *service.TransactionService
	validate *Validator
}

// NewTransactionHandler constructs handler.
func NewTransactionHandler(transactionService *service.TransactionService, validate *Validator) *TransactionHandler {
	return &TransactionHandler{service: transactionService, validate: validate}
}

// Create POST /api/transactions.
func (h *TransactionHandler) Create(c *fiber.Ctx, requester auth.Requester) error {
	var req dto.CreateTransactionRequest
	if err := h.validate.Bind(c, &req); err != nil {
		return err
	}
	tx, err := h.service.Create(c.UserContext(), requester, service.TransactionCreateInput{
		Type:        req.Type,
		Amount:      *req.Amount,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTransactionResponse(tx)})
}

// List GET /api/transactions.
func (h *TransactionHandler) List(c *fiber.Ctx, requester auth.Requester) error {
	txs, err := h.service.List(c.UserContext(), requester)
	if err != nil {
		return err
	}
	items := make([]dto.TransactionResponse, 0, len(txs))
	for i := range txs {
		items = append(items, dto.NewTransactionResponse(&txs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /api/transactions/:id.
func (h *TransactionHandler) Get(c *fiber.Ctx, requester auth.Requester) error {
	tx, err := h.service.Get(c.UserContext(), requester, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTransactionResponse(tx)})
}

// Delete DELETE /api/transactions/:id.
func (h *TransactionHandler) Delete(c *fiber.Ctx, requester auth.Requester) error {
	if err := h.service.Delete(c.UserContext(), requester, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Transaction deleted"})
}

package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/eaglebank/ledger-service/internal/command"
	"github.com/eaglebank/ledger-service/internal/middleware"
	"github.com/eaglebank/ledger-service/internal/models"
	"github.com/eaglebank/ledger-service/internal/store"
)

// Transferrer defines the transfer operation used by TransferHandler.
type Transferrer interface {
	Transfer(ctx context.Context, fromID, toID int, amount decimal.Decimal) (*models.TransferResult, error)
}

// TransferHandler handles fund-transfer HTTP requests.
type TransferHandler struct {
	transfers Transferrer
}

type TransferRequest struct {
	FromAccountID int             `json:"fromAccountId" validate:"required,gt=0"`
	ToAccountID   int             `json:"toAccountId" validate:"required,gt=0"`
	Amount        decimal.Decimal `json:"amount"`
}

func NewTransferHandler(transfers Transferrer) *TransferHandler {
	return &TransferHandler{transfers: transfers}
}

func (h *TransferHandler) CreateTransfer(c *gin.Context) {
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	result, err := h.transfers.Transfer(c.Request.Context(), req.FromAccountID, req.ToAccountID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, command.ErrInvalidAmount):
			middleware.RespondWithError(c, http.StatusBadRequest, "Transfer amount must be greater than zero")
		case errors.Is(err, command.ErrAccountNotFound):
			middleware.RespondWithError(c, http.StatusNotFound, "Account not found")
		case errors.Is(err, command.ErrInsufficientBalance):
			middleware.RespondWithError(c, http.StatusUnprocessableEntity, "Insufficient balance")
		case errors.Is(err, store.ErrUnavailable):
			middleware.RespondWithError(c, http.StatusServiceUnavailable, "Storage temporarily unavailable")
		default:
			middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to execute transfer")
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/eaglebank/ledger-service/internal/command"
	"github.com/eaglebank/ledger-service/internal/models"
	"github.com/eaglebank/ledger-service/internal/store"
)

type mockTransferrer struct {
	transferFn func(fromID, toID int, amount decimal.Decimal) (*models.TransferResult, error)
}

func (m *mockTransferrer) Transfer(_ context.Context, fromID, toID int, amount decimal.Decimal) (*models.TransferResult, error) {
	if m.transferFn != nil {
		return m.transferFn(fromID, toID, amount)
	}
	return nil, fmt.Errorf("not configured")
}

func newTransferTestRouter(transfers Transferrer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewTransferHandler(transfers)
	r.POST("/v1/transfers", h.CreateTransfer)
	return r
}

var aTestTransferResult = &models.TransferResult{
	TransferID:    "trf-abc1234567",
	FromAccountID: 1,
	ToAccountID:   2,
	Amount:        decimal.NewFromInt(30),
	FromBalance:   decimal.NewFromInt(70),
	ToBalance:     decimal.NewFromInt(80),
}

func aValidTransferBody() map[string]interface{} {
	return map[string]interface{}{"fromAccountId": 1, "toAccountId": 2, "amount": "30"}
}

func TestCreateTransfer(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		transferFn     func(fromID, toID int, amount decimal.Decimal) (*models.TransferResult, error)
		expectedStatus int
	}{
		{
			name: "success - funds moved atomically",
			body: aValidTransferBody(),
			transferFn: func(fromID, toID int, amount decimal.Decimal) (*models.TransferResult, error) {
				return aTestTransferResult, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "bad request - non-positive amount",
			body: map[string]interface{}{"fromAccountId": 1, "toAccountId": 2, "amount": "0"},
			transferFn: func(fromID, toID int, amount decimal.Decimal) (*models.TransferResult, error) {
				return nil, fmt.Errorf("%w: got %s", command.ErrInvalidAmount, amount)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad request - missing account ids",
			body:           map[string]interface{}{"amount": "30"},
			transferFn:     nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "not found - source account absent",
			body: aValidTransferBody(),
			transferFn: func(fromID, toID int, amount decimal.Decimal) (*models.TransferResult, error) {
				return nil, fmt.Errorf("account %d: %w", fromID, command.ErrAccountNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "unprocessable - insufficient balance",
			body: aValidTransferBody(),
			transferFn: func(fromID, toID int, amount decimal.Decimal) (*models.TransferResult, error) {
				return nil, fmt.Errorf("account %d holds 70, transfer needs %s: %w", fromID, amount, command.ErrInsufficientBalance)
			},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "service unavailable - store down",
			body: aValidTransferBody(),
			transferFn: func(fromID, toID int, amount decimal.Decimal) (*models.TransferResult, error) {
				return nil, fmt.Errorf("begin transaction: %w", store.ErrUnavailable)
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTransferTestRouter(&mockTransferrer{transferFn: tt.transferFn})
			w := doRequest(router, http.MethodPost, "/v1/transfers", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

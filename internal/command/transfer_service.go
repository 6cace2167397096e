package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/eaglebank/ledger-service/internal/events"
	"github.com/eaglebank/ledger-service/internal/models"
	"github.com/eaglebank/ledger-service/internal/store"
	"github.com/eaglebank/ledger-service/internal/utils"
)

// EventPublisher is the write-side view of the event bus.
type EventPublisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// AccountRepository is the transfer-side view of account persistence:
// find-by-id and save, participating in any transaction carried by the
// context.
type AccountRepository interface {
	FindByID(ctx context.Context, id int) (*models.Account, error)
	Save(ctx context.Context, account *models.Account) error
}

// TransferService executes atomic fund transfers between two accounts.
// Both mutations happen inside one unit of work: a reader can never observe
// the debit without the matching credit.
type TransferService struct {
	accounts  AccountRepository
	tm        store.TxManager
	publisher EventPublisher
	logger    *zap.Logger
}

func NewTransferService(
	accounts AccountRepository,
	tm store.TxManager,
	publisher EventPublisher,
	logger *zap.Logger,
) *TransferService {
	return &TransferService{
		accounts:  accounts,
		tm:        tm,
		publisher: publisher,
		logger:    logger,
	}
}

// Transfer debits fromID and credits toID by amount inside one transaction.
// A transfer to the same account is a permitted no-op that still requires
// the balance to cover the amount. Failures roll back with no partial
// effect; the core never retries a transient store failure.
func (s *TransferService) Transfer(ctx context.Context, fromID, toID int, amount decimal.Decimal) (*models.TransferResult, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidAmount, amount)
	}

	var result *models.TransferResult
	err := store.WithinTx(ctx, s.tm, func(txCtx context.Context) error {
		from, err := s.accounts.FindByID(txCtx, fromID)
		if err != nil {
			return accountError(fromID, err)
		}
		to := from
		if fromID != toID {
			if to, err = s.accounts.FindByID(txCtx, toID); err != nil {
				return accountError(toID, err)
			}
		}

		if from.Balance.LessThan(amount) {
			return fmt.Errorf("account %d holds %s, transfer needs %s: %w",
				fromID, from.Balance, amount, ErrInsufficientBalance)
		}

		if fromID == toID {
			result = newTransferResult(fromID, toID, amount, from.Balance, from.Balance)
			return nil
		}

		from.Balance = from.Balance.Sub(amount)
		to.Balance = to.Balance.Add(amount)

		if err := s.accounts.Save(txCtx, from); err != nil {
			return err
		}
		if err := s.accounts.Save(txCtx, to); err != nil {
			return err
		}

		result = newTransferResult(fromID, toID, amount, from.Balance, to.Balance)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.publisher.Publish(ctx, events.TransferEventsStream, events.TransferCompleted, events.TransferCompletedEvent{
		TransferID:    result.TransferID,
		FromAccountID: result.FromAccountID,
		ToAccountID:   result.ToAccountID,
		Amount:        result.Amount,
		FromBalance:   result.FromBalance,
		ToBalance:     result.ToBalance,
	}); err != nil {
		s.logger.Warn("failed to publish transfer.completed event",
			zap.String("transferId", result.TransferID), zap.Error(err))
	}

	s.logger.Info("transfer completed",
		zap.String("transferId", result.TransferID),
		zap.Int("fromAccountId", fromID),
		zap.Int("toAccountId", toID),
		zap.String("amount", amount.String()),
	)
	return result, nil
}

func newTransferResult(fromID, toID int, amount, fromBalance, toBalance decimal.Decimal) *models.TransferResult {
	return &models.TransferResult{
		TransferID:    utils.GenerateID("trf"),
		FromAccountID: fromID,
		ToAccountID:   toID,
		Amount:        amount,
		FromBalance:   fromBalance,
		ToBalance:     toBalance,
	}
}

// accountError translates expected absence into the transfer taxonomy and
// passes infrastructure failures through unchanged.
func accountError(id int, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("account %d: %w", id, ErrAccountNotFound)
	}
	return err
}

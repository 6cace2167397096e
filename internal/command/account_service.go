package command

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/eaglebank/ledger-service/internal/cqrs"
	"github.com/eaglebank/ledger-service/internal/events"
	"github.com/eaglebank/ledger-service/internal/models"
	"github.com/eaglebank/ledger-service/internal/store"
)

// AccountViewCache is the write-side view of the account read model.
type AccountViewCache interface {
	CacheAccountView(ctx context.Context, view *models.AccountView)
	IsTransferProcessed(ctx context.Context, transferID string) bool
	MarkTransferProcessed(ctx context.Context, transferID string)
}

// AccountService writes account state and keeps the read model in sync.
type AccountService struct {
	accounts  store.Store[int, models.Account]
	readRepo  AccountViewCache
	publisher EventPublisher
	logger    *zap.Logger
}

func NewAccountService(
	accounts store.Store[int, models.Account],
	readRepo AccountViewCache,
	publisher EventPublisher,
	logger *zap.Logger,
) *AccountService {
	return &AccountService{
		accounts:  accounts,
		readRepo:  readRepo,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *AccountService) CreateAccount(ctx context.Context, cmd cqrs.CreateAccountCommand) (*models.Account, error) {
	if cmd.Balance.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: got %s", ErrNegativeBalance, cmd.Balance)
	}

	account := &models.Account{Name: cmd.Name, Balance: cmd.Balance}
	if _, err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	s.readRepo.CacheAccountView(ctx, accountToView(account))
	if err := s.publisher.Publish(ctx, events.AccountEventsStream, events.AccountCreated, events.AccountCreatedEvent{
		AccountID: account.ID,
		Name:      account.Name,
		Balance:   account.Balance,
	}); err != nil {
		s.logger.Warn("failed to publish account.created event", zap.Int("accountId", account.ID), zap.Error(err))
	}
	return account, nil
}

// HandleTransferEvent reacts to transfer.completed events by refreshing the
// account read model. Idempotent: duplicate delivery of the same transfer ID
// is detected via Redis and skipped.
func (s *AccountService) HandleTransferEvent(ctx context.Context, event events.Event) error {
	if event.Type != events.TransferCompleted {
		return nil
	}

	dataBytes, err := json.Marshal(event.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal transfer.completed event data: %w", err)
	}
	var data events.TransferCompletedEvent
	if err := json.Unmarshal(dataBytes, &data); err != nil {
		return fmt.Errorf("failed to unmarshal transfer.completed event: %w", err)
	}

	if s.readRepo.IsTransferProcessed(ctx, data.TransferID) {
		s.logger.Debug("transfer already projected, skipping duplicate event",
			zap.String("transferId", data.TransferID))
		return nil
	}

	for _, id := range []int{data.FromAccountID, data.ToAccountID} {
		account, err := s.accounts.Fetch(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to refresh account view: %w", err)
		}
		s.readRepo.CacheAccountView(ctx, accountToView(account))
	}

	s.readRepo.MarkTransferProcessed(ctx, data.TransferID)
	return nil
}

// accountToView converts the write model to a read view model.
func accountToView(a *models.Account) *models.AccountView {
	return &models.AccountView{
		ID:      a.ID,
		Name:    a.Name,
		Balance: a.Balance,
	}
}

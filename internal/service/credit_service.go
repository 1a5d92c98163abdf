package service

import (
	"context"
	"fmt"

	"ai-modelgen-be/internal/dto"
	"ai-modelgen-be/internal/entity"
	"ai-modelgen-be/internal/pkg/logger"
	"ai-modelgen-be/internal/pkg/mailer"
	"ai-modelgen-be/internal/pkg/serverutils"
	"ai-modelgen-be/internal/repository/specification"
	"ai-modelgen-be/internal/repository/unitofwork"
	"ai-modelgen-be/pkg/events"
)

const defaultHistoryLimit = 20

// SignupBonusDescription keys the one-time signup grant in the ledger. The
// duplicate check in Initialize matches on type EARN plus this description.
const SignupBonusDescription = "Signup bonus"

// EventPublisher is the outbound event bus. pkg/nats.Publisher satisfies it;
// tests swap in a recorder.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type ICreditService interface {
	// Initialize creates the ledger head and grants the signup bonus exactly
	// once, no matter how many times or how concurrently it is called.
	Initialize(ctx context.Context, userId, email string) (*dto.InitializeCreditsResponse, error)

	Balance(ctx context.Context, userId string) (*dto.BalanceResponse, error)
	CanAfford(ctx context.Context, userId string, cost int) (bool, error)

	// Spend atomically deducts credits and appends the ledger row. Concurrent
	// spends for one user serialize on the head's row lock.
	Spend(ctx context.Context, req *dto.SpendCreditsRequest) (*dto.SpendCreditsResponse, error)

	// Credit adds credits (EARN, BONUS or REFUND), creating the head lazily.
	Credit(ctx context.Context, userId string, amount int, txnType entity.TransactionType, description string, metadata map[string]interface{}) (*dto.TransactionResponse, error)
	Refund(ctx context.Context, userId string, amount int, description string) (*dto.TransactionResponse, error)

	History(ctx context.Context, userId string, limit int) (*dto.CreditHistoryResponse, error)
	Stats(ctx context.Context, userId string) (*dto.CreditStatsResponse, error)
}

type CreditService struct {
	uowFactory  unitofwork.RepositoryFactory
	publisher   EventPublisher
	emailSvc    mailer.IEmailService
	logger      logger.ILogger
	signupBonus int
}

func NewCreditService(
	uowFactory unitofwork.RepositoryFactory,
	publisher EventPublisher,
	emailSvc mailer.IEmailService,
	logger logger.ILogger,
	signupBonus int,
) ICreditService {
	return &CreditService{
		uowFactory:  uowFactory,
		publisher:   publisher,
		emailSvc:    emailSvc,
		logger:      logger,
		signupBonus: signupBonus,
	}
}

func (s *CreditService) Initialize(ctx context.Context, userId, email string) (*dto.InitializeCreditsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = uow.Rollback() }()

	if err := uow.UserRepository().Upsert(ctx, &entity.User{Id: userId, Email: email}); err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	// An existing head means the account is already live (initialized earlier,
	// or lazily created by a credit); it is returned unchanged, never
	// re-granted.
	head, err := uow.CreditRepository().FindHeadForUpdate(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("failed to lock credit head: %w", err)
	}
	if head != nil {
		if err := uow.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit: %w", err)
		}
		return &dto.InitializeCreditsResponse{Credits: head.CurrentCredits}, nil
	}

	// The unique constraint on user_id makes this race-safe: a concurrent
	// initialize inserts nothing, and the row lock below serializes the
	// bonus check.
	if err := uow.CreditRepository().CreateHeadIfAbsent(ctx, &entity.UserCredits{UserId: userId}); err != nil {
		return nil, fmt.Errorf("failed to create credit head: %w", err)
	}

	head, err = uow.CreditRepository().FindHeadForUpdate(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("failed to lock credit head: %w", err)
	}
	if head == nil {
		return nil, fmt.Errorf("credit head missing after create for user %s", userId)
	}

	grantCount, err := uow.CreditRepository().CountTransactions(ctx,
		specification.OwnedBy{UserID: userId},
		specification.ByTransactionType{Type: string(entity.TransactionEarn)},
		specification.ByDescription{Description: SignupBonusDescription},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing bonus: %w", err)
	}
	if grantCount > 0 {
		// A concurrent first call won the race and granted already.
		if err := uow.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit: %w", err)
		}
		return &dto.InitializeCreditsResponse{Credits: head.CurrentCredits}, nil
	}

	head.CurrentCredits += s.signupBonus
	head.TotalEarned += s.signupBonus
	if err := uow.CreditRepository().UpdateHead(ctx, head); err != nil {
		return nil, fmt.Errorf("failed to update credit head: %w", err)
	}

	txn := &entity.CreditTransaction{
		UserId:       userId,
		Amount:       s.signupBonus,
		Type:         entity.TransactionEarn,
		Description:  SignupBonusDescription,
		BalanceAfter: head.CurrentCredits,
	}
	if err := uow.CreditRepository().AppendTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to append bonus transaction: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	s.logger.Info("CreditService", "Signup bonus granted", map[string]interface{}{
		"user_id": userId,
		"credits": s.signupBonus,
	})

	s.publishEvent(ctx, events.NewCreditsEarned(userId, s.signupBonus, head.CurrentCredits, string(entity.TransactionEarn)))

	// Best effort; the grant already committed.
	if email != "" {
		if err := s.emailSvc.SendWelcomeEmail(email, s.signupBonus); err != nil {
			s.logger.Warn("CreditService", "Welcome email failed", map[string]interface{}{
				"user_id": userId,
				"error":   err.Error(),
			})
		}
	}

	return &dto.InitializeCreditsResponse{Credits: head.CurrentCredits}, nil
}

// Balance reads the head without locking. An uninitialized user reads as 0.
func (s *CreditService) Balance(ctx context.Context, userId string) (*dto.BalanceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	head, err := uow.CreditRepository().FindHead(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("failed to read balance: %w", err)
	}
	if head == nil {
		return &dto.BalanceResponse{Credits: 0}, nil
	}
	return &dto.BalanceResponse{Credits: head.CurrentCredits}, nil
}

func (s *CreditService) CanAfford(ctx context.Context, userId string, cost int) (bool, error) {
	balance, err := s.Balance(ctx, userId)
	if err != nil {
		return false, err
	}
	return balance.Credits >= cost, nil
}

func (s *CreditService) Spend(ctx context.Context, req *dto.SpendCreditsRequest) (*dto.SpendCreditsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = uow.Rollback() }()

	// Resolve the price inside the transaction; the catalog row is the
	// authority, not any cached value the caller saw.
	serviceType, err := uow.ServiceTypeRepository().FindByName(ctx, req.ServiceType)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve service type: %w", err)
	}
	if serviceType == nil || !serviceType.IsActive {
		return nil, serverutils.BadRequest(fmt.Sprintf("unknown service type: %s", req.ServiceType))
	}
	cost := serviceType.CreditCost

	head, err := uow.CreditRepository().FindHeadForUpdate(ctx, req.UserId)
	if err != nil {
		return nil, fmt.Errorf("failed to lock credit head: %w", err)
	}
	available := 0
	if head != nil {
		available = head.CurrentCredits
	}
	if head == nil || available < cost {
		return nil, serverutils.PaymentRequired("insufficient credits").
			WithDetails(fmt.Sprintf("required %d, available %d", cost, available))
	}

	head.CurrentCredits -= cost
	head.TotalSpent += cost
	if err := uow.CreditRepository().UpdateHead(ctx, head); err != nil {
		return nil, fmt.Errorf("failed to update credit head: %w", err)
	}

	// Ledger amounts are signed; a debit is recorded negative so that
	// replaying the log sums back to the head balance.
	txn := &entity.CreditTransaction{
		UserId:        req.UserId,
		ServiceTypeId: &serviceType.Id,
		Amount:        -cost,
		Type:          entity.TransactionSpend,
		Description:   fmt.Sprintf("Used %s service", serviceType.Name),
		BalanceAfter:  head.CurrentCredits,
		Metadata:      req.Metadata,
	}
	if err := uow.CreditRepository().AppendTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to append spend transaction: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit spend: %w", err)
	}

	s.publishEvent(ctx, events.NewCreditsSpent(req.UserId, cost, head.CurrentCredits, serviceType.Name))

	return &dto.SpendCreditsResponse{
		Transaction:      toTransactionResponse(txn),
		RemainingCredits: head.CurrentCredits,
	}, nil
}

func (s *CreditService) Credit(ctx context.Context, userId string, amount int, txnType entity.TransactionType, description string, metadata map[string]interface{}) (*dto.TransactionResponse, error) {
	if amount <= 0 {
		return nil, serverutils.BadRequest("credit amount must be positive")
	}
	if !txnType.Valid() || txnType == entity.TransactionSpend {
		return nil, serverutils.BadRequest(fmt.Sprintf("invalid credit transaction type: %s", txnType))
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = uow.Rollback() }()

	if err := uow.CreditRepository().CreateHeadIfAbsent(ctx, &entity.UserCredits{UserId: userId}); err != nil {
		return nil, fmt.Errorf("failed to create credit head: %w", err)
	}
	head, err := uow.CreditRepository().FindHeadForUpdate(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("failed to lock credit head: %w", err)
	}
	if head == nil {
		return nil, fmt.Errorf("credit head missing after create for user %s", userId)
	}

	head.CurrentCredits += amount
	head.TotalEarned += amount
	if err := uow.CreditRepository().UpdateHead(ctx, head); err != nil {
		return nil, fmt.Errorf("failed to update credit head: %w", err)
	}

	txn := &entity.CreditTransaction{
		UserId:       userId,
		Amount:       amount,
		Type:         txnType,
		Description:  description,
		BalanceAfter: head.CurrentCredits,
		Metadata:     metadata,
	}
	if err := uow.CreditRepository().AppendTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to append credit transaction: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit credit: %w", err)
	}

	s.publishEvent(ctx, events.NewCreditsEarned(userId, amount, head.CurrentCredits, string(txnType)))

	response := toTransactionResponse(txn)
	return &response, nil
}

func (s *CreditService) Refund(ctx context.Context, userId string, amount int, description string) (*dto.TransactionResponse, error) {
	return s.Credit(ctx, userId, amount, entity.TransactionRefund, description, nil)
}

func (s *CreditService) History(ctx context.Context, userId string, limit int) (*dto.CreditHistoryResponse, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	txns, err := uow.CreditRepository().FindTransactions(ctx,
		specification.OwnedBy{UserID: userId},
		specification.NewestFirst{},
		specification.Limit{Limit: limit},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	history := make([]dto.TransactionResponse, 0, len(txns))
	for _, txn := range txns {
		history = append(history, toTransactionResponse(txn))
	}
	return &dto.CreditHistoryResponse{History: history}, nil
}

func (s *CreditService) Stats(ctx context.Context, userId string) (*dto.CreditStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	head, err := uow.CreditRepository().FindHead(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("failed to read credit head: %w", err)
	}

	stats := &dto.CreditStatsResponse{RecentTransactions: []dto.TransactionResponse{}}
	if head != nil {
		stats.CurrentCredits = head.CurrentCredits
		stats.TotalEarned = head.TotalEarned
		stats.TotalSpent = head.TotalSpent
	}

	recent, err := uow.CreditRepository().FindTransactions(ctx,
		specification.OwnedBy{UserID: userId},
		specification.NewestFirst{},
		specification.Limit{Limit: 5},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read recent transactions: %w", err)
	}
	for _, txn := range recent {
		stats.RecentTransactions = append(stats.RecentTransactions, toTransactionResponse(txn))
	}
	return stats, nil
}

func (s *CreditService) publishEvent(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("CreditService", "Event publish failed", map[string]interface{}{
			"event": event.EventType(),
			"error": err.Error(),
		})
	}
}

func toTransactionResponse(txn *entity.CreditTransaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		Id:            txn.Id,
		Amount:        txn.Amount,
		Type:          string(txn.Type),
		Description:   txn.Description,
		BalanceAfter:  txn.BalanceAfter,
		ServiceTypeId: txn.ServiceTypeId,
		Metadata:      txn.Metadata,
		CreatedAt:     txn.CreatedAt,
	}
}

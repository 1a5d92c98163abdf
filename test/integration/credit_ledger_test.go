package integration

import (
	"context"
	"log"
	"os"
	"sync"
	"testing"

	"ai-modelgen-be/internal/dto"
	"ai-modelgen-be/internal/entity"
	"ai-modelgen-be/internal/pkg/mailer"
	"ai-modelgen-be/internal/repository/specification"
	"ai-modelgen-be/internal/repository/unitofwork"
	"ai-modelgen-be/internal/service"
	"ai-modelgen-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopMailer struct{}

func (nopMailer) SendWelcomeEmail(to string, bonusCredits int) error { return nil }

var _ mailer.IEmailService = nopMailer{}

func setupLedger(t *testing.T) (service.ICreditService, unitofwork.RepositoryFactory) {
	t.Helper()

	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}
	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)

	// The ledger tests need a priced service to spend against.
	uow := uowFactory.NewUnitOfWork(context.Background())
	err = uow.ServiceTypeRepository().UpsertByName(context.Background(), &entity.ServiceType{
		Name:       entity.ServiceTextTo3DPreview,
		CreditCost: 5,
		IsActive:   true,
	})
	require.NoError(t, err)

	creditSvc := service.NewCreditService(uowFactory, nil, nopMailer{}, testLogger{t}, 45)
	return creditSvc, uowFactory
}

type testLogger struct{ t *testing.T }

func (l testLogger) Debug(module, message string, details map[string]interface{}) {}
func (l testLogger) Info(module, message string, details map[string]interface{}) {
	l.t.Logf("[%s] %s %v", module, message, details)
}
func (l testLogger) Warn(module, message string, details map[string]interface{}) {
	l.t.Logf("[%s] WARN %s %v", module, message, details)
}
func (l testLogger) Error(module, message string, details map[string]interface{}) {
	l.t.Logf("[%s] ERROR %s %v", module, message, details)
}
func (l testLogger) Sync() error { return nil }

func TestLedgerLifecycle(t *testing.T) {
	creditSvc, uowFactory := setupLedger(t)
	ctx := context.Background()
	userId := "it-user-" + uuid.NewString()
	email := userId + "@example.com"

	t.Run("Initialize grants the signup bonus idempotently", func(t *testing.T) {
		res, err := creditSvc.Initialize(ctx, userId, email)
		require.NoError(t, err)
		assert.Equal(t, 45, res.Credits)

		res, err = creditSvc.Initialize(ctx, userId, email)
		require.NoError(t, err)
		assert.Equal(t, 45, res.Credits)

		count, err := uowFactory.NewUnitOfWork(ctx).CreditRepository().CountTransactions(ctx,
			specification.OwnedBy{UserID: userId},
			specification.ByTransactionType{Type: string(entity.TransactionEarn)},
			specification.ByDescription{Description: service.SignupBonusDescription},
		)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Spend deducts and appends exactly one row", func(t *testing.T) {
		res, err := creditSvc.Spend(ctx, &dto.SpendCreditsRequest{
			UserId:      userId,
			ServiceType: entity.ServiceTextTo3DPreview,
			Metadata:    map[string]interface{}{"task_id": "it-task-1"},
		})
		require.NoError(t, err)
		assert.Equal(t, 40, res.RemainingCredits)
		assert.Equal(t, -5, res.Transaction.Amount)
		assert.Equal(t, 40, res.Transaction.BalanceAfter)
	})

	t.Run("Concurrent spends never overdraw", func(t *testing.T) {
		// 40 credits left; 10 concurrent 5-credit spends, at most 8 can win.
		var wg sync.WaitGroup
		successes := make(chan struct{}, 10)
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := creditSvc.Spend(ctx, &dto.SpendCreditsRequest{
					UserId:      userId,
					ServiceType: entity.ServiceTextTo3DPreview,
				})
				if err == nil {
					successes <- struct{}{}
				}
			}()
		}
		wg.Wait()
		close(successes)

		won := 0
		for range successes {
			won++
		}
		assert.Equal(t, 8, won)

		balance, err := creditSvc.Balance(ctx, userId)
		require.NoError(t, err)
		assert.Equal(t, 0, balance.Credits)
	})

	t.Run("Spend at zero balance is rejected without a ledger row", func(t *testing.T) {
		before, err := uowFactory.NewUnitOfWork(ctx).CreditRepository().CountTransactions(ctx,
			specification.OwnedBy{UserID: userId},
		)
		require.NoError(t, err)

		_, err = creditSvc.Spend(ctx, &dto.SpendCreditsRequest{
			UserId:      userId,
			ServiceType: entity.ServiceTextTo3DPreview,
		})
		require.Error(t, err)

		after, err := uowFactory.NewUnitOfWork(ctx).CreditRepository().CountTransactions(ctx,
			specification.OwnedBy{UserID: userId},
		)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("Head invariant holds after a full round trip", func(t *testing.T) {
		_, err := creditSvc.Refund(ctx, userId, 5, "Refund for failed generation")
		require.NoError(t, err)

		head, err := uowFactory.NewUnitOfWork(ctx).CreditRepository().FindHead(ctx, userId)
		require.NoError(t, err)
		require.NotNil(t, head)
		assert.Equal(t, head.CurrentCredits, head.TotalEarned-head.TotalSpent)
		assert.Equal(t, 5, head.CurrentCredits)
	})

	t.Run("History is newest first", func(t *testing.T) {
		history, err := creditSvc.History(ctx, userId, 0)
		require.NoError(t, err)
		require.NotEmpty(t, history.History)
		for i := 1; i < len(history.History); i++ {
			assert.False(t, history.History[i].CreatedAt.After(history.History[i-1].CreatedAt))
		}
		// The refund is the latest entry.
		assert.Equal(t, string(entity.TransactionRefund), history.History[0].Type)
	})
}

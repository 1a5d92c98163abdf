package service

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"fmt"

	"ai-modelgen-be/internal/config"
	"ai-modelgen-be/internal/dto"
	"ai-modelgen-be/internal/entity"
	"ai-modelgen-be/internal/pkg/logger"
	"ai-modelgen-be/internal/pkg/serverutils"
	"ai-modelgen-be/internal/repository/specification"
	"ai-modelgen-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

type ITopupService interface {
	Packages(ctx context.Context) ([]dto.CreditPackageResponse, error)

	// Checkout opens a Midtrans Snap session for a package and records the
	// pending purchase.
	Checkout(ctx context.Context, userId, email string, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)

	// HandleNotification processes the Midtrans webhook. Settlement credits
	// the ledger exactly once, guarded by the purchase status.
	HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error
}

type TopupService struct {
	uowFactory unitofwork.RepositoryFactory
	creditSvc  ICreditService
	snapClient snap.Client
	serverKey  string
	logger     logger.ILogger
}

func NewTopupService(
	uowFactory unitofwork.RepositoryFactory,
	creditSvc ICreditService,
	cfg config.MidtransConfig,
	logger logger.ILogger,
) ITopupService {
	env := midtrans.Sandbox
	if cfg.IsProduction {
		env = midtrans.Production
	}
	var client snap.Client
	client.New(cfg.ServerKey, env)

	return &TopupService{
		uowFactory: uowFactory,
		creditSvc:  creditSvc,
		snapClient: client,
		serverKey:  cfg.ServerKey,
		logger:     logger,
	}
}

func (s *TopupService) Packages(ctx context.Context) ([]dto.CreditPackageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	packages, err := uow.TopupRepository().FindActivePackages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}

	responses := make([]dto.CreditPackageResponse, 0, len(packages))
	for _, pkg := range packages {
		responses = append(responses, dto.CreditPackageResponse{
			Id:        pkg.Id,
			Name:      pkg.Name,
			Credits:   pkg.Credits,
			Price:     pkg.Price,
			SortOrder: pkg.SortOrder,
		})
	}
	return responses, nil
}

func (s *TopupService) Checkout(ctx context.Context, userId, email string, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	pkg, err := uow.TopupRepository().FindPackage(ctx, req.PackageId)
	if err != nil {
		return nil, fmt.Errorf("failed to look up package: %w", err)
	}
	if pkg == nil || !pkg.IsActive {
		return nil, serverutils.NotFound("package not found")
	}

	orderId := fmt.Sprintf("topup-%s", uuid.NewString())

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderId,
			GrossAmt: int64(pkg.Price),
		},
		CustomerDetail: &midtrans.CustomerDetails{Email: email},
		Items: &[]midtrans.ItemDetails{{
			ID:    pkg.Id.String(),
			Name:  pkg.Name,
			Price: int64(pkg.Price),
			Qty:   1,
		}},
	}
	snapResp, snapErr := s.snapClient.CreateTransaction(snapReq)
	if snapErr != nil {
		return nil, fmt.Errorf("failed to create payment session: %w", snapErr)
	}

	purchase := &entity.CreditPurchase{
		OrderId:     orderId,
		UserId:      userId,
		PackageId:   pkg.Id,
		Credits:     pkg.Credits,
		GrossAmount: pkg.Price,
		Status:      entity.PurchasePending,
	}
	if err := uow.TopupRepository().CreatePurchase(ctx, purchase); err != nil {
		return nil, fmt.Errorf("failed to record purchase: %w", err)
	}

	s.logger.Info("TopupService", "Checkout session created", map[string]interface{}{
		"user_id":  userId,
		"order_id": orderId,
		"credits":  pkg.Credits,
	})

	return &dto.CheckoutResponse{
		OrderId:     orderId,
		Token:       snapResp.Token,
		RedirectUrl: snapResp.RedirectURL,
	}, nil
}

func (s *TopupService) HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error {
	if !s.validSignature(req) {
		return serverutils.Forbidden("invalid signature")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	purchase, err := uow.TopupRepository().FindPurchaseByOrderId(ctx, req.OrderId)
	if err != nil {
		return fmt.Errorf("failed to look up purchase: %w", err)
	}
	if purchase == nil {
		return serverutils.NotFound("unknown order")
	}
	if purchase.Status == entity.PurchaseSettled {
		// Midtrans retries notifications; the credit already landed.
		return nil
	}

	switch req.TransactionStatus {
	case "capture", "settlement":
		if req.FraudStatus == "challenge" || req.FraudStatus == "deny" {
			return nil
		}
		// The ledger is credited before the purchase row is closed. If the
		// status write below fails, Midtrans retries land here again and the
		// order-keyed description guard keeps the credit from doubling.
		description := fmt.Sprintf("Credit top-up (order %s)", req.OrderId)
		credited, err := uow.CreditRepository().CountTransactions(ctx,
			specification.OwnedBy{UserID: purchase.UserId},
			specification.ByDescription{Description: description},
		)
		if err != nil {
			return fmt.Errorf("failed to check existing credit: %w", err)
		}
		if credited == 0 {
			_, err := s.creditSvc.Credit(ctx, purchase.UserId, purchase.Credits, entity.TransactionEarn,
				description,
				map[string]interface{}{"order_id": req.OrderId},
			)
			if err != nil {
				return fmt.Errorf("failed to credit purchase: %w", err)
			}
		}
		if err := uow.TopupRepository().UpdatePurchaseStatus(ctx, req.OrderId, entity.PurchaseSettled, &req.TransactionId); err != nil {
			return fmt.Errorf("failed to settle purchase: %w", err)
		}
		s.logger.Info("TopupService", "Purchase settled", map[string]interface{}{
			"order_id": req.OrderId,
			"user_id":  purchase.UserId,
			"credits":  purchase.Credits,
		})
	case "deny", "cancel", "expire", "failure":
		if err := uow.TopupRepository().UpdatePurchaseStatus(ctx, req.OrderId, entity.PurchaseFailed, &req.TransactionId); err != nil {
			return fmt.Errorf("failed to mark purchase failed: %w", err)
		}
	}
	return nil
}

// validSignature checks the Midtrans notification signature:
// sha512(order_id + status_code + gross_amount + server_key).
func (s *TopupService) validSignature(req *dto.MidtransWebhookRequest) bool {
	raw := req.OrderId + req.StatusCode + req.GrossAmount + s.serverKey
	sum := sha512.Sum512([]byte(raw))
	return hex.EncodeToString(sum[:]) == req.SignatureKey
}

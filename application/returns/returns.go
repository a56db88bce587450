package returns

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stocktech/marketplace/constant"
	"github.com/stocktech/marketplace/model"
	orderrepo "github.com/stocktech/marketplace/repository/order"
	productrepo "github.com/stocktech/marketplace/repository/product"
	returnrepo "github.com/stocktech/marketplace/repository/returns"
	stockrepo "github.com/stocktech/marketplace/repository/stock"
	transactionrepo "github.com/stocktech/marketplace/repository/transaction"
	txrepo "github.com/stocktech/marketplace/repository/tx"
	"github.com/stocktech/marketplace/thirdparty/rabbitmq"
	"github.com/stocktech/marketplace/utils/errors"
	"github.com/stocktech/marketplace/utils/logger"
	"go.uber.org/zap"
)

// ReturnApp drives the exchange workflow: the buyer requests, the seller
// responds and ships a replacement, the defective part travels back, the
// seller validates it, and a rejected validation bounces the decision back to
// the buyer. Each step only moves forward from the exact status the previous
// step left behind.
type ReturnApp interface {
	Request(ctx context.Context, identity *model.Identity, req *model.RequestReturnRequest) (*model.ProductReturn, error)
	Respond(ctx context.Context, identity *model.Identity, req *model.RespondReturnRequest) (*model.ProductReturn, error)
	ConfirmDefectiveReceived(ctx context.Context, identity *model.Identity, returnID uint64) (*model.ProductReturn, error)
	ValidateExchange(ctx context.Context, identity *model.Identity, req *model.ValidateExchangeRequest) (*model.ProductReturn, error)
	ResolveRejectedExchange(ctx context.Context, identity *model.Identity, req *model.ResolveExchangeRequest) (*model.ProductReturn, error)
	List(ctx context.Context, identity *model.Identity) ([]model.ProductReturn, error)
}

type returnAppImpl struct {
	txRepo          txrepo.TxRepository
	returnRepo      returnrepo.ReturnRepository
	orderRepo       orderrepo.OrderRepository
	productRepo     productrepo.ProductRepository
	stockRepo       stockrepo.StockRepository
	transactionRepo transactionrepo.TransactionRepository
	dispatcher      rabbitmq.Dispatcher
}

func NewReturnApp(
	txRepo txrepo.TxRepository,
	returnRepo returnrepo.ReturnRepository,
	orderRepo orderrepo.OrderRepository,
	productRepo productrepo.ProductRepository,
	stockRepo stockrepo.StockRepository,
	transactionRepo transactionrepo.TransactionRepository,
	dispatcher rabbitmq.Dispatcher,
) ReturnApp {
	return &returnAppImpl{
		txRepo:          txRepo,
		returnRepo:      returnRepo,
		orderRepo:       orderRepo,
		productRepo:     productRepo,
		stockRepo:       stockRepo,
		transactionRepo: transactionRepo,
		dispatcher:      dispatcher,
	}
}

func newReturnCode() string {
	return "RET-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// Request opens a return for one line of a delivered purchase. Warranty
// eligibility is anchored on the order date and the warranty the line was
// sold with; a product without warranty never expires.
func (s *returnAppImpl) Request(ctx context.Context, identity *model.Identity, req *model.RequestReturnRequest) (*model.ProductReturn, error) {
	order, err := s.orderRepo.GetByID(ctx, req.OrderID)
	if err != nil {
		logger.Error("[Request] get order", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if order == nil {
		return nil, errors.SetCustomErrorMessage(constant.ErrNotFound, "Pedido não encontrado")
	}
	if order.BuyerID != identity.UserID {
		return nil, errors.SetCustomErrorMessage(constant.ErrForbidden, "Apenas o comprador pode solicitar a devolução")
	}

	items, err := s.orderRepo.GetItems(ctx, req.OrderID)
	if err != nil {
		logger.Error("[Request] get items", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	var line *model.OrderItem
	for i := range items {
		if items[i].ProductID == req.ProductID {
			line = &items[i]
			break
		}
	}
	if line == nil {
		return nil, errors.SetCustomErrorMessage(constant.ErrInvalidRequest, "Produto não pertence a este pedido")
	}
	if req.Quantity > line.Quantity {
		return nil, errors.SetCustomErrorMessage(constant.ErrInvalidRequest, "Quantidade maior que a comprada")
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		logger.Error("[Request] get product", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if product == nil {
		return nil, errors.SetCustomErrorMessage(constant.ErrNotFound, "Produto não encontrado")
	}

	var warrantyExpiresAt *time.Time
	withinWarranty := true
	if days, limited := constant.WarrantyDays[line.WarrantyPeriod]; limited {
		expires := order.CreatedAt.AddDate(0, 0, days)
		warrantyExpiresAt = &expires
		withinWarranty = !time.Now().After(expires)
	}
	if !withinWarranty {
		return nil, errors.SetCustomErrorMessage(constant.ErrInvalidRequest, "Produto fora do período de garantia")
	}

	ret := &model.ProductReturn{
		AccountID:         product.AccountID,
		OwnerCPF:          product.OwnerCPF,
		BuyerID:           order.BuyerID,
		SellerID:          order.SellerID,
		OrderID:           order.ID,
		ProductID:         product.ID,
		ReturnCode:        newReturnCode(),
		Reason:            req.Reason,
		Quantity:          req.Quantity,
		Status:            constant.ReturnStatusRequested,
		IsWithinWarranty:  withinWarranty,
		WarrantyExpiresAt: warrantyExpiresAt,
	}

	// Best-effort link to the purchase transaction, for bookkeeping only.
	if txn, err := s.transactionRepo.GetLatestPurchase(ctx, product.ID, order.BuyerID, order.SellerID); err != nil {
		logger.Warn("[Request] get purchase transaction", zap.String("error", err.Error()))
	} else if txn != nil {
		ret.TransactionID = &txn.ID
	}

	id, err := s.returnRepo.Insert(ctx, ret)
	if err != nil {
		logger.Error("[Request] insert return", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	ret.ID = id
	ret.CreatedAt = time.Now()

	if err := s.orderRepo.UpdateStatus(ctx, order.ID, constant.OrderStatusAwaitingExchange, "", ""); err != nil {
		logger.Error("[Request] update order status", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	s.notify(order.SellerID, order.SellerAccountID, constant.EventReturnRequested, ret)
	return ret, nil
}

// Respond records the seller's decision. Approving a replacement reserves one
// from stock immediately, so the buyer cannot be promised a part that was
// sold meanwhile.
func (s *returnAppImpl) Respond(ctx context.Context, identity *model.Identity, req *model.RespondReturnRequest) (*model.ProductReturn, error) {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[Respond] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	defer s.txRepo.RollbackTx(tx)

	ret, err := s.returnRepo.GetByIDTx(ctx, tx, req.ReturnID)
	if err != nil {
		logger.Error("[Respond] get return", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if ret == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	if ret.SellerID != identity.UserID {
		return nil, errors.SetCustomErrorMessage(constant.ErrForbidden, "Apenas o vendedor pode responder à devolução")
	}
	if ret.Status != constant.ReturnStatusRequested {
		return nil, errors.SetCustomErrorMessage(constant.ErrConflict, "Devolução já foi respondida")
	}

	now := time.Now()
	orderStatus := constant.OrderStatusAwaitingExchange
	event := constant.EventReturnResponded

	switch req.Decision {
	case constant.ReturnDecisionReject:
		reason := req.RejectionReason
		if reason == "" {
			reason = "Sem justificativa"
		}
		ret.Status = constant.ReturnStatusRejected
		ret.SellerNotes = req.Notes
		ret.RejectedAt = &now
		ret.RejectionReason = reason
		orderStatus = constant.OrderStatusExchangeRejected

	case constant.ReturnDecisionApproveRefund:
		ret.Status = constant.ReturnStatusApprovedRefund
		ret.SellerDecision = "refund"
		ret.SellerNotes = req.Notes
		ret.ApprovedAt = &now
		ret.ApprovedBy = identity.UserID
		ret.CompletedAt = &now
		orderStatus = constant.OrderStatusExchangeCompleted

	case constant.ReturnDecisionApproveReplacement:
		product, err := s.productRepo.GetByIDTx(ctx, tx, ret.ProductID)
		if err != nil {
			logger.Error("[Respond] get product", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		if product == nil {
			return nil, errors.SetCustomErrorMessage(constant.ErrNotFound, "Produto não encontrado")
		}

		newQty, err := s.productRepo.DecrementQuantityTx(ctx, tx, ret.ProductID, ret.Quantity)
		if err != nil {
			if errors.IsType(err, constant.ErrInsufficientStock) {
				return nil, errors.SetCustomErrorMessage(constant.ErrInsufficientStock,
					"Estoque insuficiente para reservar a peça de reposição")
			}
			logger.Error("[Respond] reserve replacement", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}

		movement := &model.StockMovement{
			AccountID:        product.AccountID,
			OwnerCPF:         product.OwnerCPF,
			UserID:           identity.UserID,
			ProductID:        product.ID,
			ProductCode:      product.Code,
			ProductName:      product.Name,
			Type:             constant.StockMovementOut,
			PreviousQuantity: newQty + ret.Quantity,
			NewQuantity:      newQty,
			Delta:            -ret.Quantity,
			Notes:            fmt.Sprintf("Reserva para troca %s", ret.ReturnCode),
		}
		if err := s.stockRepo.InsertMovementTx(ctx, tx, movement); err != nil {
			logger.Error("[Respond] insert movement", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}

		ret.Status = constant.ReturnStatusReplacementSent
		ret.SellerDecision = "replacement"
		ret.SellerNotes = req.Notes
		ret.ApprovedAt = &now
		ret.ApprovedBy = identity.UserID
		ret.ReplacementSentAt = &now
		ret.ReservedQuantity = ret.Quantity
		event = constant.EventReplacementSent

	default:
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	if err := s.returnRepo.UpdateTx(ctx, tx, ret); err != nil {
		logger.Error("[Respond] update return", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if err := s.orderRepo.UpdateStatusTx(ctx, tx, ret.OrderID, orderStatus); err != nil {
		logger.Error("[Respond] update order status", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[Respond] commit", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	s.notify(ret.BuyerID, "", event, ret)
	return ret, nil
}

// ConfirmDefectiveReceived is the seller acknowledging the defective part
// arrived back. It only moves forward from replacement_sent.
func (s *returnAppImpl) ConfirmDefectiveReceived(ctx context.Context, identity *model.Identity, returnID uint64) (*model.ProductReturn, error) {
	ret, err := s.returnRepo.GetByID(ctx, returnID)
	if err != nil {
		logger.Error("[ConfirmDefectiveReceived] get return", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if ret == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	if ret.SellerID != identity.UserID {
		return nil, errors.SetCustomError(constant.ErrForbidden)
	}
	if ret.Status != constant.ReturnStatusReplacementSent {
		return nil, errors.SetCustomErrorMessage(constant.ErrConflict,
			"Apenas trocas com peça enviada podem ter o recebimento confirmado")
	}

	now := time.Now()
	ret.Status = constant.ReturnStatusDefectiveReceived
	ret.DefectiveReceivedAt = &now

	if err := s.returnRepo.Update(ctx, ret); err != nil {
		logger.Error("[ConfirmDefectiveReceived] update", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	s.notify(ret.BuyerID, "", constant.EventDefectiveReceived, ret)
	return ret, nil
}

// ValidateExchange is the seller's inspection verdict on the received
// defective part. An approved part goes into the defective counter, never
// back into sellable stock; a rejection hands the decision to the buyer.
func (s *returnAppImpl) ValidateExchange(ctx context.Context, identity *model.Identity, req *model.ValidateExchangeRequest) (*model.ProductReturn, error) {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[ValidateExchange] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	defer s.txRepo.RollbackTx(tx)

	ret, err := s.returnRepo.GetByIDTx(ctx, tx, req.ReturnID)
	if err != nil {
		logger.Error("[ValidateExchange] get return", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if ret == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	if ret.SellerID != identity.UserID {
		return nil, errors.SetCustomError(constant.ErrForbidden)
	}
	if ret.Status != constant.ReturnStatusDefectiveReceived {
		return nil, errors.SetCustomErrorMessage(constant.ErrConflict,
			"Apenas peças recebidas podem ser validadas")
	}

	now := time.Now()
	ret.DefectiveValidatedAt = &now
	ret.ValidationNotes = req.ValidationNotes

	var orderStatus constant.OrderStatus
	if req.Approved {
		product, err := s.productRepo.GetByIDTx(ctx, tx, ret.ProductID)
		if err != nil {
			logger.Error("[ValidateExchange] get product", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		if product == nil {
			return nil, errors.SetCustomErrorMessage(constant.ErrNotFound, "Produto não encontrado")
		}

		newDefective, err := s.productRepo.IncrementDefectiveTx(ctx, tx, ret.ProductID, ret.Quantity)
		if err != nil {
			logger.Error("[ValidateExchange] increment defective", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}

		movement := &model.StockMovement{
			AccountID:        product.AccountID,
			OwnerCPF:         product.OwnerCPF,
			UserID:           identity.UserID,
			ProductID:        product.ID,
			ProductCode:      product.Code,
			ProductName:      product.Name,
			Type:             constant.StockMovementIn,
			PreviousQuantity: newDefective - ret.Quantity,
			NewQuantity:      newDefective,
			Delta:            ret.Quantity,
			Notes:            fmt.Sprintf("Peça defeituosa recebida - troca %s", ret.ReturnCode),
		}
		if err := s.stockRepo.InsertMovementTx(ctx, tx, movement); err != nil {
			logger.Error("[ValidateExchange] insert movement", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}

		ret.Status = constant.ReturnStatusCompletedApproved
		ret.CompletedAt = &now
		orderStatus = constant.OrderStatusExchangeCompleted
	} else {
		reason := req.ValidationNotes
		if reason == "" {
			reason = "Critérios de troca não atendidos"
		}
		ret.Status = constant.ReturnStatusCompletedRejectedByVendor
		ret.RejectionReason = reason
		orderStatus = constant.OrderStatusExchangeRejected
	}

	if err := s.returnRepo.UpdateTx(ctx, tx, ret); err != nil {
		logger.Error("[ValidateExchange] update return", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if err := s.orderRepo.UpdateStatusTx(ctx, tx, ret.OrderID, orderStatus); err != nil {
		logger.Error("[ValidateExchange] update order status", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[ValidateExchange] commit", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	s.notify(ret.BuyerID, "", constant.EventExchangeValidated, ret)
	return ret, nil
}

// ResolveRejectedExchange is the buyer's answer after the seller rejected the
// defective part: pay for the replacement already received, or ship it back.
// Paying books a completed purchase/sale pair at the current price; shipping
// it back restores sellable stock.
func (s *returnAppImpl) ResolveRejectedExchange(ctx context.Context, identity *model.Identity, req *model.ResolveExchangeRequest) (*model.ProductReturn, error) {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[ResolveRejectedExchange] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	defer s.txRepo.RollbackTx(tx)

	ret, err := s.returnRepo.GetByIDTx(ctx, tx, req.ReturnID)
	if err != nil {
		logger.Error("[ResolveRejectedExchange] get return", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if ret == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	if ret.BuyerID != identity.UserID {
		return nil, errors.SetCustomErrorMessage(constant.ErrForbidden, "Apenas o comprador pode resolver a troca")
	}
	if ret.Status != constant.ReturnStatusCompletedRejectedByVendor {
		return nil, errors.SetCustomErrorMessage(constant.ErrConflict,
			"Apenas trocas rejeitadas pelo vendedor podem ser resolvidas")
	}

	product, err := s.productRepo.GetByIDTx(ctx, tx, ret.ProductID)
	if err != nil {
		logger.Error("[ResolveRejectedExchange] get product", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if product == nil {
		return nil, errors.SetCustomErrorMessage(constant.ErrNotFound, "Produto não encontrado")
	}

	now := time.Now()

	switch req.Resolution {
	case constant.ReturnResolutionPay:
		pair := &model.TransactionPairRequest{
			BuyerAccountID:  identity.AccountID,
			BuyerOwnerCPF:   identity.OwnerCPF,
			SellerAccountID: ret.AccountID,
			SellerOwnerCPF:  ret.OwnerCPF,
			BuyerID:         ret.BuyerID,
			SellerID:        ret.SellerID,
			BuyerName:       identity.Name,
			SellerName:      ret.SellerID,
			ProductID:       product.ID,
			ProductName:     product.Name,
			Amount:          product.Price * float64(ret.Quantity),
			Quantity:        ret.Quantity,
			Status:          constant.TransactionStatusCompleted,
		}
		if err := s.transactionRepo.InsertPairTx(ctx, tx, pair); err != nil {
			logger.Error("[ResolveRejectedExchange] insert transaction pair", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}

		ret.Status = constant.ReturnStatusConvertedToSale
		ret.ConvertedToSaleAt = &now
		ret.CompletedAt = &now

	case constant.ReturnResolutionReturnProduct:
		newQty, err := s.productRepo.IncrementQuantityTx(ctx, tx, ret.ProductID, ret.Quantity)
		if err != nil {
			logger.Error("[ResolveRejectedExchange] restock", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}

		movement := &model.StockMovement{
			AccountID:        product.AccountID,
			OwnerCPF:         product.OwnerCPF,
			UserID:           identity.UserID,
			ProductID:        product.ID,
			ProductCode:      product.Code,
			ProductName:      product.Name,
			Type:             constant.StockMovementIn,
			PreviousQuantity: newQty - ret.Quantity,
			NewQuantity:      newQty,
			Delta:            ret.Quantity,
			Notes:            fmt.Sprintf("Devolução de peça - troca rejeitada %s", ret.ReturnCode),
		}
		if err := s.stockRepo.InsertMovementTx(ctx, tx, movement); err != nil {
			logger.Error("[ResolveRejectedExchange] insert movement", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}

		ret.Status = constant.ReturnStatusReturnedToStock
		ret.CompletedAt = &now

	default:
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	if err := s.returnRepo.UpdateTx(ctx, tx, ret); err != nil {
		logger.Error("[ResolveRejectedExchange] update return", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[ResolveRejectedExchange] commit", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	s.notify(ret.SellerID, ret.AccountID, constant.EventExchangeResolved, ret)
	return ret, nil
}

func (s *returnAppImpl) List(ctx context.Context, identity *model.Identity) ([]model.ProductReturn, error) {
	rets, err := s.returnRepo.ListByParticipant(ctx, identity.UserID)
	if err != nil {
		logger.Error("[List] list returns", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return rets, nil
}

func (s *returnAppImpl) notify(userID, accountID, event string, ret *model.ProductReturn) {
	payload := map[string]interface{}{
		"return_id":   ret.ID,
		"return_code": ret.ReturnCode,
		"status":      ret.Status,
	}
	if err := s.dispatcher.Notify(userID, accountID, event, payload); err != nil {
		logger.Error("[notify] dispatch", zap.String("event", event), zap.String("error", err.Error()))
	}
}

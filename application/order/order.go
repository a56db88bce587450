package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stocktech/marketplace/cmd/config"
	"github.com/stocktech/marketplace/constant"
	"github.com/stocktech/marketplace/model"
	addressrepo "github.com/stocktech/marketplace/repository/address"
	cartrepo "github.com/stocktech/marketplace/repository/cart"
	orderrepo "github.com/stocktech/marketplace/repository/order"
	productrepo "github.com/stocktech/marketplace/repository/product"
	stockrepo "github.com/stocktech/marketplace/repository/stock"
	transactionrepo "github.com/stocktech/marketplace/repository/transaction"
	txrepo "github.com/stocktech/marketplace/repository/tx"
	"github.com/stocktech/marketplace/thirdparty/avadmin"
	"github.com/stocktech/marketplace/thirdparty/cep"
	"github.com/stocktech/marketplace/thirdparty/rabbitmq"
	"github.com/stocktech/marketplace/utils/errors"
	"github.com/stocktech/marketplace/utils/logger"
	"go.uber.org/zap"
)

type OrderApp interface {
	Create(ctx context.Context, identity *model.Identity, req *model.CreateOrderRequest) (*model.CreateOrderResponse, error)
	ConfirmPayment(ctx context.Context, identity *model.Identity, orderID uint64) (*model.Order, error)
	UpdateStatus(ctx context.Context, identity *model.Identity, req *model.UpdateOrderStatusRequest) (*model.Order, error)
	Cancel(ctx context.Context, identity *model.Identity, req *model.CancelOrderRequest) (*model.Order, error)
	List(ctx context.Context, identity *model.Identity, req *model.ListOrdersRequest) (*model.ListOrdersResponse, error)
	GetByID(ctx context.Context, identity *model.Identity, orderID uint64) (*model.OrderDetail, error)
	EstimateFreight(ctx context.Context, identity *model.Identity, req *model.EstimateFreightRequest) (*model.EstimateFreightResponse, error)
}

type orderAppImpl struct {
	config          *config.Config
	txRepo          txrepo.TxRepository
	orderRepo       orderrepo.OrderRepository
	productRepo     productrepo.ProductRepository
	stockRepo       stockrepo.StockRepository
	cartRepo        cartrepo.CartRepository
	transactionRepo transactionrepo.TransactionRepository
	addressRepo     addressrepo.AddressRepository
	avAdmin         avadmin.Client
	dispatcher      rabbitmq.Dispatcher
	estimator       cep.Estimator
}

func NewOrderApp(
	config *config.Config,
	txRepo txrepo.TxRepository,
	orderRepo orderrepo.OrderRepository,
	productRepo productrepo.ProductRepository,
	stockRepo stockrepo.StockRepository,
	cartRepo cartrepo.CartRepository,
	transactionRepo transactionrepo.TransactionRepository,
	addressRepo addressrepo.AddressRepository,
	avAdmin avadmin.Client,
	dispatcher rabbitmq.Dispatcher,
	estimator cep.Estimator,
) OrderApp {
	return &orderAppImpl{
		config:          config,
		txRepo:          txRepo,
		orderRepo:       orderRepo,
		productRepo:     productRepo,
		stockRepo:       stockRepo,
		cartRepo:        cartRepo,
		transactionRepo: transactionRepo,
		addressRepo:     addressRepo,
		avAdmin:         avAdmin,
		dispatcher:      dispatcher,
		estimator:       estimator,
	}
}

func newOrderCode() string {
	return "ORD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// sellerGroup collects the checkout lines of one seller, in request order.
type sellerGroup struct {
	sellerID   string
	sellerName string
	lines      []model.OrderLineRequest
}

func groupBySeller(lines []model.OrderLineRequest) []sellerGroup {
	index := make(map[string]int)
	groups := make([]sellerGroup, 0)
	for _, line := range lines {
		i, ok := index[line.SellerID]
		if !ok {
			i = len(groups)
			index[line.SellerID] = i
			groups = append(groups, sellerGroup{sellerID: line.SellerID, sellerName: line.SellerName})
		}
		if groups[i].sellerName == "" && line.SellerName != "" {
			groups[i].sellerName = line.SellerName
		}
		groups[i].lines = append(groups[i].lines, line)
	}
	return groups
}

// Create turns a multi-seller checkout into one order per seller, all sharing
// a parent order code. Stock allocation, order rows, and the transaction pairs
// happen inside a single database transaction so a failure on any line leaves
// no partial state behind.
func (s *orderAppImpl) Create(ctx context.Context, identity *model.Identity, req *model.CreateOrderRequest) (*model.CreateOrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	address, err := s.addressRepo.GetUserAddress(ctx, req.AddressID, identity.UserID, identity.AccountID)
	if err != nil {
		logger.Error("[Create] get address", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if address == nil {
		return nil, errors.SetCustomErrorMessage(constant.ErrNotFound, "Endereço não encontrado")
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[Create] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	defer s.txRepo.RollbackTx(tx)

	parentCode := newOrderCode()
	products := make(map[uint64]*model.Product)

	// Allocate stock line by line before any order row exists. The decrement
	// is conditional on remaining quantity, so an oversell fails here and the
	// rollback covers every line already taken.
	for _, line := range req.Items {
		product, err := s.productRepo.GetByIDTx(ctx, tx, line.ProductID)
		if err != nil {
			logger.Error("[Create] get product", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		if product == nil {
			return nil, errors.SetCustomErrorMessage(constant.ErrNotFound,
				fmt.Sprintf("Produto %s não encontrado", line.ProductName))
		}
		products[line.ProductID] = product

		newQty, err := s.productRepo.DecrementQuantityTx(ctx, tx, line.ProductID, line.Quantity)
		if err != nil {
			if errors.IsType(err, constant.ErrInsufficientStock) {
				return nil, errors.SetCustomErrorMessage(constant.ErrInsufficientStock,
					fmt.Sprintf("Estoque insuficiente para %s", product.Name))
			}
			logger.Error("[Create] decrement stock", zap.String("error", err.Error()))
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
			PreviousQuantity: newQty + line.Quantity,
			NewQuantity:      newQty,
			Delta:            -line.Quantity,
			Notes:            fmt.Sprintf("Venda - pedido %s", parentCode),
		}
		if err := s.stockRepo.InsertMovementTx(ctx, tx, movement); err != nil {
			logger.Error("[Create] insert movement", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
	}

	groups := groupBySeller(req.Items)
	orders := make([]model.Order, 0, len(groups))
	totalValue := 0.0

	for _, group := range groups {
		first := products[group.lines[0].ProductID]
		sellerAccountID := first.AccountID
		sellerOwnerCPF := first.OwnerCPF

		// The account service is authoritative for the seller's account, the
		// product row is the fallback when it is unreachable.
		if seller, err := s.avAdmin.GetUserByID(ctx, group.sellerID); err != nil {
			logger.Warn("[Create] resolve seller", zap.String("seller_id", group.sellerID), zap.String("error", err.Error()))
		} else if seller != nil && seller.AccountID != nil && *seller.AccountID != "" {
			sellerAccountID = *seller.AccountID
			if account, err := s.avAdmin.GetAccountByID(ctx, sellerAccountID); err != nil {
				logger.Warn("[Create] resolve seller account", zap.String("account_id", sellerAccountID), zap.String("error", err.Error()))
			} else if account != nil && account.OwnerCPF != nil {
				sellerOwnerCPF = *account.OwnerCPF
			}
		}

		subtotal := 0.0
		items := make([]model.OrderItem, 0, len(group.lines))
		for _, line := range group.lines {
			product := products[line.ProductID]
			subtotal += product.Price * float64(line.Quantity)
			items = append(items, model.OrderItem{
				ProductID:      line.ProductID,
				ProductName:    product.Name,
				Price:          product.Price,
				Quantity:       line.Quantity,
				SellerID:       group.sellerID,
				SellerName:     group.sellerName,
				WarrantyPeriod: product.WarrantyPeriod,
			})
		}

		freight := s.estimateSellerFreight(ctx, group.sellerID, address.ZipCode)

		// Freight is recorded for display but not billed yet.
		order := model.Order{
			AccountID:       identity.AccountID,
			OwnerCPF:        identity.OwnerCPF,
			BuyerAccountID:  identity.AccountID,
			SellerAccountID: sellerAccountID,
			BuyerID:         identity.UserID,
			SellerID:        group.sellerID,
			OrderCode:       newOrderCode(),
			ParentOrderCode: parentCode,
			Status:          constant.OrderStatusPendingPayment,
			Subtotal:        subtotal,
			Freight:         freight,
			Total:           subtotal,
			AddressID:       address.ID,
			Notes:           req.Notes,
		}

		orderID, err := s.orderRepo.InsertOrderTx(ctx, tx, &order)
		if err != nil {
			logger.Error("[Create] insert order", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		order.ID = orderID

		if err := s.orderRepo.InsertOrderItemsTx(ctx, tx, orderID, items); err != nil {
			logger.Error("[Create] insert order items", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		for i := range items {
			items[i].OrderID = orderID
		}
		order.Items = items

		for _, line := range group.lines {
			product := products[line.ProductID]
			pair := &model.TransactionPairRequest{
				BuyerAccountID:  identity.AccountID,
				BuyerOwnerCPF:   identity.OwnerCPF,
				SellerAccountID: sellerAccountID,
				SellerOwnerCPF:  sellerOwnerCPF,
				BuyerID:         identity.UserID,
				SellerID:        group.sellerID,
				BuyerName:       identity.Name,
				SellerName:      group.sellerName,
				ProductID:       product.ID,
				ProductName:     product.Name,
				Amount:          product.Price * float64(line.Quantity),
				Quantity:        line.Quantity,
				Status:          constant.TransactionStatusPending,
			}
			if err := s.transactionRepo.InsertPairTx(ctx, tx, pair); err != nil {
				logger.Error("[Create] insert transaction pair", zap.String("error", err.Error()))
				return nil, errors.SetCustomError(constant.ErrInternal)
			}
		}

		order.CreatedAt = time.Now()
		orders = append(orders, order)
		totalValue += subtotal
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[Create] commit", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	s.afterCreate(ctx, identity, orders, req.Items)

	message := fmt.Sprintf("Pedido %s criado com sucesso", parentCode)
	if len(orders) > 1 {
		message = fmt.Sprintf("Pedido %s criado com sucesso (%d vendedores)", parentCode, len(orders))
	}
	return &model.CreateOrderResponse{
		Orders:     orders,
		TotalValue: totalValue,
		Message:    message,
	}, nil
}

// afterCreate runs the best-effort follow-ups of a committed checkout:
// clearing the bought lines from the cart, notifying both sides, metering
// usage. Failures here are logged, never surfaced.
func (s *orderAppImpl) afterCreate(ctx context.Context, identity *model.Identity, orders []model.Order, lines []model.OrderLineRequest) {
	productIDs := make([]uint64, 0, len(lines))
	for _, line := range lines {
		productIDs = append(productIDs, line.ProductID)
	}
	if err := s.cartRepo.DeleteUserProducts(ctx, identity.UserID, productIDs); err != nil {
		logger.Error("[afterCreate] clear cart", zap.String("error", err.Error()))
	}

	for _, o := range orders {
		payload := map[string]interface{}{
			"order_id":          o.ID,
			"order_code":        o.OrderCode,
			"parent_order_code": o.ParentOrderCode,
			"total":             o.Total,
		}
		if err := s.dispatcher.Notify(identity.UserID, identity.AccountID, constant.EventOrderCreated, payload); err != nil {
			logger.Error("[afterCreate] notify buyer", zap.String("error", err.Error()))
		}
		if err := s.dispatcher.Notify(o.SellerID, o.SellerAccountID, constant.EventOrderCreated, payload); err != nil {
			logger.Error("[afterCreate] notify seller", zap.String("error", err.Error()))
		}
	}

	if err := s.avAdmin.IncrementUsage(ctx, identity.AccountID, "order_created"); err != nil {
		logger.Warn("[afterCreate] increment usage", zap.String("error", err.Error()))
	}
}

func (s *orderAppImpl) estimateSellerFreight(ctx context.Context, sellerID, buyerZip string) float64 {
	sellerZip, err := s.addressRepo.GetDefaultZipByUser(ctx, sellerID)
	if err != nil {
		logger.Warn("[estimateSellerFreight] seller zip", zap.String("error", err.Error()))
	}
	if sellerZip == "" {
		sellerZip = s.config.Freight.DefaultZip
	}
	distance := s.estimator.DistanceKm(ctx, sellerZip, buyerZip)
	return s.estimator.Freight(distance)
}

// ConfirmPayment marks the order paid and completes the pending transaction
// pairs of its lines. Only the order's seller may confirm, and only from a
// payment-confirmable state, so confirming twice fails on the second call.
func (s *orderAppImpl) ConfirmPayment(ctx context.Context, identity *model.Identity, orderID uint64) (*model.Order, error) {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[ConfirmPayment] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	defer s.txRepo.RollbackTx(tx)

	order, err := s.orderRepo.GetByIDTx(ctx, tx, orderID)
	if err != nil {
		logger.Error("[ConfirmPayment] get order", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if order == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	if order.SellerID != identity.UserID {
		return nil, errors.SetCustomErrorMessage(constant.ErrForbidden, "Apenas o vendedor pode confirmar o pagamento")
	}
	if !constant.OrderStatusIn(order.Status, constant.PaymentConfirmableStatuses) {
		return nil, errors.SetCustomErrorMessage(constant.ErrConflict, "Pagamento já confirmado ou pedido em estado inválido")
	}

	confirmedAt := time.Now()
	if err := s.orderRepo.ConfirmPaymentTx(ctx, tx, orderID, identity.UserID, confirmedAt); err != nil {
		logger.Error("[ConfirmPayment] update order", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	items, err := s.orderRepo.GetItemsTx(ctx, tx, orderID)
	if err != nil {
		logger.Error("[ConfirmPayment] get items", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	for _, item := range items {
		if err := s.transactionRepo.CompleteOrderLineTx(ctx, tx, order.BuyerID, order.SellerID, item.ProductID, item.Quantity); err != nil {
			logger.Error("[ConfirmPayment] complete transaction", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[ConfirmPayment] commit", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	order.Status = constant.OrderStatusPaid
	order.PaymentConfirmedAt = &confirmedAt
	order.PaymentConfirmedBy = identity.UserID
	order.Items = items

	payload := map[string]interface{}{"order_id": order.ID, "order_code": order.OrderCode}
	if err := s.dispatcher.Notify(order.BuyerID, order.BuyerAccountID, constant.EventPaymentConfirmed, payload); err != nil {
		logger.Error("[ConfirmPayment] notify", zap.String("error", err.Error()))
	}

	return order, nil
}

// UpdateStatus moves the order along the fulfillment path. The transition
// table is the single authority on which moves are legal; cancellation is
// excluded here because it requires a reason and restores stock.
func (s *orderAppImpl) UpdateStatus(ctx context.Context, identity *model.Identity, req *model.UpdateOrderStatusRequest) (*model.Order, error) {
	if req.Status == constant.OrderStatusCancelled {
		return nil, errors.SetCustomErrorMessage(constant.ErrInvalidRequest,
			"Cancelamento exige justificativa, use a operação de cancelamento")
	}

	order, err := s.orderRepo.GetByID(ctx, req.OrderID)
	if err != nil {
		logger.Error("[UpdateStatus] get order", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if order == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	if order.SellerID != identity.UserID {
		return nil, errors.SetCustomErrorMessage(constant.ErrForbidden, "Apenas o vendedor pode atualizar o status do pedido")
	}
	if !constant.CanTransitionOrder(order.Status, req.Status) {
		return nil, errors.SetCustomErrorMessage(constant.ErrConflict,
			fmt.Sprintf("Transição de status inválida: %s -> %s", order.Status, req.Status))
	}

	if err := s.orderRepo.UpdateStatus(ctx, req.OrderID, req.Status, req.TrackingCode, req.TrackingCarrier); err != nil {
		logger.Error("[UpdateStatus] update", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	order.Status = req.Status
	if req.TrackingCode != "" {
		order.TrackingCode = req.TrackingCode
	}
	if req.TrackingCarrier != "" {
		order.TrackingCarrier = req.TrackingCarrier
	}

	payload := map[string]interface{}{
		"order_id":   order.ID,
		"order_code": order.OrderCode,
		"status":     order.Status,
	}
	if err := s.dispatcher.Notify(order.BuyerID, order.BuyerAccountID, constant.EventOrderStatusUpdated, payload); err != nil {
		logger.Error("[UpdateStatus] notify", zap.String("error", err.Error()))
	}

	return order, nil
}

// Cancel aborts an order before fulfillment and gives the allocated stock
// back, appending the reason to the order notes. Either side of the order may
// cancel while it is still cancellable.
func (s *orderAppImpl) Cancel(ctx context.Context, identity *model.Identity, req *model.CancelOrderRequest) (*model.Order, error) {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[Cancel] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	defer s.txRepo.RollbackTx(tx)

	order, err := s.orderRepo.GetByIDTx(ctx, tx, req.OrderID)
	if err != nil {
		logger.Error("[Cancel] get order", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if order == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	if order.BuyerID != identity.UserID && order.SellerID != identity.UserID {
		return nil, errors.SetCustomError(constant.ErrForbidden)
	}
	if !constant.OrderStatusIn(order.Status, constant.CancellableStatuses) {
		return nil, errors.SetCustomErrorMessage(constant.ErrConflict, "Este pedido não pode mais ser cancelado")
	}

	notes := order.Notes
	if notes != "" {
		notes += "\n\n"
	}
	notes += "CANCELADO: " + req.Reason

	if err := s.orderRepo.CancelTx(ctx, tx, order.ID, notes); err != nil {
		logger.Error("[Cancel] update order", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	items, err := s.orderRepo.GetItemsTx(ctx, tx, order.ID)
	if err != nil {
		logger.Error("[Cancel] get items", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	for _, item := range items {
		product, err := s.productRepo.GetByIDTx(ctx, tx, item.ProductID)
		if err != nil {
			logger.Error("[Cancel] get product", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		if product == nil {
			continue
		}

		newQty, err := s.productRepo.IncrementQuantityTx(ctx, tx, item.ProductID, item.Quantity)
		if err != nil {
			logger.Error("[Cancel] restock", zap.String("error", err.Error()))
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
			PreviousQuantity: newQty - item.Quantity,
			NewQuantity:      newQty,
			Delta:            item.Quantity,
			Notes:            fmt.Sprintf("Cancelamento do pedido %s", order.OrderCode),
		}
		if err := s.stockRepo.InsertMovementTx(ctx, tx, movement); err != nil {
			logger.Error("[Cancel] insert movement", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[Cancel] commit", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	order.Status = constant.OrderStatusCancelled
	order.Notes = notes
	order.Items = items

	payload := map[string]interface{}{
		"order_id":   order.ID,
		"order_code": order.OrderCode,
		"status":     constant.OrderStatusCancelled,
	}
	if err := s.dispatcher.Notify(order.BuyerID, order.BuyerAccountID, constant.EventOrderStatusUpdated, payload); err != nil {
		logger.Error("[Cancel] notify buyer", zap.String("error", err.Error()))
	}
	if err := s.dispatcher.Notify(order.SellerID, order.SellerAccountID, constant.EventOrderStatusUpdated, payload); err != nil {
		logger.Error("[Cancel] notify seller", zap.String("error", err.Error()))
	}

	return order, nil
}

func (s *orderAppImpl) List(ctx context.Context, identity *model.Identity, req *model.ListOrdersRequest) (*model.ListOrdersResponse, error) {
	limit := req.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	status := constant.OrderStatus("")
	if req.Status != "" && req.Status != "all" {
		status = constant.OrderStatus(req.Status)
		if !constant.IsValidOrderStatus(status) {
			return nil, errors.SetCustomErrorMessage(constant.ErrInvalidRequest, "Status de pedido inválido")
		}
	}

	orders, total, err := s.orderRepo.ListByAccount(ctx, identity.AccountID, status, limit, offset)
	if err != nil {
		logger.Error("[List] list orders", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	for i := range orders {
		items, err := s.orderRepo.GetItems(ctx, orders[i].ID)
		if err != nil {
			logger.Error("[List] get items", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		orders[i].Items = items
	}

	return &model.ListOrdersResponse{
		Orders:  orders,
		Total:   total,
		HasMore: int64(offset+len(orders)) < total,
	}, nil
}

// GetByID returns the order with its lines. A buyer looking at one piece of a
// split checkout gets the whole group aggregated under the parent code, with
// the seller orders attached as sub-orders.
func (s *orderAppImpl) GetByID(ctx context.Context, identity *model.Identity, orderID uint64) (*model.OrderDetail, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		logger.Error("[GetByID] get order", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if order == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	if order.BuyerID != identity.UserID && order.SellerID != identity.UserID &&
		order.BuyerAccountID != identity.AccountID && order.SellerAccountID != identity.AccountID {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	items, err := s.orderRepo.GetItems(ctx, orderID)
	if err != nil {
		logger.Error("[GetByID] get items", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	order.Items = items

	isBuyer := order.BuyerID == identity.UserID
	if !isBuyer || order.ParentOrderCode == "" {
		return &model.OrderDetail{Order: *order}, nil
	}

	siblings, err := s.orderRepo.ListByParentCode(ctx, order.ParentOrderCode)
	if err != nil {
		logger.Error("[GetByID] list siblings", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if len(siblings) <= 1 {
		return &model.OrderDetail{Order: *order}, nil
	}

	detail := &model.OrderDetail{IsGrouped: true}
	detail.Order = *order
	detail.ID = 0
	detail.OrderCode = order.ParentOrderCode
	detail.SellerID = ""
	detail.SellerAccountID = ""
	detail.Subtotal = 0
	detail.Freight = 0
	detail.Total = 0
	detail.Items = nil

	for i := range siblings {
		sub := siblings[i]
		subItems, err := s.orderRepo.GetItems(ctx, sub.ID)
		if err != nil {
			logger.Error("[GetByID] get sibling items", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		sub.Items = subItems

		detail.Subtotal += sub.Subtotal
		detail.Freight += sub.Freight
		detail.Total += sub.Total
		detail.Items = append(detail.Items, subItems...)
		detail.SubOrders = append(detail.SubOrders, sub)
	}

	return detail, nil
}

// EstimateFreight quotes freight per seller for a prospective checkout,
// without reserving or writing anything.
func (s *orderAppImpl) EstimateFreight(ctx context.Context, identity *model.Identity, req *model.EstimateFreightRequest) (*model.EstimateFreightResponse, error) {
	address, err := s.addressRepo.GetUserAddress(ctx, req.AddressID, identity.UserID, identity.AccountID)
	if err != nil {
		logger.Error("[EstimateFreight] get address", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if address == nil {
		return nil, errors.SetCustomErrorMessage(constant.ErrNotFound, "Endereço não encontrado")
	}

	seen := make(map[string]bool)
	response := &model.EstimateFreightResponse{Breakdown: make([]model.FreightQuote, 0)}

	for _, line := range req.Items {
		if seen[line.SellerID] {
			continue
		}
		seen[line.SellerID] = true

		sellerZip, err := s.addressRepo.GetDefaultZipByUser(ctx, line.SellerID)
		if err != nil {
			logger.Warn("[EstimateFreight] seller zip", zap.String("error", err.Error()))
		}
		if sellerZip == "" {
			sellerZip = s.config.Freight.DefaultZip
		}

		distance := s.estimator.DistanceKm(ctx, sellerZip, address.ZipCode)
		freight := s.estimator.Freight(distance)

		response.Breakdown = append(response.Breakdown, model.FreightQuote{
			SellerID:   line.SellerID,
			SellerZip:  sellerZip,
			BuyerZip:   address.ZipCode,
			DistanceKm: distance,
			Freight:    freight,
		})
		response.TotalFreight += freight
	}

	return response, nil
}

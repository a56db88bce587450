package order_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	apporder "github.com/stocktech/marketplace/application/order"
	"github.com/stocktech/marketplace/cmd/config"
	"github.com/stocktech/marketplace/constant"
	addressmocks "github.com/stocktech/marketplace/mocks/repository/address"
	cartmocks "github.com/stocktech/marketplace/mocks/repository/cart"
	ordermocks "github.com/stocktech/marketplace/mocks/repository/order"
	productmocks "github.com/stocktech/marketplace/mocks/repository/product"
	stockmocks "github.com/stocktech/marketplace/mocks/repository/stock"
	transactionmocks "github.com/stocktech/marketplace/mocks/repository/transaction"
	txmocks "github.com/stocktech/marketplace/mocks/repository/tx"
	avadminmocks "github.com/stocktech/marketplace/mocks/thirdparty/avadmin"
	cepmocks "github.com/stocktech/marketplace/mocks/thirdparty/cep"
	rabbitmqmocks "github.com/stocktech/marketplace/mocks/thirdparty/rabbitmq"
	"github.com/stocktech/marketplace/model"
	cerr "github.com/stocktech/marketplace/utils/errors"
	"github.com/stretchr/testify/mock"
)

type fields struct {
	txRepo          *txmocks.TxRepository
	orderRepo       *ordermocks.OrderRepository
	productRepo     *productmocks.ProductRepository
	stockRepo       *stockmocks.StockRepository
	cartRepo        *cartmocks.CartRepository
	transactionRepo *transactionmocks.TransactionRepository
	addressRepo     *addressmocks.AddressRepository
	avAdmin         *avadminmocks.Client
	dispatcher      *rabbitmqmocks.Dispatcher
	estimator       *cepmocks.Estimator
}

func newFields(t *testing.T) fields {
	return fields{
		txRepo:          txmocks.NewTxRepository(t),
		orderRepo:       ordermocks.NewOrderRepository(t),
		productRepo:     productmocks.NewProductRepository(t),
		stockRepo:       stockmocks.NewStockRepository(t),
		cartRepo:        cartmocks.NewCartRepository(t),
		transactionRepo: transactionmocks.NewTransactionRepository(t),
		addressRepo:     addressmocks.NewAddressRepository(t),
		avAdmin:         avadminmocks.NewClient(t),
		dispatcher:      rabbitmqmocks.NewDispatcher(t),
		estimator:       cepmocks.NewEstimator(t),
	}
}

func newApp(f fields) apporder.OrderApp {
	cfg := &config.Config{
		Freight: config.FreightConfig{DefaultZip: "28000000"},
	}
	return apporder.NewOrderApp(cfg, f.txRepo, f.orderRepo, f.productRepo, f.stockRepo,
		f.cartRepo, f.transactionRepo, f.addressRepo, f.avAdmin, f.dispatcher, f.estimator)
}

func buyerIdentity() *model.Identity {
	return &model.Identity{
		UserID:    "buyer1",
		AccountID: "acc-buyer1",
		OwnerCPF:  "11122233344",
		Name:      "Ana Compradora",
		Role:      constant.RoleUser,
	}
}

func sellerIdentity(userID string) *model.Identity {
	return &model.Identity{
		UserID:    userID,
		AccountID: "acc-" + userID,
		OwnerCPF:  "55566677788",
		Name:      "Vendedor " + userID,
		Role:      constant.RoleUser,
	}
}

func strPtr(s string) *string { return &s }

func assertErrCode(t *testing.T, err error, code constant.ErrorType) {
	t.Helper()
	var ce cerr.CustomError
	if !errors.As(err, &ce) {
		t.Fatalf("error type = %T, want CustomError", err)
	}
	if ce.ErrorCode() != constant.ErrorTypeCode[code] {
		t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[code])
	}
}

func TestOrderApp_Create(t *testing.T) {
	twoSellerItems := []model.OrderLineRequest{
		{ProductID: 1, ProductName: "Teclado Mecânico", Quantity: 2, SellerID: "s1", SellerName: "Loja Um"},
		{ProductID: 2, ProductName: "Mouse Gamer", Quantity: 1, SellerID: "s2", SellerName: "Loja Dois"},
	}

	tests := []struct {
		name       string
		args       *model.CreateOrderRequest
		mockCall   func(f fields)
		wantOrders int
		wantTotal  float64
		wantErr    bool
		errCode    constant.ErrorType
		errMsg     string
	}{
		{
			name: "success: checkout split across two sellers",
			args: &model.CreateOrderRequest{Items: twoSellerItems, AddressID: 7},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.addressRepo.On("GetUserAddress", mock.Anything, uint64(7), "buyer1", "acc-buyer1").
					Return(&model.Address{ID: 7, ZipCode: "01310930"}, nil).Once()
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.productRepo.On("GetByIDTx", mock.Anything, tx, uint64(1)).
					Return(&model.Product{ID: 1, AccountID: "acc-s1", OwnerCPF: "55566677788", Code: "TEC-01", Name: "Teclado Mecânico", Price: 100, Quantity: 10}, nil).Once()
				f.productRepo.On("DecrementQuantityTx", mock.Anything, tx, uint64(1), 2).
					Return(8, nil).Once()
				f.stockRepo.On("InsertMovementTx", mock.Anything, tx, mock.MatchedBy(func(m *model.StockMovement) bool {
					return m.Type == constant.StockMovementOut &&
						m.PreviousQuantity == 10 && m.NewQuantity == 8 && m.Delta == -2 &&
						strings.HasPrefix(m.Notes, "Venda - pedido ORD-")
				})).Return(nil).Once()

				f.productRepo.On("GetByIDTx", mock.Anything, tx, uint64(2)).
					Return(&model.Product{ID: 2, AccountID: "acc-s2", OwnerCPF: "99988877766", Code: "MOU-02", Name: "Mouse Gamer", Price: 50, Quantity: 5}, nil).Once()
				f.productRepo.On("DecrementQuantityTx", mock.Anything, tx, uint64(2), 1).
					Return(4, nil).Once()
				f.stockRepo.On("InsertMovementTx", mock.Anything, tx, mock.MatchedBy(func(m *model.StockMovement) bool {
					return m.Type == constant.StockMovementOut &&
						m.PreviousQuantity == 5 && m.NewQuantity == 4 && m.Delta == -1
				})).Return(nil).Once()

				f.avAdmin.On("GetUserByID", mock.Anything, "s1").
					Return(&model.ExternalUser{ID: "s1", AccountID: strPtr("acc-s1")}, nil).Once()
				f.avAdmin.On("GetAccountByID", mock.Anything, "acc-s1").
					Return(&model.ExternalAccount{ID: "acc-s1", OwnerCPF: strPtr("55566677788")}, nil).Once()
				f.avAdmin.On("GetUserByID", mock.Anything, "s2").
					Return(nil, nil).Once()

				f.addressRepo.On("GetDefaultZipByUser", mock.Anything, "s1").Return("20040030", nil).Once()
				f.estimator.On("DistanceKm", mock.Anything, "20040030", "01310930").Return(10.0).Once()
				f.estimator.On("Freight", 10.0).Return(13.5).Once()
				f.addressRepo.On("GetDefaultZipByUser", mock.Anything, "s2").Return("", nil).Once()
				f.estimator.On("DistanceKm", mock.Anything, "28000000", "01310930").Return(2.0).Once()
				f.estimator.On("Freight", 2.0).Return(3.0).Once()

				f.orderRepo.On("InsertOrderTx", mock.Anything, tx, mock.MatchedBy(func(o *model.Order) bool {
					return o.SellerID == "s1" && o.Status == constant.OrderStatusPendingPayment &&
						o.Subtotal == 200 && o.Total == 200 && o.Freight == 13.5 &&
						strings.HasPrefix(o.ParentOrderCode, "ORD-")
				})).Return(uint64(101), nil).Once()
				f.orderRepo.On("InsertOrderItemsTx", mock.Anything, tx, uint64(101), mock.Anything).Return(nil).Once()
				f.orderRepo.On("InsertOrderTx", mock.Anything, tx, mock.MatchedBy(func(o *model.Order) bool {
					return o.SellerID == "s2" && o.Subtotal == 50 && o.Total == 50 && o.Freight == 3.0
				})).Return(uint64(102), nil).Once()
				f.orderRepo.On("InsertOrderItemsTx", mock.Anything, tx, uint64(102), mock.Anything).Return(nil).Once()

				f.transactionRepo.On("InsertPairTx", mock.Anything, tx, mock.MatchedBy(func(p *model.TransactionPairRequest) bool {
					return p.ProductID == 1 && p.Amount == 200 && p.Status == constant.TransactionStatusPending
				})).Return(nil).Once()
				f.transactionRepo.On("InsertPairTx", mock.Anything, tx, mock.MatchedBy(func(p *model.TransactionPairRequest) bool {
					return p.ProductID == 2 && p.Amount == 50 && p.Status == constant.TransactionStatusPending
				})).Return(nil).Once()

				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				f.cartRepo.On("DeleteUserProducts", mock.Anything, "buyer1", []uint64{1, 2}).Return(nil).Once()
				f.dispatcher.On("Notify", mock.Anything, mock.Anything, constant.EventOrderCreated, mock.Anything).
					Return(nil).Times(4)
				f.avAdmin.On("IncrementUsage", mock.Anything, "acc-buyer1", "order_created").Return(nil).Once()
			},
			wantOrders: 2,
			wantTotal:  250,
		},
		{
			name: "error: insufficient stock on the second line rolls everything back",
			args: &model.CreateOrderRequest{Items: twoSellerItems, AddressID: 7},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.addressRepo.On("GetUserAddress", mock.Anything, uint64(7), "buyer1", "acc-buyer1").
					Return(&model.Address{ID: 7, ZipCode: "01310930"}, nil).Once()
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.productRepo.On("GetByIDTx", mock.Anything, tx, uint64(1)).
					Return(&model.Product{ID: 1, Name: "Teclado Mecânico", Price: 100, Quantity: 10}, nil).Once()
				f.productRepo.On("DecrementQuantityTx", mock.Anything, tx, uint64(1), 2).
					Return(8, nil).Once()
				f.stockRepo.On("InsertMovementTx", mock.Anything, tx, mock.Anything).Return(nil).Once()

				f.productRepo.On("GetByIDTx", mock.Anything, tx, uint64(2)).
					Return(&model.Product{ID: 2, Name: "Mouse Gamer", Price: 50, Quantity: 0}, nil).Once()
				f.productRepo.On("DecrementQuantityTx", mock.Anything, tx, uint64(2), 1).
					Return(0, cerr.SetCustomError(constant.ErrInsufficientStock)).Once()
			},
			wantErr: true,
			errCode: constant.ErrInsufficientStock,
			errMsg:  "Estoque insuficiente para Mouse Gamer",
		},
		{
			name: "error: address not found",
			args: &model.CreateOrderRequest{Items: twoSellerItems, AddressID: 99},
			mockCall: func(f fields) {
				f.addressRepo.On("GetUserAddress", mock.Anything, uint64(99), "buyer1", "acc-buyer1").
					Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
			errMsg:  "Endereço não encontrado",
		},
		{
			name:     "error: empty items",
			args:     &model.CreateOrderRequest{Items: nil, AddressID: 7},
			mockCall: func(f fields) {},
			wantErr:  true,
			errCode:  constant.ErrInvalidRequest,
		},
		{
			name: "error: begin tx fails",
			args: &model.CreateOrderRequest{Items: twoSellerItems, AddressID: 7},
			mockCall: func(f fields) {
				f.addressRepo.On("GetUserAddress", mock.Anything, uint64(7), "buyer1", "acc-buyer1").
					Return(&model.Address{ID: 7, ZipCode: "01310930"}, nil).Once()
				f.txRepo.On("BeginTx", mock.Anything).Return(nil, errors.New("connection refused")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			tt.mockCall(f)
			app := newApp(f)

			got, err := app.Create(context.Background(), buyerIdentity(), tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Create() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				if tt.errMsg != "" {
					var ce cerr.CustomError
					errors.As(err, &ce)
					if ce.Error() != tt.errMsg {
						t.Fatalf("error message = %q, want %q", ce.Error(), tt.errMsg)
					}
				}
				return
			}

			if len(got.Orders) != tt.wantOrders {
				t.Fatalf("Create() orders = %d, want %d", len(got.Orders), tt.wantOrders)
			}
			if got.TotalValue != tt.wantTotal {
				t.Fatalf("Create() total = %.2f, want %.2f", got.TotalValue, tt.wantTotal)
			}
			parent := got.Orders[0].ParentOrderCode
			if !strings.HasPrefix(parent, "ORD-") {
				t.Fatalf("parent order code = %q, want ORD- prefix", parent)
			}
			for _, o := range got.Orders {
				if o.ParentOrderCode != parent {
					t.Fatalf("order %s has parent %q, want %q", o.OrderCode, o.ParentOrderCode, parent)
				}
				if o.Total != o.Subtotal {
					t.Fatalf("order %s total = %.2f, want subtotal %.2f", o.OrderCode, o.Total, o.Subtotal)
				}
			}
			if !strings.Contains(got.Message, "2 vendedores") {
				t.Fatalf("message = %q, want seller count", got.Message)
			}
		})
	}
}

func TestOrderApp_ConfirmPayment(t *testing.T) {
	tests := []struct {
		name     string
		identity *model.Identity
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:     "success: seller confirms and transaction pairs complete",
			identity: sellerIdentity("s1"),
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
				f.orderRepo.On("GetByIDTx", mock.Anything, tx, uint64(5)).
					Return(&model.Order{ID: 5, BuyerID: "buyer1", BuyerAccountID: "acc-buyer1", SellerID: "s1", OrderCode: "ORD-AAAA1111", Status: constant.OrderStatusProcessing}, nil).Once()
				f.orderRepo.On("ConfirmPaymentTx", mock.Anything, tx, uint64(5), "s1", mock.Anything).Return(nil).Once()
				f.orderRepo.On("GetItemsTx", mock.Anything, tx, uint64(5)).
					Return([]model.OrderItem{{OrderID: 5, ProductID: 1, Quantity: 2}}, nil).Once()
				f.transactionRepo.On("CompleteOrderLineTx", mock.Anything, tx, "buyer1", "s1", uint64(1), 2).Return(nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.dispatcher.On("Notify", "buyer1", "acc-buyer1", constant.EventPaymentConfirmed, mock.Anything).Return(nil).Once()
			},
		},
		{
			name:     "error: only the seller may confirm",
			identity: sellerIdentity("s2"),
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
				f.orderRepo.On("GetByIDTx", mock.Anything, tx, uint64(5)).
					Return(&model.Order{ID: 5, BuyerID: "buyer1", SellerID: "s1", Status: constant.OrderStatusProcessing}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrForbidden,
		},
		{
			name:     "error: confirming twice conflicts",
			identity: sellerIdentity("s1"),
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
				f.orderRepo.On("GetByIDTx", mock.Anything, tx, uint64(5)).
					Return(&model.Order{ID: 5, BuyerID: "buyer1", SellerID: "s1", Status: constant.OrderStatusPaid}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrConflict,
		},
		{
			name:     "error: order not found",
			identity: sellerIdentity("s1"),
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
				f.orderRepo.On("GetByIDTx", mock.Anything, tx, uint64(5)).Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			tt.mockCall(f)
			app := newApp(f)

			got, err := app.ConfirmPayment(context.Background(), tt.identity, 5)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ConfirmPayment() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			if got.Status != constant.OrderStatusPaid {
				t.Fatalf("status = %s, want %s", got.Status, constant.OrderStatusPaid)
			}
			if got.PaymentConfirmedAt == nil || got.PaymentConfirmedBy != "s1" {
				t.Fatal("payment confirmation fields not set")
			}
		})
	}
}

func TestOrderApp_UpdateStatus(t *testing.T) {
	tests := []struct {
		name     string
		identity *model.Identity
		req      *model.UpdateOrderStatusRequest
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:     "success: processing to shipped with tracking",
			identity: sellerIdentity("s1"),
			req:      &model.UpdateOrderStatusRequest{OrderID: 5, Status: constant.OrderStatusShipped, TrackingCode: "BR123", TrackingCarrier: "Correios"},
			mockCall: func(f fields) {
				f.orderRepo.On("GetByID", mock.Anything, uint64(5)).
					Return(&model.Order{ID: 5, BuyerID: "buyer1", BuyerAccountID: "acc-buyer1", SellerID: "s1", Status: constant.OrderStatusProcessing}, nil).Once()
				f.orderRepo.On("UpdateStatus", mock.Anything, uint64(5), constant.OrderStatusShipped, "BR123", "Correios").Return(nil).Once()
				f.dispatcher.On("Notify", "buyer1", "acc-buyer1", constant.EventOrderStatusUpdated, mock.Anything).Return(nil).Once()
			},
		},
		{
			name:     "error: delivered cannot go back to processing",
			identity: sellerIdentity("s1"),
			req:      &model.UpdateOrderStatusRequest{OrderID: 5, Status: constant.OrderStatusProcessing},
			mockCall: func(f fields) {
				f.orderRepo.On("GetByID", mock.Anything, uint64(5)).
					Return(&model.Order{ID: 5, BuyerID: "buyer1", SellerID: "s1", Status: constant.OrderStatusDelivered}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrConflict,
		},
		{
			name:     "error: cancellation must go through the cancel operation",
			identity: sellerIdentity("s1"),
			req:      &model.UpdateOrderStatusRequest{OrderID: 5, Status: constant.OrderStatusCancelled},
			mockCall: func(f fields) {},
			wantErr:  true,
			errCode:  constant.ErrInvalidRequest,
		},
		{
			name:     "error: buyer cannot move fulfillment status",
			identity: buyerIdentity(),
			req:      &model.UpdateOrderStatusRequest{OrderID: 5, Status: constant.OrderStatusShipped},
			mockCall: func(f fields) {
				f.orderRepo.On("GetByID", mock.Anything, uint64(5)).
					Return(&model.Order{ID: 5, BuyerID: "buyer1", SellerID: "s1", Status: constant.OrderStatusProcessing}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrForbidden,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			tt.mockCall(f)
			app := newApp(f)

			got, err := app.UpdateStatus(context.Background(), tt.identity, tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("UpdateStatus() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			if got.Status != tt.req.Status {
				t.Fatalf("status = %s, want %s", got.Status, tt.req.Status)
			}
			if got.TrackingCode != tt.req.TrackingCode {
				t.Fatalf("tracking code = %q, want %q", got.TrackingCode, tt.req.TrackingCode)
			}
		})
	}
}

func TestOrderApp_Cancel(t *testing.T) {
	tests := []struct {
		name     string
		identity *model.Identity
		req      *model.CancelOrderRequest
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:     "success: buyer cancels and stock is restored",
			identity: buyerIdentity(),
			req:      &model.CancelOrderRequest{OrderID: 5, Reason: "Comprei por engano"},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
				f.orderRepo.On("GetByIDTx", mock.Anything, tx, uint64(5)).
					Return(&model.Order{ID: 5, BuyerID: "buyer1", BuyerAccountID: "acc-buyer1", SellerID: "s1", SellerAccountID: "acc-s1", OrderCode: "ORD-AAAA1111", Status: constant.OrderStatusPendingPayment}, nil).Once()
				f.orderRepo.On("CancelTx", mock.Anything, tx, uint64(5), mock.MatchedBy(func(notes string) bool {
					return strings.Contains(notes, "CANCELADO: Comprei por engano")
				})).Return(nil).Once()
				f.orderRepo.On("GetItemsTx", mock.Anything, tx, uint64(5)).
					Return([]model.OrderItem{{OrderID: 5, ProductID: 1, Quantity: 2}}, nil).Once()
				f.productRepo.On("GetByIDTx", mock.Anything, tx, uint64(1)).
					Return(&model.Product{ID: 1, AccountID: "acc-s1", Code: "TEC-01", Name: "Teclado Mecânico", Quantity: 8}, nil).Once()
				f.productRepo.On("IncrementQuantityTx", mock.Anything, tx, uint64(1), 2).
					Return(10, nil).Once()
				f.stockRepo.On("InsertMovementTx", mock.Anything, tx, mock.MatchedBy(func(m *model.StockMovement) bool {
					return m.Type == constant.StockMovementIn &&
						m.PreviousQuantity == 8 && m.NewQuantity == 10 && m.Delta == 2 &&
						m.Notes == "Cancelamento do pedido ORD-AAAA1111"
				})).Return(nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.dispatcher.On("Notify", mock.Anything, mock.Anything, constant.EventOrderStatusUpdated, mock.Anything).
					Return(nil).Times(2)
			},
		},
		{
			name:     "error: shipped orders can no longer be cancelled",
			identity: buyerIdentity(),
			req:      &model.CancelOrderRequest{OrderID: 5, Reason: "Demorou demais para chegar"},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
				f.orderRepo.On("GetByIDTx", mock.Anything, tx, uint64(5)).
					Return(&model.Order{ID: 5, BuyerID: "buyer1", SellerID: "s1", Status: constant.OrderStatusShipped}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrConflict,
		},
		{
			name:     "error: strangers cannot cancel",
			identity: sellerIdentity("s9"),
			req:      &model.CancelOrderRequest{OrderID: 5, Reason: "Cancelamento indevido de terceiro"},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
				f.orderRepo.On("GetByIDTx", mock.Anything, tx, uint64(5)).
					Return(&model.Order{ID: 5, BuyerID: "buyer1", SellerID: "s1", Status: constant.OrderStatusPendingPayment}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrForbidden,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			tt.mockCall(f)
			app := newApp(f)

			got, err := app.Cancel(context.Background(), tt.identity, tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Cancel() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			if got.Status != constant.OrderStatusCancelled {
				t.Fatalf("status = %s, want %s", got.Status, constant.OrderStatusCancelled)
			}
			if !strings.Contains(got.Notes, "CANCELADO: ") {
				t.Fatalf("notes = %q, want cancellation marker", got.Notes)
			}
		})
	}
}

func TestOrderApp_List(t *testing.T) {
	t.Run("success: exchange statuses are listable", func(t *testing.T) {
		f := newFields(t)
		f.orderRepo.On("ListByAccount", mock.Anything, "acc-buyer1", constant.OrderStatusAwaitingExchange, 20, 0).
			Return([]model.Order{{ID: 1}}, int64(1), nil).Once()
		f.orderRepo.On("GetItems", mock.Anything, uint64(1)).Return(nil, nil).Once()
		app := newApp(f)

		got, err := app.List(context.Background(), buyerIdentity(), &model.ListOrdersRequest{Status: "awaiting_exchange"})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if got.Total != 1 || got.HasMore {
			t.Fatalf("List() total = %d, hasMore = %v", got.Total, got.HasMore)
		}
	})

	t.Run("error: unknown status is rejected", func(t *testing.T) {
		f := newFields(t)
		app := newApp(f)

		_, err := app.List(context.Background(), buyerIdentity(), &model.ListOrdersRequest{Status: "teleported"})
		if err == nil {
			t.Fatal("List() expected error")
		}
		assertErrCode(t, err, constant.ErrInvalidRequest)
	})
}

func TestOrderApp_GetByID(t *testing.T) {
	t.Run("success: buyer sees the split checkout aggregated", func(t *testing.T) {
		f := newFields(t)
		f.orderRepo.On("GetByID", mock.Anything, uint64(101)).
			Return(&model.Order{ID: 101, BuyerID: "buyer1", BuyerAccountID: "acc-buyer1", SellerID: "s1", OrderCode: "ORD-CHILD001", ParentOrderCode: "ORD-PARENT01", Subtotal: 200, Freight: 13.5, Total: 200}, nil).Once()
		f.orderRepo.On("GetItems", mock.Anything, uint64(101)).
			Return([]model.OrderItem{{OrderID: 101, ProductID: 1, Quantity: 2}}, nil).Twice()
		f.orderRepo.On("ListByParentCode", mock.Anything, "ORD-PARENT01").
			Return([]model.Order{
				{ID: 101, BuyerID: "buyer1", SellerID: "s1", Subtotal: 200, Freight: 13.5, Total: 200},
				{ID: 102, BuyerID: "buyer1", SellerID: "s2", Subtotal: 50, Freight: 3.0, Total: 50},
			}, nil).Once()
		f.orderRepo.On("GetItems", mock.Anything, uint64(102)).
			Return([]model.OrderItem{{OrderID: 102, ProductID: 2, Quantity: 1}}, nil).Once()
		app := newApp(f)

		got, err := app.GetByID(context.Background(), buyerIdentity(), 101)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if !got.IsGrouped {
			t.Fatal("GetByID() IsGrouped = false, want true")
		}
		if got.OrderCode != "ORD-PARENT01" {
			t.Fatalf("order code = %q, want parent code", got.OrderCode)
		}
		if got.Subtotal != 250 || got.Freight != 16.5 || got.Total != 250 {
			t.Fatalf("aggregated totals = %.2f/%.2f/%.2f", got.Subtotal, got.Freight, got.Total)
		}
		if len(got.SubOrders) != 2 || len(got.Items) != 2 {
			t.Fatalf("sub orders = %d, items = %d", len(got.SubOrders), len(got.Items))
		}
	})

	t.Run("error: outsiders get not found", func(t *testing.T) {
		f := newFields(t)
		f.orderRepo.On("GetByID", mock.Anything, uint64(101)).
			Return(&model.Order{ID: 101, BuyerID: "buyer1", BuyerAccountID: "acc-buyer1", SellerID: "s1", SellerAccountID: "acc-s1"}, nil).Once()
		app := newApp(f)

		_, err := app.GetByID(context.Background(), sellerIdentity("s9"), 101)
		if err == nil {
			t.Fatal("GetByID() expected error")
		}
		assertErrCode(t, err, constant.ErrNotFound)
	})
}

func TestOrderApp_EstimateFreight(t *testing.T) {
	f := newFields(t)
	f.addressRepo.On("GetUserAddress", mock.Anything, uint64(7), "buyer1", "acc-buyer1").
		Return(&model.Address{ID: 7, ZipCode: "01310930"}, nil).Once()
	f.addressRepo.On("GetDefaultZipByUser", mock.Anything, "s1").Return("20040030", nil).Once()
	f.estimator.On("DistanceKm", mock.Anything, "20040030", "01310930").Return(10.0).Once()
	f.estimator.On("Freight", 10.0).Return(13.5).Once()
	f.addressRepo.On("GetDefaultZipByUser", mock.Anything, "s2").Return("70040010", nil).Once()
	f.estimator.On("DistanceKm", mock.Anything, "70040010", "01310930").Return(2.0).Once()
	f.estimator.On("Freight", 2.0).Return(3.0).Once()
	app := newApp(f)

	// Three lines, two sellers: each seller is quoted once.
	got, err := app.EstimateFreight(context.Background(), buyerIdentity(), &model.EstimateFreightRequest{
		AddressID: 7,
		Items: []model.FreightLineRequest{
			{ProductID: 1, Quantity: 2, SellerID: "s1"},
			{ProductID: 3, Quantity: 1, SellerID: "s1"},
			{ProductID: 2, Quantity: 1, SellerID: "s2"},
		},
	})
	if err != nil {
		t.Fatalf("EstimateFreight() error = %v", err)
	}
	if len(got.Breakdown) != 2 {
		t.Fatalf("breakdown = %d quotes, want 2", len(got.Breakdown))
	}
	if got.TotalFreight != 16.5 {
		t.Fatalf("total freight = %.2f, want 16.50", got.TotalFreight)
	}
}

package cart_test

import (
	"context"
	"errors"
	"testing"
	"time"

	appcart "github.com/stocktech/marketplace/application/cart"
	"github.com/stocktech/marketplace/cmd/config"
	"github.com/stocktech/marketplace/constant"
	cartmocks "github.com/stocktech/marketplace/mocks/repository/cart"
	productmocks "github.com/stocktech/marketplace/mocks/repository/product"
	"github.com/stocktech/marketplace/model"
	cerr "github.com/stocktech/marketplace/utils/errors"
	"github.com/stretchr/testify/mock"
)

func cartConfig() *config.Config {
	return &config.Config{
		Cart: config.CartConfig{
			ReservationTTL: 30 * time.Minute,
		},
	}
}

func buyer(userID string) *model.Identity {
	return &model.Identity{
		UserID:    userID,
		AccountID: "acc-" + userID,
		OwnerCPF:  "11122233344",
		Name:      "Buyer " + userID,
		Role:      constant.RoleUser,
	}
}

func TestCartApp_AddItem(t *testing.T) {
	type fields struct {
		cartRepo    *cartmocks.CartRepository
		productRepo *productmocks.ProductRepository
	}
	type args struct {
		identity *model.Identity
		req      *model.AddCartItemRequest
	}
	tests := []struct {
		name     string
		fields   fields
		args     args
		mockCall func(f fields)
		wantQty  int
		wantErr  bool
		errCode  constant.ErrorType
		errMsg   string
	}{
		{
			name: "success: reserve within availability",
			fields: fields{
				cartRepo:    cartmocks.NewCartRepository(t),
				productRepo: productmocks.NewProductRepository(t),
			},
			args: args{
				identity: buyer("b2"),
				req:      &model.AddCartItemRequest{ProductID: 1, Quantity: 7},
			},
			mockCall: func(f fields) {
				f.productRepo.On("GetByID", mock.Anything, uint64(1)).
					Return(&model.Product{ID: 1, Quantity: 10}, nil).Once()
				f.cartRepo.On("SumActiveExcludingUser", mock.Anything, uint64(1), "b2", mock.Anything).
					Return(3, nil).Once()
				f.cartRepo.On("GetUserItem", mock.Anything, "b2", uint64(1)).
					Return(nil, nil).Once()
				f.cartRepo.On("Insert", mock.Anything, mock.MatchedBy(func(item *model.CartItem) bool {
					return item.UserID == "b2" && item.ProductID == 1 && item.Quantity == 7
				})).Return(uint64(42), nil).Once()
			},
			wantQty: 7,
		},
		{
			name: "error: another buyer's hold narrows availability",
			fields: fields{
				cartRepo:    cartmocks.NewCartRepository(t),
				productRepo: productmocks.NewProductRepository(t),
			},
			args: args{
				identity: buyer("b2"),
				req:      &model.AddCartItemRequest{ProductID: 1, Quantity: 8},
			},
			mockCall: func(f fields) {
				f.productRepo.On("GetByID", mock.Anything, uint64(1)).
					Return(&model.Product{ID: 1, Quantity: 10}, nil).Once()
				f.cartRepo.On("SumActiveExcludingUser", mock.Anything, uint64(1), "b2", mock.Anything).
					Return(3, nil).Once()
				f.cartRepo.On("GetUserItem", mock.Anything, "b2", uint64(1)).
					Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInsufficientStock,
			errMsg:  "Apenas 7 unidade(s) disponível(is)",
		},
		{
			name: "error: product sold out",
			fields: fields{
				cartRepo:    cartmocks.NewCartRepository(t),
				productRepo: productmocks.NewProductRepository(t),
			},
			args: args{
				identity: buyer("b2"),
				req:      &model.AddCartItemRequest{ProductID: 1, Quantity: 1},
			},
			mockCall: func(f fields) {
				f.productRepo.On("GetByID", mock.Anything, uint64(1)).
					Return(&model.Product{ID: 1, Quantity: 10}, nil).Once()
				f.cartRepo.On("SumActiveExcludingUser", mock.Anything, uint64(1), "b2", mock.Anything).
					Return(10, nil).Once()
				f.cartRepo.On("GetUserItem", mock.Anything, "b2", uint64(1)).
					Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInsufficientStock,
			errMsg:  "Produto esgotado",
		},
		{
			name: "success: merge with existing hold and renew TTL",
			fields: fields{
				cartRepo:    cartmocks.NewCartRepository(t),
				productRepo: productmocks.NewProductRepository(t),
			},
			args: args{
				identity: buyer("b1"),
				req:      &model.AddCartItemRequest{ProductID: 1, Quantity: 2},
			},
			mockCall: func(f fields) {
				f.productRepo.On("GetByID", mock.Anything, uint64(1)).
					Return(&model.Product{ID: 1, Quantity: 10}, nil).Once()
				f.cartRepo.On("SumActiveExcludingUser", mock.Anything, uint64(1), "b1", mock.Anything).
					Return(0, nil).Once()
				f.cartRepo.On("GetUserItem", mock.Anything, "b1", uint64(1)).
					Return(&model.CartItem{ID: 9, UserID: "b1", ProductID: 1, Quantity: 3}, nil).Once()
				f.cartRepo.On("UpdateQuantity", mock.Anything, uint64(9), 5, mock.Anything).
					Return(nil).Once()
			},
			wantQty: 5,
		},
		{
			name: "error: own hold plus request exceeds availability",
			fields: fields{
				cartRepo:    cartmocks.NewCartRepository(t),
				productRepo: productmocks.NewProductRepository(t),
			},
			args: args{
				identity: buyer("b1"),
				req:      &model.AddCartItemRequest{ProductID: 1, Quantity: 5},
			},
			mockCall: func(f fields) {
				f.productRepo.On("GetByID", mock.Anything, uint64(1)).
					Return(&model.Product{ID: 1, Quantity: 7}, nil).Once()
				f.cartRepo.On("SumActiveExcludingUser", mock.Anything, uint64(1), "b1", mock.Anything).
					Return(0, nil).Once()
				f.cartRepo.On("GetUserItem", mock.Anything, "b1", uint64(1)).
					Return(&model.CartItem{ID: 9, UserID: "b1", ProductID: 1, Quantity: 3}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInsufficientStock,
			errMsg:  "Apenas 7 unidade(s) disponível(is)",
		},
		{
			name: "error: product not found",
			fields: fields{
				cartRepo:    cartmocks.NewCartRepository(t),
				productRepo: productmocks.NewProductRepository(t),
			},
			args: args{
				identity: buyer("b1"),
				req:      &model.AddCartItemRequest{ProductID: 99, Quantity: 1},
			},
			mockCall: func(f fields) {
				f.productRepo.On("GetByID", mock.Anything, uint64(99)).
					Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
		{
			name: "error: zero quantity",
			fields: fields{
				cartRepo:    cartmocks.NewCartRepository(t),
				productRepo: productmocks.NewProductRepository(t),
			},
			args: args{
				identity: buyer("b1"),
				req:      &model.AddCartItemRequest{ProductID: 1, Quantity: 0},
			},
			mockCall: nil,
			wantErr:  true,
			errCode:  constant.ErrInvalidRequest,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appcart.NewCartApp(cartConfig(), tt.fields.cartRepo, tt.fields.productRepo, nil)

			got, err := app.AddItem(context.Background(), tt.args.identity, tt.args.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("AddItem() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				if tt.errMsg != "" && ce.Error() != tt.errMsg {
					t.Fatalf("error message = %q, want %q", ce.Error(), tt.errMsg)
				}
				return
			}

			if got.Quantity != tt.wantQty {
				t.Fatalf("AddItem() quantity = %d, want %d", got.Quantity, tt.wantQty)
			}
			if got.ReservedUntil.IsZero() {
				t.Fatal("AddItem() ReservedUntil should not be zero")
			}
		})
	}
}

func TestCartApp_UpdateQuantity(t *testing.T) {
	type fields struct {
		cartRepo    *cartmocks.CartRepository
		productRepo *productmocks.ProductRepository
	}
	tests := []struct {
		name     string
		fields   fields
		identity *model.Identity
		req      *model.UpdateCartQuantityRequest
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: shrink hold",
			fields: fields{
				cartRepo:    cartmocks.NewCartRepository(t),
				productRepo: productmocks.NewProductRepository(t),
			},
			identity: buyer("b1"),
			req:      &model.UpdateCartQuantityRequest{CartID: 9, Quantity: 2},
			mockCall: func(f fields) {
				f.cartRepo.On("GetByID", mock.Anything, uint64(9)).
					Return(&model.CartItem{ID: 9, UserID: "b1", ProductID: 1, Quantity: 5}, nil).Once()
				f.productRepo.On("GetByID", mock.Anything, uint64(1)).
					Return(&model.Product{ID: 1, Quantity: 10}, nil).Once()
				f.cartRepo.On("SumActiveExcludingUser", mock.Anything, uint64(1), "b1", mock.Anything).
					Return(0, nil).Once()
				f.cartRepo.On("UpdateQuantity", mock.Anything, uint64(9), 2, mock.Anything).
					Return(nil).Once()
			},
		},
		{
			name: "error: cart item belongs to someone else",
			fields: fields{
				cartRepo:    cartmocks.NewCartRepository(t),
				productRepo: productmocks.NewProductRepository(t),
			},
			identity: buyer("b2"),
			req:      &model.UpdateCartQuantityRequest{CartID: 9, Quantity: 2},
			mockCall: func(f fields) {
				f.cartRepo.On("GetByID", mock.Anything, uint64(9)).
					Return(&model.CartItem{ID: 9, UserID: "b1", ProductID: 1, Quantity: 5}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
		{
			name: "error: growth exceeds availability",
			fields: fields{
				cartRepo:    cartmocks.NewCartRepository(t),
				productRepo: productmocks.NewProductRepository(t),
			},
			identity: buyer("b1"),
			req:      &model.UpdateCartQuantityRequest{CartID: 9, Quantity: 8},
			mockCall: func(f fields) {
				f.cartRepo.On("GetByID", mock.Anything, uint64(9)).
					Return(&model.CartItem{ID: 9, UserID: "b1", ProductID: 1, Quantity: 5}, nil).Once()
				f.productRepo.On("GetByID", mock.Anything, uint64(1)).
					Return(&model.Product{ID: 1, Quantity: 10}, nil).Once()
				f.cartRepo.On("SumActiveExcludingUser", mock.Anything, uint64(1), "b1", mock.Anything).
					Return(4, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInsufficientStock,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appcart.NewCartApp(cartConfig(), tt.fields.cartRepo, tt.fields.productRepo, nil)

			_, err := app.UpdateQuantity(context.Background(), tt.identity, tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("UpdateQuantity() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
			}
		})
	}
}

func TestCartApp_RemoveItem(t *testing.T) {
	cartRepo := cartmocks.NewCartRepository(t)
	productRepo := productmocks.NewProductRepository(t)
	app := appcart.NewCartApp(cartConfig(), cartRepo, productRepo, nil)

	cartRepo.On("GetByID", mock.Anything, uint64(9)).
		Return(&model.CartItem{ID: 9, UserID: "b1", ProductID: 1, Quantity: 5}, nil).Once()
	cartRepo.On("Delete", mock.Anything, uint64(9)).Return(nil).Once()

	if err := app.RemoveItem(context.Background(), buyer("b1"), 9); err != nil {
		t.Fatalf("RemoveItem() error = %v", err)
	}
}

func TestCartApp_PurgeExpired(t *testing.T) {
	cartRepo := cartmocks.NewCartRepository(t)
	productRepo := productmocks.NewProductRepository(t)
	app := appcart.NewCartApp(cartConfig(), cartRepo, productRepo, nil)

	cartRepo.On("DeleteExpired", mock.Anything, mock.Anything).Return(int64(5), nil).Once()

	removed, err := app.PurgeExpired(context.Background())
	if err != nil {
		t.Fatalf("PurgeExpired() error = %v", err)
	}
	if removed != 5 {
		t.Fatalf("PurgeExpired() removed = %d, want 5", removed)
	}
}

package transport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	cartapp "github.com/stocktech/marketplace/application/cart"
	orderapp "github.com/stocktech/marketplace/application/order"
	returnapp "github.com/stocktech/marketplace/application/returns"
	stockapp "github.com/stocktech/marketplace/application/stock"
	"github.com/stocktech/marketplace/cmd/config"
	"github.com/stocktech/marketplace/constant"
	"github.com/stocktech/marketplace/model"
	redisrepo "github.com/stocktech/marketplace/repository/redis"
	"github.com/stocktech/marketplace/thirdparty/avadmin"
	utilsContext "github.com/stocktech/marketplace/utils/context"
	"github.com/stocktech/marketplace/utils/errors"
	validatorx "github.com/stocktech/marketplace/utils/validator"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RestHandler struct {
	CartApp   cartapp.CartApp
	OrderApp  orderapp.OrderApp
	ReturnApp returnapp.ReturnApp
	StockApp  stockapp.StockApp
}

func NewTransport(
	cfg *config.Config,
	avAdmin avadmin.Client,
	cache redisrepo.Repository,
	CartApp cartapp.CartApp,
	OrderApp orderapp.OrderApp,
	ReturnApp returnapp.ReturnApp,
	StockApp stockapp.StockApp,
) http.Handler {
	mux := mux.NewRouter()

	rh := &RestHandler{
		CartApp:   CartApp,
		OrderApp:  OrderApp,
		ReturnApp: ReturnApp,
		StockApp:  StockApp,
	}

	// Swagger UI
	mux.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	mux.HandleFunc("/health", rh.Health).Methods(http.MethodGet)

	// Cart
	mux.HandleFunc("/cart", rh.ListCart).Methods(http.MethodGet)
	mux.HandleFunc("/cart/items", rh.AddCartItem).Methods(http.MethodPost)
	mux.HandleFunc("/cart/items/{id}", rh.UpdateCartItem).Methods(http.MethodPut)
	mux.HandleFunc("/cart/items/{id}", rh.RemoveCartItem).Methods(http.MethodDelete)

	// Orders
	mux.HandleFunc("/orders", rh.CreateOrder).Methods(http.MethodPost)
	mux.HandleFunc("/orders", rh.ListOrders).Methods(http.MethodGet)
	mux.HandleFunc("/orders/status", rh.UpdateOrderStatus).Methods(http.MethodPut)
	mux.HandleFunc("/orders/cancel", rh.CancelOrder).Methods(http.MethodPost)
	mux.HandleFunc("/orders/freight-estimate", rh.EstimateFreight).Methods(http.MethodPost)
	mux.HandleFunc("/orders/{id}", rh.GetOrder).Methods(http.MethodGet)
	mux.HandleFunc("/orders/{id}/confirm-payment", rh.ConfirmPayment).Methods(http.MethodPost)

	// Returns
	mux.HandleFunc("/returns", rh.RequestReturn).Methods(http.MethodPost)
	mux.HandleFunc("/returns", rh.ListReturns).Methods(http.MethodGet)
	mux.HandleFunc("/returns/respond", rh.RespondReturn).Methods(http.MethodPost)
	mux.HandleFunc("/returns/validate", rh.ValidateExchange).Methods(http.MethodPost)
	mux.HandleFunc("/returns/resolve", rh.ResolveRejectedExchange).Methods(http.MethodPost)
	mux.HandleFunc("/returns/{id}/defective-received", rh.ConfirmDefectiveReceived).Methods(http.MethodPost)

	// Stock
	mux.HandleFunc("/stock/restock", rh.Restock).Methods(http.MethodPost)
	mux.HandleFunc("/stock/movements", rh.ListMovements).Methods(http.MethodGet)

	// Internal (API-key protected, bypasses user auth)
	internal := mux.PathPrefix("/internal").Subrouter()
	internal.Use(InternalMiddleware(cfg.Auth.InternalAPIKey))
	internal.HandleFunc("/cart/sweep", rh.SweepCart).Methods(http.MethodPost)

	// middleware
	mux.Use(LoggingMiddleware())
	mux.Use(AuthMiddleware(cfg, avAdmin, cache))

	return mux
}

func (s *RestHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, map[string]string{"status": "ok"})
}

func identityFrom(r *http.Request) (*model.Identity, error) {
	identity, ok := utilsContext.GetIdentity(r.Context())
	if !ok {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}
	return identity, nil
}

func pathID(r *http.Request) (uint64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	return id, nil
}

// AddCartItem handler
// @Summary Add item to cart
// @Description Reserve a quantity of a product in the caller's cart
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body model.AddCartItemRequest true "Add Cart Item Request"
// @Success 200 {object} model.CartItem
// @Failure 409 {object} errors.CustomError
// @Router /cart/items [post]
func (s *RestHandler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, err := identityFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req model.AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.CartApp.AddItem(ctx, identity, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func (s *RestHandler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, err := identityFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	cartID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req model.UpdateCartQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	req.CartID = cartID
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.CartApp.UpdateQuantity(ctx, identity, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func (s *RestHandler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, err := identityFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	cartID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.CartApp.RemoveItem(ctx, identity, cartID); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

func (s *RestHandler) ListCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, err := identityFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.CartApp.List(ctx, identity)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// SweepCart removes expired reservations. Called by the internal scheduler,
// protected by the static API key.
func (s *RestHandler) SweepCart(w http.ResponseWriter, r *http.Request) {
	removed, err := s.CartApp.PurgeExpired(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, map[string]int64{"removed": removed})
}

// CreateOrder handler
// @Summary Create order
// @Description Create one order per seller from the checkout lines, sharing a parent order code
// @Tags Orders
// @Accept json
// @Produce json
// @Param request body model.CreateOrderRequest true "Create Order Request"
// @Success 200 {object} model.CreateOrderResponse
// @Failure 409 {object} errors.CustomError
// @Router /orders [post]
func (s *RestHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, err := identityFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req model.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.OrderApp.Create(ctx, identity, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func (s *RestHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, err := identityFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	req := model.ListOrdersRequest{
		Status: r.URL.Query().Get("status"),
		Limit:  limit,
		Offset: offset,
	}

	res, err := s.OrderApp.List(ctx, identity, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func (s *RestHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, err := identityFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	orderID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.OrderApp.GetByID(ctx, identity, orderID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ConfirmPayment handler
// @Summary Confirm order payment
// @Description Seller confirms payment, completing the pending transaction pairs
// @Tags Orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} model.Order
// @Failure 409 {object} errors.CustomError
// @Router /orders/{id}/confirm-payment [post]
func (s *RestHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, err := identityFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	orderID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.OrderApp.ConfirmPayment(ctx, identity, orderID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func (s *RestHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, err := identityFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req model.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.OrderApp.UpdateStatus(ctx, identity, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func (s *RestHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, err := identityFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req model.CancelOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.OrderApp.Cancel(ctx, identity, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func (s *RestHandler) EstimateFreight(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, err := identityFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req model.EstimateFreightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.OrderApp.EstimateFreight(ctx, identity, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// RequestReturn handler
// @Summary Request a return
// @Description Buyer opens a return for one line of an order, subject to the warranty window
// @Tags Returns
// @Accept json
// @Produce json
// @Param request body model.RequestReturnRequest true "Request Return Request"
// @Success 200 {object} model.ProductReturn
// @Failure 400 {object} errors.CustomError
// @Router /returns [post]
func (s *RestHandler) RequestReturn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, err := identityFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req model.RequestReturnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.ReturnApp.Request(ctx, identity, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func (s *RestHandler) RespondReturn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, err := identityFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req model.RespondReturnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.ReturnApp.Respond(ctx, identity, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func (s *RestHandler) ConfirmDefectiveReceived(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, err := identityFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	returnID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.ReturnApp.ConfirmDefectiveReceived(ctx, identity, returnID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func (s *RestHandler) ValidateExchange(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, err := identityFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req model.ValidateExchangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.ReturnApp.ValidateExchange(ctx, identity, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func (s *RestHandler) ResolveRejectedExchange(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, err := identityFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req model.ResolveExchangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.ReturnApp.ResolveRejectedExchange(ctx, identity, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func (s *RestHandler) ListReturns(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, err := identityFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.ReturnApp.List(ctx, identity)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Restock handler
// @Summary Restock a product
// @Description Owner sets the product quantity, recording the delta in the movement ledger
// @Tags Stock
// @Accept json
// @Produce json
// @Param request body model.RestockRequest true "Restock Request"
// @Success 200 {object} model.RestockResponse
// @Failure 403 {object} errors.CustomError
// @Router /stock/restock [post]
func (s *RestHandler) Restock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, err := identityFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req model.RestockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.StockApp.Restock(ctx, identity, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func (s *RestHandler) ListMovements(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, err := identityFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	productID, _ := strconv.ParseUint(r.URL.Query().Get("product_id"), 10, 64)
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	res, err := s.StockApp.Movements(ctx, identity, productID, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

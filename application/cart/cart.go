package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/stocktech/marketplace/cmd/config"
	"github.com/stocktech/marketplace/constant"
	"github.com/stocktech/marketplace/model"
	cartrepo "github.com/stocktech/marketplace/repository/cart"
	productrepo "github.com/stocktech/marketplace/repository/product"
	"github.com/stocktech/marketplace/thirdparty/rabbitmq"
	"github.com/stocktech/marketplace/utils/errors"
	"github.com/stocktech/marketplace/utils/logger"
	"go.uber.org/zap"
)

// CartApp manages soft reservations: advisory, time-limited holds that
// narrow the availability other buyers see without ever touching the
// product's real quantity.
type CartApp interface {
	AddItem(ctx context.Context, identity *model.Identity, req *model.AddCartItemRequest) (*model.CartItem, error)
	UpdateQuantity(ctx context.Context, identity *model.Identity, req *model.UpdateCartQuantityRequest) (*model.CartItem, error)
	RemoveItem(ctx context.Context, identity *model.Identity, cartID uint64) error
	List(ctx context.Context, identity *model.Identity) ([]model.CartItem, error)
	PurgeExpired(ctx context.Context) (int64, error)
}

type cartAppImpl struct {
	config      *config.Config
	cartRepo    cartrepo.CartRepository
	productRepo productrepo.ProductRepository
	dispatcher  rabbitmq.Dispatcher
}

func NewCartApp(config *config.Config, cartRepo cartrepo.CartRepository, productRepo productrepo.ProductRepository, dispatcher rabbitmq.Dispatcher) CartApp {
	return &cartAppImpl{
		config:      config,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		dispatcher:  dispatcher,
	}
}

// availableFor computes how many units the caller may still hold: the real
// quantity minus everyone else's live reservations. The caller's own hold is
// excluded so renewing or growing it competes only against other buyers.
func (s *cartAppImpl) availableFor(ctx context.Context, productID uint64, userID string, now time.Time) (int, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		logger.Error("[availableFor] get product", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}
	if product == nil {
		return 0, errors.SetCustomErrorMessage(constant.ErrNotFound, "Produto não encontrado")
	}

	reservedByOthers, err := s.cartRepo.SumActiveExcludingUser(ctx, productID, userID, now)
	if err != nil {
		logger.Error("[availableFor] sum reservations", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}

	return product.Quantity - reservedByOthers, nil
}

func insufficientStock(available int) error {
	if available <= 0 {
		return errors.SetCustomErrorMessage(constant.ErrInsufficientStock, "Produto esgotado")
	}
	return errors.SetCustomErrorMessage(constant.ErrInsufficientStock,
		fmt.Sprintf("Apenas %d unidade(s) disponível(is)", available))
}

func (s *cartAppImpl) AddItem(ctx context.Context, identity *model.Identity, req *model.AddCartItemRequest) (*model.CartItem, error) {
	if req.Quantity <= 0 {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	now := time.Now()
	available, err := s.availableFor(ctx, req.ProductID, identity.UserID, now)
	if err != nil {
		return nil, err
	}

	existing, err := s.cartRepo.GetUserItem(ctx, identity.UserID, req.ProductID)
	if err != nil {
		logger.Error("[AddItem] get user item", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	// The caller's whole hold must fit within what others left available.
	newQuantity := req.Quantity
	if existing != nil {
		newQuantity += existing.Quantity
	}
	if available <= 0 || newQuantity > available {
		return nil, insufficientStock(available)
	}

	reservedUntil := now.Add(s.config.Cart.ReservationTTL)

	if existing != nil {
		if err := s.cartRepo.UpdateQuantity(ctx, existing.ID, newQuantity, reservedUntil); err != nil {
			logger.Error("[AddItem] update quantity", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		existing.Quantity = newQuantity
		existing.ReservedUntil = reservedUntil
		s.notifyCartUpdated(identity, "update", existing.ID, req.ProductID)
		return existing, nil
	}

	item := &model.CartItem{
		AccountID:     identity.AccountID,
		UserID:        identity.UserID,
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
		ReservedAt:    now,
		ReservedUntil: reservedUntil,
	}
	id, err := s.cartRepo.Insert(ctx, item)
	if err != nil {
		logger.Error("[AddItem] insert", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	item.ID = id

	s.notifyCartUpdated(identity, "add", id, req.ProductID)
	return item, nil
}

func (s *cartAppImpl) UpdateQuantity(ctx context.Context, identity *model.Identity, req *model.UpdateCartQuantityRequest) (*model.CartItem, error) {
	if req.Quantity <= 0 {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	existing, err := s.cartRepo.GetByID(ctx, req.CartID)
	if err != nil {
		logger.Error("[UpdateQuantity] get cart item", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if existing == nil || existing.UserID != identity.UserID {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	now := time.Now()
	available, err := s.availableFor(ctx, existing.ProductID, identity.UserID, now)
	if err != nil {
		return nil, err
	}
	if available < req.Quantity {
		return nil, insufficientStock(available)
	}

	reservedUntil := now.Add(s.config.Cart.ReservationTTL)
	if err := s.cartRepo.UpdateQuantity(ctx, existing.ID, req.Quantity, reservedUntil); err != nil {
		logger.Error("[UpdateQuantity] update", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	existing.Quantity = req.Quantity
	existing.ReservedUntil = reservedUntil
	s.notifyCartUpdated(identity, "update", existing.ID, existing.ProductID)
	return existing, nil
}

func (s *cartAppImpl) RemoveItem(ctx context.Context, identity *model.Identity, cartID uint64) error {
	existing, err := s.cartRepo.GetByID(ctx, cartID)
	if err != nil {
		logger.Error("[RemoveItem] get cart item", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if existing == nil || existing.UserID != identity.UserID {
		return errors.SetCustomError(constant.ErrNotFound)
	}

	// No stock to give back: the hold never touched the counter, the row
	// just stops narrowing availability.
	if err := s.cartRepo.Delete(ctx, cartID); err != nil {
		logger.Error("[RemoveItem] delete", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	s.notifyCartUpdated(identity, "remove", cartID, existing.ProductID)
	return nil
}

func (s *cartAppImpl) List(ctx context.Context, identity *model.Identity) ([]model.CartItem, error) {
	items, err := s.cartRepo.ListByUser(ctx, identity.UserID)
	if err != nil {
		logger.Error("[List] list cart", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return items, nil
}

// PurgeExpired reclaims reservations whose TTL has passed. It runs from the
// periodic sweep, decoupled from checkout.
func (s *cartAppImpl) PurgeExpired(ctx context.Context) (int64, error) {
	removed, err := s.cartRepo.DeleteExpired(ctx, time.Now())
	if err != nil {
		logger.Error("[PurgeExpired] delete expired", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}
	if removed > 0 {
		logger.Info("[PurgeExpired] removed expired cart reservations", zap.Int64("count", removed))
	}
	return removed, nil
}

func (s *cartAppImpl) notifyCartUpdated(identity *model.Identity, action string, cartID, productID uint64) {
	if s.dispatcher == nil {
		return
	}
	payload := map[string]interface{}{
		"action":     action,
		"cart_id":    cartID,
		"product_id": productID,
	}
	if err := s.dispatcher.Notify(identity.UserID, identity.AccountID, constant.EventCartUpdated, payload); err != nil {
		logger.Error("[notifyCartUpdated] notify", zap.String("error", err.Error()))
	}
}

package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/stocktech/marketplace/constant"
	"github.com/stocktech/marketplace/model"
	productrepo "github.com/stocktech/marketplace/repository/product"
	stockrepo "github.com/stocktech/marketplace/repository/stock"
	txrepo "github.com/stocktech/marketplace/repository/tx"
	"github.com/stocktech/marketplace/utils/errors"
	"github.com/stocktech/marketplace/utils/logger"
	"go.uber.org/zap"
)

// StockApp covers the owner-facing side of the ledger: direct quantity
// adjustments and reading the movement history.
type StockApp interface {
	Restock(ctx context.Context, identity *model.Identity, req *model.RestockRequest) (*model.RestockResponse, error)
	Movements(ctx context.Context, identity *model.Identity, productID uint64, limit int) ([]model.StockMovement, error)
}

type stockAppImpl struct {
	txRepo      txrepo.TxRepository
	productRepo productrepo.ProductRepository
	stockRepo   stockrepo.StockRepository
}

func NewStockApp(txRepo txrepo.TxRepository, productRepo productrepo.ProductRepository, stockRepo stockrepo.StockRepository) StockApp {
	return &stockAppImpl{
		txRepo:      txRepo,
		productRepo: productRepo,
		stockRepo:   stockRepo,
	}
}

// Restock sets the product quantity to an absolute value and records the
// delta as a movement. Setting the same quantity is a no-op and leaves the
// ledger untouched.
func (s *stockAppImpl) Restock(ctx context.Context, identity *model.Identity, req *model.RestockRequest) (*model.RestockResponse, error) {
	if req.NewQuantity < 0 {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		logger.Error("[Restock] get product", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if product == nil {
		return nil, errors.SetCustomErrorMessage(constant.ErrNotFound, "Produto não encontrado")
	}
	if product.OwnerCPF != identity.OwnerCPF {
		return nil, errors.SetCustomErrorMessage(constant.ErrForbidden, "Produto pertence a outro vendedor")
	}

	delta := req.NewQuantity - product.Quantity
	if delta == 0 {
		return &model.RestockResponse{
			Product: product,
			Message: "Quantidade não alterada",
		}, nil
	}

	movementType := constant.StockMovementIn
	message := fmt.Sprintf("%d unidade(s) adicionada(s)", delta)
	if delta < 0 {
		movementType = constant.StockMovementOut
		message = fmt.Sprintf("%d unidade(s) removida(s)", -delta)
	}

	notes := req.Notes
	if notes == "" {
		notes = "Ajuste manual de estoque"
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[Restock] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	defer s.txRepo.RollbackTx(tx)

	if err := s.productRepo.SetQuantityTx(ctx, tx, product.ID, req.NewQuantity); err != nil {
		logger.Error("[Restock] set quantity", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	movement := &model.StockMovement{
		AccountID:        product.AccountID,
		OwnerCPF:         product.OwnerCPF,
		UserID:           identity.UserID,
		ProductID:        product.ID,
		ProductCode:      product.Code,
		ProductName:      product.Name,
		Type:             movementType,
		PreviousQuantity: product.Quantity,
		NewQuantity:      req.NewQuantity,
		Delta:            delta,
		Notes:            notes,
	}
	if err := s.stockRepo.InsertMovementTx(ctx, tx, movement); err != nil {
		logger.Error("[Restock] insert movement", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[Restock] commit", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	product.Quantity = req.NewQuantity
	movement.CreatedAt = time.Now()

	return &model.RestockResponse{
		Product:  product,
		Movement: movement,
		Message:  message,
	}, nil
}

// Movements lists the owner's ledger newest first. productID 0 means all
// products.
func (s *stockAppImpl) Movements(ctx context.Context, identity *model.Identity, productID uint64, limit int) ([]model.StockMovement, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	movements, err := s.stockRepo.ListMovements(ctx, identity.OwnerCPF, productID, limit)
	if err != nil {
		logger.Error("[Movements] list", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return movements, nil
}

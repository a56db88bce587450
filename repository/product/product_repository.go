package product

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/stocktech/marketplace/constant"
	"github.com/stocktech/marketplace/model"
	"github.com/stocktech/marketplace/utils/errors"
)

type ProductRepository interface {
	GetByID(ctx context.Context, id uint64) (*model.Product, error)
	GetByIDTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.Product, error)
	DecrementQuantityTx(ctx context.Context, tx *sqlx.Tx, productID uint64, qty int) (int, error)
	IncrementQuantityTx(ctx context.Context, tx *sqlx.Tx, productID uint64, qty int) (int, error)
	IncrementDefectiveTx(ctx context.Context, tx *sqlx.Tx, productID uint64, qty int) (int, error)
	SetQuantityTx(ctx context.Context, tx *sqlx.Tx, productID uint64, quantity int) error
}

type SQL struct {
	conn *sqlx.DB
}

func NewProductRepository(conn *sqlx.DB) ProductRepository {
	return &SQL{conn: conn}
}

const productColumns = "id, account_id, owner_cpf, code, name, price, quantity, min_quantity, defective_quantity, warranty_period, created_at, updated_at"

func (r *SQL) GetByID(ctx context.Context, id uint64) (*model.Product, error) {
	var p model.Product
	err := r.conn.GetContext(ctx, &p, "SELECT "+productColumns+" FROM products WHERE id = ?", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *SQL) GetByIDTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.Product, error) {
	var p model.Product
	err := tx.GetContext(ctx, &p, "SELECT "+productColumns+" FROM products WHERE id = ?", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// DecrementQuantityTx performs the hard allocation as a single conditional
// update: the decrement only happens when enough stock remains, so two
// concurrent requests cannot drive the counter negative. Returns the quantity
// after the decrement.
func (r *SQL) DecrementQuantityTx(ctx context.Context, tx *sqlx.Tx, productID uint64, qty int) (int, error) {
	res, err := tx.ExecContext(ctx,
		"UPDATE products SET quantity = quantity - ?, updated_at = NOW() WHERE id = ? AND quantity >= ?",
		qty, productID, qty)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return 0, errors.SetCustomError(constant.ErrInsufficientStock)
	}

	var newQty int
	if err := tx.GetContext(ctx, &newQty, "SELECT quantity FROM products WHERE id = ?", productID); err != nil {
		return 0, err
	}
	return newQty, nil
}

// IncrementQuantityTx returns the quantity after the increment.
func (r *SQL) IncrementQuantityTx(ctx context.Context, tx *sqlx.Tx, productID uint64, qty int) (int, error) {
	if _, err := tx.ExecContext(ctx,
		"UPDATE products SET quantity = quantity + ?, updated_at = NOW() WHERE id = ?",
		qty, productID); err != nil {
		return 0, err
	}

	var newQty int
	if err := tx.GetContext(ctx, &newQty, "SELECT quantity FROM products WHERE id = ?", productID); err != nil {
		return 0, err
	}
	return newQty, nil
}

// IncrementDefectiveTx returns the defective quantity after the increment.
func (r *SQL) IncrementDefectiveTx(ctx context.Context, tx *sqlx.Tx, productID uint64, qty int) (int, error) {
	if _, err := tx.ExecContext(ctx,
		"UPDATE products SET defective_quantity = defective_quantity + ?, updated_at = NOW() WHERE id = ?",
		qty, productID); err != nil {
		return 0, err
	}

	var newQty int
	if err := tx.GetContext(ctx, &newQty, "SELECT defective_quantity FROM products WHERE id = ?", productID); err != nil {
		return 0, err
	}
	return newQty, nil
}

func (r *SQL) SetQuantityTx(ctx context.Context, tx *sqlx.Tx, productID uint64, quantity int) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE products SET quantity = ?, updated_at = NOW() WHERE id = ?",
		quantity, productID)
	return err
}

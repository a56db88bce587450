package cart

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stocktech/marketplace/model"
)

type CartRepository interface {
	GetByID(ctx context.Context, id uint64) (*model.CartItem, error)
	GetUserItem(ctx context.Context, userID string, productID uint64) (*model.CartItem, error)
	ListByUser(ctx context.Context, userID string) ([]model.CartItem, error)
	SumActiveExcludingUser(ctx context.Context, productID uint64, excludeUserID string, now time.Time) (int, error)
	Insert(ctx context.Context, item *model.CartItem) (uint64, error)
	UpdateQuantity(ctx context.Context, cartID uint64, quantity int, reservedUntil time.Time) error
	Delete(ctx context.Context, cartID uint64) error
	DeleteUserProducts(ctx context.Context, userID string, productIDs []uint64) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type SQL struct {
	conn *sqlx.DB
}

func NewCartRepository(conn *sqlx.DB) CartRepository {
	return &SQL{conn: conn}
}

const cartColumns = "id, account_id, user_id, product_id, quantity, reserved_at, reserved_until, created_at, updated_at"

func (r *SQL) GetByID(ctx context.Context, id uint64) (*model.CartItem, error) {
	var item model.CartItem
	err := r.conn.GetContext(ctx, &item, "SELECT "+cartColumns+" FROM carts WHERE id = ?", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *SQL) GetUserItem(ctx context.Context, userID string, productID uint64) (*model.CartItem, error) {
	var item model.CartItem
	err := r.conn.GetContext(ctx, &item,
		"SELECT "+cartColumns+" FROM carts WHERE user_id = ? AND product_id = ?", userID, productID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *SQL) ListByUser(ctx context.Context, userID string) ([]model.CartItem, error) {
	items := make([]model.CartItem, 0)
	err := r.conn.SelectContext(ctx, &items,
		"SELECT "+cartColumns+" FROM carts WHERE user_id = ? ORDER BY created_at", userID)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// SumActiveExcludingUser totals the live holds on a product held by everyone
// except the given user. Expired rows count as released even before the
// sweep deletes them.
func (r *SQL) SumActiveExcludingUser(ctx context.Context, productID uint64, excludeUserID string, now time.Time) (int, error) {
	var total sql.NullInt64
	err := r.conn.GetContext(ctx, &total,
		"SELECT COALESCE(SUM(quantity),0) FROM carts WHERE product_id = ? AND user_id != ? AND reserved_until > ?",
		productID, excludeUserID, now)
	if err != nil {
		return 0, err
	}
	if !total.Valid {
		return 0, nil
	}
	return int(total.Int64), nil
}

func (r *SQL) Insert(ctx context.Context, item *model.CartItem) (uint64, error) {
	res, err := r.conn.ExecContext(ctx,
		"INSERT INTO carts (account_id, user_id, product_id, quantity, reserved_at, reserved_until) VALUES (?, ?, ?, ?, ?, ?)",
		item.AccountID, item.UserID, item.ProductID, item.Quantity, item.ReservedAt, item.ReservedUntil)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *SQL) UpdateQuantity(ctx context.Context, cartID uint64, quantity int, reservedUntil time.Time) error {
	_, err := r.conn.ExecContext(ctx,
		"UPDATE carts SET quantity = ?, reserved_at = NOW(), reserved_until = ?, updated_at = NOW() WHERE id = ?",
		quantity, reservedUntil, cartID)
	return err
}

func (r *SQL) Delete(ctx context.Context, cartID uint64) error {
	_, err := r.conn.ExecContext(ctx, "DELETE FROM carts WHERE id = ?", cartID)
	return err
}

func (r *SQL) DeleteUserProducts(ctx context.Context, userID string, productIDs []uint64) error {
	if len(productIDs) == 0 {
		return nil
	}
	q, args, err := sqlx.In("DELETE FROM carts WHERE user_id = ? AND product_id IN (?)", userID, productIDs)
	if err != nil {
		return err
	}
	_, err = r.conn.ExecContext(ctx, r.conn.Rebind(q), args...)
	return err
}

func (r *SQL) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.conn.ExecContext(ctx, "DELETE FROM carts WHERE reserved_until < ?", now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

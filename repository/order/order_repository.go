package order

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stocktech/marketplace/constant"
	"github.com/stocktech/marketplace/model"
)

type OrderRepository interface {
	InsertOrderTx(ctx context.Context, tx *sqlx.Tx, order *model.Order) (uint64, error)
	InsertOrderItemsTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, items []model.OrderItem) error
	GetByID(ctx context.Context, id uint64) (*model.Order, error)
	GetByIDTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.Order, error)
	GetItems(ctx context.Context, orderID uint64) ([]model.OrderItem, error)
	GetItemsTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) ([]model.OrderItem, error)
	ListByParentCode(ctx context.Context, parentOrderCode string) ([]model.Order, error)
	ListByAccount(ctx context.Context, accountID string, status constant.OrderStatus, limit, offset int) ([]model.Order, int64, error)
	UpdateStatus(ctx context.Context, orderID uint64, status constant.OrderStatus, trackingCode, trackingCarrier string) error
	UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, status constant.OrderStatus) error
	ConfirmPaymentTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, confirmedBy string, confirmedAt time.Time) error
	CancelTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, notes string) error
}

type SQL struct {
	conn *sqlx.DB
}

func NewOrderRepository(conn *sqlx.DB) OrderRepository {
	return &SQL{conn: conn}
}

const orderColumns = `id, account_id, owner_cpf, buyer_account_id, seller_account_id, buyer_id, seller_id,
	order_code, parent_order_code, status, subtotal, freight, total, address_id, payment_notes,
	payment_confirmed_at, payment_confirmed_by, tracking_code, tracking_carrier, notes, created_at, updated_at`

const itemColumns = "id, order_id, product_id, product_name, price, quantity, seller_id, seller_name, warranty_period"

func (r *SQL) InsertOrderTx(ctx context.Context, tx *sqlx.Tx, o *model.Order) (uint64, error) {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO orders
			(account_id, owner_cpf, buyer_account_id, seller_account_id, buyer_id, seller_id,
			 order_code, parent_order_code, status, subtotal, freight, total, address_id, payment_notes, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.AccountID, o.OwnerCPF, o.BuyerAccountID, o.SellerAccountID, o.BuyerID, o.SellerID,
		o.OrderCode, o.ParentOrderCode, o.Status, o.Subtotal, o.Freight, o.Total, o.AddressID,
		o.PaymentNotes, o.Notes)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *SQL) InsertOrderItemsTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, items []model.OrderItem) error {
	q := `INSERT INTO order_items (order_id, product_id, product_name, price, quantity, seller_id, seller_name, warranty_period)
		  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	for _, it := range items {
		if _, err := tx.ExecContext(ctx, q, orderID, it.ProductID, it.ProductName, it.Price,
			it.Quantity, it.SellerID, it.SellerName, it.WarrantyPeriod); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQL) GetByID(ctx context.Context, id uint64) (*model.Order, error) {
	var o model.Order
	err := r.conn.GetContext(ctx, &o, "SELECT "+orderColumns+" FROM orders WHERE id = ?", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *SQL) GetByIDTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.Order, error) {
	var o model.Order
	err := tx.GetContext(ctx, &o, "SELECT "+orderColumns+" FROM orders WHERE id = ? FOR UPDATE", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *SQL) GetItems(ctx context.Context, orderID uint64) ([]model.OrderItem, error) {
	items := make([]model.OrderItem, 0)
	err := r.conn.SelectContext(ctx, &items,
		"SELECT "+itemColumns+" FROM order_items WHERE order_id = ?", orderID)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *SQL) GetItemsTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) ([]model.OrderItem, error) {
	items := make([]model.OrderItem, 0)
	err := tx.SelectContext(ctx, &items,
		"SELECT "+itemColumns+" FROM order_items WHERE order_id = ?", orderID)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *SQL) ListByParentCode(ctx context.Context, parentOrderCode string) ([]model.Order, error) {
	orders := make([]model.Order, 0)
	err := r.conn.SelectContext(ctx, &orders,
		"SELECT "+orderColumns+" FROM orders WHERE parent_order_code = ? ORDER BY created_at DESC",
		parentOrderCode)
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *SQL) ListByAccount(ctx context.Context, accountID string, status constant.OrderStatus, limit, offset int) ([]model.Order, int64, error) {
	where := "(account_id = ? OR buyer_account_id = ? OR seller_account_id = ?)"
	args := []interface{}{accountID, accountID, accountID}
	if status != "" {
		where += " AND status = ?"
		args = append(args, status)
	}

	orders := make([]model.Order, 0)
	q := "SELECT " + orderColumns + " FROM orders WHERE " + where + " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	if err := r.conn.SelectContext(ctx, &orders, q, append(args, limit, offset)...); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.conn.GetContext(ctx, &total, "SELECT COUNT(*) FROM orders WHERE "+where, args...); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *SQL) UpdateStatus(ctx context.Context, orderID uint64, status constant.OrderStatus, trackingCode, trackingCarrier string) error {
	q := "UPDATE orders SET status = ?, updated_at = NOW()"
	args := []interface{}{status}
	if trackingCode != "" {
		q += ", tracking_code = ?"
		args = append(args, trackingCode)
	}
	if trackingCarrier != "" {
		q += ", tracking_carrier = ?"
		args = append(args, trackingCarrier)
	}
	q += " WHERE id = ?"
	args = append(args, orderID)

	_, err := r.conn.ExecContext(ctx, q, args...)
	return err
}

func (r *SQL) UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, status constant.OrderStatus) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE orders SET status = ?, updated_at = NOW() WHERE id = ?", status, orderID)
	return err
}

func (r *SQL) ConfirmPaymentTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, confirmedBy string, confirmedAt time.Time) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE orders SET status = ?, payment_confirmed_at = ?, payment_confirmed_by = ?, updated_at = NOW() WHERE id = ?",
		constant.OrderStatusPaid, confirmedAt, confirmedBy, orderID)
	return err
}

func (r *SQL) CancelTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, notes string) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE orders SET status = ?, notes = ?, updated_at = NOW() WHERE id = ?",
		constant.OrderStatusCancelled, notes, orderID)
	return err
}

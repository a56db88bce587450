package stock

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/stocktech/marketplace/model"
)

// StockRepository owns the append-only stock movement ledger. Rows are only
// ever inserted, never updated or deleted.
type StockRepository interface {
	InsertMovementTx(ctx context.Context, tx *sqlx.Tx, movement *model.StockMovement) error
	ListMovements(ctx context.Context, ownerCPF string, productID uint64, limit int) ([]model.StockMovement, error)
}

type SQL struct {
	conn *sqlx.DB
}

func NewStockRepository(conn *sqlx.DB) StockRepository {
	return &SQL{conn: conn}
}

func (r *SQL) InsertMovementTx(ctx context.Context, tx *sqlx.Tx, m *model.StockMovement) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO stock_movements
			(account_id, owner_cpf, user_id, product_id, product_code, product_name, type, previous_quantity, new_quantity, delta, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.AccountID, m.OwnerCPF, m.UserID, m.ProductID, m.ProductCode, m.ProductName,
		m.Type, m.PreviousQuantity, m.NewQuantity, m.Delta, m.Notes)
	return err
}

// ListMovements returns the ledger newest first. productID 0 means all
// products of the owner.
func (r *SQL) ListMovements(ctx context.Context, ownerCPF string, productID uint64, limit int) ([]model.StockMovement, error) {
	q := `SELECT id, account_id, owner_cpf, user_id, product_id, product_code, product_name,
			type, previous_quantity, new_quantity, delta, notes, created_at
		  FROM stock_movements WHERE owner_cpf = ?`
	args := []interface{}{ownerCPF}

	if productID != 0 {
		q += " AND product_id = ?"
		args = append(args, productID)
	}
	q += " ORDER BY created_at DESC LIMIT ?"
	args = append(args, limit)

	movements := make([]model.StockMovement, 0)
	if err := r.conn.SelectContext(ctx, &movements, q, args...); err != nil {
		return nil, err
	}
	return movements, nil
}

package returns

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/stocktech/marketplace/model"
)

type ReturnRepository interface {
	Insert(ctx context.Context, ret *model.ProductReturn) (uint64, error)
	GetByID(ctx context.Context, id uint64) (*model.ProductReturn, error)
	GetByIDTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.ProductReturn, error)
	ListByParticipant(ctx context.Context, userID string) ([]model.ProductReturn, error)
	Update(ctx context.Context, ret *model.ProductReturn) error
	UpdateTx(ctx context.Context, tx *sqlx.Tx, ret *model.ProductReturn) error
}

type SQL struct {
	conn *sqlx.DB
}

func NewReturnRepository(conn *sqlx.DB) ReturnRepository {
	return &SQL{conn: conn}
}

const returnColumns = `id, account_id, owner_cpf, buyer_id, seller_id, order_id, product_id, transaction_id,
	return_code, reason, quantity, status, seller_decision, seller_notes, approved_at, approved_by,
	completed_at, rejected_at, rejection_reason, replacement_sent_at, defective_received_at,
	defective_validated_at, validation_notes, converted_to_sale_at, reserved_quantity,
	is_within_warranty, warranty_expires_at, created_at, updated_at`

func (r *SQL) Insert(ctx context.Context, ret *model.ProductReturn) (uint64, error) {
	res, err := r.conn.ExecContext(ctx,
		`INSERT INTO product_returns
			(account_id, owner_cpf, buyer_id, seller_id, order_id, product_id, transaction_id,
			 return_code, reason, quantity, status, is_within_warranty, warranty_expires_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ret.AccountID, ret.OwnerCPF, ret.BuyerID, ret.SellerID, ret.OrderID, ret.ProductID,
		ret.TransactionID, ret.ReturnCode, ret.Reason, ret.Quantity, ret.Status,
		ret.IsWithinWarranty, ret.WarrantyExpiresAt)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *SQL) GetByID(ctx context.Context, id uint64) (*model.ProductReturn, error) {
	var ret model.ProductReturn
	err := r.conn.GetContext(ctx, &ret, "SELECT "+returnColumns+" FROM product_returns WHERE id = ?", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ret, nil
}

func (r *SQL) GetByIDTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.ProductReturn, error) {
	var ret model.ProductReturn
	err := tx.GetContext(ctx, &ret, "SELECT "+returnColumns+" FROM product_returns WHERE id = ? FOR UPDATE", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ret, nil
}

func (r *SQL) ListByParticipant(ctx context.Context, userID string) ([]model.ProductReturn, error) {
	rets := make([]model.ProductReturn, 0)
	err := r.conn.SelectContext(ctx, &rets,
		"SELECT "+returnColumns+" FROM product_returns WHERE buyer_id = ? OR seller_id = ? ORDER BY created_at DESC",
		userID, userID)
	if err != nil {
		return nil, err
	}
	return rets, nil
}

const updateReturn = `UPDATE product_returns SET
	status = ?, seller_decision = ?, seller_notes = ?, approved_at = ?, approved_by = ?,
	completed_at = ?, rejected_at = ?, rejection_reason = ?, replacement_sent_at = ?,
	defective_received_at = ?, defective_validated_at = ?, validation_notes = ?,
	converted_to_sale_at = ?, reserved_quantity = ?, updated_at = NOW()
 WHERE id = ?`

func updateArgs(ret *model.ProductReturn) []interface{} {
	return []interface{}{
		ret.Status, ret.SellerDecision, ret.SellerNotes, ret.ApprovedAt, ret.ApprovedBy,
		ret.CompletedAt, ret.RejectedAt, ret.RejectionReason, ret.ReplacementSentAt,
		ret.DefectiveReceivedAt, ret.DefectiveValidatedAt, ret.ValidationNotes,
		ret.ConvertedToSaleAt, ret.ReservedQuantity, ret.ID,
	}
}

func (r *SQL) Update(ctx context.Context, ret *model.ProductReturn) error {
	_, err := r.conn.ExecContext(ctx, updateReturn, updateArgs(ret)...)
	return err
}

func (r *SQL) UpdateTx(ctx context.Context, tx *sqlx.Tx, ret *model.ProductReturn) error {
	_, err := tx.ExecContext(ctx, updateReturn, updateArgs(ret)...)
	return err
}

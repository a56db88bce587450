package transaction

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stocktech/marketplace/constant"
	"github.com/stocktech/marketplace/model"
)

type TransactionRepository interface {
	InsertPairTx(ctx context.Context, tx *sqlx.Tx, pair *model.TransactionPairRequest) error
	CompleteOrderLineTx(ctx context.Context, tx *sqlx.Tx, buyerID, sellerID string, productID uint64, quantity int) error
	GetLatestPurchase(ctx context.Context, productID uint64, buyerID, sellerID string) (*model.Transaction, error)
}

type SQL struct {
	conn *sqlx.DB
}

func NewTransactionRepository(conn *sqlx.DB) TransactionRepository {
	return &SQL{conn: conn}
}

func newTransactionCode() string {
	return "TRX-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

const insertTransaction = `INSERT INTO transactions
	(account_id, owner_cpf, buyer_id, seller_id, transaction_code, type, product_id, product_name,
	 counterparty, counterparty_role, amount, quantity, status)
 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// InsertPairTx writes both sides of one order line: the purchase row on the
// buyer's account and the sale row on the seller's account.
func (r *SQL) InsertPairTx(ctx context.Context, tx *sqlx.Tx, pair *model.TransactionPairRequest) error {
	if _, err := tx.ExecContext(ctx, insertTransaction,
		pair.BuyerAccountID, pair.BuyerOwnerCPF, pair.BuyerID, pair.SellerID, newTransactionCode(),
		constant.TransactionTypePurchase, pair.ProductID, pair.ProductName,
		pair.SellerName, constant.CounterpartyRoleSeller, pair.Amount, pair.Quantity, pair.Status); err != nil {
		return err
	}

	_, err := tx.ExecContext(ctx, insertTransaction,
		pair.SellerAccountID, pair.SellerOwnerCPF, pair.BuyerID, pair.SellerID, newTransactionCode(),
		constant.TransactionTypeSale, pair.ProductID, pair.ProductName,
		pair.BuyerName, constant.CounterpartyRoleBuyer, pair.Amount, pair.Quantity, pair.Status)
	return err
}

// CompleteOrderLineTx flips the pending purchase/sale pair of one order line
// to completed.
func (r *SQL) CompleteOrderLineTx(ctx context.Context, tx *sqlx.Tx, buyerID, sellerID string, productID uint64, quantity int) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE transactions SET status = ?, updated_at = NOW()
		 WHERE buyer_id = ? AND seller_id = ? AND product_id = ? AND quantity = ? AND status = ?`,
		constant.TransactionStatusCompleted, buyerID, sellerID, productID, quantity,
		constant.TransactionStatusPending)
	return err
}

func (r *SQL) GetLatestPurchase(ctx context.Context, productID uint64, buyerID, sellerID string) (*model.Transaction, error) {
	var t model.Transaction
	err := r.conn.GetContext(ctx, &t,
		`SELECT id, account_id, owner_cpf, buyer_id, seller_id, transaction_code, type, product_id, product_name,
			counterparty, counterparty_role, amount, quantity, status, created_at, updated_at
		 FROM transactions
		 WHERE product_id = ? AND buyer_id = ? AND seller_id = ? AND type = ?
		 ORDER BY created_at DESC LIMIT 1`,
		productID, buyerID, sellerID, constant.TransactionTypePurchase)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

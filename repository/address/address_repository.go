package address

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/stocktech/marketplace/model"
)

type AddressRepository interface {
	GetUserAddress(ctx context.Context, addressID uint64, userID, accountID string) (*model.Address, error)
	GetDefaultZipByUser(ctx context.Context, userID string) (string, error)
}

type SQL struct {
	conn *sqlx.DB
}

func NewAddressRepository(conn *sqlx.DB) AddressRepository {
	return &SQL{conn: conn}
}

const addressColumns = "id, account_id, user_id, street, number, complement, neighborhood, city, state, zip_code, country, is_default, created_at, updated_at"

// GetUserAddress returns the address only when it belongs to the given user
// and account; nil otherwise.
func (r *SQL) GetUserAddress(ctx context.Context, addressID uint64, userID, accountID string) (*model.Address, error) {
	var a model.Address
	err := r.conn.GetContext(ctx, &a,
		"SELECT "+addressColumns+" FROM addresses WHERE id = ? AND user_id = ? AND account_id = ?",
		addressID, userID, accountID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetDefaultZipByUser returns the user's default (or most recent) address
// zip code, empty when the user has none.
func (r *SQL) GetDefaultZipByUser(ctx context.Context, userID string) (string, error) {
	var zip string
	err := r.conn.GetContext(ctx, &zip,
		"SELECT zip_code FROM addresses WHERE user_id = ? ORDER BY is_default DESC, created_at DESC LIMIT 1",
		userID)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return zip, nil
}

package context

import (
	"context"

	"github.com/stocktech/marketplace/constant"
	"github.com/stocktech/marketplace/model"
)

// GetIdentity returns the caller identity resolved by the auth middleware.
func GetIdentity(ctx context.Context) (*model.Identity, bool) {
	v := ctx.Value(constant.IdentityKey)
	if v == nil {
		return nil, false
	}
	id, ok := v.(*model.Identity)
	return id, ok
}

// WithIdentity embeds the resolved identity into ctx.
func WithIdentity(ctx context.Context, identity *model.Identity) context.Context {
	return context.WithValue(ctx, constant.IdentityKey, identity)
}

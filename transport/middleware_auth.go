package transport

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stocktech/marketplace/cmd/config"
	"github.com/stocktech/marketplace/constant"
	"github.com/stocktech/marketplace/model"
	redisrepo "github.com/stocktech/marketplace/repository/redis"
	"github.com/stocktech/marketplace/thirdparty/avadmin"
	utilsContext "github.com/stocktech/marketplace/utils/context"
	"github.com/stocktech/marketplace/utils/errors"
	"github.com/stocktech/marketplace/utils/logger"
	"go.uber.org/zap"
)

// AuthMiddleware resolves the caller from the bearer token: the JWT gives the
// user ID, the account service gives the rest, and Redis caches the resolved
// identity so the upstream call happens once per cache window.
func AuthMiddleware(cfg *config.Config, avAdmin avadmin.Client, cache redisrepo.Repository) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}
			token := strings.TrimPrefix(auth, "Bearer ")

			identity, err := resolveIdentity(r.Context(), cfg, avAdmin, cache, token)
			if err != nil {
				writeError(w, err)
				return
			}

			ctx := utilsContext.WithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// isPublicPath defines which endpoints are public (no auth required)
func isPublicPath(path string) bool {
	if strings.HasPrefix(path, "/swagger/") || strings.HasPrefix(path, "/internal/") {
		return true
	}
	if path == "/health" {
		return true
	}

	return false
}

func resolveIdentity(ctx context.Context, cfg *config.Config, avAdmin avadmin.Client, cache redisrepo.Repository, token string) (*model.Identity, error) {
	if cached, err := cache.GetIdentity(ctx, token); err != nil {
		logger.Warn("[resolveIdentity] cache read", zap.String("error", err.Error()))
	} else if cached != nil {
		return cached, nil
	}

	userID, err := parseSubject(token, cfg.Auth.JWTSecret)
	if err != nil {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}

	user, err := avAdmin.GetUserByID(ctx, userID)
	if err != nil {
		logger.Error("[resolveIdentity] get user", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if user == nil || user.AccountID == nil || *user.AccountID == "" {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}

	// The role set is closed: anything the account service sends outside of
	// it is rejected, not defaulted to a privileged value.
	role := constant.RoleUser
	if user.Role != nil && *user.Role != "" {
		switch constant.Role(*user.Role) {
		case constant.RoleUser, constant.RoleAdmin:
			role = constant.Role(*user.Role)
		default:
			return nil, errors.SetCustomError(constant.ErrUnauthorize)
		}
	}

	ownerCPF := user.CPF
	if account, err := avAdmin.GetAccountByID(ctx, *user.AccountID); err != nil {
		logger.Warn("[resolveIdentity] get account", zap.String("error", err.Error()))
	} else if account != nil && account.OwnerCPF != nil && *account.OwnerCPF != "" {
		ownerCPF = *account.OwnerCPF
	}

	name := ""
	if user.FullName != nil {
		name = *user.FullName
	}

	identity := &model.Identity{
		UserID:    user.ID,
		AccountID: *user.AccountID,
		OwnerCPF:  ownerCPF,
		Name:      name,
		Role:      role,
	}

	if err := cache.SetIdentity(ctx, token, identity, cfg.Auth.IdentityCacheTTL); err != nil {
		logger.Warn("[resolveIdentity] cache write", zap.String("error", err.Error()))
	}

	return identity, nil
}

func parseSubject(token, secret string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	if !parsed.Valid {
		return "", jwt.ErrTokenUnverifiable
	}

	subject, err := parsed.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", jwt.ErrTokenRequiredClaimMissing
	}
	return subject, nil
}

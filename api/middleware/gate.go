package middleware

import (
	"context"
	"net/http"

	"github.com/omega-wallet/storefront-api/api/responses"
	pkgerrors "github.com/omega-wallet/storefront-api/pkg/errors"
	"github.com/omega-wallet/storefront-api/pkg/logger"
)

// GateCookie carries the signed gate token after the visitor entered the
// site password. The header form exists for clients that cannot set cookies.
const (
	GateCookie      = "sf_gate"
	GateTokenHeader = "X-Gate-Token"
)

type gateChecker interface {
	Unlocked(ctx context.Context, sessionID, token string) (bool, error)
}

// Gate blocks storefront routes until the session has passed the password
// gate.
func Gate(sessions gateChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			sessionID := SessionIDFromContext(ctx)
			if sessionID == "" || sessions == nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session middleware missing"))
				return
			}

			token := r.Header.Get(GateTokenHeader)
			if token == "" {
				if cookie, err := r.Cookie(GateCookie); err == nil {
					token = cookie.Value
				}
			}

			ok, err := sessions.Unlocked(ctx, sessionID, token)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check gate"))
				return
			}
			if !ok {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "site is password protected"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

package controllers

import (
	"net/http"

	"github.com/omega-wallet/storefront-api/api/responses"
	"github.com/omega-wallet/storefront-api/api/validators"
	reviewssvc "github.com/omega-wallet/storefront-api/internal/reviews"
	pkgerrors "github.com/omega-wallet/storefront-api/pkg/errors"
	"github.com/omega-wallet/storefront-api/pkg/logger"
	"github.com/omega-wallet/storefront-api/pkg/types"
)

// ReviewAdd submits per-line-item ratings for an order.
func ReviewAdd(svc *reviewssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "review service unavailable"))
			return
		}

		var payload types.ReviewRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Submit(r.Context(), payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "submitted"})
	}
}

package controllers

import (
	"net/http"

	"github.com/omega-wallet/storefront-api/api/middleware"
	"github.com/omega-wallet/storefront-api/api/responses"
	"github.com/omega-wallet/storefront-api/api/validators"
	orderssvc "github.com/omega-wallet/storefront-api/internal/orders"
	pkgerrors "github.com/omega-wallet/storefront-api/pkg/errors"
	"github.com/omega-wallet/storefront-api/pkg/logger"
	"github.com/omega-wallet/storefront-api/pkg/types"
)

type trackedResponse struct {
	Tracked bool         `json:"tracked"`
	Order   *types.Order `json:"order,omitempty"`
}

// OrderTrack looks an order up by id and email and mirrors the result.
func OrderTrack(svc orderssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := validators.RequireQuery(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		email, err := validators.RequireQuery(r, "email")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		order, err := svc.Track(r.Context(), sessionID, orderID, email)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// OrderTracked returns the last mirrored lookup, if any.
func OrderTracked(svc orderssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		order, ok, err := svc.Tracked(r.Context(), middleware.SessionIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		resp := trackedResponse{Tracked: ok}
		if ok {
			resp.Order = &order
		}
		responses.WriteSuccess(w, resp)
	}
}

// OrderTrackClear forgets the mirrored lookup.
func OrderTrackClear(svc orderssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		if err := svc.ClearTracked(r.Context(), middleware.SessionIDFromContext(r.Context())); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, trackedResponse{Tracked: false})
	}
}

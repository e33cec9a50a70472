package controllers

import (
	"net/http"

	"github.com/omega-wallet/storefront-api/api/middleware"
	"github.com/omega-wallet/storefront-api/api/responses"
	"github.com/omega-wallet/storefront-api/api/validators"
	checkoutsvc "github.com/omega-wallet/storefront-api/internal/checkout"
	pkgerrors "github.com/omega-wallet/storefront-api/pkg/errors"
	"github.com/omega-wallet/storefront-api/pkg/logger"
	"github.com/omega-wallet/storefront-api/pkg/types"
)

// CheckoutQuote prices the cart for a delivery option.
func CheckoutQuote(svc *checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		raw := r.URL.Query().Get("method")
		if raw == "" {
			raw = string(checkoutsvc.ShippingFree)
		}
		method, err := checkoutsvc.ParseShippingMethod(raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.Quote(r.Context(), middleware.SessionIDFromContext(r.Context()), method)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

type checkoutSubmitRequest struct {
	Email          string                `json:"email" validate:"required,email"`
	Shipping       types.ShippingPayload `json:"shipping" validate:"required"`
	ShippingMethod string                `json:"shippingMethod" validate:"required"`
}

// CheckoutSubmit opens the hosted payment session for the cart and returns
// the redirect URL.
func CheckoutSubmit(svc *checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload checkoutSubmitRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		method, err := checkoutsvc.ParseShippingMethod(payload.ShippingMethod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		session, err := svc.Submit(r.Context(), sessionID, payload.Email, payload.Shipping, method)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, session)
	}
}

type flowEventRequest struct {
	Event string `json:"event" validate:"required,oneof=enter-shipping pageshow visible"`
}

// CheckoutFlowEvent applies a client navigation signal to the flow slot and
// returns the resulting state.
func CheckoutFlowEvent(flow *checkoutsvc.FlowStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if flow == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout flow unavailable"))
			return
		}

		var payload flowEventRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		state, err := flow.HandleEvent(r.Context(), sessionID, checkoutsvc.FlowEvent(payload.Event))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"state": string(state)})
	}
}

// CheckoutFlowState reads the current flow state.
func CheckoutFlowState(flow *checkoutsvc.FlowStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if flow == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout flow unavailable"))
			return
		}

		state, err := flow.State(r.Context(), middleware.SessionIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"state": string(state)})
	}
}

// CheckoutConfirm finalizes a completed payment: cart and flow slot are
// dropped.
func CheckoutConfirm(svc *checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		if err := svc.Confirm(r.Context(), middleware.SessionIDFromContext(r.Context())); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "confirmed"})
	}
}

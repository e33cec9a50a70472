package controllers

import (
	"net/http"

	"github.com/omega-wallet/storefront-api/api/middleware"
	"github.com/omega-wallet/storefront-api/api/responses"
	"github.com/omega-wallet/storefront-api/api/validators"
	cartsvc "github.com/omega-wallet/storefront-api/internal/cart"
	pkgerrors "github.com/omega-wallet/storefront-api/pkg/errors"
	"github.com/omega-wallet/storefront-api/pkg/logger"
)

type cartResponse struct {
	Items  []cartsvc.LineItem `json:"items"`
	Totals cartsvc.Totals     `json:"totals"`
}

func newCartResponse(items []cartsvc.LineItem) cartResponse {
	return cartResponse{
		Items:  items,
		Totals: cartsvc.NewStore(items).Totals(),
	}
}

// CartGet returns the session's cart with its drawer totals.
func CartGet(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		lines, err := svc.Lines(r.Context(), middleware.SessionIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(lines))
	}
}

type cartAddRequest struct {
	ProductID    string `json:"productId" validate:"required"`
	Quantity     int    `json:"quantity" validate:"min=0"`
	PackageTitle string `json:"packageTitle,omitempty"`
}

// CartAdd puts a product (or one of its packages) in the cart. A missing
// quantity means one; package selections ignore it entirely.
func CartAdd(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload cartAddRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.Quantity == 0 {
			payload.Quantity = 1
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		lines, err := svc.Add(r.Context(), sessionID, payload.ProductID, payload.Quantity, payload.PackageTitle)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(lines))
	}
}

type cartLineRequest struct {
	Index int `json:"index" validate:"min=0"`
}

func cartLineOp(svc cartsvc.Service, logg *logger.Logger, op func(r *http.Request, sessionID string, index int) ([]cartsvc.LineItem, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload cartLineRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		lines, err := op(r, sessionID, payload.Index)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(lines))
	}
}

// CartIncrease bumps one line's quantity.
func CartIncrease(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return cartLineOp(svc, logg, func(r *http.Request, sessionID string, index int) ([]cartsvc.LineItem, error) {
		return svc.Increase(r.Context(), sessionID, index)
	})
}

// CartDecrease lowers one line's quantity, never below one.
func CartDecrease(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return cartLineOp(svc, logg, func(r *http.Request, sessionID string, index int) ([]cartsvc.LineItem, error) {
		return svc.Decrease(r.Context(), sessionID, index)
	})
}

// CartRemove deletes one line.
func CartRemove(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return cartLineOp(svc, logg, func(r *http.Request, sessionID string, index int) ([]cartsvc.LineItem, error) {
		return svc.Remove(r.Context(), sessionID, index)
	})
}

// CartClear empties the session's cart.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		if err := svc.Clear(r.Context(), middleware.SessionIDFromContext(r.Context())); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(nil))
	}
}

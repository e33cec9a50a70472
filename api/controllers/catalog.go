package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/omega-wallet/storefront-api/api/middleware"
	"github.com/omega-wallet/storefront-api/api/responses"
	catalogsvc "github.com/omega-wallet/storefront-api/internal/catalog"
	sessionsvc "github.com/omega-wallet/storefront-api/internal/session"
	pkgerrors "github.com/omega-wallet/storefront-api/pkg/errors"
	"github.com/omega-wallet/storefront-api/pkg/logger"
)

// ProductList serves the browse grid. The language comes from the query
// when present, otherwise from the session slot.
func ProductList(svc catalogsvc.Service, sessions *sessionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		lang := strings.TrimSpace(r.URL.Query().Get("lang"))
		if lang == "" && sessions != nil {
			stored, err := sessions.Language(r.Context(), middleware.SessionIDFromContext(r.Context()))
			if err == nil {
				lang = stored
			}
		}
		category := strings.TrimSpace(r.URL.Query().Get("categoryName"))

		products, err := svc.List(r.Context(), lang, category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

// ProductDetail serves one product page.
func ProductDetail(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id := chi.URLParam(r, "id")
		if strings.TrimSpace(id) == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		product, err := svc.Detail(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

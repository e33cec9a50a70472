package controllers

import (
	"net/http"
	"time"

	"github.com/omega-wallet/storefront-api/api/middleware"
	"github.com/omega-wallet/storefront-api/api/responses"
	"github.com/omega-wallet/storefront-api/api/validators"
	sessionsvc "github.com/omega-wallet/storefront-api/internal/session"
	pkgerrors "github.com/omega-wallet/storefront-api/pkg/errors"
	"github.com/omega-wallet/storefront-api/pkg/logger"
)

type gateUnlockRequest struct {
	Password string `json:"password" validate:"required"`
}

// GateUnlock checks the site password and hands out the gate token, both in
// the body and as a cookie.
func GateUnlock(svc *sessionsvc.Service, gateTTL time.Duration, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session service unavailable"))
			return
		}

		var payload gateUnlockRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		token, err := svc.Unlock(r.Context(), sessionID, payload.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     middleware.GateCookie,
			Value:    token,
			Path:     "/",
			MaxAge:   int(gateTTL.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		responses.WriteSuccess(w, map[string]string{"token": token})
	}
}

// LanguageGet returns the session's language, defaulting to English.
func LanguageGet(svc *sessionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session service unavailable"))
			return
		}

		lang, err := svc.Language(r.Context(), middleware.SessionIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"language": lang})
	}
}

type languageSetRequest struct {
	Language string `json:"language" validate:"required"`
}

// LanguageSet stores the session's language choice.
func LanguageSet(svc *sessionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session service unavailable"))
			return
		}

		var payload languageSetRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		if err := svc.SetLanguage(r.Context(), sessionID, payload.Language); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lang, err := svc.Language(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"language": lang})
	}
}

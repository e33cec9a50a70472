package controllers

import (
	"context"
	"net/http"

	"github.com/omega-wallet/storefront-api/api/responses"
	"github.com/omega-wallet/storefront-api/api/validators"
	pkgerrors "github.com/omega-wallet/storefront-api/pkg/errors"
	"github.com/omega-wallet/storefront-api/pkg/logger"
	"github.com/omega-wallet/storefront-api/pkg/types"
)

// AccountService is the slice of the platform client the account endpoints
// need: storing shipping details and getting them back after verification.
type AccountService interface {
	SaveShipping(ctx context.Context, email string, shipping types.ShippingPayload) error
	RequestEmailVerification(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, otp string) (types.ShippingPayload, error)
	ShippingDetailsByEmail(ctx context.Context, email string) (types.ShippingPayload, error)
}

type shippingSaveRequest struct {
	Email    string                `json:"email" validate:"required,email"`
	Shipping types.ShippingPayload `json:"shipping" validate:"required"`
}

// ShippingSave stores the shipping form keyed by email for later prefill.
func ShippingSave(svc AccountService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "account service unavailable"))
			return
		}

		var payload shippingSaveRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SaveShipping(r.Context(), payload.Email, payload.Shipping); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "saved"})
	}
}

type emailOnlyRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// EmailVerificationRequest asks the platform to mail a one-time code.
func EmailVerificationRequest(svc AccountService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "account service unavailable"))
			return
		}

		var payload emailOnlyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.RequestEmailVerification(r.Context(), payload.Email); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "sent"})
	}
}

type otpVerifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required"`
}

// OTPVerify exchanges the mailed code for the stored shipping details.
func OTPVerify(svc AccountService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "account service unavailable"))
			return
		}

		var payload otpVerifyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		shipping, err := svc.VerifyOTP(r.Context(), payload.Email, payload.OTP)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, shipping)
	}
}

// ShippingByEmail fetches stored shipping details for a verified address.
func ShippingByEmail(svc AccountService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "account service unavailable"))
			return
		}

		var payload emailOnlyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		shipping, err := svc.ShippingDetailsByEmail(r.Context(), payload.Email)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, shipping)
	}
}

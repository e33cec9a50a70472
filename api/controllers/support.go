package controllers

import (
	"io"
	"net/http"

	"github.com/omega-wallet/storefront-api/api/responses"
	"github.com/omega-wallet/storefront-api/api/validators"
	"github.com/omega-wallet/storefront-api/internal/commerce"
	supportsvc "github.com/omega-wallet/storefront-api/internal/support"
	pkgerrors "github.com/omega-wallet/storefront-api/pkg/errors"
	"github.com/omega-wallet/storefront-api/pkg/logger"
)

// Attachments above this size are rejected before buffering.
const maxComplaintBody = 10 << 20

// ContactSend mails the contact form to the shop inbox.
func ContactSend(svc *supportsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "support service unavailable"))
			return
		}

		var payload supportsvc.ContactMessage
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SendContact(r.Context(), payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "sent"})
	}
}

// ComplaintAdd files an order complaint, optionally with one attachment,
// as a multipart form.
func ComplaintAdd(svc *supportsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "support service unavailable"))
			return
		}

		if err := r.ParseMultipartForm(maxComplaintBody); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}

		complaint := commerce.Complaint{
			OrderID: r.FormValue("orderId"),
			Email:   r.FormValue("email"),
			Subject: r.FormValue("subject"),
			Message: r.FormValue("message"),
		}

		if file, header, err := r.FormFile("attachment"); err == nil {
			defer file.Close()
			content, err := io.ReadAll(io.LimitReader(file, maxComplaintBody))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read attachment"))
				return
			}
			complaint.Attachment = &commerce.ComplaintAttachment{
				Filename: header.Filename,
				Content:  content,
			}
		}

		if err := svc.SubmitComplaint(r.Context(), complaint); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "filed"})
	}
}

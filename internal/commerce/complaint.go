package commerce

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"

	pkgerrors "github.com/omega-wallet/storefront-api/pkg/errors"
)

// ComplaintAttachment is an optional file accompanying a complaint, usually
// a photo of the damaged delivery.
type ComplaintAttachment struct {
	Filename string
	Content  []byte
}

// Complaint is a post-purchase issue report tied to an order.
type Complaint struct {
	OrderID    string
	Email      string
	Subject    string
	Message    string
	Attachment *ComplaintAttachment
}

// AddComplaint files the complaint as a multipart form, matching what the
// platform's upload handler expects.
func (c *Client) AddComplaint(ctx context.Context, complaint Complaint) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fields := []struct{ name, value string }{
		{"orderId", complaint.OrderID},
		{"email", complaint.Email},
		{"subject", complaint.Subject},
		{"message", complaint.Message},
	}
	for _, field := range fields {
		if err := writer.WriteField(field.name, field.value); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode complaint form")
		}
	}
	if complaint.Attachment != nil {
		part, err := writer.CreateFormFile("attachment", complaint.Attachment.Filename)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode complaint attachment")
		}
		if _, err := part.Write(complaint.Attachment.Content); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode complaint attachment")
		}
	}
	if err := writer.Close(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode complaint form")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/complaint/add", &buf)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build commerce request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return c.do(req, nil)
}

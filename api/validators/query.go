package validators

import (
	"net/http"
	"strings"

	pkgerrors "github.com/omega-wallet/storefront-api/pkg/errors"
)

// RequireQuery fetches a query parameter that must be present and non-blank.
func RequireQuery(r *http.Request, name string) (string, error) {
	value := strings.TrimSpace(r.URL.Query().Get(name))
	if value == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "missing query parameter").
			WithDetails(map[string]string{name: "is required"})
	}
	return value, nil
}

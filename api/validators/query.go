package validators

import (
	"net/http"
	"strings"

	pkgerrors "github.com/arkodas/banglamart-backend/pkg/errors"
)

// RequireQuery returns a trimmed query parameter, erroring when it is absent.
func RequireQuery(r *http.Request, key string) (string, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "query parameter is required").WithDetails(map[string]any{"field": key})
	}
	return value, nil
}

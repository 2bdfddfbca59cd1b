// internal/adapters/in/http/handlers/helpers.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	tokendom "solanaforge/internal/domain/token"
)

func methodNotAllowed(w http.ResponseWriter) {
	w.WriteHeader(http.StatusMethodNotAllowed)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "method_not_allowed"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeTokenError maps the creation error taxonomy onto an HTTP status and
// the short UI message. detail には生のエラーを入れる（ログ照合用）。
func writeTokenError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case tokendom.IsValidationFailed(err):
		status = http.StatusBadRequest
	case tokendom.IsWalletNotConnected(err):
		status = http.StatusUnauthorized
	case tokendom.IsInsufficientBalance(err):
		status = http.StatusPaymentRequired
	case tokendom.IsSignatureRejected(err):
		status = http.StatusConflict
	case tokendom.IsAssetUploadFailed(err),
		tokendom.IsMetadataUploadFailed(err),
		tokendom.IsSubmissionFailed(err):
		status = http.StatusBadGateway
	case tokendom.IsNotFound(err):
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]string{
		"error":  tokendom.UserMessage(err),
		"detail": err.Error(),
	})
}

func parseIntDefault(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// splitCSV parses "a,b,c" / "a, b, c" into []string (empty trimmed items are removed).
func splitCSV(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

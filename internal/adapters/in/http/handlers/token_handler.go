// internal/adapters/in/http/handlers/token_handler.go
package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	usecase "solanaforge/internal/application/usecase"
	tokendom "solanaforge/internal/domain/token"
)

// 画像つき multipart の上限（32MB）。ミームコイン画像には十分。
const maxCreateFormBytes = 32 << 20

type TokenHandler struct {
	tokenUC *usecase.TokenUsecase
}

func NewTokenHandler(tokenUC *usecase.TokenUsecase) http.Handler {
	return &TokenHandler{tokenUC: tokenUC}
}

func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	log.Printf("[token_handler] request method=%s path=%s", r.Method, r.URL.Path)

	switch {
	// POST /api/tokens（multipart: フィールド + image ファイル）
	case r.Method == http.MethodPost && r.URL.Path == "/api/tokens":
		h.createToken(w, r)
		return

	// GET /api/tokens?limit=n
	case r.Method == http.MethodGet && r.URL.Path == "/api/tokens":
		h.listTokens(w, r)
		return

	// GET /api/tokens/{mintAddress}
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/api/tokens/"):
		h.getToken(w, r)
		return

	// POST /api/quote（JSON: フラグだけで見積り）
	case r.Method == http.MethodPost && r.URL.Path == "/api/quote":
		h.quote(w, r)
		return

	default:
		if r.URL.Path == "/api/tokens" || r.URL.Path == "/api/quote" {
			methodNotAllowed(w)
			return
		}
		http.NotFound(w, r)
	}
}

// ============================================================
// POST /api/tokens
// ============================================================
func (h *TokenHandler) createToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.tokenUC == nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "token usecase is not configured"})
		return
	}

	if err := r.ParseMultipartForm(maxCreateFormBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form"})
		return
	}

	req := tokendom.NewRequest()
	req.Name = strings.TrimSpace(r.FormValue("name"))
	req.Symbol = strings.TrimSpace(r.FormValue("symbol"))
	req.Description = strings.TrimSpace(r.FormValue("description"))
	req.CreatorAddress = strings.TrimSpace(r.FormValue("creatorAddress"))
	req.Social.Website = strings.TrimSpace(r.FormValue("website"))
	req.Social.Twitter = strings.TrimSpace(r.FormValue("twitter"))
	req.Social.Telegram = strings.TrimSpace(r.FormValue("telegram"))
	req.Social.Discord = strings.TrimSpace(r.FormValue("discord"))
	req.Tags = tokendom.NormalizeTags(splitCSV(r.FormValue("tags")))

	req.Decimals = parseIntDefault(r.FormValue("decimals"), tokendom.DefaultDecimals)
	if v := strings.TrimSpace(r.FormValue("initialSupply")); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			req.InitialSupply = n
		}
	}

	req.RevokeMint = parseBoolDefault(r.FormValue("revokeMint"), req.RevokeMint)
	req.FreezeAuthority = parseBoolDefault(r.FormValue("freezeAuthority"), req.FreezeAuthority)
	req.Immutable = parseBoolDefault(r.FormValue("immutable"), req.Immutable)

	file, header, err := r.FormFile("image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "image file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "failed to read image"})
		return
	}
	req.Image = &tokendom.Asset{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}

	log.Printf(
		"[token_handler] create name=%q symbol=%q decimals=%d supply=%d image=%s (%d bytes)",
		req.Name, req.Symbol, req.Decimals, req.InitialSupply, req.Image.FileName, len(data),
	)

	start := time.Now()
	result, err := h.tokenUC.CreateToken(ctx, req)
	elapsed := time.Since(start)

	if err != nil {
		log.Printf("[token_handler] create failed err=%v elapsed=%s", err, elapsed)
		writeTokenError(w, err)
		return
	}

	log.Printf("[token_handler] create ok mint=%s sig=%s elapsed=%s", result.MintAddress, result.Signature, elapsed)
	writeJSON(w, http.StatusCreated, result)
}

// ============================================================
// GET /api/tokens
// ============================================================
func (h *TokenHandler) listTokens(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.tokenUC == nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "token usecase is not configured"})
		return
	}

	limit := parseIntDefault(r.URL.Query().Get("limit"), 50)

	records, err := h.tokenUC.ListTokens(ctx, limit)
	if err != nil {
		log.Printf("[token_handler] list failed err=%v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if records == nil {
		records = []tokendom.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

// ============================================================
// GET /api/tokens/{mintAddress}
// ============================================================
func (h *TokenHandler) getToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.tokenUC == nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "token usecase is not configured"})
		return
	}

	mint := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/tokens/"), "/")
	if mint == "" || strings.Contains(mint, "/") {
		http.NotFound(w, r)
		return
	}

	rec, err := h.tokenUC.GetToken(ctx, mint)
	if err != nil {
		if tokendom.IsNotFound(err) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "token not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// ============================================================
// POST /api/quote
// ============================================================
func (h *TokenHandler) quote(w http.ResponseWriter, r *http.Request) {
	if h.tokenUC == nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "token usecase is not configured"})
		return
	}

	var body struct {
		RevokeMint      *bool `json:"revokeMint,omitempty"`
		FreezeAuthority *bool `json:"freezeAuthority,omitempty"`
		Immutable       *bool `json:"immutable,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}

	req := tokendom.NewRequest()
	req.Apply(tokendom.Patch{
		RevokeMint:      body.RevokeMint,
		FreezeAuthority: body.FreezeAuthority,
		Immutable:       body.Immutable,
	})

	writeJSON(w, http.StatusOK, h.tokenUC.Quote(req))
}

func parseBoolDefault(s string, def bool) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return b
}

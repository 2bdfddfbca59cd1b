// internal/adapters/in/http/handlers/wallet_handler.go
package handlers

import (
	"log"
	"net/http"

	netdom "solanaforge/internal/domain/network"
	walletdom "solanaforge/internal/domain/wallet"
)

// WalletHandler exposes the service wallet session state.
// GET は silent probe（trusted 接続の確認のみ、プロンプトを出さない）。
type WalletHandler struct {
	port    walletdom.SessionPort
	network netdom.Network
}

func NewWalletHandler(port walletdom.SessionPort, network netdom.Network) http.Handler {
	return &WalletHandler{port: port, network: network}
}

type walletStatusResponse struct {
	Connected bool    `json:"connected"`
	Address   string  `json:"address,omitempty"`
	Balance   float64 `json:"balance"`
	Network   string  `json:"network"`
	Explorer  string  `json:"explorer,omitempty"`
}

func (h *WalletHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if h.port == nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "wallet session is not configured"})
		return
	}

	switch {
	// GET /api/wallet — silent status probe
	case r.Method == http.MethodGet && r.URL.Path == "/api/wallet":
		h.status(w, r)
		return

	// POST /api/wallet/connect
	case r.Method == http.MethodPost && r.URL.Path == "/api/wallet/connect":
		h.connect(w, r)
		return

	// POST /api/wallet/disconnect
	case r.Method == http.MethodPost && r.URL.Path == "/api/wallet/disconnect":
		h.disconnect(w, r)
		return

	default:
		http.NotFound(w, r)
	}
}

func (h *WalletHandler) status(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	address, err := h.port.CheckTrustedConnection(ctx)
	if err != nil || address == "" {
		writeJSON(w, http.StatusOK, walletStatusResponse{
			Connected: false,
			Network:   string(h.network),
		})
		return
	}

	balance, err := h.port.Balance(ctx)
	if err != nil {
		log.Printf("[wallet_handler] balance fetch failed address=%s err=%v", address, err)
		balance = 0
	}

	writeJSON(w, http.StatusOK, walletStatusResponse{
		Connected: true,
		Address:   address,
		Balance:   balance,
		Network:   string(h.network),
		Explorer:  h.network.ExplorerURL(netdom.ExplorerAddress, address),
	})
}

func (h *WalletHandler) connect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	address, err := h.port.Connect(ctx)
	if err != nil {
		status := http.StatusInternalServerError
		if walletdom.IsUserRejected(err) {
			status = http.StatusConflict
		}
		if walletdom.IsProviderUnavailable(err) {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	balance, err := h.port.Balance(ctx)
	if err != nil {
		log.Printf("[wallet_handler] balance fetch failed address=%s err=%v", address, err)
		balance = 0
	}

	writeJSON(w, http.StatusOK, walletStatusResponse{
		Connected: true,
		Address:   address,
		Balance:   balance,
		Network:   string(h.network),
		Explorer:  h.network.ExplorerURL(netdom.ExplorerAddress, address),
	})
}

func (h *WalletHandler) disconnect(w http.ResponseWriter, r *http.Request) {
	if err := h.port.Disconnect(r.Context()); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"connected": false})
}

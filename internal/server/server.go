// Package server exposes the inbound webhook transports. Each transport is a
// thin adapter over the shared command handler; boundary failures are logged
// and answered with a fixed busy message so the gateway never sees a fault.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"HKStockBot/internal/advisor"
	"HKStockBot/internal/notifier"
)

// maxBodyBytes bounds inbound webhook payloads.
const maxBodyBytes = 1 << 20

// busyMessage answers any boundary parse failure.
const busyMessage = "伺服器忙線中，請稍後再試 🙏"

// Server holds the webhook adapters' shared dependencies.
type Server struct {
	Handler     advisor.CommandHandler
	WhatsApp    *notifier.WhatsAppClient // nil disables Cloud API replies
	VerifyToken string
}

// Router builds the HTTP routes for both transports and the health endpoint.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/webhook/twilio", s.handleTwilio).Methods(http.MethodPost)
	r.HandleFunc("/webhook/whatsapp", s.handleVerify).Methods(http.MethodGet)
	r.HandleFunc("/webhook/whatsapp", s.handleWhatsApp).Methods(http.MethodPost)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

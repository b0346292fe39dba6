package server

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
)

// handleTwilio serves the legacy form-based webhook. It always answers TwiML
// with HTTP 200; a failure response would trigger delivery retries at the
// protocol level.
func (s *Server) handleTwilio(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		log.Printf("[ERROR] twilio read body: %v", err)
		writeTwiML(w, busyMessage)
		return
	}
	vals, err := url.ParseQuery(string(raw))
	if err != nil {
		log.Printf("[WARN] twilio form parse failed: %v raw=%q", err, clip(string(raw), 300))
		writeTwiML(w, busyMessage)
		return
	}
	body := strings.TrimSpace(vals.Get("Body"))
	writeTwiML(w, s.Handler(r.Context(), body))
}

// writeTwiML renders the reply as a single TwiML <Message> element.
func writeTwiML(w http.ResponseWriter, text string) {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(text))
	w.Header().Set("Content-Type", "application/xml")
	fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?><Response><Message>%s</Message></Response>`, buf.String())
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

package server

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"HKStockBot/internal/advisor"
	"HKStockBot/internal/notifier"
)

// cloudPayload is the WhatsApp Cloud webhook notification shape, reduced to
// the fields the bot consumes.
type cloudPayload struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Messages []cloudMessage `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

type cloudMessage struct {
	From string `json:"from"`
	Type string `json:"type"`
	Text *struct {
		Body string `json:"body"`
	} `json:"text"`
	Interactive *struct {
		Type        string `json:"type"`
		ButtonReply *struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"button_reply"`
		ListReply *struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"list_reply"`
	} `json:"interactive"`
}

// handleVerify answers the Cloud API subscription handshake.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if s.VerifyToken != "" && q.Get("hub.mode") == "subscribe" && q.Get("hub.verify_token") == s.VerifyToken {
		_, _ = w.Write([]byte(q.Get("hub.challenge")))
		return
	}
	http.Error(w, "verification failed", http.StatusForbidden)
}

// handleWhatsApp processes inbound Cloud messages. It always answers 200 so
// Meta does not retry delivery; send failures are logged, never surfaced.
func (s *Server) handleWhatsApp(w http.ResponseWriter, r *http.Request) {
	defer w.WriteHeader(http.StatusOK)

	var payload cloudPayload
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&payload); err != nil {
		log.Printf("[WARN] whatsapp payload decode: %v", err)
		return
	}
	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				s.dispatch(r.Context(), msg)
			}
		}
	}
}

func (s *Server) dispatch(ctx context.Context, msg cloudMessage) {
	text := commandText(msg)
	if text == "" || msg.From == "" {
		return
	}
	reply := s.Handler(ctx, text)
	if s.WhatsApp == nil {
		log.Printf("[WARN] whatsapp client not configured, dropping reply to %s", msg.From)
		return
	}
	if err := s.WhatsApp.SendText(ctx, msg.From, reply); err != nil {
		log.Printf("[ERROR] whatsapp send reply: %v", err)
	}
	if advisor.IsMenuCommand(text) {
		s.sendMenu(ctx, msg.From)
	}
}

// commandText flattens a Cloud message into the text command the pipeline
// understands. Interactive replies are translated to their text-command
// equivalents so the core never learns about the interactive wire format.
func commandText(m cloudMessage) string {
	switch {
	case m.Text != nil:
		return strings.TrimSpace(m.Text.Body)
	case m.Interactive != nil && m.Interactive.ButtonReply != nil:
		return replyIDCommand(m.Interactive.ButtonReply.ID)
	case m.Interactive != nil && m.Interactive.ListReply != nil:
		return replyIDCommand(m.Interactive.ListReply.ID)
	}
	return ""
}

func replyIDCommand(id string) string {
	switch {
	case strings.HasPrefix(id, "opt_"):
		return "mode=" + strings.TrimPrefix(id, "opt_")
	case strings.HasPrefix(id, "days_"):
		return "days=" + strings.TrimPrefix(id, "days_")
	}
	return id
}

// sendMenu pushes the interactive mode buttons and lookback list after a
// help/menu command on the Cloud transport.
func (s *Server) sendMenu(ctx context.Context, to string) {
	buttons := []notifier.Button{
		{ID: "opt_short", Title: "短線"},
		{ID: "opt_swing", Title: "波段"},
		{ID: "opt_position", Title: "中長線"},
	}
	if err := s.WhatsApp.SendButtons(ctx, to, "選擇分析模式：", buttons); err != nil {
		log.Printf("[ERROR] whatsapp send buttons: %v", err)
	}
	sections := []notifier.ListSection{{
		Title: "期間",
		Rows: []notifier.ListRow{
			{ID: "days_60", Title: "60 天"},
			{ID: "days_90", Title: "90 天"},
			{ID: "days_120", Title: "120 天"},
			{ID: "days_240", Title: "240 天"},
		},
	}}
	if err := s.WhatsApp.SendList(ctx, to, "分析期間", "選擇回看天數：", "選擇", sections); err != nil {
		log.Printf("[ERROR] whatsapp send list: %v", err)
	}
}

// Package notifier renders summaries and delivers them over the WhatsApp
// Cloud API.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultGraphAPIBase is the Meta Graph API root used when none is
// configured.
const DefaultGraphAPIBase = "https://graph.facebook.com/v20.0"

const (
	maxButtons      = 3
	maxListHeader   = 60
	maxListButton   = 20
	messagingTarget = "whatsapp"
)

// WhatsAppClient sends messages through the WhatsApp Cloud API.
type WhatsAppClient struct {
	BaseURL       string
	PhoneNumberID string
	Token         string
	Client        *http.Client
}

// NewWhatsAppClient creates a client with optional proxy support. An empty
// baseURL falls back to DefaultGraphAPIBase.
func NewWhatsAppClient(baseURL, phoneNumberID, token, proxyURL string) *WhatsAppClient {
	if baseURL == "" {
		baseURL = DefaultGraphAPIBase
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &WhatsAppClient{
		BaseURL:       baseURL,
		PhoneNumberID: phoneNumberID,
		Token:         token,
		Client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: transport,
		},
	}
}

// Button is one interactive reply option.
type Button struct {
	ID    string
	Title string
}

// ListRow is one selectable row in an interactive list.
type ListRow struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ListSection groups list rows under a title.
type ListSection struct {
	Title string    `json:"title"`
	Rows  []ListRow `json:"rows"`
}

// SendText sends a plain text message, capped at MaxSummaryLen characters.
func (c *WhatsAppClient) SendText(ctx context.Context, to, text string) error {
	payload := map[string]interface{}{
		"messaging_product": messagingTarget,
		"to":                to,
		"type":              "text",
		"text":              map[string]string{"body": Truncate(text, MaxSummaryLen)},
	}
	return c.postJSON(ctx, "/messages", payload)
}

// SendButtons sends an interactive button message with at most three reply
// buttons.
func (c *WhatsAppClient) SendButtons(ctx context.Context, to, bodyText string, buttons []Button) error {
	if len(buttons) > maxButtons {
		buttons = buttons[:maxButtons]
	}
	actions := make([]map[string]interface{}, 0, len(buttons))
	for _, b := range buttons {
		actions = append(actions, map[string]interface{}{
			"type":  "reply",
			"reply": map[string]string{"id": b.ID, "title": b.Title},
		})
	}
	payload := map[string]interface{}{
		"messaging_product": messagingTarget,
		"to":                to,
		"type":              "interactive",
		"interactive": map[string]interface{}{
			"type":   "button",
			"body":   map[string]string{"text": bodyText},
			"action": map[string]interface{}{"buttons": actions},
		},
	}
	return c.postJSON(ctx, "/messages", payload)
}

// SendList sends an interactive list message with grouped rows.
func (c *WhatsAppClient) SendList(ctx context.Context, to, header, bodyText, buttonText string, sections []ListSection) error {
	payload := map[string]interface{}{
		"messaging_product": messagingTarget,
		"to":                to,
		"type":              "interactive",
		"interactive": map[string]interface{}{
			"type":   "list",
			"header": map[string]string{"type": "text", "text": Truncate(header, maxListHeader)},
			"body":   map[string]string{"text": bodyText},
			"action": map[string]interface{}{
				"button":   Truncate(buttonText, maxListButton),
				"sections": sections,
			},
		},
	}
	return c.postJSON(ctx, "/messages", payload)
}

// postJSON sends the payload and surfaces the Graph API error body on
// 4xx/5xx for debugging.
func (c *WhatsAppClient) postJSON(ctx context.Context, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	endpoint := fmt.Sprintf("%s/%s%s", c.BaseURL, c.PhoneNumberID, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("graph API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

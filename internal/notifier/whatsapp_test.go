package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Path    string
	Auth    string
	Payload map[string]interface{}
}

func newCaptureServer(t *testing.T, status int) (*httptest.Server, *[]capturedRequest) {
	t.Helper()
	var captured []capturedRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		captured = append(captured, capturedRequest{
			Path:    r.URL.Path,
			Auth:    r.Header.Get("Authorization"),
			Payload: payload,
		})
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(ts.Close)
	return ts, &captured
}

func TestWhatsAppClient_SendText(t *testing.T) {
	ts, captured := newCaptureServer(t, http.StatusOK)
	c := NewWhatsAppClient(ts.URL, "12345", "token-abc", "")

	err := c.SendText(context.Background(), "85261234567", "你好")
	require.NoError(t, err)
	require.Len(t, *captured, 1)

	got := (*captured)[0]
	assert.Equal(t, "/12345/messages", got.Path)
	assert.Equal(t, "Bearer token-abc", got.Auth)
	assert.Equal(t, "whatsapp", got.Payload["messaging_product"])
	assert.Equal(t, "85261234567", got.Payload["to"])
	assert.Equal(t, "text", got.Payload["type"])
	text := got.Payload["text"].(map[string]interface{})
	assert.Equal(t, "你好", text["body"])
}

func TestWhatsAppClient_SendTextCapsBody(t *testing.T) {
	ts, captured := newCaptureServer(t, http.StatusOK)
	c := NewWhatsAppClient(ts.URL, "12345", "token", "")

	err := c.SendText(context.Background(), "852", strings.Repeat("x", MaxSummaryLen+100))
	require.NoError(t, err)
	text := (*captured)[0].Payload["text"].(map[string]interface{})
	assert.Len(t, text["body"], MaxSummaryLen)
}

func TestWhatsAppClient_SendButtonsCapsAtThree(t *testing.T) {
	ts, captured := newCaptureServer(t, http.StatusOK)
	c := NewWhatsAppClient(ts.URL, "12345", "token", "")

	buttons := []Button{
		{ID: "opt_short", Title: "短線"},
		{ID: "opt_swing", Title: "波段"},
		{ID: "opt_position", Title: "中長線"},
		{ID: "opt_extra", Title: "多餘"},
	}
	err := c.SendButtons(context.Background(), "852", "選擇分析模式：", buttons)
	require.NoError(t, err)

	interactive := (*captured)[0].Payload["interactive"].(map[string]interface{})
	assert.Equal(t, "button", interactive["type"])
	action := interactive["action"].(map[string]interface{})
	assert.Len(t, action["buttons"], 3)
}

func TestWhatsAppClient_SendList(t *testing.T) {
	ts, captured := newCaptureServer(t, http.StatusOK)
	c := NewWhatsAppClient(ts.URL, "12345", "token", "")

	sections := []ListSection{{Title: "期間", Rows: []ListRow{{ID: "days_60", Title: "60 天"}}}}
	err := c.SendList(context.Background(), "852", "分析期間", "選擇回看天數：", "選擇", sections)
	require.NoError(t, err)

	interactive := (*captured)[0].Payload["interactive"].(map[string]interface{})
	assert.Equal(t, "list", interactive["type"])
	header := interactive["header"].(map[string]interface{})
	assert.Equal(t, "分析期間", header["text"])
}

func TestWhatsAppClient_GraphErrorSurfaced(t *testing.T) {
	ts, _ := newCaptureServer(t, http.StatusBadRequest)
	c := NewWhatsAppClient(ts.URL, "12345", "token", "")

	err := c.SendText(context.Background(), "852", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}

func TestNewWhatsAppClient_DefaultBaseURL(t *testing.T) {
	c := NewWhatsAppClient("", "12345", "token", "")
	assert.Equal(t, DefaultGraphAPIBase, c.BaseURL)
}

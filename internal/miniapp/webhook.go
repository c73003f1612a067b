package miniapp

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Tipos de evento reconhecidos
const (
	EventInstall   = "mini_app_install"
	EventUninstall = "mini_app_uninstall"
)

// Event é o corpo enviado pelo host da mini app
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Known indica se o tipo é um dos eventos de ciclo de vida tratados
func (e Event) Known() bool {
	return e.Type == EventInstall || e.Type == EventUninstall
}

// WebhookHandler recebe eventos de ciclo de vida da mini app.
// OnEvent é opcional (métricas, publicação no kafka).
type WebhookHandler struct {
	Log     *zap.Logger
	OnEvent func(ctx context.Context, ev Event)
}

func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
		return
	}

	var ev Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}

	h.Log.Info("webhook received",
		zap.String("type", ev.Type),
		zap.Bool("known", ev.Known()),
		zap.ByteString("data", ev.Data),
	)

	switch ev.Type {
	case EventInstall:
		h.Log.Info("mini app installed")
	case EventUninstall:
		h.Log.Info("mini app uninstalled")
	}

	if h.OnEvent != nil {
		h.OnEvent(r.Context(), ev)
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

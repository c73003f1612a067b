package events

import (
	"encoding/json"
	"time"
)

// Evento de ciclo de vida recebido pelo webhook do host (install/uninstall)
type AppLifecycle struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
	Ts   time.Time       `json:"ts"`
}

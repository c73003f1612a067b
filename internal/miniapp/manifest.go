package miniapp

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/radieske/fear-greed-oracle/internal/shared/config"
)

// Manifest é o documento servido em /.well-known/farcaster.json
type Manifest struct {
	AccountAssociation AccountAssociation    `json:"accountAssociation"`
	Frame              Frame                 `json:"frame"`
	Capabilities       map[string]Capability `json:"capabilities"`
}

type AccountAssociation struct {
	Header    string `json:"header"`
	Payload   string `json:"payload"`
	Signature string `json:"signature"`
}

type Frame struct {
	Version               string `json:"version"`
	Name                  string `json:"name"`
	IconURL               string `json:"iconUrl"`
	SplashImageURL        string `json:"splashImageUrl"`
	SplashBackgroundColor string `json:"splashBackgroundColor"`
	HomeURL               string `json:"homeUrl"`
	WebhookURL            string `json:"webhookUrl"`
}

type Capability struct {
	Version string `json:"version"`
}

// FrameVersion é a versão do formato de frame publicada no manifest
const FrameVersion = "1"

// NewManifest monta o manifest a partir da configuração
func NewManifest(c config.Manifest) Manifest {
	m := Manifest{
		AccountAssociation: AccountAssociation{
			Header:    c.AccountHeader,
			Payload:   c.AccountPayload,
			Signature: c.AccountSignature,
		},
		Frame: Frame{
			Version:               FrameVersion,
			Name:                  c.Name,
			IconURL:               c.IconURL,
			SplashImageURL:        c.SplashImageURL,
			SplashBackgroundColor: c.SplashBackgroundColor,
			HomeURL:               c.HomeURL,
			WebhookURL:            c.WebhookURL,
		},
		Capabilities: map[string]Capability{},
	}
	if c.Capability != "" {
		m.Capabilities[c.Capability] = Capability{Version: c.CapabilityVersion}
	}
	return m
}

// setCORS libera o manifest para qualquer origem
func setCORS(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
	h.Set("Content-Type", "application/json")
}

// ManifestHandler serve o manifest. OPTIONS responde 200 sem corpo.
// O documento é serializado uma vez só, sem escapar "&" do nome.
func ManifestHandler(m Manifest) http.HandlerFunc {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(m); err != nil {
		panic(err) // só tipos simples, não falha
	}
	body := buf.Bytes()
	return func(w http.ResponseWriter, r *http.Request) {
		setCORS(w)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	}
}

package wallet

import (
	"errors"
	"strings"
)

var ErrUnsupportedEcosystem = errors.New("unsupported wallet ecosystem")

// DemoFID identifica o usuário de demonstração usado fora do host do mini app
const DemoFID = "demo"

// Session é a identidade de quem aposta: usuário do host (FID) + carteira.
// Implementa pool.Bettor.
type Session struct {
	FID         string `json:"fid"`
	Username    string `json:"username,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Address     string `json:"address,omitempty"`
	Ecosystem   string `json:"ecosystem,omitempty"`

	connected bool
}

func (s Session) Connected() bool { return s.connected }

func (s Session) IsDemo() bool { return s.FID == DemoFID }

// BettorID é a chave do histórico pessoal
func (s Session) BettorID() string {
	if s.FID == "" {
		return ""
	}
	return "fid:" + s.FID
}

// Label segue a ordem: demo, username, display name, FID, anônimo
func (s Session) Label() string {
	switch {
	case s.IsDemo():
		return "Demo User"
	case s.Username != "":
		return s.Username
	case s.DisplayName != "":
		return s.DisplayName
	case s.FID != "":
		return "FID: " + s.FID
	}
	return "Anonymous"
}

// Connector decide se uma sessão pode apostar
type Connector struct {
	verifier  Verifier
	allowDemo bool
}

// NewConnector falha com ErrUnsupportedEcosystem para ecossistemas desconhecidos
func NewConnector(ecosystem string, allowDemo bool) (*Connector, error) {
	v := VerifierFor(ecosystem)
	if v == nil {
		return nil, ErrUnsupportedEcosystem
	}
	return &Connector{verifier: v, allowDemo: allowDemo}, nil
}

func (c *Connector) Ecosystem() string { return c.verifier.Ecosystem() }

// Resolve normaliza a sessão e marca como conectada quando:
// - é o usuário demo e o modo demo está ligado, ou
// - há FID e o endereço é válido no ecossistema configurado.
func (c *Connector) Resolve(s Session) Session {
	s.FID = strings.TrimSpace(s.FID)
	s.Address = strings.TrimSpace(s.Address)
	s.Ecosystem = c.verifier.Ecosystem()
	s.connected = false

	if s.IsDemo() {
		s.connected = c.allowDemo
		return s
	}
	if s.FID == "" || s.Address == "" {
		return s
	}
	s.connected = c.verifier.ValidAddress(s.Address)
	return s
}

// Short abrevia um endereço do ecossistema configurado
func (c *Connector) Short(addr string) string { return c.verifier.Short(addr) }

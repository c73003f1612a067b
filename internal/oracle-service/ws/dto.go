package ws

// Canais disponíveis para assinatura
const (
	ChannelBets      = "bets"
	ChannelPool      = "pool"
	ChannelSentiment = "sentiment"
	ChannelRound     = "round"
)

// ClientMsg representa uma mensagem recebida do cliente WebSocket
// Type: subscribe | unsubscribe | ping
type ClientMsg struct {
	Type    string `json:"type"`              // subscribe | unsubscribe | ping
	Channel string `json:"channel,omitempty"` // requerido em subscribe/unsubscribe
}

// Update é o envelope enviado aos clientes inscritos em um canal
type Update struct {
	Channel string `json:"channel"`
	Payload any    `json:"payload"`
}

// PoolTotals é o payload do canal "pool"
type PoolTotals struct {
	Up   string `json:"up"`
	Down string `json:"down"`
}

func validChannel(c string) bool {
	switch c {
	case ChannelBets, ChannelPool, ChannelSentiment, ChannelRound:
		return true
	}
	return false
}

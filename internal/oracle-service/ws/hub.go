package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/radieske/fear-greed-oracle/pkg/contracts/events"
)

const writeWait = 5 * time.Second

// client serializa as escritas: o gorilla aceita um único writer por conexão
type client struct {
	conn *websocket.Conn
	wmu  sync.Mutex
}

func (c *client) write(b []byte) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, b)
}

// Hub gerencia conexões WebSocket e assinaturas por canal
// subs: mapeia canal para o conjunto de clientes inscritos
type Hub struct {
	log      *zap.Logger
	upgrader websocket.Upgrader
	mu       sync.RWMutex
	subs     map[string]map[*client]struct{}
	clients  int

	// OnClients recebe o número de conexões abertas (gauge de métricas)
	OnClients func(n int)
}

// NewHub cria uma instância de Hub com política customizada de origem (CORS)
func NewHub(log *zap.Logger, allowOrigin func(r *http.Request) bool) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		log:      log,
		upgrader: websocket.Upgrader{CheckOrigin: allowOrigin},
		subs:     make(map[string]map[*client]struct{}),
	}
}

// HandleWS gerencia o ciclo de vida de uma conexão WebSocket
// Permite subscribe/unsubscribe em canais e responde a pings
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	c := &client{conn: conn}
	h.track(+1)

	for {
		var msg ClientMsg
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}
		switch msg.Type {
		case "subscribe":
			if !validChannel(msg.Channel) {
				h.reply(c, map[string]string{"type": "error", "error": "unknown channel"})
				continue
			}
			h.mu.Lock()
			if _, ok := h.subs[msg.Channel]; !ok {
				h.subs[msg.Channel] = make(map[*client]struct{})
			}
			h.subs[msg.Channel][c] = struct{}{}
			h.mu.Unlock()
			h.reply(c, map[string]string{"type": "subscribed", "channel": msg.Channel})
		case "unsubscribe":
			h.mu.Lock()
			if m, ok := h.subs[msg.Channel]; ok {
				delete(m, c)
				if len(m) == 0 {
					delete(h.subs, msg.Channel)
				}
			}
			h.mu.Unlock()
		case "ping":
			h.reply(c, map[string]string{"type": "pong"})
		}
	}

	// Remove a conexão de todas as assinaturas ao desconectar
	h.mu.Lock()
	for ch, set := range h.subs {
		delete(set, c)
		if len(set) == 0 {
			delete(h.subs, ch)
		}
	}
	h.mu.Unlock()
	h.track(-1)
}

func (h *Hub) reply(c *client, v any) {
	b, _ := json.Marshal(v)
	_ = c.write(b)
}

func (h *Hub) track(delta int) {
	h.mu.Lock()
	h.clients += delta
	n := h.clients
	h.mu.Unlock()
	if h.OnClients != nil {
		h.OnClients(n)
	}
}

// Subscribers retorna quantos clientes estão inscritos no canal
func (h *Hub) Subscribers(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[channel])
}

// Broadcast envia o payload para todos os clientes inscritos no canal
func (h *Hub) Broadcast(channel string, payload any) {
	h.mu.RLock()
	set := h.subs[channel]
	targets := make([]*client, 0, len(set))
	for c := range set {
		targets = append(targets, c)
	}
	h.mu.RUnlock()
	if len(targets) == 0 {
		return
	}

	b, err := json.Marshal(Update{Channel: channel, Payload: payload})
	if err != nil {
		h.log.Warn("ws marshal failed", zap.String("channel", channel), zap.Error(err))
		return
	}
	for _, c := range targets {
		if err := c.write(b); err != nil {
			h.log.Debug("ws write failed", zap.String("channel", channel), zap.Error(err))
		}
	}
}

// OnBetPlaced publica a aposta em "bets" e os novos totais em "pool"
func (h *Hub) OnBetPlaced(_ context.Context, e events.BetPlaced) error {
	h.Broadcast(ChannelBets, e)
	h.Broadcast(ChannelPool, PoolTotals{Up: e.PoolUp, Down: e.PoolDown})
	return nil
}

func (h *Hub) OnSentiment(_ context.Context, e events.SentimentUpdate) error {
	h.Broadcast(ChannelSentiment, e)
	return nil
}

func (h *Hub) OnRoundElapsed(_ context.Context, e events.RoundElapsed) error {
	h.Broadcast(ChannelRound, e)
	return nil
}

package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/radieske/fear-greed-oracle/internal/oracle-service/dto"
	"github.com/radieske/fear-greed-oracle/internal/oracle-service/service"
	"github.com/radieske/fear-greed-oracle/internal/pool"
	"github.com/radieske/fear-greed-oracle/internal/sentiment"
	"github.com/radieske/fear-greed-oracle/internal/wallet"
)

// Oracle é o que a API precisa do serviço
type Oracle interface {
	Pool() service.PoolView
	PlaceBet(ctx context.Context, sess wallet.Session, direction string, amount decimal.Decimal, comment string) (pool.Confirmation, error)
	RecentBets() []pool.Bet
	UserBets(fid string, limit int) []pool.Bet
	Sentiment() sentiment.Snapshot
	Round() service.RoundView
}

const defaultUserBetsLimit = 3

// API expõe os endpoints REST, o WebSocket e as rotas da mini app
type API struct {
	Log      *zap.Logger
	Oracle   Oracle
	WS       http.HandlerFunc // opcional
	Manifest http.Handler
	Webhook  http.Handler
}

// Router retorna o roteador HTTP com todas as rotas públicas
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(withCORS)

	r.Get("/v1/pool", a.getPool)              // Totais e odds
	r.Post("/v1/bets", a.placeBet)            // Aposta
	r.Get("/v1/bets/recent", a.recentBets)    // Feed global
	r.Get("/v1/users/{fid}/bets", a.userBets) // Histórico pessoal
	r.Get("/v1/sentiment", a.getSentiment)    // Índice, tendência e série
	r.Get("/v1/round", a.getRound)            // Countdown

	if a.WS != nil {
		r.Get("/ws", a.WS)
	}
	if a.Manifest != nil {
		r.Handle("/api/manifest", a.Manifest)
		r.Handle("/.well-known/farcaster.json", a.Manifest)
	}
	if a.Webhook != nil {
		r.Handle("/api/webhook", a.Webhook)
	}
	return r
}

// withCORS libera a API /v1 para o frame do host e responde o preflight.
// As rotas da mini app tratam CORS por conta própria.
func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/v1/") {
			h.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// writeJSON serializa a resposta em JSON e define o status HTTP
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, dto.ErrorResponse{Error: msg})
}

// statusFor mapeia os erros de aposta para HTTP
func statusFor(err error) int {
	switch {
	case errors.Is(err, pool.ErrNotConnected):
		return http.StatusUnauthorized
	case errors.Is(err, pool.ErrInvalidAmount),
		errors.Is(err, pool.ErrInvalidDirection),
		errors.Is(err, pool.ErrCommentTooLong):
		return http.StatusBadRequest
	case errors.Is(err, pool.ErrOddsUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (a *API) getPool(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, a.Oracle.Pool())
}

func (a *API) placeBet(w http.ResponseWriter, r *http.Request) {
	var req dto.PlaceBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	sess := wallet.Session{
		FID:         req.FID,
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Address:     req.Address,
	}
	conf, err := a.Oracle.PlaceBet(r.Context(), sess, req.Direction, req.Amount, req.Comment)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			a.Log.Error("place bet failed", zap.Error(err))
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.PlaceBetResponse{
		Confirmation: conf,
		Message:      "Bet placed: " + conf.Amount.String() + " on " + string(conf.Direction) + " @ " + conf.Odds.StringFixed(2),
	})
}

func (a *API) recentBets(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, dto.NewBetViews(a.Oracle.RecentBets()))
}

func (a *API) userBets(w http.ResponseWriter, r *http.Request) {
	fid := chi.URLParam(r, "fid")
	limit := defaultUserBetsLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	writeJSON(w, http.StatusOK, dto.NewBetViews(a.Oracle.UserBets(fid, limit)))
}

func (a *API) getSentiment(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, a.Oracle.Sentiment())
}

func (a *API) getRound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, a.Oracle.Round())
}

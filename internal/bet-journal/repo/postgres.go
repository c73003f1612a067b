package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/radieske/fear-greed-oracle/pkg/contracts/events"
)

// execer é o subconjunto de *sql.DB usado pelo journal
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Postgres grava o journal de apostas (somente escrita, nunca relido pelo pool)
type Postgres struct {
	DB execer
}

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{DB: db} }

const schema = `
	CREATE TABLE IF NOT EXISTS bet_journal (
		bet_id            TEXT PRIMARY KEY,
		bettor_id         TEXT,
		bettor            TEXT NOT NULL,
		direction         TEXT NOT NULL CHECK (direction IN ('up','down')),
		amount            NUMERIC(18,2) NOT NULL,
		odds_at_placement NUMERIC(10,2) NOT NULL,
		comment           TEXT,
		simulated         BOOLEAN NOT NULL DEFAULT FALSE,
		pool_up           NUMERIC(18,2) NOT NULL,
		pool_down         NUMERIC(18,2) NOT NULL,
		placed_at         TIMESTAMPTZ NOT NULL,
		recorded_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

// EnsureSchema cria a tabela se ainda não existir
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure bet_journal: %w", err)
	}
	return nil
}

// Append insere a aposta. Reentregas do Kafka com o mesmo bet_id são ignoradas.
// inserted=false quando a aposta já estava no journal.
func (p *Postgres) Append(ctx context.Context, e events.BetPlaced) (inserted bool, err error) {
	const q = `
		INSERT INTO bet_journal
		  (bet_id, bettor_id, bettor, direction, amount, odds_at_placement, comment, simulated, pool_up, pool_down, placed_at)
		VALUES
		  ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (bet_id) DO NOTHING
	`
	res, err := p.DB.ExecContext(ctx, q,
		e.BetID, nullable(e.BettorID), e.Bettor, e.Direction,
		e.Amount, e.OddsAtPlacement, nullable(e.Comment), e.Simulated,
		e.PoolUp, e.PoolDown, time.UnixMilli(e.TsUnixMs).UTC(),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return true, nil
	}
	return n > 0, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

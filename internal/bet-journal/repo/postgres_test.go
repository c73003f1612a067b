package repo

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/radieske/fear-greed-oracle/pkg/contracts/events"
)

type result int64

func (r result) LastInsertId() (int64, error) { return 0, errors.New("not supported") }
func (r result) RowsAffected() (int64, error) { return int64(r), nil }

type fakeDB struct {
	queries []string
	args    [][]any
	seen    map[string]bool
	err     error
}

func (f *fakeDB) ExecContext(_ context.Context, q string, args ...any) (sql.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.queries = append(f.queries, q)
	f.args = append(f.args, args)
	if len(args) == 0 {
		return result(0), nil
	}
	id := args[0].(string)
	if f.seen[id] {
		return result(0), nil
	}
	f.seen[id] = true
	return result(1), nil
}

func TestAppendIsIdempotent(t *testing.T) {
	db := &fakeDB{seen: map[string]bool{}}
	p := &Postgres{DB: db}
	ev := events.BetPlaced{BetID: "b-1", Bettor: "0xb548...", Direction: "up", Amount: "10", OddsAtPlacement: "0.65", PoolUp: "309", PoolDown: "194", TsUnixMs: 1700000000000}

	ok, err := p.Append(context.Background(), ev)
	if err != nil || !ok {
		t.Fatalf("first append: ok=%v err=%v", ok, err)
	}
	ok, err = p.Append(context.Background(), ev)
	if err != nil || ok {
		t.Fatalf("duplicate append should be a no-op: ok=%v err=%v", ok, err)
	}

	if !strings.Contains(db.queries[0], "ON CONFLICT (bet_id) DO NOTHING") {
		t.Fatal("insert must be idempotent on bet_id")
	}
	if bettorID := db.args[0][1].(sql.NullString); bettorID.Valid {
		t.Fatal("empty bettor id should be stored as NULL")
	}
}

func TestEnsureSchemaWrapsError(t *testing.T) {
	boom := errors.New("permission denied")
	p := &Postgres{DB: &fakeDB{err: boom}}
	if err := p.EnsureSchema(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("got %v", err)
	}
}

package sentiment

import (
	"context"
	"errors"
)

var ErrFeedUnavailable = errors.New("sentiment feed unavailable")

// Source fornece a leitura mais recente do índice
type Source interface {
	Latest(ctx context.Context) (Sample, error)
}

// HistorySource é opcional: permite preencher a série na partida
type HistorySource interface {
	History(ctx context.Context, n int) ([]Sample, error)
}

// LastKnownStore guarda a última leitura boa fora do processo (ex.: Redis)
type LastKnownStore interface {
	SaveLast(ctx context.Context, s Sample) error
	LoadLast(ctx context.Context) (Sample, bool, error)
}

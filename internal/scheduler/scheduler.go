package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var ErrAlreadyStarted = errors.New("scheduler already started")

// Task é uma tarefa periódica nomeada
type Task struct {
	Name     string
	Interval time.Duration
	// RunAtStart executa uma vez antes do primeiro tick
	RunAtStart bool
	Fn         func(ctx context.Context)
}

// Scheduler é dono de todos os timers do processo. Stop cancela tudo de uma vez
// e só retorna depois que nenhuma tarefa está mais rodando.
type Scheduler struct {
	log   *zap.Logger
	tasks []Task

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	group   *errgroup.Group
	done    chan struct{}
}

func New(log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{log: log}
}

// Add registra uma tarefa. Só tem efeito antes de Start.
func (s *Scheduler) Add(t Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started || t.Fn == nil || t.Interval <= 0 {
		return
	}
	s.tasks = append(s.tasks, t)
}

// Start dispara uma goroutine por tarefa. As tarefas param quando ctx
// é cancelado ou quando Stop é chamado.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return ErrAlreadyStarted
	}
	s.started = true

	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)
	s.cancel = cancel
	s.group = g
	s.done = make(chan struct{})

	for _, t := range s.tasks {
		t := t
		g.Go(func() error {
			s.loop(gctx, t)
			return nil
		})
		s.log.Info("task scheduled", zap.String("task", t.Name), zap.Duration("interval", t.Interval))
	}

	go func() {
		_ = g.Wait()
		close(s.done)
	}()
	return nil
}

func (s *Scheduler) loop(ctx context.Context, t Task) {
	if t.RunAtStart {
		s.run(ctx, t)
	}
	ticker := time.NewTicker(t.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// o ticker pode disputar com o cancelamento; cancelado vence
			if ctx.Err() != nil {
				return
			}
			s.run(ctx, t)
		}
	}
}

func (s *Scheduler) run(ctx context.Context, t Task) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("task panicked", zap.String("task", t.Name), zap.Any("panic", r))
		}
	}()
	t.Fn(ctx)
}

// Stop cancela todas as tarefas e espera terminarem. Pode ser chamado mais de uma vez.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Done fecha quando todas as tarefas terminaram
func (s *Scheduler) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Names lista as tarefas registradas
func (s *Scheduler) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t.Name)
	}
	return out
}

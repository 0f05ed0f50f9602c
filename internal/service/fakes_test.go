package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/smartcity/gateway/internal/domain"
	"github.com/smartcity/gateway/internal/repository/memory"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// wait blocks for d or until ctx is done
func wait(ctx context.Context, backend string, d time.Duration) error {
	if d == 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return domain.NewBackendError(backend, domain.KindUnreachable, ctx.Err())
	}
}

type fakeAir struct {
	mu    sync.Mutex
	calls []string
	err   error
	delay time.Duration
}

func (f *fakeAir) GetAirQuality(ctx context.Context, city string) (domain.AirQuality, error) {
	f.mu.Lock()
	f.calls = append(f.calls, city)
	f.mu.Unlock()

	if err := wait(ctx, domain.BackendAir, f.delay); err != nil {
		return domain.AirQuality{}, err
	}
	if f.err != nil {
		return domain.AirQuality{}, f.err
	}
	return memory.LookupAir(city), nil
}

func (f *fakeAir) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeTraffic struct {
	mu    sync.Mutex
	calls map[string]int
	err   error
	delay time.Duration
}

func newFakeTraffic() *fakeTraffic {
	return &fakeTraffic{calls: make(map[string]int)}
}

func (f *fakeTraffic) GetTraffic(ctx context.Context, roadID string) (domain.Traffic, error) {
	f.mu.Lock()
	f.calls[roadID]++
	f.mu.Unlock()

	if err := wait(ctx, domain.BackendTraffic, f.delay); err != nil {
		return domain.Traffic{}, err
	}
	if f.err != nil {
		return domain.Traffic{}, f.err
	}
	if t, ok := memory.LookupTraffic(roadID); ok {
		return t, nil
	}
	return domain.UnknownTraffic(roadID), nil
}

func (f *fakeTraffic) callsFor(roadID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[roadID]
}

func (f *fakeTraffic) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

type fakeMobility struct {
	mu         sync.Mutex
	transports []domain.Transport
	calls      int
	err        error
	delay      time.Duration
}

func newFakeMobility() *fakeMobility {
	return &fakeMobility{transports: memory.DefaultTransports()}
}

func (f *fakeMobility) ListTransports(ctx context.Context) ([]domain.Transport, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if err := wait(ctx, domain.BackendMobility, f.delay); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.transports, nil
}

func (f *fakeMobility) GetTransport(ctx context.Context, id int) (domain.Transport, error) {
	for _, t := range f.transports {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.Transport{}, domain.NewBackendError(domain.BackendMobility, domain.KindNotFound, errors.New("no such transport"))
}

func (f *fakeMobility) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeEnergy struct {
	err error
}

func (f *fakeEnergy) GetEnergy(ctx context.Context, buildingID string) (domain.Energy, error) {
	if f.err != nil {
		return domain.Energy{}, f.err
	}
	return memory.LookupEnergy(buildingID), nil
}

// fakeEngine records the prompt it was given
type fakeEngine struct {
	mu         sync.Mutex
	prompt     string
	completion Completion
	err        error
	block      bool
}

func (f *fakeEngine) Generate(ctx context.Context, prompt string) (Completion, error) {
	f.mu.Lock()
	f.prompt = prompt
	f.mu.Unlock()

	if f.block {
		<-ctx.Done()
		return Completion{}, domain.NewBackendError(domain.BackendEngine, domain.KindUnreachable, ctx.Err())
	}
	if f.err != nil {
		return Completion{}, f.err
	}
	return f.completion, nil
}

func (f *fakeEngine) lastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.prompt
}

package connectivity

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Probe проверяет доступность сервера одним запросом.
type Probe func(ctx context.Context) error

// Monitor периодически опрашивает сервер и зовёт колбэки на переходе
// офлайн → онлайн. Именно этот фронт запускает повторную сверку кеша.
type Monitor struct {
	probe    Probe
	interval time.Duration
	logger   *zap.SugaredLogger

	mu       sync.Mutex
	online   bool
	sawState bool
	onOnline []func(ctx context.Context)
}

// NewMonitor собирает монитор с периодом опроса interval.
func NewMonitor(probe Probe, interval time.Duration, logger *zap.SugaredLogger) *Monitor {
	return &Monitor{probe: probe, interval: interval, logger: logger}
}

// OnOnline регистрирует колбэк перехода офлайн → онлайн.
// Первый успешный опрос после старта колбэки не зовёт.
func (m *Monitor) OnOnline(fn func(ctx context.Context)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onOnline = append(m.onOnline, fn)
}

// Online сообщает последнее известное состояние связи.
func (m *Monitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// Check выполняет один опрос и обновляет состояние. Возвращает true,
// если сервер доступен.
func (m *Monitor) Check(ctx context.Context) bool {
	err := m.probe(ctx)
	now := err == nil

	m.mu.Lock()
	wasOffline := m.sawState && !m.online
	m.sawState = true
	m.online = now
	callbacks := append(([]func(ctx context.Context))(nil), m.onOnline...)
	m.mu.Unlock()

	if now && wasOffline {
		m.logger.Infow("connection restored")
		for _, fn := range callbacks {
			fn(ctx)
		}
	}
	if !now {
		m.logger.Debugw("server unreachable", "error", err)
	}
	return now
}

// Run опрашивает сервер каждые interval до отмены контекста.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}

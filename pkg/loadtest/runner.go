package loadtest

import (
	"context"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/frostbyte73/core"
	"github.com/pkg/errors"

	"github.com/livekit/protocol/logger"

	"github.com/jitsi/jitsi-meet-load-test/pkg/config"
	"github.com/jitsi/jitsi-meet-load-test/pkg/simulation"
	"github.com/jitsi/jitsi-meet-load-test/pkg/telemetry/prometheus"
)

const progressDebounce = 500 * time.Millisecond

var ErrClientNotFound = errors.New("client not found")

type Summary struct {
	Room      string
	StageView bool
	StartedAt time.Time
	Elapsed   time.Duration
	Clients   []ClientSnapshot
	RoomStats simulation.RoomStats
	Policy    prometheus.PolicyStats
	Lifecycle prometheus.ClientStats
}

// Runner starts the configured number of clients one interval apart and
// keeps them until stopped.
type Runner struct {
	conf   *config.Config
	room   *simulation.Room
	logger logger.Logger

	lock      sync.RWMutex
	clients   []*LoadTestClient
	startedAt time.Time
	// taken right before teardown
	final *Summary

	shutdownOnce sync.Once

	progress func(f func())
	stopped  core.Fuse
	done     core.Fuse
}

func NewRunner(conf *config.Config, room *simulation.Room) *Runner {
	return &Runner{
		conf:     conf,
		room:     room,
		logger:   logger.GetLogger().WithValues("room", conf.Room),
		progress: debounce.New(progressDebounce),
	}
}

// Run starts all clients, then blocks until the configured duration elapses,
// ctx is done or Stop is called, and tears everything down.
func (r *Runner) Run(ctx context.Context) error {
	defer r.shutdown()

	if err := r.Start(ctx); err != nil {
		return err
	}

	var timeout <-chan time.Time
	if r.conf.Duration > 0 {
		timer := time.NewTimer(r.conf.Duration)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case <-ctx.Done():
	case <-r.stopped.Watch():
	case <-timeout:
		r.logger.Infow("load test duration reached", "duration", r.conf.Duration)
	}
	return nil
}

// Start connects the clients. Clients failing to connect are logged and skipped.
func (r *Runner) Start(ctx context.Context) error {
	r.lock.Lock()
	if !r.startedAt.IsZero() {
		r.lock.Unlock()
		return errors.New("runner already started")
	}
	r.startedAt = time.Now()
	r.lock.Unlock()

	r.room.Start()
	r.logger.Infow("starting clients",
		"numClients", r.conf.NumClients,
		"clientInterval", r.conf.ClientInterval,
		"stageView", r.conf.Policy.StageView,
	)

	for i := 0; i < r.conf.NumClients; i++ {
		if i > 0 && r.conf.ClientInterval > 0 {
			select {
			case <-ctx.Done():
				return nil
			case <-r.stopped.Watch():
				return nil
			case <-time.After(r.conf.ClientInterval):
			}
		}
		if r.stopped.IsBroken() {
			return nil
		}

		client := NewLoadTestClient(ClientParams{
			Index:  i,
			Config: *r.conf,
			Room:   r.room,
			Logger: r.logger,
		})
		if err := client.Connect(); err != nil {
			r.logger.Warnw("client failed to connect", err, "clientID", i)
			continue
		}

		r.lock.Lock()
		r.clients = append(r.clients, client)
		r.lock.Unlock()
		r.progress(r.logProgress)
	}
	return nil
}

func (r *Runner) Stop() {
	r.stopped.Break()
}

// Done is closed once all clients and the room are torn down.
func (r *Runner) Done() <-chan struct{} {
	return r.done.Watch()
}

func (r *Runner) shutdown() {
	r.shutdownOnce.Do(r.teardown)
}

func (r *Runner) teardown() {
	r.stopped.Break()

	summary := r.collectSummary()
	r.lock.Lock()
	r.final = &summary
	clients := r.clients
	r.lock.Unlock()

	var wg sync.WaitGroup
	for _, c := range clients {
		wg.Add(1)
		go func(c *LoadTestClient) {
			defer wg.Done()
			c.Close()
		}(c)
	}
	wg.Wait()
	r.room.Close()
	r.done.Break()
}

func (r *Runner) logProgress() {
	r.lock.RLock()
	connected := len(r.clients)
	r.lock.RUnlock()

	stats := r.room.Stats()
	r.logger.Infow("load test progress",
		"connected", connected,
		"target", r.conf.NumClients,
		"participants", stats.Participants,
		"visitors", stats.Visitors,
		"constraintsRecorded", stats.Publishes,
	)
}

func (r *Runner) Clients() []*LoadTestClient {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return append([]*LoadTestClient(nil), r.clients...)
}

// MuteAudio mutes or unmutes the client at index, or every client when index
// is negative.
func (r *Runner) MuteAudio(mute bool, index int) error {
	clients := r.Clients()
	if index >= 0 {
		for _, c := range clients {
			if c.Index() == index {
				return c.MuteAudio(mute)
			}
		}
		return ErrClientNotFound
	}

	for _, c := range clients {
		if err := c.MuteAudio(mute); err != nil {
			return err
		}
	}
	return nil
}

// Summary reports the live state, or the state right before teardown once the
// runner is done.
func (r *Runner) Summary() Summary {
	r.lock.RLock()
	final := r.final
	r.lock.RUnlock()
	if final != nil {
		return *final
	}
	return r.collectSummary()
}

func (r *Runner) collectSummary() Summary {
	r.lock.RLock()
	startedAt := r.startedAt
	clients := append([]*LoadTestClient(nil), r.clients...)
	r.lock.RUnlock()

	s := Summary{
		Room:      r.conf.Room,
		StageView: r.conf.Policy.StageView,
		StartedAt: startedAt,
		RoomStats: r.room.Stats(),
		Policy:    prometheus.GetPolicyStats(),
		Lifecycle: prometheus.GetClientStats(),
	}
	if !startedAt.IsZero() {
		s.Elapsed = time.Since(startedAt)
	}
	for _, c := range clients {
		s.Clients = append(s.Clients, c.Snapshot())
	}
	return s
}

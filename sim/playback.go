package sim

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Playback speeds, in bar-advance interval. 1x plays one bar per second.
const (
	SpeedHalf = 2 * time.Second
	Speed1x   = time.Second
	Speed2x   = 500 * time.Millisecond
	Speed4x   = 250 * time.Millisecond
)

// Player advances an engine's cursor on a repeating tick while playing.
// Pause cancels the running loop; a tick that was already queued when
// the loop was cancelled never touches the cursor. Playback stops on
// its own at the final bar.
type Player struct {
	engine   *Engine
	log      *logrus.Logger
	interval time.Duration
	stop     chan struct{}
}

func NewPlayer(engine *Engine, interval time.Duration, log *logrus.Logger) *Player {
	if interval <= 0 {
		interval = Speed1x
	}
	if log == nil {
		log = logrus.New()
	}
	return &Player{engine: engine, log: log, interval: interval}
}

// Play starts the tick loop. Calling Play while already playing is a
// no-op.
func (p *Player) Play() {
	p.engine.mu.Lock()
	defer p.engine.mu.Unlock()

	if p.stop != nil {
		return
	}
	stop := make(chan struct{})
	p.stop = stop
	go p.loop(stop, p.interval)
}

// Pause cancels the tick loop. Safe to call when not playing.
func (p *Player) Pause() {
	p.engine.mu.Lock()
	defer p.engine.mu.Unlock()
	p.cancelLocked()
}

// Playing reports whether the tick loop is running.
func (p *Player) Playing() bool {
	p.engine.mu.Lock()
	defer p.engine.mu.Unlock()
	return p.stop != nil
}

// SetSpeed changes the bar-advance interval, restarting the loop if one
// is running.
func (p *Player) SetSpeed(interval time.Duration) {
	if interval <= 0 {
		return
	}

	p.engine.mu.Lock()
	defer p.engine.mu.Unlock()

	p.interval = interval
	if p.stop == nil {
		return
	}
	p.cancelLocked()
	stop := make(chan struct{})
	p.stop = stop
	go p.loop(stop, interval)
}

// Reset pauses playback and starts a fresh session atomically: the old
// bar sequence, cursor, and any pending tick are discarded together.
func (p *Player) Reset(symbol string) error {
	p.Pause()
	return p.engine.StartSession(symbol)
}

func (p *Player) cancelLocked() {
	if p.stop != nil {
		close(p.stop)
		p.stop = nil
	}
}

func (p *Player) loop(stop chan struct{}, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-stop:
			return
		case <-t.C:
			live, advanced := p.tick(stop)
			if !live {
				return
			}
			if !advanced {
				p.finish(stop)
				return
			}
		}
	}
}

// tick advances the cursor only if this loop is still the active one.
// The token check and the cursor mutation share the engine lock, so a
// tick that raced a cancellation is a guaranteed no-op.
func (p *Player) tick(stop chan struct{}) (live, advanced bool) {
	p.engine.mu.Lock()
	defer p.engine.mu.Unlock()

	if p.stop != stop {
		return false, false
	}
	return true, p.engine.advanceLocked()
}

// finish clears the stop channel after the loop halts at the last bar,
// unless a newer loop has already replaced it.
func (p *Player) finish(stop chan struct{}) {
	p.engine.mu.Lock()
	defer p.engine.mu.Unlock()

	if p.stop == stop {
		p.stop = nil
		p.log.Debug("playback reached final bar")
	}
}

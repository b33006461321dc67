package cancel

import (
	"context"
	"sync"
	"time"
)

// CornerTrigger fires when the pointer reaches a screen corner: slamming
// the mouse into a corner always stops the bot, even if the ESC hook is
// unavailable. Position and screen size are injected as functions so the
// watcher can be tested without a real pointer.
type CornerTrigger struct {
	Position func() (x, y int)
	Screen   func() (w, h int)
	Margin   int           // corner size in pixels, default 5
	Interval time.Duration // poll interval, default 50ms

	ch     chan Event
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewCornerTrigger(position func() (int, int), screen func() (int, int)) *CornerTrigger {
	return &CornerTrigger{Position: position, Screen: screen, ch: make(chan Event, 1)}
}

func (t *CornerTrigger) Start(ctx context.Context) error {
	margin := t.Margin
	if margin <= 0 {
		margin = 5
	}
	interval := t.Interval
	if interval <= 0 {
		interval = 50 * time.Millisecond
	}

	pollCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-pollCtx.Done():
				return
			case <-ticker.C:
				if t.inCorner(margin) {
					select {
					case t.ch <- EventFailsafe:
					default:
					}
					return
				}
			}
		}
	}()
	return nil
}

func (t *CornerTrigger) inCorner(margin int) bool {
	x, y := t.Position()
	w, h := t.Screen()
	nearX := x <= margin || x >= w-1-margin
	nearY := y <= margin || y >= h-1-margin
	return nearX && nearY
}

func (t *CornerTrigger) Stop() error {
	if t.cancel != nil {
		t.cancel()
	}
	t.wg.Wait()
	return nil
}

func (t *CornerTrigger) Events() <-chan Event { return t.ch }

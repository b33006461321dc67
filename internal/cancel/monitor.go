package cancel

import (
	"context"
	"sync"
)

// Event names the trigger source that requested cancellation.
type Event string

const (
	EventHotkey   Event = "hotkey"
	EventFailsafe Event = "failsafe"
	EventRemote   Event = "remote"
)

// Trigger is one cancellation source. Implementations push an Event when
// their stop condition fires; the monitor fans them in.
type Trigger interface {
	Start(ctx context.Context) error
	Stop() error
	Events() <-chan Event
}

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// Monitor watches all configured triggers for the lifetime of one drawing
// run and sets the token on the first event. It is advisory only: the
// executor polls the token at segment boundaries and inter-step delays,
// the monitor never interrupts it.
type Monitor struct {
	Logger Logger

	token    *Token
	triggers []Trigger
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

func NewMonitor(token *Token, triggers ...Trigger) *Monitor {
	return &Monitor{token: token, triggers: triggers}
}

// Start resets the token and begins watching. A monitor instance serves
// exactly one run; construct a fresh one for the next.
func (m *Monitor) Start(ctx context.Context) error {
	m.token.Reset()
	watchCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel

	for i, trigger := range m.triggers {
		if err := trigger.Start(watchCtx); err != nil {
			cancel()
			// Unwind the triggers already running so a hotkey hook or
			// poller does not outlive the failed start.
			for _, started := range m.triggers[:i] {
				if serr := started.Stop(); serr != nil && m.Logger != nil {
					m.Logger.Errorf("cancel", "trigger stop: %v", serr)
				}
			}
			m.wg.Wait()
			return err
		}
		m.wg.Add(1)
		go func(t Trigger) {
			defer m.wg.Done()
			select {
			case <-watchCtx.Done():
			case ev, ok := <-t.Events():
				if !ok {
					return
				}
				if m.Logger != nil {
					m.Logger.Infof("cancel", "stop requested (%s)", ev)
				}
				m.token.Cancel()
			}
		}(trigger)
	}
	return nil
}

// Stop tears the triggers down and waits for the watchers to exit, so the
// next run cannot observe a stale signal.
func (m *Monitor) Stop() {
	if m.cancel != nil {
		m.cancel()
	}
	for _, trigger := range m.triggers {
		if err := trigger.Stop(); err != nil && m.Logger != nil {
			m.Logger.Errorf("cancel", "trigger stop: %v", err)
		}
	}
	m.wg.Wait()
}

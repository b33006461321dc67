package cancel

import (
	"context"

	hook "github.com/robotn/gohook"
)

// HotkeyTrigger fires when the stop key (ESC) is pressed anywhere on the
// desktop, via a global input hook.
type HotkeyTrigger struct {
	Key string // defaults to "esc"

	ch chan Event
}

func NewHotkeyTrigger() *HotkeyTrigger {
	return &HotkeyTrigger{Key: "esc", ch: make(chan Event, 1)}
}

func (t *HotkeyTrigger) Start(ctx context.Context) error {
	key := t.Key
	if key == "" {
		key = "esc"
	}
	hook.Register(hook.KeyDown, []string{key}, func(hook.Event) {
		select {
		case t.ch <- EventHotkey:
		default:
		}
	})
	events := hook.Start()
	go func() {
		// Drains until hook.End is called from Stop.
		<-hook.Process(events)
	}()
	return nil
}

func (t *HotkeyTrigger) Stop() error {
	hook.End()
	return nil
}

func (t *HotkeyTrigger) Events() <-chan Event { return t.ch }

package cancel

import "context"

// RemoteTrigger lets the control API request cancellation through the
// monitor, keeping the token's single-writer contract: the API fires the
// trigger, only the monitor writes the token.
type RemoteTrigger struct {
	ch chan Event
}

func NewRemoteTrigger() *RemoteTrigger {
	return &RemoteTrigger{ch: make(chan Event, 1)}
}

// Fire requests cancellation. Safe to call at any time; a fire that lands
// between runs is discarded when the next run starts.
func (t *RemoteTrigger) Fire() {
	select {
	case t.ch <- EventRemote:
	default:
	}
}

func (t *RemoteTrigger) Start(ctx context.Context) error {
	// Drop any stale fire from before this run.
	select {
	case <-t.ch:
	default:
	}
	return nil
}
func (t *RemoteTrigger) Stop() error          { return nil }
func (t *RemoteTrigger) Events() <-chan Event { return t.ch }

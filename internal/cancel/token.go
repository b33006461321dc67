package cancel

import "sync/atomic"

// Token is the shared stop flag for one drawing run. The monitor is the
// only writer, the executor the only reader, so an atomic bool is all the
// synchronization needed. Reset is called at the start of each run; a
// token never leaks state across runs.
type Token struct {
	flag atomic.Bool
}

func NewToken() *Token { return &Token{} }

func (t *Token) Cancel()         { t.flag.Store(true) }
func (t *Token) Cancelled() bool { return t.flag.Load() }
func (t *Token) Reset()          { t.flag.Store(false) }

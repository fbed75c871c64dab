package syncx

import "sync"

// SucceedOnce runs an operation until it succeeds for the first time.
//
// Unlike [sync.Once], a failed attempt does not count, so the next call to
// [SucceedOnce.Do] tries again. The zero value is ready to use.
type SucceedOnce struct {
	m    sync.Mutex
	done bool
}

// Do calls fn unless a previous call to fn has returned nil.
//
// Concurrent calls block until the in-flight attempt completes.
func (o *SucceedOnce) Do(fn func() error) error {
	o.m.Lock()
	defer o.m.Unlock()

	if o.done {
		return nil
	}

	if err := fn(); err != nil {
		return err
	}

	o.done = true
	return nil
}

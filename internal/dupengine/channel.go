package dupengine

import "sync"

// StatusChannel guards every WorkerStatus with one lock and one condition.
// Workers mutate through Update, which wakes the coordinator. The coordinator
// holds the lock while it reads, and releases it only inside Wait.
type StatusChannel struct {
	mu   sync.Mutex
	cond *sync.Cond
}

// NewStatusChannel creates a StatusChannel.
func NewStatusChannel() *StatusChannel {
	channel := &StatusChannel{}
	channel.cond = sync.NewCond(&channel.mu)

	return channel
}

// Lock acquires the status lock.
func (c *StatusChannel) Lock() {
	c.mu.Lock()
}

// Unlock releases the status lock.
func (c *StatusChannel) Unlock() {
	c.mu.Unlock()
}

// Update runs mutate under the lock and wakes any waiter before releasing it.
func (c *StatusChannel) Update(mutate func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	mutate()
	c.cond.Broadcast()
}

// Wait releases the lock until the next Update, then reacquires it.
// The caller must hold the lock and must re-check its condition afterwards.
func (c *StatusChannel) Wait() {
	c.cond.Wait()
}

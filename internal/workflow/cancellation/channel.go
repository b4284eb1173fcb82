package cancellation

import "sync/atomic"

// Channel хранит не больше одной причины отмены.
// Signal можно вызывать из любой горутины, повторный вызов перезаписывает причину.
// Peek не очищает значение: после того как отмена замечена, workflow уже уходит в ветку отмены.
type Channel struct {
	reason atomic.Pointer[string]
}

func New() *Channel {
	return &Channel{}
}

func (c *Channel) Signal(reason string) {
	c.reason.Store(&reason)
}

func (c *Channel) Peek() (string, bool) {
	reason := c.reason.Load()
	if reason == nil {
		return "", false
	}
	return *reason, true
}

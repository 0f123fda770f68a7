package notify

import "sync"

// Publisher tells connected observers that the task set changed. The signal
// carries no payload; receivers reconcile by re-fetching their task list.
type Publisher interface {
	Publish() error
}

// Broker fans a change signal out to every in-process subscriber. Channels
// are buffered with capacity 1 and sends never block, so a slow observer
// drops the extra signal instead of stalling emission to the others. One
// pending signal is all an observer needs: the reaction is always a full
// re-fetch.
type Broker struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[chan struct{}]struct{})}
}

func (b *Broker) Subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Broker) Unsubscribe(ch chan struct{}) {
	b.mu.Lock()
	delete(b.subs, ch)
	b.mu.Unlock()
}

func (b *Broker) Notify() {
	b.mu.Lock()
	for ch := range b.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	b.mu.Unlock()
}

// SubscriberCount reports how many observers are currently attached.
func (b *Broker) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Publish lets a Broker serve as the Publisher when no cross-instance
// bus is configured.
func (b *Broker) Publish() error {
	b.Notify()
	return nil
}

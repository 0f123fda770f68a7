package notify

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const changeEvent = "taskUpdated"

// RedisBus carries the change signal across process instances through a
// Redis pub/sub channel. Publish pushes the signal out; Run feeds incoming
// signals (including our own) into the local broker so every instance's
// observers hear about every mutation exactly once per connection.
type RedisBus struct {
	client  *redis.Client
	channel string
	broker  *Broker
}

func NewRedisBus(client *redis.Client, channel string, broker *Broker) *RedisBus {
	return &RedisBus{client: client, channel: channel, broker: broker}
}

func (b *RedisBus) Publish() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	return b.client.Publish(ctx, b.channel, changeEvent).Err()
}

// Run blocks consuming the pub/sub channel until ctx is cancelled,
// reconnecting with a short pause if the subscription drops.
func (b *RedisBus) Run(ctx context.Context) {
	for {
		sub := b.client.Subscribe(ctx, b.channel)
		ch := sub.Channel()

		for {
			select {
			case <-ctx.Done():
				sub.Close()
				return
			case msg, ok := <-ch:
				if !ok {
					goto reconnect
				}
				_ = msg
				b.broker.Notify()
			}
		}

	reconnect:
		sub.Close()
		if ctx.Err() != nil {
			return
		}
		log.Printf("notify: pubsub channel closed, reconnecting")
		time.Sleep(time.Second)
	}
}

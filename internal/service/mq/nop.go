package mq

import "context"

// NopProducer mq.type=none 时使用，丢弃所有消息
type NopProducer struct{}

func (NopProducer) Publish(context.Context, string, string, []byte) error { return nil }

// NopConsumer 不订阅任何消息，Subscribe 直接等待 ctx 结束
type NopConsumer struct{}

func (NopConsumer) Subscribe(ctx context.Context, _ string, _ func(msg *Message) error) error {
	<-ctx.Done()
	return nil
}

func (NopConsumer) Close() error { return nil }

package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type EventType string

const (
	EventPostLiked       EventType = "post.liked"
	EventPostCommented   EventType = "post.commented"
	EventMessageSent     EventType = "message.sent"
	EventUserFollowed    EventType = "user.followed"
	EventCharityFollowed EventType = "charity.followed"
	EventDonationCreated EventType = "donation.created"
	EventPostReported    EventType = "post.reported"
)

// Event is a domain fact handed to the notification gateway.
type Event struct {
	Type       EventType `json:"type"`
	ActorId    string    `json:"actorId"`
	SubjectId  string    `json:"subjectId"`
	TargetId   string    `json:"targetId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewEvent(eventType EventType, actorId string, subjectId string, targetId string) *Event {
	return &Event{
		Type:       eventType,
		ActorId:    actorId,
		SubjectId:  subjectId,
		TargetId:   targetId,
		OccurredAt: time.Now().UTC(),
	}
}

// EventPublisher is fire and forget: a failed publish never fails the request.
type EventPublisher interface {
	Publish(ctx context.Context, event *Event)
	Close() error
}

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
			Async:        true,
			Completion: func(messages []kafka.Message, err error) {
				if err != nil {
					zap.L().Warn("event delivery failed", zap.Int("count", len(messages)), zap.Error(err))
				}
			},
		},
	}
}

func (kp *KafkaPublisher) Publish(ctx context.Context, event *Event) {
	value, err := json.Marshal(event)
	if err != nil {
		zap.L().Error("could not encode event", zap.String("type", string(event.Type)), zap.Error(err))
		return
	}
	// keyed by subject so events about one post or page stay ordered
	if err := kp.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.SubjectId),
		Value: value,
		Time:  event.OccurredAt,
	}); err != nil {
		zap.L().Warn("could not publish event", zap.String("type", string(event.Type)), zap.Error(err))
	}
}

func (kp *KafkaPublisher) Close() error {
	return kp.writer.Close()
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, *Event) {}

func (NoopPublisher) Close() error { return nil }

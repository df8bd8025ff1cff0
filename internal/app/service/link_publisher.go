package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/sifan077/linkstore/internal/app/model"
)

// LinkEventPublisher announces newly stored links.
type LinkEventPublisher interface {
	PublishCreated(link *model.Link) error
}

// LinkPublisher publishes link events to NATS JetStream.
type LinkPublisher struct {
	js  nats.JetStreamContext
	now func() time.Time
}

// NewLinkPublisher creates a publisher on the given JetStream context.
func NewLinkPublisher(js nats.JetStreamContext) *LinkPublisher {
	return &LinkPublisher{js: js, now: time.Now}
}

// EnsureStream creates the LINKS stream when it does not exist yet.
func (p *LinkPublisher) EnsureStream() error {
	_, err := p.js.StreamInfo(model.LinkStreamName)
	if err == nil {
		return nil
	}
	if !errors.Is(err, nats.ErrStreamNotFound) {
		return fmt.Errorf("lookup stream: %w", err)
	}

	_, err = p.js.AddStream(&nats.StreamConfig{
		Name:     model.LinkStreamName,
		Subjects: []string{model.LinkCreatedSubject},
		MaxBytes: model.LinkStreamMaxBytes,
	})
	if err != nil {
		return fmt.Errorf("create stream: %w", err)
	}
	return nil
}

// PublishCreated publishes a LinkCreatedEvent for link.
func (p *LinkPublisher) PublishCreated(link *model.Link) error {
	data, err := json.Marshal(NewLinkCreatedEvent(link, p.now()))
	if err != nil {
		return err
	}

	_, err = p.js.Publish(model.LinkCreatedSubject, data)
	return err
}

// NewLinkCreatedEvent builds the event payload for link.
func NewLinkCreatedEvent(link *model.Link, at time.Time) model.LinkCreatedEvent {
	return model.LinkCreatedEvent{
		ID:        uuid.New().String(),
		ShortID:   link.ShortID,
		FullURL:   link.FullURL,
		Timestamp: at.UTC(),
	}
}

package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"
)

type Channel string

func (c Channel) String() string {
	return string(c)
}

const (
	LISTING_CHANNEL     Channel = "listing"
	INTERACTION_CHANNEL Channel = "interaction"
)

type MessageType string

const (
	LISTING_CREATED            MessageType = "listing.created"
	LISTING_UPDATED            MessageType = "listing.updated"
	LISTING_DELETED            MessageType = "listing.deleted"
	INTERACTION_CREATED        MessageType = "interaction.created"
	INTERACTION_STATUS_CHANGED MessageType = "interaction.status_changed"
)

type Event struct {
	ID        string         `json:"id"`
	Type      MessageType    `json:"type"`
	Channel   Channel        `json:"channel"`
	Source    string         `json:"source"`
	UserID    uint           `json:"userId,omitempty"`
	Data      map[string]any `json:"data"`
	Timestamp time.Time      `json:"timestamp"`
}

type EventHandler func(event Event) error

// EventBus fans domain events out to local handlers and, when a valkey
// client is present, to other instances over pub/sub. Events received back
// from valkey that this bus published itself are ignored.
type EventBus struct {
	client    valkey.Client
	source    string
	log       logger.Logger
	handlers  map[Channel][]EventHandler
	listening map[Channel]bool
	mutex     sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
}

func New(client valkey.Client) *EventBus {
	ctx, cancel := context.WithCancel(context.Background())

	return &EventBus{
		client:    client,
		source:    uuid.NewString(),
		log:       logger.New("EventBus"),
		handlers:  make(map[Channel][]EventHandler),
		listening: make(map[Channel]bool),
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (eb *EventBus) Publish(channel Channel, event Event) error {
	log := eb.log.Function("Publish")

	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if event.Channel == "" {
		event.Channel = channel
	}
	event.Source = eb.source

	eb.notifyLocalHandlers(channel, event)

	if eb.client == nil {
		return nil
	}

	eventData, err := json.Marshal(event)
	if err != nil {
		return log.Err("failed to marshal event", err, "eventID", event.ID)
	}

	ctx, cancel := context.WithTimeout(eb.ctx, 5*time.Second)
	defer cancel()

	err = eb.client.Do(ctx, eb.client.B().Publish().Channel(channel.String()).Message(string(eventData)).Build()).
		Error()
	if err != nil {
		return log.Err(
			"failed to publish event to valkey",
			err,
			"channel",
			channel,
			"eventID",
			event.ID,
		)
	}

	log.Debug("Event published", "channel", channel, "eventID", event.ID, "eventType", event.Type)

	return nil
}

func (eb *EventBus) Subscribe(channel Channel, handler EventHandler) error {
	log := eb.log.Function("Subscribe")

	eb.mutex.Lock()
	eb.handlers[channel] = append(eb.handlers[channel], handler)
	startListener := eb.client != nil && !eb.listening[channel]
	eb.listening[channel] = true
	eb.mutex.Unlock()

	log.Info("Handler subscribed to channel", "channel", channel)

	if startListener {
		go eb.listenToChannel(channel)
	}

	return nil
}

// SubscribeLocal registers a handler that only sees events this instance
// published. Events relayed from other instances over valkey are skipped.
func (eb *EventBus) SubscribeLocal(channel Channel, handler EventHandler) error {
	return eb.Subscribe(channel, func(event Event) error {
		if event.Source != eb.source {
			return nil
		}
		return handler(event)
	})
}

func (eb *EventBus) notifyLocalHandlers(channel Channel, event Event) {
	log := eb.log.Function("notifyLocalHandlers")

	eb.mutex.RLock()
	handlers := eb.handlers[channel]
	eb.mutex.RUnlock()

	for i, handler := range handlers {
		go func(h EventHandler, handlerIndex int) {
			if err := h(event); err != nil {
				log.Er(
					"handler failed",
					err,
					"channel",
					channel,
					"eventID",
					event.ID,
					"handlerIndex",
					handlerIndex,
				)
			}
		}(handler, i)
	}
}

func (eb *EventBus) listenToChannel(channel Channel) {
	log := eb.log.Function("listenToChannel")

	ctx, cancel := context.WithCancel(eb.ctx)
	defer cancel()

	log.Info("Starting to listen to channel", "channel", channel)

	err := eb.client.Receive(
		ctx,
		eb.client.B().Subscribe().Channel(channel.String()).Build(),
		func(msg valkey.PubSubMessage) {
			var event Event
			if err := json.Unmarshal([]byte(msg.Message), &event); err != nil {
				log.Er("failed to unmarshal event", err, "channel", channel, "message", msg.Message)
				return
			}

			if event.Source == eb.source {
				return
			}

			log.Debug(
				"Received event from valkey",
				"channel",
				channel,
				"eventID",
				event.ID,
				"eventType",
				event.Type,
			)
			eb.notifyLocalHandlers(channel, event)
		},
	)
	if err != nil && ctx.Err() == nil {
		log.Er("failed to listen to channel", err, "channel", channel)
	}
}

func (eb *EventBus) Close() error {
	log := eb.log.Function("Close")

	eb.cancel()

	log.Info("EventBus closed")
	return nil
}

func (eb *EventBus) PublishListing(eventType MessageType, userID uint, tripID uint, isOffer bool) error {
	return eb.Publish(LISTING_CHANNEL, Event{
		Type:   eventType,
		UserID: userID,
		Data: map[string]any{
			"tripId":               tripID,
			"isAccommodationOffer": isOffer,
		},
	})
}

func (eb *EventBus) PublishInteraction(
	eventType MessageType,
	userID uint,
	interactionID uint,
	tripID uint,
	status string,
) error {
	return eb.Publish(INTERACTION_CHANNEL, Event{
		Type:   eventType,
		UserID: userID,
		Data: map[string]any{
			"interactionId": interactionID,
			"tripId":        tripID,
			"status":        status,
		},
	})
}

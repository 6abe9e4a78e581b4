package queue

import (
    "context"
    "encoding/json"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    "github.com/iliyamo/wildlife-sightings/internal/logging"
    "github.com/iliyamo/wildlife-sightings/internal/model"
)

// EventRecorder counts publish outcomes.
type EventRecorder interface {
    RecordEvent(outcome string)
}

// Publisher publishes sighting events to RabbitMQ.  Errors are logged and
// returned so callers can ignore them without interrupting the request.
type Publisher struct {
    URL string
    Rec EventRecorder
}

// NewPublisher returns a Publisher for the broker at url.
func NewPublisher(url string, rec EventRecorder) *Publisher {
    return &Publisher{URL: url, Rec: rec}
}

// NewSightingCreatedEvent builds the event payload for a stored sighting.
func NewSightingCreatedEvent(s model.Sighting, now time.Time) SightingCreatedEvent {
    return SightingCreatedEvent{
        SightingID:        s.ID,
        SpeciesID:         s.IDEspecie,
        UserID:            s.IDUsuario,
        FechaAvistamiento: s.FechaAvistamiento,
        Ubicacion:         s.Ubicacion,
        CreatedAt:         now.UTC().Format(time.RFC3339),
    }
}

// PublishSightingCreated publishes ev to the sighting.created queue.
// Messages are marked as persistent.
func (p *Publisher) PublishSightingCreated(ctx context.Context, ev SightingCreatedEvent) error {
    err := p.publish(ctx, ev)
    if p.Rec != nil {
        if err != nil {
            p.Rec.RecordEvent("failure")
        } else {
            p.Rec.RecordEvent("success")
        }
    }
    return err
}

func (p *Publisher) publish(ctx context.Context, ev SightingCreatedEvent) error {
    log := logging.Ctx(ctx)
    conn, err := amqp.Dial(p.URL)
    if err != nil {
        log.Warn().Err(err).Msg("rabbitmq: dial failed")
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        log.Warn().Err(err).Msg("rabbitmq: channel open failed")
        return err
    }
    defer func() { _ = ch.Close() }()

    // Durable so messages survive broker restarts.
    if _, err := ch.QueueDeclare(
        SightingCreatedQueue, // name
        true,                 // durable
        false,                // autoDelete
        false,                // exclusive
        false,                // noWait
        nil,                  // args
    ); err != nil {
        log.Warn().Err(err).Msg("rabbitmq: queue declare failed")
        return err
    }

    body, err := json.Marshal(ev)
    if err != nil {
        return err
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }
    if err := ch.PublishWithContext(ctx,
        "",                   // default exchange
        SightingCreatedQueue, // routing key = queue name
        false,                // mandatory
        false,                // immediate
        pub,
    ); err != nil {
        log.Warn().Err(err).Msg("rabbitmq: publish failed")
        return err
    }
    return nil
}

// Package queue defines message payloads exchanged over the message broker
// together with the publisher and the background consumer.
package queue

import "github.com/iliyamo/wildlife-sightings/internal/model"

// SightingCreatedQueue is the durable queue sighting events are routed to.
const SightingCreatedQueue = "sighting.created"

// SightingCreatedEvent is published after a sighting row is inserted.
// It carries enough of the row for downstream consumers to log or notify
// without querying the primary database.
type SightingCreatedEvent struct {
    SightingID        int64       `json:"id"`
    SpeciesID         *model.ID   `json:"id_especie"`
    UserID            *model.ID   `json:"id_usuario"`
    FechaAvistamiento *model.Text `json:"fecha_avistamiento"`
    Ubicacion         *model.Text `json:"ubicacion"`
    CreatedAt         string      `json:"created_at"`
}

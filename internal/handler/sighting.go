package handler

import (
    "context"
    "time"

    "github.com/iliyamo/wildlife-sightings/internal/logging"
    "github.com/iliyamo/wildlife-sightings/internal/model"
    "github.com/iliyamo/wildlife-sightings/internal/queue"
)

// SightingEvents publishes sighting lifecycle events.
type SightingEvents interface {
    PublishSightingCreated(ctx context.Context, ev queue.SightingCreatedEvent) error
}

// publishTimeout bounds one background publish.
const publishTimeout = 5 * time.Second

// NewSightingResource builds the sightings resource.  When events is
// non-nil every created sighting is published in the background; a
// failed publish is logged and never affects the response.
func NewSightingResource(store Store[model.Sighting], events SightingEvents) *Resource[model.Sighting] {
    r := NewResource(store, SightingMessages)
    if events == nil {
        return r
    }
    r.OnCreate = func(ctx context.Context, s model.Sighting) {
        ev := queue.NewSightingCreatedEvent(s, time.Now())
        // detach from the request so the publish outlives the response
        bg := context.WithoutCancel(ctx)
        go func() {
            pctx, cancel := context.WithTimeout(bg, publishTimeout)
            defer cancel()
            if err := events.PublishSightingCreated(pctx, ev); err != nil {
                logging.Ctx(pctx).Warn().Err(err).Int64("sighting_id", s.ID).Msg("sighting.created not published")
            }
        }()
    }
    return r
}

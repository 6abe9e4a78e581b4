package handler

import (
    "context"
    "errors"
    "net/http"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/wildlife-sightings/internal/model"
    "github.com/iliyamo/wildlife-sightings/internal/queue"
)

type chanEvents struct {
    got chan queue.SightingCreatedEvent
    err error
}

func (c *chanEvents) PublishSightingCreated(_ context.Context, ev queue.SightingCreatedEvent) error {
    c.got <- ev
    return c.err
}

type idStore struct{ fakeStore[model.Sighting] }

func (s *idStore) Create(_ context.Context, v model.Sighting) (model.Sighting, error) {
    v.ID = 77
    return v, nil
}

func TestSightingResource_PublishesCreated(t *testing.T) {
    events := &chanEvents{got: make(chan queue.SightingCreatedEvent, 1), err: errors.New("broker down")}
    r := NewSightingResource(&idStore{}, events)

    rec := serve(r.Create, http.MethodPost, `{"id_especie":3,"id_usuario":5,"ubicacion":"Galápagos"}`)
    require.Equal(t, http.StatusOK, rec.Code)
    assert.Contains(t, rec.Body.String(), `"id":77`)

    select {
    case ev := <-events.got:
        assert.Equal(t, int64(77), ev.SightingID)
        require.NotNil(t, ev.UserID)
        assert.Equal(t, model.ID("5"), *ev.UserID)
        assert.Equal(t, model.Text("Galápagos"), *ev.Ubicacion)
    case <-time.After(2 * time.Second):
        t.Fatal("event not published")
    }
}

func TestSightingResource_NoPublishOnFailure(t *testing.T) {
    events := &chanEvents{got: make(chan queue.SightingCreatedEvent, 1)}
    store := &fakeStore[model.Sighting]{err: errors.New("boom")}
    r := NewSightingResource(store, events)

    rec := serve(r.Create, http.MethodPost, `{}`)
    assert.Equal(t, http.StatusInternalServerError, rec.Code)
    assert.JSONEq(t, `{"error":"Error al crear avistamiento"}`, rec.Body.String())
    select {
    case <-events.got:
        t.Fatal("unexpected event")
    case <-time.After(50 * time.Millisecond):
    }
}

func TestSightingResource_NilEvents(t *testing.T) {
    r := NewSightingResource(&idStore{}, nil)
    assert.Nil(t, r.OnCreate)
}

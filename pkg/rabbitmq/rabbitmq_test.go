package rabbitmq

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"catalog/internal/models"

	amqp "github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingAck struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (r *recordingAck) Ack(bool) error {
	r.acked = true
	return nil
}

func (r *recordingAck) Nack(_ bool, requeue bool) error {
	r.nacked = true
	r.requeue = requeue
	return nil
}

func TestNewPublishing(t *testing.T) {
	occurred := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	event := models.ProductEvent{
		Type:       models.ProductCreated,
		ProductID:  "p-1",
		Product:    &models.Product{ID: "p-1", Name: "Mug"},
		OccurredAt: occurred,
	}

	msg, err := newPublishing(event)
	require.NoError(t, err)

	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, models.ProductCreated, msg.Type)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, occurred, msg.Timestamp)

	var decoded models.ProductEvent
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, "p-1", decoded.ProductID)
	assert.Equal(t, "Mug", decoded.Product.Name)
}

func TestNewPublishing_DeleteHasNoProduct(t *testing.T) {
	msg, err := newPublishing(models.ProductEvent{Type: models.ProductDeleted, ProductID: "p-2"})
	require.NoError(t, err)

	assert.NotContains(t, string(msg.Body), `"product":`)
	assert.False(t, msg.Timestamp.IsZero())
}

func TestSettle(t *testing.T) {
	body, err := json.Marshal(models.ProductEvent{Type: models.ProductUpdated, ProductID: "p-3"})
	require.NoError(t, err)

	t.Run("acks handled events", func(t *testing.T) {
		ack := &recordingAck{}
		var got models.ProductEvent
		settle(body, ack, func(e models.ProductEvent) error {
			got = e
			return nil
		}, zap.NewNop())

		assert.True(t, ack.acked)
		assert.False(t, ack.nacked)
		assert.Equal(t, "p-3", got.ProductID)
	})

	t.Run("requeues on handler failure", func(t *testing.T) {
		ack := &recordingAck{}
		settle(body, ack, func(models.ProductEvent) error { return errors.New("busy") }, zap.NewNop())

		assert.True(t, ack.nacked)
		assert.True(t, ack.requeue)
	})

	t.Run("drops undecodable messages", func(t *testing.T) {
		ack := &recordingAck{}
		called := false
		settle([]byte("{not json"), ack, func(models.ProductEvent) error {
			called = true
			return nil
		}, zap.NewNop())

		assert.False(t, called)
		assert.True(t, ack.nacked)
		assert.False(t, ack.requeue)
	})
}

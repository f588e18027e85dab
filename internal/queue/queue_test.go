package queue

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"immoxperts/server/internal/database"
)

func testBatch(addresses ...string) []*database.AddressRecord {
	batch := make([]*database.AddressRecord, len(addresses))
	for i, address := range addresses {
		batch[i] = &database.AddressRecord{AdresseComplete: address}
	}
	return batch
}

func TestQueueDeliversBatchesToSubscriber(t *testing.T) {
	q := NewAddressQueue(4, logrus.New())
	defer q.Close()

	received := make(chan []*database.AddressRecord, 4)
	q.Subscribe(func(batch []*database.AddressRecord) error {
		received <- batch
		return nil
	})
	q.Start()

	require.NoError(t, q.Push(testBatch("10 Rue de Rivoli", "12 Rue de Rivoli")))

	select {
	case batch := <-received:
		assert.Len(t, batch, 2)
	case <-time.After(2 * time.Second):
		t.Fatal("batch was never delivered")
	}
}

func TestQueuePushFullReturnsError(t *testing.T) {
	q := NewAddressQueue(1, logrus.New())
	defer q.Close()

	require.NoError(t, q.Push(testBatch("a")))
	assert.ErrorIs(t, q.Push(testBatch("b")), ErrQueueFull)
	assert.Equal(t, 1, q.Len())
}

func TestQueuePushAfterCloseReturnsError(t *testing.T) {
	q := NewAddressQueue(1, logrus.New())
	require.NoError(t, q.Close())

	assert.True(t, q.IsClosed())
	assert.ErrorIs(t, q.Push(testBatch("a")), ErrQueueClosed)
}

func TestQueueCloseIsIdempotent(t *testing.T) {
	q := NewAddressQueue(1, logrus.New())
	require.NoError(t, q.Close())
	assert.NoError(t, q.Close())
}

package processor

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"immoxperts/server/internal/database"
	"immoxperts/server/internal/queue"
)

func TestProcessorDrainsQueueIntoIndex(t *testing.T) {
	db, err := database.NewDatabase(":memory:", logrus.New())
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	defer db.Close()

	q := queue.NewAddressQueue(4, logrus.New())
	defer q.Close()

	p := NewBatchProcessor(db, q, Options{MaxRetries: 1, RetryDelay: time.Millisecond}, logrus.New())
	p.Start()
	q.Start()

	require.NoError(t, q.Push([]*database.AddressRecord{
		{AdresseComplete: "10 Rue de Rivoli", Normalized: "10 rue de rivoli"},
		{AdresseComplete: "12 Rue de Rivoli", Normalized: "12 rue de rivoli"},
	}))

	require.Eventually(t, func() bool {
		records, err := db.SearchAddresses("rivoli", 10)
		return err == nil && len(records) == 2
	}, 2*time.Second, 10*time.Millisecond)

	p.Stop()
}

func TestProcessorGivesUpAfterRetries(t *testing.T) {
	db, err := database.NewDatabase(":memory:", logrus.New())
	require.NoError(t, err)
	// No migration: every upsert fails on the missing table.
	defer db.Close()

	q := queue.NewAddressQueue(1, logrus.New())
	defer q.Close()

	p := NewBatchProcessor(db, q, Options{MaxRetries: 2, RetryDelay: time.Millisecond}, logrus.New())
	p.Start()

	err = p.processBatch([]*database.AddressRecord{{AdresseComplete: "nowhere"}})
	assert.Error(t, err)
}

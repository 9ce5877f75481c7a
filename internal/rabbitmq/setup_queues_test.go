package rabbitmq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetNotificationQueues(t *testing.T) {
	queues := GetNotificationQueues()

	require.NotEmpty(t, queues, "queues list should not be empty")

	first := queues[0]
	assert.Equal(t, SubscriptionActivatedQueue, first.QueueName)
	assert.Equal(t, SubscriptionActivatedRoutingKey, first.RoutingKey)

	// Имена очередей не должны повторяться
	seen := map[string]bool{}
	for _, q := range queues {
		assert.Falsef(t, seen[q.QueueName], "duplicate queue name: %s", q.QueueName)
		seen[q.QueueName] = true
	}
}

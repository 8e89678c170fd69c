package handler_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bookery/library-service/internal/handler"
	"github.com/bookery/library-service/pkg/kafka"
)

// Setup and Cleanup run once per consumer-group session, and a rebalance
// starts a new session on the same handler instance. Repeated cycles must not
// panic or fail.
func TestConsumer_SessionRestart(t *testing.T) {
	t.Parallel()
	c := handler.NewConsumer(func(context.Context, kafka.EventLoan) error { return nil }, zap.NewNop())

	for i := 0; i < 3; i++ {
		require.NoError(t, c.Setup(nil))
		require.NoError(t, c.Cleanup(nil))
	}
}

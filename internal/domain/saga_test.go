package domain_test

import (
	"testing"

	"dukastore/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSagaHappyPath(t *testing.T) {
	s := domain.NewSaga()

	require.NoError(t, s.Transition(domain.SagaInitiating))
	require.NoError(t, s.Transition(domain.SagaAwaitingCustomer))
	require.NoError(t, s.Transition(domain.SagaCompleted))
	assert.True(t, s.Terminal())
}

func TestSagaFailurePaths(t *testing.T) {
	t.Run("initiation failure", func(t *testing.T) {
		s := domain.NewSaga()
		require.NoError(t, s.Transition(domain.SagaInitiating))
		require.NoError(t, s.Transition(domain.SagaFailed))
		assert.True(t, s.Terminal())
	})

	t.Run("payment failure while awaiting customer", func(t *testing.T) {
		s := domain.NewSaga()
		require.NoError(t, s.Transition(domain.SagaInitiating))
		require.NoError(t, s.Transition(domain.SagaAwaitingCustomer))
		require.NoError(t, s.Transition(domain.SagaFailed))
	})

	t.Run("failed offers retry back to idle", func(t *testing.T) {
		s := domain.NewSaga()
		require.NoError(t, s.Transition(domain.SagaInitiating))
		require.NoError(t, s.Transition(domain.SagaFailed))
		require.NoError(t, s.Transition(domain.SagaIdle))
		require.NoError(t, s.Transition(domain.SagaInitiating))
	})
}

func TestSagaInvalidTransitions(t *testing.T) {
	t.Run("idle cannot complete directly", func(t *testing.T) {
		s := domain.NewSaga()
		err := s.Transition(domain.SagaCompleted)
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeInvalidTransition))
		assert.Equal(t, domain.SagaIdle, s.State)
	})

	t.Run("completed is terminal", func(t *testing.T) {
		s := domain.NewSaga()
		require.NoError(t, s.Transition(domain.SagaInitiating))
		require.NoError(t, s.Transition(domain.SagaAwaitingCustomer))
		require.NoError(t, s.Transition(domain.SagaCompleted))

		err := s.Transition(domain.SagaIdle)
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeInvalidTransition))
	})

	t.Run("initiating cannot complete without the customer step", func(t *testing.T) {
		s := domain.NewSaga()
		require.NoError(t, s.Transition(domain.SagaInitiating))
		err := s.Transition(domain.SagaCompleted)
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeInvalidTransition))
	})
}

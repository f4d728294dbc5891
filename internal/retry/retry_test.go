package retry

import (
	"context"
	"errors"
	"testing"

	"github.com/forceboard-dev/forceboard/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestDo_Succeeds(t *testing.T) {
	calls := 0

	err := Do(context.Background(), func() error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_RetriesTransientUpToBound(t *testing.T) {
	calls := 0

	err := Do(context.Background(), func() error {
		calls++
		return context.DeadlineExceeded
	})

	require.Error(t, err)
	assert.Equal(t, maxAttempts, calls)
	assert.Equal(t, apperr.KindTransient, apperr.KindOf(err))
}

func TestDo_TransientThenSuccess(t *testing.T) {
	calls := 0

	err := Do(context.Background(), func() error {
		calls++
		if calls == 1 {
			return context.DeadlineExceeded
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestDo_TerminalFailuresAreNotRetried(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind apperr.Kind
	}{
		{"constraint violation", gorm.ErrCheckConstraintViolated, apperr.KindValidation},
		{"duplicate key", gorm.ErrDuplicatedKey, apperr.KindConflict},
		{"unauthorized", apperr.New(apperr.KindUnauthorized, "Please sign in again"), apperr.KindUnauthorized},
		{"unknown", errors.New("boom"), apperr.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0

			err := Do(context.Background(), func() error {
				calls++
				return tt.err
			})

			require.Error(t, err)
			assert.Equal(t, 1, calls)
			assert.Equal(t, tt.kind, apperr.KindOf(err))
		})
	}
}

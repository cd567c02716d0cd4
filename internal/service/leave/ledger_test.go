package leave_test

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger(t *testing.T) {
	ctx := context.Background()

	t.Run("available is total minus used", func(t *testing.T) {
		f := newFixture(t)

		available, err := f.ledger.Available(ctx, "c1", "e1")
		require.NoError(t, err)
		assert.Equal(t, 2, available)
	})

	t.Run("admins are rejected by every operation", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.ledger.Available(ctx, "c1", "a1")
		assert.ErrorIs(t, err, leave.ErrRoleNotEligible)

		err = f.ledger.ReserveOnApproval(ctx, "c1", "a1", 1)
		assert.ErrorIs(t, err, leave.ErrRoleNotEligible)

		err = f.ledger.AdjustTotal(ctx, "c1", "a1", 10)
		assert.ErrorIs(t, err, leave.ErrRoleNotEligible)
		assert.Empty(t, f.sink.byKind(notification.TypeVacationUpdate))
	})

	t.Run("reserve fails when days exceed balance", func(t *testing.T) {
		f := newFixture(t)

		err := f.ledger.ReserveOnApproval(ctx, "c1", "e1", 3)

		var insufficient *leave.InsufficientBalanceError
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, 2, insufficient.Available)
		assert.Equal(t, 3, insufficient.Requested)
		assert.Equal(t, 8, f.store.user("e1").VacationDaysUsed)
	})

	t.Run("reserve up to the full balance", func(t *testing.T) {
		f := newFixture(t)

		require.NoError(t, f.ledger.ReserveOnApproval(ctx, "c1", "e1", 2))
		assert.Equal(t, 10, f.store.user("e1").VacationDaysUsed)
	})

	t.Run("adjust total may drop below used", func(t *testing.T) {
		f := newFixture(t)

		require.NoError(t, f.ledger.AdjustTotal(ctx, "c1", "e1", 5))

		available, err := f.ledger.Available(ctx, "c1", "e1")
		require.NoError(t, err)
		assert.Equal(t, -3, available)

		sent := f.sink.byKind(notification.TypeVacationUpdate)
		require.Len(t, sent, 1)
		assert.Equal(t, []string{"e1"}, sent[0].Recipients)
	})

	t.Run("users of other companies are invisible", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.ledger.Available(ctx, "c2", "e1")
		assert.Error(t, err)
	})
}

package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jaimelunalarcon/manglar-app/models"
)

func TestDeadline(t *testing.T) {
	weekStart := time.Date(2025, 10, 6, 0, 0, 0, 0, time.Local) // 周一

	t.Run("周一领取的期限是周二12:01", func(t *testing.T) {
		deadline := Deadline(weekStart, models.WeekdayMonday)
		require.Equal(t, time.Date(2025, 10, 7, 12, 1, 0, 0, time.Local), deadline)
	})

	t.Run("周日领取的逻辑日是周日", func(t *testing.T) {
		require.Equal(t,
			time.Date(2025, 10, 12, 0, 0, 0, 0, time.Local),
			LogicalDay(weekStart, models.WeekdaySunday))
		require.Equal(t,
			time.Date(2025, 10, 13, 12, 1, 0, 0, time.Local),
			Deadline(weekStart, models.WeekdaySunday))
	})
}

func TestHoursRemaining(t *testing.T) {
	weekStart := time.Date(2025, 10, 6, 0, 0, 0, 0, time.Local)
	deadline := Deadline(weekStart, models.WeekdayMonday) // 10-07 12:01

	t.Run("超时后为负", func(t *testing.T) {
		now := time.Date(2025, 10, 8, 10, 0, 0, 0, time.Local)
		require.Less(t, HoursRemaining(deadline, now), 0)
		require.Equal(t, -22, HoursRemaining(deadline, now))
	})

	t.Run("期限前向下取整", func(t *testing.T) {
		now := time.Date(2025, 10, 6, 12, 1, 0, 0, time.Local)
		require.Equal(t, 24, HoursRemaining(deadline, now))

		now = time.Date(2025, 10, 6, 12, 31, 0, 0, time.Local)
		require.Equal(t, 23, HoursRemaining(deadline, now))
	})
}

func TestEffectiveState(t *testing.T) {
	t.Run("已领取且超时显示为未完成", func(t *testing.T) {
		require.Equal(t, models.StateNotFulfilled, EffectiveState(models.StateTaken, -22))
		require.Equal(t, models.StateNotFulfilled, EffectiveState(models.StateTaken, 0))
	})

	t.Run("期限内保持落库状态", func(t *testing.T) {
		require.Equal(t, models.StateTaken, EffectiveState(models.StateTaken, 1))
	})

	t.Run("其他状态不受期限影响", func(t *testing.T) {
		require.Equal(t, models.StatePendingApproval, EffectiveState(models.StatePendingApproval, -5))
		require.Equal(t, models.StateApproved, EffectiveState(models.StateApproved, -5))
		require.Equal(t, models.StateRejected, EffectiveState(models.StateRejected, -5))
	})
}

package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jaimelunalarcon/manglar-app/models"
)

func TestClaim(t *testing.T) {
	t.Run("容量用完后即使格子空着也不能领取", func(t *testing.T) {
		f := newFixture(t)
		patio := f.createTask(t, "Patio", 10, 2)

		_, err := f.scheduler.Claim(patio.ID, models.WeekdayMonday, "alice", "Alice")
		require.NoError(t, err)
		_, err = f.scheduler.Claim(patio.ID, models.WeekdayTuesday, "bob", "Bob")
		require.NoError(t, err)

		_, err = f.scheduler.Claim(patio.ID, models.WeekdayWednesday, "carol", "Carol")
		require.ErrorIs(t, err, ErrCapacityExceeded)

		var count int64
		require.NoError(t, f.db.Model(&models.Assignment{}).
			Where("task_id = ?", patio.ID).Count(&count).Error)
		require.EqualValues(t, 2, count)
	})

	t.Run("同一格子不能领取两次", func(t *testing.T) {
		f := newFixture(t)
		task := f.createTask(t, "Cocina", 5, 3)

		_, err := f.scheduler.Claim(task.ID, models.WeekdayMonday, "alice", "Alice")
		require.NoError(t, err)

		_, err = f.scheduler.Claim(task.ID, models.WeekdayMonday, "bob", "Bob")
		require.ErrorIs(t, err, ErrCellOccupied)
	})

	t.Run("领取成功后状态为TAKEN并带快照", func(t *testing.T) {
		f := newFixture(t)
		task := f.createTask(t, "Baño", 8, 1)

		a, err := f.scheduler.Claim(task.ID, models.WeekdayFriday, "alice", "Alice")
		require.NoError(t, err)
		require.Equal(t, models.StateTaken, a.State)
		require.Equal(t, task.Name, a.TaskName)
		require.Equal(t, task.PointValue, a.PointValue)
		require.Equal(t, f.weeks.Current().ID, a.WeekID)
		require.Equal(t, testNow, a.ClaimedAt)
	})

	t.Run("任务不存在", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.scheduler.Claim("no-such-task", models.WeekdayMonday, "alice", "Alice")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("非法的周几", func(t *testing.T) {
		f := newFixture(t)
		task := f.createTask(t, "Cocina", 5, 1)

		_, err := f.scheduler.Claim(task.ID, models.Weekday("FUNDAY"), "alice", "Alice")
		require.ErrorIs(t, err, ErrValidation)
	})
}

func TestClaimConcurrency(t *testing.T) {
	t.Run("最后一个名额只有一个人能抢到", func(t *testing.T) {
		f := newFixture(t)
		task := f.createTask(t, "Patio", 10, 1)

		errs := make([]error, 2)
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, errs[0] = f.scheduler.Claim(task.ID, models.WeekdayMonday, "alice", "Alice")
		}()
		go func() {
			defer wg.Done()
			_, errs[1] = f.scheduler.Claim(task.ID, models.WeekdayTuesday, "bob", "Bob")
		}()
		wg.Wait()

		var successes int
		for _, err := range errs {
			if err == nil {
				successes++
			} else {
				require.ErrorIs(t, err, ErrCapacityExceeded)
			}
		}
		require.Equal(t, 1, successes)

		var count int64
		require.NoError(t, f.db.Model(&models.Assignment{}).
			Where("task_id = ?", task.ID).Count(&count).Error)
		require.EqualValues(t, 1, count)
	})

	t.Run("同一格子并发领取只有一个赢家", func(t *testing.T) {
		f := newFixture(t)
		task := f.createTask(t, "Cocina", 5, 7)

		errs := make([]error, 2)
		var wg sync.WaitGroup
		wg.Add(2)
		for i, actor := range []string{"alice", "bob"} {
			go func(i int, actor string) {
				defer wg.Done()
				_, errs[i] = f.scheduler.Claim(task.ID, models.WeekdayMonday, actor, actor)
			}(i, actor)
		}
		wg.Wait()

		var successes int
		for _, err := range errs {
			if err == nil {
				successes++
			} else {
				require.ErrorIs(t, err, ErrCellOccupied)
			}
		}
		require.Equal(t, 1, successes)

		var count int64
		require.NoError(t, f.db.Model(&models.Assignment{}).
			Where("task_id = ? AND weekday = ?", task.ID, models.WeekdayMonday).
			Count(&count).Error)
		require.EqualValues(t, 1, count)
	})
}

func TestRelease(t *testing.T) {
	t.Run("释放后格子和名额都回收", func(t *testing.T) {
		f := newFixture(t)
		task := f.createTask(t, "Patio", 10, 1)

		a, err := f.scheduler.Claim(task.ID, models.WeekdayMonday, "alice", "Alice")
		require.NoError(t, err)

		require.NoError(t, f.scheduler.Release(a.ID, "alice", false))

		// 同一格子可以再次领取
		_, err = f.scheduler.Claim(task.ID, models.WeekdayMonday, "bob", "Bob")
		require.NoError(t, err)
	})

	t.Run("他人不能释放我的领取", func(t *testing.T) {
		f := newFixture(t)
		task := f.createTask(t, "Patio", 10, 2)

		a, err := f.scheduler.Claim(task.ID, models.WeekdayMonday, "alice", "Alice")
		require.NoError(t, err)

		require.ErrorIs(t, f.scheduler.Release(a.ID, "bob", false), ErrPermissionDenied)
	})

	t.Run("管理员可以释放任何人的领取", func(t *testing.T) {
		f := newFixture(t)
		task := f.createTask(t, "Patio", 10, 2)

		a, err := f.scheduler.Claim(task.ID, models.WeekdayMonday, "alice", "Alice")
		require.NoError(t, err)

		require.NoError(t, f.scheduler.Release(a.ID, "admin-user", true))
	})

	t.Run("非TAKEN状态不能释放", func(t *testing.T) {
		f := newFixture(t)
		task := f.createTask(t, "Patio", 10, 2)

		a, err := f.scheduler.Claim(task.ID, models.WeekdayMonday, "alice", "Alice")
		require.NoError(t, err)
		_, err = f.approvals.SubmitEvidence(a.ID, "photo-1", "alice")
		require.NoError(t, err)

		require.ErrorIs(t, f.scheduler.Release(a.ID, "alice", false), ErrInvalidTransition)
	})

	t.Run("历史周的领取不能释放，管理员也不行", func(t *testing.T) {
		f := newFixture(t)
		task := f.createTask(t, "Patio", 10, 2)

		old := f.insertAssignment(t, models.Assignment{
			TaskID:     task.ID,
			TaskName:   task.Name,
			WeekID:     "2020-W01",
			Weekday:    models.WeekdayMonday,
			ClaimantID: "alice",
		})

		require.ErrorIs(t, f.scheduler.Release(old.ID, "alice", false), ErrStaleWeek)
		require.ErrorIs(t, f.scheduler.Release(old.ID, "admin-user", true), ErrStaleWeek)
	})

	t.Run("记录不存在", func(t *testing.T) {
		f := newFixture(t)
		require.ErrorIs(t, f.scheduler.Release("no-such-id", "alice", false), ErrNotFound)
	})
}

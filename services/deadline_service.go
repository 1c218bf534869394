package services

import (
	"math"
	"time"

	"github.com/jaimelunalarcon/manglar-app/models"
)

// 期限从逻辑日的 00:01 起算，窗口36小时
const (
	deadlineStartOffset = time.Minute
	deadlineWindow      = 36 * time.Hour
)

// LogicalDay 领取对应的日历日：周一零点加上周几的偏移
func LogicalDay(weekStart time.Time, day models.Weekday) time.Time {
	return weekStart.AddDate(0, 0, day.Index())
}

// Deadline 完成期限：逻辑日 00:01 + 36小时
func Deadline(weekStart time.Time, day models.Weekday) time.Time {
	return LogicalDay(weekStart, day).Add(deadlineStartOffset).Add(deadlineWindow)
}

// HoursRemaining 距期限的整小时数，已超时为负
func HoursRemaining(deadline, now time.Time) int {
	return int(math.Floor(deadline.Sub(now).Hours()))
}

// EffectiveState 读取时的展示状态：已领取且超时则显示为未完成，
// 落库状态不变，超时后补交的凭证仍可由管理员人工裁定
func EffectiveState(state models.State, hoursRemaining int) models.State {
	if state == models.StateTaken && hoursRemaining <= 0 {
		return models.StateNotFulfilled
	}
	return state
}

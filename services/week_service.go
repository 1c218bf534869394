package services

import (
	"fmt"
	"time"

	"github.com/jaimelunalarcon/manglar-app/models"
)

// Week 一个周一到周日的周窗口
type Week struct {
	ID    string    // 形如 2025-W41，由ISO年份和周数导出
	Start time.Time // 周一 00:00:00（本地时区）
	End   time.Time // 周日 23:59:59
}

// WeekService 把任意时间点归一到周窗口，Now 可注入便于测试
type WeekService struct {
	Now func() time.Time
}

func NewWeekService() *WeekService {
	return &WeekService{Now: time.Now}
}

// Resolve 计算时间点所在的周窗口，同一周内任意时刻得到相同的周ID
func (s *WeekService) Resolve(t time.Time) Week {
	isoYear, isoWeek := t.ISOWeek()

	// 回退到本周周一的零点
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7 // 周一=0
	start := day.AddDate(0, 0, -offset)
	end := start.AddDate(0, 0, 6).Add(23*time.Hour + 59*time.Minute + 59*time.Second)

	return Week{
		ID:    fmt.Sprintf("%04d-W%02d", isoYear, isoWeek),
		Start: start,
		End:   end,
	}
}

// Current 返回当前周
func (s *WeekService) Current() Week {
	return s.Resolve(s.Now())
}

// IsCurrent 判断周ID是否为当前周
func (s *WeekService) IsCurrent(weekID string) bool {
	return weekID == s.Current().ID
}

// StartOf 由周ID反推周一零点，周ID不合法时返回 ErrValidation
func (s *WeekService) StartOf(weekID string) (time.Time, error) {
	var isoYear, isoWeek int
	if _, err := fmt.Sscanf(weekID, "%d-W%d", &isoYear, &isoWeek); err != nil {
		return time.Time{}, fmt.Errorf("%w: 周ID格式错误 %q", ErrValidation, weekID)
	}
	if isoWeek < 1 || isoWeek > 53 {
		return time.Time{}, fmt.Errorf("%w: 周ID格式错误 %q", ErrValidation, weekID)
	}

	// ISO规则：1月4日总是落在第1周
	jan4 := time.Date(isoYear, 1, 4, 0, 0, 0, 0, time.Local)
	offset := (int(jan4.Weekday()) + 6) % 7
	week1Monday := jan4.AddDate(0, 0, -offset)
	return week1Monday.AddDate(0, 0, (isoWeek-1)*7), nil
}

// Recent 返回最近 n 周的窗口，当前周在前，供前端的周选择器使用
func (s *WeekService) Recent(n int) []models.WeekResponse {
	now := s.Now()
	weeks := make([]models.WeekResponse, 0, n)
	for i := 0; i < n; i++ {
		w := s.Resolve(now.AddDate(0, 0, -7*i))
		weeks = append(weeks, models.WeekResponse{
			ID:        w.ID,
			Start:     w.Start,
			End:       w.End,
			IsCurrent: i == 0,
		})
	}
	return weeks
}

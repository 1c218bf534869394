package services

import (
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/jaimelunalarcon/manglar-app/models"
)

// QueryService 看板读视图：逐周的领取列表和待审核队列。
// 期限相关字段全部在读取时由当前时间派生，不依赖后台定时任务。
type QueryService struct {
	db    *gorm.DB
	weeks *WeekService
	cache *WeekCache
}

func NewQueryService(db *gorm.DB, weeks *WeekService, cache *WeekCache) *QueryService {
	return &QueryService{
		db:    db,
		weeks: weeks,
		cache: cache,
	}
}

// ListWeek 返回某周全部领取记录，按任务ID、周几排序
func (s *QueryService) ListWeek(weekID string) ([]models.AssignmentResponse, error) {
	weekStart, err := s.weeks.StartOf(weekID)
	if err != nil {
		return nil, err
	}

	rows, ok := s.cache.Get(weekID)
	if !ok {
		if err := s.db.Where("week_id = ?", weekID).Find(&rows).Error; err != nil {
			return nil, err
		}
		s.cache.Set(weekID, rows)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TaskID != rows[j].TaskID {
			return rows[i].TaskID < rows[j].TaskID
		}
		return rows[i].Weekday.Index() < rows[j].Weekday.Index()
	})

	return s.toResponses(rows, weekStart), nil
}

// ListForUser 过滤出某用户在某周的领取记录
func (s *QueryService) ListForUser(userID, weekID string) ([]models.AssignmentResponse, error) {
	all, err := s.ListWeek(weekID)
	if err != nil {
		return nil, err
	}

	mine := make([]models.AssignmentResponse, 0, len(all))
	for _, a := range all {
		if a.ClaimantID == userID {
			mine = append(mine, a)
		}
	}
	return mine, nil
}

// ListPendingApproval 当前周的待审核队列，先提交的先审
func (s *QueryService) ListPendingApproval() ([]models.AssignmentResponse, error) {
	week := s.weeks.Current()

	var rows []models.Assignment
	if err := s.db.
		Where("week_id = ? AND state = ?", week.ID, models.StatePendingApproval).
		Order("claimed_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	return s.toResponses(rows, week.Start), nil
}

// toResponses 附加期限派生字段
func (s *QueryService) toResponses(rows []models.Assignment, weekStart time.Time) []models.AssignmentResponse {
	now := s.weeks.Now()
	out := make([]models.AssignmentResponse, 0, len(rows))
	for _, a := range rows {
		deadline := Deadline(weekStart, a.Weekday)
		hours := HoursRemaining(deadline, now)
		out = append(out, models.AssignmentResponse{
			ID:             a.ID,
			TaskID:         a.TaskID,
			TaskName:       a.TaskName,
			PointValue:     a.PointValue,
			WeekID:         a.WeekID,
			Weekday:        a.Weekday,
			ClaimantID:     a.ClaimantID,
			ClaimantName:   a.ClaimantName,
			State:          a.State,
			EvidenceRef:    a.EvidenceRef,
			ReviewComment:  a.ReviewComment,
			ClaimedAt:      a.ClaimedAt,
			Deadline:       deadline,
			HoursRemaining: hours,
			EffectiveState: EffectiveState(a.State, hours),
		})
	}
	return out
}

package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jaimelunalarcon/manglar-app/config"
	"github.com/jaimelunalarcon/manglar-app/models"
	"github.com/jaimelunalarcon/manglar-app/utils"
)

// SchedulerService 负责每周任务的领取与释放，
// 容量校验和格子互斥在同一个事务里完成
type SchedulerService struct {
	db    *gorm.DB
	weeks *WeekService
	cache *WeekCache
}

func NewSchedulerService(db *gorm.DB, weeks *WeekService, cache *WeekCache) *SchedulerService {
	return &SchedulerService{
		db:    db,
		weeks: weeks,
		cache: cache,
	}
}

// Claim 在当前周领取任务的某一天。
// 事务内先锁任务行再数容量，保证最后一个名额不会被并发领取两次；
// 格子被占时返回 ErrCellOccupied，名额用完时返回 ErrCapacityExceeded。
func (s *SchedulerService) Claim(taskID string, day models.Weekday, actorID, actorName string) (*models.Assignment, error) {
	if taskID == "" || actorID == "" {
		return nil, fmt.Errorf("%w: 缺少任务或用户标识", ErrValidation)
	}
	if !day.Valid() {
		return nil, fmt.Errorf("%w: 非法的周几 %q", ErrValidation, day)
	}

	week := s.weeks.Current()

	var created models.Assignment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// 锁住任务行，容量统计期间其他领取需要等待
		var task models.Task
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", taskID).First(&task).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var count int64
		if err := tx.Model(&models.Assignment{}).
			Where("task_id = ? AND week_id = ?", taskID, week.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count >= int64(task.WeeklyCapacity) {
			return ErrCapacityExceeded
		}

		var occupied models.Assignment
		err := tx.Where("task_id = ? AND week_id = ? AND weekday = ?", taskID, week.ID, day).
			First(&occupied).Error
		if err == nil {
			return ErrCellOccupied
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		created = models.Assignment{
			ID:           utils.GenerateID(),
			TaskID:       task.ID,
			TaskName:     task.Name,
			PointValue:   task.PointValue,
			WeekID:       week.ID,
			Weekday:      day,
			ClaimantID:   actorID,
			ClaimantName: actorName,
			State:        models.StateTaken,
			ClaimedAt:    s.weeks.Now(),
		}
		if err := tx.Create(&created).Error; err != nil {
			// 唯一索引兜底：极端并发下插入撞上已占的格子
			if isDuplicateKeyErr(err) {
				return ErrCellOccupied
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(week.ID)
	config.Logger.Infow("任务已领取",
		"assignmentID", created.ID,
		"taskID", taskID,
		"weekID", week.ID,
		"weekday", day,
		"claimantID", actorID,
	)
	return &created, nil
}

// Release 释放一次领取，仅限当前周、TAKEN 状态，且只能由领取人或管理员操作
func (s *SchedulerService) Release(assignmentID, actorID string, actorIsAdmin bool) error {
	var weekID string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var a models.Assignment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", assignmentID).First(&a).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if !s.weeks.IsCurrent(a.WeekID) {
			return ErrStaleWeek
		}
		if a.ClaimantID != actorID && !actorIsAdmin {
			return ErrPermissionDenied
		}
		if a.State != models.StateTaken {
			return ErrInvalidTransition
		}

		weekID = a.WeekID
		return tx.Delete(&a).Error
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate(weekID)
	config.Logger.Infow("领取已释放",
		"assignmentID", assignmentID,
		"actorID", actorID,
	)
	return nil
}

// isDuplicateKeyErr 识别各方言的唯一约束冲突
func isDuplicateKeyErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

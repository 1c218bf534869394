package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jaimelunalarcon/manglar-app/config"
	"github.com/jaimelunalarcon/manglar-app/models"
)

// ApprovalService 审批状态机：
// TAKEN → PENDING_APPROVAL → {APPROVED, REJECTED}，REJECTED 可重新提交，
// APPROVED 为终态。所有变更只对当前周生效。
type ApprovalService struct {
	db    *gorm.DB
	weeks *WeekService
	cache *WeekCache
}

func NewApprovalService(db *gorm.DB, weeks *WeekService, cache *WeekCache) *ApprovalService {
	return &ApprovalService{
		db:    db,
		weeks: weeks,
		cache: cache,
	}
}

// SubmitEvidence 领取人提交完成凭证，从 TAKEN 或 REJECTED 进入待审核，
// 重新提交时清掉上一次的驳回意见
func (s *ApprovalService) SubmitEvidence(assignmentID, evidenceRef, actorID string) (*models.Assignment, error) {
	if strings.TrimSpace(evidenceRef) == "" {
		return nil, fmt.Errorf("%w: 凭证引用不能为空", ErrValidation)
	}

	return s.transition(assignmentID, func(a *models.Assignment) error {
		if a.ClaimantID != actorID {
			return ErrPermissionDenied
		}
		if a.State != models.StateTaken && a.State != models.StateRejected {
			return ErrInvalidTransition
		}

		a.State = models.StatePendingApproval
		a.EvidenceRef = evidenceRef
		a.ReviewComment = ""
		return nil
	})
}

// Approve 审核通过，仅限待审核状态，且操作者必须是管理员
func (s *ApprovalService) Approve(assignmentID, reviewerID string, reviewerIsAdmin bool) (*models.Assignment, error) {
	return s.transition(assignmentID, func(a *models.Assignment) error {
		if !reviewerIsAdmin {
			return ErrPermissionDenied
		}
		if a.State != models.StatePendingApproval {
			return ErrInvalidTransition
		}

		a.State = models.StateApproved
		return nil
	})
}

// Reject 审核驳回并附带非空意见，领取人可修改后重新提交
func (s *ApprovalService) Reject(assignmentID, reviewerID string, reviewerIsAdmin bool, comment string) (*models.Assignment, error) {
	if strings.TrimSpace(comment) == "" {
		return nil, fmt.Errorf("%w: 驳回意见不能为空", ErrValidation)
	}

	return s.transition(assignmentID, func(a *models.Assignment) error {
		if !reviewerIsAdmin {
			return ErrPermissionDenied
		}
		if a.State != models.StatePendingApproval {
			return ErrInvalidTransition
		}

		a.State = models.StateRejected
		a.ReviewComment = comment
		return nil
	})
}

// transition 在一个事务里完成 加锁读取 → 校验 → 改状态，
// 历史周一律拒绝，校验失败时记录不会被部分修改
func (s *ApprovalService) transition(assignmentID string, apply func(*models.Assignment) error) (*models.Assignment, error) {
	var updated models.Assignment
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

		if err := apply(&a); err != nil {
			return err
		}

		if err := tx.Save(&a).Error; err != nil {
			return err
		}
		updated = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(updated.WeekID)
	config.Logger.Infow("审批状态已变更",
		"assignmentID", updated.ID,
		"state", updated.State,
	)
	return &updated, nil
}

package models

import (
	"time"
)

// State 任务领取的审批状态
type State string

const (
	StateTaken           State = "TAKEN"            // 已领取，等待提交凭证
	StatePendingApproval State = "PENDING_APPROVAL" // 已提交凭证，等待审核
	StateApproved        State = "APPROVED"         // 审核通过，终态
	StateRejected        State = "REJECTED"         // 审核驳回，可重新提交
	StateNotFulfilled    State = "NOT_FULFILLED"    // 仅在读取时派生，不落库
)

// Weekday 一周中的逻辑日，周一为起点
type Weekday string

const (
	WeekdayMonday    Weekday = "MONDAY"
	WeekdayTuesday   Weekday = "TUESDAY"
	WeekdayWednesday Weekday = "WEDNESDAY"
	WeekdayThursday  Weekday = "THURSDAY"
	WeekdayFriday    Weekday = "FRIDAY"
	WeekdaySaturday  Weekday = "SATURDAY"
	WeekdaySunday    Weekday = "SUNDAY"
)

var weekdayIndex = map[Weekday]int{
	WeekdayMonday:    0,
	WeekdayTuesday:   1,
	WeekdayWednesday: 2,
	WeekdayThursday:  3,
	WeekdayFriday:    4,
	WeekdaySaturday:  5,
	WeekdaySunday:    6,
}

// Index 返回相对周一的天数偏移
func (d Weekday) Index() int {
	return weekdayIndex[d]
}

// Valid 校验是否为合法的周几取值
func (d Weekday) Valid() bool {
	_, ok := weekdayIndex[d]
	return ok
}

// Assignment 一次任务领取：某任务在某周某天被某用户认领
// TaskName/PointValue 是领取时的任务快照，任务被删除后历史记录仍可展示
type Assignment struct {
	ID            string    `gorm:"type:varchar(50);primary_key" json:"id"`
	TaskID        string    `gorm:"type:varchar(50);uniqueIndex:idx_cell" json:"taskId"`
	TaskName      string    `gorm:"type:varchar(100)" json:"taskName"`
	PointValue    int       `json:"pointValue"`
	WeekID        string    `gorm:"type:varchar(12);uniqueIndex:idx_cell;index" json:"weekId"`
	Weekday       Weekday   `gorm:"type:varchar(12);uniqueIndex:idx_cell" json:"weekday"`
	ClaimantID    string    `gorm:"type:varchar(100);index" json:"claimantId"`
	ClaimantName  string    `gorm:"type:varchar(100)" json:"claimantName"`
	State         State     `gorm:"type:varchar(20)" json:"state"`
	EvidenceRef   string    `gorm:"type:varchar(255)" json:"evidenceRef,omitempty"`
	ReviewComment string    `gorm:"type:text" json:"reviewComment,omitempty"`
	ClaimedAt     time.Time `json:"claimedAt"`
}

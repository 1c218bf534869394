package models

import "time"

// AssignmentResponse 领取记录响应结构体，附带读取时派生的期限字段
type AssignmentResponse struct {
	ID             string    `json:"id"`
	TaskID         string    `json:"taskId"`
	TaskName       string    `json:"taskName"`
	PointValue     int       `json:"pointValue"`
	WeekID         string    `json:"weekId"`
	Weekday        Weekday   `json:"weekday"`
	ClaimantID     string    `json:"claimantId"`
	ClaimantName   string    `json:"claimantName"`
	State          State     `json:"state"`
	EvidenceRef    string    `json:"evidenceRef,omitempty"`
	ReviewComment  string    `json:"reviewComment,omitempty"`
	ClaimedAt      time.Time `json:"claimedAt"`
	Deadline       time.Time `json:"deadline"`
	HoursRemaining int       `json:"hoursRemaining"`
	EffectiveState State     `json:"effectiveState"` // 含派生的 NOT_FULFILLED
}

// WeekResponse 周窗口响应结构体
type WeekResponse struct {
	ID        string    `json:"id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	IsCurrent bool      `json:"isCurrent"`
}

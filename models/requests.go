package models

import (
	"fmt"
	"strings"
)

// TaskRequest 任务创建/更新请求结构体
type TaskRequest struct {
	Name           string `json:"name"`
	PointValue     int    `json:"pointValue"`
	WeeklyCapacity int    `json:"weeklyCapacity"`
	Rules          string `json:"rules"`
}

// Validate 校验任务字段
func (r *TaskRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("任务名称不能为空")
	}
	if r.PointValue < 0 {
		return fmt.Errorf("积分不能为负数")
	}
	if r.WeeklyCapacity < 1 {
		return fmt.Errorf("每周可领取次数至少为1")
	}
	return nil
}

// ClaimRequest 领取任务请求结构体
type ClaimRequest struct {
	Weekday string `json:"weekday" binding:"required"` // MONDAY..SUNDAY
}

// EvidenceRequest 提交完成凭证请求结构体
type EvidenceRequest struct {
	EvidenceRef string `json:"evidenceRef" binding:"required"` // 由上传服务产生的不透明引用
}

// RejectRequest 驳回请求结构体
type RejectRequest struct {
	Comment string `json:"comment"`
}

// DevTokenRequest 测试令牌签发请求结构体
type DevTokenRequest struct {
	UserID      string `json:"userId" binding:"required"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"` // admin 或留空
}

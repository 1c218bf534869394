package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jaimelunalarcon/manglar-app/models"
	"github.com/jaimelunalarcon/manglar-app/services"
)

// AssignmentController 每周看板的领取、审批与查询接口
type AssignmentController struct {
	scheduler *services.SchedulerService
	approvals *services.ApprovalService
	queries   *services.QueryService
	weeks     *services.WeekService
}

func NewAssignmentController(
	scheduler *services.SchedulerService,
	approvals *services.ApprovalService,
	queries *services.QueryService,
	weeks *services.WeekService,
) *AssignmentController {
	return &AssignmentController{
		scheduler: scheduler,
		approvals: approvals,
		queries:   queries,
		weeks:     weeks,
	}
}

// Claim 在当前周领取任务的某一天
func (ac *AssignmentController) Claim(c *gin.Context) {
	taskID := c.Param("id")

	var req models.ClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求"})
		return
	}

	assignment, err := ac.scheduler.Claim(
		taskID,
		models.Weekday(req.Weekday),
		c.GetString("uid"),
		c.GetString("displayName"),
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignment)
}

// Release 释放一次领取，领取人或管理员可操作
func (ac *AssignmentController) Release(c *gin.Context) {
	err := ac.scheduler.Release(
		c.Param("id"),
		c.GetString("uid"),
		c.GetString("role") == "admin",
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "领取已释放"})
}

// SubmitEvidence 领取人提交完成凭证
func (ac *AssignmentController) SubmitEvidence(c *gin.Context) {
	var req models.EvidenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求"})
		return
	}

	assignment, err := ac.approvals.SubmitEvidence(c.Param("id"), req.EvidenceRef, c.GetString("uid"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignment)
}

// Approve 审核通过（管理员）
func (ac *AssignmentController) Approve(c *gin.Context) {
	assignment, err := ac.approvals.Approve(
		c.Param("id"),
		c.GetString("uid"),
		c.GetString("role") == "admin",
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignment)
}

// Reject 审核驳回并附意见（管理员）
func (ac *AssignmentController) Reject(c *gin.Context) {
	var req models.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求"})
		return
	}

	assignment, err := ac.approvals.Reject(
		c.Param("id"),
		c.GetString("uid"),
		c.GetString("role") == "admin",
		req.Comment,
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignment)
}

// ListWeek 某周的全部领取记录，week 参数缺省为当前周
func (ac *AssignmentController) ListWeek(c *gin.Context) {
	weekID := c.Query("week")
	if weekID == "" {
		weekID = ac.weeks.Current().ID
	}

	assignments, err := ac.queries.ListWeek(weekID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignments)
}

// ListMine 某用户在某周的领取记录，默认当前用户，管理员可用 user 参数查别人
func (ac *AssignmentController) ListMine(c *gin.Context) {
	weekID := c.Query("week")
	if weekID == "" {
		weekID = ac.weeks.Current().ID
	}

	userID := c.GetString("uid")
	if other := c.Query("user"); other != "" && c.GetString("role") == "admin" {
		userID = other
	}

	assignments, err := ac.queries.ListForUser(userID, weekID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignments)
}

// ListPendingApproval 当前周的待审核队列（管理员）
func (ac *AssignmentController) ListPendingApproval(c *gin.Context) {
	assignments, err := ac.queries.ListPendingApproval()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignments)
}

// ListWeeks 返回最近8周的窗口，供周选择器使用
func (ac *AssignmentController) ListWeeks(c *gin.Context) {
	c.JSON(http.StatusOK, ac.weeks.Recent(8))
}

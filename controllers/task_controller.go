package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jaimelunalarcon/manglar-app/config"
	"github.com/jaimelunalarcon/manglar-app/models"
	"github.com/jaimelunalarcon/manglar-app/services"
	"github.com/jaimelunalarcon/manglar-app/utils"
)

// TaskController 任务目录的增删改查
type TaskController struct {
	weeks *services.WeekService
	cache *services.WeekCache
}

func NewTaskController(weeks *services.WeekService, cache *services.WeekCache) *TaskController {
	return &TaskController{
		weeks: weeks,
		cache: cache,
	}
}

// ListTasks 返回全部任务模板
func (tc *TaskController) ListTasks(c *gin.Context) {
	var tasks []models.Task
	if err := config.DB.Order("created_at ASC").Find(&tasks).Error; err != nil {
		config.Logger.Errorw("获取任务列表失败", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取任务列表失败"})
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// CreateTask 新建任务模板（管理员）
func (tc *TaskController) CreateTask(c *gin.Context) {
	var req models.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求"})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task := models.Task{
		ID:             utils.GenerateID(),
		Name:           req.Name,
		PointValue:     req.PointValue,
		WeeklyCapacity: req.WeeklyCapacity,
		Rules:          req.Rules,
		CreatedAt:      time.Now(),
	}
	if err := config.DB.Create(&task).Error; err != nil {
		config.Logger.Errorw("创建任务失败", "error", err, "name", req.Name)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建任务失败"})
		return
	}

	config.Logger.Infow("任务已创建", "taskID", task.ID, "name", task.Name)
	c.JSON(http.StatusOK, task)
}

// UpdateTask 更新任务模板（管理员）
func (tc *TaskController) UpdateTask(c *gin.Context) {
	id := c.Param("id")

	var req models.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求"})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var task models.Task
	if err := config.DB.Where("id = ?", id).First(&task).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "任务不存在"})
		return
	}

	task.Name = req.Name
	task.PointValue = req.PointValue
	task.WeeklyCapacity = req.WeeklyCapacity
	task.Rules = req.Rules
	if err := config.DB.Save(&task).Error; err != nil {
		config.Logger.Errorw("更新任务失败", "error", err, "taskID", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "更新任务失败"})
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask 删除任务模板（管理员）。
// 同一事务内清掉该任务在当前周的领取记录，历史周的记录保留作审计
func (tc *TaskController) DeleteTask(c *gin.Context) {
	id := c.Param("id")

	var task models.Task
	if err := config.DB.Where("id = ?", id).First(&task).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "任务不存在"})
		return
	}

	currentWeek := tc.weeks.Current()
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ? AND week_id = ?", id, currentWeek.ID).
			Delete(&models.Assignment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&task).Error
	})
	if err != nil {
		config.Logger.Errorw("删除任务失败", "error", err, "taskID", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除任务失败"})
		return
	}

	tc.cache.Invalidate(currentWeek.ID)
	config.Logger.Infow("任务已删除", "taskID", id, "weekID", currentWeek.ID)
	c.JSON(http.StatusOK, gin.H{"message": "任务已删除"})
}

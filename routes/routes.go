package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/jaimelunalarcon/manglar-app/config"
	"github.com/jaimelunalarcon/manglar-app/controllers"
	"github.com/jaimelunalarcon/manglar-app/middleware"
	"github.com/jaimelunalarcon/manglar-app/services"
)

func RegisterRoutes(r *gin.Engine, conf config.Config) {
	weekService := services.NewWeekService()
	weekCache := services.NewWeekCache(config.RedisClient)
	schedulerService := services.NewSchedulerService(config.DB, weekService, weekCache)
	approvalService := services.NewApprovalService(config.DB, weekService, weekCache)
	queryService := services.NewQueryService(config.DB, weekService, weekCache)

	authController := controllers.AuthController{Environment: conf.Environment}
	taskController := controllers.NewTaskController(weekService, weekCache)
	assignmentController := controllers.NewAssignmentController(
		schedulerService, approvalService, queryService, weekService)

	// 公开路由（无需认证）
	public := r.Group("/api/v1")
	{
		public.POST("/auth/token", authController.IssueDevToken)
	}

	// 需要认证的路由
	private := r.Group("/api/v1")
	private.Use(middleware.AuthMiddleware()) // 应用认证中间件
	{
		private.GET("/tasks", taskController.ListTasks)
		private.GET("/weeks", assignmentController.ListWeeks)

		private.POST("/tasks/:id/claim", assignmentController.Claim)
		private.DELETE("/assignments/:id", assignmentController.Release)
		private.PUT("/assignments/:id/evidence", assignmentController.SubmitEvidence)

		private.GET("/assignments", assignmentController.ListWeek)
		private.GET("/assignments/mine", assignmentController.ListMine)
	}

	// 管理员路由（目录维护与审批）
	admin := r.Group("/api/v1")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminRequired())
	{
		admin.POST("/tasks", taskController.CreateTask)
		admin.PUT("/tasks/:id", taskController.UpdateTask)
		admin.DELETE("/tasks/:id", taskController.DeleteTask)

		admin.PUT("/assignments/:id/approve", assignmentController.Approve)
		admin.PUT("/assignments/:id/reject", assignmentController.Reject)
		admin.GET("/assignments/pending-approval", assignmentController.ListPendingApproval)
	}

	// 测试路由
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
}

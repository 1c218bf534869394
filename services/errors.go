package services

import "errors"

// 业务错误，控制器通过 errors.Is 映射为HTTP状态码
var (
	// ErrValidation 输入不合法（空名称、非法周几、空凭证等）
	ErrValidation = errors.New("输入不合法")

	// ErrNotFound 任务或领取记录不存在
	ErrNotFound = errors.New("记录不存在")

	// ErrCapacityExceeded 该任务本周可领取次数已用完
	ErrCapacityExceeded = errors.New("本周可领取次数已用完")

	// ErrCellOccupied 该任务当天已被领取
	ErrCellOccupied = errors.New("该任务当天已被领取")

	// ErrPermissionDenied 操作者不是领取人或缺少管理员角色
	ErrPermissionDenied = errors.New("没有操作权限")

	// ErrInvalidTransition 当前状态下不允许该状态变更
	ErrInvalidTransition = errors.New("当前状态不允许该操作")

	// ErrStaleWeek 历史周不可变更，对管理员也不例外
	ErrStaleWeek = errors.New("历史周记录不可修改")
)

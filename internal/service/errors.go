package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid        = errors.New("参数错误")
	ErrUserNotFound        = errors.New("用户不存在")
	ErrEmailExist          = errors.New("邮箱已注册")
	ErrNicknameExist       = errors.New("昵称已被使用")
	ErrPasswordIncorrect   = errors.New("邮箱或密码错误")
	ErrPostNotFound        = errors.New("帖子不存在")
	ErrCommentNotFound     = errors.New("评论不存在")
	ErrCommentPostMismatch = errors.New("评论不属于该帖子")
	ErrNothingToUpdate     = errors.New("没有需要修改的内容")
	ErrActionDuplicate     = errors.New("重复操作")
	ErrImageInvalid        = errors.New("图片地址无效")
	ErrNotAuthor           = errors.New("没有操作权限")
	ErrStatsMissing        = errors.New("帖子统计数据缺失")
	UnExpectedError        = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:        BadRequest,
	ErrUserNotFound:        NotFound,
	ErrEmailExist:          BadRequest,
	ErrNicknameExist:       BadRequest,
	ErrPasswordIncorrect:   Unauthorized,
	ErrPostNotFound:        NotFound,
	ErrCommentNotFound:     NotFound,
	ErrCommentPostMismatch: BadRequest,
	ErrNothingToUpdate:     BadRequest,
	ErrActionDuplicate:     BadRequest,
	ErrImageInvalid:        BadRequest,
	ErrNotAuthor:           Forbidden,
	ErrStatsMissing:        InternalServerError,
	UnExpectedError:        InternalServerError,
}

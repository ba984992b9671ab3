package util

import "errors"

var (
	ErrUserNotFound      = errors.New("用户不存在")
	ErrUsernameTaken     = errors.New("该用户名已被使用")
	ErrEmailRegistered   = errors.New("该邮箱已被注册")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrQuizNotFound      = errors.New("quiz not found")
	ErrQuizNotAccessible = errors.New("quiz not accessible")
	ErrQuizNoPairs       = errors.New("quiz must have at least one pair")
	ErrAttemptNotFound   = errors.New("attempt not found")
	ErrSessionNotFound   = errors.New("take session not found or expired")
	ErrNoLeftSelected    = errors.New("select a left item first")
	ErrEmptySubmission   = errors.New("no matches selected")
	ErrUnknownPair       = errors.New("pair does not belong to this quiz")
)

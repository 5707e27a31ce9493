package services

import (
	"errors"
	"strings"
)

// ValidationError 收集所有沒過的欄位規則，一條規則一句訊息
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// NotFoundError 是找不到（或引用了不存在的）紀錄
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ConflictError 目前只有 email 重複
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

var ErrInvalidCredentials = errors.New("invalid credentials")

func notFound(msg string) error { return &NotFoundError{Message: msg} }

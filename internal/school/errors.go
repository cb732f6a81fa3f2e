package school

import (
	"errors"
	"fmt"
)

// Kind 错误分类，供 API 层映射状态码
type Kind string

const (
	KindValidation       Kind = "validation_error"
	KindPayloadTooLarge  Kind = "payload_too_large"
	KindUnsupportedMedia Kind = "unsupported_media_type"
	KindUploadFailed     Kind = "upload_failed"
	KindNotFound         Kind = "not_found"
	KindStore            Kind = "store_error"
	KindDeleteFailed     Kind = "delete_failed"
)

// Error 携带分类的业务错误，每个请求最多向调用方暴露一个
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError 创建业务错误
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WrapError 包装底层错误
func WrapError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf 提取错误分类，非业务错误归为 store_error
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStore
}

// MessageOf 提取面向用户的错误消息
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal server error"
}

// DetailsOf 提取底层错误详情，没有底层错误时返回空串
func DetailsOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Err != nil {
		return e.Err.Error()
	}
	return ""
}

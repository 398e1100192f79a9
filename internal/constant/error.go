package constant

import "fmt"

// Error 错误接口
type Error interface {
	error
	Code() int
	Message() string
	WithDetail(detail string) Error
}

// CustomError 自定义错误实现
type CustomError struct {
	code    int
	message string
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("code: %d, message: %s", e.code, e.message)
}

func (e *CustomError) Code() int {
	return e.code
}

func (e *CustomError) Message() string {
	return e.message
}

// WithDetail 在标准错误文案后追加具体上下文
func (e *CustomError) WithDetail(detail string) Error {
	return &CustomError{code: e.code, message: e.message + ": " + detail}
}

// NewError 创建错误
func NewError(code int) Error {
	if info, exists := ErrorMessages[code]; exists {
		return &CustomError{code: code, message: info.CN}
	}
	return &CustomError{code: code, message: "未知错误"}
}

// GetErrorInfo 获取错误信息
func GetErrorInfo(code int) (ErrorInfo, bool) {
	info, exists := ErrorMessages[code]
	return info, exists
}

// CodeOf 提取业务错误码，非业务错误统一按结算失败处理
func CodeOf(err error) int {
	if be, ok := err.(Error); ok {
		return be.Code()
	}
	return CodeSettleFailed
}

package http

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mocks/http.go -package=mocks . IClient
type IClient interface {
	DoHTTPRequest(ctx context.Context, requestParam *RequestParam) error
}

type RequestParam struct {
	RequestURI string
	Method     string
	Header     map[string]string
	Body       interface{}
	// Response 决定响应的处理方式：*[]byte 收原始字节，其余按 JSON 反序列化
	Response interface{}

	Timeout time.Duration
}

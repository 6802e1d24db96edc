package serializer

import (
	"github.com/bytedance/sonic"
)

// JSONSerializer 基于 sonic 的 JSON 实现。
//
// 不用于线上传输（线格式是二进制的），主要用途：
//   - 调试时把消息 dump 成可读文本；
//   - 与外部文本协议做一次性互操作。
type JSONSerializer struct{}

// 编译期断言：确保 JSONSerializer 实现了 Serializer 接口。
var _ Serializer = JSONSerializer{}

// Marshal 实现 Serializer.Marshal。
func (JSONSerializer) Marshal(v any) ([]byte, error) {
	return sonic.Marshal(v)
}

// Unmarshal 实现 Serializer.Unmarshal。
func (JSONSerializer) Unmarshal(data []byte, v any) error {
	return sonic.Unmarshal(data, v)
}

package serializer

import (
	"github.com/lk2023060901/wirepack-go/pkg/util/werr"
	"github.com/lk2023060901/wirepack-go/pkg/wire"
)

// BinarySerializer 基于核心编解码器（pkg/wire）的二进制实现。
//
// 只接受实现了 wire.Serializable 契约的对象：
// 线格式无标签、依赖字段顺序，序列化逻辑必须由类型自己声明。
type BinarySerializer struct {
	// InitialSize 为序列化缓冲区的初始容量；<= 0 时使用 wire.DefaultInitialSize。
	InitialSize int
	// MaxSize 为序列化缓冲区的容量上限；0 表示不限制。
	MaxSize int
}

// 编译期断言：确保 BinarySerializer 实现了 Serializer 接口。
var _ Serializer = BinarySerializer{}

// Marshal 实现 Serializer.Marshal。
func (s BinarySerializer) Marshal(v any) ([]byte, error) {
	sv, ok := v.(wire.Serializable)
	if !ok {
		return nil, werr.WrapErrParameterInvalidMsg(
			"binary serializer requires wire.Serializable, got %T", v)
	}
	return wire.Marshal(sv, s.InitialSize, s.MaxSize)
}

// Unmarshal 实现 Serializer.Unmarshal。
func (s BinarySerializer) Unmarshal(data []byte, v any) error {
	sv, ok := v.(wire.Serializable)
	if !ok {
		return werr.WrapErrParameterInvalidMsg(
			"binary serializer requires wire.Serializable, got %T", v)
	}
	return wire.Unmarshal(data, sv)
}

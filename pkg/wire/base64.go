package wire

import (
	"encoding/base64"

	"github.com/lk2023060901/wirepack-go/pkg/util/werr"
)

// base64 导出/导入：给只接受可打印文本的传输通道
// （例如嵌入文本协议）提供已序列化字节的往返表示。
// 只是对标准 base64 的薄封装，不引入任何额外格式设计。

// ToBase64 将已序列化的消息字节导出为标准 base64 文本。
func ToBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// FromBase64 从标准 base64 文本还原消息字节。
func FromBase64(s string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, werr.WrapErrParameterInvalidMsg("decode base64 message: %v", err)
	}
	return data, nil
}

// MarshalBase64 序列化 v 并直接导出为 base64 文本。
func MarshalBase64(v Serializable) (string, error) {
	data, err := Marshal(v, 0, 0)
	if err != nil {
		return "", err
	}
	return ToBase64(data), nil
}

// UnmarshalBase64 从 base64 文本还原并反序列化到 v 中。
func UnmarshalBase64(s string, v Serializable) error {
	data, err := FromBase64(s)
	if err != nil {
		return err
	}
	return Unmarshal(data, v)
}

package network

import "errors"

// Stage 表示编解码链路中的处理阶段。
//
// 主要用于在回调与监控指标中标记错误发生的位置，便于排查。
type Stage string

const (
	StageSerialize   Stage = "serialize"   // 业务对象 -> 明文字节
	StageCompress    Stage = "compress"    // 明文字节 -> 压缩字节
	StageEncrypt     Stage = "encrypt"     // 压缩字节 -> 密文报文
	StageFrame       Stage = "frame"       // Envelope -> 长度前缀帧
	StageUnframe     Stage = "unframe"     // 长度前缀帧 -> Envelope
	StageDecrypt     Stage = "decrypt"     // 密文报文 -> 压缩字节
	StageDecompress  Stage = "decompress"  // 压缩字节 -> 明文字节
	StageDeserialize Stage = "deserialize" // 明文字节 -> 业务对象
)

// 统一的错误码常量。
//
// 注意：这些是用于日志/监控的稳定字符串，真正的 error 对象在下面通过 errors.New 构造。
const (
	ErrCodeEncodeFailed = "network:encode_failed"
	ErrCodeDecodeFailed = "network:decode_failed"
)

var (
	// ErrEncodeFailed 表示在将业务对象编码为帧时发生错误。
	ErrEncodeFailed = errors.New(ErrCodeEncodeFailed)

	// ErrDecodeFailed 表示在将帧解码为业务对象时发生错误。
	ErrDecodeFailed = errors.New(ErrCodeDecodeFailed)
)

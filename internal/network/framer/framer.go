package framer

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/lk2023060901/wirepack-go/pkg/util/werr"
	"github.com/lk2023060901/wirepack-go/pkg/wire"
)

// Framer 抽象了基于 Envelope 的打包/解包能力。
//
// 约定：
//   - 一帧数据的格式为：4 字节大端无符号整型（表示后续 Envelope 编码后的长度）+ Envelope 二进制数据。
//   - Envelope 的编码与解码由核心编解码器（pkg/wire）负责。
type Framer interface {
	// WriteFrame 将 Envelope 打包为一帧并写入到 w 中。
	WriteFrame(w io.Writer, env *Envelope) error

	// ReadFrame 从 r 中读取一帧数据并解包为 Envelope。
	ReadFrame(r io.Reader) (*Envelope, error)
}

// LengthPrefixedFramer 使用长度前缀（4 字节大端）作为帧边界。
// 适用于基于流的连接（如 TCP、WebSocket 原始流等）。
type LengthPrefixedFramer struct {
	// MaxFrameSize 为允许的最大帧大小（Envelope 编码后长度），单位字节。
	// 为 0 时使用默认值 defaultMaxFrameSize。
	MaxFrameSize uint32
}

// 帧体以单条消息的 16 位尺寸上界为主体，再留出 Envelope 头部的编码余量。
const defaultMaxFrameSize uint32 = wire.MaxMessageSize + 64

var _ Framer = (*LengthPrefixedFramer)(nil)

// NewLengthPrefixedFramer 创建一个长度前缀帧编码器。
// maxFrameSize 为 0 时使用默认值。
func NewLengthPrefixedFramer(maxFrameSize uint32) *LengthPrefixedFramer {
	if maxFrameSize == 0 {
		maxFrameSize = defaultMaxFrameSize
	}
	return &LengthPrefixedFramer{
		MaxFrameSize: maxFrameSize,
	}
}

// WriteFrame 将 Envelope 编码为长度前缀帧并写入。
func (f *LengthPrefixedFramer) WriteFrame(w io.Writer, env *Envelope) error {
	if env == nil {
		return werr.WrapErrParameterMissing("envelope", "write frame")
	}

	body, err := wire.Marshal(env, wire.DefaultInitialSize, 0)
	if err != nil {
		return fmt.Errorf("framer: marshal envelope failed: %w", err)
	}

	length := uint32(len(body))
	if length > f.effectiveMaxSize() {
		return werr.WrapErrFrameTooLarge(length, f.effectiveMaxSize(), "write frame")
	}

	var header [4]byte
	binary.BigEndian.PutUint32(header[:], length)

	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("framer: write header failed: %w", err)
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("framer: write body failed: %w", err)
	}

	return nil
}

// ReadFrame 从流中读取一帧数据并解码为 Envelope。
func (f *LengthPrefixedFramer) ReadFrame(r io.Reader) (*Envelope, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("framer: read header failed: %w", err)
	}

	length := binary.BigEndian.Uint32(header[:])
	if length > f.effectiveMaxSize() {
		return nil, werr.WrapErrFrameTooLarge(length, f.effectiveMaxSize(), "read frame")
	}
	if length == 0 {
		return nil, werr.WrapErrFrameCorrupted("zero-length frame body")
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("framer: read body failed: %w", err)
	}

	env := &Envelope{}
	if err := wire.Unmarshal(body, env); err != nil {
		return nil, fmt.Errorf("framer: unmarshal envelope failed: %w", err)
	}
	return env, nil
}

func (f *LengthPrefixedFramer) effectiveMaxSize() uint32 {
	if f == nil || f.MaxFrameSize == 0 {
		return defaultMaxFrameSize
	}
	return f.MaxFrameSize
}

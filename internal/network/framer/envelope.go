package framer

import (
	"github.com/lk2023060901/wirepack-go/pkg/util/werr"
	"github.com/lk2023060901/wirepack-go/pkg/wire"
)

// Envelope 标志位，记录 payload 在编码链路中经过的处理。
const (
	FlagCompressed uint64 = 1 << 0
	FlagEncrypted  uint64 = 1 << 1
)

// Header 是报文头，随 Envelope 一起用核心编解码器编码上线。
//
// 字段顺序即线协议：Op -> Seq -> Flags -> Timestamp。
type Header struct {
	// Op 为业务操作码，由上层路由使用。
	Op uint32
	// Seq 为消息序号。
	Seq uint64
	// Flags 记录压缩/加密等处理标志。
	Flags uint64
	// Timestamp 为发送方时间戳（Unix 毫秒）。
	Timestamp int64
}

var _ wire.Serializable = (*Header)(nil)

// SerializeTo 实现 wire.Serializable。任何一步失败立即停止，
// 不在错误路径上继续推进（或增长）缓冲区。
func (h *Header) SerializeTo(w *wire.Writer) error {
	if err := w.WriteUint32(h.Op); err != nil {
		return err
	}
	if err := w.WriteUint64(h.Seq); err != nil {
		return err
	}
	if err := w.WriteUint64(h.Flags); err != nil {
		return err
	}
	return w.WriteInt64(h.Timestamp)
}

// DeserializeFrom 实现 wire.Serializable。
func (h *Header) DeserializeFrom(r *wire.Reader) error {
	var err error
	if h.Op, err = r.ReadUint32(); err != nil {
		return err
	}
	if h.Seq, err = r.ReadUint64(); err != nil {
		return err
	}
	if h.Flags, err = r.ReadUint64(); err != nil {
		return err
	}
	if h.Timestamp, err = r.ReadInt64(); err != nil {
		return err
	}
	return nil
}

// Envelope 是一帧的逻辑内容：报文头 + 业务载荷。
//
// 线格式完全由核心编解码器描述：
//
//	Header 字段序列 | Size(u32 varint) | payload 自带长度字节块
//
// Size 与 payload 的实际长度在解码时交叉校验，不一致判定为帧损坏。
type Envelope struct {
	Header  Header
	Size    uint32
	Payload []byte
}

var _ wire.Serializable = (*Envelope)(nil)

// SerializeTo 实现 wire.Serializable。写入前自动修正 Size 字段。
func (e *Envelope) SerializeTo(w *wire.Writer) error {
	e.Size = uint32(len(e.Payload))
	if err := w.WriteValue(&e.Header); err != nil {
		return err
	}
	if err := w.WriteUint32(e.Size); err != nil {
		return err
	}
	return w.WriteSizedBytes(e.Payload)
}

// DeserializeFrom 实现 wire.Serializable。
func (e *Envelope) DeserializeFrom(r *wire.Reader) error {
	if err := r.ReadValue(&e.Header); err != nil {
		return err
	}

	size, err := r.ReadUint32()
	if err != nil {
		return err
	}

	payload, err := r.ReadSizedBytes()
	if err != nil {
		return err
	}
	if uint32(len(payload)) != size {
		return werr.WrapErrFrameCorrupted("size field does not match payload length")
	}

	e.Size = size
	e.Payload = payload
	return nil
}

package wire

import (
	"math"

	"github.com/lk2023060901/wirepack-go/pkg/util/werr"
)

const (
	// MaxStringLen 是字符串/字节块长度前缀的 16 位上限（编码后字节数）。
	MaxStringLen = math.MaxUint16

	// MaxMessageSize 是单条消息的尺寸上界，与长度前缀的 16 位上限一致。
	MaxMessageSize = math.MaxUint16
)

// Writer 是写侧门面：在任意 Buffer 后端之上实现原语写协议。
//
// 每个原语写入都先 Reserve 自己需要的确切字节数，再推进游标；
// 任何一步失败都是当前消息的硬失败，调用方应丢弃缓冲区重新开始。
type Writer struct {
	buf Buffer
}

// NewWriter 在给定后端上创建 Writer。
func NewWriter(buf Buffer) *Writer {
	return &Writer{
		buf: buf,
	}
}

// NewFixedWriter 在调用方提供的区域上创建定长后端的 Writer。
func NewFixedWriter(region []byte) *Writer {
	return NewWriter(NewFixed(region))
}

// Buffer 返回底层后端。
func (w *Writer) Buffer() Buffer {
	return w.buf
}

// Bytes 返回已写入的前缀，与底层区域共享内存。
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len 返回已写入的字节数。
func (w *Writer) Len() int {
	return w.buf.Pos()
}

// reserve 校验游标有效性并确保 n 字节可写，
// 返回从当前偏移开始、长度为 n 的可写窗口。
func (w *Writer) reserve(n int) ([]byte, error) {
	if w.buf == nil || !w.buf.Valid() {
		return nil, werr.WrapErrInvalidCursor("writer buffer failed validity check")
	}
	if err := w.buf.Reserve(n); err != nil {
		return nil, err
	}
	pos := w.buf.Pos()
	return w.buf.Region()[pos : pos+n], nil
}

func (w *Writer) advance(n int) error {
	return w.buf.SetPos(w.buf.Pos() + n)
}

// WriteUint16 以 varint 编码写入一个 16 位无符号整数（1–3 字节）。
func (w *Writer) WriteUint16(v uint16) error {
	return w.WriteUint64(uint64(v))
}

// WriteUint32 以 varint 编码写入一个 32 位无符号整数（1–5 字节）。
func (w *Writer) WriteUint32(v uint32) error {
	return w.WriteUint64(uint64(v))
}

// WriteUint64 以 varint 编码写入一个 64 位无符号整数（1–9 字节）。
func (w *Writer) WriteUint64(v uint64) error {
	n := UvarintLen(v)
	dst, err := w.reserve(n)
	if err != nil {
		return err
	}
	PutUvarint(dst, v)
	return w.advance(n)
}

// WriteInt8 写入一个原始字节表示的 8 位有符号整数。
func (w *Writer) WriteInt8(v int8) error {
	dst, err := w.reserve(1)
	if err != nil {
		return err
	}
	dst[0] = byte(v)
	return w.advance(1)
}

// WriteInt16 写入一个 16 位有符号整数：zigzag 变换后 varint 编码。
func (w *Writer) WriteInt16(v int16) error {
	return w.WriteUint16(ZigZag16(v))
}

// WriteInt32 写入一个 32 位有符号整数：zigzag 变换后按 32 位宽度
// varint 编码，幅值不会被截断到 16 位。
func (w *Writer) WriteInt32(v int32) error {
	return w.WriteUint32(ZigZag32(v))
}

// WriteInt64 写入一个 64 位有符号整数：zigzag 变换后 varint 编码。
func (w *Writer) WriteInt64(v int64) error {
	return w.WriteUint64(ZigZag64(v))
}

// WriteFloat32 将 32 位浮点数按位重解释为无符号整数后 varint 编码。
// 线上不是定宽的：0.0 只占 1 字节。
func (w *Writer) WriteFloat32(v float32) error {
	return w.WriteUint32(math.Float32bits(v))
}

// WriteFloat64 将 64 位浮点数按位重解释为无符号整数后 varint 编码。
func (w *Writer) WriteFloat64(v float64) error {
	return w.WriteUint64(math.Float64bits(v))
}

// WriteBool 写入一个布尔值，占 1 字节（1 或 0）。
func (w *Writer) WriteBool(v bool) error {
	dst, err := w.reserve(1)
	if err != nil {
		return err
	}
	if v {
		dst[0] = 1
	} else {
		dst[0] = 0
	}
	return w.advance(1)
}

// WriteString 写入一个字符串：UTF-8 字节数作为 16 位 varint 长度前缀，
// 随后是原始编码字节。长度前缀只写入一次。
//
// 编码字节数超过 MaxStringLen 是调用方错误（ErrStringTooLong）。
// 空字符串编码为单个零长度前缀字节，没有载荷；
// “缺失”与“空”在线上的表示相同，读取侧一律还原为空字符串。
func (w *Writer) WriteString(s string) error {
	if len(s) > MaxStringLen {
		return werr.WrapErrStringTooLong(len(s), MaxStringLen)
	}
	if err := w.WriteUint16(uint16(len(s))); err != nil {
		return err
	}
	if len(s) == 0 {
		return nil
	}

	dst, err := w.reserve(len(s))
	if err != nil {
		return err
	}
	copy(dst, s)
	return w.advance(len(s))
}

// WriteBytes 原样拷贝写入一个字节块，长度由调用方约定、不写入线上。
// 读取侧必须以同样的长度调用 ReadBytes。
func (w *Writer) WriteBytes(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	dst, err := w.reserve(len(b))
	if err != nil {
		return err
	}
	copy(dst, b)
	return w.advance(len(b))
}

// WriteSizedBytes 写入一个自带长度的字节块：
// 先写 16 位 varint 计数，再写原始字节；空块只写一个零计数字节。
func (w *Writer) WriteSizedBytes(b []byte) error {
	if len(b) > MaxStringLen {
		return werr.WrapErrStringTooLong(len(b), MaxStringLen, "sized bytes")
	}
	if err := w.WriteUint16(uint16(len(b))); err != nil {
		return err
	}
	return w.WriteBytes(b)
}

// WriteValue 委托给 Serializable 契约，由 v 自己发出有序的原语写序列。
func (w *Writer) WriteValue(v Serializable) error {
	if v == nil {
		return werr.WrapErrParameterMissing("serializable value")
	}
	return v.SerializeTo(w)
}

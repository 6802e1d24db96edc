package wire

import (
	"math"

	"github.com/lk2023060901/wirepack-go/pkg/util/werr"
)

// Reader 是读侧门面：与 Writer 的编码严格镜像。
//
// 读取越过区域末尾与写侧的 Reserve 失败完全一致，
// 都以 ErrBufferOverflow 结束当前消息的解码。
type Reader struct {
	buf Buffer
}

// NewReader 在给定后端上创建 Reader。
func NewReader(buf Buffer) *Reader {
	return &Reader{
		buf: buf,
	}
}

// NewReaderBytes 将收到的消息字节绑定为定长后端并创建 Reader。
// 这是反序列化的常规入口：收到的报文尺寸已知且不需要增长。
func NewReaderBytes(data []byte) *Reader {
	return NewReader(NewFixed(data))
}

// Buffer 返回底层后端。
func (r *Reader) Buffer() Buffer {
	return r.buf
}

// Remaining 返回尚未读取的字节数。
func (r *Reader) Remaining() int {
	return r.buf.Remaining()
}

// SeekToStart 将游标重置到起点，用于重新读取同一条消息。
func (r *Reader) SeekToStart() {
	r.buf.SeekToStart()
}

// pending 校验游标有效性并返回从当前偏移到末尾的未读窗口。
func (r *Reader) pending() ([]byte, error) {
	if r.buf == nil || !r.buf.Valid() {
		return nil, werr.WrapErrInvalidCursor("reader buffer failed validity check")
	}
	return r.buf.Region()[r.buf.Pos():r.buf.Size()], nil
}

// take 校验并消费 n 个原始字节。
func (r *Reader) take(n int) ([]byte, error) {
	src, err := r.pending()
	if err != nil {
		return nil, err
	}
	if len(src) < n {
		return nil, werr.WrapErrBufferOverflow(n, len(src))
	}
	if err := r.buf.SetPos(r.buf.Pos() + n); err != nil {
		return nil, err
	}
	return src[:n], nil
}

// ReadUint16 读取一个 varint 编码的 16 位无符号整数。
func (r *Reader) ReadUint16() (uint16, error) {
	src, err := r.pending()
	if err != nil {
		return 0, err
	}
	v, n, err := Uvarint16(src)
	if err != nil {
		return 0, err
	}
	return v, r.buf.SetPos(r.buf.Pos() + n)
}

// ReadUint32 读取一个 varint 编码的 32 位无符号整数。
func (r *Reader) ReadUint32() (uint32, error) {
	src, err := r.pending()
	if err != nil {
		return 0, err
	}
	v, n, err := Uvarint32(src)
	if err != nil {
		return 0, err
	}
	return v, r.buf.SetPos(r.buf.Pos() + n)
}

// ReadUint64 读取一个 varint 编码的 64 位无符号整数。
func (r *Reader) ReadUint64() (uint64, error) {
	src, err := r.pending()
	if err != nil {
		return 0, err
	}
	v, n, err := Uvarint64(src)
	if err != nil {
		return 0, err
	}
	return v, r.buf.SetPos(r.buf.Pos() + n)
}

// ReadInt8 读取一个原始字节表示的 8 位有符号整数。
func (r *Reader) ReadInt8() (int8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return int8(b[0]), nil
}

// ReadInt16 读取一个 16 位有符号整数（varint 解码后逆 zigzag）。
func (r *Reader) ReadInt16() (int16, error) {
	u, err := r.ReadUint16()
	if err != nil {
		return 0, err
	}
	return UnZigZag16(u), nil
}

// ReadInt32 读取一个 32 位有符号整数。
func (r *Reader) ReadInt32() (int32, error) {
	u, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	return UnZigZag32(u), nil
}

// ReadInt64 读取一个 64 位有符号整数。
func (r *Reader) ReadInt64() (int64, error) {
	u, err := r.ReadUint64()
	if err != nil {
		return 0, err
	}
	return UnZigZag64(u), nil
}

// ReadFloat32 读取一个 32 位浮点数（varint 解码后按位重解释）。
func (r *Reader) ReadFloat32() (float32, error) {
	u, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(u), nil
}

// ReadFloat64 读取一个 64 位浮点数。
func (r *Reader) ReadFloat64() (float64, error) {
	u, err := r.ReadUint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(u), nil
}

// ReadBool 读取一个布尔值：零为 false，任何非零值为 true。
func (r *Reader) ReadBool() (bool, error) {
	b, err := r.take(1)
	if err != nil {
		return false, err
	}
	return b[0] != 0, nil
}

// ReadString 读取一个带 16 位 varint 长度前缀的 UTF-8 字符串。
// 零长度还原为空字符串（写侧“缺失”与“空”的编码相同，这里不区分）。
func (r *Reader) ReadString() (string, error) {
	length, err := r.ReadUint16()
	if err != nil {
		return "", err
	}
	if length == 0 {
		return "", nil
	}

	b, err := r.take(int(length))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadBytes 按调用方约定的长度读取原始字节并拷贝到 dst 中。
// dst 的长度即要读取的字节数，与 WriteBytes 镜像。
func (r *Reader) ReadBytes(dst []byte) error {
	if len(dst) == 0 {
		return nil
	}
	b, err := r.take(len(dst))
	if err != nil {
		return err
	}
	copy(dst, b)
	return nil
}

// ReadSizedBytes 读取一个自带长度的字节块，返回新分配的拷贝。
// 零计数返回 nil，不消费任何载荷字节。
func (r *Reader) ReadSizedBytes() ([]byte, error) {
	count, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	b, err := r.take(int(count))
	if err != nil {
		return nil, err
	}
	out := make([]byte, count)
	copy(out, b)
	return out, nil
}

// ReadValue 委托给 Serializable 契约，由 v 自己发出有序的原语读序列。
func (r *Reader) ReadValue(v Serializable) error {
	if v == nil {
		return werr.WrapErrParameterMissing("serializable value")
	}
	return v.DeserializeFrom(r)
}

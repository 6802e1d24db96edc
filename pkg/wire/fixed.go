package wire

import (
	"github.com/lk2023060901/wirepack-go/pkg/util/werr"
)

// FixedBuffer 是定长后端：绑定到调用方持有的一段字节区域，
// 自身不拥有内存，也永远不会重新分配。
//
// 适用于消息最大尺寸可预知的场景（例如栈上或复用的收发缓冲区）。
// 借入的区域必须在游标的整个生命周期内保持存活，这由调用方保证。
type FixedBuffer struct {
	region []byte
	pos    int
}

// 编译期断言：确保 FixedBuffer 实现了 Buffer 接口。
var _ Buffer = (*FixedBuffer)(nil)

// NewFixed 将游标绑定到调用方提供的字节区域。
//
// region 为 nil 时返回的游标无法通过有效性校验，
// 任何读写操作都会以 ErrInvalidCursor 失败，而不是在无效内存上静默操作。
func NewFixed(region []byte) *FixedBuffer {
	return &FixedBuffer{
		region: region,
	}
}

// Region 实现 Buffer.Region。
func (b *FixedBuffer) Region() []byte {
	return b.region
}

// Bytes 实现 Buffer.Bytes。
func (b *FixedBuffer) Bytes() []byte {
	return b.region[:b.pos]
}

// Pos 实现 Buffer.Pos。
func (b *FixedBuffer) Pos() int {
	return b.pos
}

// SetPos 实现 Buffer.SetPos。
func (b *FixedBuffer) SetPos(pos int) error {
	if err := checkPos(pos, len(b.region)); err != nil {
		return err
	}
	b.pos = pos
	return nil
}

// Size 实现 Buffer.Size。
func (b *FixedBuffer) Size() int {
	return len(b.region)
}

// Remaining 实现 Buffer.Remaining。
func (b *FixedBuffer) Remaining() int {
	return len(b.region) - b.pos
}

// Reserve 实现 Buffer.Reserve。
// 容量在构造时已经确定，访问越过区域末尾直接返回 ErrBufferOverflow。
func (b *FixedBuffer) Reserve(n int) error {
	if n < 0 {
		return werr.WrapErrParameterInvalidMsg("reserve size %d is negative", n)
	}
	if b.pos+n > len(b.region) {
		return werr.WrapErrBufferOverflow(n, len(b.region)-b.pos)
	}
	return nil
}

// SeekToStart 实现 Buffer.SeekToStart。
func (b *FixedBuffer) SeekToStart() {
	b.pos = 0
}

// Valid 实现 Buffer.Valid。
func (b *FixedBuffer) Valid() bool {
	return b.region != nil && b.pos >= 0 && b.pos <= len(b.region)
}

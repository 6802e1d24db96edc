package wire

import (
	"github.com/lk2023060901/wirepack-go/pkg/util/werr"
)

// DefaultInitialSize 是可增长后端的默认初始容量。
const DefaultInitialSize = 64

// GrowableBuffer 是可增长后端：独占地持有自己分配的区域，
// 空间不足时按倍增策略重新分配，并保留已写入的前缀。
//
// 生命周期：实例不再使用时必须调用 Release；释放后的实例
// 无法通过有效性校验，所有操作都会以 ErrBufferReleased 失败。
// Release 可以安全地重复调用，也适合直接 defer。
type GrowableBuffer struct {
	region   []byte
	pos      int
	maxSize  int // 0 表示不设上限
	released bool
}

// 编译期断言：确保 GrowableBuffer 实现了 Buffer 接口。
var _ Buffer = (*GrowableBuffer)(nil)

// NewGrowable 创建一个可增长后端。
//
//   - initial：初始容量；<= 0 时使用 DefaultInitialSize。
//   - maxSize：容量上限；0 表示不限制。
//
// initial 大于 maxSize 视为参数错误。
func NewGrowable(initial, maxSize int) (*GrowableBuffer, error) {
	if initial <= 0 {
		initial = DefaultInitialSize
	}
	if maxSize < 0 {
		return nil, werr.WrapErrParameterInvalidMsg("max size %d is negative", maxSize)
	}
	if maxSize > 0 && initial > maxSize {
		return nil, werr.WrapErrParameterInvalid(maxSize, initial,
			"initial capacity exceeds max size")
	}

	return &GrowableBuffer{
		region:  make([]byte, initial),
		maxSize: maxSize,
	}, nil
}

// Region 实现 Buffer.Region。
func (b *GrowableBuffer) Region() []byte {
	return b.region
}

// Bytes 实现 Buffer.Bytes。
func (b *GrowableBuffer) Bytes() []byte {
	return b.region[:b.pos]
}

// Pos 实现 Buffer.Pos。
func (b *GrowableBuffer) Pos() int {
	return b.pos
}

// SetPos 实现 Buffer.SetPos。
func (b *GrowableBuffer) SetPos(pos int) error {
	if b.released {
		return werr.WrapErrBufferReleased("set cursor position")
	}
	if err := checkPos(pos, len(b.region)); err != nil {
		return err
	}
	b.pos = pos
	return nil
}

// Size 实现 Buffer.Size。
func (b *GrowableBuffer) Size() int {
	return len(b.region)
}

// Remaining 实现 Buffer.Remaining。
func (b *GrowableBuffer) Remaining() int {
	return len(b.region) - b.pos
}

// MaxSize 返回配置的容量上限，0 表示不限制。
func (b *GrowableBuffer) MaxSize() int {
	return b.maxSize
}

// Reserve 实现 Buffer.Reserve。
//
// 空间不足时：从当前容量开始倍增直到能容纳 pos+n；
// 需求超过 maxSize 时返回 ErrCapacityExceeded，倍增结果越过 maxSize
// 但需求本身不超限时收敛到 maxSize。扩容会分配新区域、
// 拷贝已写入前缀 [0, pos) 并整体重绑定，当前偏移保持不变。
func (b *GrowableBuffer) Reserve(n int) error {
	if b.released {
		return werr.WrapErrBufferReleased("reserve")
	}
	if n < 0 {
		return werr.WrapErrParameterInvalidMsg("reserve size %d is negative", n)
	}

	need := b.pos + n
	if need <= len(b.region) {
		return nil
	}
	if b.maxSize > 0 && need > b.maxSize {
		return werr.WrapErrCapacityExceeded(need, b.maxSize)
	}

	newCap := len(b.region)
	if newCap == 0 {
		newCap = DefaultInitialSize
	}
	for newCap < need {
		newCap *= 2
	}
	if b.maxSize > 0 && newCap > b.maxSize {
		newCap = b.maxSize
	}

	region := make([]byte, newCap)
	copy(region, b.region[:b.pos])
	b.region = region
	return nil
}

// SeekToStart 实现 Buffer.SeekToStart。
func (b *GrowableBuffer) SeekToStart() {
	b.pos = 0
}

// Valid 实现 Buffer.Valid。
func (b *GrowableBuffer) Valid() bool {
	return !b.released && b.region != nil && b.pos >= 0 && b.pos <= len(b.region)
}

// Release 释放独占持有的区域。幂等，释放后实例不可再使用。
func (b *GrowableBuffer) Release() {
	if b.released {
		return
	}
	b.region = nil
	b.pos = 0
	b.released = true
}

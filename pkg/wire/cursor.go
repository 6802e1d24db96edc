// Package wire 实现了一个面向低延迟、低垃圾场景的二进制消息编解码核心。
//
// 分层结构（自底向上）：
//   - varint / zigzag：纯函数编码层，定义逐字节精确的线格式；
//   - Buffer：缓冲区游标能力抽象，由定长（FixedBuffer）和
//     可增长（GrowableBuffer）两种后端实现；
//   - Writer / Reader：基于 Buffer 的原语读写协议
//     （整数、浮点、布尔、字符串、字节块）；
//   - Serializable：应用类型的组合式序列化契约。
//
// 线格式是无标签、依赖字段顺序的：同一个类型的序列化与反序列化
// 必须按完全相同的顺序调用原语，顺序错位是静默的数据损坏而非可检测错误。
// 该包自身不做日志，也不做任何重试；所有失败都是当前消息的硬失败。
package wire

import (
	"github.com/lk2023060901/wirepack-go/pkg/util/werr"
)

// Buffer 抽象了“一段连续字节区域 + 读写游标”的能力。
//
// 游标模型：区域为 [0, Size())，Pos() 为当前读写偏移。
// 有效性约束为 0 <= Pos() <= Size()：刚好写满区域的游标仍然有效
// （Remaining() == 0），但任何后续的单字节访问都会在 Reserve 处失败。
//
// 实现不要求并发安全：单个实例只能被一个 goroutine 驱动，
// 各自持有独立区域的多个实例可以并发使用。
type Buffer interface {
	// Region 返回完整的底层区域 [0, Size())。
	Region() []byte

	// Bytes 返回已写入的前缀 Region()[:Pos()]，与底层区域共享内存。
	Bytes() []byte

	// Pos 返回当前读写偏移。
	Pos() int

	// SetPos 将读写偏移移动到 pos；pos 超出 [0, Size()] 时失败。
	SetPos(pos int) error

	// Size 返回区域容量。
	Size() int

	// Remaining 返回从当前偏移到区域末尾的剩余字节数。
	Remaining() int

	// Reserve 确保从当前偏移起可以安全访问 n 字节。
	// 定长后端在容量不足时返回 ErrBufferOverflow；
	// 可增长后端在超过容量上限时返回 ErrCapacityExceeded。
	Reserve(n int) error

	// SeekToStart 将偏移重置到区域起点，用于重新读取。
	SeekToStart()

	// Valid 报告游标是否通过有效性校验。
	// 零值构造、已释放的可增长后端都无法通过校验。
	Valid() bool
}

// checkPos 是各后端共享的 SetPos 参数校验。
func checkPos(pos, size int) error {
	if pos < 0 || pos > size {
		return werr.WrapErrInvalidCursor("position out of region",
			"set cursor position")
	}
	return nil
}

package wire

import (
	"math"

	"github.com/lk2023060901/wirepack-go/pkg/util/werr"
)

// 变长整数编码（varint）。
//
// 编码布局是固定的线字节契约，按首字节（selector）自描述长度：
//
//	0–240            1 字节：字面值
//	241–2287         2 字节：b0=(v-240)/256+241, b1=(v-240)%256
//	2288–67823       3 字节：b0=249, b1=(v-2288)/256, b2=(v-2288)%256
//	≤2^24-1          4 字节：b0=250 + 3 个小端幅值字节
//	≤2^32-1          5 字节：b0=251 + 4 个小端幅值字节
//	≤2^40-1          6 字节：b0=252 + 5 个小端幅值字节
//	≤2^48-1          7 字节：b0=253 + 6 个小端幅值字节
//	≤2^56-1          8 字节：b0=254 + 7 个小端幅值字节
//	≤2^64-1          9 字节：b0=255 + 8 个小端幅值字节
//
// 小数值只占 1 字节，格式无需外部长度字段即可自定界。
// 互操作性要求逐字节一致，任何修改都会破坏既有报文。
const (
	// MaxUvarintLen16 是 16 位无符号整数编码后的最大字节数。
	MaxUvarintLen16 = 3
	// MaxUvarintLen32 是 32 位无符号整数编码后的最大字节数。
	MaxUvarintLen32 = 5
	// MaxUvarintLen64 是 64 位无符号整数编码后的最大字节数。
	MaxUvarintLen64 = 9
)

// UvarintLen 返回 v 编码后占用的字节数（1–9）。
func UvarintLen(v uint64) int {
	switch {
	case v <= 240:
		return 1
	case v <= 2287:
		return 2
	case v <= 67823:
		return 3
	case v <= 1<<24-1:
		return 4
	case v <= 1<<32-1:
		return 5
	case v <= 1<<40-1:
		return 6
	case v <= 1<<48-1:
		return 7
	case v <= 1<<56-1:
		return 8
	default:
		return 9
	}
}

// PutUvarint 将 v 编码到 dst 中，返回写入的字节数。
//
// 调用方必须保证 len(dst) >= UvarintLen(v)，否则会发生越界 panic；
// 带边界检查的写入入口是 Writer.WriteUint*。
func PutUvarint(dst []byte, v uint64) int {
	switch {
	case v <= 240:
		dst[0] = byte(v)
		return 1
	case v <= 2287:
		dst[0] = byte((v-240)/256 + 241)
		dst[1] = byte((v - 240) % 256)
		return 2
	case v <= 67823:
		dst[0] = 249
		dst[1] = byte((v - 2288) / 256)
		dst[2] = byte((v - 2288) % 256)
		return 3
	default:
		n := UvarintLen(v)
		// n ∈ [4,9]，selector = 246+n ∈ [250,255]。
		dst[0] = byte(246 + n)
		for i := 1; i < n; i++ {
			dst[i] = byte(v)
			v >>= 8
		}
		return n
	}
}

// uvarintTotalLen 根据首字节返回该编码的总字节数。
func uvarintTotalLen(selector byte) int {
	switch {
	case selector <= 240:
		return 1
	case selector <= 248:
		return 2
	case selector == 249:
		return 3
	default:
		// 250–255 对应 4–9 字节。
		return int(selector) - 246
	}
}

// Uvarint64 从 src 头部解码一个 64 位无符号整数。
// 返回解码出的值与消耗的字节数。
//
// 64 位解码表覆盖了全部 256 个首字节取值，
// 因此唯一可能的失败是 src 不足一个完整编码（ErrBufferOverflow）。
func Uvarint64(src []byte) (uint64, int, error) {
	if len(src) < 1 {
		return 0, 0, werr.WrapErrBufferOverflow(1, 0, "decode uvarint")
	}

	selector := src[0]
	n := uvarintTotalLen(selector)
	if len(src) < n {
		return 0, 0, werr.WrapErrBufferOverflow(n, len(src), "decode uvarint")
	}

	switch {
	case selector <= 240:
		return uint64(selector), 1, nil
	case selector <= 248:
		return 240 + 256*uint64(selector-241) + uint64(src[1]), 2, nil
	case selector == 249:
		return 2288 + 256*uint64(src[1]) + uint64(src[2]), 3, nil
	default:
		var v uint64
		for i := n - 1; i >= 1; i-- {
			v = v<<8 | uint64(src[i])
		}
		return v, n, nil
	}
}

// Uvarint32 从 src 头部解码一个 32 位无符号整数。
//
// 首字节大于 251（即 40 位及以上的分支）直接判定为 ErrMalformedVarint；
// 251 分支解码出的值恒在 32 位范围内，无需再做范围检查。
func Uvarint32(src []byte) (uint32, int, error) {
	if len(src) >= 1 && src[0] > 251 {
		return 0, 0, werr.WrapErrMalformedVarint(src[0], 32)
	}

	v, n, err := Uvarint64(src)
	if err != nil {
		return 0, 0, err
	}
	if v > math.MaxUint32 {
		return 0, 0, werr.WrapErrValueOutOfRange(v, 32)
	}
	return uint32(v), n, nil
}

// Uvarint16 从 src 头部解码一个 16 位无符号整数。
//
// 首字节大于 249 的分支必然超出 16 位范围，判定为 ErrMalformedVarint；
// 249 分支能编码到 67823，超过 65535 的部分判定为 ErrValueOutOfRange。
func Uvarint16(src []byte) (uint16, int, error) {
	if len(src) >= 1 && src[0] > 249 {
		return 0, 0, werr.WrapErrMalformedVarint(src[0], 16)
	}

	v, n, err := Uvarint64(src)
	if err != nil {
		return 0, 0, err
	}
	if v > math.MaxUint16 {
		return 0, 0, werr.WrapErrValueOutOfRange(v, 16)
	}
	return uint16(v), n, nil
}

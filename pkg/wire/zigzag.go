package wire

// 之字形（zigzag）变换。
//
// 将有符号整数双射到无符号幅值：encode(v) = (v << 1) XOR (v >> (W-1))，
// 其中右移为算术移位。小绝对值的负数映射到小幅值，
// 配合 varint 编码后负数不再固定占满位宽：
//
//	 0 -> 0, -1 -> 1, 1 -> 2, -2 -> 3, 2 -> 4, ...

// ZigZag16 将 16 位有符号整数映射为无符号幅值。
func ZigZag16(v int16) uint16 {
	return uint16(v<<1) ^ uint16(v>>15)
}

// ZigZag32 将 32 位有符号整数映射为无符号幅值。
func ZigZag32(v int32) uint32 {
	return uint32(v<<1) ^ uint32(v>>31)
}

// ZigZag64 将 64 位有符号整数映射为无符号幅值。
func ZigZag64(v int64) uint64 {
	return uint64(v<<1) ^ uint64(v>>63)
}

// UnZigZag16 是 ZigZag16 的逆变换。
func UnZigZag16(u uint16) int16 {
	if u&1 != 0 {
		return -int16(u>>1) - 1
	}
	return int16(u >> 1)
}

// UnZigZag32 是 ZigZag32 的逆变换。
func UnZigZag32(u uint32) int32 {
	if u&1 != 0 {
		return -int32(u>>1) - 1
	}
	return int32(u >> 1)
}

// UnZigZag64 是 ZigZag64 的逆变换。
func UnZigZag64(u uint64) int64 {
	if u&1 != 0 {
		return -int64(u>>1) - 1
	}
	return int64(u >> 1)
}

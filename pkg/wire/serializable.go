package wire

// Serializable 是结构化类型的组合式序列化契约。
//
// 实现方在 SerializeTo 中发出一段有序的原语写序列，
// 并在 DeserializeFrom 中发出完全相同顺序的原语读序列。
// 字段顺序就是线协议本身：契约不做结构校验、不带版本号、没有字段标签，
// 两侧顺序错位不会被检测到，只会得到静默损坏的数据。
// 顺序对称性由实现方负责，并且应当被显式测试覆盖。
type Serializable interface {
	// SerializeTo 将自身按固定字段顺序写入 w。
	SerializeTo(w *Writer) error

	// DeserializeFrom 按 SerializeTo 的同一顺序从 r 读出自身。
	DeserializeFrom(r *Reader) error
}

// Marshal 用一个可增长后端将 v 序列化为独立的字节切片。
//
//   - initial：初始容量；<= 0 时使用 DefaultInitialSize。
//   - maxSize：容量上限；0 表示不限制。
//
// 返回的切片不与内部缓冲区共享内存，后端在返回前已经释放。
func Marshal(v Serializable, initial, maxSize int) ([]byte, error) {
	buf, err := NewGrowable(initial, maxSize)
	if err != nil {
		return nil, err
	}
	defer buf.Release()

	w := NewWriter(buf)
	if err := w.WriteValue(v); err != nil {
		return nil, err
	}

	out := make([]byte, w.Len())
	copy(out, w.Bytes())
	return out, nil
}

// Unmarshal 将 data 绑定为定长后端并反序列化到 v 中。
func Unmarshal(data []byte, v Serializable) error {
	return NewReaderBytes(data).ReadValue(v)
}

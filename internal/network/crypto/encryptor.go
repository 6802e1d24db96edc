package crypto

// Encryptor 抽象了单一“加密方案”的能力：
//   - Encrypt：加密 + 防篡改，生成完整报文
//   - Decrypt：校验 + 解密，还原明文
//
// aad（Associated Data）为关联数据，不加密但需要完整性保护
// （例如消息序号、操作码、时间戳等报文头字段）。
type Encryptor interface {
	Encrypt(plaintext, aad []byte) (packet []byte, err error)
	Decrypt(packet, aad []byte) (plaintext []byte, err error)
}

// NopEncryptor 是一个空实现：不做加密也不做校验，直接透传数据。
//
// 适用于：
//   - 本地开发/调试阶段，不希望引入加解密开销
//   - 按配置开关动态启用/关闭加密，而不影响调用方逻辑
type NopEncryptor struct{}

func (NopEncryptor) Encrypt(plaintext, _ []byte) ([]byte, error) {
	return plaintext, nil
}

func (NopEncryptor) Decrypt(packet, _ []byte) ([]byte, error) {
	return packet, nil
}

// 编译期断言：确保 NopEncryptor 实现了 Encryptor 接口。
var _ Encryptor = NopEncryptor{}

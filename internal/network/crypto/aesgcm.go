package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"io"
)

var (
	// ErrPacketTooShort 表示加密报文长度不足，无法包含完整的 nonce 和密文。
	ErrPacketTooShort = errors.New("crypto: packet too short")
)

const aes256KeySizeBytes = 32

// AESGCMEncryptor 基于 AES-256-GCM 的 AEAD 实现：
// 密文自带完整性校验，关联数据（报文头）一并受保护。
//
// 报文格式：nonce || ciphertext
//   - nonce     ：随机数，长度等于 AEAD.NonceSize()
//   - ciphertext：AES-GCM 加密后的密文（包含 GCM tag）
type AESGCMEncryptor struct {
	aead cipher.AEAD
}

// 编译期断言：确保 AESGCMEncryptor 实现了 Encryptor 接口。
var _ Encryptor = (*AESGCMEncryptor)(nil)

// NewAESGCMEncryptor 创建一个 AES-256-GCM 编码器。
// key 长度必须为 32 字节。
func NewAESGCMEncryptor(key []byte) (*AESGCMEncryptor, error) {
	if len(key) != aes256KeySizeBytes {
		return nil, errors.New("crypto: key must be 32 bytes for AES-256-GCM")
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &AESGCMEncryptor{
		aead: aead,
	}, nil
}

// Encrypt 实现 Encryptor.Encrypt。
func (c *AESGCMEncryptor) Encrypt(plaintext, aad []byte) ([]byte, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	packet := make([]byte, 0, len(nonce)+len(plaintext)+c.aead.Overhead())
	packet = append(packet, nonce...)
	return c.aead.Seal(packet, nonce, plaintext, aad), nil
}

// Decrypt 实现 Encryptor.Decrypt。
// aad 必须与加密时保持一致，否则 GCM 校验失败。
func (c *AESGCMEncryptor) Decrypt(packet, aad []byte) ([]byte, error) {
	nonceSize := c.aead.NonceSize()
	if len(packet) < nonceSize+c.aead.Overhead() {
		return nil, ErrPacketTooShort
	}

	nonce := packet[:nonceSize]
	ciphertext := packet[nonceSize:]
	return c.aead.Open(nil, nonce, ciphertext, aad)
}

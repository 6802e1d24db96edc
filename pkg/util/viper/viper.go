package viper

import (
	"path/filepath"

	spfviper "github.com/spf13/viper"

	"github.com/lk2023060901/wirepack-go/pkg/util/werr"
)

// Config 封装 spf13/viper 实例，为编解码服务提供 YAML/JSON 配置加载。
//
// 失败路径统一归入 werr 错误码：
//   - 文件不存在/解析失败   -> ErrConfigLoadFailed
//   - 反序列化到目标结构失败 -> ErrConfigInvalid
type Config struct {
	v    *spfviper.Viper
	path string
}

// New 创建一个空的 Config。
// 在调用 Unmarshal/UnmarshalKey 之前需要先通过 LoadFile 加载配置文件。
func New() *Config {
	return &Config{
		v: spfviper.New(),
	}
}

// LoadFile 将 YAML 或 JSON 配置文件加载到 Config 中。
// 文件类型通过扩展名（.yaml/.yml/.json）推断，其余扩展名交给 viper 自行判断。
func (c *Config) LoadFile(path string) error {
	if c.v == nil {
		c.v = spfviper.New()
	}
	c.path = path

	c.v.SetConfigFile(path)
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		c.v.SetConfigType("yaml")
	case ".json":
		c.v.SetConfigType("json")
	}

	if err := c.v.ReadInConfig(); err != nil {
		return werr.WrapErrConfigLoadFailed(path, err)
	}
	return nil
}

// Unmarshal 将完整配置反序列化到 dst（结构体或 map 的指针）。
func (c *Config) Unmarshal(dst any) error {
	if c.v == nil {
		return werr.WrapErrParameterMissing("config source", "unmarshal config")
	}
	if err := c.v.Unmarshal(dst); err != nil {
		return werr.WrapErrConfigInvalid(c.path, err)
	}
	return nil
}

// UnmarshalKey 将指定 key 对应的子配置反序列化到 dst。
// key 不存在时 dst 保持原值，不报错；存在但类型不匹配判定为 ErrConfigInvalid。
func (c *Config) UnmarshalKey(key string, dst any) error {
	if c.v == nil {
		return werr.WrapErrParameterMissing("config source", "unmarshal config key")
	}
	if err := c.v.UnmarshalKey(key, dst); err != nil {
		return werr.WrapErrConfigInvalid(key, err)
	}
	return nil
}

// Copyright 2019 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	_globalL atomic.Value
	_globalS atomic.Value
	_globalP atomic.Value
)

// ZapProperties 记录初始化后可以在运行时调整的日志属性。
type ZapProperties struct {
	Core   zapcore.Core
	Syncer zapcore.WriteSyncer
	Level  zap.AtomicLevel
}

func init() {
	l, p := newStdLogger()
	ReplaceGlobals(l, p)
}

// newStdLogger 创建默认的标准输出 logger，供 init 和测试兜底使用。
func newStdLogger() (*zap.Logger, *ZapProperties) {
	cfg := &Config{Stdout: true}
	l, p, err := InitLogger(cfg, zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}
	return l, p
}

// InitLogger 根据配置初始化一个 zap.Logger。
func InitLogger(cfg *Config, opts ...zap.Option) (*zap.Logger, *ZapProperties, error) {
	cfg.applyDefaults()

	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, nil, errors.Wrapf(err, "unknown log level %q", cfg.Level)
	}

	var syncers []zapcore.WriteSyncer
	if cfg.Stdout {
		syncers = append(syncers, zapcore.AddSync(os.Stdout))
	}
	if cfg.File.Filename != "" {
		// 文件日志走 lumberjack 做滚动。
		rotator := &lumberjack.Logger{
			Filename:   filepath.Join(cfg.File.RootPath, cfg.File.Filename),
			MaxSize:    cfg.File.MaxSize,
			MaxAge:     cfg.File.MaxDays,
			MaxBackups: cfg.File.MaxBackups,
			LocalTime:  true,
		}
		syncers = append(syncers, zapcore.AddSync(rotator))
	}
	if len(syncers) == 0 {
		syncers = append(syncers, zapcore.AddSync(os.Stdout))
	}
	syncer := zapcore.NewMultiWriteSyncer(syncers...)

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	var encoder zapcore.Encoder
	switch cfg.Format {
	case "json":
		encoder = zapcore.NewJSONEncoder(encCfg)
	case "text", "console":
		encoder = zapcore.NewConsoleEncoder(encCfg)
	default:
		return nil, nil, errors.Newf("unknown log format %q", cfg.Format)
	}

	core := zapcore.NewCore(encoder, syncer, level)

	if !cfg.DisableCaller {
		opts = append(opts, zap.AddCaller())
	}
	if !cfg.DisableStacktrace {
		opts = append(opts, zap.AddStacktrace(zap.ErrorLevel))
	}

	logger := zap.New(core, opts...)
	props := &ZapProperties{
		Core:   core,
		Syncer: syncer,
		Level:  level,
	}
	return logger, props, nil
}

// ReplaceGlobals 替换全局 logger，并返回撤销函数。
func ReplaceGlobals(logger *zap.Logger, props *ZapProperties) func() {
	prevL, _ := _globalL.Load().(*zap.Logger)
	prevS, _ := _globalS.Load().(*zap.SugaredLogger)
	prevP, _ := _globalP.Load().(*ZapProperties)

	_globalL.Store(logger)
	_globalS.Store(logger.Sugar())
	_globalP.Store(props)

	return func() {
		// init 之前没有旧值可还原。
		if prevL == nil {
			return
		}
		_globalL.Store(prevL)
		_globalS.Store(prevS)
		_globalP.Store(prevP)
	}
}

// L 返回全局 logger。
func L() *zap.Logger {
	return _globalL.Load().(*zap.Logger)
}

// S 返回全局 sugared logger。
func S() *zap.SugaredLogger {
	return _globalS.Load().(*zap.SugaredLogger)
}

// Prop 返回全局日志属性。
func Prop() *ZapProperties {
	return _globalP.Load().(*ZapProperties)
}

// With 基于全局 logger 创建携带固定字段的子 logger。
func With(fields ...zap.Field) *zap.Logger {
	return L().With(fields...).WithOptions(zap.AddCallerSkip(-1))
}

// SetLevel 动态调整全局日志级别。
func SetLevel(level zapcore.Level) {
	Prop().Level.SetLevel(level)
}

// GetLevel 返回当前全局日志级别。
func GetLevel() zapcore.Level {
	return Prop().Level.Level()
}

// Sync 刷新全局 logger 的缓冲。
func Sync() error {
	return L().Sync()
}

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
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// SetupTestLogger 将全局 logger 替换为绑定测试生命周期的 zaptest logger，
// 并注册测试结束时的自动还原。
func SetupTestLogger(t zaptest.TestingT) {
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCallerSkip(1)))
	restore := ReplaceGlobals(logger, Prop())
	if cleaner, ok := t.(interface{ Cleanup(func()) }); ok {
		cleaner.Cleanup(restore)
	}
}

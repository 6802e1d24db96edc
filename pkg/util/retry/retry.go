// Copyright (C) 2019-2020 Zilliz. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance
// with the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License
// is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express
// or implied. See the License for the specific language governing permissions and limitations under the License.

package retry

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/lk2023060901/wirepack-go/pkg/log"
	"github.com/lk2023060901/wirepack-go/pkg/util/werr"
)

// Do 使用重试机制执行指定函数。
// fn 为待执行的函数。
// opts 用于控制最大重试次数、初始休眠时间等行为。
func Do(ctx context.Context, fn func() error, opts ...Option) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	logger := log.Ctx(ctx)
	c := newDefaultConfig()

	for _, opt := range opts {
		opt(c)
	}

	var lastErr error
	for i := uint(0); i < c.attempts; i++ {
		if err := fn(); err != nil {
			if i%4 == 0 {
				logger.Warn("retry func failed",
					zap.Uint("retried", i),
					zap.Error(err),
				)
			}

			lastErr = err

			if !isRetryable(err) {
				return lastErr
			}

			select {
			case <-time.After(c.sleep):
			case <-ctx.Done():
				return werr.Combine(ctx.Err(), lastErr)
			}

			// 指数退避，封顶 maxSleepTime。
			c.sleep *= 2
			if c.sleep > c.maxSleepTime {
				c.sleep = c.maxSleepTime
			}
			continue
		}
		return nil
	}
	return lastErr
}

var errUnrecoverable = errors.New("unrecoverable")

// Unrecoverable 将 err 标记为不可重试，Do 遇到后立即返回。
func Unrecoverable(err error) error {
	return errors.Mark(err, errUnrecoverable)
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return !errors.Is(err, errUnrecoverable)
}

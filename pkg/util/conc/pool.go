// Licensed to the LF AI & Data foundation under one
// or more contributor license agreements. See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership. The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License. You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package conc

import (
	ants "github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/lk2023060901/wirepack-go/pkg/log"
)

// Pool 是对 ants 协程池的薄封装，用于消息分发等短任务场景。
//
// 任务内的 panic 会被捕获并记录日志，不会拖垮整个池。
type Pool struct {
	inner *ants.Pool
}

// NewPool 创建一个容量为 cap 的协程池。cap <= 0 表示不限制。
func NewPool(cap int, opts ...ants.Option) (*Pool, error) {
	opts = append(opts, ants.WithPanicHandler(func(v any) {
		log.Error("task panicked in pool", zap.Any("panic", v))
	}))

	inner, err := ants.NewPool(cap, opts...)
	if err != nil {
		return nil, err
	}
	return &Pool{inner: inner}, nil
}

// Submit 将任务提交到池中执行。
func (p *Pool) Submit(task func()) error {
	return p.inner.Submit(task)
}

// Running 返回当前正在执行任务的 worker 数。
func (p *Pool) Running() int {
	return p.inner.Running()
}

// Release 关闭池并回收 worker。
func (p *Pool) Release() {
	p.inner.Release()
}

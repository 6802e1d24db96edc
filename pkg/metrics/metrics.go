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

package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// wirepackNamespace 是当前项目所有 Prometheus 指标使用的命名空间。
	wirepackNamespace = "wirepack"

	codecSubsystem = "codec"

	// 以下为当前使用的通用标签名。
	stageLabelName     = "stage"
	directionLabelName = "direction"
)

var (
	// MessagesTotal 统计经过编解码链路的消息条数，按方向（encode/decode）区分。
	MessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: wirepackNamespace,
			Subsystem: codecSubsystem,
			Name:      "messages_total",
			Help:      "total number of messages passed through the codec pipeline",
		}, []string{directionLabelName})

	// BytesTotal 统计链路输入/输出的载荷字节数。
	BytesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: wirepackNamespace,
			Subsystem: codecSubsystem,
			Name:      "bytes_total",
			Help:      "total payload bytes passed through the codec pipeline",
		}, []string{directionLabelName})

	// PipelineErrors 按阶段统计链路错误。
	PipelineErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: wirepackNamespace,
			Subsystem: codecSubsystem,
			Name:      "pipeline_errors_total",
			Help:      "total number of pipeline errors partitioned by stage",
		}, []string{stageLabelName})

	// CompressedRatio 观测压缩后/压缩前的字节比。
	CompressedRatio = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: wirepackNamespace,
			Subsystem: codecSubsystem,
			Name:      "compressed_ratio",
			Help:      "ratio of compressed payload size to original size",
			Buckets:   prometheus.LinearBuckets(0.1, 0.1, 10),
		})
)

var registerOnce sync.Once

// Register 将全部编解码指标注册到给定的 Registerer 上。
// 重复调用只注册一次。
func Register(r prometheus.Registerer) {
	registerOnce.Do(func() {
		r.MustRegister(MessagesTotal)
		r.MustRegister(BytesTotal)
		r.MustRegister(PipelineErrors)
		r.MustRegister(CompressedRatio)
	})
}

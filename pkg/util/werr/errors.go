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

package werr

import (
	"github.com/cockroachdb/errors"
)

const (
	CanceledCode int32 = 10000
	TimeoutCode  int32 = 10001
)

// Define leaf errors here,
// WARN: take care to add new error,
// check whether you can use the errors below before adding a new one.
// Name: Err + related prefix + error name
var (
	// Buffer 相关错误。
	ErrBufferOverflow   = newWireError("buffer overflow", 1, false)
	ErrCapacityExceeded = newWireError("buffer capacity exceeded", 2, false)
	ErrInvalidCursor    = newWireError("invalid buffer cursor", 3, false)
	ErrBufferReleased   = newWireError("buffer already released", 4, false)

	// 编码相关错误。
	ErrMalformedVarint = newWireError("malformed varint", 100, false)
	ErrStringTooLong   = newWireError("string too long", 101, false)
	ErrValueOutOfRange = newWireError("value out of range", 102, false)

	// 帧相关错误。
	ErrFrameTooLarge  = newWireError("frame too large", 200, false)
	ErrFrameCorrupted = newWireError("frame corrupted", 201, false)

	// 参数相关错误。
	ErrParameterInvalid = newWireError("invalid parameter", 300, false)
	ErrParameterMissing = newWireError("missing parameter", 301, false)

	// IO 相关错误。
	ErrIoFailed      = newWireError("IO failed", 400, false)
	ErrIoUnexpectEOF = newWireError("unexpected EOF", 401, true)

	// 配置相关错误。
	ErrConfigLoadFailed = newWireError("load config failed", 500, false)
	ErrConfigInvalid    = newWireError("invalid config", 501, false)

	// Do NOT export this,
	// never allow programmer using this, keep only for converting unknown error to wireError
	errUnexpected = newWireError("unexpected error", (1<<16)-1, false)
)

type errorOption func(*wireError)

func WithDetail(detail string) errorOption {
	return func(err *wireError) {
		err.detail = detail
	}
}

type wireError struct {
	msg       string
	detail    string
	retriable bool
	errCode   int32
}

func newWireError(msg string, code int32, retriable bool, options ...errorOption) wireError {
	err := wireError{
		msg:       msg,
		detail:    msg,
		retriable: retriable,
		errCode:   code,
	}

	for _, option := range options {
		option(&err)
	}
	return err
}

func (e wireError) code() int32 {
	return e.errCode
}

func (e wireError) Error() string {
	return e.msg
}

func (e wireError) Detail() string {
	return e.detail
}

func (e wireError) Is(err error) bool {
	cause := errors.Cause(err)
	if cause, ok := cause.(wireError); ok {
		return e.errCode == cause.errCode
	}
	return false
}

package wire

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/lk2023060901/wirepack-go/pkg/util/werr"
)

type CodecSuite struct {
	suite.Suite
}

func (s *CodecSuite) roundTrip(write func(w *Writer) error, read func(r *Reader)) {
	// 同一条消息分别经过定长和可增长后端。
	region := make([]byte, 128*1024)
	fixed := NewFixed(region)
	s.Require().NoError(write(NewWriter(fixed)))
	read(NewReaderBytes(fixed.Bytes()))

	growable, err := NewGrowable(4, 0)
	s.Require().NoError(err)
	defer growable.Release()
	s.Require().NoError(write(NewWriter(growable)))
	read(NewReaderBytes(growable.Bytes()))
}

func (s *CodecSuite) TestUnsignedRoundTrip() {
	s.roundTrip(func(w *Writer) error {
		return werr.Combine(
			w.WriteUint16(0),
			w.WriteUint16(math.MaxUint16),
			w.WriteUint32(67824),
			w.WriteUint32(math.MaxUint32),
			w.WriteUint64(1<<56+1),
			w.WriteUint64(math.MaxUint64),
		)
	}, func(r *Reader) {
		v16, err := r.ReadUint16()
		s.NoError(err)
		s.Equal(uint16(0), v16)
		v16, err = r.ReadUint16()
		s.NoError(err)
		s.Equal(uint16(math.MaxUint16), v16)
		v32, err := r.ReadUint32()
		s.NoError(err)
		s.Equal(uint32(67824), v32)
		v32, err = r.ReadUint32()
		s.NoError(err)
		s.Equal(uint32(math.MaxUint32), v32)
		v64, err := r.ReadUint64()
		s.NoError(err)
		s.Equal(uint64(1<<56+1), v64)
		v64, err = r.ReadUint64()
		s.NoError(err)
		s.Equal(uint64(math.MaxUint64), v64)
	})
}

func (s *CodecSuite) TestSignedRoundTrip() {
	s.roundTrip(func(w *Writer) error {
		return werr.Combine(
			w.WriteInt8(-128),
			w.WriteInt8(127),
			w.WriteInt16(math.MinInt16),
			w.WriteInt16(-1),
			// 32 位幅值超出 16 位 varint 范围，按声明位宽编码不截断。
			w.WriteInt32(math.MinInt32),
			w.WriteInt32(math.MaxInt32),
			w.WriteInt64(math.MinInt64),
			w.WriteInt64(math.MaxInt64),
		)
	}, func(r *Reader) {
		v8, err := r.ReadInt8()
		s.NoError(err)
		s.Equal(int8(-128), v8)
		v8, err = r.ReadInt8()
		s.NoError(err)
		s.Equal(int8(127), v8)
		v16, err := r.ReadInt16()
		s.NoError(err)
		s.Equal(int16(math.MinInt16), v16)
		v16, err = r.ReadInt16()
		s.NoError(err)
		s.Equal(int16(-1), v16)
		v32, err := r.ReadInt32()
		s.NoError(err)
		s.Equal(int32(math.MinInt32), v32)
		v32, err = r.ReadInt32()
		s.NoError(err)
		s.Equal(int32(math.MaxInt32), v32)
		v64, err := r.ReadInt64()
		s.NoError(err)
		s.Equal(int64(math.MinInt64), v64)
		v64, err = r.ReadInt64()
		s.NoError(err)
		s.Equal(int64(math.MaxInt64), v64)
	})
}

func (s *CodecSuite) TestFloatRoundTrip() {
	s.roundTrip(func(w *Writer) error {
		return werr.Combine(
			w.WriteFloat32(0),
			w.WriteFloat32(-1.5),
			w.WriteFloat32(math.MaxFloat32),
			w.WriteFloat64(math.Pi),
			w.WriteFloat64(math.Inf(-1)),
			w.WriteFloat64(math.SmallestNonzeroFloat64),
		)
	}, func(r *Reader) {
		f32, err := r.ReadFloat32()
		s.NoError(err)
		s.Equal(float32(0), f32)
		f32, err = r.ReadFloat32()
		s.NoError(err)
		s.Equal(float32(-1.5), f32)
		f32, err = r.ReadFloat32()
		s.NoError(err)
		s.Equal(float32(math.MaxFloat32), f32)
		f64, err := r.ReadFloat64()
		s.NoError(err)
		s.Equal(math.Pi, f64)
		f64, err = r.ReadFloat64()
		s.NoError(err)
		s.True(math.IsInf(f64, -1))
		f64, err = r.ReadFloat64()
		s.NoError(err)
		s.Equal(math.SmallestNonzeroFloat64, f64)
	})
}

func (s *CodecSuite) TestFloatZeroIsOneByte() {
	buf := NewFixed(make([]byte, 16))
	w := NewWriter(buf)
	s.NoError(w.WriteFloat32(0))
	s.Equal(1, w.Len())
}

func (s *CodecSuite) TestBoolRoundTrip() {
	s.roundTrip(func(w *Writer) error {
		return werr.Combine(w.WriteBool(true), w.WriteBool(false))
	}, func(r *Reader) {
		v, err := r.ReadBool()
		s.NoError(err)
		s.True(v)
		v, err = r.ReadBool()
		s.NoError(err)
		s.False(v)
	})

	// 读取侧约定：任何非零字节都是 true。
	v, err := NewReaderBytes([]byte{0x7F}).ReadBool()
	s.NoError(err)
	s.True(v)
}

func (s *CodecSuite) TestStringRoundTrip() {
	multibyte := "弹幕消息 🎉 — ütf8"
	s.roundTrip(func(w *Writer) error {
		return werr.Combine(
			w.WriteString(multibyte),
			w.WriteString(""),
			w.WriteString(strings.Repeat("x", MaxStringLen)),
		)
	}, func(r *Reader) {
		v, err := r.ReadString()
		s.NoError(err)
		s.Equal(multibyte, v)
		v, err = r.ReadString()
		s.NoError(err)
		s.Equal("", v)
		v, err = r.ReadString()
		s.NoError(err)
		s.Equal(strings.Repeat("x", MaxStringLen), v)
	})
}

// TestEmptyStringEncoding 固化“空与缺失同编码”的有损坍缩：
// 空字符串编码为单个零长度前缀字节，读取侧一律还原为空字符串。
func (s *CodecSuite) TestEmptyStringEncoding() {
	buf := NewFixed(make([]byte, 4))
	w := NewWriter(buf)
	s.NoError(w.WriteString(""))
	s.Equal([]byte{0x00}, w.Bytes())
}

func (s *CodecSuite) TestStringTooLong() {
	buf, err := NewGrowable(0, 0)
	s.NoError(err)
	defer buf.Release()

	err = NewWriter(buf).WriteString(strings.Repeat("x", MaxStringLen+1))
	s.ErrorIs(err, werr.ErrStringTooLong)
}

func (s *CodecSuite) TestBytesRoundTrip() {
	raw := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	s.roundTrip(func(w *Writer) error {
		return werr.Combine(
			w.WriteBytes(raw),
			w.WriteSizedBytes(raw),
			w.WriteSizedBytes(nil),
		)
	}, func(r *Reader) {
		dst := make([]byte, len(raw))
		s.NoError(r.ReadBytes(dst))
		s.Equal(raw, dst)

		sized, err := r.ReadSizedBytes()
		s.NoError(err)
		s.Equal(raw, sized)

		sized, err = r.ReadSizedBytes()
		s.NoError(err)
		s.Nil(sized)

		s.Equal(0, r.Remaining())
	})
}

func (s *CodecSuite) TestReadPastEnd() {
	r := NewReaderBytes([]byte{0xF9})
	_, err := r.ReadUint32()
	s.ErrorIs(err, werr.ErrBufferOverflow)

	r = NewReaderBytes(nil)
	_, err = r.ReadBool()
	s.ErrorIs(err, werr.ErrInvalidCursor)
}

func (s *CodecSuite) TestBase64RoundTrip() {
	msg := testMessage{ID: 42, OK: true, Name: "garden"}
	text, err := MarshalBase64(&msg)
	s.NoError(err)

	var got testMessage
	s.NoError(UnmarshalBase64(text, &got))
	s.Equal(msg, got)

	_, err = FromBase64("not*base64*")
	s.ErrorIs(err, werr.ErrParameterInvalid)
}

func TestCodec(t *testing.T) {
	suite.Run(t, new(CodecSuite))
}

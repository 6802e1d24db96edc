package framer

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/lk2023060901/wirepack-go/pkg/util/werr"
	"github.com/lk2023060901/wirepack-go/pkg/wire"
)

type FramerSuite struct {
	suite.Suite
}

func TestFramerSuite(t *testing.T) {
	suite.Run(t, new(FramerSuite))
}

func (s *FramerSuite) TestEnvelopeRoundTrip() {
	f := NewLengthPrefixedFramer(0)

	in := &Envelope{
		Header: Header{
			Op:        42,
			Seq:       1001,
			Flags:     FlagCompressed,
			Timestamp: 1724563200123,
		},
		Payload: []byte("hello, frame"),
	}

	var buf bytes.Buffer
	s.Require().NoError(f.WriteFrame(&buf, in))

	out, err := f.ReadFrame(&buf)
	s.Require().NoError(err)
	s.Equal(in.Header, out.Header)
	s.Equal(in.Payload, out.Payload)
	s.Equal(uint32(len(in.Payload)), out.Size)
}

func (s *FramerSuite) TestEmptyPayload() {
	f := NewLengthPrefixedFramer(0)

	var buf bytes.Buffer
	s.Require().NoError(f.WriteFrame(&buf, &Envelope{
		Header: Header{Op: 7},
	}))

	out, err := f.ReadFrame(&buf)
	s.Require().NoError(err)
	s.Equal(uint32(7), out.Header.Op)
	s.Empty(out.Payload)
	s.Zero(out.Size)
}

func (s *FramerSuite) TestWriteNilEnvelope() {
	f := NewLengthPrefixedFramer(0)

	var buf bytes.Buffer
	err := f.WriteFrame(&buf, nil)
	s.ErrorIs(err, werr.ErrParameterMissing)
}

func (s *FramerSuite) TestWriteFrameTooLarge() {
	f := NewLengthPrefixedFramer(16)

	var buf bytes.Buffer
	err := f.WriteFrame(&buf, &Envelope{
		Payload: bytes.Repeat([]byte{0xAB}, 64),
	})
	s.ErrorIs(err, werr.ErrFrameTooLarge)
	s.Zero(buf.Len())
}

func (s *FramerSuite) TestReadFrameTooLarge() {
	f := NewLengthPrefixedFramer(16)

	var header [4]byte
	binary.BigEndian.PutUint32(header[:], 1<<20)

	_, err := f.ReadFrame(bytes.NewReader(header[:]))
	s.ErrorIs(err, werr.ErrFrameTooLarge)
}

func (s *FramerSuite) TestZeroLengthFrame() {
	f := NewLengthPrefixedFramer(0)

	_, err := f.ReadFrame(bytes.NewReader([]byte{0, 0, 0, 0}))
	s.ErrorIs(err, werr.ErrFrameCorrupted)
}

func (s *FramerSuite) TestTruncatedBody() {
	f := NewLengthPrefixedFramer(0)

	// 头部声明 10 字节帧体，实际只给 3 字节。
	data := []byte{0, 0, 0, 10, 1, 2, 3}
	_, err := f.ReadFrame(bytes.NewReader(data))
	s.Error(err)
}

// reserveCountingBuffer 统计 Reserve 调用次数，
// 用于验证序列化在首次失败后不再继续尝试写入。
type reserveCountingBuffer struct {
	*wire.FixedBuffer
	reserveCalls int
}

func (b *reserveCountingBuffer) Reserve(n int) error {
	b.reserveCalls++
	return b.FixedBuffer.Reserve(n)
}

func (s *FramerSuite) TestSerializeStopsAtFirstFailure() {
	// 1 字节区域：Op 写入成功（1 字节），Seq 需要 2 字节失败。
	buf := &reserveCountingBuffer{FixedBuffer: wire.NewFixed(make([]byte, 1))}
	w := wire.NewWriter(buf)

	h := &Header{Op: 5, Seq: 1000, Flags: 1000, Timestamp: 1000}
	err := h.SerializeTo(w)
	s.ErrorIs(err, werr.ErrBufferOverflow)

	// Op + Seq 各一次，Flags/Timestamp 不应再被尝试。
	s.Equal(2, buf.reserveCalls)
}

// mismatchedEnvelope 写入与 payload 实际长度不一致的 Size 字段。
type mismatchedEnvelope struct{}

func (mismatchedEnvelope) SerializeTo(w *wire.Writer) error {
	h := Header{Op: 1}
	return werr.Combine(
		h.SerializeTo(w),
		w.WriteUint32(5),
		w.WriteSizedBytes([]byte{1, 2, 3}),
	)
}

func (mismatchedEnvelope) DeserializeFrom(r *wire.Reader) error {
	return nil
}

func (s *FramerSuite) TestSizeMismatchIsCorrupted() {
	body, err := wire.Marshal(mismatchedEnvelope{}, wire.DefaultInitialSize, 0)
	s.Require().NoError(err)

	var buf bytes.Buffer
	var header [4]byte
	binary.BigEndian.PutUint32(header[:], uint32(len(body)))
	buf.Write(header[:])
	buf.Write(body)

	f := NewLengthPrefixedFramer(0)
	_, err = f.ReadFrame(&buf)
	s.ErrorIs(err, werr.ErrFrameCorrupted)
}

func (s *FramerSuite) TestSizeAutoFixedOnWrite() {
	env := &Envelope{
		Size:    999, // 写入时应被实际 payload 长度覆盖
		Payload: []byte("abc"),
	}

	var buf bytes.Buffer
	f := NewLengthPrefixedFramer(0)
	s.Require().NoError(f.WriteFrame(&buf, env))
	s.Equal(uint32(3), env.Size)

	out, err := f.ReadFrame(&buf)
	s.Require().NoError(err)
	s.Equal(uint32(3), out.Size)
}

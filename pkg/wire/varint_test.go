package wire

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/suite"

	"github.com/lk2023060901/wirepack-go/pkg/util/werr"
)

type VarintSuite struct {
	suite.Suite
}

// TestLiteralEncodings 按表公式逐字节校验边界值的编码。
func (s *VarintSuite) TestLiteralEncodings() {
	cases := []struct {
		v    uint64
		want []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{240, []byte{0xF0}},
		{241, []byte{0xF1, 0x01}},
		{2287, []byte{0xF8, 0xFF}},
		{2288, []byte{0xF9, 0x00, 0x00}},
		{67823, []byte{0xF9, 0xFF, 0xFF}},
		{67824, []byte{0xFA, 0xF0, 0x08, 0x01}},
	}

	for _, c := range cases {
		dst := make([]byte, MaxUvarintLen64)
		n := PutUvarint(dst, c.v)
		s.Equal(len(c.want), n, "value %d", c.v)
		s.Equal(c.want, dst[:n], "value %d", c.v)
		s.Equal(len(c.want), UvarintLen(c.v), "value %d", c.v)
	}
}

// TestBoundaryRoundTrip 覆盖每个编码长度跃迁点两侧的往返。
func (s *VarintSuite) TestBoundaryRoundTrip() {
	values := []uint64{
		0, 1, 239, 240, 241, 2286, 2287, 2288, 67822, 67823, 67824,
		1<<24 - 1, 1 << 24, 1<<24 + 1,
		1<<32 - 1, 1 << 32, 1<<32 + 1,
		1<<40 - 1, 1 << 40, 1<<40 + 1,
		1<<48 - 1, 1 << 48, 1<<48 + 1,
		1<<56 - 1, 1 << 56, 1<<56 + 1,
		math.MaxUint64 - 1, math.MaxUint64,
	}

	for _, v := range values {
		dst := make([]byte, MaxUvarintLen64)
		n := PutUvarint(dst, v)
		s.Equal(UvarintLen(v), n, "value %d", v)

		got, m, err := Uvarint64(dst[:n])
		s.NoError(err, "value %d", v)
		s.Equal(n, m, "value %d", v)
		s.Equal(v, got, "value %d", v)
	}
}

func (s *VarintSuite) TestNarrowWidthRoundTrip() {
	for _, v := range []uint16{0, 1, 240, 241, 2287, 2288, math.MaxUint16} {
		dst := make([]byte, MaxUvarintLen16)
		n := PutUvarint(dst, uint64(v))
		got, m, err := Uvarint16(dst[:n])
		s.NoError(err)
		s.Equal(n, m)
		s.Equal(v, got)
	}

	for _, v := range []uint32{0, 67824, 1<<24 + 1, math.MaxUint32} {
		dst := make([]byte, MaxUvarintLen32)
		n := PutUvarint(dst, uint64(v))
		got, m, err := Uvarint32(dst[:n])
		s.NoError(err)
		s.Equal(n, m)
		s.Equal(v, got)
	}
}

// TestMalformedSelector 校验窄位宽解码对超范围首字节的拒绝。
func (s *VarintSuite) TestMalformedSelector() {
	// 16 位：250–255 不属于任何合法分支。
	for _, b := range []byte{250, 251, 252, 253, 254, 255} {
		src := make([]byte, MaxUvarintLen64)
		src[0] = b
		_, _, err := Uvarint16(src)
		s.ErrorIs(err, werr.ErrMalformedVarint, "selector %d", b)
	}

	// 32 位：252–255 越界，251 合法。
	for _, b := range []byte{252, 253, 254, 255} {
		src := make([]byte, MaxUvarintLen64)
		src[0] = b
		_, _, err := Uvarint32(src)
		s.ErrorIs(err, werr.ErrMalformedVarint, "selector %d", b)
	}

	// 249 分支能编码到 67823，超过 65535 的值在 16 位解码时超范围。
	dst := make([]byte, MaxUvarintLen64)
	n := PutUvarint(dst, 67823)
	_, _, err := Uvarint16(dst[:n])
	s.ErrorIs(err, werr.ErrValueOutOfRange)
}

func (s *VarintSuite) TestTruncatedInput() {
	_, _, err := Uvarint64(nil)
	s.ErrorIs(err, werr.ErrBufferOverflow)

	dst := make([]byte, MaxUvarintLen64)
	n := PutUvarint(dst, 1<<32)
	for cut := 1; cut < n; cut++ {
		_, _, err := Uvarint64(dst[:cut])
		s.ErrorIs(err, werr.ErrBufferOverflow, "cut %d", cut)
	}
}

func TestVarint(t *testing.T) {
	suite.Run(t, new(VarintSuite))
}

// TestVarintProperties 用随机值补充边界表之外的往返覆盖。
func TestVarintProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 1000

	properties := gopter.NewProperties(parameters)

	properties.Property("uvarint64 round trip", prop.ForAll(
		func(v uint64) bool {
			dst := make([]byte, MaxUvarintLen64)
			n := PutUvarint(dst, v)
			got, m, err := Uvarint64(dst[:n])
			return err == nil && m == n && n == UvarintLen(v) && got == v
		},
		gen.UInt64(),
	))

	properties.Property("encoding is self-delimiting with trailing garbage", prop.ForAll(
		func(v uint64, garbage uint8) bool {
			dst := make([]byte, MaxUvarintLen64+1)
			n := PutUvarint(dst, v)
			dst[n] = byte(garbage)
			got, m, err := Uvarint64(dst[:n+1])
			return err == nil && m == n && got == v
		},
		gen.UInt64(),
		gen.UInt8(),
	))

	properties.TestingRun(t)
}

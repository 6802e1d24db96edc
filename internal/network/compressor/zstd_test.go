package compressor

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ZstdSuite struct {
	suite.Suite
}

func TestZstdSuite(t *testing.T) {
	suite.Run(t, new(ZstdSuite))
}

func (s *ZstdSuite) TestRoundTrip() {
	c, err := NewZstdCompressor()
	s.Require().NoError(err)
	defer c.Close()

	src := bytes.Repeat([]byte("wirepack"), 1024)
	packet, compressed, err := c.Compress(nil, src)
	s.Require().NoError(err)
	s.True(compressed)
	s.Less(len(packet), len(src))

	plain, err := c.Decompress(nil, packet)
	s.Require().NoError(err)
	s.Equal(src, plain)
}

func (s *ZstdSuite) TestBelowThresholdPassesThrough() {
	c, err := NewZstdCompressor()
	s.Require().NoError(err)
	defer c.Close()
	c.SetMinCompressSize(1 << 10)

	src := []byte("tiny")
	packet, compressed, err := c.Compress(nil, src)
	s.Require().NoError(err)
	s.False(compressed)
	s.Equal(src, packet)
}

func (s *ZstdSuite) TestNopCompressorNeverCompresses() {
	src := []byte("payload")

	packet, compressed, err := NopCompressor{}.Compress(nil, src)
	s.Require().NoError(err)
	s.False(compressed)
	s.Equal(src, packet)

	plain, err := NopCompressor{}.Decompress(nil, packet)
	s.Require().NoError(err)
	s.Equal(src, plain)
}

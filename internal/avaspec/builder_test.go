package avaspec

import (
	"bytes"
	"encoding/binary"
	"math"
)

// fileBuilder assembles synthetic AVS/STR buffers for the decoder tests.
type fileBuilder struct {
	buf bytes.Buffer
}

func (b *fileBuilder) bytes() []byte { return b.buf.Bytes() }

func (b *fileBuilder) u8(v uint8)   { b.buf.WriteByte(v) }
func (b *fileBuilder) u16(v uint16) { binary.Write(&b.buf, binary.LittleEndian, v) }
func (b *fileBuilder) u32(v uint32) { binary.Write(&b.buf, binary.LittleEndian, v) }
func (b *fileBuilder) f32(v float64) {
	binary.Write(&b.buf, binary.LittleEndian, math.Float32bits(float32(v)))
}
func (b *fileBuilder) f64(v float64) {
	binary.Write(&b.buf, binary.LittleEndian, math.Float64bits(v))
}

// fixed writes s into an n-byte NUL-padded character field.
func (b *fileBuilder) fixed(s string, n int) {
	field := make([]byte, n)
	copy(field, s)
	b.buf.Write(field)
}

func (b *fileBuilder) raw(p []byte) { b.buf.Write(p) }

func (b *fileBuilder) avsPreamble(version string, channels uint8) {
	b.raw([]byte("AVS"))
	b.raw([]byte(version))
	b.u8(channels)
}

func (b *fileBuilder) strPreamble(version string, frames uint16) {
	b.raw([]byte("STR"))
	b.raw([]byte(version))
	b.u16(frames)
}

// testChannel is the input to descriptor/payload construction.
type testChannel struct {
	serial     string
	name       string
	index      uint8
	mode       uint8
	pixels     uint32
	exposure   float64
	averages   uint32
	timestamp  uint32
	coeffs     []float64
	correction []float64
	dark       []float64
	reference  []float64
}

// descriptor writes one channel metadata block. wide selects float64
// optional arrays (STR layout) instead of float32 (AVS layout).
func (b *fileBuilder) descriptor(ch testChannel, wide bool) {
	b.fixed(ch.serial, serialLen)
	b.fixed(ch.name, userNameLen)
	b.u8(ch.index)
	b.u8(ch.mode)
	b.f32(ch.exposure)
	b.u32(ch.pixels)
	b.u32(ch.averages)
	b.u32(ch.timestamp)
	b.u8(uint8(len(ch.coeffs)))
	for _, c := range ch.coeffs {
		b.f64(c)
	}
	var flags uint8
	if ch.correction != nil {
		flags |= flagCorrection
	}
	if ch.dark != nil {
		flags |= flagDark
	}
	if ch.reference != nil {
		flags |= flagReference
	}
	b.u8(flags)
	for _, v := range ch.correction {
		b.f64(v)
	}
	b.samples(ch.dark, wide)
	b.samples(ch.reference, wide)
}

func (b *fileBuilder) samples(vals []float64, wide bool) {
	for _, v := range vals {
		if wide {
			b.f64(v)
		} else {
			b.f32(v)
		}
	}
}

// avsFile builds a complete multichannel buffer: preamble, then one
// descriptor+scope block per channel.
func avsFile(version string, channels []testChannel, scopes [][]float64) []byte {
	var b fileBuilder
	b.avsPreamble(version, uint8(len(channels)))
	for i, ch := range channels {
		b.descriptor(ch, false)
		b.samples(scopes[i], false)
	}
	return b.bytes()
}

// strFile builds a complete store-to-RAM buffer: preamble, shared
// descriptor, then (delay, frame) records.
func strFile(version string, ch testChannel, delays []uint32, frames [][]float64) []byte {
	var b fileBuilder
	b.strPreamble(version, uint16(len(frames)))
	b.descriptor(ch, true)
	for i := range frames {
		b.u32(delays[i])
		b.samples(frames[i], true)
	}
	return b.bytes()
}

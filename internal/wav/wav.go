// Package wav encodes mono float samples as canonical uncompressed 16-bit
// PCM WAV images.
package wav

import (
	"encoding/binary"
	"errors"
)

const (
	headerSize     = 44
	bytesPerSample = 2
)

// Header describes the fixed 44-byte RIFF/WAVE header of an encoded file.
type Header struct {
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataSize      uint32
}

// Encode16LE serializes samples as a complete mono 16-bit PCM WAV image.
// Each sample is clamped to [-1, 1] and quantized by 32767 for both signs.
// The buffer length is known up front, so the header is computed directly
// rather than patched afterwards.
func Encode16LE(samples []float64, sampleRate int) []byte {
	dataSize := len(samples) * bytesPerSample
	out := make([]byte, headerSize+dataSize)
	putHeader(out, sampleRate, dataSize)
	for i, s := range samples {
		if s > 1 {
			s = 1
		}
		if s < -1 {
			s = -1
		}
		binary.LittleEndian.PutUint16(out[headerSize+i*bytesPerSample:], uint16(int16(s*32767)))
	}
	return out
}

func putHeader(dst []byte, sampleRate, dataSize int) {
	copy(dst[0:], "RIFF")
	binary.LittleEndian.PutUint32(dst[4:], uint32(36+dataSize))
	copy(dst[8:], "WAVE")
	copy(dst[12:], "fmt ")
	binary.LittleEndian.PutUint32(dst[16:], 16)
	binary.LittleEndian.PutUint16(dst[20:], 1) // PCM
	binary.LittleEndian.PutUint16(dst[22:], 1) // mono
	binary.LittleEndian.PutUint32(dst[24:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(dst[28:], uint32(sampleRate*bytesPerSample))
	binary.LittleEndian.PutUint16(dst[32:], bytesPerSample)
	binary.LittleEndian.PutUint16(dst[34:], 16)
	copy(dst[36:], "data")
	binary.LittleEndian.PutUint32(dst[40:], uint32(dataSize))
}

// DecodeHeader reads back the fixed header of an encoded image.
func DecodeHeader(data []byte) (Header, error) {
	if len(data) < headerSize {
		return Header{}, errors.New("wav: image shorter than header")
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" ||
		string(data[12:16]) != "fmt " || string(data[36:40]) != "data" {
		return Header{}, errors.New("wav: bad chunk tags")
	}
	return Header{
		AudioFormat:   binary.LittleEndian.Uint16(data[20:]),
		NumChannels:   binary.LittleEndian.Uint16(data[22:]),
		SampleRate:    binary.LittleEndian.Uint32(data[24:]),
		ByteRate:      binary.LittleEndian.Uint32(data[28:]),
		BlockAlign:    binary.LittleEndian.Uint16(data[32:]),
		BitsPerSample: binary.LittleEndian.Uint16(data[34:]),
		DataSize:      binary.LittleEndian.Uint32(data[40:]),
	}, nil
}

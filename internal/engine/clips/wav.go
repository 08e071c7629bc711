package clips

import (
	"bytes"
	"encoding/binary"
	"time"
)

// PCM layout returned by the speech model: signed 16-bit little-endian mono.
const (
	SampleRate    = 24000
	Channels      = 1
	BitsPerSample = 16
	wavHeaderSize = 44
)

// EncodeWAV prefixes raw linear PCM with a canonical 44-byte RIFF/WAVE
// header (PCM format 1).
func EncodeWAV(pcm []byte, sampleRate, channels, bitsPerSample int) []byte {
	blockAlign := channels * bitsPerSample / 8
	byteRate := sampleRate * blockAlign

	var buf bytes.Buffer
	buf.Grow(wavHeaderSize + len(pcm))
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1))
	binary.Write(&buf, binary.LittleEndian, uint16(channels))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&buf, binary.LittleEndian, uint16(bitsPerSample))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)
	return buf.Bytes()
}

// PCMDuration is the playback length of n bytes of PCM in the given layout.
func PCMDuration(n, sampleRate, channels, bitsPerSample int) time.Duration {
	bytesPerSec := sampleRate * channels * bitsPerSample / 8
	if bytesPerSec == 0 {
		return 0
	}
	return time.Duration(n) * time.Second / time.Duration(bytesPerSec)
}

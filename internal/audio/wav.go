// Package audio wraps raw linear PCM in a minimal WAV container.
// The Gemini TTS model returns headerless 24kHz 16-bit mono PCM; adding a
// 44-byte RIFF header makes it playable by any standard audio consumer.
package audio

import (
	"encoding/binary"
	"fmt"
)

const (
	// Gemini TTS fixed output format
	DefaultSampleRate    = 24000
	DefaultNumChannels   = 1
	DefaultBitsPerSample = 16

	headerSize = 44
)

// Format holds the four parameters a WAV header declares about its payload.
type Format struct {
	SampleRate    int
	NumChannels   int
	BitsPerSample int
	DataSize      int
}

// PCMToWAV prepends a 44-byte RIFF/WAVE header to raw PCM sample data.
// Pure function: empty input yields a structurally valid, silent container.
func PCMToWAV(pcm []byte, sampleRate, numChannels, bitsPerSample int) []byte {
	byteRate := sampleRate * numChannels * bitsPerSample / 8
	blockAlign := numChannels * bitsPerSample / 8
	dataSize := len(pcm)

	wav := make([]byte, headerSize+dataSize)

	// RIFF header
	copy(wav[0:4], "RIFF")
	binary.LittleEndian.PutUint32(wav[4:8], uint32(headerSize+dataSize-8))
	copy(wav[8:12], "WAVE")

	// fmt subchunk
	copy(wav[12:16], "fmt ")
	binary.LittleEndian.PutUint32(wav[16:20], 16) // subchunk1 size (PCM)
	binary.LittleEndian.PutUint16(wav[20:22], 1)  // audio format (1 = PCM)
	binary.LittleEndian.PutUint16(wav[22:24], uint16(numChannels))
	binary.LittleEndian.PutUint32(wav[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(wav[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(wav[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(wav[34:36], uint16(bitsPerSample))

	// data subchunk
	copy(wav[36:40], "data")
	binary.LittleEndian.PutUint32(wav[40:44], uint32(dataSize))
	copy(wav[headerSize:], pcm)

	return wav
}

// EncodeTTS wraps Gemini TTS output using its fixed format parameters.
func EncodeTTS(pcm []byte) []byte {
	return PCMToWAV(pcm, DefaultSampleRate, DefaultNumChannels, DefaultBitsPerSample)
}

// ParseHeader reads the format parameters back out of a WAV produced by
// PCMToWAV. Only the minimal 44-byte layout is understood.
func ParseHeader(wav []byte) (Format, error) {
	if len(wav) < headerSize {
		return Format{}, fmt.Errorf("wav data too short: %d bytes", len(wav))
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		return Format{}, fmt.Errorf("not a RIFF/WAVE container")
	}
	if string(wav[12:16]) != "fmt " || string(wav[36:40]) != "data" {
		return Format{}, fmt.Errorf("unexpected subchunk layout")
	}
	if audioFormat := binary.LittleEndian.Uint16(wav[20:22]); audioFormat != 1 {
		return Format{}, fmt.Errorf("not linear PCM (format tag %d)", audioFormat)
	}

	return Format{
		SampleRate:    int(binary.LittleEndian.Uint32(wav[24:28])),
		NumChannels:   int(binary.LittleEndian.Uint16(wav[22:24])),
		BitsPerSample: int(binary.LittleEndian.Uint16(wav[34:36])),
		DataSize:      int(binary.LittleEndian.Uint32(wav[40:44])),
	}, nil
}

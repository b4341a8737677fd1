package voice

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAVDump writes recognizer input to a 16-bit mono WAV file for debugging
// recognition problems.
type WAVDump struct {
	f   *os.File
	enc *wav.Encoder
	buf *audio.IntBuffer
}

// CreateWAVDump creates (or truncates) path and prepares a WAV encoder.
func CreateWAVDump(path string, sampleRate int) (*WAVDump, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create audio dump: %w", err)
	}
	return &WAVDump{
		f:   f,
		enc: wav.NewEncoder(f, sampleRate, 16, 1, 1),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
			SourceBitDepth: 16,
		},
	}, nil
}

// WriteBlock appends one little-endian int16 PCM block.
func (d *WAVDump) WriteBlock(block []byte) error {
	n := len(block) / 2
	if cap(d.buf.Data) < n {
		d.buf.Data = make([]int, n)
	}
	d.buf.Data = d.buf.Data[:n]
	for i := 0; i < n; i++ {
		d.buf.Data[i] = int(int16(binary.LittleEndian.Uint16(block[2*i:])))
	}
	return d.enc.Write(d.buf)
}

// Close finalizes the WAV header and closes the file.
func (d *WAVDump) Close() error {
	if err := d.enc.Close(); err != nil {
		d.f.Close()
		return fmt.Errorf("finalize audio dump: %w", err)
	}
	return d.f.Close()
}

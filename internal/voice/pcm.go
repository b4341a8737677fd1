package voice

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
)

// EncodePCM16 converts int16 samples to a little-endian byte block.
func EncodePCM16(samples []int16) []byte {
	block := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(block[2*i:], uint16(s))
	}
	return block
}

// DecodeTranscript extracts the text of a Kaldi-style JSON result,
// {"text": "..."}.
func DecodeTranscript(raw []byte) (string, error) {
	var res struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &res); err != nil {
		return "", fmt.Errorf("decode recognizer result: %w", err)
	}
	return res.Text, nil
}

package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectCodec(t *testing.T) {
	ftyp := []byte{0, 0, 0, 0x20, 'f', 't', 'y', 'p', 'M', '4', 'A', ' '}
	tests := []struct {
		name string
		url  string
		data []byte
		want string
	}{
		{"mp3 extension", "https://cdn/x/song.mp3", nil, codecMP3},
		{"mp4 extension", "https://aac.saavncdn.com/1/abc_320.mp4", nil, codecAAC},
		{"m4a uppercase", "https://cdn/SONG.M4A?sig=1", nil, codecAAC},
		{"sniff ftyp", "https://cdn/stream", ftyp, codecAAC},
		{"sniff id3", "https://cdn/stream", []byte("ID3\x04\x00"), codecMP3},
		{"sniff frame sync", "https://cdn/stream", []byte{0xFF, 0xFB, 0x90}, codecMP3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := detectCodec(tt.url, tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := detectCodec("https://cdn/stream", []byte("<html>"))
	assert.Error(t, err)
}

func TestPCM16ToStereo(t *testing.T) {
	dst := make([][2]float64, 4)

	n := pcm16ToStereo(dst, []int16{16384, -16384, 0, 32767}, 2)
	require.Equal(t, 2, n)
	assert.InDelta(t, 0.5, dst[0][0], 1e-9)
	assert.InDelta(t, -0.5, dst[0][1], 1e-9)

	n = pcm16ToStereo(dst, []int16{16384, -32768}, 1)
	require.Equal(t, 2, n)
	assert.Equal(t, dst[0][0], dst[0][1])
	assert.InDelta(t, -1.0, dst[1][1], 1e-9)
}

type finiteStreamer struct {
	left int
}

func (f *finiteStreamer) Stream(samples [][2]float64) (int, bool) {
	if f.left == 0 {
		return 0, false
	}
	n := min(len(samples), f.left)
	for i := range n {
		samples[i] = [2]float64{1, 1}
	}
	f.left -= n
	return n, true
}

func (f *finiteStreamer) Err() error { return nil }

func TestEndWatch_FiresOnceAndFeedsSilence(t *testing.T) {
	fired := make(chan struct{}, 4)
	w := &endWatch{src: &finiteStreamer{left: 3}, onEnd: func() { fired <- struct{}{} }}
	buf := make([][2]float64, 4)

	n, ok := w.Stream(buf)
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	for range 3 {
		n, ok = w.Stream(buf)
		assert.True(t, ok)
		assert.Equal(t, len(buf), n)
		assert.Equal(t, [2]float64{}, buf[0])
	}

	<-fired
	assert.Empty(t, fired, "end fires once per pass")
}

func TestLevelToVolume(t *testing.T) {
	assert.InDelta(t, 0, levelToVolume(1), 1e-9)
	assert.InDelta(t, -1, levelToVolume(0.5), 1e-9)
	assert.InDelta(t, -2, levelToVolume(0.25), 1e-9)
	assert.InDelta(t, -10, levelToVolume(0), 1e-9)
}

package player

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/go-faad2"
	"github.com/llehouerou/go-mp3"
)

// Container formats served by the catalog.
const (
	codecMP3 = "mp3"
	codecAAC = "aac"
)

// memSource is an in-memory, seekable copy of a fetched source.
type memSource struct {
	*bytes.Reader
}

func (memSource) Close() error { return nil }

func newMemSource(data []byte) memSource {
	return memSource{Reader: bytes.NewReader(data)}
}

// detectCodec picks a decoder from the URL extension, falling back to the
// leading bytes of the data.
func detectCodec(rawURL string, data []byte) (string, error) {
	if u, err := url.Parse(rawURL); err == nil {
		switch strings.ToLower(path.Ext(u.Path)) {
		case ".mp3":
			return codecMP3, nil
		case ".mp4", ".m4a", ".aac":
			return codecAAC, nil
		}
	}
	switch {
	case len(data) >= 8 && string(data[4:8]) == "ftyp":
		return codecAAC, nil
	case len(data) >= 3 && string(data[:3]) == "ID3":
		return codecMP3, nil
	case len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		return codecMP3, nil
	}
	return "", errors.New("unrecognized audio format")
}

// decode returns a seekable stream over data.
func decode(rawURL string, data []byte) (beep.StreamSeekCloser, beep.Format, error) {
	codec, err := detectCodec(rawURL, data)
	if err != nil {
		return nil, beep.Format{}, err
	}
	src := newMemSource(data)
	switch codec {
	case codecMP3:
		return decodeMP3(src)
	default:
		return decodeAAC(src)
	}
}

// pcm16ToStereo converts interleaved 16-bit samples into beep frames,
// duplicating mono input to both channels. It returns the frames written.
func pcm16ToStereo(dst [][2]float64, src []int16, channels int) int {
	n := 0
	if channels == 2 {
		for i := 0; i+1 < len(src) && n < len(dst); i += 2 {
			dst[n][0] = float64(src[i]) / 32768.0
			dst[n][1] = float64(src[i+1]) / 32768.0
			n++
		}
		return n
	}
	for i := 0; i < len(src) && n < len(dst); i++ {
		v := float64(src[i]) / 32768.0
		dst[n][0] = v
		dst[n][1] = v
		n++
	}
	return n
}

// mp3Stream adapts llehouerou/go-mp3 to beep.StreamSeekCloser.
type mp3Stream struct {
	decoder *mp3.Decoder
	closer  io.Closer
	err     error
	raw     []byte
	pcm     []int16
}

func decodeMP3(src memSource) (beep.StreamSeekCloser, beep.Format, error) {
	decoder, err := mp3.NewDecoder(src)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("mp3: %w", err)
	}
	rate := decoder.SampleRate()
	if rate == 0 {
		return nil, beep.Format{}, errors.New("mp3: invalid sample rate")
	}
	format := beep.Format{
		SampleRate:  beep.SampleRate(rate),
		NumChannels: 2, // go-mp3 always outputs stereo
		Precision:   2,
	}
	return &mp3Stream{decoder: decoder, closer: src}, format, nil
}

func (d *mp3Stream) Stream(samples [][2]float64) (int, bool) {
	if d.err != nil {
		return 0, false
	}
	need := len(samples) * 4
	if len(d.raw) < need {
		d.raw = make([]byte, need)
		d.pcm = make([]int16, need/2)
	}
	read, err := io.ReadFull(d.decoder, d.raw[:need])
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		d.err = err
		return 0, false
	}
	words := read / 2
	if words < 2 {
		return 0, false
	}
	for i := range words {
		d.pcm[i] = int16(binary.LittleEndian.Uint16(d.raw[i*2:])) //nolint:gosec // audio samples
	}
	return pcm16ToStereo(samples, d.pcm[:words], 2), true
}

func (d *mp3Stream) Err() error { return d.err }

func (d *mp3Stream) Len() int {
	return max(int(d.decoder.SampleCount()), 0)
}

func (d *mp3Stream) Position() int {
	return int(d.decoder.SamplePosition())
}

func (d *mp3Stream) Seek(p int) error {
	p = min(max(p, 0), d.Len())
	if err := d.decoder.SeekToSample(int64(p)); err != nil {
		return err
	}
	d.err = nil
	return nil
}

func (d *mp3Stream) Close() error { return d.closer.Close() }

// aacStream adapts the go-faad2 M4A reader to beep.StreamSeekCloser.
type aacStream struct {
	reader   *faad2.M4AReader
	closer   io.Closer
	err      error
	pcm      []int16
	totalLen int
}

func decodeAAC(src memSource) (beep.StreamSeekCloser, beep.Format, error) {
	reader, err := faad2.OpenM4A(context.Background(), src)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("aac: %w", err)
	}
	rate := reader.SampleRate()
	format := beep.Format{
		SampleRate:  beep.SampleRate(rate),
		NumChannels: 2,
		Precision:   2,
	}
	return &aacStream{
		reader:   reader,
		closer:   src,
		totalLen: int(reader.Duration().Seconds() * float64(rate)),
	}, format, nil
}

func (d *aacStream) Stream(samples [][2]float64) (int, bool) {
	if d.err != nil {
		return 0, false
	}
	channels := int(d.reader.Channels())
	need := len(samples) * channels
	if len(d.pcm) < need {
		d.pcm = make([]int16, need)
	}
	read, err := d.reader.Read(context.Background(), d.pcm[:need])
	if err != nil && !errors.Is(err, io.EOF) {
		d.err = err
		return 0, false
	}
	if read == 0 {
		return 0, false
	}
	return pcm16ToStereo(samples, d.pcm[:read], channels), true
}

func (d *aacStream) Err() error { return d.err }

func (d *aacStream) Len() int { return d.totalLen }

func (d *aacStream) Position() int {
	return int(d.reader.Position().Seconds() * float64(d.reader.SampleRate()))
}

func (d *aacStream) Seek(p int) error {
	p = min(max(p, 0), d.Len())
	rate := d.reader.SampleRate()
	pos := time.Duration(float64(p) / float64(rate) * float64(time.Second))
	if err := d.reader.Seek(pos); err != nil {
		return err
	}
	d.err = nil
	return nil
}

func (d *aacStream) Close() error {
	if err := d.reader.Close(context.Background()); err != nil {
		return err
	}
	return d.closer.Close()
}

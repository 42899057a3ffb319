package player

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/go-mp3"
)

// mp3Streamer adapts llehouerou/go-mp3 to beep.StreamSeekCloser.
// go-mp3 always outputs 16-bit stereo PCM.
type mp3Streamer struct {
	decoder *mp3.Decoder
	err     error
	buf     []byte
}

func decodeMP3(r io.ReadSeeker) (beep.StreamSeekCloser, beep.Format, error) {
	decoder, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, beep.Format{}, err
	}

	rate := decoder.SampleRate()
	if rate == 0 {
		return nil, beep.Format{}, errors.New("mp3: invalid sample rate")
	}

	format := beep.Format{
		SampleRate:  beep.SampleRate(rate),
		NumChannels: 2,
		Precision:   2,
	}
	return &mp3Streamer{decoder: decoder, buf: make([]byte, 8192)}, format, nil
}

func (s *mp3Streamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.err != nil {
		return 0, false
	}

	// 4 bytes per stereo 16-bit sample.
	need := len(samples) * 4
	if len(s.buf) < need {
		s.buf = make([]byte, need)
	}

	read, err := io.ReadFull(s.decoder, s.buf[:need])
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		s.err = err
		return 0, false
	}

	count := read / 4
	if count == 0 {
		return 0, false
	}

	for i := 0; i < count && i < len(samples); i++ {
		off := i * 4
		left := int16(binary.LittleEndian.Uint16(s.buf[off:]))
		right := int16(binary.LittleEndian.Uint16(s.buf[off+2:]))
		samples[i][0] = float64(left) / 32768.0
		samples[i][1] = float64(right) / 32768.0
		n++
	}
	return n, true
}

func (s *mp3Streamer) Err() error {
	return s.err
}

func (s *mp3Streamer) Len() int {
	count := s.decoder.SampleCount()
	if count < 0 {
		return 0
	}
	return int(count)
}

func (s *mp3Streamer) Position() int {
	return int(s.decoder.SamplePosition())
}

func (s *mp3Streamer) Seek(pos int) error {
	if pos < 0 {
		pos = 0
	}
	if l := s.Len(); pos > l {
		pos = l
	}
	if err := s.decoder.SeekToSample(int64(pos)); err != nil {
		return err
	}
	s.err = nil
	return nil
}

// Close is a no-op; the spool file is owned by the Player.
func (s *mp3Streamer) Close() error {
	return nil
}

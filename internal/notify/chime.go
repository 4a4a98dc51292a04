package notify

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

const (
	chimeSampleRate = 44100
	chimeChannels   = 1
)

// oto allows one context per process.
var (
	audioCtx     *oto.Context
	audioCtxErr  error
	audioCtxOnce sync.Once
)

func audioContext() (*oto.Context, error) {
	audioCtxOnce.Do(func() {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   chimeSampleRate,
			ChannelCount: chimeChannels,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			audioCtxErr = fmt.Errorf("init audio: %w", err)
			return
		}
		<-ready
		audioCtx = ctx
	})
	return audioCtx, audioCtxErr
}

// Chime plays a short two-tone sound when a reminder fires.
type Chime struct {
	Tones    []float64
	Duration time.Duration
}

func DefaultChime() Chime {
	return Chime{Tones: []float64{880, 660}, Duration: 180 * time.Millisecond}
}

func (c Chime) Play() error {
	ctx, err := audioContext()
	if err != nil {
		return err
	}
	player := ctx.NewPlayer(bytes.NewReader(c.pcm()))
	defer player.Close()
	player.Play()
	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	return nil
}

// pcm renders the tones as signed 16-bit little-endian mono samples with a
// linear fade-out per tone.
func (c Chime) pcm() []byte {
	perTone := int(float64(chimeSampleRate) * c.Duration.Seconds())
	buf := make([]byte, 0, perTone*len(c.Tones)*2)
	sample := make([]byte, 2)
	for _, freq := range c.Tones {
		for i := 0; i < perTone; i++ {
			envelope := 1 - float64(i)/float64(perTone)
			v := math.Sin(2*math.Pi*freq*float64(i)/chimeSampleRate) * envelope * 0.3
			binary.LittleEndian.PutUint16(sample, uint16(int16(v*math.MaxInt16)))
			buf = append(buf, sample...)
		}
	}
	return buf
}

// ChimeNotifier wraps a Notifier and plays the chime after each send.
type ChimeNotifier struct {
	Notifier
	Chime Chime
}

func (c ChimeNotifier) Send(n Notification) error {
	sendErr := c.Notifier.Send(n)
	if err := c.Chime.Play(); err != nil && sendErr == nil {
		return err
	}
	return sendErr
}

package game

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/ncruces/zenity"
	"github.com/sirupsen/logrus"
)

// ErrNoFileSelected is returned when the file dialog is dismissed.
var ErrNoFileSelected = errors.New("no file selected")

//nolint:gochecknoglobals // The speaker is a process-wide device.
var speakerState struct {
	sync.Mutex
	rate beep.SampleRate
	done bool
}

// player plays one audio file and reports its progress.
type player struct {
	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	tap      *progressTap
	duration time.Duration
	paused   bool
}

// PickAudioFile asks the user for an audio file.
func PickAudioFile() (string, error) {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Audio File"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", ErrNoFileSelected
		}
		return "", err
	}
	return filename, nil
}

func decodeAudio(path string) (*os.File, beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, beep.Format{}, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		_ = f.Close()
		return nil, nil, beep.Format{}, errors.New("unsupported file type: " + ext)
	}
	if err != nil {
		_ = f.Close()
		return nil, nil, beep.Format{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return f, streamer, format, nil
}

// startPlayer decodes path and starts playing it on the speaker.
func startPlayer(path string) (*player, error) {
	f, streamer, format, err := decodeAudio(path)
	if err != nil {
		return nil, err
	}

	if err := initSpeaker(format.SampleRate); err != nil {
		_ = streamer.Close()
		_ = f.Close()
		return nil, err
	}

	// streamer -> tap -> ctrl
	tap := newProgressTap(streamer, streamer.Len())
	ctrl := &beep.Ctrl{Streamer: tap, Paused: false}
	p := &player{
		file:     f,
		streamer: streamer,
		format:   format,
		ctrl:     ctrl,
		tap:      tap,
		duration: format.SampleRate.D(streamer.Len()),
	}

	logrus.WithFields(logrus.Fields{
		"file":     path,
		"duration": p.duration,
		"rate":     format.SampleRate,
	}).Info("playing")

	speaker.Play(beep.Seq(ctrl, beep.Callback(func() {
		tap.finish()
		logrus.WithField("file", path).Debug("playback finished")
	})))
	return p, nil
}

func initSpeaker(rate beep.SampleRate) error {
	speakerState.Lock()
	defer speakerState.Unlock()

	bufferSize := rate.N(time.Second / 20)
	if !speakerState.done {
		if err := speaker.Init(rate, bufferSize); err != nil {
			return fmt.Errorf("init speaker: %w", err)
		}
		speakerState.done = true
		speakerState.rate = rate
		return nil
	}

	speaker.Lock()
	speaker.Clear()
	speaker.Unlock()
	if speakerState.rate != rate {
		if err := speaker.Init(rate, bufferSize); err != nil {
			return fmt.Errorf("init speaker: %w", err)
		}
		speakerState.rate = rate
	}
	return nil
}

func (p *player) progress() float64 { return p.tap.progress() }

func (p *player) position() time.Duration {
	return p.format.SampleRate.D(p.tap.position())
}

func (p *player) togglePause() {
	speaker.Lock()
	p.paused = !p.paused
	p.ctrl.Paused = p.paused
	speaker.Unlock()
}

func (p *player) close() {
	speaker.Lock()
	speaker.Clear()
	speaker.Unlock()
	_ = p.streamer.Close()
	_ = p.file.Close()
}

//go:build extra
// +build extra

package extra

import (
	"chattermind/config"
	"chattermind/models"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	google_translate_tts "github.com/GrailFinder/google-translate-tts"
	"github.com/GrailFinder/google-translate-tts/handlers"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
)

// GoogleOrator reads assistant replies aloud through google translate
// tts. Speak cancels whatever is playing first, so at most one
// utterance is in flight at any time.
type GoogleOrator struct {
	logger        *slog.Logger
	speech        *google_translate_tts.Speech
	picker        *VoicePicker
	mu            sync.Mutex
	currentStream *beep.Ctrl
	cancel        chan struct{}
	gen           int
	speaking      bool
}

func NewOrator(log *slog.Logger, cfg *config.Config) *GoogleOrator {
	picker := NewVoicePicker(cfg.TTS_LANGS)
	picker.SetVoices(EngineVoices())
	if cfg.TTS_VOICE != "" {
		if err := picker.Select(cfg.TTS_VOICE); err != nil {
			log.Warn("configured voice not accepted", "voice", cfg.TTS_VOICE, "error", err)
		}
	}
	speech := &google_translate_tts.Speech{
		Folder:  os.TempDir() + "/chattermind-tts",
		Speed:   cfg.TTS_SPEED,
		Handler: &handlers.Beep{},
	}
	return &GoogleOrator{
		logger: log,
		speech: speech,
		picker: picker,
	}
}

func (o *GoogleOrator) Voices() []models.VoiceOption {
	return o.picker.Voices()
}

func (o *GoogleOrator) SelectVoice(name string) error {
	return o.picker.Select(name)
}

func (o *GoogleOrator) CurrentVoice() (models.VoiceOption, bool) {
	return o.picker.Current()
}

// RefreshVoices re-reads the engine voice table; the picker keeps an
// explicit selection across refreshes.
func (o *GoogleOrator) RefreshVoices() {
	o.picker.SetVoices(EngineVoices())
}

func (o *GoogleOrator) Speaking() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.speaking
}

func (o *GoogleOrator) Speak(text string) error {
	o.Stop()
	cleaned := SpeakableText(text)
	if cleaned == "" {
		return nil
	}
	voice, ok := o.picker.Current()
	if !ok {
		return fmt.Errorf("no voice selected")
	}
	sentences := SplitSentences(cleaned)
	o.mu.Lock()
	o.gen++
	gen := o.gen
	o.cancel = make(chan struct{})
	cancel := o.cancel
	o.speaking = true
	o.mu.Unlock()
	go o.playSentences(gen, cancel, voice, sentences)
	return nil
}

func (o *GoogleOrator) playSentences(gen int, cancel chan struct{}, voice models.VoiceOption, sentences []string) {
	defer func() {
		o.mu.Lock()
		if gen == o.gen {
			o.speaking = false
		}
		o.mu.Unlock()
	}()
	for _, s := range sentences {
		select {
		case <-cancel:
			return
		default:
		}
		if err := o.playOne(cancel, voice, s); err != nil {
			o.logger.Error("tts failed", "sentence", s, "error", err)
		}
	}
}

func (o *GoogleOrator) playOne(cancel chan struct{}, voice models.VoiceOption, text string) error {
	o.logger.Debug("fn: playOne is called", "text-len", len(text), "voice", voice.Name)
	// the engine takes the bare language code
	o.speech.Language = strings.SplitN(voice.Lang, "-", 2)[0]
	reader, err := o.speech.GenerateSpeech(text)
	if err != nil {
		return fmt.Errorf("generate speech failed: %w", err)
	}
	streamer, format, err := mp3.Decode(io.NopCloser(reader))
	if err != nil {
		return fmt.Errorf("mp3 decode failed: %w", err)
	}
	defer streamer.Close()
	playbackStreamer := beep.Streamer(streamer)
	speed := o.speech.Speed
	if speed > 0 && speed != 1.0 {
		playbackStreamer = beep.ResampleRatio(3, float64(speed), streamer)
	}
	// speaker complains about repeated init; playback still works
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		o.logger.Debug("failed to init speaker", "error", err)
	}
	done := make(chan bool)
	ctrl := &beep.Ctrl{Streamer: beep.Seq(playbackStreamer, beep.Callback(func() {
		close(done)
	})), Paused: false}
	o.mu.Lock()
	o.currentStream = ctrl
	o.mu.Unlock()
	speaker.Play(ctrl)
	select {
	case <-done:
	case <-cancel:
	}
	o.mu.Lock()
	if o.currentStream == ctrl {
		o.currentStream = nil
	}
	o.mu.Unlock()
	return nil
}

func (o *GoogleOrator) Stop() {
	o.logger.Debug("attempted to stop orator")
	o.mu.Lock()
	o.gen++
	o.speaking = false
	stream := o.currentStream
	o.currentStream = nil
	if o.cancel != nil {
		close(o.cancel)
		o.cancel = nil
	}
	o.mu.Unlock()
	if stream != nil {
		speaker.Lock()
		stream.Streamer = nil
		speaker.Unlock()
	}
	if o.speech != nil {
		_ = o.speech.Stop()
	}
}

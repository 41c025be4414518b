//go:build extra
// +build extra

package extra

import (
	"bytes"
	"chattermind/config"
	"encoding/binary"
	"fmt"
	"log/slog"
	"sync"
	"syscall"

	"github.com/gordonklaus/portaudio"
)

// WhisperRecognizer captures one utterance from the default microphone
// and turns it into text through a whisper server. One instance is
// owned by the view; the listening flag follows the actual capture
// stream, not the toggle that requested it.
type WhisperRecognizer struct {
	logger      *slog.Logger
	serverURL   string
	sampleRate  int
	lang        string
	handlers    Handlers
	mu          sync.Mutex
	audioBuffer *bytes.Buffer
	listening   bool
	captureDone chan struct{}
}

func NewSTT(logger *slog.Logger, cfg *config.Config, h Handlers) *WhisperRecognizer {
	return &WhisperRecognizer{
		logger:      logger,
		serverURL:   cfg.STT_URL,
		sampleRate:  cfg.STT_SR,
		lang:        cfg.STT_LANG,
		handlers:    h,
		audioBuffer: new(bytes.Buffer),
	}
}

func (stt *WhisperRecognizer) IsListening() bool {
	stt.mu.Lock()
	defer stt.mu.Unlock()
	return stt.listening
}

func (stt *WhisperRecognizer) setListening(v bool) {
	stt.mu.Lock()
	stt.listening = v
	stt.mu.Unlock()
}

func (stt *WhisperRecognizer) Start() error {
	if stt.IsListening() {
		return nil
	}
	if err := stt.microphoneStream(stt.sampleRate); err != nil {
		return fmt.Errorf("failed to init microphone: %w", err)
	}
	return nil
}

// Stop finalizes the capture, transcribes it and fires the handlers.
// OnEnd fires on every path, matching an engine whose only terminal
// signal is the end event.
func (stt *WhisperRecognizer) Stop() error {
	defer func() {
		if stt.handlers.OnEnd != nil {
			stt.handlers.OnEnd()
		}
	}()
	stt.setListening(false)
	// join the capture goroutine so its final chunk cannot land in the
	// next session's buffer
	stt.mu.Lock()
	done := stt.captureDone
	stt.captureDone = nil
	stt.mu.Unlock()
	if done != nil {
		<-done
	}
	stt.mu.Lock()
	audio := stt.audioBuffer
	stt.audioBuffer = new(bytes.Buffer)
	stt.mu.Unlock()
	if audio.Len() == 0 {
		return nil
	}
	transcript, err := transcribeWAV(stt.serverURL, stt.lang, stt.sampleRate, audio)
	if err != nil {
		stt.logger.Error("fn: Stop", "error", err)
		return err
	}
	if transcript != "" && stt.handlers.OnResult != nil {
		stt.handlers.OnResult(transcript)
	}
	return nil
}

func (stt *WhisperRecognizer) microphoneStream(sampleRate int) error {
	// Temporarily redirect stderr to suppress ALSA warnings during PortAudio init
	origStderr, err := syscall.Dup(syscall.Stderr)
	if err != nil {
		return fmt.Errorf("failed to dup stderr: %w", err)
	}
	nullFD, err := syscall.Open("/dev/null", syscall.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("failed to open /dev/null: %w", err)
	}
	syscall.Dup2(nullFD, syscall.Stderr)
	defer func() {
		syscall.Dup2(origStderr, syscall.Stderr)
		syscall.Close(origStderr)
		syscall.Close(nullFD)
	}()
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("portaudio init failed: %w", err)
	}
	in := make([]int16, 64)
	stream, err := portaudio.OpenDefaultStream(1, 0, float64(sampleRate), len(in), in)
	if err != nil {
		if paErr := portaudio.Terminate(); paErr != nil {
			return fmt.Errorf("failed to open microphone: %w; terminate error: %w", err, paErr)
		}
		return fmt.Errorf("failed to open microphone: %w", err)
	}
	done := make(chan struct{})
	stt.mu.Lock()
	stt.captureDone = done
	stt.mu.Unlock()
	go func(stream *portaudio.Stream) {
		defer close(done)
		if err := stream.Start(); err != nil {
			stt.logger.Error("microphoneStream", "error", err)
			stt.setListening(false)
			return
		}
		// the engine is actually capturing now
		stt.setListening(true)
		defer func() {
			if err := stream.Close(); err != nil {
				stt.logger.Error("closing stream", "error", err)
			}
		}()
		for {
			if !stt.IsListening() {
				return
			}
			if err := stream.Read(); err != nil {
				stt.logger.Error("reading stream", "error", err)
				stt.setListening(false)
				return
			}
			stt.mu.Lock()
			err := binary.Write(stt.audioBuffer, binary.LittleEndian, in)
			stt.mu.Unlock()
			if err != nil {
				stt.logger.Error("writing to buffer", "error", err)
				stt.setListening(false)
				return
			}
		}
	}(stream)
	return nil
}

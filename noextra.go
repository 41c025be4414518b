//go:build !extra

package main

import (
	"chattermind/config"
	"chattermind/models"
	"errors"
	"log/slog"
)

var errNoSpeech = errors.New("speech support not in this build; compile with -tags extra")

type noopOrator struct{}

func (noopOrator) Speak(text string) error       { return errNoSpeech }
func (noopOrator) Stop()                         {}
func (noopOrator) Speaking() bool                { return false }
func (noopOrator) Voices() []models.VoiceOption  { return nil }
func (noopOrator) SelectVoice(name string) error { return errNoSpeech }
func (noopOrator) CurrentVoice() (models.VoiceOption, bool) {
	return models.VoiceOption{}, false
}
func (noopOrator) RefreshVoices() {}

type noopSTT struct{}

func (noopSTT) Start() error      { return errNoSpeech }
func (noopSTT) Stop() error       { return errNoSpeech }
func (noopSTT) IsListening() bool { return false }

func NewOrator(log *slog.Logger, cfg *config.Config) Orator {
	return noopOrator{}
}

func NewSTT(log *slog.Logger, cfg *config.Config, h SpeechHandlers) STT {
	return noopSTT{}
}

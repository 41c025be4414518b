package main

import "chattermind/models"

// Orator reads assistant replies aloud. Speak replaces whatever is
// currently playing; Stop is safe to call when nothing plays.
type Orator interface {
	Speak(text string) error
	Stop()
	Speaking() bool
	Voices() []models.VoiceOption
	SelectVoice(name string) error
	CurrentVoice() (models.VoiceOption, bool)
	RefreshVoices()
}

// STT captures microphone audio and hands the recognized text to the
// handlers given at construction. IsListening reports true only while
// the capture engine is actually running, not merely requested.
type STT interface {
	Start() error
	Stop() error
	IsListening() bool
}

// SpeechHandlers receive recognition results. OnResult fires once per
// finished utterance with the cleaned transcript; OnEnd fires whenever
// recognition stops, with or without a result.
type SpeechHandlers struct {
	OnResult func(text string)
	OnEnd    func()
}

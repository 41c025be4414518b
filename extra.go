//go:build extra

package main

import (
	"chattermind/config"
	"chattermind/extra"
	"log/slog"
)

func NewOrator(log *slog.Logger, cfg *config.Config) Orator {
	return extra.NewOrator(log, cfg)
}

func NewSTT(log *slog.Logger, cfg *config.Config, h SpeechHandlers) STT {
	return extra.NewSTT(log, cfg, extra.Handlers{
		OnResult: h.OnResult,
		OnEnd:    h.OnEnd,
	})
}

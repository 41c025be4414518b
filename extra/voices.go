package extra

import (
	"chattermind/models"
	"fmt"
	"strings"
	"sync"
)

// selection is tri-state so an async voice-list refresh can re-run the
// defaulting without clobbering a choice the user made explicitly.
type selectionState int

const (
	selectionUnset selectionState = iota
	selectionDefaulted
	selectionExplicit
)

// EngineVoices lists the synthesis locales the translate engine accepts.
func EngineVoices() []models.VoiceOption {
	return []models.VoiceOption{
		{Name: "English (United States)", Lang: "en-US"},
		{Name: "English (United Kingdom)", Lang: "en-GB"},
		{Name: "Hindi (India)", Lang: "hi-IN"},
		{Name: "Bengali (India)", Lang: "bn-IN"},
		{Name: "French (France)", Lang: "fr-FR"},
		{Name: "German (Germany)", Lang: "de-DE"},
		{Name: "Spanish (Spain)", Lang: "es-ES"},
		{Name: "Japanese (Japan)", Lang: "ja-JP"},
	}
}

// VoicePicker keeps the filtered voice list and the current selection.
type VoicePicker struct {
	mu       sync.Mutex
	accepted []string
	voices   []models.VoiceOption
	current  models.VoiceOption
	state    selectionState
}

func NewVoicePicker(acceptedLangs []string) *VoicePicker {
	return &VoicePicker{accepted: acceptedLangs}
}

func langAccepted(lang string, accepted []string) bool {
	for _, p := range accepted {
		if lang == p || strings.HasPrefix(lang, p+"-") {
			return true
		}
	}
	return false
}

// SetVoices replaces the voice list with the accepted subset of all.
// Voice lists may arrive late or change; defaulting re-runs on every
// call but an explicit selection survives as long as its voice does.
func (vp *VoicePicker) SetVoices(all []models.VoiceOption) {
	vp.mu.Lock()
	defer vp.mu.Unlock()
	filtered := make([]models.VoiceOption, 0, len(all))
	for _, v := range all {
		if langAccepted(v.Lang, vp.accepted) {
			filtered = append(filtered, v)
		}
	}
	vp.voices = filtered
	if len(filtered) == 0 {
		vp.state = selectionUnset
		vp.current = models.VoiceOption{}
		return
	}
	if vp.state == selectionExplicit {
		for _, v := range filtered {
			if v.Name == vp.current.Name {
				return
			}
		}
		// explicit voice disappeared from the list
	}
	vp.current = filtered[0]
	vp.state = selectionDefaulted
}

func (vp *VoicePicker) Voices() []models.VoiceOption {
	vp.mu.Lock()
	defer vp.mu.Unlock()
	return append([]models.VoiceOption{}, vp.voices...)
}

func (vp *VoicePicker) Select(name string) error {
	vp.mu.Lock()
	defer vp.mu.Unlock()
	for _, v := range vp.voices {
		if v.Name == name {
			vp.current = v
			vp.state = selectionExplicit
			return nil
		}
	}
	return fmt.Errorf("no such voice: %s", name)
}

func (vp *VoicePicker) Current() (models.VoiceOption, bool) {
	vp.mu.Lock()
	defer vp.mu.Unlock()
	if vp.state == selectionUnset {
		return models.VoiceOption{}, false
	}
	return vp.current, true
}

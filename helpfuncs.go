package main

import (
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"chattermind/models"
)

func notifyUser(topic, message string) error {
	cmd := exec.Command("notify-send", topic, message)
	return cmd.Run()
}

func chatToTextSlice(messages []models.RoleMsg) []string {
	resp := make([]string, len(messages))
	for i := range messages {
		resp[i] = messages[i].ToText(i)
	}
	return resp
}

func chatToText(messages []models.RoleMsg) string {
	return strings.Join(chatToTextSlice(messages), "\n")
}

func colorText() {
	text := textView.GetText(false)
	quoteReplacer := strings.NewReplacer(
		`”`, `"`,
		`“`, `"`,
		`**`, `*`,
	)
	text = quoteReplacer.Replace(text)
	// code blocks first so the other styles cannot bleed into them
	var codeBlocks []string
	placeholder := "__CODE_BLOCK_%d__"
	counter := 0
	text = codeBlockRE.ReplaceAllStringFunc(text, func(match string) string {
		styled := fmt.Sprintf("[red::i]%s[-:-:-]", match)
		codeBlocks = append(codeBlocks, styled)
		id := fmt.Sprintf(placeholder, counter)
		counter++
		return id
	})
	text = quotesRE.ReplaceAllString(text, `[orange::-]$1[-:-:-]`)
	text = starRE.ReplaceAllString(text, `[turquoise::i]$1[-:-:-]`)
	for i, cb := range codeBlocks {
		text = strings.Replace(text, fmt.Sprintf(placeholder, i), cb, 1)
	}
	textView.SetText(text)
}

func makeStatusLine() string {
	listening := false
	if asr != nil {
		listening = asr.IsListening()
	}
	speaking := false
	voiceName := "-"
	if orator != nil {
		speaking = orator.Speaking()
		if v, ok := orator.CurrentVoice(); ok {
			voiceName = v.Name
		}
	}
	userName := "anonymous"
	if u := ctrl.User(); u != nil {
		userName = u.Name
	}
	return fmt.Sprintf(indexLine,
		ctrl.Loading(), userName, ctrl.VoiceFeedback(), voiceName,
		speaking, listening, logLevel.Level())
}

func updateStatusLine() {
	position.SetText(makeStatusLine())
	helpView.SetText(fmt.Sprintf(helpText, makeStatusLine()))
}

func toggleDebugLog() {
	if logLevel.Level() == slog.LevelDebug {
		logLevel.Set(slog.LevelInfo)
		return
	}
	logLevel.Set(slog.LevelDebug)
}

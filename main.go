package main

import (
	"flag"
	"fmt"
	"regexp"

	"github.com/rivo/tview"
)

var (
	indexLine     = "F12 to show keys help; loading: %v; user: %s; voice feedback: %v; voice: %s; speaking: %v; listening: %v; log level: %v"
	focusSwitcher = map[tview.Primitive]tview.Primitive{}
	codeBlockRE   = regexp.MustCompile("(?s)```.*?```")
	quotesRE      = regexp.MustCompile(`"([^"\n]+)"`)
	starRE        = regexp.MustCompile(`\*([^*\n]+)\*`)
)

func main() {
	apiPort := flag.Int("port", 0, "port to host the backend api; 0 runs the tui client")
	flag.Parse()
	defer cancel()
	if apiPort != nil && *apiPort > 3000 {
		// backend mode, no tui
		srv, err := NewServer(cfg, logger)
		if err != nil {
			logger.Error("failed to init server", "error", err)
			return
		}
		if err := srv.ListenAndServe(fmt.Sprintf(":%d", *apiPort)); err != nil {
			logger.Error("server stopped", "error", err)
		}
		return
	}
	pages.AddPage("main", flex, true, true)
	if authedUser == nil {
		showLoginForm()
	} else {
		go ctrl.LoadHistory(ctx)
	}
	if err := app.SetRoot(pages,
		true).EnableMouse(true).EnablePaste(true).Run(); err != nil {
		logger.Error("failed to start tview app", "error", err)
		return
	}
	if orator != nil {
		orator.Stop()
	}
	if asr != nil && asr.IsListening() {
		_ = asr.Stop()
	}
}

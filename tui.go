package main

import (
	"fmt"

	"chattermind/models"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

var (
	app        *tview.Application
	pages      *tview.Pages
	textArea   *tview.TextArea
	textView   *tview.TextView
	position   *tview.TextView
	helpView   *tview.TextView
	flex       *tview.Flex
	voiceModal *tview.Modal
	loginForm  *tview.Form
	helpText   = `
[yellow]Esc[white]: send msg
[yellow]PgUp/Down[white]: switch focus between input and chat
[yellow]F1[white]: reload history from backend
[yellow]F2[white]: clear history (backend and screen)
[yellow]F8[white]: toggle voice feedback
[yellow]F9[white]: hold-free mic toggle (start/stop recording)
[yellow]F10[white]: stop speaking
[yellow]Ctrl+v[white]: pick voice
[yellow]Ctrl+l[white]: login form
[yellow]F11[white]: toggle debug logging
[yellow]F12[white]: this help

%s
Press Enter to go back
`
)

// applyTranscript puts recognized speech into the pending-input field.
func applyTranscript(text string) {
	textArea.SetText(text, true)
}

func refreshChatView() {
	if app == nil {
		return
	}
	go app.QueueUpdateDraw(func() {
		textView.SetText(chatToText(ctrl.Messages()))
		colorText()
		textView.ScrollToEnd()
		updateStatusLine()
	})
}

func showNotice(topic, message string) {
	if app == nil || position == nil {
		return
	}
	go app.QueueUpdateDraw(func() {
		position.SetText(fmt.Sprintf("[red]%s[-]: %s", topic, tview.Escape(message)))
	})
}

func showVoiceModal() {
	voices := orator.Voices()
	if len(voices) == 0 {
		showNotice("voice", "no voices match the accepted languages")
		return
	}
	labels := []string{"cancel"}
	for _, v := range voices {
		labels = append(labels, v.Name)
	}
	voiceModal.ClearButtons()
	voiceModal.AddButtons(labels)
	pages.AddPage("voices", voiceModal, true, true)
}

func showLoginForm() {
	loginForm.Clear(true)
	loginForm.
		AddInputField("Name", "", 24, nil, nil).
		AddInputField("Email", "", 32, nil, nil).
		AddPasswordField("Password", "", 32, '*', nil).
		AddButton("Login", func() { submitAuth(false) }).
		AddButton("Signup", func() { submitAuth(true) }).
		AddButton("Cancel", func() {
			pages.RemovePage("login")
			app.SetFocus(textArea)
		})
	pages.AddPage("login", loginForm, true, true)
}

func submitAuth(signup bool) {
	name := loginForm.GetFormItemByLabel("Name").(*tview.InputField).GetText()
	email := loginForm.GetFormItemByLabel("Email").(*tview.InputField).GetText()
	password := loginForm.GetFormItemByLabel("Password").(*tview.InputField).GetText()
	if email == "" || password == "" {
		showNotice("auth", "email and password can't be empty")
		return
	}
	go func() {
		var user *models.User
		var err error
		if signup {
			user, err = client.Signup(ctx, name, email, password)
		} else {
			user, err = client.Login(ctx, email, password)
		}
		if err != nil {
			logger.Error("auth failed", "signup", signup, "error", err)
			showNotice("auth", err.Error())
			return
		}
		authedUser = user
		ctrl.SetUser(user)
		if err := ctrl.LoadHistory(ctx); err == nil {
			logger.Info("logged in", "user", user.Email)
		}
		app.QueueUpdateDraw(func() {
			pages.RemovePage("login")
			app.SetFocus(textArea)
			updateStatusLine()
		})
	}()
}

func init() {
	applyTheme(cfg.ColorScheme)
	app = tview.NewApplication()
	pages = tview.NewPages()
	textArea = tview.NewTextArea().
		SetPlaceholder("Type your message...")
	textArea.SetBorder(true).SetTitle("input")
	textView = tview.NewTextView().
		SetDynamicColors(true).
		SetRegions(true).
		SetChangedFunc(func() {
			app.Draw()
		})
	textView.SetBorder(true).SetTitle("chat")
	focusSwitcher[textArea] = textView
	focusSwitcher[textView] = textArea
	position = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	flex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(textView, 0, 40, false).
		AddItem(textArea, 0, 10, true).
		AddItem(position, 0, 1, false)
	voiceModal = tview.NewModal().
		SetText("Pick a voice:").
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			defer func() {
				pages.RemovePage("voices")
				app.SetFocus(textArea)
				updateStatusLine()
			}()
			if buttonLabel == "cancel" || buttonLabel == "" {
				return
			}
			if err := orator.SelectVoice(buttonLabel); err != nil {
				logger.Error("failed to select voice", "voice", buttonLabel, "error", err)
				showNotice("voice", err.Error())
			}
		})
	loginForm = tview.NewForm()
	loginForm.SetBorder(true).SetTitle("login / signup")
	helpView = tview.NewTextView().SetDynamicColors(true).
		SetText(fmt.Sprintf(helpText, makeStatusLine())).
		SetDoneFunc(func(key tcell.Key) {
			pages.RemovePage("helpView")
		})
	helpView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEsc, tcell.KeyEnter:
			return event
		}
		return nil
	})
	if cfg.STT_ENABLED {
		asr = NewSTT(logger, cfg, SpeechHandlers{
			// the transcript lands in the input field so the user sees
			// what was recognized, then takes the typed-input path
			OnResult: func(text string) {
				go app.QueueUpdateDraw(func() {
					applyTranscript(text)
				})
				go func() {
					ctrl.Submit(ctx, text)
					go app.QueueUpdateDraw(func() {
						// keep anything typed since
						if textArea.GetText() == text {
							textArea.SetText("", true)
						}
					})
				}()
			},
			OnEnd: func() {
				go app.QueueUpdateDraw(updateStatusLine)
			},
		})
	}
	textArea.SetMovedFunc(updateStatusLine)
	updateStatusLine()
	textView.SetText(chatToText(ctrl.Messages()))
	textView.ScrollToEnd()
	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyF1:
			go ctrl.LoadHistory(ctx)
			return nil
		case tcell.KeyF2:
			go ctrl.ClearHistory(ctx)
			return nil
		case tcell.KeyF8:
			on := ctrl.ToggleVoiceFeedback()
			logger.Info("voice feedback toggled", "on", on)
			updateStatusLine()
			return nil
		case tcell.KeyF9:
			if asr == nil {
				showNotice("mic", "speech to text is disabled")
				return nil
			}
			go func() {
				var err error
				if asr.IsListening() {
					err = asr.Stop()
				} else {
					err = asr.Start()
				}
				if err != nil {
					logger.Error("mic toggle failed", "error", err)
					showNotice("mic", err.Error())
				}
				go app.QueueUpdateDraw(updateStatusLine)
			}()
			return nil
		case tcell.KeyF10:
			if orator != nil {
				orator.Stop()
			}
			updateStatusLine()
			return nil
		case tcell.KeyF11:
			toggleDebugLog()
			updateStatusLine()
			return nil
		case tcell.KeyF12:
			helpView.SetText(fmt.Sprintf(helpText, makeStatusLine()))
			pages.AddPage("helpView", helpView, true, true)
			return nil
		case tcell.KeyCtrlV:
			if orator == nil {
				showNotice("voice", "text to speech is disabled")
				return nil
			}
			orator.RefreshVoices()
			showVoiceModal()
			return nil
		case tcell.KeyCtrlL:
			showLoginForm()
			return nil
		case tcell.KeyEscape:
			// popups own their escape key
			if front, _ := pages.GetFrontPage(); front != "main" {
				return event
			}
			msgText := textArea.GetText()
			textArea.SetText("", true)
			go ctrl.Submit(ctx, msgText)
			return nil
		case tcell.KeyPgUp, tcell.KeyPgDn:
			currentF := app.GetFocus()
			if next, ok := focusSwitcher[currentF]; ok {
				app.SetFocus(next)
			}
			return nil
		}
		return event
	})
}

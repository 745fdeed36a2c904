package ui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/csams/chatmark/internal/config"
	"github.com/csams/chatmark/internal/markup"
	"github.com/csams/chatmark/internal/models"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"pkt.systems/pslog"
)

// maxFieldLines caps how tall the compose field grows
const maxFieldLines = 6

type App struct {
	screen        tcell.Screen
	mode          Mode
	field         *MarkupField
	messages      *MessageList
	conversation  *models.Conversation
	status        *Label
	composeInfo   string
	helpDialog    *HelpDialog
	confirmDialog *ConfirmationDialog
	cfg           config.Config
	logger        pslog.Logger
	quitRequested bool
	shutdownOnce  sync.Once
	now           func() time.Time
}

type Mode int

const (
	ModeCompose Mode = iota
	ModeSearch
)

func NewApp(cfg config.Config, conversation *models.Conversation, logger pslog.Logger) *App {
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	markerColor := ParseColor(cfg.Editor.MarkerColor, ColorMarker)

	app := &App{
		mode:          ModeCompose,
		conversation:  conversation,
		status:        NewLabel("", tcell.StyleDefault.Background(ColorBgHighlight).Foreground(ColorYellow)),
		helpDialog:    NewHelpDialog(),
		confirmDialog: NewConfirmationDialog(),
		cfg:           cfg,
		logger:        logger,
		now:           time.Now,
	}
	app.messages = NewMessageList(conversation, NewSearchState(cfg.Search.MinScore), markerColor)
	app.field = NewMarkupField(FieldOptions{
		FormatDelay: cfg.FormatDelay(),
		MarkerColor: markerColor,
		Post:        app.post,
		Placeholder: "Type a message, F1 for help",
		Logger:      logger,
	})
	app.field.AddTextWatcher(TextWatcherFuncs{After: app.updateComposeInfo})
	app.status.AddTextWatcher(TextWatcherFuncs{After: func(text string) {
		if text != "" {
			app.logger.Debug("status", "message", text)
		}
	}})
	return app
}

// SetScreen makes Run use s instead of the terminal
func (a *App) SetScreen(s tcell.Screen) {
	a.screen = s
}

// Field returns the compose field
func (a *App) Field() *MarkupField {
	return a.field
}

// Run drives the event loop until the user quits or ctx is done
func (a *App) Run(ctx context.Context) error {
	if a.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to create screen: %w", err)
		}
		a.screen = s
	}
	s := a.screen
	if err := s.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}

	defer func() {
		a.shutdown()
		s.Fini()
	}()

	s.SetStyle(tcell.StyleDefault.Background(ColorBg).Foreground(ColorFg))
	s.Clear()

	// Wake the event loop when the context ends
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			a.logger.Info("context done, shutting down")
			_ = s.PostEvent(tcell.NewEventInterrupt(nil))
		case <-done:
		}
	}()

	a.logger.Info("tui started", "messages", a.conversation.Len())
	a.draw()
	for {
		ev := s.PollEvent()
		if ev == nil || !a.handleEvent(ev) {
			return nil
		}
	}
}

// shutdown performs all cleanup operations
func (a *App) shutdown() {
	a.shutdownOnce.Do(func() {
		a.field.Close()
		a.logger.Info("tui stopped", "messages", a.conversation.Len())
	})
}

// post runs fn on the event loop
func (a *App) post(fn func()) {
	if a.screen == nil {
		fn()
		return
	}
	if err := a.screen.PostEvent(tcell.NewEventInterrupt(fn)); err != nil {
		a.logger.Warn("event queue full, dropping update", "err", err)
	}
}

// handleEvent processes one event and reports whether the loop goes on
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		a.draw()
	case *tcell.EventKey:
		if a.handleKey(ev) {
			a.draw()
		}
		if a.quitRequested {
			return false
		}
	case *tcell.EventInterrupt:
		fn, ok := ev.Data().(func())
		if !ok || fn == nil {
			return false
		}
		fn()
		a.draw()
	}
	return true
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	// Help dialog takes precedence over all other input
	if a.helpDialog.IsVisible() {
		return a.helpDialog.HandleKey(ev)
	}

	// Confirmation dialog takes precedence over normal input
	if a.confirmDialog.IsVisible() {
		return a.confirmDialog.HandleKey(ev)
	}

	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyCtrlQ:
		a.quitRequested = true
		return false
	case tcell.KeyF1:
		a.helpDialog.Show()
		return true
	}

	if a.mode == ModeSearch {
		return a.handleSearchKey(ev)
	}

	a.setStatus("")
	switch ev.Key() {
	case tcell.KeyCtrlF:
		a.startSearch()
		return true
	case tcell.KeyCtrlL:
		a.confirmClear()
		return true
	case tcell.KeyPgUp:
		a.messages.ScrollUp(a.pageSize())
		return true
	case tcell.KeyPgDn:
		a.messages.ScrollDown(a.pageSize())
		return true
	case tcell.KeyEscape:
		if search := a.messages.GetSearchState(); search.Query() != "" && !a.field.Previewing() {
			search.Clear()
			a.messages.ScrollToBottom()
			return true
		}
	case tcell.KeyEnter:
		if ev.Modifiers()&tcell.ModAlt == 0 {
			a.send()
			return true
		}
	}
	return a.field.HandleKey(ev)
}

// startSearch enters search mode. A selection in the field becomes the
// query, as it would be displayed.
func (a *App) startSearch() {
	a.mode = ModeSearch
	start, end := a.field.Selection()
	if start == end {
		return
	}
	selected := string([]rune(a.field.Text())[start:end])
	a.messages.GetSearchState().SetQuery(markup.Scan(selected, markup.DisplayStripMarkers).Text)
	a.messages.ScrollToBottom()
}

// handleSearchKey edits the history search query
func (a *App) handleSearchKey(ev *tcell.EventKey) bool {
	search := a.messages.GetSearchState()
	switch ev.Key() {
	case tcell.KeyEscape:
		search.Clear()
		a.mode = ModeCompose
	case tcell.KeyEnter:
		a.mode = ModeCompose
		if search.Query() != "" {
			a.setStatus(fmt.Sprintf("*%d* matching messages, Esc clears the filter", len(a.messages.Visible())))
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		search.DeleteChar()
	case tcell.KeyDelete:
		search.DeleteCharForward()
	case tcell.KeyLeft:
		search.MoveCursorLeft()
	case tcell.KeyRight:
		search.MoveCursorRight()
	case tcell.KeyCtrlA, tcell.KeyHome:
		search.MoveCursorStart()
	case tcell.KeyCtrlE, tcell.KeyEnd:
		search.MoveCursorEnd()
	case tcell.KeyCtrlW:
		search.DeleteWord()
	case tcell.KeyRune:
		search.InsertChar(ev.Rune())
	default:
		return false
	}
	a.messages.ScrollToBottom()
	return true
}

// send moves the compose field into the conversation
func (a *App) send() {
	a.field.Flush()
	text := a.field.Text()
	if strings.TrimSpace(text) == "" {
		return
	}

	msg := models.NewMessage(text, a.now())
	a.conversation.Add(msg)
	a.messages.ScrollToBottom()
	a.field.Clear()
	a.logger.Debug("message sent", "id", msg.ID, "spans", len(msg.Rendered().Spans))
}

func (a *App) confirmClear() {
	n := a.conversation.Len()
	if n == 0 {
		a.setStatus("Nothing to clear")
		return
	}
	a.confirmDialog.Show(
		"Clear Conversation",
		fmt.Sprintf("Delete *all %d* messages? This cannot be undone.", n),
		func() {
			a.conversation.Clear()
			a.messages.ScrollToBottom()
			a.setStatus(fmt.Sprintf("Cleared *%d* messages", n))
			a.logger.Info("conversation cleared", "messages", n)
		},
		nil,
	)
}

func (a *App) setStatus(msg string) {
	a.status.SetText(msg)
}

// updateComposeInfo summarizes the formatted compose text for the status bar
func (a *App) updateComposeInfo(text string) {
	if text == "" {
		a.composeInfo = ""
		return
	}
	res := markup.Scan(text, markup.DisplayStripMarkers)
	a.composeInfo = fmt.Sprintf("%d chars, %d styled", res.Len(), len(res.Spans))
}

func (a *App) pageSize() int {
	if a.screen == nil {
		return 10
	}
	_, h := a.screen.Size()
	return max(h/2, 1)
}

func (a *App) draw() {
	w, h := a.screen.Size()
	style := tcell.StyleDefault.Background(ColorBg).Foreground(ColorFg)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a.screen.SetContent(x, y, ' ', nil, style)
		}
	}
	a.screen.HideCursor()

	a.drawHeader(w)

	// Compose field above the status bar, messages fill the rest
	fieldH := clamp(a.field.Lines(w), 1, maxFieldLines)
	fieldY := h - 1 - fieldH
	sepY := fieldY - 1
	if sepY > 1 {
		a.messages.Draw(a.screen, 0, 1, w, sepY-1)
	}
	if sepY >= 1 {
		for x := 0; x < w; x++ {
			a.screen.SetContent(x, sepY, '─', nil, style.Foreground(ColorBorder))
		}
	}
	if fieldY >= 0 {
		a.field.Draw(a.screen, 0, fieldY, w, fieldH)
	}
	if a.mode == ModeSearch {
		a.screen.HideCursor()
	}

	a.drawStatusBar()

	// Dialogs go on top of everything
	if a.helpDialog.IsVisible() || a.confirmDialog.IsVisible() {
		a.screen.HideCursor()
	}
	a.helpDialog.Draw(a.screen)
	a.confirmDialog.Draw(a.screen)

	a.screen.Show()
}

func (a *App) drawHeader(w int) {
	style := tcell.StyleDefault.Background(ColorBgDark).Foreground(ColorHeader).Bold(true)
	for x := 0; x < w; x++ {
		a.screen.SetContent(x, 0, ' ', nil, style)
	}
	drawText(a.screen, 1, 0, style, "chatmark")
	info := fmt.Sprintf("%d messages", a.conversation.Len())
	drawText(a.screen, w-len(info)-1, 0, style.Bold(false).Foreground(ColorFgDark), info)
}

func (a *App) drawStatusBar() {
	w, h := a.screen.Size()
	style := tcell.StyleDefault.Background(ColorBgHighlight).Foreground(ColorFg)

	for x := 0; x < w; x++ {
		a.screen.SetContent(x, h-1, ' ', nil, style)
	}

	search := a.messages.GetSearchState()
	var modeStr string
	switch {
	case a.mode == ModeSearch:
		modeStr = "search: " + search.Query()
	case a.field.Previewing():
		modeStr = "PREVIEW"
	case search.Query() != "":
		modeStr = "COMPOSE [" + search.Query() + "]"
	default:
		modeStr = "COMPOSE"
	}
	drawText(a.screen, 0, h-1, style.Bold(true), modeStr)

	if a.mode == ModeSearch {
		a.screen.ShowCursor(len("search: ")+search.CursorPos(), h-1)
	}

	right := a.composeInfo
	if right != "" {
		drawText(a.screen, w-len(right)-1, h-1, style.Foreground(ColorFgDark), right)
	}

	// Status message sits between the mode and the compose info
	msgX := len([]rune(modeStr)) + 2
	maxMsgWidth := w - msgX - len(right) - 2
	if shown := runewidth.StringWidth(a.status.Displayed()); shown > 0 && maxMsgWidth > 0 {
		a.status.Draw(a.screen, msgX, h-1, min(shown, maxMsgWidth), 1)
	}
}

package tui

import (
	"context"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abiiranathan/recordroom/browser"
)

// Run browses the server behind client until the user quits or ctx is done.
func Run(ctx context.Context, client *browser.Client) error {
	updates := make(chan struct{}, 1)
	notify := func() {
		select {
		case updates <- struct{}{}:
		default:
		}
	}

	// Logs would draw over the screen.
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	session := browser.NewSession(ctx, client, browser.WithNotify(notify), browser.WithLogger(quiet))
	defer session.Close()

	p := tea.NewProgram(New(ctx, session, client, updates), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

package view

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/ledger/internal/operation"
)

const storeTimeout = 5 * time.Second

var (
	pad          = lipgloss.NewStyle().Padding(1)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

// StoreCtx returns a context with a standard timeout for store operations.
func StoreCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storeTimeout)
}

// errorText renders err for the user. Failures that are not the user's doing are logged.
func errorText(action string, err error) string {
	if !errors.Is(err, operation.ErrValidation) && !errors.Is(err, operation.ErrNotFound) {
		slog.Error("failed to "+action, "error", err)
	}

	return errorStyle.Render("!!! " + err.Error() + " !!!")
}

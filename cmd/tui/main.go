package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/ledger/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/ledger/internal/config"
	"github.com/MrJamesThe3rd/ledger/internal/export"
	"github.com/MrJamesThe3rd/ledger/internal/importer"
	"github.com/MrJamesThe3rd/ledger/internal/operation"
	"github.com/MrJamesThe3rd/ledger/internal/operation/store"
)

type View int

const (
	ViewMenu View = iota
	ViewBalance
	ViewBrowse
	ViewAdd
	ViewFind
	ViewImport
	ViewExport
	ViewClear
)

type model struct {
	cfg *config.Config

	opService     *operation.Service
	importService *importer.Service
	exportService *export.Service

	currentView View
	screen      view.View
	size        tea.WindowSizeMsg
}

func newModel(cfg *config.Config, opSvc *operation.Service) model {
	return model{
		cfg:           cfg,
		opService:     opSvc,
		importService: importer.NewService(opSvc),
		exportService: export.NewService(opSvc),
		currentView:   ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.size = msg
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			return m.updateMenu(msg)
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		m.screen = nil

		return m, nil
	}

	if m.screen == nil {
		return m, nil
	}

	next, cmd := m.screen.Update(msg)
	if screen, ok := next.(view.View); ok {
		m.screen = screen
	}

	return m, cmd
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "1":
		return m.open(ViewBalance, view.NewBalanceModel(m.opService))
	case "2":
		return m.open(ViewBrowse, view.NewBrowseModel(m.opService, m.cfg.Listing.PerPage, nil))
	case "3":
		return m.open(ViewAdd, view.NewAddModel(m.opService))
	case "4":
		return m.open(ViewFind, view.NewFindModel(m.opService, m.cfg.Listing.PerPage))
	case "5":
		return m.open(ViewImport, view.NewImportModel(m.importService))
	case "6":
		return m.open(ViewExport, view.NewExportModel(m.exportService, m.cfg.Export.Dir))
	case "7":
		return m.open(ViewClear, view.NewClearModel(m.opService))
	}

	return m, nil
}

func (m model) open(v View, screen view.View) (tea.Model, tea.Cmd) {
	m.currentView = v
	m.screen = screen

	cmds := []tea.Cmd{screen.Init()}
	if m.size.Width > 0 {
		size := m.size
		cmds = append(cmds, func() tea.Msg { return size })
	}

	return m, tea.Batch(cmds...)
}

func (m model) View() string {
	if m.currentView != ViewMenu && m.screen != nil {
		return m.screen.View()
	}

	return lipgloss.NewStyle().Padding(2).Render(
		m.cfg.App.Name + "\n\n" +
			"1. Balance\n" +
			"2. View Operations\n" +
			"3. Add Operation\n" +
			"4. Find Operations\n" +
			"5. Import Operations\n" +
			"6. Export Operations\n" +
			"7. Clear Ledger\n\n" +
			"q. Quit",
	)
}

func setupLogging(cfg *config.Config) (*os.File, error) {
	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	return f, nil
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logFile, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	st := store.New(cfg.Store.File)
	if err := st.Init(context.Background()); err != nil {
		return fmt.Errorf("initialising store: %w", err)
	}

	slog.Info("ledger started", "file", st.Path(), "per_page", cfg.Listing.PerPage)

	p := tea.NewProgram(newModel(cfg, operation.NewService(st)))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		slog.Error("failed to run ledger", "error", err)
		fmt.Fprintln(os.Stderr, "ledger:", err)
		os.Exit(1)
	}
}

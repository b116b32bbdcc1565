// Package home is the lab picker shown on startup.
package home

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/abhisek/simz/internal/coach"
	"github.com/abhisek/simz/internal/config"
	"github.com/abhisek/simz/internal/content"
	"github.com/abhisek/simz/internal/events"
	"github.com/abhisek/simz/internal/router"
	"github.com/abhisek/simz/internal/screen"
	"github.com/abhisek/simz/internal/screens/lab"
	"github.com/abhisek/simz/internal/session"
	"github.com/abhisek/simz/internal/sim"
	"github.com/abhisek/simz/internal/ui/components"
	"github.com/abhisek/simz/internal/ui/theme"
)

// Deps carries everything a lab session needs from the host process.
type Deps struct {
	// Tuning is the loaded user configuration.
	Tuning *config.Config

	// Sink builds the event sink for a new session; nil discards.
	Sink func(sessionID, labID string) events.Sink

	// Coach generates review insights and answer explanations; nil
	// disables coaching.
	Coach *coach.Coach

	// StartLab, when set to a lab ID, opens that lab immediately
	// instead of waiting on the picker.
	StartLab string
}

// HomeScreen lists the available labs.
type HomeScreen struct {
	deps   Deps
	menu   components.Menu
	errMsg string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen over the registered lab domains.
func New(deps Deps) *HomeScreen {
	s := &HomeScreen{deps: deps}

	var items []components.MenuItem
	for _, d := range sim.All() {
		def := d.Definition()
		domain := d
		items = append(items, components.MenuItem{
			Label:       def.Title,
			Description: def.Tagline,
			Action:      func() tea.Cmd { return s.openLab(domain) },
		})
	}
	s.menu = components.NewMenu(items)
	return s
}

func (s *HomeScreen) Init() tea.Cmd {
	if s.deps.StartLab != "" {
		d, ok := sim.ByID(s.deps.StartLab)
		if !ok {
			s.errMsg = fmt.Sprintf("unknown lab %q", s.deps.StartLab)
			return nil
		}
		return s.openLab(d)
	}
	return nil
}

func (s *HomeScreen) Title() string {
	return "Choose a Lab"
}

func (s *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *HomeScreen) View(width, height int) string {
	title := theme.Title.Width(width).Render("Guided Simulation Labs")
	subtitle := theme.Subtitle.Width(width).Render("predict · play · review — then prove it")

	body := title + "\n" + subtitle + "\n\n" + s.menu.View()
	if s.errMsg != "" {
		body += "\n" + lipgloss.NewStyle().Foreground(theme.Error).Render("  "+s.errMsg)
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		AlignVertical(lipgloss.Center).
		Render(body)
}

// openLab loads the lab's content pack, builds a session and pushes the
// lab screen.
func (s *HomeScreen) openLab(d sim.Domain) tea.Cmd {
	def := d.Definition()

	pack, err := content.Load(def.ID)
	if err != nil {
		s.errMsg = fmt.Sprintf("cannot load %s: %v", def.ID, err)
		return nil
	}

	sessionID := uuid.NewString()
	var sink events.Sink
	if s.deps.Sink != nil {
		sink = s.deps.Sink(sessionID, def.ID)
	}

	cfg := session.Config{
		SessionID: sessionID,
		Sink:      sink,
		MinTrials: -1,
	}
	if s.deps.Tuning != nil {
		cfg.Cooldown = s.deps.Tuning.Cooldown()
		cfg.PassThreshold = s.deps.Tuning.PassThreshold(def.ID, def.PassThreshold)
		cfg.MinTrials = s.deps.Tuning.MinTrials(def.ID)
	}

	run := session.New(d, pack, cfg)
	s.errMsg = ""

	return func() tea.Msg {
		return router.PushScreenMsg{Screen: lab.New(run, s.deps.Coach)}
	}
}

// Package viewer is the terminal host: a Bubble Tea program that owns the
// navigation controller, the panel orchestrator and the path bar. All
// routing and resource state transitions are applied on the update loop;
// fetch completions re-enter it as messages.
package viewer

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"wayfind/internal/config"
	"wayfind/internal/nav"
	"wayfind/internal/osmapi"
	"wayfind/internal/panel"
	"wayfind/internal/resource"
	"wayfind/internal/routes"
)

// fitDelay defers the one-shot fit-to-results affordance so it lands
// after the panel's first paint.
const fitDelay = 150 * time.Millisecond

var (
	barStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	pathStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	statusStyle = lipgloss.NewStyle().Faint(true)
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// App is the Bubble Tea model.
type App struct {
	ctrl   *nav.Controller
	hist   *nav.MemoryHistory
	orch   *panel.Orchestrator
	events chan tea.Msg

	input   textinput.Model
	spin    spinner.Model
	typing  bool
	notice  string
	width   int
	height  int
	quitted bool
}

// New wires the full client from configuration: API client, resource
// registry, panels, route table, history and controller. The orchestrator
// subscribes first so panel teardown/mount precedes any re-render.
func New(cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	client, err := osmapi.New(cfg.Server.URL, cfg.Timeout())
	if err != nil {
		return nil, err
	}

	events := make(chan tea.Msg, 64)
	d := &deps{
		client:    client,
		resources: resource.NewRegistry(),
		threshold: cfg.Viewport.ContinueThreshold,
		emit: func(msg tea.Msg) {
			select {
			case events <- msg:
			default:
			}
		},
	}
	panels, err := registerPanels(d)
	if err != nil {
		return nil, err
	}
	table, err := routes.Build(panels)
	if err != nil {
		return nil, err
	}

	hist := nav.NewMemoryHistory(cfg.UI.StartPath)
	ctrl := nav.NewController(table, hist)
	orch := panel.NewOrchestrator(panels)
	ctrl.Subscribe(orch.Apply)
	orch.Apply(ctrl.State())

	input := textinput.New()
	input.Prompt = "go to: "
	input.Placeholder = "/search?q=..."
	input.CharLimit = 256

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	return &App{
		ctrl:   ctrl,
		hist:   hist,
		orch:   orch,
		events: events,
		input:  input,
		spin:   sp,
		width:  80,
		height: 24,
	}, nil
}

// Controller exposes the navigation controller, mainly for tests.
func (a *App) Controller() *nav.Controller { return a.ctrl }

func (a *App) listen() tea.Cmd {
	return func() tea.Msg {
		return <-a.events
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spin.Tick, a.listen())
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshMsg:
		return a, a.listen()

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			a.width = msg.Width
			a.height = msg.Height
		}
		return a, nil

	case tea.KeyMsg:
		if a.typing {
			return a.updateTyping(msg)
		}
		return a.updateBrowsing(msg)
	}
	return a, nil
}

func (a *App) updateTyping(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		path := a.input.Value()
		a.typing = false
		a.input.Blur()
		a.input.SetValue("")
		if path == "" {
			return a, nil
		}
		if err := a.ctrl.NavigateTo(path); err != nil {
			a.notice = fmt.Sprintf("no such page: %s", path)
		} else {
			a.notice = ""
		}
		return a, nil
	case "esc":
		a.typing = false
		a.input.Blur()
		a.input.SetValue("")
		return a, nil
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		a.quitted = true
		a.orch.Shutdown()
		return a, tea.Quit
	case "/", ":":
		a.typing = true
		a.notice = ""
		a.input.Focus()
		return a, textinput.Blink
	case "[", "left":
		if a.hist.Back() {
			a.ctrl.HandleHistoryEvent()
		}
		return a, nil
	case "]", "right":
		if a.hist.Forward() {
			a.ctrl.HandleHistoryEvent()
		}
		return a, nil
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		a.followLink(int(msg.String()[0] - '1'))
		return a, nil
	}
	return a, nil
}

// followLink activates the active panel's n-th link, going through the
// controller's click interception exactly like an anchor would.
func (a *App) followLink(n int) {
	active, _, ok := a.orch.Active()
	if !ok {
		return
	}
	lp, ok := active.(linker)
	if !ok {
		return
	}
	links := lp.Links()
	if n < 0 || n >= len(links) {
		return
	}
	if a.ctrl.InterceptClick(nav.LinkEvent{Href: links[n], SameOrigin: true}) {
		a.notice = ""
	}
}

func (a *App) View() string {
	if a.quitted {
		return ""
	}
	st := a.ctrl.State()

	header := barStyle.Render("wayfind")
	path := runewidth.Truncate(st.Path, max(10, a.width-20), "...")
	header += " " + pathStyle.Render(path)
	if active, _, ok := a.orch.Active(); ok {
		if vp, ok := active.(viewPanel); ok && vp.Busy() {
			header += " " + a.spin.View()
		}
	}

	var body string
	if active, _, ok := a.orch.Active(); ok {
		if vp, ok := active.(viewPanel); ok {
			body = vp.View(a.width)
		}
	} else {
		body = notFoundStyle.Render("this page does not exist") + "\n" +
			statusStyle.Render("check the path or go back")
	}

	footer := statusStyle.Render("/ go to  [ back  ] forward  1-9 open result  q quit")
	if a.notice != "" {
		footer = noticeStyle.Render(a.notice)
	}
	if a.typing {
		footer = a.input.View()
	}

	return header + "\n\n" + body + "\n\n" + footer
}

package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/un1queA/LETHIMCOOK/internal/browser"
	"github.com/un1queA/LETHIMCOOK/internal/cache"
	"github.com/un1queA/LETHIMCOOK/internal/config"
	"github.com/un1queA/LETHIMCOOK/internal/fusion"
	"github.com/un1queA/LETHIMCOOK/internal/geocode"
	"github.com/un1queA/LETHIMCOOK/internal/listing"
)

type focusPane int

const (
	focusList focusPane = iota
	focusDetail
)

type mode int

const (
	modeForm mode = iota
	modeSearching
	modeResults
	modeHelp
)

const (
	fieldAddress = iota
	fieldTerm
	fieldRadius
	fieldCount
)

type App struct {
	cfg      *config.Config
	store    *cache.Store
	geocoder *geocode.Client
	orch     *fusion.Orchestrator

	session listing.Session
	cursor  int
	focus   focusPane
	mode    mode

	width  int
	height int

	// Sub-components
	inputs    [fieldCount]textinput.Model
	formFocus int
	spinner   spinner.Model

	detailScroll int
	searching    bool
	err          error
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Cfg      *config.Config
	Store    *cache.Store
	Geocoder *geocode.Client
	Orch     *fusion.Orchestrator

	// Pre-filled form values from command-line flags.
	Address  string
	Term     string
	RadiusKm int
}

func NewApp(opts RunOpts) *App {
	address := textinput.New()
	address.Placeholder = "Orchard Road"
	address.CharLimit = 120
	address.SetValue(opts.Address)
	address.Focus()

	term := textinput.New()
	term.Placeholder = "sushi, laksa, ramen... (optional)"
	term.CharLimit = 60
	term.SetValue(opts.Term)

	radiusKm := opts.RadiusKm
	if radiusKm <= 0 {
		radiusKm = opts.Cfg.DefaultRadiusKm
	}
	radius := textinput.New()
	radius.CharLimit = 3
	radius.SetValue(strconv.Itoa(opts.Cfg.ClampRadiusKm(radiusKm)))

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	return &App{
		cfg:      opts.Cfg,
		store:    opts.Store,
		geocoder: opts.Geocoder,
		orch:     opts.Orch,
		session:  listing.NewSession(),
		inputs:   [fieldCount]textinput.Model{address, term, radius},
		spinner:  sp,
	}
}

func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// doSearch captures everything the background search needs so the closure
// never touches App state.
func (a *App) doSearch(address, term string, radiusKm int) tea.Cmd {
	cfg := a.cfg
	store := a.store
	geocoder := a.geocoder
	orch := a.orch
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		origin, display, err := geocode.Resolve(ctx, store, geocoder, address)
		if err != nil {
			return searchErrMsg{err: err}
		}

		req := listing.SearchRequest{
			Origin:       origin,
			RadiusMeters: radiusKm * 1000,
			Term:         term,
			Credentials:  cfg.Credentials(),
		}
		result, err := orch.Search(ctx, req)
		if err != nil {
			return searchErrMsg{err: err}
		}

		if store != nil {
			store.LogSearch(cache.SearchRecord{
				Address:    address,
				Term:       term,
				RadiusKm:   float64(radiusKm),
				Foursquare: result.Stats.PerProvider[listing.SourceFoursquare],
				Google:     result.Stats.PerProvider[listing.SourceGoogle],
				OSM:        result.Stats.PerProvider[listing.SourceOSM],
				Duplicates: result.Stats.Duplicates,
				Final:      result.Stats.Final,
				SearchedAt: time.Now(),
			})
		}

		return searchDoneMsg{
			origin:   origin,
			address:  display,
			listings: result.Listings,
			stats:    result.Stats,
		}
	}
}


func openDirectionsCmd(url string) tea.Cmd {
	return func() tea.Msg {
		if err := browser.Open(url); err != nil {
			return openErrMsg{err: err}
		}
		return nil
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		// Clear sticky error on any keypress
		a.err = nil
		return a.handleKey(msg)

	case searchDoneMsg:
		a.searching = false
		a.mode = modeResults
		a.session.Origin = msg.origin
		a.session.DisplayName = msg.address
		a.session.Results = msg.listings
		a.session.Stats = msg.stats
		a.session.Selected = -1
		a.session.SearchedAt = time.Now()
		a.cursor = 0
		a.detailScroll = 0
		a.focus = focusList
		return a, nil

	case searchErrMsg:
		a.searching = false
		a.mode = modeForm
		a.err = msg.err
		return a, nil

	case openErrMsg:
		a.err = msg.err
		return a, nil

	case spinner.TickMsg:
		if a.searching {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.mode {
	case modeForm:
		return a.handleFormKey(msg)
	case modeSearching:
		return a, nil
	case modeHelp:
		if s := msg.String(); s == "?" || s == "esc" || s == "q" {
			a.mode = modeResults
		}
		return a, nil
	}

	// Results mode
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "j", "down":
		if a.focus == focusList && a.cursor < len(a.session.Results)-1 {
			a.cursor++
			a.detailScroll = 0
		} else if a.focus == focusDetail {
			a.detailScroll++
		}
		return a, nil
	case "k", "up":
		if a.focus == focusList && a.cursor > 0 {
			a.cursor--
			a.detailScroll = 0
		} else if a.focus == focusDetail && a.detailScroll > 0 {
			a.detailScroll--
		}
		return a, nil
	case "g":
		if a.focus == focusList {
			a.cursor = 0
			a.detailScroll = 0
		}
		return a, nil
	case "tab":
		if a.focus == focusList {
			a.focus = focusDetail
		} else {
			a.focus = focusList
		}
		return a, nil
	case "enter":
		// Pin the highlighted venue; enter on the pin clears it.
		if len(a.session.Results) > 0 && a.cursor < len(a.session.Results) {
			if a.session.Selected == a.cursor {
				a.session.Selected = -1
			} else {
				a.session.Selected = a.cursor
			}
		}
		return a, nil
	case "d", "o":
		// Directions go to the pinned venue when one is set, else the
		// highlighted one.
		if target := a.directionsTarget(); target >= 0 {
			dest := a.session.Results[target].Coords
			return a, openDirectionsCmd(browser.DirectionsURL(a.session.Origin, dest))
		}
		return a, nil
	case "s", "/":
		a.mode = modeForm
		a.formFocus = fieldAddress
		a.focusFormField()
		return a, textinput.Blink
	case "?":
		a.mode = modeHelp
		return a, nil
	}

	return a, nil
}

func (a *App) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if len(a.session.Results) > 0 {
			a.mode = modeResults
		}
		return a, nil
	case "tab", "down":
		a.formFocus = (a.formFocus + 1) % fieldCount
		a.focusFormField()
		return a, textinput.Blink
	case "shift+tab", "up":
		a.formFocus = (a.formFocus + fieldCount - 1) % fieldCount
		a.focusFormField()
		return a, textinput.Blink
	case "enter":
		return a.submitForm()
	}

	var cmd tea.Cmd
	a.inputs[a.formFocus], cmd = a.inputs[a.formFocus].Update(msg)
	return a, cmd
}

// directionsTarget returns the index directions act on: the pinned venue
// when one is set, otherwise the cursor, or -1 with no results.
func (a *App) directionsTarget() int {
	if a.session.Selected >= 0 && a.session.Selected < len(a.session.Results) {
		return a.session.Selected
	}
	if len(a.session.Results) > 0 && a.cursor < len(a.session.Results) {
		return a.cursor
	}
	return -1
}

func (a *App) focusFormField() {
	for i := range a.inputs {
		if i == a.formFocus {
			a.inputs[i].Focus()
		} else {
			a.inputs[i].Blur()
		}
	}
}

func (a *App) submitForm() (tea.Model, tea.Cmd) {
	address := strings.TrimSpace(a.inputs[fieldAddress].Value())
	if address == "" {
		a.err = fmt.Errorf("address is required")
		return a, nil
	}
	term := strings.TrimSpace(a.inputs[fieldTerm].Value())

	radiusKm := a.cfg.DefaultRadiusKm
	if v := strings.TrimSpace(a.inputs[fieldRadius].Value()); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			a.err = fmt.Errorf("radius must be a whole number of km")
			return a, nil
		}
		radiusKm = n
	}
	radiusKm = a.cfg.ClampRadiusKm(radiusKm)
	a.inputs[fieldRadius].SetValue(strconv.Itoa(radiusKm))

	a.session.Address = address
	a.session.Request.Term = term
	a.mode = modeSearching
	a.searching = true
	return a, tea.Batch(a.doSearch(address, term, radiusKm), a.spinner.Tick)
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  lethimcook")
	}

	switch a.mode {
	case modeForm:
		return a.renderForm()
	case modeSearching:
		content := lipgloss.Place(a.width, a.height-1, lipgloss.Center, lipgloss.Center,
			a.spinner.View()+" Searching near "+a.session.Address+"...")
		return content + "\n" + renderStatusBar(listing.SearchStats{}, "", a.width, true)
	case modeHelp:
		return a.renderHelp()
	}

	// Results: header, two panes, status bar
	headerHeight := 1
	statusHeight := 1
	contentHeight := a.height - headerHeight - statusHeight - 4 // borders
	if contentHeight < 3 {
		contentHeight = 3
	}

	listWidth := int(float64(a.width) * 0.4)
	detailWidth := a.width - listWidth - 1 // gap

	headerLeft := headerStyle.Render("lethimcook")
	where := a.session.DisplayName
	if where == "" {
		where = a.session.Address
	}
	headerRight := headerDateStyle.Render(truncateStr(where, a.width/2))
	headerGap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerGap < 0 {
		headerGap = 0
	}
	header := headerLeft + fmt.Sprintf("%*s", headerGap, "") + headerRight

	innerListW := listWidth - 4 // border + padding
	listContent := renderList(a.session.Results, a.cursor, a.session.Selected, contentHeight, innerListW)

	var listPane string
	if a.focus == focusList {
		listPane = listPaneActiveStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)
	} else {
		listPane = listPaneStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)
	}

	var selected *listing.Listing
	if len(a.session.Results) > 0 && a.cursor < len(a.session.Results) {
		selected = &a.session.Results[a.cursor]
	}
	innerDetailW := detailWidth - 4
	detailContent := renderDetail(selected, innerDetailW, contentHeight, a.detailScroll)

	var detailPane string
	if a.focus == focusDetail {
		detailPane = detailPaneActiveStyle.Width(detailWidth - 2).Height(contentHeight).Render(detailContent)
	} else {
		detailPane = detailPaneStyle.Width(detailWidth - 2).Height(contentHeight).Render(detailContent)
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)

	pinnedName := ""
	if a.session.Selected >= 0 && a.session.Selected < len(a.session.Results) {
		pinnedName = a.session.Results[a.session.Selected].Name
	}
	status := renderStatusBar(a.session.Stats, pinnedName, a.width, false)
	if a.err != nil {
		status = lipgloss.NewStyle().Foreground(colorAccent).Render(a.err.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, content, status)
}

func (a *App) renderForm() string {
	labels := [fieldCount]string{"Where are you?", "Craving (optional)", "Radius (km)"}

	var b strings.Builder
	b.WriteString(headerStyle.Render("lethimcook"))
	b.WriteString(formHintStyle.Render("  restaurants near you, ranked\n\n"))

	for i := range a.inputs {
		b.WriteString(formLabelStyle.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(a.inputs[i].View())
		b.WriteString("\n\n")
	}

	b.WriteString(formHintStyle.Render(fmt.Sprintf(
		"radius %d-%d km · tab next field · enter search · ctrl+c quit",
		a.cfg.MinRadiusKm, a.cfg.MaxRadiusKm)))

	if a.err != nil {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(colorAccent).Render(a.err.Error()))
	}

	card := formCardStyle.Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

func (a *App) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("lethimcook")
	dim := helpDimStyle

	help := title + dim.Render(" — Keyboard Shortcuts") + "\n\n" +
		dim.Render("Navigation") + "\n" +
		"  j/k, ↑/↓     Move through results / scroll detail\n" +
		"  g             Jump to top\n" +
		"  tab           Switch focus between list and detail\n\n" +
		dim.Render("Actions") + "\n" +
		"  enter         Pin the highlighted restaurant (again to unpin)\n" +
		"  d, o          Open directions (pinned venue first)\n" +
		"  s, /          New search\n\n" +
		dim.Render("General") + "\n" +
		"  ?             Toggle this help\n" +
		"  q, ctrl+c    Quit"

	card := helpCardStyle.Render(help)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

// Run starts the TUI application.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

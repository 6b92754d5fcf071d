package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"tripboard/internal/ui"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const defaultTripName = "My trip"

// OnboardingSettings records the first-run answers.
type OnboardingSettings struct {
	Completed   bool   `json:"completed"`
	Trip        string `json:"trip,omitempty"`
	YelpEnabled bool   `json:"yelp_enabled"`
}

func onboardingPath(configDir string) string {
	return filepath.Join(configDir, "onboarding.json")
}

func loadOnboardingSettings(configDir string) (OnboardingSettings, error) {
	data, err := os.ReadFile(onboardingPath(configDir))
	if err != nil {
		if os.IsNotExist(err) {
			return OnboardingSettings{}, nil
		}
		return OnboardingSettings{}, err
	}

	var settings OnboardingSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return OnboardingSettings{}, err
	}
	return settings, nil
}

func saveOnboardingSettings(configDir string, settings OnboardingSettings) error {
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(onboardingPath(configDir), data, 0644)
}

func secureYelpKeyPath(configDir string) string {
	return filepath.Join(configDir, "yelp_api_key")
}

func saveSecureYelpAPIKey(configDir, key string) error {
	if strings.TrimSpace(key) == "" {
		return nil
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}
	// Owner read/write only.
	return os.WriteFile(secureYelpKeyPath(configDir), []byte(strings.TrimSpace(key)+"\n"), 0600)
}

func loadSecureYelpAPIKey(configDir string) (string, error) {
	data, err := os.ReadFile(secureYelpKeyPath(configDir))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func shouldRunOnboarding(settings OnboardingSettings) bool {
	if settings.Completed {
		return false
	}
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

type onboardingStep int

const (
	stepTrip onboardingStep = iota
	stepYelp
	stepKey
	stepDone
)

type onboardingModel struct {
	step        onboardingStep
	enable      bool
	existingKey string
	tripInput   textinput.Model
	keyInput    textinput.Model
	settings    OnboardingSettings
	capturedKey string
	status      string
	width       int
	height      int
}

func newOnboardingModel(trip, existingKey string) onboardingModel {
	tripInput := textinput.New()
	tripInput.Placeholder = defaultTripName
	tripInput.CharLimit = 80
	tripInput.Prompt = "trip> "
	tripInput.SetValue(trip)
	tripInput.Focus()

	keyInput := textinput.New()
	keyInput.Placeholder = "Paste Yelp API key here"
	keyInput.CharLimit = 300
	keyInput.Prompt = "api> "
	keyInput.EchoMode = textinput.EchoPassword

	return onboardingModel{
		step:        stepTrip,
		enable:      true,
		existingKey: strings.TrimSpace(existingKey),
		tripInput:   tripInput,
		keyInput:    keyInput,
		settings:    OnboardingSettings{Completed: true},
	}
}

func (m onboardingModel) Init() tea.Cmd { return textinput.Blink }

func (m onboardingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.finish("Setup canceled. Using defaults.")
		}
		switch m.step {
		case stepTrip:
			if msg.String() == "enter" {
				m.settings.Trip = strings.TrimSpace(m.tripInput.Value())
				if m.settings.Trip == "" {
					m.settings.Trip = defaultTripName
				}
				m.tripInput.Blur()
				m.step = stepYelp
				return m, nil
			}
			var cmd tea.Cmd
			m.tripInput, cmd = m.tripInput.Update(msg)
			return m, cmd

		case stepYelp:
			switch msg.String() {
			case "y", "Y":
				m.enable = true
				return m.afterYelp()
			case "n", "N":
				m.enable = false
				return m.afterYelp()
			case "up", "k", "left", "h":
				m.enable = true
			case "down", "j", "right", "l":
				m.enable = false
			case "enter":
				return m.afterYelp()
			case "q", "esc":
				m.enable = false
				return m.afterYelp()
			}
			return m, nil

		case stepKey:
			switch msg.String() {
			case "enter":
				key := strings.TrimSpace(m.keyInput.Value())
				if key == "" {
					return m.finish("No key entered. Place search disabled.")
				}
				m.settings.YelpEnabled = true
				m.capturedKey = key
				return m.finish("Yelp API key saved.")
			case "esc":
				return m.finish("Skipped key setup. Place search disabled.")
			}
			var cmd tea.Cmd
			m.keyInput, cmd = m.keyInput.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m onboardingModel) afterYelp() (tea.Model, tea.Cmd) {
	if !m.enable {
		return m.finish("Place search disabled.")
	}
	if m.existingKey != "" {
		m.settings.YelpEnabled = true
		return m.finish("Using the Yelp key from environment/flags.")
	}
	m.step = stepKey
	cmd := m.keyInput.Focus()
	return m, cmd
}

func (m onboardingModel) finish(status string) (tea.Model, tea.Cmd) {
	if m.settings.Trip == "" {
		m.settings.Trip = defaultTripName
	}
	m.status = status
	m.step = stepDone
	return m, tea.Quit
}

func (m onboardingModel) View() string {
	width := m.width
	height := m.height
	if width <= 0 {
		width = 100
	}
	if height <= 0 {
		height = 28
	}

	header := ui.TitleStyle.Width(width).Render("  " + ui.HeaderStyle.Render("tripboard") + ui.BreadcrumbStyle.Render(" › Setup"))
	footer := ui.FooterStyle.Width(width).Render(m.footerText())

	contentHeight := height - 4
	if contentHeight < 8 {
		contentHeight = 8
	}
	card := ui.PanelStyle.Width(min(80, width-4)).Render(m.body())
	content := lipgloss.Place(width, contentHeight, lipgloss.Center, lipgloss.Top, card)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (m onboardingModel) footerText() string {
	switch m.step {
	case stepTrip:
		return "enter continue  ctrl+c cancel"
	case stepYelp:
		return "↑↓/jk choose  y/n enter confirm"
	case stepKey:
		return "enter save  esc skip"
	default:
		return "Setup complete"
	}
}

func (m onboardingModel) body() string {
	muted := ui.HelpDescStyle
	switch m.step {
	case stepTrip:
		return lipgloss.JoinVertical(lipgloss.Left,
			ui.LabelStyle.Render("Name your first trip"),
			"",
			ui.ActiveBorderStyle.Padding(0, 1).Render(m.tripInput.View()),
			"",
			muted.Render("Start it with Day 1 to Day 3. Add places with 'tripboard import' or 'tripboard places add'."),
		)
	case stepYelp:
		on, off := "Enable Yelp place search", "Skip place search"
		onLine := "    " + ui.NormalRowStyle.Render(on)
		offLine := "    " + ui.NormalRowStyle.Render(off)
		if m.enable {
			onLine = "  " + ui.LabelStyle.Render("→ "+on)
		} else {
			offLine = "  " + ui.LabelStyle.Render("→ "+off)
		}
		return lipgloss.JoinVertical(lipgloss.Left,
			ui.LabelStyle.Render("Use the Yelp API to look up places?"),
			"",
			onLine,
			offLine,
			"",
			muted.Render("You can change this later in ~/.tripboard/onboarding.json"),
		)
	case stepKey:
		return lipgloss.JoinVertical(lipgloss.Left,
			ui.LabelStyle.Render("Get a Yelp API key:"),
			"",
			muted.Render("1) https://www.yelp.com/developers/v3/manage_app"),
			muted.Render("2) Create an app"),
			muted.Render("3) Copy the API key"),
			"",
			ui.ActiveBorderStyle.Padding(0, 1).Render(m.keyInput.View()),
			"",
			muted.Render("The key is stored in ~/.tripboard/yelp_api_key, readable only by you."),
		)
	default:
		status := muted.Render(m.status)
		if strings.Contains(strings.ToLower(m.status), "disabled") {
			status = ui.ErrorStyle.Render(m.status)
		}
		return lipgloss.JoinVertical(lipgloss.Left, ui.LabelStyle.Render("Setup complete"), "", status)
	}
}

func runOnboarding(configDir, existingTrip, existingKey string) (OnboardingSettings, error) {
	prog := tea.NewProgram(newOnboardingModel(existingTrip, existingKey), tea.WithAltScreen())
	finalModel, err := prog.Run()
	if err != nil {
		return OnboardingSettings{}, fmt.Errorf("onboarding tui failed: %w", err)
	}
	m, ok := finalModel.(onboardingModel)
	if !ok {
		return OnboardingSettings{}, fmt.Errorf("unexpected onboarding model type")
	}
	if m.capturedKey != "" {
		if err := saveSecureYelpAPIKey(configDir, m.capturedKey); err != nil {
			return OnboardingSettings{}, err
		}
	}
	if err := saveOnboardingSettings(configDir, m.settings); err != nil {
		return OnboardingSettings{}, err
	}
	return m.settings, nil
}

package tui

import "github.com/charmbracelet/lipgloss"

// palette is one color scheme. The config key "theme" selects it by name.
type palette struct {
	Accent lipgloss.Color
	Bright lipgloss.Color
	Mid    lipgloss.Color
	Dark   lipgloss.Color
	Dim    lipgloss.Color
	Alt    lipgloss.Color
}

var palettes = map[string]palette{
	"green": {
		Accent: lipgloss.Color("#00FF41"),
		Bright: lipgloss.Color("#39FF14"),
		Mid:    lipgloss.Color("#00C832"),
		Dark:   lipgloss.Color("#008F11"),
		Dim:    lipgloss.Color("#003B00"),
		Alt:    lipgloss.Color("#00D4AA"),
	},
	"amber": {
		Accent: lipgloss.Color("#FFB000"),
		Bright: lipgloss.Color("#FFCC00"),
		Mid:    lipgloss.Color("#E09400"),
		Dark:   lipgloss.Color("#A66E00"),
		Dim:    lipgloss.Color("#4D3300"),
		Alt:    lipgloss.Color("#FF7F50"),
	},
	"blue": {
		Accent: lipgloss.Color("#4FC3F7"),
		Bright: lipgloss.Color("#81D4FA"),
		Mid:    lipgloss.Color("#29B6F6"),
		Dark:   lipgloss.Color("#0277BD"),
		Dim:    lipgloss.Color("#01395E"),
		Alt:    lipgloss.Color("#B39DDB"),
	},
}

var (
	Black     = lipgloss.Color("#0D0208")
	LightGray = lipgloss.Color("#aaaaaa")
	White     = lipgloss.Color("#e0e0e0")
	Red       = lipgloss.Color("#FF4136")

	current palette

	TitleStyle       lipgloss.Style
	BreadcrumbStyle  lipgloss.Style
	StatusBarStyle   lipgloss.Style
	HelpStyle        lipgloss.Style
	ErrorStyle       lipgloss.Style
	SpinnerStyle     lipgloss.Style
	UserLabelStyle   lipgloss.Style
	TutorLabelStyle  lipgloss.Style
	SpeakerAStyle    lipgloss.Style
	SpeakerBStyle    lipgloss.Style
	TranslationStyle lipgloss.Style
	NoticeStyle      lipgloss.Style
	CardStyle        lipgloss.Style
	InputBorderStyle lipgloss.Style
	SelectedStyle    lipgloss.Style
)

func init() { applyTheme("green") }

// applyTheme switches every style to the named palette. Unknown names keep
// the default.
func applyTheme(name string) {
	p, ok := palettes[name]
	if !ok {
		p = palettes["green"]
	}
	current = p

	TitleStyle = lipgloss.NewStyle().
		Background(p.Dark).
		Foreground(Black).
		Bold(true).
		Padding(0, 1)

	BreadcrumbStyle = lipgloss.NewStyle().
		Foreground(p.Dark)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(p.Mid)

	HelpStyle = lipgloss.NewStyle().
		Foreground(p.Dark)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(Red).
		Bold(true)

	SpinnerStyle = lipgloss.NewStyle().
		Foreground(p.Bright)

	UserLabelStyle = lipgloss.NewStyle().
		Foreground(p.Bright).
		Bold(true)

	TutorLabelStyle = lipgloss.NewStyle().
		Foreground(p.Alt).
		Bold(true)

	SpeakerAStyle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)

	SpeakerBStyle = lipgloss.NewStyle().
		Foreground(p.Alt).
		Bold(true)

	TranslationStyle = lipgloss.NewStyle().
		Foreground(LightGray).
		Italic(true)

	NoticeStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFD700"))

	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Accent).
		Padding(0, 2)

	InputBorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Dark).
		Padding(0, 1)

	SelectedStyle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(p.Accent).
		PaddingLeft(1)
}

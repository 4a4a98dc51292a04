package views

// LicensesMarkdown lists the third-party modules compiled into remindd.
const LicensesMarkdown = `# Open source licenses

| Module | License |
|---|---|
| github.com/charmbracelet/bubbletea | MIT |
| github.com/charmbracelet/bubbles | MIT |
| github.com/charmbracelet/lipgloss | MIT |
| github.com/charmbracelet/glamour | MIT |
| github.com/mattn/go-sqlite3 | MIT |
| github.com/peterbourgon/diskv/v3 | MIT |
| github.com/spf13/cobra | Apache-2.0 |
| github.com/spf13/viper | MIT |
| github.com/mitchellh/go-homedir | MIT |
| github.com/fatih/color | MIT |
| github.com/gosuri/uitable | MIT |
| gopkg.in/yaml.v3 | MIT, Apache-2.0 |
| github.com/google/uuid | BSD-3-Clause |
| github.com/emersion/go-ical | MIT |
| github.com/emersion/go-autostart | MIT |
| github.com/ebitengine/oto/v3 | Apache-2.0 |

Press esc to close.
`

func RenderLicenses(md string) string {
	if md == "" {
		md = LicensesMarkdown
	}
	return panelStyle.Render(RenderMarkdown(md))
}

package display

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/cnucho/gptcatalog/internal/term"
)

const bannerArt = `  __ _ _ __ | |_ ___ __ _| |_ __ _| | ___   __ _
 / _' | '_ \| __/ __/ _' | __/ _' | |/ _ \ / _' |
| (_| | |_) | || (_| (_| | || (_| | | (_) | (_| |
 \__, | .__/ \__\___\__,_|\__\__,_|_|\___/ \__, |
 |___/|_|                                  |___/`

var bannerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#C678DD")).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#5C6370")).
	Padding(0, 1)

// PrintBanner writes the banner with the version underneath. The box is
// styled only when colors are enabled.
func PrintBanner(w io.Writer, version string) {
	body := bannerArt + "\n" + fmt.Sprintf("%48s", "v"+version)
	if !term.Enabled() {
		fmt.Fprintln(w, body)
		return
	}
	fmt.Fprintln(w, bannerStyle.Render(body))
}

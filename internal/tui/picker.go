package tui

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// pickerWindow is how many options are visible at once; long format lists
// scroll instead of overflowing the terminal.
const pickerWindow = 9

// PickResult holds the selection made in the format picker.
type PickResult struct {
	Cancelled bool
	Choice    string
}

var formatHints = map[string]string{
	"png":  "Lossless raster image. Universal support, transparency.",
	"jpg":  "Lossy photo format. Small files, no transparency.",
	"jpeg": "Lossy photo format. Small files, no transparency.",
	"webp": "Modern web image. Smaller than png/jpg at similar quality.",
	"gif":  "Paletted image with animation. Large for photos.",
	"bmp":  "Uncompressed bitmap. Very large files.",
	"tiff": "Archival raster format. Common in print and scanning.",
	"heic": "Apple's photo format. Small files, limited support elsewhere.",
	"avif": "AV1-based image. Excellent compression, newer toolchains only.",
	"svg":  "Vector graphics. Scales without quality loss.",
	"ico":  "Windows icon container.",
	"mp4":  "Most compatible video container. Works everywhere.",
	"mov":  "Apple's native container. Preferred by macOS editing tools.",
	"webm": "Open web video. Great for browsers, smaller reach elsewhere.",
	"mkv":  "Flexible container. Subtitles, chapters, any codec.",
	"avi":  "Legacy container. Kept for old players.",
	"mp3":  "Universal lossy audio. Plays on everything.",
	"wav":  "Uncompressed audio. Large, exact, editable.",
	"aac":  "Modern lossy audio. Better than mp3 at the same bitrate.",
	"flac": "Lossless audio. Half the size of wav, bit-exact.",
	"ogg":  "Open lossy audio. Common in games and open platforms.",
	"opus": "Best-in-class lossy audio at low bitrates.",
	"pdf":  "Fixed-layout document. Prints and displays identically everywhere.",
	"docx": "Word document. Editable in office suites.",
	"html": "Web page. Opens in any browser.",
	"md":   "Markdown text. Readable as plain text, renders on forges.",
	"txt":  "Plain text. No formatting survives.",
	"rtf":  "Rich text. Basic formatting, wide compatibility.",
	"epub": "Reflowable e-book format.",
	"odt":  "OpenDocument text. LibreOffice's native format.",
	"xlsx": "Excel workbook.",
	"csv":  "Comma-separated values. Data only, no formatting.",
	"pptx": "PowerPoint deck.",
}

type pickerModel struct {
	title     string
	options   []string
	focused   int
	offset    int
	done      bool
	cancelled bool
}

func newPickerModel(title string, options []string, current string) pickerModel {
	m := pickerModel{title: title, options: options}
	for i, opt := range options {
		if opt == current {
			m.focused = i
			break
		}
	}
	m.scroll()
	return m
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		if m.focused > 0 {
			m.focused--
		}
	case "down", "j":
		if m.focused < len(m.options)-1 {
			m.focused++
		}
	case "enter":
		m.done = true
		return m, tea.Quit
	case "esc", "q", "ctrl+c":
		m.cancelled = true
		return m, tea.Quit
	}
	m.scroll()
	return m, nil
}

// scroll keeps the focused option inside the visible window.
func (m *pickerModel) scroll() {
	if m.focused < m.offset {
		m.offset = m.focused
	}
	if m.focused >= m.offset+pickerWindow {
		m.offset = m.focused - pickerWindow + 1
	}
}

func (m pickerModel) View() string {
	faint := lipgloss.NewStyle().Faint(true)

	if m.done {
		return fmt.Sprintf("\n  %s %s\n\n", faint.Render("output format"), m.options[m.focused])
	}
	if m.cancelled {
		return faint.Render("  cancelled") + "\n"
	}

	focused := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))

	var sb strings.Builder
	sb.WriteString("\n  " + HeaderStyle.Render(m.title) + "\n\n")

	end := m.offset + pickerWindow
	if end > len(m.options) {
		end = len(m.options)
	}
	if m.offset > 0 {
		sb.WriteString(faint.Render("  ↑ more") + "\n")
	}
	for i := m.offset; i < end; i++ {
		opt := m.options[i]
		if i == m.focused {
			sb.WriteString(fmt.Sprintf("▸ %s\n", focused.Render(opt)))
		} else {
			sb.WriteString(fmt.Sprintf("  %s\n", faint.Render(opt)))
		}
	}
	if end < len(m.options) {
		sb.WriteString(faint.Render("  ↓ more") + "\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.renderHintPanel())
	sb.WriteString("\n\n")
	sb.WriteString(faint.Render("  [↑↓] Navigate  [Enter] Convert  [Esc] Cancel"))
	sb.WriteString("\n")
	return sb.String()
}

func (m pickerModel) renderHintPanel() string {
	panelStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		BorderForeground(lipgloss.Color("8"))

	hint := formatHints[m.options[m.focused]]
	if hint == "" {
		hint = "No description for this format."
	}
	return panelStyle.Render(fmt.Sprintf(".%s  %s", m.options[m.focused], hint))
}

func (m pickerModel) result() PickResult {
	if m.cancelled {
		return PickResult{Cancelled: true}
	}
	return PickResult{Choice: m.options[m.focused]}
}

// RunFormatPicker shows an interactive list of output extensions and returns
// the user's choice. current pre-selects an entry, typically the suggested
// default output.
func RunFormatPicker(w io.Writer, title string, options []string, current string) (PickResult, error) {
	if len(options) == 0 {
		return PickResult{Cancelled: true}, nil
	}
	model := newPickerModel(title, options, current)
	p := tea.NewProgram(model, tea.WithOutput(w))
	finalModel, err := p.Run()
	if err != nil {
		return PickResult{}, err
	}
	return finalModel.(pickerModel).result(), nil
}

package cli

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/alexanderramin/studymaster/internal/api"
	"github.com/alexanderramin/studymaster/internal/cli/formatter"
	"github.com/alexanderramin/studymaster/internal/domain"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// planDelay models the short backend processing window between a
// successful upload and the plan becoming available.
const planDelay = 2 * time.Second

// ── messages ─────────────────────────────────────────────────────────────────

// uploadDoneMsg signals the upload request finished.
type uploadDoneMsg struct {
	resp *api.UploadResponse
	name string
	err  error
}

// planReadyMsg fires after the modeled processing delay.
type planReadyMsg struct{}

// ── view ─────────────────────────────────────────────────────────────────────

// uploadView is the entry screen: pick a PDF, upload it, and wait for
// the study plan.
type uploadView struct {
	state  *SharedState
	picker filepicker.Model
	spin   spinner.Model

	uploading  bool
	processing bool
}

func newUploadView(state *SharedState) *uploadView {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".pdf"}
	if home, err := os.UserHomeDir(); err == nil {
		fp.CurrentDirectory = home
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple

	return &uploadView{
		state:  state,
		picker: fp,
		spin:   sp,
	}
}

func (v *uploadView) ID() ViewID    { return ViewUpload }
func (v *uploadView) Title() string { return "Upload" }

func (v *uploadView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "browse")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "upload pdf")),
	}
}

func (v *uploadView) Init() tea.Cmd {
	return v.picker.Init()
}

func (v *uploadView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case uploadDoneMsg:
		v.uploading = false
		if msg.err != nil {
			return v, toast(toastError, "Upload failed: "+msg.err.Error())
		}
		v.processing = true
		// The backend's filename is canonical; the picked path is the
		// fallback if the response omitted it.
		name := msg.name
		if msg.resp != nil && msg.resp.Filename != "" {
			name = displayName(msg.resp.Filename)
		}
		v.state.App.Session.SetDocumentName(name)
		return v, tea.Batch(
			toast(toastSuccess, "PDF uploaded successfully! Generating your study plan..."),
			v.spin.Tick,
			tea.Tick(planDelay, func(time.Time) tea.Msg { return planReadyMsg{} }),
		)

	case planReadyMsg:
		v.state.App.Session.SetView(domain.ViewDashboard)
		return v, tea.Batch(
			switchView(newDashboardView(v.state)),
			toast(toastSuccess, "Your 7-day study plan is ready!"),
		)

	case spinner.TickMsg:
		if v.uploading || v.processing {
			var cmd tea.Cmd
			v.spin, cmd = v.spin.Update(msg)
			return v, cmd
		}
		return v, nil
	}

	if v.uploading || v.processing {
		// The transitional screen takes no input.
		return v, nil
	}

	var cmd tea.Cmd
	v.picker, cmd = v.picker.Update(msg)

	if ok, path := v.picker.DidSelectFile(msg); ok {
		return v, tea.Batch(cmd, v.spin.Tick, v.upload(path))
	}
	if ok, _ := v.picker.DidSelectDisabledFile(msg); ok {
		return v, tea.Batch(cmd, toast(toastError, "Please upload a PDF file"))
	}

	return v, cmd
}

// upload runs the upload request off the UI loop.
func (v *uploadView) upload(path string) tea.Cmd {
	v.uploading = true
	client := v.state.App.Client
	name := displayName(path)
	return func() tea.Msg {
		resp, err := client.UploadPDF(context.Background(), path)
		return uploadDoneMsg{resp: resp, name: name, err: err}
	}
}

// displayName derives the study title from the picked file: base name
// without the .pdf extension.
func displayName(path string) string {
	base := path
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	return strings.TrimSuffix(base, ".pdf")
}

func (v *uploadView) View() string {
	var b strings.Builder

	b.WriteString("\n  " + formatter.StyleHeader.Render("Welcome to StudyMaster") + "\n")
	b.WriteString("  " + formatter.Dim("Upload your study material and get a personalized 7-day study plan.") + "\n\n")

	switch {
	case v.processing:
		b.WriteString("  " + v.spin.View() + " Generating your study plan...\n")
	case v.uploading:
		b.WriteString("  " + v.spin.View() + " Uploading... please wait\n")
	default:
		b.WriteString("  " + formatter.Bold("Pick a PDF to upload") + " " + formatter.Dim("(max 50MB)") + "\n\n")
		b.WriteString(v.picker.View())
	}

	return b.String()
}

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/DevDeepakBhattarai/file-forge/internal/convert"
)

// ConvertReporter adapts bubbletea message sending to the batch runner's
// ProgressReporter interface. Rows are keyed by job id; field mapping stays
// with the caller so the tui package doesn't fix a column layout.
type ConvertReporter struct {
	send           func(tea.Msg)
	startFields    func(convert.Job) map[string]string
	completeFields func(convert.Result) map[string]string
}

// NewConvertReporter constructs a reporter with the given mapping functions.
func NewConvertReporter(
	send func(tea.Msg),
	startFields func(convert.Job) map[string]string,
	completeFields func(convert.Result) map[string]string,
) *ConvertReporter {
	return &ConvertReporter{
		send:           send,
		startFields:    startFields,
		completeFields: completeFields,
	}
}

// Start implements convert.ProgressReporter.
func (r *ConvertReporter) Start(job convert.Job) {
	r.send(RowUpdateMsg{
		Key:    job.ID,
		Fields: r.startFields(job),
	})
}

// Complete implements convert.ProgressReporter.
func (r *ConvertReporter) Complete(res convert.Result) {
	r.send(RowUpdateMsg{
		Key:    res.Job.ID,
		Fields: r.completeFields(res),
	})
}

var _ convert.ProgressReporter = (*ConvertReporter)(nil)

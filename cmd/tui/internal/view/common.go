package view

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/billbook/internal/document"
)

type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// OpenDraftMsg asks the app to open the document editor with a prefilled draft.
type OpenDraftMsg struct {
	Draft document.Draft
}

package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
)

// SelectMeshFiles runs the picker over dir and returns the confirmed
// selection. An empty slice means the user quit without choosing.
func SelectMeshFiles(dir string) ([]string, error) {
	selector, err := CreateFileSelector(dir)
	if err != nil {
		return nil, err
	}
	model, err := tea.NewProgram(selector).StartReturningModel()
	if err != nil {
		return nil, errors.Wrap(err, "SelectMeshFiles run program")
	}
	final, ok := model.(FileSelector)
	if !ok {
		return nil, errors.New("SelectMeshFiles unexpected model type")
	}
	return final.Selected(), nil
}

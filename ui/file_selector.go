// Package ui holds the interactive mesh file picker.
package ui

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

type FileSelector struct {
	dir       string
	files     []string
	selected  map[int]bool
	cursor    int
	confirmed bool
}

func CreateFileSelector(dir string) (FileSelector, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return FileSelector{}, errors.Wrap(err, "CreateFileSelector read directory")
	}
	files := lo.FilterMap(
		entries,
		func(entry os.DirEntry, _ int) (string, bool) {
			name := entry.Name()
			return name, !entry.IsDir() &&
				strings.EqualFold(filepath.Ext(name), ".mesh")
		},
	)
	sort.Strings(files)
	return FileSelector{
		dir:      dir,
		files:    files,
		selected: map[int]bool{},
	}, nil
}

func (s FileSelector) Init() tea.Cmd {
	return nil
}

func (s FileSelector) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch keyMsg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.files)-1 {
			s.cursor++
		}
	case " ":
		if len(s.files) > 0 {
			s.selected[s.cursor] = !s.selected[s.cursor]
		}
	case "a":
		selectedCount := 0
		for i := range s.files {
			if s.selected[i] {
				selectedCount++
			}
		}
		all := selectedCount != len(s.files)
		for i := range s.files {
			s.selected[i] = all
		}
	case "enter":
		s.confirmed = true
		return s, tea.Quit
	case "q", "esc", "ctrl+c":
		return s, tea.Quit
	}
	return s, nil
}

func (s FileSelector) View() string {
	output := "SKYMESH\n\n"
	output += "Mesh files in " + s.dir + ":\n\n"
	if len(s.files) == 0 {
		output += "  (none found)\n"
	}
	for i, file := range s.files {
		cursor := "  "
		if i == s.cursor {
			cursor = "> "
		}
		mark := "[ ] "
		if s.selected[i] {
			mark = "[x] "
		}
		output += cursor + mark + file + "\n"
	}
	output += "\nspace: toggle, a: all, enter: decode, q: quit\n"
	return output
}

// Selected returns the chosen file paths, empty when the user quit
// without confirming.
func (s FileSelector) Selected() []string {
	if !s.confirmed {
		return nil
	}
	var paths []string
	for i, file := range s.files {
		if s.selected[i] {
			paths = append(paths, filepath.Join(s.dir, file))
		}
	}
	return paths
}

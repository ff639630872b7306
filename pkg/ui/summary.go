// Copyright 2024 The lite-manager Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ui renders the post-resolution summary box, gated on whether
// stdout is a real terminal and skipped entirely under --blind.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	colorTitle = lipgloss.Color("#2CD7C7")
	colorMuted = lipgloss.Color("#2C4A54")
	colorBox   = lipgloss.Color("#16858E")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorTitle)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBox).Padding(0, 1)
)

// Summary holds the post-resolution counts the box reports.
type Summary struct {
	SymbolCount   int
	DisabledCount int
	Lists         []ListCount
}

// ListCount is one variable list's non-empty token count.
type ListCount struct {
	Name  string
	Count int
}

// IsTerminal reports whether w is a real terminal lipgloss should color and
// border for; non-terminal writers (pipes, files, in-memory buffers) get
// an aligned plain table instead.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// WriteSummary renders s to w: a colored rounded box when w is a terminal,
// a plain aligned table otherwise.
func WriteSummary(w io.Writer, s Summary) {
	if IsTerminal(w) {
		fmt.Fprintln(w, boxStyle.Render(renderBody(s)))
		return
	}
	fmt.Fprint(w, renderBody(s)+"\n")
}

func renderBody(s Summary) string {
	body := titleStyle.Render("lite-manager summary") + "\n"
	body += fmt.Sprintf("symbols resolved: %d\n", s.SymbolCount)
	body += mutedStyle.Render(fmt.Sprintf("disabled: %d", s.DisabledCount)) + "\n"
	for _, l := range s.Lists {
		body += fmt.Sprintf("%-10s %d\n", l.Name, l.Count)
	}
	return body
}

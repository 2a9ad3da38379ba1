/*
Package view displays OCIF images in a terminal.
*/
package view

import (
	"github.com/bodgit/ocif"
	"github.com/bodgit/ocif/palette"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Style returns the terminal style for c. The cell alpha is ignored as
// terminals have no notion of a transparent background.
func Style(c ocif.Cell) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcell.NewHexColor(int32(c.Foreground & 0xffffff))).
		Background(tcell.NewHexColor(int32(c.Background & 0xffffff)))
}

// Draw puts the cells of m on s with the top left corner at the origin.
// Cells falling outside the screen are skipped and a rune two columns
// wide covers the cell to its right.
func Draw(s tcell.Screen, m *ocif.Image) {
	w, h := s.Size()
	for y := 0; y < m.Height && y < h; y++ {
		for x := 0; x < m.Width && x < w; x++ {
			c, _ := m.At(x, y)
			s.SetContent(x, y, c.Character, nil, Style(c))
			if runewidth.RuneWidth(c.Character) > 1 {
				x++
			}
		}
	}
}

func quit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyEnter, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}

// Show draws m on s and waits until a quit key is pressed, redrawing on
// resize. It does not initialise or finalise s.
func Show(s tcell.Screen, m *ocif.Image) {
	s.SetStyle(tcell.StyleDefault.Background(tcell.NewHexColor(int32(palette.At(0)))))
	for {
		s.Clear()
		Draw(s, m)
		s.Show()

		switch ev := s.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			s.Sync()
		case *tcell.EventKey:
			if quit(ev) {
				return
			}
		}
	}
}

// Run opens the terminal, shows m until a quit key is pressed and restores
// the terminal.
func Run(m *ocif.Image) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()

	Show(s, m)
	return nil
}

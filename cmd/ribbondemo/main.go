// Command ribbondemo animates a quadratic curve stroked into a triangle
// mesh, rendered as braille micro-pixels in the terminal.
//
// Keys: space toggles mesh/centerline view, +/- adjusts the stroke
// width, p pauses the animation, q quits.
package main

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	if _, err := tea.NewProgram(newModel(), tea.WithAltScreen()).Run(); err != nil {
		log.Fatal(err)
	}
}

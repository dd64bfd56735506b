// Package ui is the Bubble Tea program model for flipdeck.
//
// AppModel owns the deck's cards and the flip.Cycler that rotates them. Key
// presses go through a keybind.Handler first: the app binds quit and help,
// and the cycler binds enter and space when the deck enables the keyboard.
// While any card is mid-rotation the model schedules frame ticks so the
// flip is redrawn smoothly; the loop stops once every card is at rest.
package ui

// Package panel renders editor frames for the 4.2" e-ink panel.
//
// Canvas draws into an 8-bit gray image with Go Regular faces and hands a
// black and white frame to a Driver on every commit. PNGDriver stands in for
// the hardware when no panel is attached.
package panel

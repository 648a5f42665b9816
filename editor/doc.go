// Package editor is the editing engine of the writing appliance.
//
// It wraps the logical document onto a fixed-width panel, keeps the cursor in
// sync between logical and display coordinates, scrolls typewriter-style and
// decides when the e-ink panel needs a full or a partial repaint. Session
// drives all of it from one cooperative poll loop; the keyboard, the panel,
// the filesystem and the clock are collaborators behind small interfaces.
package editor

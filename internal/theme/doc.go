// Package theme renders a palette into editor and terminal theme files.
// It produces a TextMate theme (old-style plist, one per variant) for
// pasting into the bundle editor, and an iTerm2 colour preset (binary plist)
// carrying both variants. Output contains no timestamps, so rendering an
// unchanged palette twice yields identical bytes.
package theme

// Package viz draws the solar system into a terminal.
//
//   - [Canvas]: Braille pixel canvas with a per-cell color layer
//   - [RenderScene]: perspective rendering of stars, orbit lines, rings and
//     bodies through the engine's camera pose
//   - Themes and lipgloss styles for the HUD
//
// Canvas pixels are Braille dots, so a canvas of W×H cells is a viewport of
// 2W×4H pixels. The terminal UI sizes the engine viewport to match, which
// lets mouse clicks go straight to the pick dispatcher.
package viz

// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI drives the resolution flow end to end:
//  1. [LoadingView] : Resolve the report (cache hit or full recompute)
//  2. [ReportView] : Display the audio type, summary and trait bars
//  3. [TrackListView] : Browse the tracks the report was derived from
//  4. [UnavailableView] : Terminal failure state with retry
//  5. [AuthMissingView] : No credential; points at the login command
//
// The [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Resolution runs in a tea.Cmd so the interface stays responsive; a refresh
// keybinding re-enters the state machine with a cleared cache.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, r, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui

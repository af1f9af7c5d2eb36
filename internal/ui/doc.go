// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a two-view workflow over the offline guide cache:
//  1. [GuideListView] : Browse the guide catalog, filter, and toggle the pinned-only view
//  2. [GuideDetailView] : Read one guide and toggle its offline pin
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Connectivity transitions from the network monitor surface as a status
// indicator in the list header; pin toggles write through the same cache the
// CLI uses.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, p, o, q)
// with contextual help displayed via charmbracelet/bubbles/help.
package ui

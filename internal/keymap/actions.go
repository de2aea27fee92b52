// Package keymap maps keys to the actions of the result list and builds
// the help line from the same table.
package keymap

// Action is a user-triggerable action.
type Action string

const (
	ActionQuit        Action = "quit"
	ActionFocusSearch Action = "focus_search"

	// Selected result
	ActionPlaySelected Action = "play_selected"
	ActionDownload     Action = "download"

	// Playback
	ActionPlayPause   Action = "play_pause"
	ActionSeekBack    Action = "seek_back"
	ActionSeekForward Action = "seek_forward"
	ActionVolumeUp    Action = "volume_up"
	ActionVolumeDown  Action = "volume_down"
	ActionMute        Action = "mute"
	ActionClose       Action = "close"
)

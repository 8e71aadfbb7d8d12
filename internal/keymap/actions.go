package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit       Action = "quit"
	ActionHelp       Action = "help"
	ActionSwitchList Action = "switch_list"
	ActionRefresh    Action = "refresh"

	// Song list actions
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionPlayFirst Action = "play_version_1"
	ActionPlayOther Action = "play_version_2"

	// Player actions
	ActionPlayPause   Action = "play_pause"
	ActionToggleView  Action = "toggle_view"
	ActionClose       Action = "close"
	ActionSeekBack    Action = "seek_back"
	ActionSeekForward Action = "seek_forward"
	ActionSeekPercent Action = "seek_percent"
	ActionLike        Action = "like"
	ActionShare       Action = "share"
	ActionVolumeUp    Action = "volume_up"
	ActionVolumeDown  Action = "volume_down"
	ActionMute        Action = "mute"
	ActionScrollUp    Action = "scroll_lyrics_up"
	ActionScrollDown  Action = "scroll_lyrics_down"
)

package keymap

import "strings"

// Binding ties keys to an action. The first key is the one shown in help.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
}

// Default is the result list key map, in help order.
var Default = []Binding{
	{ActionFocusSearch, []string{"/", "tab"}, "search"},
	{ActionPlaySelected, []string{"enter"}, "play"},
	{ActionPlayPause, []string{" "}, "pause"},
	{ActionSeekBack, []string{"left"}, "seek"},
	{ActionSeekForward, []string{"right"}, "seek"},
	{ActionVolumeUp, []string{"+", "="}, "volume"},
	{ActionVolumeDown, []string{"-"}, "volume"},
	{ActionMute, []string{"m"}, "mute"},
	{ActionDownload, []string{"d"}, "download"},
	{ActionClose, []string{"x"}, "close"},
	{ActionQuit, []string{"q", "ctrl+c"}, "quit"},
}

// HelpEntry is one item of the help line.
type HelpEntry struct {
	Keys        string
	Description string
}

var keyLabels = map[string]string{
	" ":     "space",
	"left":  "←",
	"right": "→",
}

func label(key string) string {
	if l, ok := keyLabels[key]; ok {
		return l
	}
	return key
}

// Help builds the help entries for bindings. Adjacent bindings sharing a
// description are shown as one entry.
func Help(bindings []Binding) []HelpEntry {
	var out []HelpEntry
	for _, b := range bindings {
		if len(b.Keys) == 0 || b.Description == "" {
			continue
		}
		key := label(b.Keys[0])
		if n := len(out); n > 0 && out[n-1].Description == b.Description {
			out[n-1].Keys += "/" + key
			continue
		}
		out = append(out, HelpEntry{Keys: key, Description: b.Description})
	}
	return out
}

// String renders e as "keys description".
func (e HelpEntry) String() string {
	return strings.TrimSpace(e.Keys + " " + e.Description)
}

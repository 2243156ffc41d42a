package checkbox

// ActionKind tags an Action.
type ActionKind int

const (
	ActionText ActionKind = iota
	ActionCheckbox
)

// Action is one step of rebuilding a run of visible text: either a literal
// span of text or a checkbox.
type Action struct {
	Kind    ActionKind
	Text    string // set when Kind == ActionText
	Checked bool   // set when Kind == ActionCheckbox
}

// Span returns a literal text action.
func Span(text string) Action {
	return Action{Kind: ActionText, Text: text}
}

// Box returns a checkbox action.
func Box(checked bool) Action {
	return Action{Kind: ActionCheckbox, Checked: checked}
}

// ToActions partitions text into literal spans and checkboxes in document
// order. Text without any checkbox comes back as a single span holding the
// whole string; callers treat that as "leave the node alone".
func ToActions(text string) []Action {
	locs := tokenPattern.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []Action{Span(text)}
	}

	actions := make([]Action, 0, 2*len(locs)+1)
	last := 0
	for _, loc := range locs {
		if loc[0] > last {
			actions = append(actions, Span(text[last:loc[0]]))
		}
		actions = append(actions, Box(text[loc[0]+1] == 'x'))
		last = loc[1]
	}
	if last < len(text) {
		actions = append(actions, Span(text[last:]))
	}
	return actions
}

// CountBoxes returns the number of checkbox actions.
func CountBoxes(actions []Action) int {
	n := 0
	for _, a := range actions {
		if a.Kind == ActionCheckbox {
			n++
		}
	}
	return n
}

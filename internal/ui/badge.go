package ui

import "strings"

// Tone is the colour family of a status.
type Tone int

const (
	ToneMuted Tone = iota
	ToneInfo
	ToneSuccess
	TonePending
)

// StatusTone maps an order or picklist status to its tone.
func StatusTone(status string) Tone {
	switch normStatus(status) {
	case "new":
		return ToneInfo
	case "ready", "open":
		return ToneSuccess
	case "in_progress", "picking", "processing":
		return TonePending
	}
	return ToneMuted
}

// Color is the tone's colour in the current theme.
func (t Tone) Color() string {
	switch t {
	case ToneInfo:
		return current.Info
	case ToneSuccess:
		return current.Success
	case TonePending:
		return current.Pending
	}
	return current.Muted
}

func StatusColor(status string) string { return StatusTone(status).Color() }

// StatusLabel is the human form of a status: "in_progress" is "In Progress".
func StatusLabel(status string) string {
	words := strings.Fields(strings.ReplaceAll(normStatus(status), "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Badge renders a coloured status label.
func Badge(status string) string {
	return C(StatusColor(status), "["+StatusLabel(status)+"]")
}

func normStatus(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
}

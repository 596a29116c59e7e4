package reply

import "github.com/misy-ai/gateway/internal/model"

// moodMarkers prefix replies with the marker for the active mood.
var moodMarkers = map[model.Mood]string{
	model.MoodMidnight:  "🌙 *полунощен тон* ",
	model.MoodFlirt:     "😊 *игриво* ",
	model.MoodExecutive: "💼 *прецизно* ",
	model.MoodVelvet:    "🖤 *копринено* ",
	model.MoodCafe:      "☕ *топло* ",
}

// Moods lists the available moods in presentation order.
func Moods() []model.Mood {
	return []model.Mood{
		model.MoodMidnight,
		model.MoodFlirt,
		model.MoodExecutive,
		model.MoodVelvet,
		model.MoodCafe,
	}
}

// ValidMood reports whether m names a known mood.
func ValidMood(m model.Mood) bool {
	_, ok := moodMarkers[m]
	return ok
}

// ApplyStyle wraps text with the marker for the given mood. Unknown moods
// fall back to midnight.
func ApplyStyle(mood model.Mood, text string) string {
	marker, ok := moodMarkers[mood]
	if !ok {
		marker = moodMarkers[model.MoodMidnight]
	}
	return marker + text
}

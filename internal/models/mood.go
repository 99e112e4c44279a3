package models

// Mood is one of the six mood identifiers an entry can be tagged with.
type Mood string

const (
	MoodHappy     Mood = "senang"
	MoodCalm      Mood = "tenang"
	MoodEnergized Mood = "bersemangat"
	MoodAnxious   Mood = "cemas"
	MoodSad       Mood = "sedih"
	MoodTired     Mood = "lelah"
)

// MoodOption describes how a mood is labelled and drawn.
type MoodOption struct {
	Value    Mood   `json:"value"`
	LabelKey string `json:"label_key"`
	Color    string `json:"color"`
}

// moodOptions is ordered; the order breaks ties when picking a dominant mood.
var moodOptions = []MoodOption{
	{Value: MoodHappy, LabelKey: "happy", Color: "#FACC15"},
	{Value: MoodCalm, LabelKey: "calm", Color: "#38BDF8"},
	{Value: MoodEnergized, LabelKey: "energized", Color: "#FB7185"},
	{Value: MoodAnxious, LabelKey: "anxious", Color: "#F97316"},
	{Value: MoodSad, LabelKey: "sad", Color: "#6366F1"},
	{Value: MoodTired, LabelKey: "tired", Color: "#A855F7"},
}

// MoodOptions returns a copy of the taxonomy in display order.
func MoodOptions() []MoodOption {
	out := make([]MoodOption, len(moodOptions))
	copy(out, moodOptions)
	return out
}

// Moods returns the mood identifiers in display order.
func Moods() []Mood {
	out := make([]Mood, 0, len(moodOptions))
	for _, o := range moodOptions {
		out = append(out, o.Value)
	}
	return out
}

func lookupMood(m Mood) (MoodOption, bool) {
	for _, o := range moodOptions {
		if o.Value == m {
			return o, true
		}
	}
	return MoodOption{}, false
}

// ParseMood reports whether s names a known mood.
func ParseMood(s string) (Mood, bool) {
	m := Mood(s)
	_, ok := lookupMood(m)
	return m, ok
}

func (m Mood) Valid() bool {
	_, ok := lookupMood(m)
	return ok
}

// LabelKey returns the translation key for the mood label, e.g. "moods.happy".
// Unknown moods return "".
func (m Mood) LabelKey() string {
	if o, ok := lookupMood(m); ok {
		return "moods." + o.LabelKey
	}
	return ""
}

func (m Mood) Color() string {
	o, _ := lookupMood(m)
	return o.Color
}

// MoodCounts holds a count for every mood in the taxonomy.
type MoodCounts map[Mood]int

// NewMoodCounts returns counts with all six moods present and zero.
func NewMoodCounts() MoodCounts {
	c := make(MoodCounts, len(moodOptions))
	for _, o := range moodOptions {
		c[o.Value] = 0
	}
	return c
}

// Add increments the count for raw if it is a known mood.
// Empty or unknown values are ignored and Add returns false.
func (c MoodCounts) Add(raw string) bool {
	m, ok := ParseMood(raw)
	if !ok {
		return false
	}
	c[m]++
	return true
}

// Total is the number of counted entries.
func (c MoodCounts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

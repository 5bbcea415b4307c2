package model

import "strings"

// ── Modality ──

// Modality imaging specialty of a placement
type Modality string

const (
	ModalityNuclearMedicine Modality = "nuclear_medicine"
	ModalityRadiotherapy    Modality = "radiotherapy"
	ModalityCT              Modality = "ct"
	ModalityMRI             Modality = "mri"
	ModalityRadiography     Modality = "radiography"
	ModalityInterventional  Modality = "interventional"
	ModalityUltrasound      Modality = "ultrasound"
)

// Modalities every supported modality, in display order
var Modalities = []Modality{
	ModalityNuclearMedicine,
	ModalityRadiotherapy,
	ModalityCT,
	ModalityMRI,
	ModalityRadiography,
	ModalityInterventional,
	ModalityUltrasound,
}

var modalityInfo = map[Modality]struct {
	label string
	emoji string
}{
	ModalityNuclearMedicine: {"Médecine Nucléaire", "☢️"},
	ModalityRadiotherapy:    {"Radiothérapie", "💥"},
	ModalityCT:              {"Scanner", "🌀"},
	ModalityMRI:             {"IRM", "🧲"},
	ModalityRadiography:     {"Radiologie conventionnelle", "🦴"},
	ModalityInterventional:  {"Radiologie interventionnelle", "💉"},
	ModalityUltrasound:      {"Échographie", "🔊"},
}

// legacy keys used by the first version of the journal
var modalityAliases = map[string]Modality{
	"nucleaire":       ModalityNuclearMedicine,
	"radiotherapie":   ModalityRadiotherapy,
	"scanner":         ModalityCT,
	"irm":             ModalityMRI,
	"radio":           ModalityRadiography,
	"interventionnel": ModalityInterventional,
	"echographie":     ModalityUltrasound,
}

// ParseModality normalizes s to a Modality
func ParseModality(s string) (Modality, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	if _, ok := modalityInfo[Modality(key)]; ok {
		return Modality(key), true
	}
	m, ok := modalityAliases[key]
	return m, ok
}

// Label human readable name
func (m Modality) Label() string { return modalityInfo[m].label }

// Emoji default icon
func (m Modality) Emoji() string { return modalityInfo[m].emoji }

// ── Mood ──

// Mood 5-point ordinal scale of a journal entry
type Mood string

const (
	MoodExcellent Mood = "excellent"
	MoodGood      Mood = "good"
	MoodAverage   Mood = "average"
	MoodDifficult Mood = "difficult"
	MoodPainful   Mood = "painful"
)

// Moods the fixed severity order used by every statistic
var Moods = []Mood{MoodExcellent, MoodGood, MoodAverage, MoodDifficult, MoodPainful}

var moodInfo = map[Mood]struct {
	label string
	emoji string
}{
	MoodExcellent: {"Excellent", "😊"},
	MoodGood:      {"Bien", "🙂"},
	MoodAverage:   {"Moyen", "😐"},
	MoodDifficult: {"Difficile", "😕"},
	MoodPainful:   {"Pénible", "😞"},
}

var moodAliases = map[string]Mood{
	"bien":      MoodGood,
	"moyen":     MoodAverage,
	"difficile": MoodDifficult,
	"penible":   MoodPainful,
	"pénible":   MoodPainful,
}

// ParseMood normalizes s to a Mood; the French keys are accepted
func ParseMood(s string) (Mood, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	if _, ok := moodInfo[Mood(key)]; ok {
		return Mood(key), true
	}
	m, ok := moodAliases[key]
	return m, ok
}

// Valid reports whether m belongs to the enumeration
func (m Mood) Valid() bool {
	_, ok := moodInfo[m]
	return ok
}

// Label human readable name
func (m Mood) Label() string { return moodInfo[m].label }

// Emoji icon shown next to the statistic
func (m Mood) Emoji() string { return moodInfo[m].emoji }

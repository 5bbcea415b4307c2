package dto

// ── Journal note DTOs ──

// SaveNoteRequest create or overwrite the note of (stage_id, date)
type SaveNoteRequest struct {
	StageID     uint   `json:"stage_id"    binding:"required"`
	Date        string `json:"date"        binding:"required"`
	Mood        string `json:"mood"        binding:"required"`
	Activities  string `json:"activities"`
	Reflections string `json:"reflections"`
	Lessons     string `json:"lessons"`
}

// NoteListRequest query parameters of GET /notes; zero means every stage
type NoteListRequest struct {
	StageID uint `form:"stage_id"`
}

// NoteResponse journal note as returned by the API
type NoteResponse struct {
	ID          uint   `json:"id"`
	StageID     uint   `json:"stage_id"`
	Date        string `json:"date"`
	Mood        string `json:"mood"`
	MoodLabel   string `json:"mood_label"`
	MoodEmoji   string `json:"mood_emoji"`
	Activities  string `json:"activities"`
	Reflections string `json:"reflections"`
	Lessons     string `json:"lessons"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

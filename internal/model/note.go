package model

import (
	"strings"
	"time"
)

// Note daily journal entry, table notes, unique per (stage_id, date)
type Note struct {
	NoteID      uint      `gorm:"primaryKey;autoIncrement;column:id"             json:"id"`
	StageID     uint      `gorm:"not null;uniqueIndex:idx_notes_stage_date"      json:"stage_id"`
	Date        time.Time `gorm:"type:date;not null;uniqueIndex:idx_notes_stage_date" json:"date"`
	Mood        Mood      `gorm:"type:varchar(20);not null"                      json:"mood"`
	Activities  string    `gorm:"type:text"                                      json:"activities"`
	Reflections string    `gorm:"type:text"                                      json:"reflections"`
	Lessons     string    `gorm:"type:text"                                      json:"lessons"`
	BaseModel
}

// TableName table name
func (Note) TableName() string { return "notes" }

// HasContent reports whether at least one free-text field is non-blank
func (n *Note) HasContent() bool {
	return strings.TrimSpace(n.Activities) != "" ||
		strings.TrimSpace(n.Reflections) != "" ||
		strings.TrimSpace(n.Lessons) != ""
}

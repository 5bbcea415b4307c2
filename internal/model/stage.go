package model

import "time"

// Stage clinical placement, table stages
type Stage struct {
	StageID     uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name        string    `gorm:"type:varchar(200);not null"          json:"name"`
	Modality    Modality  `gorm:"type:varchar(30);not null;index"     json:"modality"`
	Emoji       string    `gorm:"type:varchar(16)"                    json:"emoji"`
	Location    string    `gorm:"type:varchar(200)"                   json:"location"`
	Supervisor  string    `gorm:"type:varchar(120)"                   json:"supervisor"`
	Manager     string    `gorm:"type:varchar(120)"                   json:"manager"`
	StartDate   time.Time `gorm:"type:date;not null"                  json:"start_date"`
	EndDate     time.Time `gorm:"type:date;not null"                  json:"end_date"`
	WorkingDays int       `gorm:"not null;default:0"                  json:"working_days"`
	BaseModel
}

// TableName table name
func (Stage) TableName() string { return "stages" }

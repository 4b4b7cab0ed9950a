package models

// Project stores a portfolio project. Description and Technologies are nullable.
type Project struct {
	Base
	Name         string  `json:"name"         gorm:"type:varchar(255);not null"`
	Description  *string `json:"description"  gorm:"type:text"`
	Technologies *string `json:"technologies" gorm:"type:varchar(255)"`
}

func (Project) TableName() string { return "projects" }

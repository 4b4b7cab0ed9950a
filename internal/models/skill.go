package models

// Skill stores one named skill and its optional category.
type Skill struct {
	Base
	Name     string  `json:"name"     gorm:"type:varchar(100);not null"`
	Category *string `json:"category" gorm:"type:varchar(100)"`
}

func (Skill) TableName() string { return "skills" }

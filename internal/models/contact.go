package models

// Contact is a contact form submission. Rows are append-only.
type Contact struct {
	Base
	Name    string  `json:"name"    gorm:"type:varchar(255);not null"`
	Email   string  `json:"email"   gorm:"type:varchar(255);not null"`
	Message *string `json:"message" gorm:"type:text"`
}

func (Contact) TableName() string { return "contacts" }

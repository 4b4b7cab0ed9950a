package models

import "time"

// Base carries the columns every portfolio table shares.
// ID is assigned by MySQL AUTO_INCREMENT and CreatedAt is written once at insert.
type Base struct {
	ID        int       `json:"id"         gorm:"type:int;primaryKey;autoIncrement"`
	CreatedAt time.Time `json:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;autoCreateTime"`
}

// All returns every model managed by the backend, in migration order.
func All() []interface{} {
	return []interface{}{
		&Project{},
		&Skill{},
		&Contact{},
	}
}

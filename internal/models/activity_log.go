package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// ActionType classifies an audit trail entry.
type ActionType string

const (
	ActionContentCreated  ActionType = "konten_dibuat"
	ActionContentUpdated  ActionType = "konten_diubah"
	ActionContentDeleted  ActionType = "konten_dihapus"
	ActionContentVerified ActionType = "konten_diverifikasi"
	ActionSkpdCreated     ActionType = "skpd_dibuat"
	ActionSkpdUpdated     ActionType = "skpd_diubah"
	ActionSkpdDeleted     ActionType = "skpd_dihapus"
	ActionUserLogin       ActionType = "pengguna_masuk"
)

// JSONMap stores a map of field values as a JSON column. Used for the
// old/new snapshots on update audit entries, which contain only the fields
// that actually changed.
type JSONMap map[string]interface{}

// Value implements driver.Valuer.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	}
	return errors.New("unsupported type for JSONMap")
}

// ActivityLog is an append-only audit record. Rows are never updated or
// deleted by the application.
type ActivityLog struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"not null;index" json:"user_id"`
	User       *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ActionType ActionType `gorm:"type:varchar(40);not null;index" json:"action_type"`
	Detail     string     `gorm:"type:text" json:"detail"`
	OldValue   JSONMap    `gorm:"type:text" json:"old_value,omitempty"`
	NewValue   JSONMap    `gorm:"type:text" json:"new_value,omitempty"`
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}

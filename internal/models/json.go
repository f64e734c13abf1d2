package models

import (
	"database/sql/driver"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// JSON is a nullable free-form JSON column built on gorm.io/datatypes.JSON.
// It maps to the native JSON type where the dialect has one.
type JSON struct {
	datatypes.JSON
}

// NewJSON wraps raw JSON bytes, treating empty input and JSON null as no value
func NewJSON(raw []byte) JSON {
	if len(raw) == 0 || string(raw) == "null" {
		return JSON{}
	}
	return JSON{JSON: datatypes.JSON(raw)}
}

// IsEmpty reports whether the column holds no value
func (j JSON) IsEmpty() bool {
	return len(j.JSON) == 0
}

// Value stores an empty document as NULL
func (j JSON) Value() (driver.Value, error) {
	if j.IsEmpty() {
		return nil, nil
	}
	return j.JSON.Value()
}

// Scan reads NULL as an empty document
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		j.JSON = nil
		return nil
	}
	return j.JSON.Scan(value)
}

// MarshalJSON renders an empty document as null
func (j JSON) MarshalJSON() ([]byte, error) {
	if j.IsEmpty() {
		return []byte("null"), nil
	}
	return j.JSON.MarshalJSON()
}

// UnmarshalJSON accepts any JSON document, null included
func (j *JSON) UnmarshalJSON(data []byte) error {
	*j = NewJSON(append([]byte(nil), data...))
	return nil
}

// GormDBDataType picks the column type per dialect; SQL Server has no json type.
func (JSON) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "JSON"
	case "postgres":
		return "JSONB"
	case "sqlserver", "mssql":
		return "NVARCHAR(MAX)"
	case "sqlite":
		return "JSON"
	}
	return "TEXT"
}

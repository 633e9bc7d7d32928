// File: /models/tricycle.go
package models

// Tricycle is one row of the tricycle table. ID is assigned by the database
// on insert and never changes afterwards.
type Tricycle struct {
	ID           int64  `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Brand        string `json:"brand" gorm:"column:brand;not null"`
	Model        string `json:"model" gorm:"column:model;not null"`
	Material     string `json:"material" gorm:"column:material;not null"`
	LoadCapacity int64  `json:"load_capacity" gorm:"column:load_capacity;not null"`
}

// TricycleTable is the only table this service reads or writes.
const TricycleTable = "tricycle"

func (Tricycle) TableName() string {
	return TricycleTable
}

// Payload fields required by each operation, in the order they are checked.
var (
	CreateTricycleFields = []string{"brand", "model", "material", "load_capacity"}
	UpdateTricycleFields = []string{"id", "brand", "model", "material", "load_capacity"}
	DeleteTricycleFields = []string{"id"}
)

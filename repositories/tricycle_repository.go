// File: /repositories/tricycle_repository.go
package repositories

import (
	"context"
	"errors"
	"tricycle-api/database"
	"tricycle-api/models"

	"gorm.io/gorm"
)

const (
	insertTricycleSQL  = "INSERT INTO tricycle (brand, model, material, load_capacity) VALUES (?, ?, ?, ?)"
	selectTricyclesSQL = "SELECT * FROM tricycle"
	updateTricycleSQL  = "UPDATE tricycle SET brand = ?, model = ?, material = ?, load_capacity = ? WHERE id = ?"
	deleteTricycleSQL  = "DELETE FROM tricycle WHERE id = ?"
)

// ErrTricycleNotFound is returned by Delete when no row has the given id.
var ErrTricycleNotFound = errors.New("tricycle not found")

// TricycleRepository runs exactly one statement per call on a connection
// acquired for that call.
type TricycleRepository struct {
	db database.Connector
}

func NewTricycleRepository(db database.Connector) *TricycleRepository {
	return &TricycleRepository{db: db}
}

// Insert adds a row. The id is assigned by the database.
func (r *TricycleRepository) Insert(ctx context.Context, tricycle *models.Tricycle) error {
	return r.db.WithConnection(ctx, func(conn *gorm.DB) error {
		return conn.Transaction(func(tx *gorm.DB) error {
			return tx.Exec(insertTricycleSQL,
				tricycle.Brand, tricycle.Model, tricycle.Material, tricycle.LoadCapacity).Error
		})
	})
}

// FindAll returns every row. An empty table is not an error.
func (r *TricycleRepository) FindAll(ctx context.Context) ([]models.Tricycle, error) {
	var tricycles []models.Tricycle
	err := r.db.WithConnection(ctx, func(conn *gorm.DB) error {
		return conn.Raw(selectTricyclesSQL).Scan(&tricycles).Error
	})
	if err != nil {
		return nil, err
	}
	return tricycles, nil
}

// Update overwrites every column except id. It commits even when no row
// matched, unlike Delete.
func (r *TricycleRepository) Update(ctx context.Context, tricycle *models.Tricycle) error {
	return r.db.WithConnection(ctx, func(conn *gorm.DB) error {
		return conn.Transaction(func(tx *gorm.DB) error {
			return tx.Exec(updateTricycleSQL,
				tricycle.Brand, tricycle.Model, tricycle.Material, tricycle.LoadCapacity, tricycle.ID).Error
		})
	})
}

// Delete removes the row with the given id. When nothing was deleted the
// transaction is rolled back and ErrTricycleNotFound returned.
func (r *TricycleRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithConnection(ctx, func(conn *gorm.DB) error {
		return conn.Transaction(func(tx *gorm.DB) error {
			result := tx.Exec(deleteTricycleSQL, id)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrTricycleNotFound
			}
			return nil
		})
	})
}

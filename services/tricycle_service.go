// File: /services/tricycle_service.go
package services

import (
	"context"
	"errors"
	"tricycle-api/errs"
	"tricycle-api/models"
	"tricycle-api/repositories"
	"tricycle-api/utils"
)

// TricycleStore is the statement executor the service runs against.
type TricycleStore interface {
	Insert(ctx context.Context, tricycle *models.Tricycle) error
	FindAll(ctx context.Context) ([]models.Tricycle, error)
	Update(ctx context.Context, tricycle *models.Tricycle) error
	Delete(ctx context.Context, id int64) error
}

type TricycleService struct {
	store TricycleStore
}

func NewTricycleService(store TricycleStore) *TricycleService {
	return &TricycleService{store: store}
}

// CreateTricycle validates a full record and inserts it. The returned
// tricycle carries the submitted fields; its ID is left to the database.
func (s *TricycleService) CreateTricycle(ctx context.Context, payload utils.Payload) (*models.Tricycle, error) {
	if err := utils.ValidateRequired(payload, models.CreateTricycleFields...); err != nil {
		return nil, err
	}

	tricycle, err := tricycleFromPayload(payload, false)
	if err != nil {
		return nil, err
	}

	if err := s.store.Insert(ctx, tricycle); err != nil {
		return nil, classify(err)
	}
	return tricycle, nil
}

// GetTricycles returns every stored tricycle. An empty slice means the
// table has no rows.
func (s *TricycleService) GetTricycles(ctx context.Context) ([]models.Tricycle, error) {
	tricycles, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, classify(err)
	}
	return tricycles, nil
}

// UpdateTricycle overwrites the record with the given id. No existence check
// is made; an unknown id still succeeds.
func (s *TricycleService) UpdateTricycle(ctx context.Context, payload utils.Payload) (*models.Tricycle, error) {
	if err := utils.ValidateRequired(payload, models.UpdateTricycleFields...); err != nil {
		return nil, err
	}

	tricycle, err := tricycleFromPayload(payload, true)
	if err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, tricycle); err != nil {
		return nil, classify(err)
	}
	return tricycle, nil
}

// DeleteTricycle removes the record with the given id.
func (s *TricycleService) DeleteTricycle(ctx context.Context, payload utils.Payload) error {
	if err := utils.ValidateRequiredWith(utils.BareMessages, payload, models.DeleteTricycleFields...); err != nil {
		return err
	}

	id, err := utils.NonNegativeInt(payload, "id")
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return classify(err)
	}
	return nil
}

// tricycleFromPayload checks numeric fields before text fields, id first.
func tricycleFromPayload(payload utils.Payload, withID bool) (*models.Tricycle, error) {
	tricycle := &models.Tricycle{}

	if withID {
		id, err := utils.NonNegativeInt(payload, "id")
		if err != nil {
			return nil, err
		}
		tricycle.ID = id
	}

	loadCapacity, err := utils.NonNegativeInt(payload, "load_capacity")
	if err != nil {
		return nil, err
	}
	tricycle.LoadCapacity = loadCapacity

	for _, field := range []struct {
		name string
		dest *string
	}{
		{"brand", &tricycle.Brand},
		{"model", &tricycle.Model},
		{"material", &tricycle.Material},
	} {
		value, err := utils.String(payload, field.name)
		if err != nil {
			return nil, err
		}
		*field.dest = value
	}

	return tricycle, nil
}

func classify(err error) error {
	if errors.Is(err, repositories.ErrTricycleNotFound) {
		return errs.WrapBusinessRule(err)
	}
	return errs.WrapInfrastructure(err)
}

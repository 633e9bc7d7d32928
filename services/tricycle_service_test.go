package services

import (
	"context"
	"errors"
	"testing"

	"tricycle-api/errs"
	"tricycle-api/models"
	"tricycle-api/repositories"
	"tricycle-api/utils"

	. "github.com/smartystreets/goconvey/convey"
)

type fakeStore struct {
	rows    []models.Tricycle
	nextID  int64
	err     error
	updated []models.Tricycle
}

func (f *fakeStore) Insert(_ context.Context, t *models.Tricycle) error {
	if f.err != nil {
		return f.err
	}
	f.nextID++
	row := *t
	row.ID = f.nextID
	f.rows = append(f.rows, row)
	return nil
}

func (f *fakeStore) FindAll(context.Context) ([]models.Tricycle, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.Tricycle(nil), f.rows...), nil
}

func (f *fakeStore) Update(_ context.Context, t *models.Tricycle) error {
	if f.err != nil {
		return f.err
	}
	f.updated = append(f.updated, *t)
	for i := range f.rows {
		if f.rows[i].ID == t.ID {
			f.rows[i] = *t
		}
	}
	return nil
}

func (f *fakeStore) Delete(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return repositories.ErrTricycleNotFound
}

func decode(body string) utils.Payload {
	payload, err := utils.DecodePayload(body)
	So(err, ShouldBeNil)
	return payload
}

func TestCreateTricycle(t *testing.T) {
	Convey("Given a tricycle service", t, func() {
		store := &fakeStore{}
		service := NewTricycleService(store)
		ctx := context.Background()

		Convey("A full record is inserted", func() {
			created, err := service.CreateTricycle(ctx, decode(`{"brand":"Radio Flyer","model":"Classic","material":"steel","load_capacity":50}`))
			So(err, ShouldBeNil)
			So(created.Brand, ShouldEqual, "Radio Flyer")
			So(created.LoadCapacity, ShouldEqual, 50)
			So(store.rows, ShouldHaveLength, 1)
		})

		Convey("A missing body is a validation error", func() {
			_, err := service.CreateTricycle(ctx, nil)
			So(errs.KindOf(err), ShouldEqual, errs.KindValidation)
			So(err.Error(), ShouldEqual, "Request does not contain a body")
		})

		Convey("The first missing field is reported", func() {
			_, err := service.CreateTricycle(ctx, decode(`{"brand":"Radio Flyer","material":"steel"}`))
			So(errs.KindOf(err), ShouldEqual, errs.KindValidation)
			So(err.Error(), ShouldEqual, "The model attribute is required")
		})

		Convey("A null field is reported", func() {
			_, err := service.CreateTricycle(ctx, decode(`{"brand":"Radio Flyer","model":"Classic","material":"steel","load_capacity":null}`))
			So(errs.KindOf(err), ShouldEqual, errs.KindValidation)
			So(err.Error(), ShouldEqual, "The load_capacity attribute cannot be null")
		})

		Convey("A fractional load_capacity breaks a business rule", func() {
			_, err := service.CreateTricycle(ctx, decode(`{"brand":"Radio Flyer","model":"Classic","material":"steel","load_capacity":1.5}`))
			So(errs.KindOf(err), ShouldEqual, errs.KindBusinessRule)
			So(err.Error(), ShouldEqual, "load_capacity must be an integer")
			So(store.rows, ShouldBeEmpty)
		})

		Convey("A negative load_capacity breaks a business rule", func() {
			_, err := service.CreateTricycle(ctx, decode(`{"brand":"Radio Flyer","model":"Classic","material":"steel","load_capacity":-1}`))
			So(errs.KindOf(err), ShouldEqual, errs.KindBusinessRule)
			So(err.Error(), ShouldEqual, "load_capacity must be a positive number")
		})

		Convey("A non-string brand breaks a business rule", func() {
			_, err := service.CreateTricycle(ctx, decode(`{"brand":7,"model":"Classic","material":"steel","load_capacity":5}`))
			So(errs.KindOf(err), ShouldEqual, errs.KindBusinessRule)
			So(err.Error(), ShouldEqual, "brand must be a string")
		})

		Convey("A store failure is an infrastructure error", func() {
			store.err = errors.New("connection refused")
			_, err := service.CreateTricycle(ctx, decode(`{"brand":"Radio Flyer","model":"Classic","material":"steel","load_capacity":50}`))
			So(errs.KindOf(err), ShouldEqual, errs.KindInfrastructure)
			So(err.Error(), ShouldEqual, "connection refused")
		})
	})
}

func TestUpdateTricycle(t *testing.T) {
	Convey("Given a stored tricycle", t, func() {
		store := &fakeStore{rows: []models.Tricycle{{ID: 1, Brand: "Radio Flyer", Model: "Classic", Material: "steel", LoadCapacity: 50}}, nextID: 1}
		service := NewTricycleService(store)
		ctx := context.Background()

		Convey("Its load_capacity can be changed", func() {
			_, err := service.UpdateTricycle(ctx, decode(`{"id":1,"brand":"Radio Flyer","model":"Classic","material":"steel","load_capacity":80}`))
			So(err, ShouldBeNil)
			rows, _ := service.GetTricycles(ctx)
			So(rows[0].LoadCapacity, ShouldEqual, 80)
		})

		Convey("An unknown id still succeeds", func() {
			_, err := service.UpdateTricycle(ctx, decode(`{"id":999,"brand":"Radio Flyer","model":"Classic","material":"steel","load_capacity":80}`))
			So(err, ShouldBeNil)
			So(store.updated, ShouldHaveLength, 1)
		})

		Convey("id is checked before load_capacity", func() {
			_, err := service.UpdateTricycle(ctx, decode(`{"id":"one","brand":"Radio Flyer","model":"Classic","material":"steel","load_capacity":-4}`))
			So(errs.KindOf(err), ShouldEqual, errs.KindBusinessRule)
			So(err.Error(), ShouldEqual, "id must be an integer")
		})

		Convey("id is required first", func() {
			_, err := service.UpdateTricycle(ctx, decode(`{"brand":"Radio Flyer"}`))
			So(err.Error(), ShouldEqual, "The id attribute is required")
		})
	})
}

func TestDeleteTricycle(t *testing.T) {
	Convey("Given a stored tricycle", t, func() {
		store := &fakeStore{rows: []models.Tricycle{{ID: 3, Brand: "Radio Flyer", Model: "Classic", Material: "steel", LoadCapacity: 50}}, nextID: 3}
		service := NewTricycleService(store)
		ctx := context.Background()

		Convey("It can be deleted", func() {
			So(service.DeleteTricycle(ctx, decode(`{"id":3}`)), ShouldBeNil)
			So(store.rows, ShouldBeEmpty)
		})

		Convey("Deleting an unknown id breaks a business rule", func() {
			err := service.DeleteTricycle(ctx, decode(`{"id":4}`))
			So(errs.KindOf(err), ShouldEqual, errs.KindBusinessRule)
			So(errors.Is(err, repositories.ErrTricycleNotFound), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "tricycle not found")
		})

		Convey("A null id is a validation error", func() {
			err := service.DeleteTricycle(ctx, decode(`{"id":null}`))
			So(errs.KindOf(err), ShouldEqual, errs.KindValidation)
			So(err.Error(), ShouldEqual, "id cannot be null")
		})

		Convey("A missing id uses the delete wording", func() {
			err := service.DeleteTricycle(ctx, decode(`{"brand":"Radio Flyer"}`))
			So(errs.KindOf(err), ShouldEqual, errs.KindValidation)
			So(err.Error(), ShouldEqual, "id is required")
		})

		Convey("A negative id breaks a business rule", func() {
			err := service.DeleteTricycle(ctx, decode(`{"id":-3}`))
			So(errs.KindOf(err), ShouldEqual, errs.KindBusinessRule)
			So(err.Error(), ShouldEqual, "id must be a positive number")
			So(store.rows, ShouldHaveLength, 1)
		})

		Convey("Zero is an accepted id", func() {
			err := service.DeleteTricycle(ctx, decode(`{"id":0}`))
			So(errors.Is(err, repositories.ErrTricycleNotFound), ShouldBeTrue)
		})
	})
}

func TestGetTricycles(t *testing.T) {
	Convey("Given an empty table", t, func() {
		store := &fakeStore{}
		service := NewTricycleService(store)

		Convey("No rows is not an error", func() {
			rows, err := service.GetTricycles(context.Background())
			So(err, ShouldBeNil)
			So(rows, ShouldBeEmpty)
		})

		Convey("A store failure is an infrastructure error", func() {
			store.err = errors.New("timeout")
			_, err := service.GetTricycles(context.Background())
			So(errs.KindOf(err), ShouldEqual, errs.KindInfrastructure)
		})
	})
}

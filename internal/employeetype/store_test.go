package employeetype

import (
	"context"
	"errors"
	"testing"

	"payroll-backend/internal/database"
	"payroll-backend/internal/models"
	"payroll-backend/internal/testutil"
)

func ptr[T any](v T) *T { return &v }

func TestDeleteRefusesReferencedType(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	store := NewStore(db)

	manager, err := store.Create(ctx, Input{Name: "Manager", BaseSalary: ptr(5000.0), WorkingHours: ptr(40.0)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	intern, err := store.Create(ctx, Input{Name: "Intern", BaseSalary: ptr(1000.0)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	emp := models.Employee{FirstName: "Ada", LastName: "Lovelace", Salary: 5000, EmployeeTypeID: &manager.ID}
	if err := db.Create(&emp).Error; err != nil {
		t.Fatal(err)
	}

	if err := store.Delete(ctx, manager.ID); !errors.Is(err, ErrInUse) {
		t.Fatalf("delete referenced: err = %v, want ErrInUse", err)
	}
	if _, err := store.Get(ctx, manager.ID); err != nil {
		t.Errorf("referenced type was removed: %v", err)
	}

	if err := store.Delete(ctx, intern.ID); err != nil {
		t.Errorf("delete unreferenced: %v", err)
	}
	if err := store.Delete(ctx, 999); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("delete missing: err = %v", err)
	}
}

func TestCreateUpdateRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStore(testutil.OpenDB(t))

	created, err := store.Create(ctx, Input{
		Name:         "Manager",
		Description:  ptr("people lead"),
		BaseSalary:   ptr(5000.0),
		WorkingHours: ptr(40.0),
		Benefits:     ptr("health"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if created.ID == 0 || created.CreatedAt.IsZero() {
		t.Errorf("created row not re-read: %+v", created)
	}

	updated, err := store.Update(ctx, created.ID, Input{Name: "Senior Manager", BaseSalary: ptr(7000.0), WorkingHours: ptr(38.0)})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Name != "Senior Manager" || updated.BaseSalary != 7000 || updated.WorkingHours != 38 {
		t.Errorf("updated = %+v", updated)
	}
	// full overwrite: omitted optional fields are cleared
	if updated.Description != nil || updated.Benefits != nil {
		t.Errorf("optional fields not cleared: %+v", updated)
	}

	// omitted amounts reset to zero, the same as on create
	bare, err := store.Update(ctx, created.ID, Input{Name: "Manager"})
	if err != nil {
		t.Fatalf("update without amounts: %v", err)
	}
	if bare.BaseSalary != 0 || bare.WorkingHours != 0 {
		t.Errorf("bare update = %+v", bare)
	}

	if _, err := store.Update(ctx, 999, Input{Name: "x", BaseSalary: ptr(1.0), WorkingHours: ptr(1.0)}); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("update missing: err = %v", err)
	}

	types, err := store.List(ctx)
	if err != nil || len(types) != 1 {
		t.Fatalf("list = %v, %v", types, err)
	}
}

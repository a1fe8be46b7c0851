package employee

import (
	"context"
	"errors"
	"testing"
	"time"

	"payroll-backend/internal/database"
	"payroll-backend/internal/models"
	"payroll-backend/internal/testutil"
)

// Create runs the add_employee procedure and needs postgres; the remaining
// operations are plain SQL.
func TestStoreUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	store := NewStore(db)

	hired := models.NewDate(2023, time.June, 1)
	seed := models.Employee{FirstName: "Grace", LastName: "Hopper", HireDate: hired, Salary: 3000}
	if err := db.Create(&seed).Error; err != nil {
		t.Fatal(err)
	}

	email := "grace@example.com"
	salary := 3500.0
	got, err := store.Update(ctx, seed.ID, Input{FirstName: "Grace", LastName: "Murray Hopper", Email: &email, Salary: &salary})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.LastName != "Murray Hopper" || got.Email == nil || *got.Email != email || got.Salary != 3500 {
		t.Errorf("updated = %+v", got)
	}
	if !got.HireDate.Equal(hired.Time) {
		t.Errorf("hire date changed without being sent: %v", got.HireDate)
	}

	if _, err := store.Update(ctx, 999, Input{FirstName: "x", LastName: "y", Salary: &salary}); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("update missing: %v", err)
	}

	list, err := store.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("list = %v, %v", list, err)
	}

	if err := store.Delete(ctx, seed.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get(ctx, seed.ID); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("get deleted: %v", err)
	}
	if err := store.Delete(ctx, seed.ID); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("delete twice: %v", err)
	}
}

func TestStoreGetByUserID(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	store := NewStore(db)

	user := models.User{Username: "grace", PasswordHash: "x", Role: models.RoleEmployee}
	if err := db.Create(&user).Error; err != nil {
		t.Fatal(err)
	}
	seed := models.Employee{FirstName: "Grace", LastName: "Hopper", Salary: 3000, UserID: &user.ID}
	if err := db.Create(&seed).Error; err != nil {
		t.Fatal(err)
	}

	p, err := store.GetByUserID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get by user: %v", err)
	}
	if p.ID != seed.ID || p.FirstName != "Grace" || p.Username != "grace" || p.Role != models.RoleEmployee {
		t.Errorf("profile = %+v", p)
	}

	if _, err := store.GetByUserID(ctx, user.ID+1); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("unlinked user: %v", err)
	}
}

func TestStoreUpdateSalaryFallsBackToTypeBase(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	store := NewStore(db)

	typ := models.EmployeeType{Name: "Engineer", BaseSalary: 4100}
	if err := db.Create(&typ).Error; err != nil {
		t.Fatal(err)
	}
	seed := models.Employee{FirstName: "Ada", LastName: "Lovelace", Salary: 5000}
	if err := db.Create(&seed).Error; err != nil {
		t.Fatal(err)
	}

	got, err := store.Update(ctx, seed.ID, Input{FirstName: "Ada", LastName: "Lovelace", EmployeeTypeID: &typ.ID})
	if err != nil {
		t.Fatalf("update with type: %v", err)
	}
	if got.Salary != 4100 {
		t.Errorf("salary = %v, want type base 4100", got.Salary)
	}

	got, err = store.Update(ctx, seed.ID, Input{FirstName: "Ada", LastName: "Lovelace"})
	if err != nil {
		t.Fatalf("update without type: %v", err)
	}
	if got.Salary != 0 {
		t.Errorf("salary = %v, want 0", got.Salary)
	}
}

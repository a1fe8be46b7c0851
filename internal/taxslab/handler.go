package taxslab

import (
	"errors"
	"fmt"

	"payroll-backend/internal/audit"
	"payroll-backend/internal/auth"
	"payroll-backend/internal/models"
	"payroll-backend/internal/web"

	"github.com/gofiber/fiber/v2"
)

const entityType = "tax_slab"

func storeError(op string, err error) error {
	if errors.Is(err, ErrOverlap) {
		return fiber.NewError(fiber.StatusBadRequest, "Tax slab range overlaps with existing slabs")
	}
	return web.StoreError(op, "Tax slab", err)
}

// GET /api/tax-slabs
func ListTaxSlabsHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		slabs, err := store.List(c.UserContext())
		if err != nil {
			return storeError("fetching tax slabs", err)
		}
		return c.JSON(slabs)
	}
}

// GET /api/tax-slabs/:id
func GetTaxSlabHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := web.ParseID(c, "id")
		if err != nil {
			return err
		}

		slab, err := store.Get(c.UserContext(), id)
		if err != nil {
			return storeError("fetching tax slab", err)
		}
		return c.JSON(slab)
	}
}

// POST /api/tax-slabs
func CreateTaxSlabHandler(store Store, rec audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body Input
		if err := web.Bind(c, &body); err != nil {
			return err
		}
		if err := web.Validate(&body); err != nil {
			return err
		}

		slab, err := store.Create(c.UserContext(), body)
		if err != nil {
			return storeError("creating tax slab", err)
		}

		rec.Record(c.UserContext(), auth.ActorFrom(c), audit.Entry{
			EntityType:  entityType,
			EntityID:    slab.ID,
			Action:      models.AuditActionCreate,
			Description: describe("created", slab),
			Data:        slab,
		})

		return c.Status(fiber.StatusCreated).JSON(slab)
	}
}

// PUT /api/tax-slabs/:id
func UpdateTaxSlabHandler(store Store, rec audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := web.ParseID(c, "id")
		if err != nil {
			return err
		}

		var body Input
		if err := web.Bind(c, &body); err != nil {
			return err
		}
		if err := web.Validate(&body); err != nil {
			return err
		}

		slab, err := store.Update(c.UserContext(), id, body)
		if err != nil {
			return storeError("updating tax slab", err)
		}

		rec.Record(c.UserContext(), auth.ActorFrom(c), audit.Entry{
			EntityType:  entityType,
			EntityID:    slab.ID,
			Action:      models.AuditActionUpdate,
			Description: describe("updated", slab),
			Data:        slab,
		})

		return c.JSON(slab)
	}
}

// DELETE /api/tax-slabs/:id
func DeleteTaxSlabHandler(store Store, rec audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := web.ParseID(c, "id")
		if err != nil {
			return err
		}

		if err := store.Delete(c.UserContext(), id); err != nil {
			return storeError("deleting tax slab", err)
		}

		rec.Record(c.UserContext(), auth.ActorFrom(c), audit.Entry{
			EntityType:  entityType,
			EntityID:    id,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("deleted tax slab #%d", id),
		})

		return web.Message(c, fiber.StatusOK, "Tax slab deleted successfully")
	}
}

func describe(verb string, s *models.TaxSlab) string {
	return fmt.Sprintf("%s tax slab %.2f-%.2f at %.2f%%", verb, s.MinAmount, s.MaxAmount, s.TaxPercentage)
}

package adjustment

import (
	"fmt"

	"payroll-backend/internal/audit"
	"payroll-backend/internal/auth"
	"payroll-backend/internal/models"
	"payroll-backend/internal/web"

	"github.com/gofiber/fiber/v2"
)

// Handlers is the CRUD handler set for one Kind.
type Handlers struct {
	kind  Kind
	store Store
	rec   audit.Recorder
}

func NewHandlers(kind Kind, store Store, rec audit.Recorder) *Handlers {
	return &Handlers{kind: kind, store: store, rec: rec}
}

func (h *Handlers) List() fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := h.store.List(c.UserContext())
		if err != nil {
			return web.StoreError("fetching "+h.kind.Table, h.kind.Label, err)
		}
		return c.JSON(out)
	}
}

func (h *Handlers) Get() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := web.ParseID(c, "id")
		if err != nil {
			return err
		}

		a, err := h.store.Get(c.UserContext(), id)
		if err != nil {
			return web.StoreError("fetching "+h.kind.EntityType, h.kind.Label, err)
		}
		return c.JSON(a)
	}
}

func (h *Handlers) Create() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body Input
		if err := web.Bind(c, &body); err != nil {
			return err
		}

		a, err := h.store.Create(c.UserContext(), body)
		if err != nil {
			return web.StoreError("creating "+h.kind.EntityType, h.kind.Label, err)
		}

		h.rec.Record(c.UserContext(), auth.ActorFrom(c), audit.Entry{
			EntityType:  h.kind.EntityType,
			EntityID:    a.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("created %s %s (%.2f)", h.kind.EntityType, a.Type, a.Amount),
			Data:        a,
		})

		return c.Status(fiber.StatusCreated).JSON(a)
	}
}

func (h *Handlers) Update() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := web.ParseID(c, "id")
		if err != nil {
			return err
		}

		var body Input
		if err := web.Bind(c, &body); err != nil {
			return err
		}

		a, err := h.store.Update(c.UserContext(), id, body)
		if err != nil {
			return web.StoreError("updating "+h.kind.EntityType, h.kind.Label, err)
		}

		h.rec.Record(c.UserContext(), auth.ActorFrom(c), audit.Entry{
			EntityType:  h.kind.EntityType,
			EntityID:    a.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("updated %s #%d", h.kind.EntityType, a.ID),
			Data:        a,
		})

		return c.JSON(a)
	}
}

func (h *Handlers) Delete() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := web.ParseID(c, "id")
		if err != nil {
			return err
		}

		if err := h.store.Delete(c.UserContext(), id); err != nil {
			return web.StoreError("deleting "+h.kind.EntityType, h.kind.Label, err)
		}

		h.rec.Record(c.UserContext(), auth.ActorFrom(c), audit.Entry{
			EntityType:  h.kind.EntityType,
			EntityID:    id,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("deleted %s #%d", h.kind.EntityType, id),
		})

		return web.Message(c, fiber.StatusOK, h.kind.Label+" deleted successfully")
	}
}

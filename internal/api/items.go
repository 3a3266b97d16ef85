package api

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"stockroom/internal/imaging"
	"stockroom/internal/model"
	"stockroom/internal/store"
)

// ItemsHandler handles the item CRUD endpoints.
type ItemsHandler struct {
	DB       *sql.DB
	Validate *validator.Validate
}

// Quantity fields are pointers so that an explicit 0 can be told apart
// from a missing field.
type createItemRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"title"`
	Quantity    *int   `json:"quantity" validate:"required,gte=0"`
	Image       string `json:"image"`
}

type adjustItemRequest struct {
	ID        string `json:"id" validate:"required"`
	Quantity  *int   `json:"quantity" validate:"required"`
	Requester string `json:"requester" validate:"required"`
}

type deleteItemRequest struct {
	ID        string `json:"id" validate:"required"`
	Quantity  *int   `json:"quantity"`
	Requester string `json:"requester" validate:"required"`
}

type editItemRequest struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"title"`
	Quantity    *int   `json:"quantity" validate:"required,gte=0"`
}

// List handles GET /items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := store.ListItems(r.Context(), h.DB)
	if err != nil {
		jsonServerError(w, "failed to list items", err)
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	image, err := imaging.NormalizeDataURL(req.Image)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid image payload")
		return
	}

	item, err := store.CreateItem(r.Context(), h.DB, req.Name, req.Description, *req.Quantity, image)
	if err != nil {
		jsonServerError(w, "failed to create item", err)
		return
	}

	jsonResponse(w, http.StatusCreated, map[string]any{"message": "Added", "item": item})
}

// Adjust handles PUT /items. The supplied quantity is a signed delta
// applied to the item's current quantity.
func (h *ItemsHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	var req adjustItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := store.AdjustQuantity(r.Context(), h.DB, req.ID, *req.Quantity, req.Requester)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		jsonServerError(w, "failed to update item", err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{"message": "Updated", "item": item})
}

// Delete handles DELETE /items. With a quantity in the body it only
// decreases the item's quantity (clamped at zero); without one it
// removes the item entirely, leaving its history behind.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req deleteItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Quantity == nil {
		err := store.DeleteItem(r.Context(), h.DB, req.ID, req.Requester)
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, http.StatusNotFound, "item not found")
			return
		}
		if err != nil {
			jsonServerError(w, "failed to delete item", err)
			return
		}
		jsonResponse(w, http.StatusOK, map[string]any{"message": "Deleted"})
		return
	}

	// Partial removal: the caller supplies a magnitude to subtract.
	magnitude := *req.Quantity
	if magnitude < 0 {
		magnitude = -magnitude
	}
	item, err := store.AdjustQuantity(r.Context(), h.DB, req.ID, -magnitude, req.Requester)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		jsonServerError(w, "failed to delete item", err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{"message": "Quantity decreased", "item": item})
}

// Edit handles PUT /items/update, replacing an item's mutable fields.
func (h *ItemsHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var req editItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := store.UpdateItem(r.Context(), h.DB, req.ID, req.Name, req.Description, *req.Quantity)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		jsonServerError(w, "failed to update item", err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{"message": "Updated", "item": item})
}

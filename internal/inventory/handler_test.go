package inventory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*fiber.App, *Service) {
	t.Helper()
	svc := NewService(newTestDB(t))

	app := fiber.New()
	app.Post("/api/inventory-items", CreateItemHandler(svc))
	app.Get("/api/inventory-items", ListItemsHandler(svc))
	app.Get("/api/inventory-items/low-stock", ListLowStockHandler(svc))
	app.Get("/api/inventory-items/:id", GetItemHandler(svc))
	app.Put("/api/inventory-items/:id", UpdateItemHandler(svc))
	app.Delete("/api/inventory-items/:id", DeleteItemHandler(svc))
	app.Post("/api/inventory-items/:id/restock", RestockHandler(svc))
	return app, svc
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, payload
}

func TestCreateAndRestockOverHTTP(t *testing.T) {
	app, _ := newTestApp(t)

	status, payload := doJSON(t, app, "POST", "/api/inventory-items", CreateItemRequest{
		Name:         "Köfte",
		Category:     "meat",
		Unit:         "adet",
		CurrentStock: 24,
		MinimumStock: 10,
		UnitCost:     2.5,
		Supplier:     "Merkez Kasap",
	})
	require.Equal(t, fiber.StatusCreated, status)

	var created ItemResponse
	require.NoError(t, json.Unmarshal(payload, &created))
	require.NotZero(t, created.ID)
	require.Equal(t, 24.0, created.CurrentStock)

	status, payload = doJSON(t, app, "POST", fmt.Sprintf("/api/inventory-items/%d/restock", created.ID), RestockRequest{Quantity: 6})
	require.Equal(t, fiber.StatusOK, status)

	var restocked ItemResponse
	require.NoError(t, json.Unmarshal(payload, &restocked))
	require.Equal(t, 30.0, restocked.CurrentStock)
}

func TestCreateRejectsBadCategoryOverHTTP(t *testing.T) {
	app, _ := newTestApp(t)

	status, _ := doJSON(t, app, "POST", "/api/inventory-items", CreateItemRequest{
		Name:     "Köfte",
		Category: "sushi",
		Unit:     "adet",
	})
	require.Equal(t, fiber.StatusBadRequest, status)
}

func TestRestockValidationOverHTTP(t *testing.T) {
	app, svc := newTestApp(t)

	item, err := svc.Add(validInput())
	require.NoError(t, err)

	status, _ := doJSON(t, app, "POST", fmt.Sprintf("/api/inventory-items/%d/restock", item.ID), RestockRequest{Quantity: -1})
	require.Equal(t, fiber.StatusBadRequest, status)

	status, _ = doJSON(t, app, "POST", "/api/inventory-items/9999/restock", RestockRequest{Quantity: 5})
	require.Equal(t, fiber.StatusNotFound, status)
}

func TestDeleteOverHTTP(t *testing.T) {
	app, svc := newTestApp(t)

	item, err := svc.Add(validInput())
	require.NoError(t, err)

	status, _ := doJSON(t, app, "DELETE", fmt.Sprintf("/api/inventory-items/%d", item.ID), nil)
	require.Equal(t, fiber.StatusNoContent, status)

	status, _ = doJSON(t, app, "GET", fmt.Sprintf("/api/inventory-items/%d", item.ID), nil)
	require.Equal(t, fiber.StatusNotFound, status)
}

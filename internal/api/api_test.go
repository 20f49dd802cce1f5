package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/patchmarket/patch/internal/db"
	"github.com/patchmarket/patch/internal/model"
)

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	database := db.NewTestDB(t)
	router := NewRouter(database, nil)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, _ := json.Marshal(body)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func TestGoodsCreateAndGet(t *testing.T) {
	server := setupTestServer(t)

	resp := postJSON(t, server.URL+"/api/goods", map[string]string{
		"name":  "Watercolor Set",
		"price": "12.50",
		"major": "design",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var created model.Item
	json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()
	if created.Price.String() != "12.50" {
		t.Errorf("expected price 12.50, got %s", created.Price)
	}

	resp, err := http.Get(fmt.Sprintf("%s/api/goods/%d", server.URL, created.ID))
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var got model.Item
	json.NewDecoder(resp.Body).Decode(&got)
	if got.Name != "Watercolor Set" {
		t.Errorf("expected Watercolor Set, got %q", got.Name)
	}
}

func TestGoodsCreateMissingName(t *testing.T) {
	server := setupTestServer(t)

	resp := postJSON(t, server.URL+"/api/goods", map[string]string{"price": "5.00"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	json.NewDecoder(resp.Body).Decode(&body)
	if body.Errors["name"] == "" {
		t.Errorf("expected field-level error for name, got %+v", body.Errors)
	}
}

func TestGoodsGetMissing(t *testing.T) {
	server := setupTestServer(t)

	resp, err := http.Get(server.URL + "/api/goods/9999")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for missing goods, got %d", resp.StatusCode)
	}
}

func TestGoodsUpdate(t *testing.T) {
	server := setupTestServer(t)

	resp := postJSON(t, server.URL+"/api/goods", map[string]string{"name": "Easel", "price": "20.00"})
	var created model.Item
	json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()

	data, _ := json.Marshal(map[string]string{"name": "Easel", "price": "10.00"})
	req, _ := http.NewRequest(http.MethodPut,
		fmt.Sprintf("%s/api/goods/%d", server.URL, created.ID), bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var updated model.Item
	json.NewDecoder(resp.Body).Decode(&updated)
	if updated.Price.String() != "10.00" {
		t.Errorf("expected updated price 10.00, got %s", updated.Price)
	}
}

func TestGoodsUpdateInvalidPrice(t *testing.T) {
	server := setupTestServer(t)

	resp := postJSON(t, server.URL+"/api/goods", map[string]string{"name": "Easel", "price": "20.00"})
	var created model.Item
	json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()

	data, _ := json.Marshal(map[string]string{"name": "Easel", "price": "-5"})
	req, _ := http.NewRequest(http.MethodPut,
		fmt.Sprintf("%s/api/goods/%d", server.URL, created.ID), bytes.NewReader(data))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for negative price, got %d", resp.StatusCode)
	}
}

func TestGoodsDelete(t *testing.T) {
	server := setupTestServer(t)

	resp := postJSON(t, server.URL+"/api/goods", map[string]string{"name": "Canvas", "price": "4.00"})
	var created model.Item
	json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()

	req, _ := http.NewRequest(http.MethodDelete,
		fmt.Sprintf("%s/api/goods/%d", server.URL, created.ID), nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}

	resp, _ = http.Get(fmt.Sprintf("%s/api/goods/%d", server.URL, created.ID))
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", resp.StatusCode)
	}
}

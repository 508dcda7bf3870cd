package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anshulpatil/catalog-search/internal/catalog"
	"github.com/anshulpatil/catalog-search/internal/search"
)

func newTestServer(t *testing.T) (*httptest.Server, *catalog.Store) {
	t.Helper()
	store := catalog.NewStore()
	svc := search.NewService(store, search.NewCollector(2), 10, 100, 10)
	h := New(Config{
		Store:        store,
		Service:      svc,
		DefaultLimit: 10,
		MaxResults:   100,
	})
	mux := http.NewServeMux()
	h.Routes(mux)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts, store
}

func postProduct(t *testing.T, ts *httptest.Server, payload string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+"/api/v1/products", "application/json", bytes.NewBufferString(payload))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	return resp
}

const iphonePayload = `{
	"title": "Apple iPhone 16 (Black, 256GB storage)",
	"description": "Flagship smartphone with 8GB RAM",
	"brand": "Apple",
	"category": "mobile",
	"price": 80000,
	"rating": 4.8,
	"stock": 12
}`

func TestCreateAndGetProduct(t *testing.T) {
	ts, store := newTestServer(t)

	resp := postProduct(t, ts, iphonePayload)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	var created catalog.Product
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID != 1 {
		t.Errorf("ID = %d, want 1", created.ID)
	}
	// Ingestion-time attribute extraction filled the metadata.
	if created.Metadata["color"] != "black" {
		t.Errorf("extracted color = %q, want black", created.Metadata["color"])
	}
	if created.Metadata["ram"] != "8gb" {
		t.Errorf("extracted ram = %q, want 8gb", created.Metadata["ram"])
	}
	if created.Currency != "INR" {
		t.Errorf("Currency = %q, want the INR default", created.Currency)
	}
	if store.Len() != 1 {
		t.Errorf("store Len = %d, want 1", store.Len())
	}

	getResp, err := http.Get(fmt.Sprintf("%s/api/v1/products/%d", ts.URL, created.ID))
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer getResp.Body.Close()
	if getResp.StatusCode != http.StatusOK {
		t.Fatalf("GET status = %d, want 200", getResp.StatusCode)
	}
}

func TestCreateProductValidation(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postProduct(t, ts, `{"title": "", "price": -5, "rating": 9}`)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	var body struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, field := range []string{"title", "price", "rating"} {
		if body.Fields[field] == "" {
			t.Errorf("missing validation message for %q: %v", field, body.Fields)
		}
	}
}

func TestCreateProductBadJSON(t *testing.T) {
	ts, _ := newTestServer(t)
	resp := postProduct(t, ts, `{not json`)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestUpdateProduct(t *testing.T) {
	ts, store := newTestServer(t)
	resp := postProduct(t, ts, iphonePayload)
	resp.Body.Close()

	update := `{"title": "Apple iPhone 16 Pro", "brand": "Apple", "category": "mobile", "price": 120000, "rating": 4.9, "stock": 3}`
	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/v1/products/1", bytes.NewBufferString(update))
	req.Header.Set("Content-Type", "application/json")
	updResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT: %v", err)
	}
	defer updResp.Body.Close()
	if updResp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", updResp.StatusCode)
	}

	p, ok := store.Get(1)
	if !ok || p.Title != "Apple iPhone 16 Pro" || p.Price != 120000 {
		t.Errorf("stored product after update = %+v", p)
	}
}

func TestUpdateMissingProduct(t *testing.T) {
	ts, _ := newTestServer(t)
	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/v1/products/42",
		bytes.NewBufferString(`{"title": "Ghost", "price": 1}`))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestDeleteProduct(t *testing.T) {
	ts, store := newTestServer(t)
	resp := postProduct(t, ts, iphonePayload)
	resp.Body.Close()

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/v1/products/1", nil)
	delResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	defer delResp.Body.Close()
	if delResp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", delResp.StatusCode)
	}
	if store.Len() != 0 {
		t.Errorf("store Len = %d, want 0", store.Len())
	}
}

func TestSearchEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)
	resp := postProduct(t, ts, iphonePayload)
	resp.Body.Close()

	searchResp, err := http.Get(ts.URL + "/api/v1/search?q=Ifone")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer searchResp.Body.Close()
	if searchResp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", searchResp.StatusCode)
	}

	var result search.Result
	if err := json.NewDecoder(searchResp.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Corrected != "iphone" {
		t.Errorf("corrected = %q, want iphone", result.Corrected)
	}
	if result.Count != 1 {
		t.Fatalf("count = %d, want 1", result.Count)
	}
	if result.Results[0].Product.Brand != "Apple" {
		t.Errorf("result brand = %q", result.Results[0].Product.Brand)
	}
}

func TestSearchEndpointBadLimit(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/v1/search?q=iphone&limit=zero")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestSuggestEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)
	resp := postProduct(t, ts, iphonePayload)
	resp.Body.Close()

	sugResp, err := http.Get(ts.URL + "/api/v1/suggest?q=app")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer sugResp.Body.Close()
	if sugResp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", sugResp.StatusCode)
	}
	var body struct {
		Query       string   `json:"query"`
		Suggestions []string `json:"suggestions"`
	}
	if err := json.NewDecoder(sugResp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Suggestions) == 0 || body.Suggestions[0] != "apple" {
		t.Errorf("suggestions = %v, want apple first", body.Suggestions)
	}
}

func TestCacheStatsDisabled(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/v1/cache/stats")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "disabled" {
		t.Errorf("status = %q, want disabled", body["status"])
	}
}

package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/retailhub/orders-backend/internal/modules/auth"
	"github.com/retailhub/orders-backend/internal/modules/user"
)

func stubAuthn(id auth.Identity) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}

func newImportRouter(identityType string) (*fakeRepo, *chi.Mux) {
	repo := newFakeRepo()
	fetcher := &fakeFetcher{data: map[string][]byte{
		"https://acme.example/stock.yaml": []byte(sampleDocument),
	}}
	svc := NewService(repo, fetcher)
	router := chi.NewRouter()
	NewHandler(svc, stubAuthn(auth.Identity{UserID: 7, Email: "seller@example.com", Type: identityType})).RegisterRoutes(router)
	return repo, router
}

func postCatalog(router *chi.Mux, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/seller/catalog", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestImportCatalogEndpoint(t *testing.T) {
	repo, router := newImportRouter(user.TypeSeller)

	rec := postCatalog(router, `{"url":"https://acme.example/stock.yaml"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["Status"] != true {
		t.Errorf("Status = %v, want true", resp["Status"])
	}
	if repo.sellerName[7] != "Acme" {
		t.Errorf("seller name = %q, want Acme", repo.sellerName[7])
	}
}

func TestImportCatalogRequiresSellerAccount(t *testing.T) {
	_, router := newImportRouter(user.TypeBuyer)

	rec := postCatalog(router, `{"url":"https://acme.example/stock.yaml"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Only for sellers") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestImportCatalogRequiresURL(t *testing.T) {
	_, router := newImportRouter(user.TypeSeller)

	for _, body := range []string{`{}`, `{"url":""}`, `not json`} {
		rec := postCatalog(router, body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, rec.Code)
			continue
		}
		var resp map[string]interface{}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp["Error"] != "All required arguments not provided" {
			t.Errorf("body %q: Error = %v", body, resp["Error"])
		}
	}
}

func TestImportCatalogMapsErrors(t *testing.T) {
	_, router := newImportRouter(user.TypeSeller)

	rec := postCatalog(router, `{"url":"ftp://acme.example/stock.yaml"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid url: status = %d, want 400", rec.Code)
	}

	rec = postCatalog(router, `{"url":"https://acme.example/missing.yaml"}`)
	if rec.Code != http.StatusBadGateway {
		t.Errorf("fetch failure: status = %d, want 502", rec.Code)
	}
}

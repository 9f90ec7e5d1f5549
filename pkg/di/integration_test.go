package di

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-company-repository/company"
	"github.com/goliatone/go-company-repository/pkg/testsupport"
)

func request(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestEndToEndCachedRepositoryFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	container := newTestContainer(t, testConfig())
	router := container.Router()

	rec := request(t, router, http.MethodPost, "/api/company",
		company.CompanyDto{Name: "Acme", Address: "1 Main St", Country: "US"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created company.Company
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	path := rec.Header().Get("Location")
	for i := 0; i < 2; i++ {
		if rec := request(t, router, http.MethodGet, path, nil); rec.Code != http.StatusOK {
			t.Fatalf("get %d: expected 200, got %d", i, rec.Code)
		}
	}

	stats := container.Repository().Stats()
	if stats.Misses != 1 || stats.Fills != 1 || stats.Hits != 1 {
		t.Errorf("expected one miss, fill and hit, got %+v", stats)
	}

	rec = request(t, router, http.MethodGet, "/metrics", nil)
	if !strings.Contains(rec.Body.String(), `company_cache_lookups_total{operation="get_company",result="hit"} 1`) {
		t.Error("expected the cache hit to be exported")
	}
}

func TestCachedReadsAreStaleUntilExpiry(t *testing.T) {
	gin.SetMode(gin.TestMode)
	container := newTestContainer(t, testConfig())
	router := container.Router()
	ctx := context.Background()

	c := testsupport.SeedCompany(t, container.Provider(), company.CompanyDto{Name: "Acme", Address: "1 Main St", Country: "US"})

	if _, err := container.Repository().GetCompanies(ctx); err != nil {
		t.Fatalf("GetCompanies: %v", err)
	}

	rec := request(t, router, http.MethodPost, "/api/company",
		company.CompanyDto{Name: "Globex", Address: "2 Side St", Country: "CA"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", rec.Code)
	}

	cached, err := container.Repository().GetCompanies(ctx)
	if err != nil {
		t.Fatalf("GetCompanies: %v", err)
	}
	if len(cached) != 1 || cached[0].ID != c.ID {
		t.Errorf("expected the cached single-company list, got %+v", cached)
	}

	fresh, err := container.BaseRepository().GetCompanies(ctx)
	if err != nil {
		t.Fatalf("GetCompanies: %v", err)
	}
	if len(fresh) != 2 {
		t.Errorf("expected the store to hold 2 companies, got %d", len(fresh))
	}
}

func TestWriteMethodPassThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	container := newTestContainer(t, testConfig())
	router := container.Router()
	p := container.Provider()

	c := testsupport.SeedCompany(t, p, company.CompanyDto{Name: "Acme", Address: "1 Main St", Country: "US"})
	testsupport.SeedEmployee(t, p, c.ID, "Ada")

	path := "/api/company/" + strconv.Itoa(c.ID)
	if rec := request(t, router, http.MethodPut, path,
		company.CompanyDto{Name: "Acme Corp", Address: "9 New St", Country: "GB"}); rec.Code != http.StatusNoContent {
		t.Fatalf("update: expected 204, got %d", rec.Code)
	}

	rec := request(t, router, http.MethodGet, path+"/MultipleResult", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("multiple result: expected 200, got %d", rec.Code)
	}
	var got company.Company
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Name != "Acme Corp" || len(got.Employees) != 1 {
		t.Errorf("expected uncached read to see the update, got %+v", got)
	}

	if rec := request(t, router, http.MethodDelete, path, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", rec.Code)
	}
	if n := testsupport.CountCompanies(t, p); n != 0 {
		t.Errorf("expected company deleted, got %d rows", n)
	}
}

func TestBatchAndMappingFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	container := newTestContainer(t, testConfig())
	router := container.Router()
	p := container.Provider()

	dtos := []company.CompanyDto{
		{Name: "Acme", Address: "1 Main St", Country: "US"},
		{Name: "Globex", Address: "2 Side St", Country: "CA"},
	}
	if rec := request(t, router, http.MethodPost, "/api/company/Multiple", dtos); rec.Code != http.StatusOK {
		t.Fatalf("batch: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	companies, err := container.BaseRepository().GetCompanies(context.Background())
	if err != nil || len(companies) != 2 {
		t.Fatalf("expected 2 companies, got %d (%v)", len(companies), err)
	}
	testsupport.SeedEmployee(t, p, companies[0].ID, "Ada")

	rec := request(t, router, http.MethodGet, "/api/company/MultipleMapping", nil)
	var mapped []company.Company
	if err := json.Unmarshal(rec.Body.Bytes(), &mapped); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(mapped) != 1 || mapped[0].ID != companies[0].ID {
		t.Errorf("expected only the company with employees, got %+v", mapped)
	}
}

func TestCacheWarmerFillsCache(t *testing.T) {
	container := newTestContainer(t, testConfig())
	p := container.Provider()
	ctx := context.Background()

	for _, name := range []string{"Acme", "Globex", "Initech"} {
		testsupport.SeedCompany(t, p, company.CompanyDto{Name: name, Address: "x", Country: "US"})
	}

	n, err := container.CacheWarmer().Run(ctx)
	if err != nil || n != 3 {
		t.Fatalf("Run() = %d, %v", n, err)
	}

	before := container.Repository().Stats()
	if _, err := container.Repository().GetCompany(ctx, 2); err != nil {
		t.Fatalf("GetCompany: %v", err)
	}
	if after := container.Repository().Stats(); after.Hits != before.Hits+1 {
		t.Errorf("expected warmed company to hit the cache, stats %+v -> %+v", before, after)
	}
}

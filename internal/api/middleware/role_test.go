package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/sweetshop/inventory-api/internal/core/domain"
)

func runRequireRole(t *testing.T, required string, contextRole interface{}) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/sweets/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if contextRole != nil {
		c.Set(ContextRole, contextRole)
	}

	reached := false
	handler := RequireRole(required)(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec, reached
}

func TestRequireRole_AdminPasses(t *testing.T) {
	rec, reached := runRequireRole(t, domain.RoleAdmin, domain.RoleAdmin)
	if !reached {
		t.Fatalf("expected handler to run")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireRole_CustomerRejected(t *testing.T) {
	rec, reached := runRequireRole(t, domain.RoleAdmin, domain.RoleCustomer)
	if reached {
		t.Fatalf("handler should not run")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Admin access required") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestRequireRole_MissingOrBogusRole(t *testing.T) {
	cases := []struct {
		name string
		role interface{}
	}{
		{"role absent from context", nil},
		{"non-string role claim", 42},
		{"unknown role", "superuser"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, reached := runRequireRole(t, domain.RoleAdmin, tc.role)
			if reached {
				t.Fatalf("handler should not run")
			}
			if rec.Code != http.StatusForbidden {
				t.Fatalf("expected 403, got %d", rec.Code)
			}
		})
	}
}

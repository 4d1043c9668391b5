// Package router define las rutas HTTP del servicio.
package router

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	admincontrollers "github.com/dropDatabas3/comandas/internal/http/controllers/admin"
	authcontrollers "github.com/dropDatabas3/comandas/internal/http/controllers/auth"
	httperrors "github.com/dropDatabas3/comandas/internal/http/errors"
	"github.com/dropDatabas3/comandas/internal/http/helpers"
	mw "github.com/dropDatabas3/comandas/internal/http/middlewares"
	"github.com/dropDatabas3/comandas/internal/metrics"
	"github.com/dropDatabas3/comandas/internal/security/token"
	"github.com/dropDatabas3/comandas/internal/store"
)

// Controllers agrupa los controllers que monta el router.
type Controllers struct {
	Login    *authcontrollers.LoginController
	Employee *admincontrollers.EmployeeController
	Category *admincontrollers.CategoryController
}

// Deps contiene las dependencias para armar el router.
type Deps struct {
	Store       store.Store
	Verifier    *token.Verifier
	Controllers Controllers
	Gate        mw.GateRules
}

// New arma el router completo con la cadena de middlewares.
// El orden importa: recover envuelve todo, el gate corre último para que
// sus rechazos queden logueados y medidos.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	// Métricas y gate corren dentro de chi para ver el patrón de ruta.
	r.Use(
		mw.WithMetrics(),
		mw.RequireToken(deps.Verifier, deps.Gate),
	)

	c := deps.Controllers

	// ─── Autenticación (pública por exclusión del gate) ───
	r.Post("/admin/employee/login", c.Login.Login)
	r.Post("/admin/employee/logout", c.Login.Logout)

	// ─── Empleados ───
	r.Post("/admin/employee", c.Employee.Create)
	r.Get("/admin/employee/page", c.Employee.Page)
	r.Post("/admin/employee/status/{status}", c.Employee.SetStatus)
	r.Put("/admin/employee", c.Employee.Update)
	r.Put("/admin/employee/editPassword", c.Employee.EditPassword)
	r.Get("/admin/employee/{id}", c.Employee.GetByID)

	// ─── Categorías ───
	r.Post("/admin/category", c.Category.Create)
	r.Get("/admin/category/page", c.Category.Page)
	r.Post("/admin/category/status/{status}", c.Category.SetStatus)
	r.Put("/admin/category", c.Category.Update)
	r.Delete("/admin/category", c.Category.Delete)
	r.Get("/admin/category/list", c.Category.List)

	// ─── Operación ───
	r.Get("/readyz", readyz(deps.Store))
	r.Handle("/metrics", metrics.Handler())

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
	})

	return mw.Chain(r,
		mw.WithRecover(),
		mw.WithRequestID(),
		mw.WithLogging(),
	)
}

// readyz verifica la conectividad del store.
func readyz(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := st.Ping(ctx); err != nil {
			httperrors.WriteError(w, httperrors.ErrServiceUnavailable.WithDetail("store no disponible"))
			return
		}
		helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

package middlewares

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/dropDatabas3/comandas/internal/http/errors"
	"github.com/dropDatabas3/comandas/internal/observability/logger"
	"github.com/dropDatabas3/comandas/internal/security/token"
)

// =================================================================================
// AUTHENTICATION MIDDLEWARES
// =================================================================================

// GateRules define qué rutas exige proteger el gate y de qué header leer el token.
// Las reglas se evalúan en orden: primero exclusiones exactas, después el prefijo.
type GateRules struct {
	// Header es el nombre del header del que se lee el token crudo.
	Header string
	// ProtectedPrefix: toda ruta bajo este prefijo requiere token.
	ProtectedPrefix string
	// Excluded: rutas exactas que pasan sin token aunque estén bajo el prefijo.
	Excluded []string
}

// protects decide si la ruta requiere token según las reglas.
func (g GateRules) protects(path string) bool {
	for _, ex := range g.Excluded {
		if path == ex {
			return false
		}
	}
	return strings.HasPrefix(path, g.ProtectedPrefix)
}

// RequireToken valida el token del header configurado y guarda el ID del
// empleado autenticado en el contexto del request. Las rutas que las reglas
// no protegen pasan sin tocar.
//
// Si el token falta o es inválido responde 401 con el código específico.
func RequireToken(verifier *token.Verifier, rules GateRules) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rules.protects(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			raw := strings.TrimSpace(r.Header.Get(rules.Header))
			if raw == "" {
				errors.WriteError(w, errors.ErrTokenMissing)
				return
			}

			empID, err := verifier.Verify(raw)
			if err != nil {
				logger.From(r.Context()).Warn("token rechazado",
					logger.Component("gate"),
					logger.Op("verify"),
					logger.Err(err),
				)
				errors.WriteError(w, gateError(err))
				return
			}

			ctx := WithEmployeeID(r.Context(), empID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// gateError traduce los errores del verificador a la taxonomía HTTP.
func gateError(err error) *errors.AppError {
	switch {
	case stderrors.Is(err, token.ErrExpired):
		return errors.ErrTokenExpired
	case stderrors.Is(err, token.ErrSignature):
		return errors.ErrTokenSignature
	default:
		return errors.ErrTokenMalformed
	}
}

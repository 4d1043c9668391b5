package middlewares

import "context"

// =================================================================================
// CONTEXT KEYS
// =================================================================================

type ctxKey string

const (
	// ctxEmployeeIDKey guarda el id del empleado autenticado
	ctxEmployeeIDKey ctxKey = "employee_id"
	// ctxRequestIDKey guarda el request ID
	ctxRequestIDKey ctxKey = "request_id"
)

// =================================================================================
// CONTEXT SETTERS (usados por middlewares)
// =================================================================================

// WithEmployeeID inyecta la identidad autenticada en el contexto del request.
// Lo llama el gate exactamente una vez por request; al viajar en el
// context.Context, cada request concurrente ve solo su propia entrada.
func WithEmployeeID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, ctxEmployeeIDKey, id)
}

// setRequestID inyecta el request ID en el contexto (interno)
func setRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxRequestIDKey, requestID)
}

// =================================================================================
// CONTEXT GETTERS (públicos, usados por handlers/services)
// =================================================================================

// GetEmployeeID obtiene el id del empleado autenticado.
// ok es false en rutas donde el gate no corrió (login, readyz).
// Los services lo usan para los campos de auditoría create_user/update_user.
func GetEmployeeID(ctx context.Context) (id int64, ok bool) {
	if v := ctx.Value(ctxEmployeeIDKey); v != nil {
		if n, ok := v.(int64); ok {
			return n, true
		}
	}
	return 0, false
}

// GetRequestID obtiene el request ID del contexto.
// Retorna cadena vacía si no hay request ID.
func GetRequestID(ctx context.Context) string {
	if v := ctx.Value(ctxRequestIDKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Package logger provee logging estructurado basado en zap.
//
// Uso típico:
//
//	logger.Init(logger.Config{Env: cfg.App.Env, Level: "info"})
//	defer logger.Sync()
//
//	log := logger.From(ctx).With(logger.Layer("service"), logger.Op("Login"))
//	log.Info("login ok", logger.EmployeeID(emp.ID))
//
// Los middlewares HTTP inyectan un logger scoped (request_id, method, path)
// en el contexto; From(ctx) lo recupera en cualquier capa.
package logger

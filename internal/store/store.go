// Package store expone el acceso a datos detrás de un registry de adapters.
//
// Cada backend (postgres, memory) se registra vía init() y se selecciona por
// configuración. Los binarios importan los adapters con blank imports:
//
//	_ "github.com/dropDatabas3/comandas/internal/store/pg"
//	_ "github.com/dropDatabas3/comandas/internal/store/memory"
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/dropDatabas3/comandas/internal/store/core"
)

// Store agrupa los repositorios y el ciclo de vida de la conexión.
type Store interface {
	Employees() core.EmployeeRepository
	Categories() core.CategoryRepository

	// Ping verifica la conectividad del backend (usado por /readyz).
	Ping(ctx context.Context) error
	Close() error
}

// Config selecciona y parametriza el adapter.
type Config struct {
	Driver       string // "postgres" | "memory"
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

// Adapter construye un Store para un driver concreto.
type Adapter interface {
	Name() string
	Open(ctx context.Context, cfg Config) (Store, error)
}

var (
	adaptersMu sync.RWMutex
	adapters   = map[string]Adapter{}
)

// RegisterAdapter registra un adapter. Se llama desde init() de cada backend.
// Panic si el nombre ya está registrado: es un bug de wiring, no un error
// de runtime.
func RegisterAdapter(a Adapter) {
	adaptersMu.Lock()
	defer adaptersMu.Unlock()
	if _, dup := adapters[a.Name()]; dup {
		panic(fmt.Sprintf("store: adapter %q registrado dos veces", a.Name()))
	}
	adapters[a.Name()] = a
}

// Open abre el Store para el driver configurado.
func Open(ctx context.Context, cfg Config) (Store, error) {
	adaptersMu.RLock()
	a, ok := adapters[cfg.Driver]
	adaptersMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("store: driver %q no registrado (disponibles: %v)", cfg.Driver, registered())
	}
	return a.Open(ctx, cfg)
}

func registered() []string {
	names := make([]string, 0, len(adapters))
	for n := range adapters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

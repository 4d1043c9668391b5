package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dropDatabas3/comandas/internal/cache"
	cachemem "github.com/dropDatabas3/comandas/internal/cache/memory"
	cacheredis "github.com/dropDatabas3/comandas/internal/cache/redis"
	"github.com/dropDatabas3/comandas/internal/config"
	admincontrollers "github.com/dropDatabas3/comandas/internal/http/controllers/admin"
	authcontrollers "github.com/dropDatabas3/comandas/internal/http/controllers/auth"
	mw "github.com/dropDatabas3/comandas/internal/http/middlewares"
	"github.com/dropDatabas3/comandas/internal/http/router"
	adminsvc "github.com/dropDatabas3/comandas/internal/http/services/admin"
	authsvc "github.com/dropDatabas3/comandas/internal/http/services/auth"
	"github.com/dropDatabas3/comandas/internal/observability/logger"
	"github.com/dropDatabas3/comandas/internal/security/password"
	"github.com/dropDatabas3/comandas/internal/security/token"
	"github.com/dropDatabas3/comandas/internal/store"
	"github.com/dropDatabas3/comandas/internal/store/core"
	"github.com/dropDatabas3/comandas/internal/store/pg"
	"github.com/dropDatabas3/comandas/migrations/postgres"

	// El adapter en memoria se registra vía init(); el de postgres ya queda
	// registrado por el import directo de pg.
	_ "github.com/dropDatabas3/comandas/internal/store/memory"
)

func main() {
	// .env es opcional: solo para desarrollo local.
	_ = godotenv.Load()

	var configPath string

	root := &cobra.Command{
		Use:          "comandas",
		Short:        "Back-office de comandas: autenticación de empleados y catálogo",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "ruta del archivo de configuración")

	root.AddCommand(
		serveCmd(&configPath),
		migrateCmd(&configPath),
		seedCmd(&configPath),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig carga y valida. Una configuración inválida es fatal acá,
// nunca durante un request.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		if errors.Is(err, config.ErrConfiguration) {
			return nil, fmt.Errorf("configuración rechazada: %w", err)
		}
		return nil, fmt.Errorf("cargar %s: %w", path, err)
	}
	return cfg, nil
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	return store.Open(ctx, store.Config{
		Driver:       cfg.Storage.Driver,
		DSN:          cfg.Storage.DSN,
		MaxOpenConns: cfg.Storage.Postgres.MaxOpenConns,
		MaxIdleConns: cfg.Storage.Postgres.MaxIdleConns,
	})
}

func buildCache(cfg *config.Config) cache.Cache {
	if cfg.Cache.Kind == "redis" {
		return cacheredis.New(cfg.Cache.Redis.Addr, cfg.Cache.Redis.DB, cfg.Cache.Redis.Prefix)
	}
	return cachemem.New(cfg.MemoryCacheTTL())
}

func serveCmd(configPath *string) *cobra.Command {
	var runMigrations bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Levanta el servidor HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			logger.Init(logger.Config{Env: cfg.App.Env, Level: "info"})
			defer func() { _ = logger.Sync() }()
			log := logger.Named("comandas")

			ctx := cmd.Context()

			if runMigrations && cfg.Storage.Driver == "postgres" {
				applied, err := pg.Migrate(ctx, cfg.Storage.DSN, postgres.FS, postgres.Dir)
				if err != nil {
					return fmt.Errorf("migrar: %w", err)
				}
				if len(applied) > 0 {
					log.Info("migraciones aplicadas", logger.Any("versions", applied))
				}
			}

			st, err := openStore(ctx, cfg)
			if err != nil {
				return fmt.Errorf("abrir store: %w", err)
			}
			defer func() { _ = st.Close() }()

			issuer, err := token.NewIssuer(cfg.Auth.Secret, cfg.AuthTTL(), cfg.Auth.ClaimKey)
			if err != nil {
				return fmt.Errorf("configurar issuer: %w", err)
			}
			verifier, err := token.NewVerifier(cfg.Auth.Secret, cfg.Auth.ClaimKey)
			if err != nil {
				return fmt.Errorf("configurar verifier: %w", err)
			}

			loginSvc := authsvc.NewLoginService(authsvc.LoginDeps{Store: st, Issuer: issuer})
			empSvc := adminsvc.NewEmployeeService(adminsvc.EmployeeDeps{
				Store:           st,
				DefaultPassword: cfg.Employee.DefaultPassword,
			})
			catSvc := adminsvc.NewCategoryService(adminsvc.CategoryDeps{
				Store:   st,
				Cache:   buildCache(cfg),
				ListTTL: cfg.MemoryCacheTTL(),
			})

			h := router.New(router.Deps{
				Store:    st,
				Verifier: verifier,
				Controllers: router.Controllers{
					Login:    authcontrollers.NewLoginController(loginSvc),
					Employee: admincontrollers.NewEmployeeController(empSvc),
					Category: admincontrollers.NewCategoryController(catSvc),
				},
				Gate: mw.GateRules{
					Header:          cfg.Auth.Header,
					ProtectedPrefix: cfg.Auth.ProtectedPrefix,
					Excluded:        cfg.Auth.ExcludedPaths,
				},
			})

			srv := &http.Server{
				Addr:         cfg.Server.Addr,
				Handler:      h,
				ReadTimeout:  10 * time.Second,
				WriteTimeout: 30 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info("servidor escuchando", logger.String("addr", cfg.Server.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return fmt.Errorf("servidor: %w", err)
			case sig := <-stop:
				log.Info("apagando", logger.String("signal", sig.String()))
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			log.Info("servidor detenido")
			return nil
		},
	}
	cmd.Flags().BoolVar(&runMigrations, "migrate", false, "aplica las migraciones pendientes antes de escuchar")
	return cmd
}

func migrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones pendientes del esquema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if cfg.Storage.Driver != "postgres" {
				return fmt.Errorf("migrate solo aplica al driver postgres (driver actual: %s)", cfg.Storage.Driver)
			}

			logger.Init(logger.Config{Env: cfg.App.Env, Level: "info"})
			defer func() { _ = logger.Sync() }()
			log := logger.Named("migrate")

			applied, err := pg.Migrate(cmd.Context(), cfg.Storage.DSN, postgres.FS, postgres.Dir)
			if err != nil {
				return fmt.Errorf("migrar: %w", err)
			}
			if len(applied) == 0 {
				log.Info("esquema al día, nada que aplicar")
				return nil
			}
			log.Info("migraciones aplicadas", logger.Any("versions", applied))
			return nil
		},
	}
}

func seedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Crea el empleado admin inicial y categorías de ejemplo",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			logger.Init(logger.Config{Env: cfg.App.Env, Level: "info"})
			defer func() { _ = logger.Sync() }()
			log := logger.Named("seed")

			ctx := cmd.Context()
			st, err := openStore(ctx, cfg)
			if err != nil {
				return fmt.Errorf("abrir store: %w", err)
			}
			defer func() { _ = st.Close() }()

			digest, err := password.Hash(cfg.Employee.DefaultPassword)
			if err != nil {
				return fmt.Errorf("hash: %w", err)
			}

			admin, err := st.Employees().Insert(ctx, &core.Employee{
				Name:     "Administrador",
				Username: "admin",
				Password: digest,
				Status:   core.StatusEnabled,
			})
			switch {
			case errors.Is(err, core.ErrDuplicate):
				log.Info("admin ya existe, seed omitido")
				return nil
			case err != nil:
				return fmt.Errorf("crear admin: %w", err)
			}
			log.Info("admin creado", logger.EmployeeID(admin.ID))

			for _, c := range []core.Category{
				{Type: core.CategoryTypeDish, Name: "Platos principales", Sort: 1, Status: core.StatusEnabled},
				{Type: core.CategoryTypeDish, Name: "Sopas", Sort: 2, Status: core.StatusEnabled},
				{Type: core.CategoryTypeSetmeal, Name: "Combos", Sort: 3, Status: core.StatusEnabled},
			} {
				c.CreateUser = admin.ID
				c.UpdateUser = admin.ID
				if _, err := st.Categories().Insert(ctx, &c); err != nil && !errors.Is(err, core.ErrDuplicate) {
					return fmt.Errorf("crear categoría %s: %w", c.Name, err)
				}
			}
			log.Info("categorías de ejemplo creadas")
			return nil
		},
	}
}

package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/dropDatabas3/comandas/internal/cache"
	dto "github.com/dropDatabas3/comandas/internal/http/dto/admin"
	"github.com/dropDatabas3/comandas/internal/observability/logger"
	"github.com/dropDatabas3/comandas/internal/store"
	"github.com/dropDatabas3/comandas/internal/store/core"
)

// Errores del servicio de categorías.
var (
	ErrCategoryMissingFields = fmt.Errorf("missing required fields")
	ErrCategoryNotFound      = fmt.Errorf("category not found")
	ErrCategoryNameTaken     = fmt.Errorf("category name already taken")
	ErrInvalidCategoryType   = fmt.Errorf("invalid category type")
)

// CategoryDeps contiene las dependencias del servicio de categorías.
type CategoryDeps struct {
	Store store.Store
	Cache cache.Cache
	// ListTTL es la vigencia del listado cacheado.
	ListTTL time.Duration
}

// CategoryService expone el CRUD del catálogo de categorías.
type CategoryService interface {
	Create(ctx context.Context, in dto.CreateCategoryRequest, operator int64) (*core.Category, error)
	Page(ctx context.Context, q core.PageQuery) (int64, []core.Category, error)
	SetStatus(ctx context.Context, id int64, status int, operator int64) error
	Update(ctx context.Context, in dto.UpdateCategoryRequest, operator int64) error
	Delete(ctx context.Context, id int64) error
	ListByType(ctx context.Context, categoryType int) ([]core.Category, error)
}

type categoryService struct {
	deps  CategoryDeps
	group singleflight.Group
}

// NewCategoryService crea el servicio de categorías.
func NewCategoryService(deps CategoryDeps) CategoryService {
	if deps.ListTTL <= 0 {
		deps.ListTTL = 2 * time.Minute
	}
	return &categoryService{deps: deps}
}

func (s *categoryService) log(ctx context.Context, op string) *zap.Logger {
	return logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("admin.category"),
		logger.Op(op),
	)
}

func listKey(categoryType int) string {
	return fmt.Sprintf("category:list:%d", categoryType)
}

// invalidateLists borra todas las variantes cacheadas del listado.
// Toda mutación del catálogo pasa por acá.
func (s *categoryService) invalidateLists() {
	if s.deps.Cache == nil {
		return
	}
	for _, t := range []int{0, core.CategoryTypeDish, core.CategoryTypeSetmeal} {
		s.deps.Cache.Delete(listKey(t))
	}
}

func validCategoryType(t int) bool {
	return t == core.CategoryTypeDish || t == core.CategoryTypeSetmeal
}

func (s *categoryService) Create(ctx context.Context, in dto.CreateCategoryRequest, operator int64) (*core.Category, error) {
	log := s.log(ctx, "Create")

	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, ErrCategoryMissingFields
	}
	if !validCategoryType(in.Type) {
		return nil, ErrInvalidCategoryType
	}

	cat, err := s.deps.Store.Categories().Insert(ctx, &core.Category{
		Type: in.Type,
		Name: in.Name,
		Sort: in.Sort,
		// Las categorías nuevas arrancan deshabilitadas hasta que se publican.
		Status:     core.StatusDisabled,
		CreateUser: operator,
		UpdateUser: operator,
	})
	if err != nil {
		if errors.Is(err, core.ErrDuplicate) {
			return nil, ErrCategoryNameTaken
		}
		return nil, fmt.Errorf("insert category: %w", err)
	}

	s.invalidateLists()
	log.Info("categoría creada", logger.CategoryID(cat.ID), logger.String("name", cat.Name))
	return cat, nil
}

func (s *categoryService) Page(ctx context.Context, q core.PageQuery) (int64, []core.Category, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = 10
	}

	total, cats, err := s.deps.Store.Categories().Page(ctx, q)
	if err != nil {
		return 0, nil, fmt.Errorf("page categories: %w", err)
	}
	return total, cats, nil
}

func (s *categoryService) SetStatus(ctx context.Context, id int64, status int, operator int64) error {
	log := s.log(ctx, "SetStatus")

	if status != core.StatusEnabled && status != core.StatusDisabled {
		return ErrInvalidStatus
	}

	err := s.deps.Store.Categories().Update(ctx, &core.Category{
		ID:         id,
		Status:     status,
		UpdateUser: operator,
	})
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("update status: %w", err)
	}

	s.invalidateLists()
	log.Info("status de categoría actualizado", logger.CategoryID(id), logger.Int("status", status))
	return nil
}

func (s *categoryService) Update(ctx context.Context, in dto.UpdateCategoryRequest, operator int64) error {
	log := s.log(ctx, "Update")

	if in.ID == 0 {
		return ErrCategoryMissingFields
	}
	if in.Type != 0 && !validCategoryType(in.Type) {
		return ErrInvalidCategoryType
	}

	err := s.deps.Store.Categories().Update(ctx, &core.Category{
		ID:         in.ID,
		Type:       in.Type,
		Name:       strings.TrimSpace(in.Name),
		Sort:       in.Sort,
		Status:     core.StatusUnchanged,
		UpdateUser: operator,
	})
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			return ErrCategoryNotFound
		case errors.Is(err, core.ErrDuplicate):
			return ErrCategoryNameTaken
		default:
			return fmt.Errorf("update category: %w", err)
		}
	}

	s.invalidateLists()
	log.Info("categoría actualizada", logger.CategoryID(in.ID))
	return nil
}

func (s *categoryService) Delete(ctx context.Context, id int64) error {
	log := s.log(ctx, "Delete")

	if err := s.deps.Store.Categories().Delete(ctx, id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("delete category: %w", err)
	}

	s.invalidateLists()
	log.Info("categoría eliminada", logger.CategoryID(id))
	return nil
}

// ListByType devuelve las categorías habilitadas, cacheadas por tipo.
// singleflight colapsa los misses concurrentes: una sola query por key
// aunque lleguen N requests a la vez con el cache frío.
func (s *categoryService) ListByType(ctx context.Context, categoryType int) ([]core.Category, error) {
	if categoryType != 0 && !validCategoryType(categoryType) {
		return nil, ErrInvalidCategoryType
	}

	if s.deps.Cache == nil {
		return s.deps.Store.Categories().ListByType(ctx, categoryType)
	}

	key := listKey(categoryType)
	if raw, ok := s.deps.Cache.Get(key); ok {
		var cats []core.Category
		if err := json.Unmarshal(raw, &cats); err == nil {
			return cats, nil
		}
		// Entrada corrupta: descartarla y recargar.
		s.deps.Cache.Delete(key)
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		cats, err := s.deps.Store.Categories().ListByType(ctx, categoryType)
		if err != nil {
			return nil, err
		}
		if raw, err := json.Marshal(cats); err == nil {
			s.deps.Cache.Set(key, raw, s.deps.ListTTL)
		}
		return cats, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return v.([]core.Category), nil
}

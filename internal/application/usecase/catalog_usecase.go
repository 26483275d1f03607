package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gestorcampo/gestor-api/internal/application/dto"
	"github.com/gestorcampo/gestor-api/internal/application/events"
	"github.com/gestorcampo/gestor-api/internal/domain"
	"github.com/gestorcampo/gestor-api/internal/domain/entity"
	"github.com/gestorcampo/gestor-api/internal/domain/repository"
	"github.com/gestorcampo/gestor-api/pkg/strutil"
)

// CategoryUseCase CRUD de categorias de produto.
type CategoryUseCase struct {
	repo     repository.CategoryRepository
	notifier *events.Notifier
}

// NewCategoryUseCase constrói o caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, notifier *events.Notifier) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, notifier: notifier}
}

// Create cria uma categoria.
func (uc *CategoryUseCase) Create(in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("nome obrigatório: %w", domain.ErrInvalidInput)
	}
	now := time.Now()
	cat := &entity.Category{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Status:    entity.StatusAtivo,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(cat); err != nil {
		return nil, err
	}
	uc.notifier.Publish(events.Change{Entity: "categories", Action: "created", ID: cat.ID})
	return toCategoryResponse(cat), nil
}

// Update renomeia uma categoria.
func (uc *CategoryUseCase) Update(id, name string) (*dto.CategoryResponse, error) {
	if name == "" {
		return nil, fmt.Errorf("nome não pode ficar vazio: %w", domain.ErrInvalidInput)
	}
	cat, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrNotFound
	}
	cat.Name = name
	cat.UpdatedAt = time.Now()
	if err := uc.repo.Update(cat); err != nil {
		return nil, err
	}
	uc.notifier.Publish(events.Change{Entity: "categories", Action: "updated", ID: cat.ID})
	return toCategoryResponse(cat), nil
}

// List devolve as categorias com filtro de busca insensível a acentos.
func (uc *CategoryUseCase) List(includeInactive bool, search string) ([]*dto.CategoryResponse, error) {
	list, err := uc.repo.List(includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		if search != "" && !strutil.ContainsFold(c.Name, search) {
			continue
		}
		out = append(out, toCategoryResponse(c))
	}
	return out, nil
}

// SetStatus troca o status ativo/inativo.
func (uc *CategoryUseCase) SetStatus(id, status string) error {
	if status != entity.StatusAtivo && status != entity.StatusInativo {
		return domain.ErrInvalidInput
	}
	cat, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if cat == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.SetStatus(id, status); err != nil {
		return err
	}
	uc.notifier.Publish(events.Change{Entity: "categories", Action: "status_changed", ID: id})
	return nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// UnitUseCase CRUD de unidades de medida.
type UnitUseCase struct {
	repo     repository.UnitRepository
	notifier *events.Notifier
}

// NewUnitUseCase constrói o caso de uso.
func NewUnitUseCase(repo repository.UnitRepository, notifier *events.Notifier) *UnitUseCase {
	return &UnitUseCase{repo: repo, notifier: notifier}
}

// Create cria uma unidade. A sigla é normalizada para maiúsculas (vai na NF-e).
func (uc *UnitUseCase) Create(in dto.CreateUnitRequest) (*dto.UnitResponse, error) {
	if in.Name == "" || in.Sigla == "" {
		return nil, fmt.Errorf("nome e sigla são obrigatórios: %w", domain.ErrInvalidInput)
	}
	now := time.Now()
	unit := &entity.Unit{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Sigla:     strings.ToUpper(strings.TrimSpace(in.Sigla)),
		Status:    entity.StatusAtivo,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(unit); err != nil {
		return nil, err
	}
	uc.notifier.Publish(events.Change{Entity: "units", Action: "created", ID: unit.ID})
	return toUnitResponse(unit), nil
}

// Update atualiza nome e/ou sigla.
func (uc *UnitUseCase) Update(id string, in dto.CreateUnitRequest) (*dto.UnitResponse, error) {
	unit, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		unit.Name = in.Name
	}
	if in.Sigla != "" {
		unit.Sigla = strings.ToUpper(strings.TrimSpace(in.Sigla))
	}
	unit.UpdatedAt = time.Now()
	if err := uc.repo.Update(unit); err != nil {
		return nil, err
	}
	uc.notifier.Publish(events.Change{Entity: "units", Action: "updated", ID: unit.ID})
	return toUnitResponse(unit), nil
}

// List devolve as unidades.
func (uc *UnitUseCase) List(includeInactive bool, search string) ([]*dto.UnitResponse, error) {
	list, err := uc.repo.List(includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UnitResponse, 0, len(list))
	for _, u := range list {
		if search != "" && !strutil.ContainsFold(u.Name, search) && !strutil.ContainsFold(u.Sigla, search) {
			continue
		}
		out = append(out, toUnitResponse(u))
	}
	return out, nil
}

// SetStatus troca o status ativo/inativo.
func (uc *UnitUseCase) SetStatus(id, status string) error {
	if status != entity.StatusAtivo && status != entity.StatusInativo {
		return domain.ErrInvalidInput
	}
	unit, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if unit == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.SetStatus(id, status); err != nil {
		return err
	}
	uc.notifier.Publish(events.Change{Entity: "units", Action: "status_changed", ID: id})
	return nil
}

func toUnitResponse(u *entity.Unit) *dto.UnitResponse {
	return &dto.UnitResponse{
		ID:        u.ID,
		Name:      u.Name,
		Sigla:     u.Sigla,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

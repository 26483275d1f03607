package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gestorcampo/gestor-api/internal/application/dto"
	"github.com/gestorcampo/gestor-api/internal/application/events"
	"github.com/gestorcampo/gestor-api/internal/domain"
	"github.com/gestorcampo/gestor-api/internal/domain/entity"
	"github.com/gestorcampo/gestor-api/internal/domain/repository"
	"github.com/gestorcampo/gestor-api/pkg/br"
	"github.com/gestorcampo/gestor-api/pkg/strutil"
)

// EmployeeUseCase CRUD de funcionários.
type EmployeeUseCase struct {
	repo     repository.EmployeeRepository
	notifier *events.Notifier
}

// NewEmployeeUseCase constrói o caso de uso.
func NewEmployeeUseCase(repo repository.EmployeeRepository, notifier *events.Notifier) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo, notifier: notifier}
}

// Create cria um funcionário.
func (uc *EmployeeUseCase) Create(in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("nome obrigatório: %w", domain.ErrInvalidInput)
	}
	doc := br.Digits(in.Document)
	if doc != "" && br.Validate(doc) != nil {
		return nil, fmt.Errorf("CPF inválido: %w", domain.ErrInvalidInput)
	}
	if in.Salary.IsNegative() {
		return nil, fmt.Errorf("salário não pode ser negativo: %w", domain.ErrInvalidInput)
	}

	now := time.Now()
	emp := &entity.Employee{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Document:      doc,
		Position:      in.Position,
		Salary:        in.Salary,
		AdmissionDate: in.AdmissionDate,
		Status:        entity.StatusAtivo,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(emp); err != nil {
		return nil, err
	}
	uc.notifier.Publish(events.Change{Entity: "employees", Action: "created", ID: emp.ID})
	return toEmployeeResponse(emp), nil
}

// GetByID devolve um funcionário, ou nil se não existir.
func (uc *EmployeeUseCase) GetByID(id string) (*dto.EmployeeResponse, error) {
	emp, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, nil
	}
	return toEmployeeResponse(emp), nil
}

// Update atualização parcial.
func (uc *EmployeeUseCase) Update(id string, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	emp, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, fmt.Errorf("nome não pode ficar vazio: %w", domain.ErrInvalidInput)
		}
		emp.Name = *in.Name
	}
	if in.Document != nil {
		doc := br.Digits(*in.Document)
		if doc != "" && br.Validate(doc) != nil {
			return nil, fmt.Errorf("CPF inválido: %w", domain.ErrInvalidInput)
		}
		emp.Document = doc
	}
	if in.Position != nil {
		emp.Position = *in.Position
	}
	if in.Salary != nil {
		if in.Salary.IsNegative() {
			return nil, fmt.Errorf("salário não pode ser negativo: %w", domain.ErrInvalidInput)
		}
		emp.Salary = *in.Salary
	}
	if in.AdmissionDate != nil {
		emp.AdmissionDate = *in.AdmissionDate
	}

	emp.UpdatedAt = time.Now()
	if err := uc.repo.Update(emp); err != nil {
		return nil, err
	}
	uc.notifier.Publish(events.Change{Entity: "employees", Action: "updated", ID: emp.ID})
	return toEmployeeResponse(emp), nil
}

// List devolve os funcionários com filtro de busca insensível a acentos.
func (uc *EmployeeUseCase) List(includeInactive bool, search string) ([]*dto.EmployeeResponse, error) {
	list, err := uc.repo.List(includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		if search != "" && !strutil.ContainsFold(e.Name, search) {
			continue
		}
		out = append(out, toEmployeeResponse(e))
	}
	return out, nil
}

// SetStatus troca o status ativo/inativo (desligamento é inativação, nunca
// exclusão física).
func (uc *EmployeeUseCase) SetStatus(id, status string) error {
	if status != entity.StatusAtivo && status != entity.StatusInativo {
		return domain.ErrInvalidInput
	}
	emp, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if emp == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.SetStatus(id, status); err != nil {
		return err
	}
	uc.notifier.Publish(events.Change{Entity: "employees", Action: "status_changed", ID: id})
	return nil
}

func toEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:            e.ID,
		Name:          e.Name,
		Document:      br.Format(e.Document),
		Position:      e.Position,
		Salary:        e.Salary,
		AdmissionDate: e.AdmissionDate,
		Status:        e.Status,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

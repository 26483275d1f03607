package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestorcampo/gestor-api/internal/application/dto"
	"github.com/gestorcampo/gestor-api/internal/application/events"
	"github.com/gestorcampo/gestor-api/internal/domain"
	"github.com/gestorcampo/gestor-api/internal/domain/entity"
	"github.com/gestorcampo/gestor-api/internal/domain/repository"
)

const monthRefLayout = "2006-01"

var cem = decimal.NewFromInt(100)

// GoalUseCase metas mensais de vendas. O realizado e o progresso são
// derivados das vendas registradas dentro do mês de referência.
type GoalUseCase struct {
	goals    repository.GoalRepository
	sales    repository.SaleRepository
	notifier *events.Notifier
}

// NewGoalUseCase constrói o caso de uso.
func NewGoalUseCase(goals repository.GoalRepository, sales repository.SaleRepository, notifier *events.Notifier) *GoalUseCase {
	return &GoalUseCase{goals: goals, sales: sales, notifier: notifier}
}

// Create cria uma meta. Só pode haver uma meta ativa por mês de referência.
func (uc *GoalUseCase) Create(in dto.CreateGoalRequest) (*dto.GoalResponse, error) {
	if _, err := time.Parse(monthRefLayout, in.MonthRef); err != nil {
		return nil, fmt.Errorf("mes_ref deve estar no formato AAAA-MM: %w", domain.ErrInvalidInput)
	}
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("valor da meta deve ser positivo: %w", domain.ErrInvalidInput)
	}
	existing, err := uc.goals.GetByMonthRef(in.MonthRef)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("já existe meta ativa para %s: %w", in.MonthRef, domain.ErrDuplicate)
	}

	now := time.Now()
	goal := &entity.Goal{
		ID:        uuid.New().String(),
		MonthRef:  in.MonthRef,
		Amount:    in.Amount,
		Status:    entity.StatusAtivo,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.goals.Create(goal); err != nil {
		return nil, err
	}
	uc.notifier.Publish(events.Change{Entity: "goals", Action: "created", ID: goal.ID})
	return uc.toGoalResponse(goal)
}

// Update altera o valor da meta.
func (uc *GoalUseCase) Update(id string, amount decimal.Decimal) (*dto.GoalResponse, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("valor da meta deve ser positivo: %w", domain.ErrInvalidInput)
	}
	goal, err := uc.goals.GetByID(id)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return nil, domain.ErrNotFound
	}
	goal.Amount = amount
	goal.UpdatedAt = time.Now()
	if err := uc.goals.Update(goal); err != nil {
		return nil, err
	}
	uc.notifier.Publish(events.Change{Entity: "goals", Action: "updated", ID: goal.ID})
	return uc.toGoalResponse(goal)
}

// List devolve as metas (mês de referência mais recente primeiro).
func (uc *GoalUseCase) List(includeInactive bool) ([]*dto.GoalResponse, error) {
	list, err := uc.goals.List(includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.GoalResponse, 0, len(list))
	for _, g := range list {
		resp, err := uc.toGoalResponse(g)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

// SetStatus troca o status ativo/inativo.
func (uc *GoalUseCase) SetStatus(id, status string) error {
	if status != entity.StatusAtivo && status != entity.StatusInativo {
		return domain.ErrInvalidInput
	}
	goal, err := uc.goals.GetByID(id)
	if err != nil {
		return err
	}
	if goal == nil {
		return domain.ErrNotFound
	}
	if err := uc.goals.SetStatus(id, status); err != nil {
		return err
	}
	uc.notifier.Publish(events.Change{Entity: "goals", Action: "status_changed", ID: id})
	return nil
}

func (uc *GoalUseCase) toGoalResponse(g *entity.Goal) (*dto.GoalResponse, error) {
	from, err := time.Parse(monthRefLayout, g.MonthRef)
	if err != nil {
		return nil, fmt.Errorf("mes_ref inválido na meta %s: %w", g.ID, err)
	}
	to := from.AddDate(0, 1, 0)
	realized, err := uc.sales.TotalBetween(from, to)
	if err != nil {
		return nil, fmt.Errorf("calcular realizado da meta: %w", err)
	}
	progress := decimal.Zero
	if g.Amount.IsPositive() {
		progress = realized.Div(g.Amount).Mul(cem).Round(2)
	}
	return &dto.GoalResponse{
		ID:        g.ID,
		MonthRef:  g.MonthRef,
		Amount:    g.Amount,
		Realized:  realized,
		Progress:  progress,
		Status:    g.Status,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}, nil
}

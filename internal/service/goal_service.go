package service

import (
	"context"
	"errors"
	"time"

	"spendio/internal/dto"
	"spendio/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type GoalService struct {
	goals  GoalStore
	logger *zap.Logger
	now    func() time.Time
}

func NewGoalService(goals GoalStore, logger *zap.Logger) *GoalService {
	return &GoalService{
		goals:  goals,
		logger: logger,
		now:    time.Now,
	}
}

func (s *GoalService) List(ctx context.Context, userID uuid.UUID, achieved *bool) ([]dto.GoalResponse, error) {
	goals, err := s.goals.List(ctx, userID, achieved)
	if err != nil {
		return nil, storeError("list goals", err)
	}

	out := make([]dto.GoalResponse, 0, len(goals))
	for _, g := range goals {
		out = append(out, dto.NewGoalResponse(g))
	}
	return out, nil
}

func (s *GoalService) Get(ctx context.Context, userID, id uuid.UUID) (*dto.GoalResponse, error) {
	goal, err := s.goals.GetByID(ctx, userID, id)
	if err != nil {
		return nil, storeError("get goal", err)
	}
	resp := dto.NewGoalResponse(goal)
	return &resp, nil
}

func (s *GoalService) Create(ctx context.Context, userID uuid.UUID, req *dto.GoalCreateRequest) (*dto.GoalResponse, error) {
	targetDate, err := parseDate("target_date", req.TargetDate)
	if err != nil {
		return nil, err
	}
	target := round2(req.TargetAmount)
	if err := validAmount("target_amount", target); err != nil {
		return nil, err
	}
	title := cleanText(req.Title)
	if title == "" {
		return nil, NewValidationError("title", "is required")
	}

	now := s.now().UTC()
	goal := &models.Goal{
		ID:           uuid.New(),
		UserID:       userID,
		Title:        title,
		Description:  cleanTextPtr(req.Description),
		TargetAmount: target,
		TargetDate:   targetDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.goals.Create(ctx, goal); err != nil {
		return nil, storeError("create goal", err)
	}

	resp := dto.NewGoalResponse(goal)
	return &resp, nil
}

// Update applies the non-nil fields of req. A new target re-derives the
// achieved flag from the saved amount.
func (s *GoalService) Update(ctx context.Context, userID, id uuid.UUID, req *dto.GoalUpdateRequest) (*dto.GoalResponse, error) {
	var (
		targetDate time.Time
		target     float64
		err        error
	)
	if req.TargetDate != nil {
		if targetDate, err = parseDate("target_date", *req.TargetDate); err != nil {
			return nil, err
		}
	}
	if req.TargetAmount != nil {
		target = round2(*req.TargetAmount)
		if err := validAmount("target_amount", target); err != nil {
			return nil, err
		}
	}
	if req.Title != nil && cleanText(*req.Title) == "" {
		return nil, NewValidationError("title", "must not be empty")
	}

	return s.modify(ctx, userID, id, func(g *models.Goal) error {
		if req.Title != nil {
			g.Title = cleanText(*req.Title)
		}
		if req.Description != nil {
			g.Description = cleanTextPtr(req.Description)
		}
		if req.TargetAmount != nil {
			g.SetTarget(target)
		}
		if req.TargetDate != nil {
			g.TargetDate = targetDate
		}
		return nil
	})
}

func (s *GoalService) AddMoney(ctx context.Context, userID, id uuid.UUID, req *dto.GoalMoneyRequest) (*dto.GoalResponse, error) {
	amount := round2(req.Amount)
	if err := validAmount("amount", amount); err != nil {
		return nil, err
	}
	return s.modify(ctx, userID, id, func(g *models.Goal) error {
		return g.Deposit(amount)
	})
}

func (s *GoalService) Withdraw(ctx context.Context, userID, id uuid.UUID, req *dto.GoalMoneyRequest) (*dto.GoalResponse, error) {
	amount := round2(req.Amount)
	if err := validAmount("amount", amount); err != nil {
		return nil, err
	}
	return s.modify(ctx, userID, id, func(g *models.Goal) error {
		return g.Withdraw(amount)
	})
}

func (s *GoalService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.goals.Delete(ctx, userID, id); err != nil {
		return storeError("delete goal", err)
	}
	return nil
}

func (s *GoalService) modify(ctx context.Context, userID, id uuid.UUID, fn func(g *models.Goal) error) (*dto.GoalResponse, error) {
	now := s.now().UTC()
	goal, err := s.goals.Modify(ctx, userID, id, func(g *models.Goal) error {
		if err := fn(g); err != nil {
			return err
		}
		g.UpdatedAt = now
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrGoalAchieved):
			return nil, &BusinessError{Message: "goal is already achieved"}
		case errors.Is(err, models.ErrInsufficientFunds):
			return nil, &BusinessError{Message: "not enough money saved for this goal"}
		}
		return nil, storeError("modify goal", err)
	}

	resp := dto.NewGoalResponse(goal)
	return &resp, nil
}

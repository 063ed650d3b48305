package dto

import "spendio/internal/models"

type GoalCreateRequest struct {
	Title        string  `json:"title" validate:"required,max=200"`
	Description  *string `json:"description" validate:"omitnil,max=1000"`
	TargetAmount float64 `json:"target_amount" validate:"gt=0"`
	TargetDate   string  `json:"target_date" validate:"required,datetime=2006-01-02"`
}

// GoalUpdateRequest is a partial update; nil fields are left unchanged.
type GoalUpdateRequest struct {
	Title        *string  `json:"title" validate:"omitnil,min=1,max=200"`
	Description  *string  `json:"description" validate:"omitnil,max=1000"`
	TargetAmount *float64 `json:"target_amount" validate:"omitnil,gt=0"`
	TargetDate   *string  `json:"target_date" validate:"omitnil,datetime=2006-01-02"`
}

type GoalMoneyRequest struct {
	Amount float64 `json:"amount" validate:"gt=0"`
}

type GoalResponse struct {
	ID                 string  `json:"id"`
	Title              string  `json:"title"`
	Description        *string `json:"description"`
	TargetAmount       float64 `json:"target_amount"`
	CurrentAmount      float64 `json:"current_amount"`
	TargetDate         string  `json:"target_date"`
	IsAchieved         bool    `json:"is_achieved"`
	ProgressPercentage float64 `json:"progress_percentage"`
	RemainingAmount    float64 `json:"remaining_amount"`
}

func NewGoalResponse(g *models.Goal) GoalResponse {
	return GoalResponse{
		ID:                 g.ID.String(),
		Title:              g.Title,
		Description:        g.Description,
		TargetAmount:       g.TargetAmount,
		CurrentAmount:      g.CurrentAmount,
		TargetDate:         g.TargetDate.Format(models.DateLayout),
		IsAchieved:         g.IsAchieved,
		ProgressPercentage: g.ProgressPercentage(),
		RemainingAmount:    g.RemainingAmount(),
	}
}

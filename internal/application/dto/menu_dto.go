package dto

import "time"

// CreateDailyMenuRequest entrada para programar una receta en una fecha.
type CreateDailyMenuRequest struct {
	Date          string `json:"date" validate:"required,datetime=2006-01-02"`
	Amount        int    `json:"amount" validate:"required,min=1"`
	TargetGroupID string `json:"target_group_id" validate:"required"`
	MealTypeID    string `json:"meal_type_id" validate:"required"`
	RecipeID      string `json:"recipe_id" validate:"required"`
	Comment       string `json:"comment" validate:"max=500"`
}

// UpdateDailyMenuRequest entrada para editar una entrada del menú.
type UpdateDailyMenuRequest struct {
	Date          *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Amount        *int    `json:"amount" validate:"omitempty,min=1"`
	TargetGroupID *string `json:"target_group_id"`
	MealTypeID    *string `json:"meal_type_id"`
	RecipeID      *string `json:"recipe_id"`
	Comment       *string `json:"comment"`
}

// DailyMenuResponse salida de una entrada del menú.
type DailyMenuResponse struct {
	ID            string    `json:"id"`
	Date          string    `json:"date"`
	Amount        int       `json:"amount"`
	TargetGroupID string    `json:"target_group_id"`
	MealTypeID    string    `json:"meal_type_id"`
	RecipeID      string    `json:"recipe_id"`
	Comment       string    `json:"comment"`
	CreatedAt     time.Time `json:"created_at"`
}

// MenuRequirementsResponse consumo agregado del menú de una fecha (consultivo).
type MenuRequirementsResponse struct {
	Date          string           `json:"date"`
	TargetGroupID *string          `json:"target_group_id,omitempty"`
	Entries       int              `json:"entries"`
	Requirements  []RequirementDTO `json:"requirements"`
}

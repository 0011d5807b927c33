package entity

import "time"

// DailyMenu programa una receta para una fecha, grupo y tipo de comida.
type DailyMenu struct {
	ID            string
	Date          time.Time // solo fecha (UTC, 00:00)
	Amount        int       // porciones solicitadas (>0)
	TargetGroupID string
	MealTypeID    string
	RecipeID      string
	Comment       string
	CreatedAt     time.Time
}

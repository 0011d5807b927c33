package dto

// CreateVATRequest entrada para crear una tarifa de IVA.
type CreateVATRequest struct {
	Percentage int    `json:"percentage" validate:"min=0,max=100"`
	Name       string `json:"name" validate:"required,max=100"`
}

// VATResponse tarifa de IVA.
type VATResponse struct {
	ID         string `json:"id"`
	Percentage int    `json:"percentage"`
	Name       string `json:"name"`
}

// CreateAllergenRequest entrada para crear un alérgeno.
type CreateAllergenRequest struct {
	Code        string `json:"code" validate:"required,max=20"`
	Description string `json:"description" validate:"max=200"`
}

// AllergenResponse alérgeno.
type AllergenResponse struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

// CreateTargetGroupRequest entrada para crear un grupo de comensales.
type CreateTargetGroupRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// TargetGroupResponse grupo de comensales.
type TargetGroupResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateMealTypeRequest entrada para crear un tipo de comida.
type CreateMealTypeRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Category string `json:"category" validate:"max=100"`
}

// MealTypeResponse tipo de comida.
type MealTypeResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

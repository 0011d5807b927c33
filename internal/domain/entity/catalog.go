package entity

// Allergen alérgeno declarable (código + descripción).
type Allergen struct {
	ID          string
	Code        string
	Description string
}

// VAT tarifa de IVA referenciada por las líneas de entrada. Inmutable una vez creada.
type VAT struct {
	ID         string
	Percentage int // 0..100
	Name       string
}

// TargetGroup grupo de comensales para el que se cocina.
type TargetGroup struct {
	ID   string
	Name string
}

// MealType tipo de comida dentro del día (desayuno, almuerzo...).
type MealType struct {
	ID       string
	Name     string
	Category string
}

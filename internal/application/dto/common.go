package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=0,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP. Details lleva información estructurada,
// por ejemplo la lista completa de faltantes al aprobar una salida.
type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ShortageDTO faltante de un artículo (cantidades en su unidad nativa).
type ShortageDTO struct {
	ArticleID   string `json:"article_id"`
	ArticleName string `json:"article_name"`
	Unit        string `json:"unit"`
	Available   string `json:"available"`
	Requested   string `json:"requested"`
}

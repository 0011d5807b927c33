package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/kitchen-ledger/internal/application/dto"
	"github.com/jhoicas/kitchen-ledger/internal/application/ledger"
	"github.com/jhoicas/kitchen-ledger/internal/application/usecase"
	"github.com/jhoicas/kitchen-ledger/internal/domain/entity"
	"github.com/jhoicas/kitchen-ledger/internal/domain/repository"
)

// DocumentHandler maneja entradas y salidas de bodega: borradores, líneas, aprobación y salidas desde menú.
type DocumentHandler struct {
	documents *ledger.DocumentUseCase
	approval  *ledger.ApprovalUseCase
	menuIssue *ledger.MenuIssueUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(documents *ledger.DocumentUseCase, approval *ledger.ApprovalUseCase, menuIssue *ledger.MenuIssueUseCase) *DocumentHandler {
	return &DocumentHandler{documents: documents, approval: approval, menuIssue: menuIssue}
}

// Create godoc
// @Summary      Crear documento en borrador
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDocumentRequest  true  "Tipo (RECEIPT | ISSUE) y comentario"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/documents [post]
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDocumentRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	doc, err := h.documents.Create(c.UserContext(), in.Kind, GetUserID(c), in.Comment)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toDocumentResponse(doc, nil))
}

// List godoc
// @Summary      Listar documentos
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        kind      query  string  false  "RECEIPT | ISSUE"
// @Param        approved  query  bool    false  "Filtrar por estado"
// @Param        limit     query  int     false  "Límite"  default(50)
// @Param        offset    query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.DocumentListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c, 50)
	filter := repository.DocumentFilter{
		Kind:   strings.ToUpper(c.Query("kind")),
		Limit:  limit,
		Offset: offset,
	}
	if v := c.Query("approved"); v != "" {
		approved := c.QueryBool("approved")
		filter.Approved = &approved
	}
	docs, err := h.documents.List(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		items = append(items, *toDocumentResponse(d, nil))
	}
	return c.JSON(dto.DocumentListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}})
}

// GetByID godoc
// @Summary      Obtener documento con líneas y totales
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [get]
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	return h.respondDocument(c, fiber.StatusOK, c.Params("id"))
}

// Delete godoc
// @Summary      Eliminar borrador
// @Tags         documents
// @Security     Bearer
// @Param        id   path  string  true  "ID del documento"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	if err := h.documents.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddLine godoc
// @Summary      Agregar línea al borrador
// @Description  En entradas el precio sin IVA y la tarifa son obligatorios. En salidas se valida el stock disponible.
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del documento"
// @Param        body  body  dto.DocumentLineRequest  true  "Línea"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/lines [post]
func (h *DocumentHandler) AddLine(c *fiber.Ctx) error {
	var in dto.DocumentLineRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	if _, err := h.documents.AddLine(c.UserContext(), c.Params("id"), toLineInput(in)); err != nil {
		return writeError(c, err)
	}
	return h.respondDocument(c, fiber.StatusCreated, c.Params("id"))
}

// UpdateLine godoc
// @Summary      Editar línea del borrador
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id       path  string                   true  "ID del documento"
// @Param        line_id  path  string                   true  "ID de la línea"
// @Param        body     body  dto.DocumentLineRequest  true  "Línea"
// @Success      200   {object}  dto.DocumentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/lines/{line_id} [put]
func (h *DocumentHandler) UpdateLine(c *fiber.Ctx) error {
	var in dto.DocumentLineRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	if _, err := h.documents.UpdateLine(c.UserContext(), c.Params("id"), c.Params("line_id"), toLineInput(in)); err != nil {
		return writeError(c, err)
	}
	return h.respondDocument(c, fiber.StatusOK, c.Params("id"))
}

// DeleteLine godoc
// @Summary      Quitar línea del borrador
// @Tags         documents
// @Security     Bearer
// @Param        id       path  string  true  "ID del documento"
// @Param        line_id  path  string  true  "ID de la línea"
// @Success      204
// @Router       /api/documents/{id}/lines/{line_id} [delete]
func (h *DocumentHandler) DeleteLine(c *fiber.Ctx) error {
	if err := h.documents.DeleteLine(c.UserContext(), c.Params("id"), c.Params("line_id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Approve godoc
// @Summary      Aprobar documento
// @Description  Entradas: suman stock y recalculan el promedio. Salidas: fallan con todos los faltantes si no alcanza el stock.
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/approve [post]
func (h *DocumentHandler) Approve(c *fiber.Ctx) error {
	doc, err := h.approval.Approve(c.UserContext(), c.Params("id"), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return h.respondDocument(c, fiber.StatusOK, doc.ID)
}

// IssueFromMenu godoc
// @Summary      Generar salida desde el menú del día
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MenuIssueRequest  true  "Fecha y grupo opcional"
// @Success      201   {object}  dto.MenuIssueResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/documents/issues/from-menu [post]
func (h *DocumentHandler) IssueFromMenu(c *fiber.Ctx) error {
	var in dto.MenuIssueRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	date, err := usecase.ParseDate(in.Date)
	if err != nil {
		return writeError(c, err)
	}
	var tg *string
	if in.TargetGroupID != nil && *in.TargetGroupID != "" {
		tg = in.TargetGroupID
	}
	doc, n, err := h.menuIssue.CreateIssueFromMenu(c.UserContext(), date, tg, GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return h.respondMenuIssue(c, fiber.StatusCreated, doc, n)
}

// Refresh godoc
// @Summary      Regenerar salida desde menú
// @Description  Reemplaza la salida (no aprobada) por una nueva expansión del menú vigente.
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la salida"
// @Success      200  {object}  dto.MenuIssueResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/refresh [post]
func (h *DocumentHandler) Refresh(c *fiber.Ctx) error {
	doc, n, err := h.menuIssue.RefreshMenuIssue(c.UserContext(), c.Params("id"), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return h.respondMenuIssue(c, fiber.StatusOK, doc, n)
}

func (h *DocumentHandler) respondDocument(c *fiber.Ctx, status int, id string) error {
	doc, err := h.documents.Get(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	totals, err := h.documents.Totals(c.UserContext(), doc)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(status).JSON(toDocumentResponse(doc, totals))
}

func (h *DocumentHandler) respondMenuIssue(c *fiber.Ctx, status int, doc *entity.StockDocument, lines int) error {
	totals, err := h.documents.Totals(c.UserContext(), doc)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(status).JSON(dto.MenuIssueResponse{Document: *toDocumentResponse(doc, totals), LineCount: lines})
}

func toLineInput(in dto.DocumentLineRequest) ledger.LineInput {
	return ledger.LineInput{
		ArticleID:       in.ArticleID,
		Amount:          in.Amount,
		Unit:            in.Unit,
		PriceWithoutVat: in.PriceWithoutVat,
		VATID:           in.VATID,
		Comment:         in.Comment,
	}
}

// toDocumentResponse totals nil omite el total y las líneas (listados).
func toDocumentResponse(d *entity.StockDocument, totals *ledger.DocumentTotals) *dto.DocumentResponse {
	out := &dto.DocumentResponse{
		ID:                  d.ID,
		Kind:                d.Kind,
		CreatedAt:           d.CreatedAt,
		CreatedBy:           d.CreatedBy,
		Approved:            d.Approved,
		ApprovedAt:          d.ApprovedAt,
		ApprovedBy:          d.ApprovedBy,
		Comment:             d.Comment,
		SourceTargetGroupID: d.SourceTargetGroupID,
	}
	if d.SourceMenuDate != nil {
		s := d.SourceMenuDate.Format(usecase.DateLayout)
		out.SourceMenuDate = &s
	}
	if totals == nil {
		return out
	}
	total := totals.Total.Round(2)
	out.Total = &total
	out.Lines = make([]dto.DocumentLineResponse, 0, len(d.Lines))
	for _, l := range d.Lines {
		out.Lines = append(out.Lines, dto.DocumentLineResponse{
			ID:              l.ID,
			Position:        l.Position,
			ArticleID:       l.ArticleID,
			Amount:          l.Amount,
			Unit:            l.Unit,
			PriceWithoutVat: l.PriceWithoutVat,
			VATID:           l.VATID,
			AveragePrice:    l.AveragePrice,
			Total:           totals.Lines[l.ID].Round(2),
			Comment:         l.Comment,
		})
	}
	return out
}

package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/directory"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/invoice"
	"github.com/cmlabs-hris/workspace-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type InvoiceHandler interface {
	ListInvoices(w http.ResponseWriter, r *http.Request)
	GetInvoice(w http.ResponseWriter, r *http.Request)
	CreateInvoice(w http.ResponseWriter, r *http.Request)
	UpdateInvoice(w http.ResponseWriter, r *http.Request)
	DeleteInvoice(w http.ResponseWriter, r *http.Request)
}

type invoiceHandlerImpl struct {
	directoryService directory.DirectoryService
}

func NewInvoiceHandler(directoryService directory.DirectoryService) InvoiceHandler {
	return &invoiceHandlerImpl{directoryService: directoryService}
}

// ListInvoices implements InvoiceHandler
func (h *invoiceHandlerImpl) ListInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.directoryService.ListInvoices(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]invoice.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		result = append(result, invoice.ToResponse(inv))
	}

	response.SuccessWithMeta(w, result, listMeta(len(result)))
}

// GetInvoice implements InvoiceHandler
func (h *invoiceHandlerImpl) GetInvoice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Invoice ID is required", nil)
		return
	}

	inv, err := h.directoryService.GetInvoice(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, invoice.ToResponse(inv))
}

// CreateInvoice implements InvoiceHandler
func (h *invoiceHandlerImpl) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var req invoice.InvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.directoryService.CreateInvoice(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Invoice created successfully", invoice.ToResponse(created))
}

// UpdateInvoice implements InvoiceHandler
func (h *invoiceHandlerImpl) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Invoice ID is required", nil)
		return
	}

	var req invoice.InvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.directoryService.UpdateInvoice(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Invoice updated successfully", invoice.ToResponse(updated))
}

// DeleteInvoice implements InvoiceHandler
func (h *invoiceHandlerImpl) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Invoice ID is required", nil)
		return
	}

	if err := h.directoryService.DeleteInvoice(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Invoice deleted successfully", nil)
}

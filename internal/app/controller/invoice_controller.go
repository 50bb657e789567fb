package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Sreemathipalanisamy/gst-service-register/internal/app/model"
	"github.com/Sreemathipalanisamy/gst-service-register/internal/app/service"
	apperrors "github.com/Sreemathipalanisamy/gst-service-register/internal/errors"
	"github.com/Sreemathipalanisamy/gst-service-register/internal/middleware"
	"github.com/Sreemathipalanisamy/gst-service-register/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

type InvoiceController struct {
	invoiceService service.InvoiceService
}

func NewInvoiceController(invoiceService service.InvoiceService) *InvoiceController {
	return &InvoiceController{
		invoiceService: invoiceService,
	}
}

type CreateInvoiceRequest struct {
	InvoiceNo     string   `json:"invoice_no" binding:"required"`
	IssueDate     *string  `json:"date"`
	Status        *string  `json:"status"`
	PaymentStatus *string  `json:"payment_status"`
	BillingState  *string  `json:"state"`
	AmountPaid    *float64 `json:"amount_paid"`
}

type UpdateInvoiceRequest struct {
	IssueDate     *string  `json:"date"`
	Status        *string  `json:"status"`
	PaymentStatus *string  `json:"payment_status"`
	BillingState  *string  `json:"state"`
	AmountPaid    *float64 `json:"amount_paid"`
}

type AddLineItemRequest struct {
	SKU         string  `json:"sku"`
	Name        string  `json:"name" binding:"required"`
	Category    string  `json:"category"`
	BuyingPrice float64 `json:"buying_price"`
	UnitPrice   float64 `json:"unit_price" binding:"required,gte=0"`
	Quantity    int     `json:"quantity" binding:"required,min=1"`
	Discount    float64 `json:"discount"`
}

func headerInput(issueDate, status, paymentStatus, billingState *string, amountPaid *float64) service.InvoiceHeaderInput {
	input := service.InvoiceHeaderInput{
		IssueDate:    issueDate,
		BillingState: billingState,
		AmountPaid:   amountPaid,
	}
	if status != nil {
		s := model.InvoiceStatus(*status)
		input.Status = &s
	}
	if paymentStatus != nil {
		p := model.PaymentStatus(*paymentStatus)
		input.PaymentStatus = &p
	}
	return input
}

// respondInvoiceError maps service sentinels to HTTP error responses shared
// by every invoice endpoint.
func respondInvoiceError(c *gin.Context, log *logger.Logger, err error, gstin, invoiceNo string) {
	fields := map[string]interface{}{
		"gstin":      gstin,
		"invoice_no": invoiceNo,
	}

	switch {
	case errors.Is(err, service.ErrInvoiceNotFound):
		log.Warn("Invoice not found", fields)
		apperrors.NotFound(c, apperrors.InvoiceNotFound, "Invoice not found")
	case errors.Is(err, service.ErrRegistrationNotFound):
		log.Warn("Registration not found for invoice operation", fields)
		apperrors.NotFound(c, apperrors.RegistrationNotFound, "Registration not found")
	case errors.Is(err, service.ErrInvoiceNoRequired):
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Invoice number is required")
	case errors.Is(err, service.ErrDuplicateInvoiceNo):
		log.Warn("Duplicate invoice number", fields)
		apperrors.Conflict(c, apperrors.InvoiceDuplicateID, "An invoice with this number already exists")
	case errors.Is(err, service.ErrInvoiceLocked):
		log.Warn("Mutation attempted on saved invoice", fields)
		apperrors.Conflict(c, apperrors.InvoiceLocked, "A saved invoice cannot be modified")
	case errors.Is(err, service.ErrAlreadySaved):
		apperrors.Conflict(c, apperrors.InvoiceAlreadySaved, "The invoice is already saved")
	case errors.Is(err, service.ErrNoLineItems):
		apperrors.BadRequest(c, apperrors.InvoiceNoLineItems, "An invoice needs at least one line item before saving")
	case errors.Is(err, service.ErrInvalidItemIndex):
		apperrors.BadRequest(c, apperrors.InvoiceInvalidItem, "Line item index is out of range")
	case errors.Is(err, service.ErrInvalidLineItem):
		apperrors.BadRequest(c, apperrors.InvoiceInvalidItem, "Line item values are invalid")
	case errors.Is(err, service.ErrInvalidState):
		apperrors.BadRequest(c, apperrors.InvoiceInvalidState, "Unknown billing state")
	case errors.Is(err, service.ErrInvalidStatus):
		apperrors.BadRequest(c, apperrors.InvoiceInvalidStatus, "Unknown status value")
	case errors.Is(err, service.ErrInvalidIssueDate):
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Issue date must be YYYY-MM-DD")
	case errors.Is(err, service.ErrInvalidAmountPaid):
		apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Amount paid must not be negative")
	default:
		log.Error("Invoice operation failed", err, fields)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "invoice")
	}
}

// GetInvoices returns the vendor's invoices
// GET /api/v1/invoices
func (ctrl *InvoiceController) GetInvoices(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	gstin, exists := middleware.GetGSTIN(c)
	if !exists {
		log.Warn("Unauthorized access to invoices", nil)
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	invoices, err := ctrl.invoiceService.List(gstin)
	if err != nil {
		log.Error("Failed to fetch invoices", err, map[string]interface{}{
			"gstin": gstin,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list invoices")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"invoices": invoices,
		"count":    len(invoices),
	})
}

// GetInvoice returns one invoice by number
// GET /api/v1/invoices/:invoice_no
func (ctrl *InvoiceController) GetInvoice(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	gstin, exists := middleware.GetGSTIN(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	invoiceNo := c.Param("invoice_no")
	invoice, err := ctrl.invoiceService.Get(gstin, invoiceNo)
	if err != nil {
		respondInvoiceError(c, log, err, gstin, invoiceNo)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"invoice": invoice,
	})
}

// CreateInvoice opens a new draft invoice
// POST /api/v1/invoices
func (ctrl *InvoiceController) CreateInvoice(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	gstin, exists := middleware.GetGSTIN(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create invoice request", map[string]interface{}{
			"gstin": gstin,
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invoice number is required")
		return
	}

	invoice, err := ctrl.invoiceService.Create(gstin, req.InvoiceNo,
		headerInput(req.IssueDate, req.Status, req.PaymentStatus, req.BillingState, req.AmountPaid))
	if err != nil {
		respondInvoiceError(c, log, err, gstin, req.InvoiceNo)
		return
	}

	log.Info("Invoice created", map[string]interface{}{
		"gstin":      gstin,
		"invoice_no": invoice.InvoiceNo,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Invoice created successfully",
		"invoice": invoice,
	})
}

// UpdateInvoice edits header fields of a draft invoice
// PUT /api/v1/invoices/:invoice_no
func (ctrl *InvoiceController) UpdateInvoice(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	gstin, exists := middleware.GetGSTIN(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	invoiceNo := c.Param("invoice_no")

	var req UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update invoice request", map[string]interface{}{
			"gstin":      gstin,
			"invoice_no": invoiceNo,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Request body is malformed")
		return
	}

	invoice, err := ctrl.invoiceService.UpdateHeader(gstin, invoiceNo,
		headerInput(req.IssueDate, req.Status, req.PaymentStatus, req.BillingState, req.AmountPaid))
	if err != nil {
		respondInvoiceError(c, log, err, gstin, invoiceNo)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Invoice updated successfully",
		"invoice": invoice,
	})
}

// AddLineItem appends a product to a draft invoice
// POST /api/v1/invoices/:invoice_no/items
func (ctrl *InvoiceController) AddLineItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	gstin, exists := middleware.GetGSTIN(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	invoiceNo := c.Param("invoice_no")

	var req AddLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add line item request", map[string]interface{}{
			"gstin":      gstin,
			"invoice_no": invoiceNo,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Line item fields are missing or malformed")
		return
	}

	invoice, err := ctrl.invoiceService.AddItem(gstin, invoiceNo, service.LineItemInput{
		SKU:         req.SKU,
		Name:        req.Name,
		Category:    model.ProductCategory(req.Category),
		BuyingPrice: req.BuyingPrice,
		UnitPrice:   req.UnitPrice,
		Quantity:    req.Quantity,
		Discount:    req.Discount,
	})
	if err != nil {
		respondInvoiceError(c, log, err, gstin, invoiceNo)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Line item added successfully",
		"invoice": invoice,
	})
}

// RemoveLineItem removes a product by position
// DELETE /api/v1/invoices/:invoice_no/items/:index
func (ctrl *InvoiceController) RemoveLineItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	gstin, exists := middleware.GetGSTIN(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	invoiceNo := c.Param("invoice_no")
	indexStr := c.Param("index")
	index, err := strconv.Atoi(indexStr)
	if err != nil {
		log.Warn("Invalid line item index", map[string]interface{}{
			"gstin":      gstin,
			"invoice_no": invoiceNo,
			"index":      indexStr,
		})
		apperrors.BadRequest(c, apperrors.InvoiceInvalidItem, "Line item index must be a number")
		return
	}

	invoice, err := ctrl.invoiceService.RemoveItem(gstin, invoiceNo, index)
	if err != nil {
		respondInvoiceError(c, log, err, gstin, invoiceNo)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Line item removed successfully",
		"invoice": invoice,
	})
}

// SaveInvoice locks an invoice permanently
// POST /api/v1/invoices/:invoice_no/save
func (ctrl *InvoiceController) SaveInvoice(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	gstin, exists := middleware.GetGSTIN(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	invoiceNo := c.Param("invoice_no")
	invoice, err := ctrl.invoiceService.Save(gstin, invoiceNo)
	if err != nil {
		respondInvoiceError(c, log, err, gstin, invoiceNo)
		return
	}

	log.Info("Invoice saved", map[string]interface{}{
		"gstin":      gstin,
		"invoice_no": invoiceNo,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Invoice saved successfully",
		"invoice": invoice,
	})
}

var exportColumns = []string{
	"Invoice No", "Issue Date", "Status", "Payment Status", "Billing State",
	"ITC", "Buying Price", "Amount", "CGST", "SGST", "IGST", "Net Amount",
	"Amount Paid", "Saved",
}

// ExportInvoices streams the vendor's invoices as an XLSX workbook
// GET /api/v1/invoices/export
func (ctrl *InvoiceController) ExportInvoices(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	gstin, exists := middleware.GetGSTIN(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	invoices, err := ctrl.invoiceService.List(gstin)
	if err != nil {
		log.Error("Failed to fetch invoices for export", err, map[string]interface{}{
			"gstin": gstin,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "export invoices")
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Invoices"
	f.SetSheetName("Sheet1", sheet)

	for i, col := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, col)
	}

	for row, invoice := range invoices {
		saved := "No"
		if invoice.Saved() {
			saved = "Yes"
		}
		values := []interface{}{
			invoice.InvoiceNo,
			invoice.IssueDate,
			string(invoice.Status),
			string(invoice.PaymentStatus),
			invoice.BillingState,
			string(invoice.ITC),
			invoice.BuyingPrice,
			invoice.Amount,
			invoice.CGST,
			invoice.SGST,
			invoice.IGST,
			invoice.NetAmount,
			invoice.AmountPaid,
			saved,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	filename := fmt.Sprintf("invoices_%s_%s.xlsx", gstin, time.Now().Format("20060102"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	if err := f.Write(c.Writer); err != nil {
		log.Error("Failed to write XLSX response", err, map[string]interface{}{
			"gstin": gstin,
		})
		return
	}

	log.Info("Invoices exported", map[string]interface{}{
		"gstin": gstin,
		"count": len(invoices),
	})
}

package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"invoice-admin/internal/models"
	"invoice-admin/internal/nav"
	"invoice-admin/internal/service"
	"invoice-admin/internal/viewcache"
)

type DashboardHandler struct {
	service service.InvoiceService
	views   *viewcache.Cache
}

func NewDashboardHandler(svc service.InvoiceService, views *viewcache.Cache) *DashboardHandler {
	return &DashboardHandler{service: svc, views: views}
}

func (h *DashboardHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/dashboard/invoices", h.ListInvoices)
	r.GET("/dashboard/customers", h.ListCustomers)
	r.GET("/dashboard/nav", h.NavLinks)
	r.POST("/dashboard/invoices", h.CreateInvoice)
	r.POST("/dashboard/invoices/:id", h.UpdateInvoice)
	r.POST("/dashboard/invoices/:id/delete", h.DeleteInvoice)
}

func (h *DashboardHandler) CreateInvoice(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		log.Printf("[ERROR] could not parse create invoice form: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid form data"})
		return
	}

	outcome := h.service.CreateInvoice(c.Request.Context(), c.Request.PostForm)
	if outcome.Redirect != "" {
		c.Redirect(http.StatusSeeOther, outcome.Redirect)
		return
	}
	c.JSON(http.StatusUnprocessableEntity, outcome)
}

func (h *DashboardHandler) UpdateInvoice(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		log.Printf("[ERROR] could not parse update invoice form: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid form data"})
		return
	}

	outcome := h.service.UpdateInvoice(c.Request.Context(), c.Param("id"), c.Request.PostForm)
	if outcome.Redirect != "" {
		c.Redirect(http.StatusSeeOther, outcome.Redirect)
		return
	}
	c.JSON(http.StatusUnprocessableEntity, outcome)
}

func (h *DashboardHandler) DeleteInvoice(c *gin.Context) {
	h.service.DeleteInvoice(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *DashboardHandler) ListInvoices(c *gin.Context) {
	path := c.Request.URL.Path
	if body, ok := h.views.Get(path); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		return
	}

	invoices, err := h.service.ListInvoices(c.Request.Context())
	if err != nil {
		log.Printf("[ERROR] could not list invoices: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not load invoices"})
		return
	}
	if invoices == nil {
		invoices = []models.Invoice{}
	}

	body, err := json.Marshal(gin.H{"invoices": invoices})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not render invoices"})
		return
	}

	h.views.Put(path, body)
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func (h *DashboardHandler) ListCustomers(c *gin.Context) {
	path := c.Request.URL.Path
	if body, ok := h.views.Get(path); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		return
	}

	customers, err := h.service.ListCustomers(c.Request.Context())
	if err != nil {
		log.Printf("[ERROR] could not list customers: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not load customers"})
		return
	}
	if customers == nil {
		customers = []models.Customer{}
	}

	body, err := json.Marshal(gin.H{"customers": customers})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not render customers"})
		return
	}

	h.views.Put(path, body)
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func (h *DashboardHandler) NavLinks(c *gin.Context) {
	links, err := nav.Fetch(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "could not load navigation"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"links": nav.Mark(links, c.Query("path"))})
}

package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/otabek-m/masterbook/internal/service"
	"github.com/otabek-m/masterbook/internal/telegram"
	"go.uber.org/zap"
)

// APIController HTTP-граница сервиса бронирования
type APIController struct {
	catalog  *service.CatalogService
	slots    *service.SlotService
	bookings *service.BookingService
	verifier *telegram.Verifier
	logger   *zap.Logger
}

func NewAPIController(
	catalog *service.CatalogService,
	slots *service.SlotService,
	bookings *service.BookingService,
	verifier *telegram.Verifier,
	logger *zap.Logger,
) *APIController {
	return &APIController{
		catalog:  catalog,
		slots:    slots,
		bookings: bookings,
		verifier: verifier,
		logger:   logger,
	}
}

// RegisterRoutes регистрирует все маршруты API
func (c *APIController) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", c.health)
	router.GET("/services", c.listServices)
	router.GET("/masters", c.searchMasters)
	router.GET("/masters/:id", c.getMaster)
	router.GET("/masters/:id/slots", c.getSlots)
	router.POST("/bookings", c.createBooking)
	router.GET("/bookings", c.listBookings)
	router.POST("/bookings/:id/cancel", c.cancelBooking)
	router.POST("/telegram/verify", c.verifyInitData)
}

func (c *APIController) health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

func (c *APIController) listServices(ctx *gin.Context) {
	services, err := c.catalog.ListServices(ctx.Request.Context())
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, services)
}

func (c *APIController) searchMasters(ctx *gin.Context) {
	filter := service.SearchFilter{
		ServiceID: ctx.Query("serviceId"),
		District:  ctx.Query("district"),
		Date:      ctx.Query("date"),
		Query:     ctx.Query("q"),
	}

	masters, err := c.catalog.SearchMasters(ctx.Request.Context(), filter)
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, masters)
}

func (c *APIController) getMaster(ctx *gin.Context) {
	detail, err := c.catalog.GetMaster(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

func (c *APIController) getSlots(ctx *gin.Context) {
	day, err := c.slots.GetSlots(ctx.Request.Context(), ctx.Param("id"), ctx.Query("date"))
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, day)
}

func (c *APIController) createBooking(ctx *gin.Context) {
	var in service.CreateBookingInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": service.ErrInvalidInput.Error()})
		return
	}

	booking, err := c.bookings.Create(ctx.Request.Context(), in)
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"ok": true, "booking": booking})
}

func (c *APIController) listBookings(ctx *gin.Context) {
	views, err := c.bookings.ListByPhone(ctx.Request.Context(), ctx.Query("phone"))
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, views)
}

func (c *APIController) cancelBooking(ctx *gin.Context) {
	if _, err := c.bookings.Cancel(ctx.Request.Context(), ctx.Param("id")); err != nil {
		c.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

type verifyRequest struct {
	InitData string `json:"initData"`
}

func (c *APIController) verifyInitData(ctx *gin.Context) {
	var req verifyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.InitData == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "initData required"})
		return
	}

	fields, err := c.verifier.Verify(req.InitData)
	switch {
	case err == nil:
		ctx.JSON(http.StatusOK, gin.H{"ok": true, "data": fields})
	case errors.Is(err, telegram.ErrNotConfigured):
		ctx.JSON(http.StatusNotImplemented, gin.H{"error": "TG_BOT_TOKEN not set"})
	default:
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	}
}

// respondError маппит доменные ошибки в стабильные HTTP-статусы
func (c *APIController) respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrServiceNotOffered):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSlotNotFound),
		errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrMasterNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSlotTaken):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.logger.Error("Request failed", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/otabek-m/masterbook/internal/model"
	"github.com/otabek-m/masterbook/internal/service"
	"github.com/otabek-m/masterbook/internal/storage"
	"github.com/otabek-m/masterbook/internal/telegram"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := storage.NewFileStore(filepath.Join(t.TempDir(), "db.json"), zap.NewNop())
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	err = store.Update(context.Background(), func(doc *model.Document) error {
		doc.Masters = []model.Master{{ID: "m_1", Name: "Amina", District: "Чиланзар"}}
		doc.Services = []model.Service{{ID: "svc_manicure", Name: "Маникюр"}}
		doc.MasterServices = []model.MasterService{
			{ID: "ms_1", MasterID: "m_1", ServiceID: "svc_manicure", PriceFrom: 120000, DurationMin: 90},
		}
		doc.Slots = []model.Slot{
			{ID: "slot_1", MasterID: "m_1", Date: "2025-01-01", Time: "10:00"},
		}
		return nil
	})
	if err != nil {
		t.Fatalf("seed store: %v", err)
	}

	logger := zap.NewNop()
	verifier, err := telegram.NewVerifier("", 16)
	if err != nil {
		t.Fatalf("create verifier: %v", err)
	}

	api := NewAPIController(
		service.NewCatalogService(store, logger),
		service.NewSlotService(store, logger),
		service.NewBookingService(store, nil, logger),
		verifier,
		logger,
	)

	router := gin.New()
	api.RegisterRoutes(router)
	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(router, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestGetSlots_DefaultsApplied(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(router, http.MethodGet, "/masters/m_1/slots?date=2025-01-01", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Date  string       `json:"date"`
		Slots []model.Slot `json:"slots"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Date != "2025-01-01" || len(resp.Slots) != 1 {
		t.Fatalf("expected 1 slot for 2025-01-01, got %+v", resp)
	}
}

func TestCreateBooking_StatusMapping(t *testing.T) {
	router := newTestRouter(t)

	// Успешное бронирование
	body := `{"masterId":"m_1","serviceId":"svc_manicure","slotId":"slot_1","clientName":"Jane","clientPhone":"+998901234567"}`
	rec := doRequest(router, http.MethodPost, "/bookings", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		OK      bool          `json:"ok"`
		Booking model.Booking `json:"booking"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.OK || resp.Booking.Status != model.BookingStatusConfirmed {
		t.Fatalf("expected confirmed booking, got %+v", resp)
	}

	// Тот же слот повторно: 409
	if rec := doRequest(router, http.MethodPost, "/bookings", body); rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}

	// Несуществующий слот: 404
	missing := strings.Replace(body, "slot_1", "slot_x", 1)
	if rec := doRequest(router, http.MethodPost, "/bookings", missing); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	// Пустое поле: 400
	noName := strings.Replace(body, "Jane", "", 1)
	if rec := doRequest(router, http.MethodPost, "/bookings", noName); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	// Отмена и повторная отмена: обе 200
	cancelPath := "/bookings/" + resp.Booking.ID + "/cancel"
	if rec := doRequest(router, http.MethodPost, cancelPath, ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on cancel, got %d", rec.Code)
	}
	if rec := doRequest(router, http.MethodPost, cancelPath, ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on repeated cancel, got %d", rec.Code)
	}

	// После отмены слот снова свободен
	if rec := doRequest(router, http.MethodPost, "/bookings", body); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 after release, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateBooking_ServiceNotOffered(t *testing.T) {
	router := newTestRouter(t)

	body := `{"masterId":"m_1","serviceId":"svc_haircut","slotId":"slot_1","clientName":"Jane","clientPhone":"+998901234567"}`
	rec := doRequest(router, http.MethodPost, "/bookings", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCancelBooking_NotFound(t *testing.T) {
	router := newTestRouter(t)

	if rec := doRequest(router, http.MethodPost, "/bookings/missing/cancel", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGetMaster_NotFound(t *testing.T) {
	router := newTestRouter(t)

	if rec := doRequest(router, http.MethodGet, "/masters/missing", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestSearchMasters_Filters(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(router, http.MethodGet, "/masters?serviceId=svc_manicure", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var masters []model.MasterSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &masters); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(masters) != 1 || masters[0].ID != "m_1" {
		t.Fatalf("expected [m_1], got %+v", masters)
	}
}

func TestVerifyInitData_NotConfigured(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(router, http.MethodPost, "/telegram/verify", `{"initData":"auth_date=1&hash=ff"}`)
	if rec.Code != http.StatusNotImplemented {
		t.Fatalf("expected 501 without token, got %d", rec.Code)
	}
}

func TestVerifyInitData_MissingPayload(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(router, http.MethodPost, "/telegram/verify", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/otabek-m/masterbook/internal/model"
	"github.com/otabek-m/masterbook/internal/storage"
	"go.uber.org/zap"
)

func newCatalogStore(t *testing.T) storage.Store {
	t.Helper()

	store, err := storage.NewFileStore(filepath.Join(t.TempDir(), "db.json"), zap.NewNop())
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	err = store.Update(context.Background(), func(doc *model.Document) error {
		doc.Masters = []model.Master{
			{ID: "m_1", Name: "Amina", District: "Чиланзар", Bio: "Ногти без сколов"},
			{ID: "m_2", Name: "Sardor", District: "Юнусабад", Bio: "Барбер"},
			{ID: "m_3", Name: "Dilnoza", District: "Мирзо-Улугбек", Bio: "Брови"},
		}
		doc.Services = []model.Service{
			{ID: "svc_manicure", Name: "Маникюр"},
			{ID: "svc_haircut", Name: "Стрижка"},
		}
		doc.MasterServices = []model.MasterService{
			{ID: "ms_1", MasterID: "m_1", ServiceID: "svc_manicure", PriceFrom: 120000, DurationMin: 90},
			{ID: "ms_2", MasterID: "m_2", ServiceID: "svc_haircut", PriceFrom: 90000, DurationMin: 45},
			{ID: "ms_3", MasterID: "m_2", ServiceID: "svc_manicure", PriceFrom: 150000, DurationMin: 60},
		}
		doc.Slots = []model.Slot{
			{ID: "s1", MasterID: "m_1", Date: "2025-01-01", Time: "10:00"},
			{ID: "s2", MasterID: "m_1", Date: "2025-01-06", Time: "10:00"},
			{ID: "s3", MasterID: "m_2", Date: "2025-01-02", Time: "14:00", IsBooked: true},
		}
		doc.Reviews = []model.Review{
			{ID: "r1", MasterID: "m_1", Author: "Ziyoda", Rating: 5, Text: "Отлично"},
		}
		return nil
	})
	if err != nil {
		t.Fatalf("seed store: %v", err)
	}

	return store
}

func TestSearchMasters_DistrictCaseInsensitive(t *testing.T) {
	svc := NewCatalogService(newCatalogStore(t), zap.NewNop())

	masters, err := svc.SearchMasters(context.Background(), SearchFilter{District: "чилан"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(masters) != 1 || masters[0].ID != "m_1" {
		t.Fatalf("expected [m_1], got %d results", len(masters))
	}
}

func TestSearchMasters_QueryOverNameAndBio(t *testing.T) {
	svc := NewCatalogService(newCatalogStore(t), zap.NewNop())

	masters, err := svc.SearchMasters(context.Background(), SearchFilter{Query: "барбер"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(masters) != 1 || masters[0].ID != "m_2" {
		t.Fatalf("expected [m_2], got %d results", len(masters))
	}
}

func TestSearchMasters_ServiceMembership(t *testing.T) {
	svc := NewCatalogService(newCatalogStore(t), zap.NewNop())

	masters, err := svc.SearchMasters(context.Background(), SearchFilter{ServiceID: "svc_manicure"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(masters) != 2 {
		t.Fatalf("expected 2 masters, got %d", len(masters))
	}
}

func TestSearchMasters_Annotations(t *testing.T) {
	svc := NewCatalogService(newCatalogStore(t), zap.NewNop())

	masters, err := svc.SearchMasters(context.Background(), SearchFilter{Date: "2025-01-01"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(masters) != 3 {
		t.Fatalf("expected all 3 masters, got %d", len(masters))
	}

	byID := map[string]model.MasterSummary{}
	for _, m := range masters {
		byID[m.ID] = m
	}

	m1 := byID["m_1"]
	if m1.PriceFrom == nil || *m1.PriceFrom != 120000 {
		t.Fatalf("expected m_1 priceFrom 120000, got %v", m1.PriceFrom)
	}
	if m1.NextSlot == nil || m1.NextSlot.Date != "2025-01-01" || m1.NextSlot.Time != "10:00" {
		t.Fatalf("expected m_1 nextSlot 2025-01-01 10:00, got %+v", m1.NextSlot)
	}

	// Минимальная цена по двум услугам
	m2 := byID["m_2"]
	if m2.PriceFrom == nil || *m2.PriceFrom != 90000 {
		t.Fatalf("expected m_2 priceFrom 90000, got %v", m2.PriceFrom)
	}
	// Единственный слот m_2 занят: мастер в выдаче, nextSlot пуст
	if m2.NextSlot != nil {
		t.Fatalf("expected m_2 nextSlot nil, got %+v", m2.NextSlot)
	}

	// Мастер без связок и слотов остаётся в выдаче
	m3 := byID["m_3"]
	if m3.PriceFrom != nil || m3.NextSlot != nil {
		t.Fatalf("expected m_3 without annotations")
	}
}

func TestSearchMasters_DateFilterShiftsNextSlot(t *testing.T) {
	svc := NewCatalogService(newCatalogStore(t), zap.NewNop())

	masters, err := svc.SearchMasters(context.Background(), SearchFilter{District: "Чиланзар", Date: "2025-01-02"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(masters) != 1 {
		t.Fatalf("expected 1 master, got %d", len(masters))
	}
	if masters[0].NextSlot == nil || masters[0].NextSlot.Date != "2025-01-06" {
		t.Fatalf("expected nextSlot shifted to 2025-01-06, got %+v", masters[0].NextSlot)
	}
}

func TestGetMaster_Detail(t *testing.T) {
	svc := NewCatalogService(newCatalogStore(t), zap.NewNop())

	detail, err := svc.GetMaster(context.Background(), "m_1")
	if err != nil {
		t.Fatalf("get master failed: %v", err)
	}
	if detail.Name != "Amina" {
		t.Fatalf("expected Amina, got %s", detail.Name)
	}
	if len(detail.Services) != 1 || detail.Services[0].Service.ID != "svc_manicure" {
		t.Fatalf("expected joined manicure service")
	}
	if detail.Services[0].PriceFrom != 120000 || detail.Services[0].DurationMin != 90 {
		t.Fatalf("expected price/duration from the link")
	}
	if len(detail.Reviews) != 1 {
		t.Fatalf("expected 1 review, got %d", len(detail.Reviews))
	}
}

func TestGetMaster_NotFound(t *testing.T) {
	svc := NewCatalogService(newCatalogStore(t), zap.NewNop())

	if _, err := svc.GetMaster(context.Background(), "missing"); err != ErrMasterNotFound {
		t.Fatalf("expected ErrMasterNotFound, got %v", err)
	}
}

func TestListServices(t *testing.T) {
	svc := NewCatalogService(newCatalogStore(t), zap.NewNop())

	services, err := svc.ListServices(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(services) != 2 {
		t.Fatalf("expected 2 services, got %d", len(services))
	}
}

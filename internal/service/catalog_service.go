package service

import (
	"context"
	"sort"
	"strings"

	"github.com/otabek-m/masterbook/internal/model"
	"github.com/otabek-m/masterbook/internal/storage"
	"go.uber.org/zap"
)

// CatalogService справочник: услуги, мастера, поиск
type CatalogService struct {
	store  storage.Store
	logger *zap.Logger
}

func NewCatalogService(store storage.Store, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		store:  store,
		logger: logger,
	}
}

// ListServices все услуги каталога
func (s *CatalogService) ListServices(ctx context.Context) ([]model.Service, error) {
	services := []model.Service{}
	err := s.store.View(ctx, func(doc *model.Document) error {
		services = append(services, doc.Services...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return services, nil
}

// SearchFilter фильтры поиска мастеров. Все поля опциональны.
type SearchFilter struct {
	ServiceID string
	District  string
	Date      string // влияет только на аннотацию nextSlot
	Query     string // подстрока по имени и bio
}

// SearchMasters фильтрует мастеров и аннотирует каждого минимальной ценой и
// ближайшим свободным слотом. Мастер без подходящего слота остаётся в выдаче
// с nextSlot = null: фильтр по дате сужает аннотацию, а не список.
func (s *CatalogService) SearchMasters(ctx context.Context, f SearchFilter) ([]model.MasterSummary, error) {
	result := []model.MasterSummary{}

	err := s.store.View(ctx, func(doc *model.Document) error {
		for _, m := range doc.Masters {
			if f.District != "" && !containsFold(m.District, f.District) {
				continue
			}
			if f.Query != "" && !containsFold(m.Name+" "+m.Bio, f.Query) {
				continue
			}
			if f.ServiceID != "" && !masterOffers(doc, m.ID, f.ServiceID) {
				continue
			}

			summary := model.MasterSummary{Master: m}
			if price, ok := minPriceFor(doc, m.ID); ok {
				summary.PriceFrom = &price
			}
			if next := nextAvailableSlot(doc, m.ID, f.Date); next != nil {
				summary.NextSlot = &model.NextSlot{Date: next.Date, Time: next.Time}
			}

			result = append(result, summary)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetMaster карточка мастера: услуги с ценами и отзывы
func (s *CatalogService) GetMaster(ctx context.Context, id string) (*model.MasterDetail, error) {
	var detail *model.MasterDetail

	err := s.store.View(ctx, func(doc *model.Document) error {
		var master *model.Master
		for i := range doc.Masters {
			if doc.Masters[i].ID == id {
				master = &doc.Masters[i]
				break
			}
		}
		if master == nil {
			return ErrMasterNotFound
		}

		detail = &model.MasterDetail{
			Master:   *master,
			Services: []model.OfferedService{},
			Reviews:  []model.Review{},
		}

		for _, link := range doc.MasterServices {
			if link.MasterID != id {
				continue
			}
			svc, ok := findService(doc, link.ServiceID)
			if !ok {
				// Битая ссылка на услугу карточку не ломает
				continue
			}
			detail.Services = append(detail.Services, model.OfferedService{
				Service:     svc,
				PriceFrom:   link.PriceFrom,
				DurationMin: link.DurationMin,
			})
		}

		for _, r := range doc.Reviews {
			if r.MasterID == id {
				detail.Reviews = append(detail.Reviews, r)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return detail, nil
}

// priceFor цена "от" по связке (мастер, услуга)
func priceFor(doc *model.Document, masterID, serviceID string) (int, bool) {
	for _, link := range doc.MasterServices {
		if link.MasterID == masterID && link.ServiceID == serviceID {
			return link.PriceFrom, true
		}
	}
	return 0, false
}

// minPriceFor минимальная цена среди всех услуг мастера
func minPriceFor(doc *model.Document, masterID string) (int, bool) {
	prices := []int{}
	for _, link := range doc.MasterServices {
		if link.MasterID == masterID {
			prices = append(prices, link.PriceFrom)
		}
	}
	if len(prices) == 0 {
		return 0, false
	}
	sort.Ints(prices)
	return prices[0], true
}

func masterOffers(doc *model.Document, masterID, serviceID string) bool {
	for _, link := range doc.MasterServices {
		if link.MasterID == masterID && link.ServiceID == serviceID {
			return true
		}
	}
	return false
}

func findService(doc *model.Document, id string) (model.Service, bool) {
	for _, svc := range doc.Services {
		if svc.ID == id {
			return svc, true
		}
	}
	return model.Service{}, false
}

// containsFold регистронезависимое вхождение подстроки
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

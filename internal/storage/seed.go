package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/otabek-m/masterbook/internal/model"
	"go.uber.org/zap"
)

// Расписание слотов при первичном заполнении: окно в днях и времена на день
const seedDays = 10

var seedTimes = []string{"10:00", "12:00", "14:00", "16:00"}

// EnsureSeeded заполняет пустой документ демо-каталогом и слотами.
// Идемпотентно: если услуги уже есть, ничего не делает.
func EnsureSeeded(ctx context.Context, store Store, now time.Time, logger *zap.Logger) error {
	return store.Update(ctx, func(doc *model.Document) error {
		if len(doc.Services) > 0 {
			logger.Debug("Document already seeded, skipping")
			return nil
		}

		doc.Services = seedServices()
		doc.Masters = seedMasters()
		doc.MasterServices = seedMasterServices()
		doc.Reviews = seedReviews()
		doc.Slots = generateSlots(doc.Masters, now)

		logger.Info("Seeded demo data",
			zap.Int("masters", len(doc.Masters)),
			zap.Int("services", len(doc.Services)),
			zap.Int("slots", len(doc.Slots)),
		)

		return nil
	})
}

// generateSlots по слоту на каждую пару (мастер, день, время) в окне
// seedDays от переданной даты. Уникальность (masterId, date, time)
// обеспечивается самой схемой перебора.
func generateSlots(masters []model.Master, now time.Time) []model.Slot {
	slots := make([]model.Slot, 0, len(masters)*seedDays*len(seedTimes))

	for _, m := range masters {
		for i := 0; i < seedDays; i++ {
			date := now.AddDate(0, 0, i).Format("2006-01-02")
			for _, t := range seedTimes {
				slots = append(slots, model.Slot{
					ID:       uuid.NewString(),
					MasterID: m.ID,
					Date:     date,
					Time:     t,
					IsBooked: false,
				})
			}
		}
	}

	return slots
}

func seedServices() []model.Service {
	return []model.Service{
		{ID: "svc_manicure", Name: "Маникюр"},
		{ID: "svc_pedicure", Name: "Педикюр"},
		{ID: "svc_haircut", Name: "Стрижка"},
		{ID: "svc_color", Name: "Окрашивание"},
		{ID: "svc_brows", Name: "Брови/Ресницы"},
	}
}

func seedMasters() []model.Master {
	return []model.Master{
		{
			ID:       "m_1",
			Name:     "Amina",
			District: "Чиланзар",
			Address:  "Чиланзар, ориентир: метро",
			Bio:      "Ногти без сколов. Опыт 5 лет.",
			Avatar:   "https://images.unsplash.com/photo-1524504388940-b1c1722653e1?auto=format&fit=crop&w=256&q=60",
			Portfolio: []string{
				"https://images.unsplash.com/photo-1604654894610-df63bc536371?auto=format&fit=crop&w=900&q=60",
				"https://images.unsplash.com/photo-1522337360788-8b13dee7a37e?auto=format&fit=crop&w=900&q=60",
			},
		},
		{
			ID:       "m_2",
			Name:     "Sardor",
			District: "Юнусабад",
			Address:  "Юнусабад, рядом с парком",
			Bio:      "Барбер. Быстро и аккуратно.",
			Avatar:   "https://images.unsplash.com/photo-1535713875002-d1d0cf377fde?auto=format&fit=crop&w=256&q=60",
			Portfolio: []string{
				"https://images.unsplash.com/photo-1599351431202-1e0f0137899a?auto=format&fit=crop&w=900&q=60",
				"https://images.unsplash.com/photo-1585747860715-2ba37e788b70?auto=format&fit=crop&w=900&q=60",
			},
		},
		{
			ID:       "m_3",
			Name:     "Dilnoza",
			District: "Мирзо-Улугбек",
			Address:  "М-Улугбек, возле ТЦ",
			Bio:      "Брови/ресницы + лёгкий макияж.",
			Avatar:   "https://images.unsplash.com/photo-1544005313-94ddf0286df2?auto=format&fit=crop&w=256&q=60",
			Portfolio: []string{
				"https://images.unsplash.com/photo-1527799820374-dcf8c7d3fc7f?auto=format&fit=crop&w=900&q=60",
				"https://images.unsplash.com/photo-1526045478516-99145907023c?auto=format&fit=crop&w=900&q=60",
			},
		},
	}
}

func seedMasterServices() []model.MasterService {
	return []model.MasterService{
		{ID: uuid.NewString(), MasterID: "m_1", ServiceID: "svc_manicure", PriceFrom: 120000, DurationMin: 90},
		{ID: uuid.NewString(), MasterID: "m_1", ServiceID: "svc_pedicure", PriceFrom: 160000, DurationMin: 90},
		{ID: uuid.NewString(), MasterID: "m_2", ServiceID: "svc_haircut", PriceFrom: 90000, DurationMin: 45},
		{ID: uuid.NewString(), MasterID: "m_2", ServiceID: "svc_color", PriceFrom: 220000, DurationMin: 120},
		{ID: uuid.NewString(), MasterID: "m_3", ServiceID: "svc_brows", PriceFrom: 110000, DurationMin: 60},
	}
}

func seedReviews() []model.Review {
	return []model.Review{
		{ID: uuid.NewString(), MasterID: "m_1", Author: "Ziyoda", Rating: 5, Text: "Маникюр держится третью неделю, очень довольна."},
		{ID: uuid.NewString(), MasterID: "m_2", Author: "Bekzod", Rating: 5, Text: "Подстригся за 30 минут, всё чётко."},
		{ID: uuid.NewString(), MasterID: "m_3", Author: "Madina", Rating: 4, Text: "Брови аккуратные, запишусь ещё."},
	}
}

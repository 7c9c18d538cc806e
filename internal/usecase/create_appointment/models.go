package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Request модель запроса на создание записи.
// Все выборы (услуги, мастер, дата, время) берутся из booking-сессии
// пользователя, поэтому в запросе только владелец и заметки.
type Request struct {
	UserID string  // ID пользователя (от auth-провайдера)
	Notes  *string // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID                   string                   // ID созданной записи
	UserID               string                   // ID пользователя
	StylistID            int64                    // ID мастера
	Services             []domain.ServiceSnapshot // Снапшоты услуг на момент записи
	Date                 time.Time                // Дата записи
	StartTime            types.TimeString         // Время начала
	EndTime              types.TimeString         // Время окончания (start + суммарная длительность)
	TotalDurationMinutes int                      // Суммарная длительность услуг
	TotalPrice           float64                  // Суммарная стоимость услуг
	Status               string                   // Статус записи
	Notes                *string                  // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}

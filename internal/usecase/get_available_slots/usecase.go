package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
)

// UseCase use case для получения слотов мастера на день
type UseCase struct {
	appointmentRepo AppointmentRepository
	catalogRepo     CatalogRepository
	sessions        SessionProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	catalogRepo CatalogRepository,
	sessions SessionProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		catalogRepo:     catalogRepo,
		sessions:        sessions,
		logger:          logger,
	}
}

// Execute выполняет use case получения слотов.
// Отсутствие доступности - это данные (пустой список или слоты с
// available=false), а не ошибка: бизнес-ошибок генератор не поднимает.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%q, stylist=%d, date=%s",
		req.UserID, req.StylistID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем мастера
	stylist, err := uc.catalogRepo.GetStylist(ctx, req.StylistID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrStylistNotFound) {
			uc.logger.Warn("GetAvailableSlots: stylist id=%d not found", req.StylistID)
			return nil, ErrStylistNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get stylist id=%d: %v", req.StylistID, err)
		return nil, fmt.Errorf("%w: failed to get stylist: %v", ErrInternal, err)
	}

	// 3. Длительность: сумма выбранных в сессии услуг, иначе дефолт.
	// Дефолт применяется и для анонимных запросов без сессии.
	duration := 0
	if req.UserID != "" {
		duration = uc.sessions.SelectedDurationMinutes(req.UserID)
	}
	if duration <= 0 {
		duration = domain.DefaultAppointmentDurationMinutes
	}

	// 4. Получаем записи мастера на дату (отменённые не занимают слоты)
	appointments, err := uc.appointmentRepo.GetByStylistAndDate(ctx, req.StylistID, req.Date, false)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 5. Генерируем слоты дня
	slots := buildDaySlots(req.Date, stylist, appointments, duration)

	uc.logger.Info("GetAvailableSlots: generated %d slots for stylist=%d, date=%s, duration=%d",
		len(slots), req.StylistID, req.Date.Format(domain.DateFormat), duration)

	return &Response{
		StylistID:       req.StylistID,
		Date:            req.Date,
		DurationMinutes: duration,
		Slots:           slots,
	}, nil
}

package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
)

// UseCase use case для создания записи из booking-сессии пользователя
type UseCase struct {
	appointmentRepo AppointmentRepository
	sessions        SessionManager
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	sessions SessionManager,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		sessions:        sessions,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Сессия потребляется атомарно: очищается только после успешного коммита.
// Любая ошибка (валидация, конфликт, сбой записи) оставляет выборы
// нетронутыми, чтобы пользователь мог повторить без повторного ввода.
// Проверка конфликта выполняется в сериализуемой транзакции для защиты
// от гонки между конкурентными бронированиями одного слота.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: user=%q", req.UserID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Снимаем снапшот сессии и проверяем полноту выбора
	session := uc.sessions.Snapshot(req.UserID)
	if err := validateSession(&session); err != nil {
		uc.logger.Warn("CreateAppointment: incomplete session for user=%q", req.UserID)
		return nil, err
	}

	stylist := session.SelectedStylist
	date := *session.SelectedDate
	startTime := session.SelectedTimeSlot.Time

	// 3. Дата записи не может быть в прошлом
	if isDateInPast(date, uc.timeProvider.Now()) {
		uc.logger.Warn("CreateAppointment: date %s is in the past", date.Format(domain.DateFormat))
		return nil, fmt.Errorf("%w: date is in the past", ErrInvalidInput)
	}

	// 4. Считаем итоги по снапшотам услуг
	totalDuration := session.TotalDurationMinutes()
	totalPrice := session.TotalPrice()

	services := make([]domain.ServiceSnapshot, 0, len(session.SelectedServices))
	for _, svc := range session.SelectedServices {
		services = append(services, svc.Snapshot())
	}

	// 5. endTime = startTime + суммарная длительность.
	// Переход через полночь отклоняем явно.
	endTime, err := startTime.AddMinutes(totalDuration)
	if err != nil {
		uc.logger.Warn("CreateAppointment: appointment crosses midnight: start=%s duration=%d",
			startTime, totalDuration)
		return nil, ErrSpansMidnight
	}

	var result *domain.Appointment

	// 6. Конфликт-чек и вставка в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Записи мастера на дату с блокировкой строк (FOR UPDATE)
		existing, err := uc.appointmentRepo.GetByStylistAndDate(txCtx, stylist.ID, date, false)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 6.2. Слот мог быть занят после генерации - проверяем заново
		if conflicts := countConflicts(startTime, totalDuration, existing); conflicts > 0 {
			uc.logger.Warn("CreateAppointment: slot %s on %s already taken for stylist=%d",
				startTime, date.Format(domain.DateFormat), stylist.ID)
			return ErrSlotTaken
		}

		// 6.3. Создаем запись
		appt := &domain.Appointment{
			UserID:               req.UserID,
			StylistID:            stylist.ID,
			Services:             services,
			Date:                 date,
			StartTime:            startTime,
			EndTime:              endTime,
			TotalDurationMinutes: totalDuration,
			TotalPrice:           totalPrice,
			Status:               domain.StatusConfirmed,
			Notes:                req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			// Уникальный индекс мог сработать раньше нашей проверки
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				return ErrSlotTaken
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Сессию не трогаем: пользователь повторит коммит или выберет другой слот
		return nil, err
	}

	// 7. Сессия потреблена - очищаем только после успешного коммита
	uc.sessions.Clear(req.UserID)

	uc.logger.Info("CreateAppointment: successfully created appointment id=%s for user=%q",
		result.ID, req.UserID)

	return &Response{
		ID:                   result.ID,
		UserID:               result.UserID,
		StylistID:            result.StylistID,
		Services:             result.Services,
		Date:                 result.Date,
		StartTime:            result.StartTime,
		EndTime:              result.EndTime,
		TotalDurationMinutes: result.TotalDurationMinutes,
		TotalPrice:           result.TotalPrice,
		Status:               string(result.Status),
		Notes:                result.Notes,
		CreatedAt:            result.CreatedAt,
		UpdatedAt:            result.UpdatedAt,
	}, nil
}

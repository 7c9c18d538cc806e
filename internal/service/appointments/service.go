package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	identityClient "github.com/m04kA/SMC-SalonService/internal/integrations/identityservice"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
)

// Service сервис для работы с записями салона
type Service struct {
	appointmentRepo AppointmentRepository
	identityClient  IdentityServiceClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	identityClient IdentityServiceClient,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		identityClient:  identityClient,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Проверяет права доступа - пользователь может видеть только свою запись
// или если он является администратором салона
func (s *Service) GetByID(ctx context.Context, id string, userID string) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s for user=%q", id, userID)

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, appt, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%q to appointment id=%s", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%s", id)
	return models.FromDomainAppointment(appt), nil
}

// GetUserAppointments получает историю записей пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserAppointments(ctx context.Context, req *models.GetUserAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetUserAppointments: fetching appointments for user=%q, status=%v", req.UserID, req.Status)

	// Конвертируем статус из строки в domain.AppointmentStatus
	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserAppointments: invalid status=%s for user=%q", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	appointments, err := s.appointmentRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserAppointments: repository error for user=%q: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserAppointments: successfully fetched %d appointments for user=%q",
		len(appointments), req.UserID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет запись
// Пользователь может отменить только свою запись, администратор - любую.
// Повторная отмена уже отменённой записи не считается ошибкой.
// Завершённые записи и no-show отменить нельзя.
func (s *Service) Cancel(ctx context.Context, appointmentID string, userID string) error {
	s.logger.Info("Cancel: cancelling appointment id=%s by user=%q", appointmentID, userID)

	appt, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%s not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%s: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, appt, userID); err != nil {
		s.logger.Warn("Cancel: access denied for user=%q to appointment id=%s", userID, appointmentID)
		return err
	}

	// Отмена идемпотентна: повторный запрос на уже отменённую запись - no-op
	if appt.IsCancelled() {
		s.logger.Info("Cancel: appointment id=%s already cancelled", appointmentID)
		return nil
	}

	if !appt.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%s cannot be cancelled, status=%s", appointmentID, appt.Status)
		return ErrCannotCancel
	}

	if err := s.appointmentRepo.Cancel(ctx, appointmentID); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%s not found during cancellation", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%s: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%s", appointmentID)
	return nil
}

// UpdateStatus обновляет статус записи
// Доступно только администраторам салона.
// Разрешены только переходы из confirmed в completed или no-show,
// терминальные статусы неизменяемы.
func (s *Service) UpdateStatus(ctx context.Context, appointmentID string, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating appointment id=%s to status=%s by user=%q",
		appointmentID, req.Status, req.UserID)

	// Проверяем права доступа (только администратор)
	if err := s.checkAdminAccess(ctx, req.UserID); err != nil {
		return err
	}

	appt, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%s not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%s: %v", appointmentID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if appt.IsTerminal() {
		s.logger.Warn("UpdateStatus: appointment id=%s is in terminal status=%s", appointmentID, appt.Status)
		return ErrTerminalStatus
	}

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%s", req.Status, appointmentID)
		return fmt.Errorf("%w: invalid status", ErrInvalidStatus)
	}

	// Администратору доступны только completed и no-show,
	// отмена идёт отдельной операцией
	if !isAdminStatus(newStatus) {
		s.logger.Warn("UpdateStatus: status=%s is not allowed for appointment id=%s", newStatus, appointmentID)
		return fmt.Errorf("%w: status %s is not allowed", ErrInvalidStatus, newStatus)
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, appointmentID, newStatus); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%s not found during update", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%s: %v", appointmentID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated appointment id=%s to status=%s", appointmentID, newStatus)
	return nil
}

// Вспомогательные методы

// checkUserAccess проверяет, что пользователь имеет доступ к записи
// Пользователь может работать со своей записью или если он администратор
func (s *Service) checkUserAccess(ctx context.Context, appt *domain.Appointment, userID string) error {
	// Если пользователь владелец записи - доступ разрешён
	if appt.UserID == userID {
		return nil
	}

	// Проверяем, является ли пользователь администратором
	if err := s.checkAdminAccess(ctx, userID); err != nil {
		// Ошибка уже залогирована в checkAdminAccess
		return ErrAccessDenied
	}

	return nil
}

// checkAdminAccess проверяет, что пользователь является администратором салона
func (s *Service) checkAdminAccess(ctx context.Context, userID string) error {
	isAdmin, err := s.identityClient.IsAdmin(ctx, userID)
	if err != nil {
		if errors.Is(err, identityClient.ErrUserNotFound) {
			s.logger.Warn("checkAdminAccess: user %q not found", userID)
			return ErrAccessDenied
		}
		s.logger.Error("checkAdminAccess: failed to check user %q: %v", userID, err)
		return fmt.Errorf("%w: checkAdminAccess - failed to check user: %v", ErrInternal, err)
	}

	if !isAdmin {
		s.logger.Warn("checkAdminAccess: user %q is not an admin", userID)
		return ErrAccessDenied
	}

	return nil
}

// isAdminStatus проверяет, что статус входит в список разрешённых
// для ручного выставления администратором
func isAdminStatus(status domain.AppointmentStatus) bool {
	for _, allowed := range domain.AdminStatuses {
		if status == allowed {
			return true
		}
	}
	return false
}

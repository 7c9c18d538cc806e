package calendar

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
	identityClient "github.com/m04kA/SMC-SalonService/internal/integrations/identityservice"
)

const (
	// salonLocation значение LOCATION в экспортируемом событии
	salonLocation = "Choppers Salon"

	// icsTimestampFormat формат временных меток iCalendar (UTC)
	icsTimestampFormat = "20060102T150405Z"
)

// ExportResult .ics файл для скачивания
type ExportResult struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Service сервис экспорта записей в формат iCalendar (RFC 5545)
type Service struct {
	appointmentRepo AppointmentRepository
	catalogRepo     CatalogRepository
	identityClient  IdentityServiceClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса экспорта
func NewService(
	appointmentRepo AppointmentRepository,
	catalogRepo CatalogRepository,
	identityClient IdentityServiceClient,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		catalogRepo:     catalogRepo,
		identityClient:  identityClient,
		logger:          logger,
	}
}

// Export генерирует .ics файл для записи.
// Пользователь может экспортировать только свою запись,
// администратор - любую. Отменённые записи не экспортируются.
func (s *Service) Export(ctx context.Context, appointmentID string, userID string) (*ExportResult, error) {
	s.logger.Info("Export: exporting appointment id=%s for user=%q", appointmentID, userID)

	appt, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Export: appointment id=%s not found", appointmentID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Export: repository error for appointment id=%s: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: Export - repository error: %v", ErrInternal, err)
	}

	if err := s.checkUserAccess(ctx, appt, userID); err != nil {
		s.logger.Warn("Export: access denied for user=%q to appointment id=%s", userID, appointmentID)
		return nil, err
	}

	if appt.IsCancelled() {
		s.logger.Warn("Export: appointment id=%s is cancelled", appointmentID)
		return nil, ErrCancelledAppointment
	}

	// Имя мастера денормализуем из каталога. Если мастер удалён из
	// каталога, событие всё равно генерируется с placeholder-именем.
	stylistName := "Stylist"
	stylist, err := s.catalogRepo.GetStylist(ctx, appt.StylistID)
	if err != nil {
		if !errors.Is(err, catalogRepo.ErrStylistNotFound) {
			s.logger.Error("Export: failed to get stylist id=%d: %v", appt.StylistID, err)
			return nil, fmt.Errorf("%w: Export - failed to get stylist: %v", ErrInternal, err)
		}
		s.logger.Warn("Export: stylist id=%d not found, using placeholder name", appt.StylistID)
	} else {
		stylistName = stylist.Name
	}

	// Email владельца записи идёт строкой ATTENDEE. Недоступность
	// identity-сервиса экспорт не блокирует.
	attendeeEmail := ""
	owner, err := s.identityClient.GetUser(ctx, appt.UserID)
	if err != nil {
		s.logger.Warn("Export: failed to get owner %q for attendee line: %v", appt.UserID, err)
	} else {
		attendeeEmail = owner.Email
	}

	content := buildEvent(appt, stylistName, attendeeEmail)

	s.logger.Info("Export: successfully exported appointment id=%s", appointmentID)
	return &ExportResult{
		Filename:    fmt.Sprintf("appointment-%s.ics", appt.Date.Format(domain.DateFormat)),
		ContentType: "text/calendar",
		Content:     []byte(content),
	}, nil
}

// buildEvent собирает VCALENDAR с одним VEVENT.
// Строки разделяются CRLF согласно RFC 5545.
func buildEvent(appt *domain.Appointment, stylistName string, attendeeEmail string) string {
	start := eventTime(appt.Date, appt.StartTime.Minutes())
	end := eventTime(appt.Date, appt.EndTime.Minutes())

	serviceNames := make([]string, 0, len(appt.Services))
	for _, svc := range appt.Services {
		serviceNames = append(serviceNames, svc.Name)
	}

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//SMC-SalonService//Appointments//EN",
		"BEGIN:VEVENT",
		"UID:" + escapeText(appt.ID),
		"DTSTAMP:" + time.Now().UTC().Format(icsTimestampFormat),
		"DTSTART:" + start.Format(icsTimestampFormat),
		"DTEND:" + end.Format(icsTimestampFormat),
		"SUMMARY:Salon Appointment with " + escapeText(stylistName),
		"DESCRIPTION:Services: " + escapeText(strings.Join(serviceNames, ", ")),
		"LOCATION:" + escapeText(salonLocation),
	}

	if attendeeEmail != "" {
		lines = append(lines, "ATTENDEE:mailto:"+escapeText(attendeeEmail))
	}

	lines = append(lines, "END:VEVENT", "END:VCALENDAR")

	return strings.Join(lines, "\r\n") + "\r\n"
}

// eventTime собирает UTC-метку события из даты и минут с начала суток
func eventTime(date time.Time, minutes int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC).
		Add(time.Duration(minutes) * time.Minute)
}

// escapeText экранирует спецсимволы текстовых значений согласно RFC 5545
func escapeText(s string) string {
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\n", "\\n",
	)
	return replacer.Replace(s)
}

// checkUserAccess проверяет, что пользователь имеет доступ к записи
func (s *Service) checkUserAccess(ctx context.Context, appt *domain.Appointment, userID string) error {
	if appt.UserID == userID {
		return nil
	}

	isAdmin, err := s.identityClient.IsAdmin(ctx, userID)
	if err != nil {
		if errors.Is(err, identityClient.ErrUserNotFound) {
			return ErrAccessDenied
		}
		s.logger.Error("checkUserAccess: failed to check user %q: %v", userID, err)
		return fmt.Errorf("%w: checkUserAccess - failed to check user: %v", ErrInternal, err)
	}

	if !isAdmin {
		return ErrAccessDenied
	}

	return nil
}

package bookingflow

import (
	"sync"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Session снапшот текущих выборов пользователя в booking flow.
// Стадии: услуги -> мастер -> дата -> время.
// Сессия живет только в памяти процесса и не переживает рестарт.
type Session struct {
	SelectedServices []domain.Service
	SelectedStylist  *domain.Stylist
	SelectedDate     *time.Time
	SelectedTimeSlot *domain.TimeSlot
}

// IsComplete возвращает true, когда все стадии выбора заполнены
func (s Session) IsComplete() bool {
	return len(s.SelectedServices) > 0 &&
		s.SelectedStylist != nil &&
		s.SelectedDate != nil &&
		s.SelectedTimeSlot != nil
}

// TotalDurationMinutes возвращает суммарную длительность выбранных услуг
func (s Session) TotalDurationMinutes() int {
	total := 0
	for _, svc := range s.SelectedServices {
		total += svc.DurationMinutes
	}
	return total
}

// TotalPrice возвращает суммарную стоимость выбранных услуг
func (s Session) TotalPrice() float64 {
	total := 0.0
	for _, svc := range s.SelectedServices {
		total += svc.Price
	}
	return total
}

// session внутреннее состояние с отметкой активности для TTL-очистки
type session struct {
	Session
	lastActive time.Time
}

// Manager хранит booking-сессии всех пользователей.
// Возврат на раннюю стадию выбора сбрасывает все стадии ниже,
// чтобы нельзя было забронировать устаревшую комбинацию.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*session
	ttl      time.Duration
	logger   Logger
}

// NewManager создает новый менеджер booking-сессий
func NewManager(ttl time.Duration, logger Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*session),
		ttl:      ttl,
		logger:   logger,
	}
}

// get возвращает сессию пользователя, создавая пустую при необходимости.
// Вызывающий должен держать m.mu.
func (m *Manager) get(userID string) *session {
	s, ok := m.sessions[userID]
	if !ok {
		s = &session{}
		m.sessions[userID] = s
	}
	s.lastActive = time.Now()
	return s
}

// AddService добавляет услугу в выбор. Повторное добавление услуги с тем же
// id игнорируется (toggle-семантика на стороне вызывающего).
// Изменение услуг сбрасывает выбор мастера, даты и времени.
func (m *Manager) AddService(userID string, svc domain.Service) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.get(userID)

	for _, selected := range s.SelectedServices {
		if selected.ID == svc.ID {
			return nil
		}
	}

	if len(s.SelectedServices) >= domain.MaxSelectedServices {
		return ErrTooManyServices
	}

	s.SelectedServices = append(s.SelectedServices, svc)
	m.resetDownstreamOfServices(s)

	return nil
}

// RemoveService убирает услугу из выбора по id.
// Изменение услуг сбрасывает выбор мастера, даты и времени.
func (m *Manager) RemoveService(userID string, serviceID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.get(userID)

	filtered := s.SelectedServices[:0]
	changed := false
	for _, selected := range s.SelectedServices {
		if selected.ID == serviceID {
			changed = true
			continue
		}
		filtered = append(filtered, selected)
	}
	s.SelectedServices = filtered

	if changed {
		m.resetDownstreamOfServices(s)
	}
}

// SelectStylist выбирает мастера (nil снимает выбор).
// Смена мастера сбрасывает выбранные дату и время: доступность зависит от мастера.
func (m *Manager) SelectStylist(userID string, stylist *domain.Stylist) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.get(userID)
	s.SelectedStylist = stylist
	s.SelectedDate = nil
	s.SelectedTimeSlot = nil
}

// SelectDate выбирает дату (nil снимает выбор).
// Смена даты сбрасывает выбранное время.
func (m *Manager) SelectDate(userID string, date *time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.get(userID)
	s.SelectedDate = date
	s.SelectedTimeSlot = nil
}

// SelectTimeSlot выбирает временной слот (nil снимает выбор)
func (m *Manager) SelectTimeSlot(userID string, slot *domain.TimeSlot) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.get(userID)
	s.SelectedTimeSlot = slot
}

// Clear полностью сбрасывает сессию пользователя.
// Вызывается после успешного создания записи или при явном отказе от flow.
func (m *Manager) Clear(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, userID)
}

// Snapshot возвращает копию текущей сессии пользователя.
// Мутации менеджера после снятия снапшота его не меняют.
func (m *Manager) Snapshot(userID string) Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[userID]
	if !ok {
		return Session{}
	}

	snapshot := Session{
		SelectedServices: make([]domain.Service, len(s.SelectedServices)),
		SelectedStylist:  s.SelectedStylist,
		SelectedDate:     s.SelectedDate,
		SelectedTimeSlot: s.SelectedTimeSlot,
	}
	copy(snapshot.SelectedServices, s.SelectedServices)

	return snapshot
}

// SelectedDurationMinutes возвращает суммарную длительность выбранных услуг.
// 0 означает, что услуги ещё не выбраны - вызывающий применяет дефолт.
func (m *Manager) SelectedDurationMinutes(userID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[userID]
	if !ok {
		return 0
	}
	return s.TotalDurationMinutes()
}

func (m *Manager) resetDownstreamOfServices(s *session) {
	s.SelectedStylist = nil
	s.SelectedDate = nil
	s.SelectedTimeSlot = nil
}

// RunSweeper периодически удаляет заброшенные сессии, пока не закрыт stopCh
func (m *Manager) RunSweeper(interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

func (m *Manager) sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-m.ttl)
	removed := 0
	for userID, s := range m.sessions {
		if s.lastActive.Before(cutoff) {
			delete(m.sessions, userID)
			removed++
		}
	}

	if removed > 0 {
		m.logger.Info("bookingflow: swept %d abandoned sessions", removed)
	}
}

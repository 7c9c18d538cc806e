package create_appointment

import "errors"

var (
	// ErrIncompleteSession возвращается, когда в booking-сессии не хватает
	// обязательных выборов (услуги, мастер, дата, время).
	// Не ретраится: пользователь должен дозаполнить выбор.
	ErrIncompleteSession = errors.New("create_appointment: missing required booking information")

	// ErrSlotTaken возвращается, когда слот занят конкурентной записью
	// между генерацией слотов и коммитом. Ретраится: нужно перегенерировать
	// слоты и дать пользователю выбрать заново.
	ErrSlotTaken = errors.New("create_appointment: slot is not available")

	// ErrSpansMidnight возвращается, когда запись переваливает за полночь.
	// Политика явная: такие записи отклоняются, а не заворачиваются на
	// следующий день.
	ErrSpansMidnight = errors.New("create_appointment: appointment would cross midnight")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)

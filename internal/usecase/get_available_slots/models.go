package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Request модель запроса на получение слотов мастера
type Request struct {
	UserID    string    // ID пользователя; пустая строка - аноним (дефолтная длительность)
	StylistID int64     // ID мастера
	Date      time.Time // Дата, на которую запрашиваются слоты (без времени)
}

// Response модель ответа со слотами на день
type Response struct {
	StylistID       int64             // ID мастера
	Date            time.Time         // Дата, на которую запрашивались слоты
	DurationMinutes int               // Длительность, с которой проверялась доступность
	Slots           []domain.TimeSlot // Упорядоченный список слотов дня
}

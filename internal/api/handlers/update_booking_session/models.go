package update_booking_session

// UpdateSessionRequest HTTP request model.
// Все поля опциональны, применяются в порядке стадий booking flow:
// услуги -> мастер -> дата -> время. Изменение ранней стадии сбрасывает
// все стадии ниже.
type UpdateSessionRequest struct {
	AddServiceID    *string `json:"addServiceId,omitempty"`
	RemoveServiceID *string `json:"removeServiceId,omitempty"`
	StylistID       *int64  `json:"stylistId,omitempty"`
	Date            *string `json:"date,omitempty"` // "2026-03-14"
	Time            *string `json:"time,omitempty"` // "10:30"
}

// IsEmpty возвращает true, если запрос не содержит ни одного изменения
func (r *UpdateSessionRequest) IsEmpty() bool {
	return r.AddServiceID == nil &&
		r.RemoveServiceID == nil &&
		r.StylistID == nil &&
		r.Date == nil &&
		r.Time == nil
}

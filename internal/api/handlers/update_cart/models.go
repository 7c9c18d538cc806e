package update_cart

// UpdateCartRequest HTTP request model.
// Ровно одно действие за запрос: добавить товар, изменить количество,
// убрать позицию или очистить корзину.
type UpdateCartRequest struct {
	AddProductID    *int64 `json:"addProductId,omitempty"`
	SetProductID    *int64 `json:"setProductId,omitempty"`
	RemoveProductID *int64 `json:"removeProductId,omitempty"`
	Quantity        *int   `json:"quantity,omitempty"`
	Clear           bool   `json:"clear,omitempty"`
}

// actionCount возвращает число действий в запросе
func (r *UpdateCartRequest) actionCount() int {
	count := 0
	if r.AddProductID != nil {
		count++
	}
	if r.SetProductID != nil {
		count++
	}
	if r.RemoveProductID != nil {
		count++
	}
	if r.Clear {
		count++
	}
	return count
}

package get_available_slots

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.MenuID == "" {
		return fmt.Errorf("%w: menuId is required", ErrInvalidInput)
	}

	return nil
}

package orders

import "studio-admin/internal/models"

// Status labels shown by the dashboard.
const (
	StatusCanceled   = "Canceled"
	StatusCompleted  = "Completed"
	StatusPaid       = "Paid"
	StatusProcessing = "Processing"
)

// StatusLabel projects an order's boolean flags onto the display label.
// Precedence, first match wins: canceled, completed, paid/confirmed,
// processing. This is a pure projection; the flags are the stored state.
func StatusLabel(o models.Order) string {
	switch {
	case o.IsCanceled:
		return StatusCanceled
	case o.IsCompleted:
		return StatusCompleted
	case o.IsPaid || o.IsConfirmed:
		return StatusPaid
	default:
		return StatusProcessing
	}
}

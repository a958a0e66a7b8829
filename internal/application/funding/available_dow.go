package funding

import (
	"context"

	"github.com/him-Tech/web2-backend-sub000/internal/application/ports"
	"github.com/him-Tech/web2-backend-sub000/internal/domain"
)

// AvailableDow exposes the derived balance to handlers.
type AvailableDow struct {
	dow ports.DowRepository
}

func NewAvailableDow(dow ports.DowRepository) *AvailableDow {
	return &AvailableDow{dow: dow}
}

func (uc *AvailableDow) Execute(ctx context.Context, userID domain.UserID, companyID *domain.CompanyID) (int64, error) {
	return uc.dow.GetAvailableDoWs(ctx, userID, companyID)
}

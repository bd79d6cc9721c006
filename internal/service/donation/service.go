package donation

import (
	"context"

	"github.com/google/uuid"

	"github.com/SAIMANIDEEP29/donor-network/internal/domain"
	"github.com/SAIMANIDEEP29/donor-network/internal/repository"
)

type Service interface {
	ListMine(ctx context.Context, donorID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Donation], error)
}

type service struct {
	donationRepo repository.DonationRepository
}

func NewService(donationRepo repository.DonationRepository) Service {
	return &service{donationRepo: donationRepo}
}

func (s *service) ListMine(ctx context.Context, donorID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Donation], error) {
	donations, total, err := s.donationRepo.ListByDonor(ctx, donorID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Donation]{}, err
	}

	return domain.NewPaginatedResponse(donations, params.Page, params.PageSize, total), nil
}

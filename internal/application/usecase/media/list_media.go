package media

import (
	"context"

	"github.com/khoahotran/portfolio-builder/internal/domain/media"
	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
)

type ListMediaUseCase struct {
	mediaRepo media.Repository
}

func NewListMediaUseCase(r media.Repository) *ListMediaUseCase {
	return &ListMediaUseCase{mediaRepo: r}
}

type ListMediaInput struct {
	Identity      *portfolio.Identity
	Limit, Offset int
}

type ListMediaOutput struct{ Medias []*media.Media }

func (uc *ListMediaUseCase) Execute(ctx context.Context, in ListMediaInput) (*ListMediaOutput, error) {
	if in.Identity == nil || in.Identity.UID == "" {
		return nil, apperror.NewNotAuthenticated("listing uploads requires an identity")
	}
	if in.Limit <= 0 || in.Limit > 100 {
		in.Limit = 30
	}
	if in.Offset < 0 {
		in.Offset = 0
	}
	medias, err := uc.mediaRepo.ListByOwner(ctx, in.Identity.UID, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	return &ListMediaOutput{Medias: medias}, nil
}

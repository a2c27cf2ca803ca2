package tag

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipebox/recipe-api/domain"
	"github.com/recipebox/recipe-api/entities"
)

type (
	TagService interface {
		GetTags(ctx context.Context, userID string) ([]domain.TagResponse, error)
		CreateTag(ctx context.Context, req domain.CreateTagRequest, userID string) (domain.TagResponse, error)
		UpdateTag(ctx context.Context, tagID string, req domain.UpdateTagRequest, userID string) (domain.TagResponse, error)
		DeleteTag(ctx context.Context, tagID string, userID string) error
	}

	tagService struct {
		tagRepository TagRepository
	}
)

func NewTagService(tagRepository TagRepository) TagService {
	return &tagService{tagRepository: tagRepository}
}

func (s *tagService) GetTags(ctx context.Context, userID string) ([]domain.TagResponse, error) {
	tags, err := s.tagRepository.GetTags(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := make([]domain.TagResponse, 0, len(tags))
	for _, tag := range tags {
		res = append(res, domain.TagResponse{ID: tag.ID.String(), Name: tag.Name})
	}
	return res, nil
}

func (s *tagService) CreateTag(ctx context.Context, req domain.CreateTagRequest, userID string) (domain.TagResponse, error) {
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return domain.TagResponse{}, domain.ErrParseUUID
	}

	_, err = s.tagRepository.GetTagByName(ctx, userID, req.Name)
	if err == nil {
		return domain.TagResponse{}, domain.ErrTagAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.TagResponse{}, err
	}

	tag := &entities.Tag{UserID: ownerID, Name: req.Name}
	if err := s.tagRepository.CreateTag(ctx, tag); err != nil {
		return domain.TagResponse{}, err
	}
	return domain.TagResponse{ID: tag.ID.String(), Name: tag.Name}, nil
}

func (s *tagService) UpdateTag(ctx context.Context, tagID string, req domain.UpdateTagRequest, userID string) (domain.TagResponse, error) {
	// A malformed id cannot match a record; the uuid column would reject
	// it with a cast error instead of an empty result.
	if _, err := uuid.Parse(tagID); err != nil {
		return domain.TagResponse{}, domain.ErrTagNotFound
	}

	tag, err := s.tagRepository.GetTagByID(ctx, tagID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.TagResponse{}, domain.ErrTagNotFound
		}
		return domain.TagResponse{}, err
	}

	if req.Name != tag.Name {
		existing, err := s.tagRepository.GetTagByName(ctx, userID, req.Name)
		if err == nil && existing.ID != tag.ID {
			return domain.TagResponse{}, domain.ErrTagAlreadyExists
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.TagResponse{}, err
		}
	}

	tag.Name = req.Name
	if err := s.tagRepository.UpdateTag(ctx, tag); err != nil {
		return domain.TagResponse{}, err
	}
	return domain.TagResponse{ID: tag.ID.String(), Name: tag.Name}, nil
}

func (s *tagService) DeleteTag(ctx context.Context, tagID string, userID string) error {
	if _, err := uuid.Parse(tagID); err != nil {
		return domain.ErrTagNotFound
	}

	tag, err := s.tagRepository.GetTagByID(ctx, tagID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrTagNotFound
		}
		return err
	}
	return s.tagRepository.DeleteTag(ctx, tag)
}

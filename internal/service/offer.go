package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jdavril/brocante/internal/common"
	"github.com/jdavril/brocante/internal/models"
)

// OfferRepository defines the persistence operations required by the
// offer service.
type OfferRepository interface {
	// Create persists a new offer.
	Create(ctx context.Context, offer *models.Offer) error
	// GetByID fetches a single offer, or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Offer, error)
	// Update overwrites the mutable fields of an existing offer.
	Update(ctx context.Context, offer *models.Offer) error
	// Search returns one page of summaries matching the filter, sorted
	// by ascending price.
	Search(ctx context.Context, filter models.OfferFilter) ([]models.OfferSummary, error)
}

// ImageStore is the external image-hosting contract: upload returns a
// stable content URL, delete removes a previously uploaded object.
type ImageStore interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, url string) error
}

// ImageFile is an inbound image payload read from a multipart request.
type ImageFile struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// PublishInput carries the fields accepted when publishing an offer.
type PublishInput struct {
	Title       string
	Description string
	Price       float64
	Details     models.ProductDetails
}

// UpdateInput carries the optional fields of a partial offer update.
// Nil fields are left untouched.
type UpdateInput struct {
	Title       *string
	Description *string
	Price       *float64
	Brand       *string
	Size        *string
	Condition   *string
	Color       *string
	City        *string
}

// OfferService implements publish, search and update of listings.
type OfferService struct {
	repo   OfferRepository
	images ImageStore
	logger *zap.Logger
}

// NewOfferService constructs an OfferService from its repository, the
// image store and a logger for best-effort failures.
func NewOfferService(repo OfferRepository, images ImageStore, logger *zap.Logger) *OfferService {
	return &OfferService{repo: repo, images: images, logger: logger}
}

// Publish uploads the picture and persists a new offer owned by the
// authenticated identity. The offer id is allocated before the upload
// so the storage folder ("offers/<id>/...") is deterministic.
//
// If persisting fails after the upload succeeded the image is not
// rolled back; the stranded object is logged and the error returned.
func (s *OfferService) Publish(ctx context.Context, owner models.Identity, in PublishInput, picture *ImageFile) (*models.Offer, error) {
	if picture == nil {
		return nil, fmt.Errorf("please add a picture: %w", common.ErrValidation)
	}

	id := uuid.NewString()

	url, err := s.images.Upload(ctx, imageKey(id, picture.Name), picture.Body, picture.ContentType)
	if err != nil {
		return nil, err
	}

	offer := &models.Offer{
		ID:                 id,
		ProductName:        in.Title,
		ProductDescription: in.Description,
		ProductPrice:       in.Price,
		ProductDetails:     in.Details,
		ProductImage:       url,
		Owner:              owner,
	}

	if err := s.repo.Create(ctx, offer); err != nil {
		s.logger.Warn("offer persist failed after image upload",
			zap.String("offer_id", id),
			zap.String("image_url", url),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	return offer, nil
}

// Search returns one page of offer summaries. A page below 1 yields an
// empty result without touching the store; a page past the data comes
// back empty from the store itself.
func (s *OfferService) Search(ctx context.Context, filter models.OfferFilter) ([]models.OfferSummary, error) {
	if filter.Page < 1 {
		return []models.OfferSummary{}, nil
	}

	summaries, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}
	if summaries == nil {
		summaries = []models.OfferSummary{}
	}
	return summaries, nil
}

// Update applies the present fields of in to the offer, replacing the
// hosted image when a new picture is supplied, and persists the result.
// Only the offer's owner may update it.
//
// Deleting the previous image is best-effort: a failure there is logged
// and never blocks the update.
func (s *OfferService) Update(ctx context.Context, offerID string, identity models.Identity, in UpdateInput, picture *ImageFile) (string, error) {
	offer, err := s.repo.GetByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", fmt.Errorf("this offer does not exist: %w", common.ErrNotFound)
		}
		return "", fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	if offer.Owner.ID != identity.ID {
		return "", fmt.Errorf("only the owner may update this offer: %w", common.ErrForbidden)
	}

	if in.Title != nil {
		offer.ProductName = *in.Title
	}
	if in.Description != nil {
		offer.ProductDescription = *in.Description
	}
	if in.Price != nil {
		offer.ProductPrice = *in.Price
	}
	if in.Brand != nil {
		offer.ProductDetails.Brand = *in.Brand
	}
	if in.Size != nil {
		offer.ProductDetails.Size = *in.Size
	}
	if in.Condition != nil {
		offer.ProductDetails.Condition = *in.Condition
	}
	if in.Color != nil {
		offer.ProductDetails.Color = *in.Color
	}
	if in.City != nil {
		offer.ProductDetails.City = *in.City
	}

	if picture != nil {
		if offer.ProductImage != "" {
			if err := s.images.Delete(ctx, offer.ProductImage); err != nil {
				s.logger.Warn("best-effort delete of previous image failed",
					zap.String("offer_id", offer.ID),
					zap.String("image_url", offer.ProductImage),
					zap.Error(err),
				)
			}
		}

		url, err := s.images.Upload(ctx, imageKey(offer.ID, picture.Name), picture.Body, picture.ContentType)
		if err != nil {
			return "", err
		}
		offer.ProductImage = url
	}

	if err := s.repo.Update(ctx, offer); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	return fmt.Sprintf("your offer %s has been updated", offer.ProductName), nil
}

// imageKey namespaces an image under the offer it belongs to.
func imageKey(offerID, filename string) string {
	name := path.Base(filename)
	if name == "" || name == "." || name == "/" {
		name = "picture"
	}
	return fmt.Sprintf("offers/%s/%s", offerID, name)
}

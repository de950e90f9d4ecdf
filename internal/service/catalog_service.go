package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/rs/zerolog"

	"giftfall/api/internal/ids"
	"giftfall/api/internal/media/sniffer"
	"giftfall/api/internal/models"
)

var (
	ErrInvalidDate  = errors.New("invalid date, expected d/m/yyyy")
	ErrInvalidImage = errors.New("invalid image upload")
)

// postedDateLayout matches the human-entered form "2/1/2006" (day/month/year,
// no zero padding required).
const postedDateLayout = "2/1/2006"

type ItemStore interface {
	Create(ctx context.Context, item models.Item) error
	GetByID(ctx context.Context, id string) (models.Item, error)
	List(ctx context.Context) ([]models.Item, error)
	ListBySeller(ctx context.Context, sellerID string) ([]models.Item, error)
	Search(ctx context.Context, term string) ([]models.Item, error)
	Update(ctx context.Context, id string, item models.Item) error
	Delete(ctx context.Context, id string) error
	InsertImage(ctx context.Context, image models.ItemImage) error
	ListImages(ctx context.Context, itemID string) ([]models.ItemImage, error)
}

type ImageStore interface {
	Put(ctx context.Context, objectKey string, contentType string, data []byte) (string, error)
}

type CatalogService struct {
	items ItemStore
	store ImageStore
	log   zerolog.Logger
}

func NewCatalogService(items ItemStore, store ImageStore, log zerolog.Logger) *CatalogService {
	return &CatalogService{
		items: items,
		store: store,
		log:   log,
	}
}

type ItemInput struct {
	SellerID    string
	Name        string
	Description string
	Price       float64
	CategoryID  *string
	Quantity    int
	PostedDate  string
	Address     string
	Status      string
}

func (in ItemInput) toModel(id string) (models.Item, error) {
	postedDate, err := time.Parse(postedDateLayout, in.PostedDate)
	if err != nil {
		return models.Item{}, fmt.Errorf("%w: %q", ErrInvalidDate, in.PostedDate)
	}

	status := in.Status
	if status == "" {
		status = models.ItemStatusAvailable
	}

	return models.Item{
		ID:          id,
		SellerID:    in.SellerID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		CategoryID:  in.CategoryID,
		Quantity:    in.Quantity,
		PostedDate:  postedDate,
		Address:     in.Address,
		Status:      status,
	}, nil
}

func (s *CatalogService) Create(ctx context.Context, input ItemInput) (models.Item, error) {
	item, err := input.toModel(ids.New())
	if err != nil {
		return models.Item{}, err
	}

	if err := s.items.Create(ctx, item); err != nil {
		return models.Item{}, err
	}
	return s.items.GetByID(ctx, item.ID)
}

func (s *CatalogService) Get(ctx context.Context, id string) (models.Item, error) {
	return s.items.GetByID(ctx, id)
}

func (s *CatalogService) List(ctx context.Context) ([]models.Item, error) {
	return s.items.List(ctx)
}

func (s *CatalogService) ListBySeller(ctx context.Context, sellerID string) ([]models.Item, error) {
	return s.items.ListBySeller(ctx, sellerID)
}

func (s *CatalogService) Search(ctx context.Context, term string) ([]models.Item, error) {
	return s.items.Search(ctx, term)
}

func (s *CatalogService) Update(ctx context.Context, id string, input ItemInput) (models.Item, error) {
	item, err := input.toModel(id)
	if err != nil {
		return models.Item{}, err
	}

	if err := s.items.Update(ctx, id, item); err != nil {
		return models.Item{}, err
	}
	return s.items.GetByID(ctx, id)
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	return s.items.Delete(ctx, id)
}

// ExchangePreview returns what a buyer needs to propose a barter: the
// counterparty's catalog alongside the item they are asking for.
type ExchangePreview struct {
	ItemsBySeller []models.Item `json:"itemsBySellerId"`
	ItemExchange  models.Item   `json:"itemExchange"`
}

func (s *CatalogService) PreviewExchange(ctx context.Context, sellerID string, itemID string) (ExchangePreview, error) {
	sellerItems, err := s.items.ListBySeller(ctx, sellerID)
	if err != nil {
		return ExchangePreview{}, err
	}
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return ExchangePreview{}, err
	}
	return ExchangePreview{
		ItemsBySeller: sellerItems,
		ItemExchange:  item,
	}, nil
}

// UploadImage stores a listing photo and appends its URL to the item's
// ordered image list. The file's leading bytes decide the content type, not
// the declared header.
func (s *CatalogService) UploadImage(ctx context.Context, itemID string, declaredMIME string, data []byte) (models.ItemImage, error) {
	if len(data) == 0 {
		return models.ItemImage{}, fmt.Errorf("%w: empty file", ErrInvalidImage)
	}

	if _, err := s.items.GetByID(ctx, itemID); err != nil {
		return models.ItemImage{}, err
	}

	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	detected, err := sniffer.DetectHead(head)
	if err != nil {
		return models.ItemImage{}, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if declaredMIME != "" && declaredMIME != detected.MIME {
		return models.ItemImage{}, fmt.Errorf("%w: declared %s, actual %s", ErrInvalidImage, declaredMIME, detected.MIME)
	}

	existing, err := s.items.ListImages(ctx, itemID)
	if err != nil {
		return models.ItemImage{}, err
	}

	imageID := ids.New()
	objectKey := path.Join(itemID, fmt.Sprintf("%s.%s", imageID, detected.Type))
	url, err := s.store.Put(ctx, objectKey, detected.MIME, data)
	if err != nil {
		return models.ItemImage{}, err
	}

	image := models.ItemImage{
		ID:       imageID,
		ItemID:   itemID,
		ImageURL: url,
		Position: len(existing),
	}
	if err := s.items.InsertImage(ctx, image); err != nil {
		return models.ItemImage{}, err
	}

	s.log.Debug().Str("item_id", itemID).Str("object_key", objectKey).Msg("item image stored")
	return image, nil
}

package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"giftfall/api/internal/models"
)

var ErrItemNotFound = errors.New("item not found")

type ItemRepository struct {
	db DB
}

func NewItemRepository(db DB) *ItemRepository {
	return &ItemRepository{db: db}
}

const itemSelect = `
	SELECT i.id, i.seller_id, i.name, i.description, i.price, i.category_id,
	       i.quantity, i.posted_date, i.address, i.status, i.created_at, i.updated_at,
	       u.name AS user_name, u.image_user, c.name AS category_name
	FROM items i
	JOIN users u ON i.seller_id = u.id
	LEFT JOIN categories c ON i.category_id = c.id
`

func scanItem(row pgx.Row) (models.Item, error) {
	var item models.Item
	if err := row.Scan(
		&item.ID,
		&item.SellerID,
		&item.Name,
		&item.Description,
		&item.Price,
		&item.CategoryID,
		&item.Quantity,
		&item.PostedDate,
		&item.Address,
		&item.Status,
		&item.CreatedAt,
		&item.UpdatedAt,
		&item.SellerName,
		&item.SellerImage,
		&item.CategoryName,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Item{}, ErrItemNotFound
		}
		return models.Item{}, err
	}
	return item, nil
}

func (r *ItemRepository) Create(ctx context.Context, item models.Item) error {
	const query = `
		INSERT INTO items (
			id, seller_id, name, description, price, category_id, quantity,
			posted_date, address, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW()
		)
	`

	_, err := r.db.Exec(ctx, query,
		item.ID,
		item.SellerID,
		item.Name,
		item.Description,
		item.Price,
		item.CategoryID,
		item.Quantity,
		item.PostedDate,
		item.Address,
		item.Status,
	)
	return translateConstraint(err)
}

func (r *ItemRepository) GetByID(ctx context.Context, id string) (models.Item, error) {
	item, err := scanItem(r.db.QueryRow(ctx, itemSelect+` WHERE i.id = $1`, id))
	if err != nil {
		return models.Item{}, err
	}
	images, err := r.ListImages(ctx, id)
	if err != nil {
		return models.Item{}, err
	}
	item.Images = imageURLs(images)
	return item, nil
}

func (r *ItemRepository) List(ctx context.Context) ([]models.Item, error) {
	return r.listWhere(ctx, "", nil)
}

func (r *ItemRepository) ListBySeller(ctx context.Context, sellerID string) ([]models.Item, error) {
	return r.listWhere(ctx, ` WHERE i.seller_id = $1`, []any{sellerID})
}

// Search matches the term as a case-insensitive substring of the item name,
// description, or category name.
func (r *ItemRepository) Search(ctx context.Context, term string) ([]models.Item, error) {
	const where = ` WHERE i.name ILIKE $1 OR i.description ILIKE $1 OR c.name ILIKE $1`
	return r.listWhere(ctx, where, []any{"%" + term + "%"})
}

func (r *ItemRepository) listWhere(ctx context.Context, where string, args []any) ([]models.Item, error) {
	rows, err := r.db.Query(ctx, itemSelect+where+` ORDER BY i.created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		item.Images = []string{}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return r.attachImages(ctx, items)
}

// attachImages fans the item_images rows out across the result set in one
// extra query instead of one per item.
func (r *ItemRepository) attachImages(ctx context.Context, items []models.Item) ([]models.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	const query = `SELECT item_id, image_url FROM item_images ORDER BY item_id, position`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byItem := make(map[string][]string)
	for rows.Next() {
		var itemID, imageURL string
		if err := rows.Scan(&itemID, &imageURL); err != nil {
			return nil, err
		}
		byItem[itemID] = append(byItem[itemID], imageURL)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range items {
		if urls, ok := byItem[items[i].ID]; ok {
			items[i].Images = urls
		}
	}
	return items, nil
}

func (r *ItemRepository) Update(ctx context.Context, id string, item models.Item) error {
	const query = `
		UPDATE items
		SET seller_id = $2, name = $3, description = $4, price = $5, category_id = $6,
		    quantity = $7, posted_date = $8, address = $9, status = $10, updated_at = NOW()
		WHERE id = $1
	`

	cmd, err := r.db.Exec(ctx, query,
		id,
		item.SellerID,
		item.Name,
		item.Description,
		item.Price,
		item.CategoryID,
		item.Quantity,
		item.PostedDate,
		item.Address,
		item.Status,
	)
	if err != nil {
		return translateConstraint(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM items WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *ItemRepository) InsertImage(ctx context.Context, image models.ItemImage) error {
	const query = `
		INSERT INTO item_images (id, item_id, image_url, position)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.Exec(ctx, query, image.ID, image.ItemID, image.ImageURL, image.Position)
	return translateConstraint(err)
}

func (r *ItemRepository) ListImages(ctx context.Context, itemID string) ([]models.ItemImage, error) {
	const query = `
		SELECT id, item_id, image_url, position
		FROM item_images
		WHERE item_id = $1
		ORDER BY position
	`
	rows, err := r.db.Query(ctx, query, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []models.ItemImage
	for rows.Next() {
		var image models.ItemImage
		if err := rows.Scan(&image.ID, &image.ItemID, &image.ImageURL, &image.Position); err != nil {
			return nil, err
		}
		images = append(images, image)
	}
	return images, rows.Err()
}

func imageURLs(images []models.ItemImage) []string {
	urls := make([]string, 0, len(images))
	for _, image := range images {
		urls = append(urls, image.ImageURL)
	}
	return urls
}

// Status reports just the status column, for lifecycle checks that do not
// need the joined read model.
func (r *ItemRepository) Status(ctx context.Context, id string) (models.ItemStatus, error) {
	const query = `SELECT status FROM items WHERE id = $1`
	var status models.ItemStatus
	if err := r.db.QueryRow(ctx, query, id).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrItemNotFound
		}
		return "", err
	}
	return status, nil
}

package supabase

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"bowl-catalog-backend/internal/models"
)

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

func (d *DatabaseClient) CreateBowl(bowl *models.Bowl) (*models.Bowl, error) {
	var created models.Bowl
	err := d.db.QueryRow(`
		INSERT INTO bowls (id, user_id, wood_type, wood_source, date_made, comments)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, wood_type, wood_source, date_made, comments, created_at, updated_at
	`, bowl.ID, bowl.UserID, bowl.WoodType, bowl.WoodSource, bowl.DateMade, bowl.Comments).Scan(
		&created.ID, &created.UserID, &created.WoodType, &created.WoodSource,
		&created.DateMade, &created.Comments, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create bowl: %w", err)
	}

	return &created, nil
}

func (d *DatabaseClient) GetBowl(bowlID, userID uuid.UUID) (*models.Bowl, error) {
	var bowl models.Bowl
	err := d.db.QueryRow(`
		SELECT id, user_id, wood_type, wood_source, date_made, comments, created_at, updated_at
		FROM bowls
		WHERE id = $1 AND user_id = $2
	`, bowlID, userID).Scan(
		&bowl.ID, &bowl.UserID, &bowl.WoodType, &bowl.WoodSource,
		&bowl.DateMade, &bowl.Comments, &bowl.CreatedAt, &bowl.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get bowl: %w", err)
	}

	return &bowl, nil
}

// ListBowls returns the user's bowls, newest first. A non-empty search term
// filters on wood type, wood source and comments.
func (d *DatabaseClient) ListBowls(userID uuid.UUID, search string) ([]models.Bowl, error) {
	query := `
		SELECT id, user_id, wood_type, wood_source, date_made, comments, created_at, updated_at
		FROM bowls
		WHERE user_id = $1
	`
	args := []interface{}{userID}
	if search != "" {
		query += ` AND (wood_type ILIKE $2 OR wood_source ILIKE $2 OR comments ILIKE $2)`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bowls: %w", err)
	}
	defer rows.Close()

	var bowls []models.Bowl
	for rows.Next() {
		var bowl models.Bowl
		err := rows.Scan(
			&bowl.ID, &bowl.UserID, &bowl.WoodType, &bowl.WoodSource,
			&bowl.DateMade, &bowl.Comments, &bowl.CreatedAt, &bowl.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bowl: %w", err)
		}
		bowls = append(bowls, bowl)
	}

	return bowls, nil
}

func (d *DatabaseClient) UpdateBowl(bowl *models.Bowl) (*models.Bowl, error) {
	var updated models.Bowl
	err := d.db.QueryRow(`
		UPDATE bowls
		SET wood_type = $1, wood_source = $2, date_made = $3, comments = $4, updated_at = NOW()
		WHERE id = $5 AND user_id = $6
		RETURNING id, user_id, wood_type, wood_source, date_made, comments, created_at, updated_at
	`, bowl.WoodType, bowl.WoodSource, bowl.DateMade, bowl.Comments, bowl.ID, bowl.UserID).Scan(
		&updated.ID, &updated.UserID, &updated.WoodType, &updated.WoodSource,
		&updated.DateMade, &updated.Comments, &updated.CreatedAt, &updated.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update bowl: %w", err)
	}

	return &updated, nil
}

func (d *DatabaseClient) DeleteBowl(bowlID, userID uuid.UUID) error {
	_, err := d.db.Exec(`
		DELETE FROM bowls
		WHERE id = $1 AND user_id = $2
	`, bowlID, userID)
	return err
}

// ReplaceFinishes rewrites a bowl's finish list wholesale. Edits always send
// the complete list, so delete-then-reinsert inside one transaction is the
// simplest way to keep (bowl, name) unique.
func (d *DatabaseClient) ReplaceFinishes(bowlID uuid.UUID, names []string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM bowl_finishes WHERE bowl_id = $1`, bowlID); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete finishes: %w", err)
	}

	for _, name := range names {
		if _, err := tx.Exec(`
			INSERT INTO bowl_finishes (id, bowl_id, name)
			VALUES ($1, $2, $3)
		`, uuid.New(), bowlID, name); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert finish %q: %w", name, err)
		}
	}

	return tx.Commit()
}

func (d *DatabaseClient) GetFinishes(bowlID uuid.UUID) ([]models.Finish, error) {
	rows, err := d.db.Query(`
		SELECT id, bowl_id, name, created_at
		FROM bowl_finishes
		WHERE bowl_id = $1
		ORDER BY created_at ASC
	`, bowlID)
	if err != nil {
		return nil, fmt.Errorf("failed to get finishes: %w", err)
	}
	defer rows.Close()

	var finishes []models.Finish
	for rows.Next() {
		var finish models.Finish
		if err := rows.Scan(&finish.ID, &finish.BowlID, &finish.Name, &finish.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan finish: %w", err)
		}
		finishes = append(finishes, finish)
	}

	return finishes, nil
}

func (d *DatabaseClient) CreateBowlImage(img *models.BowlImage) error {
	_, err := d.db.Exec(`
		INSERT INTO bowl_images (
			id, bowl_id, user_id,
			thumbnail_url, thumbnail_path, medium_url, medium_path,
			full_url, full_path, original_url, original_path,
			image_url, file_size, width, height, display_order
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`, img.ID, img.BowlID, img.UserID,
		img.ThumbnailURL, img.ThumbnailPath, img.MediumURL, img.MediumPath,
		img.FullURL, img.FullPath, img.OriginalURL, img.OriginalPath,
		img.ImageURL, img.FileSize, img.Width, img.Height, img.DisplayOrder)
	return err
}

func (d *DatabaseClient) GetBowlImages(bowlID uuid.UUID) ([]models.BowlImage, error) {
	rows, err := d.db.Query(`
		SELECT id, bowl_id, user_id,
			thumbnail_url, thumbnail_path, medium_url, medium_path,
			full_url, full_path, original_url, original_path,
			image_url, file_size, width, height, display_order, created_at
		FROM bowl_images
		WHERE bowl_id = $1
		ORDER BY display_order ASC
	`, bowlID)
	if err != nil {
		return nil, fmt.Errorf("failed to get images: %w", err)
	}
	defer rows.Close()

	var images []models.BowlImage
	for rows.Next() {
		var img models.BowlImage
		err := rows.Scan(
			&img.ID, &img.BowlID, &img.UserID,
			&img.ThumbnailURL, &img.ThumbnailPath, &img.MediumURL, &img.MediumPath,
			&img.FullURL, &img.FullPath, &img.OriginalURL, &img.OriginalPath,
			&img.ImageURL, &img.FileSize, &img.Width, &img.Height, &img.DisplayOrder, &img.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan image: %w", err)
		}
		images = append(images, img)
	}

	return images, nil
}

func (d *DatabaseClient) GetBowlImage(imageID, bowlID uuid.UUID) (*models.BowlImage, error) {
	var img models.BowlImage
	err := d.db.QueryRow(`
		SELECT id, bowl_id, user_id,
			thumbnail_url, thumbnail_path, medium_url, medium_path,
			full_url, full_path, original_url, original_path,
			image_url, file_size, width, height, display_order, created_at
		FROM bowl_images
		WHERE id = $1 AND bowl_id = $2
	`, imageID, bowlID).Scan(
		&img.ID, &img.BowlID, &img.UserID,
		&img.ThumbnailURL, &img.ThumbnailPath, &img.MediumURL, &img.MediumPath,
		&img.FullURL, &img.FullPath, &img.OriginalURL, &img.OriginalPath,
		&img.ImageURL, &img.FileSize, &img.Width, &img.Height, &img.DisplayOrder, &img.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get image: %w", err)
	}

	return &img, nil
}

func (d *DatabaseClient) CountBowlImages(bowlID uuid.UUID) (int, error) {
	var count int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM bowl_images WHERE bowl_id = $1`, bowlID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count images: %w", err)
	}
	return count, nil
}

// PrimaryImage returns the bowl's gallery thumbnail image, i.e. the one with
// the lowest display order. Returns nil when the bowl has no images.
func (d *DatabaseClient) PrimaryImage(bowlID uuid.UUID) (*models.BowlImage, error) {
	var img models.BowlImage
	err := d.db.QueryRow(`
		SELECT id, bowl_id, user_id,
			thumbnail_url, thumbnail_path, medium_url, medium_path,
			full_url, full_path, original_url, original_path,
			image_url, file_size, width, height, display_order, created_at
		FROM bowl_images
		WHERE bowl_id = $1
		ORDER BY display_order ASC
		LIMIT 1
	`, bowlID).Scan(
		&img.ID, &img.BowlID, &img.UserID,
		&img.ThumbnailURL, &img.ThumbnailPath, &img.MediumURL, &img.MediumPath,
		&img.FullURL, &img.FullPath, &img.OriginalURL, &img.OriginalPath,
		&img.ImageURL, &img.FileSize, &img.Width, &img.Height, &img.DisplayOrder, &img.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get primary image: %w", err)
	}

	return &img, nil
}

// UpdateImageOrder rewrites a single image's display order. Reordering issues
// one call per image; a mid-sequence failure leaves a partially reordered set.
func (d *DatabaseClient) UpdateImageOrder(imageID uuid.UUID, displayOrder int) error {
	_, err := d.db.Exec(`
		UPDATE bowl_images
		SET display_order = $1
		WHERE id = $2
	`, displayOrder, imageID)
	return err
}

func (d *DatabaseClient) DeleteBowlImage(imageID uuid.UUID) error {
	_, err := d.db.Exec(`
		DELETE FROM bowl_images
		WHERE id = $1
	`, imageID)
	return err
}

// ListImagePaths returns every storage path referenced by a bowl's image
// records, four per record.
func (d *DatabaseClient) ListImagePaths(bowlID uuid.UUID) ([]string, error) {
	rows, err := d.db.Query(`
		SELECT thumbnail_path, medium_path, full_path, original_path
		FROM bowl_images
		WHERE bowl_id = $1
	`, bowlID)
	if err != nil {
		return nil, fmt.Errorf("failed to list image paths: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var thumb, medium, full, original string
		if err := rows.Scan(&thumb, &medium, &full, &original); err != nil {
			return nil, fmt.Errorf("failed to scan image paths: %w", err)
		}
		paths = append(paths, thumb, medium, full, original)
	}

	return paths, nil
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}

package repos

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"cempagamez/internal/domain"
)

type SnapshotInfo struct {
	Source  string `db:"source"`
	TakenAt string `db:"taken_at"`
}

// GameRepo stores one catalog snapshot, replaced wholesale.
type GameRepo struct{ db *sqlx.DB }

func NewGameRepo(db *sqlx.DB) *GameRepo { return &GameRepo{db: db} }

// Replace swaps the stored snapshot for games, keeping their order.
func (r *GameRepo) Replace(source string, games domain.Catalog) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM games`); err != nil {
		return err
	}
	for i, g := range games {
		if _, err := tx.Exec(`
			INSERT INTO games(position,id,title,description,price,image_url,category,rating,release_date)
			VALUES(?,?,?,?,?,?,?,?,?)
		`, i, g.ID, g.Title, g.Description, g.Price, g.ImageURL, g.Category, g.Rating, g.ReleaseDate); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(`
		INSERT INTO snapshot_meta(id,source,taken_at) VALUES(1,?,?)
		ON CONFLICT(id) DO UPDATE SET source=excluded.source, taken_at=excluded.taken_at
	`, source, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *GameRepo) List() (domain.Catalog, error) {
	out := domain.Catalog{}
	err := r.db.Select(&out, `
	  SELECT id, title, description, price, image_url, category, rating, release_date
	  FROM games
	  ORDER BY position
	`)
	return out, err
}

// Info describes the stored snapshot; ok is false when none has been taken yet.
func (r *GameRepo) Info() (SnapshotInfo, bool, error) {
	var info SnapshotInfo
	err := r.db.Get(&info, `SELECT source, taken_at FROM snapshot_meta WHERE id = 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return SnapshotInfo{}, false, nil
	}
	if err != nil {
		return SnapshotInfo{}, false, err
	}
	return info, true, nil
}

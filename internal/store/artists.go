package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/cismu/gamus/internal/domain"
)

// SaveArtist upserts artist and wholesale-replaces its variations and
// sites, matching the idempotency property of a repeated import: a
// re-saved artist must not accumulate duplicate rows.
func (s *Store) SaveArtist(artist *domain.Artist) error {
	return s.Transaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO artists (id, name, bio)
			VALUES (?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name = excluded.name,
				bio = excluded.bio,
				updated_at = CURRENT_TIMESTAMP
		`, artist.ID.String(), artist.Name, artist.Bio)
		if err != nil {
			return fmt.Errorf("upserting artist %s: %w", artist.ID, err)
		}

		if _, err := tx.Exec("DELETE FROM artist_variations WHERE artist_id = ?", artist.ID.String()); err != nil {
			return fmt.Errorf("clearing artist variations: %w", err)
		}
		for _, v := range artist.Variations {
			if _, err := tx.Exec(
				"INSERT INTO artist_variations (id, artist_id, variation) VALUES (?, ?, ?)",
				uuid.NewString(), artist.ID.String(), v,
			); err != nil {
				return fmt.Errorf("inserting artist variation: %w", err)
			}
		}

		if _, err := tx.Exec("DELETE FROM artist_sites WHERE artist_id = ?", artist.ID.String()); err != nil {
			return fmt.Errorf("clearing artist sites: %w", err)
		}
		for _, url := range artist.Sites {
			if _, err := tx.Exec(
				"INSERT INTO artist_sites (id, artist_id, url) VALUES (?, ?, ?)",
				uuid.NewString(), artist.ID.String(), url,
			); err != nil {
				return fmt.Errorf("inserting artist site: %w", err)
			}
		}

		return nil
	})
}

// FindArtist looks up an artist by ID, returning (nil, nil) when absent.
func (s *Store) FindArtist(id domain.ArtistID) (*domain.Artist, error) {
	row := s.db.QueryRow("SELECT id, name, bio FROM artists WHERE id = ?", id.String())
	artist, err := scanArtist(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding artist %s: %w", id, err)
	}

	if err := s.fillArtistRelations(artist); err != nil {
		return nil, err
	}
	return artist, nil
}

// FindArtistByName looks up an artist by exact name match.
func (s *Store) FindArtistByName(name string) (*domain.Artist, error) {
	row := s.db.QueryRow("SELECT id, name, bio FROM artists WHERE name = ? LIMIT 1", name)
	artist, err := scanArtist(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding artist by name %q: %w", name, err)
	}

	if err := s.fillArtistRelations(artist); err != nil {
		return nil, err
	}
	return artist, nil
}

// ListArtists returns every artist in the catalog.
func (s *Store) ListArtists() ([]domain.Artist, error) {
	rows, err := s.db.Query("SELECT id, name, bio FROM artists ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("listing artists: %w", err)
	}
	defer rows.Close()

	var out []domain.Artist
	for rows.Next() {
		artist, err := scanArtist(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning artist row: %w", err)
		}
		if err := s.fillArtistRelations(artist); err != nil {
			return nil, err
		}
		out = append(out, *artist)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArtist(row rowScanner) (*domain.Artist, error) {
	var idStr string
	var a domain.Artist
	if err := row.Scan(&idStr, &a.Name, &a.Bio); err != nil {
		return nil, err
	}
	id, err := domain.ArtistIDFromString(idStr)
	if err != nil {
		return nil, fmt.Errorf("parsing artist id %q: %w", idStr, err)
	}
	a.ID = id
	return &a, nil
}

func (s *Store) fillArtistRelations(a *domain.Artist) error {
	variationRows, err := s.db.Query("SELECT variation FROM artist_variations WHERE artist_id = ?", a.ID.String())
	if err != nil {
		return fmt.Errorf("loading artist variations: %w", err)
	}
	defer variationRows.Close()
	for variationRows.Next() {
		var v string
		if err := variationRows.Scan(&v); err != nil {
			return err
		}
		a.Variations = append(a.Variations, v)
	}
	if err := variationRows.Err(); err != nil {
		return err
	}

	siteRows, err := s.db.Query("SELECT url FROM artist_sites WHERE artist_id = ?", a.ID.String())
	if err != nil {
		return fmt.Errorf("loading artist sites: %w", err)
	}
	defer siteRows.Close()
	for siteRows.Next() {
		var url string
		if err := siteRows.Scan(&url); err != nil {
			return err
		}
		a.Sites = append(a.Sites, url)
	}
	return siteRows.Err()
}

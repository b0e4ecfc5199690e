package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/cismu/gamus/internal/domain"
)

// SaveRelease upserts release and wholesale-replaces its types,
// genres, styles, main artists, and artworks.
func (s *Store) SaveRelease(release *domain.Release) error {
	return s.Transaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO releases (id, title, release_date)
			VALUES (?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				title = excluded.title,
				release_date = excluded.release_date,
				updated_at = CURRENT_TIMESTAMP
		`, release.ID.String(), release.Title, release.ReleaseDate)
		if err != nil {
			return fmt.Errorf("upserting release %s: %w", release.ID, err)
		}

		if err := replaceReleaseJunction(tx, "release_types", release.ID, "kind",
			mapStrings(release.ReleaseType, func(rt domain.ReleaseType) string { return rt.String() })); err != nil {
			return err
		}
		if err := replaceReleaseJunction(tx, "release_genres", release.ID, "genre",
			mapStrings(release.Genres, func(g domain.Genre) string { return g.String() })); err != nil {
			return err
		}
		if err := replaceReleaseJunction(tx, "release_styles", release.ID, "style",
			mapStrings(release.Styles, func(st domain.Style) string { return st.String() })); err != nil {
			return err
		}

		if _, err := tx.Exec("DELETE FROM release_main_artists WHERE release_id = ?", release.ID.String()); err != nil {
			return fmt.Errorf("clearing release main artists: %w", err)
		}
		for _, artistID := range release.MainArtistIDs {
			if _, err := tx.Exec(
				"INSERT INTO release_main_artists (id, release_id, artist_id) VALUES (?, ?, ?)",
				uuid.NewString(), release.ID.String(), artistID.String(),
			); err != nil {
				return fmt.Errorf("inserting release main artist: %w", err)
			}
		}

		if _, err := tx.Exec("DELETE FROM artworks WHERE release_id = ?", release.ID.String()); err != nil {
			return fmt.Errorf("clearing artworks: %w", err)
		}
		for _, art := range release.Artworks {
			if _, err := tx.Exec(
				"INSERT INTO artworks (id, release_id, path, mime_type, description, hash, credits) VALUES (?, ?, ?, ?, ?, ?, ?)",
				uuid.NewString(), release.ID.String(), art.Path, art.MimeType, art.Description, art.Hash, art.Credits,
			); err != nil {
				return fmt.Errorf("inserting artwork: %w", err)
			}
		}

		return nil
	})
}

func mapStrings[T any](items []T, f func(T) string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = f(item)
	}
	return out
}

func replaceReleaseJunction(tx *sql.Tx, table string, releaseID domain.ReleaseID, column string, values []string) error {
	if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE release_id = ?", table), releaseID.String()); err != nil {
		return fmt.Errorf("clearing %s: %w", table, err)
	}
	insertSQL := fmt.Sprintf("INSERT INTO %s (id, release_id, %s) VALUES (?, ?, ?)", table, column)
	for _, v := range values {
		if _, err := tx.Exec(insertSQL, uuid.NewString(), releaseID.String(), v); err != nil {
			return fmt.Errorf("inserting into %s: %w", table, err)
		}
	}
	return nil
}

// FindRelease looks up a release by ID, returning (nil, nil) when absent.
func (s *Store) FindRelease(id domain.ReleaseID) (*domain.Release, error) {
	row := s.db.QueryRow("SELECT id, title, release_date FROM releases WHERE id = ?", id.String())
	release, err := scanRelease(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding release %s: %w", id, err)
	}
	if err := s.fillReleaseRelations(release); err != nil {
		return nil, err
	}
	return release, nil
}

// ListReleases returns every release in the catalog.
func (s *Store) ListReleases() ([]domain.Release, error) {
	rows, err := s.db.Query("SELECT id, title, release_date FROM releases ORDER BY title")
	if err != nil {
		return nil, fmt.Errorf("listing releases: %w", err)
	}
	defer rows.Close()

	var out []domain.Release
	for rows.Next() {
		release, err := scanRelease(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning release row: %w", err)
		}
		if err := s.fillReleaseRelations(release); err != nil {
			return nil, err
		}
		out = append(out, *release)
	}
	return out, rows.Err()
}

func scanRelease(row rowScanner) (*domain.Release, error) {
	var idStr string
	var release domain.Release
	if err := row.Scan(&idStr, &release.Title, &release.ReleaseDate); err != nil {
		return nil, err
	}
	id, err := domain.ReleaseIDFromString(idStr)
	if err != nil {
		return nil, fmt.Errorf("parsing release id %q: %w", idStr, err)
	}
	release.ID = id
	return &release, nil
}

func (s *Store) fillReleaseRelations(release *domain.Release) error {
	typeRows, err := s.db.Query("SELECT kind FROM release_types WHERE release_id = ?", release.ID.String())
	if err != nil {
		return fmt.Errorf("loading release types: %w", err)
	}
	defer typeRows.Close()
	for typeRows.Next() {
		var kind string
		if err := typeRows.Scan(&kind); err != nil {
			return err
		}
		release.ReleaseType = append(release.ReleaseType, domain.ParseReleaseType(kind))
	}
	if err := typeRows.Err(); err != nil {
		return err
	}

	genreRows, err := s.db.Query("SELECT genre FROM release_genres WHERE release_id = ?", release.ID.String())
	if err != nil {
		return fmt.Errorf("loading release genres: %w", err)
	}
	defer genreRows.Close()
	for genreRows.Next() {
		var genre string
		if err := genreRows.Scan(&genre); err != nil {
			return err
		}
		if g, err := domain.ParseGenre(genre); err == nil {
			release.Genres = append(release.Genres, g)
		}
	}
	if err := genreRows.Err(); err != nil {
		return err
	}

	styleRows, err := s.db.Query("SELECT style FROM release_styles WHERE release_id = ?", release.ID.String())
	if err != nil {
		return fmt.Errorf("loading release styles: %w", err)
	}
	defer styleRows.Close()
	for styleRows.Next() {
		var style string
		if err := styleRows.Scan(&style); err != nil {
			return err
		}
		release.Styles = append(release.Styles, domain.ParseStyle(style))
	}
	if err := styleRows.Err(); err != nil {
		return err
	}

	artistRows, err := s.db.Query("SELECT artist_id FROM release_main_artists WHERE release_id = ?", release.ID.String())
	if err != nil {
		return fmt.Errorf("loading release main artists: %w", err)
	}
	defer artistRows.Close()
	for artistRows.Next() {
		var artistIDStr string
		if err := artistRows.Scan(&artistIDStr); err != nil {
			return err
		}
		artistID, err := domain.ArtistIDFromString(artistIDStr)
		if err != nil {
			return fmt.Errorf("parsing main artist id %q: %w", artistIDStr, err)
		}
		release.MainArtistIDs = append(release.MainArtistIDs, artistID)
	}
	if err := artistRows.Err(); err != nil {
		return err
	}

	artworkRows, err := s.db.Query(
		"SELECT path, mime_type, description, hash, credits FROM artworks WHERE release_id = ?", release.ID.String())
	if err != nil {
		return fmt.Errorf("loading artworks: %w", err)
	}
	defer artworkRows.Close()
	for artworkRows.Next() {
		var art domain.Artwork
		if err := artworkRows.Scan(&art.Path, &art.MimeType, &art.Description, &art.Hash, &art.Credits); err != nil {
			return err
		}
		release.Artworks = append(release.Artworks, art)
	}

	trackRows, err := s.db.Query("SELECT id FROM release_tracks WHERE release_id = ?", release.ID.String())
	if err != nil {
		return fmt.Errorf("loading release track ids: %w", err)
	}
	defer trackRows.Close()
	for trackRows.Next() {
		var trackIDStr string
		if err := trackRows.Scan(&trackIDStr); err != nil {
			return err
		}
		trackID, err := domain.ReleaseTrackIDFromString(trackIDStr)
		if err != nil {
			return fmt.Errorf("parsing release track id %q: %w", trackIDStr, err)
		}
		release.ReleaseTracks = append(release.ReleaseTracks, trackID)
	}
	return trackRows.Err()
}

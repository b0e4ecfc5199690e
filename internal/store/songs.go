package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/cismu/gamus/internal/domain"
)

var creditRoleColumns = []struct {
	role domain.ArtistRole
	ids  func(*domain.Song) []domain.ArtistID
}{
	{domain.RolePerformer, func(s *domain.Song) []domain.ArtistID { return s.PerformerIDs }},
	{domain.RoleFeatured, func(s *domain.Song) []domain.ArtistID { return s.FeaturedIDs }},
	{domain.RoleComposer, func(s *domain.Song) []domain.ArtistID { return s.ComposerIDs }},
	{domain.RoleProducer, func(s *domain.Song) []domain.ArtistID { return s.ProducerIDs }},
}

// SaveSong upserts song and wholesale-replaces its artist credits.
func (s *Store) SaveSong(song *domain.Song) error {
	return s.Transaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO songs (id, title, acoustid)
			VALUES (?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				title = excluded.title,
				acoustid = excluded.acoustid,
				updated_at = CURRENT_TIMESTAMP
		`, song.ID.String(), song.Title, song.AcoustID)
		if err != nil {
			return fmt.Errorf("upserting song %s: %w", song.ID, err)
		}

		if _, err := tx.Exec("DELETE FROM song_credits WHERE song_id = ?", song.ID.String()); err != nil {
			return fmt.Errorf("clearing song credits: %w", err)
		}
		for _, col := range creditRoleColumns {
			for _, artistID := range col.ids(song) {
				if _, err := tx.Exec(
					"INSERT INTO song_credits (id, song_id, artist_id, role) VALUES (?, ?, ?, ?)",
					uuid.NewString(), song.ID.String(), artistID.String(), col.role.String(),
				); err != nil {
					return fmt.Errorf("inserting song credit: %w", err)
				}
			}
		}

		// song_stats/song_comments are user-interaction state, never
		// populated by ingestion (a freshly probed Song always has a
		// zero-value Stats): only ensure the aggregate row exists, so a
		// later rating/comment write has a row to update, without
		// clobbering one a prior save already created.
		var avgScaled *uint32
		if song.Stats.AvgRating.IsRated() {
			scaled := song.Stats.AvgRating.Rating().Scaled()
			avgScaled = &scaled
		}
		if _, err := tx.Exec(`
			INSERT INTO song_stats (song_id, avg_rating_scaled, rating_count)
			VALUES (?, ?, ?)
			ON CONFLICT(song_id) DO NOTHING
		`, song.ID.String(), avgScaled, song.Stats.Ratings); err != nil {
			return fmt.Errorf("ensuring song stats row: %w", err)
		}

		return nil
	})
}

// AddSongComment appends a comment to song's stats, grounded on the
// original crate's song_comments table.
func (s *Store) AddSongComment(songID domain.SongID, body string) error {
	_, err := s.db.Exec(
		"INSERT INTO song_comments (id, song_id, body) VALUES (?, ?, ?)",
		uuid.NewString(), songID.String(), body,
	)
	if err != nil {
		return fmt.Errorf("adding comment to song %s: %w", songID, err)
	}
	return nil
}

// RateSong records a new rating for song and recomputes its running
// average in song_stats.
func (s *Store) RateSong(songID domain.SongID, rating domain.Rating) error {
	return s.Transaction(func(tx *sql.Tx) error {
		var avgScaled sql.NullInt64
		var count uint32
		err := tx.QueryRow(
			"SELECT avg_rating_scaled, rating_count FROM song_stats WHERE song_id = ?", songID.String(),
		).Scan(&avgScaled, &count)
		if errors.Is(err, sql.ErrNoRows) {
			avgScaled.Valid = false
			count = 0
		} else if err != nil {
			return fmt.Errorf("loading song stats for %s: %w", songID, err)
		}

		var currentTotal uint64
		if avgScaled.Valid {
			currentTotal = uint64(avgScaled.Int64) * uint64(count)
		}
		newCount := count + 1
		newAvg := uint32((currentTotal + uint64(rating.Scaled())) / uint64(newCount))

		_, err = tx.Exec(`
			INSERT INTO song_stats (song_id, avg_rating_scaled, rating_count)
			VALUES (?, ?, ?)
			ON CONFLICT(song_id) DO UPDATE SET
				avg_rating_scaled = excluded.avg_rating_scaled,
				rating_count = excluded.rating_count
		`, songID.String(), newAvg, newCount)
		if err != nil {
			return fmt.Errorf("updating song stats for %s: %w", songID, err)
		}
		return nil
	})
}

// FindSong looks up a song by ID, returning (nil, nil) when absent.
func (s *Store) FindSong(id domain.SongID) (*domain.Song, error) {
	row := s.db.QueryRow("SELECT id, title, acoustid FROM songs WHERE id = ?", id.String())
	song, err := scanSong(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding song %s: %w", id, err)
	}
	if err := s.fillSongCredits(song); err != nil {
		return nil, err
	}
	if err := s.fillSongStats(song); err != nil {
		return nil, err
	}
	return song, nil
}

// ListSongs returns every song in the catalog.
func (s *Store) ListSongs() ([]domain.Song, error) {
	rows, err := s.db.Query("SELECT id, title, acoustid FROM songs ORDER BY title")
	if err != nil {
		return nil, fmt.Errorf("listing songs: %w", err)
	}
	defer rows.Close()

	var out []domain.Song
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning song row: %w", err)
		}
		if err := s.fillSongCredits(song); err != nil {
			return nil, err
		}
		if err := s.fillSongStats(song); err != nil {
			return nil, err
		}
		out = append(out, *song)
	}
	return out, rows.Err()
}

func scanSong(row rowScanner) (*domain.Song, error) {
	var idStr string
	var song domain.Song
	if err := row.Scan(&idStr, &song.Title, &song.AcoustID); err != nil {
		return nil, err
	}
	id, err := domain.SongIDFromString(idStr)
	if err != nil {
		return nil, fmt.Errorf("parsing song id %q: %w", idStr, err)
	}
	song.ID = id
	return &song, nil
}

func (s *Store) fillSongStats(song *domain.Song) error {
	var avgScaled sql.NullInt64
	var count uint32
	err := s.db.QueryRow(
		"SELECT avg_rating_scaled, rating_count FROM song_stats WHERE song_id = ?", song.ID.String(),
	).Scan(&avgScaled, &count)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("loading song stats for %s: %w", song.ID, err)
	}
	if avgScaled.Valid {
		song.Stats.AvgRating = domain.RatedAvg(domain.RatingFromScaled(uint32(avgScaled.Int64)))
	}
	song.Stats.Ratings = count

	rows, err := s.db.Query("SELECT body FROM song_comments WHERE song_id = ? ORDER BY created_at", song.ID.String())
	if err != nil {
		return fmt.Errorf("loading song comments for %s: %w", song.ID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return err
		}
		song.Stats.Comments = append(song.Stats.Comments, body)
	}
	return rows.Err()
}

func (s *Store) fillSongCredits(song *domain.Song) error {
	rows, err := s.db.Query("SELECT artist_id, role FROM song_credits WHERE song_id = ?", song.ID.String())
	if err != nil {
		return fmt.Errorf("loading song credits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var artistIDStr, roleStr string
		if err := rows.Scan(&artistIDStr, &roleStr); err != nil {
			return err
		}
		artistID, err := domain.ArtistIDFromString(artistIDStr)
		if err != nil {
			return fmt.Errorf("parsing credited artist id %q: %w", artistIDStr, err)
		}
		role, ok := domain.ParseArtistRole(roleStr)
		if !ok {
			return fmt.Errorf("parsing credit role %q", roleStr)
		}

		switch role {
		case domain.RolePerformer:
			song.PerformerIDs = append(song.PerformerIDs, artistID)
		case domain.RoleFeatured:
			song.FeaturedIDs = append(song.FeaturedIDs, artistID)
		case domain.RoleComposer:
			song.ComposerIDs = append(song.ComposerIDs, artistID)
		case domain.RoleProducer:
			song.ProducerIDs = append(song.ProducerIDs, artistID)
		}
	}
	return rows.Err()
}

package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/cismu/gamus/internal/domain"
)

// SaveReleaseTrack upserts a release track, its artist credits, and
// its backing library file in one transaction.
func (s *Store) SaveReleaseTrack(track *domain.ReleaseTrack) error {
	return s.Transaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO release_tracks (id, release_id, song_id, disc_number, track_number, title_override)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				release_id = excluded.release_id,
				song_id = excluded.song_id,
				disc_number = excluded.disc_number,
				track_number = excluded.track_number,
				title_override = excluded.title_override,
				updated_at = CURRENT_TIMESTAMP
		`, track.ID.String(), track.ReleaseID.String(), track.SongID.String(),
			track.DiscNumber, track.TrackNumber, track.TitleOverride)
		if err != nil {
			return fmt.Errorf("upserting release track %s: %w", track.ID, err)
		}

		if _, err := tx.Exec("DELETE FROM release_track_artists WHERE release_track_id = ?", track.ID.String()); err != nil {
			return fmt.Errorf("clearing release track artists: %w", err)
		}
		for _, credit := range track.ArtistCredits {
			if _, err := tx.Exec(
				"INSERT INTO release_track_artists (id, release_track_id, artist_id, role, position) VALUES (?, ?, ?, ?, ?)",
				uuid.NewString(), track.ID.String(), credit.ArtistID.String(), credit.Role.String(), credit.Position,
			); err != nil {
				return fmt.Errorf("inserting release track artist credit: %w", err)
			}
		}

		fd := track.FileDetails
		ad := track.AudioDetails
		var qualityScore *float32
		var qualityAssessment *string
		var features []byte
		var bpm *float32
		if ad.Analysis != nil {
			bpm = ad.Analysis.BPM
			if ad.Analysis.Quality != nil {
				score := ad.Analysis.Quality.Score
				qualityScore = &score
				assessment := ad.Analysis.Quality.Assessment
				qualityAssessment = &assessment
			}
			if len(ad.Analysis.Features) > 0 {
				features = float32SliceToBytes(ad.Analysis.Features)
			}
		}

		_, err = tx.Exec(`
			INSERT INTO library_files (
				id, release_track_id, path, size_bytes, modified_unix,
				duration_ms, bitrate_kbps, sample_rate_hz, channels,
				fingerprint, bpm, quality_score, quality_assessment, features
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(path) DO UPDATE SET
				release_track_id = excluded.release_track_id,
				size_bytes = excluded.size_bytes,
				modified_unix = excluded.modified_unix,
				duration_ms = excluded.duration_ms,
				bitrate_kbps = excluded.bitrate_kbps,
				sample_rate_hz = excluded.sample_rate_hz,
				channels = excluded.channels,
				fingerprint = excluded.fingerprint,
				bpm = excluded.bpm,
				quality_score = excluded.quality_score,
				quality_assessment = excluded.quality_assessment,
				features = excluded.features,
				updated_at = CURRENT_TIMESTAMP
		`,
			uuid.NewString(), track.ID.String(), fd.Path, fd.SizeBytes, fd.ModifiedUnix,
			ad.Duration.Milliseconds(), ad.BitrateKbps, ad.SampleRateHz, ad.Channels,
			ad.Fingerprint, bpm, qualityScore, qualityAssessment, features,
		)
		if err != nil {
			return fmt.Errorf("upserting library file for track %s: %w", track.ID, err)
		}

		return nil
	})
}

// FindReleaseTrack looks up a release track by ID, returning (nil,
// nil) when absent.
func (s *Store) FindReleaseTrack(id domain.ReleaseTrackID) (*domain.ReleaseTrack, error) {
	row := s.db.QueryRow(`
		SELECT id, release_id, song_id, disc_number, track_number, title_override
		FROM release_tracks WHERE id = ?
	`, id.String())
	track, err := scanReleaseTrack(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding release track %s: %w", id, err)
	}

	if err := s.fillTrackCredits(track); err != nil {
		return nil, err
	}
	if err := s.fillTrackFileDetails(track); err != nil {
		return nil, err
	}
	return track, nil
}

func scanReleaseTrack(row rowScanner) (*domain.ReleaseTrack, error) {
	var idStr, releaseIDStr, songIDStr string
	var track domain.ReleaseTrack
	if err := row.Scan(&idStr, &releaseIDStr, &songIDStr, &track.DiscNumber, &track.TrackNumber, &track.TitleOverride); err != nil {
		return nil, err
	}

	id, err := domain.ReleaseTrackIDFromString(idStr)
	if err != nil {
		return nil, fmt.Errorf("parsing release track id %q: %w", idStr, err)
	}
	releaseID, err := domain.ReleaseIDFromString(releaseIDStr)
	if err != nil {
		return nil, fmt.Errorf("parsing release id %q: %w", releaseIDStr, err)
	}
	songID, err := domain.SongIDFromString(songIDStr)
	if err != nil {
		return nil, fmt.Errorf("parsing song id %q: %w", songIDStr, err)
	}

	track.ID = id
	track.ReleaseID = releaseID
	track.SongID = songID
	return &track, nil
}

func (s *Store) fillTrackCredits(track *domain.ReleaseTrack) error {
	rows, err := s.db.Query(
		"SELECT artist_id, role, position FROM release_track_artists WHERE release_track_id = ?", track.ID.String())
	if err != nil {
		return fmt.Errorf("loading release track artists: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var artistIDStr, roleStr string
		var position *uint32
		if err := rows.Scan(&artistIDStr, &roleStr, &position); err != nil {
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
		track.ArtistCredits = append(track.ArtistCredits, domain.ReleaseTrackArtistCredit{
			ReleaseTrackID: track.ID,
			ArtistID:       artistID,
			Role:           role,
			Position:       position,
		})
	}
	return rows.Err()
}

func (s *Store) fillTrackFileDetails(track *domain.ReleaseTrack) error {
	var durationMs int64
	var bitrateKbps, sampleRateHz *uint32
	var channels *uint8
	var fingerprint *string
	var bpm *float32
	var qualityScore *float32
	var qualityAssessment *string
	var features []byte

	err := s.db.QueryRow(`
		SELECT path, size_bytes, modified_unix, duration_ms, bitrate_kbps,
		       sample_rate_hz, channels, fingerprint, bpm, quality_score,
		       quality_assessment, features
		FROM library_files WHERE release_track_id = ?
	`, track.ID.String()).Scan(
		&track.FileDetails.Path, &track.FileDetails.SizeBytes, &track.FileDetails.ModifiedUnix,
		&durationMs, &bitrateKbps, &sampleRateHz, &channels, &fingerprint, &bpm,
		&qualityScore, &qualityAssessment, &features,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading library file for track %s: %w", track.ID, err)
	}

	track.AudioDetails.Duration = durationMsToDuration(durationMs)
	track.AudioDetails.BitrateKbps = bitrateKbps
	track.AudioDetails.SampleRateHz = sampleRateHz
	track.AudioDetails.Channels = channels
	track.AudioDetails.Fingerprint = fingerprint

	if bpm != nil || qualityScore != nil || len(features) > 0 {
		analysis := &domain.AudioAnalysis{BPM: bpm}
		if qualityScore != nil {
			assessment := ""
			if qualityAssessment != nil {
				assessment = *qualityAssessment
			}
			analysis.Quality = &domain.AudioQuality{Score: *qualityScore, Assessment: assessment}
		}
		if len(features) > 0 {
			analysis.Features = bytesToFloat32Slice(features)
		}
		track.AudioDetails.Analysis = analysis
	}

	return nil
}

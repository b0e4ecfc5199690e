package store

// schemaV1 is the initial catalog schema, carrying over the table
// shape of the original Diesel schema (artists, releases, songs,
// release_tracks, library_files and their junction tables) plus the
// song-credit and rating tables the original crate left unimplemented.
const schemaV1 = `
CREATE TABLE IF NOT EXISTS schema_version (
  version INTEGER PRIMARY KEY,
  applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS artists (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  bio TEXT,
  created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_artists_name ON artists(name);

CREATE TABLE IF NOT EXISTS artist_variations (
  id TEXT PRIMARY KEY,
  artist_id TEXT NOT NULL REFERENCES artists(id) ON DELETE CASCADE,
  variation TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_artist_variations_artist_id ON artist_variations(artist_id);

CREATE TABLE IF NOT EXISTS artist_sites (
  id TEXT PRIMARY KEY,
  artist_id TEXT NOT NULL REFERENCES artists(id) ON DELETE CASCADE,
  url TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_artist_sites_artist_id ON artist_sites(artist_id);

CREATE TABLE IF NOT EXISTS songs (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  acoustid TEXT,
  created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_songs_title ON songs(title);

-- Song artist credits, one row per (song, artist, role); role mirrors
-- domain.ArtistRole (performer/featured/composer/producer).
CREATE TABLE IF NOT EXISTS song_credits (
  id TEXT PRIMARY KEY,
  song_id TEXT NOT NULL REFERENCES songs(id) ON DELETE CASCADE,
  artist_id TEXT NOT NULL REFERENCES artists(id) ON DELETE CASCADE,
  role TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_song_credits_song_id ON song_credits(song_id);
CREATE INDEX IF NOT EXISTS idx_song_credits_artist_id ON song_credits(artist_id);

-- Aggregate rating, updated as individual ratings arrive (domain.AvgRating/SongStats).
CREATE TABLE IF NOT EXISTS song_stats (
  song_id TEXT PRIMARY KEY REFERENCES songs(id) ON DELETE CASCADE,
  avg_rating_scaled INTEGER,
  rating_count INTEGER NOT NULL DEFAULT 0
);

-- Free-text comments attached to a song (domain.SongStats.Comments).
CREATE TABLE IF NOT EXISTS song_comments (
  id TEXT PRIMARY KEY,
  song_id TEXT NOT NULL REFERENCES songs(id) ON DELETE CASCADE,
  body TEXT NOT NULL,
  created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_song_comments_song_id ON song_comments(song_id);

CREATE TABLE IF NOT EXISTS releases (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  release_date TEXT,
  country TEXT,
  notes TEXT,
  created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_releases_title ON releases(title);

CREATE TABLE IF NOT EXISTS release_types (
  id TEXT PRIMARY KEY,
  release_id TEXT NOT NULL REFERENCES releases(id) ON DELETE CASCADE,
  kind TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_release_types_release_id ON release_types(release_id);

CREATE TABLE IF NOT EXISTS release_genres (
  id TEXT PRIMARY KEY,
  release_id TEXT NOT NULL REFERENCES releases(id) ON DELETE CASCADE,
  genre TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_release_genres_release_id ON release_genres(release_id);

CREATE TABLE IF NOT EXISTS release_styles (
  id TEXT PRIMARY KEY,
  release_id TEXT NOT NULL REFERENCES releases(id) ON DELETE CASCADE,
  style TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_release_styles_release_id ON release_styles(release_id);

CREATE TABLE IF NOT EXISTS release_main_artists (
  id TEXT PRIMARY KEY,
  release_id TEXT NOT NULL REFERENCES releases(id) ON DELETE CASCADE,
  artist_id TEXT NOT NULL REFERENCES artists(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_release_main_artists_release_id ON release_main_artists(release_id);
CREATE INDEX IF NOT EXISTS idx_release_main_artists_artist_id ON release_main_artists(artist_id);

CREATE TABLE IF NOT EXISTS artworks (
  id TEXT PRIMARY KEY,
  release_id TEXT NOT NULL REFERENCES releases(id) ON DELETE CASCADE,
  path TEXT NOT NULL,
  mime_type TEXT NOT NULL,
  description TEXT,
  hash TEXT,
  credits TEXT
);

CREATE INDEX IF NOT EXISTS idx_artworks_release_id ON artworks(release_id);

CREATE TABLE IF NOT EXISTS release_tracks (
  id TEXT PRIMARY KEY,
  release_id TEXT NOT NULL REFERENCES releases(id) ON DELETE CASCADE,
  song_id TEXT NOT NULL REFERENCES songs(id) ON DELETE CASCADE,
  disc_number INTEGER NOT NULL DEFAULT 0,
  track_number INTEGER NOT NULL DEFAULT 0,
  title_override TEXT,
  created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_release_tracks_release_id ON release_tracks(release_id);
CREATE INDEX IF NOT EXISTS idx_release_tracks_song_id ON release_tracks(song_id);

CREATE TABLE IF NOT EXISTS release_track_artists (
  id TEXT PRIMARY KEY,
  release_track_id TEXT NOT NULL REFERENCES release_tracks(id) ON DELETE CASCADE,
  artist_id TEXT NOT NULL REFERENCES artists(id) ON DELETE CASCADE,
  role TEXT NOT NULL,
  position INTEGER
);

CREATE INDEX IF NOT EXISTS idx_release_track_artists_track_id ON release_track_artists(release_track_id);

-- One row per file on disk backing a release track (1:1 today, kept
-- as its own table so a future re-scan can attach an alternate file).
CREATE TABLE IF NOT EXISTS library_files (
  id TEXT PRIMARY KEY,
  release_track_id TEXT NOT NULL REFERENCES release_tracks(id) ON DELETE CASCADE,
  path TEXT NOT NULL,
  size_bytes INTEGER,
  modified_unix INTEGER,
  duration_ms INTEGER,
  bitrate_kbps INTEGER,
  sample_rate_hz INTEGER,
  channels INTEGER,
  fingerprint TEXT,
  bpm REAL,
  quality_score REAL,
  quality_assessment TEXT,
  features BLOB,
  added_at DATETIME DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_library_files_path ON library_files(path);
CREATE INDEX IF NOT EXISTS idx_library_files_track_id ON library_files(release_track_id);
`

package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"showlink/internal/config"
	"showlink/internal/indexers"
	"showlink/internal/logging"
)

// ErrLocked indicates another process holds the library database lock.
var ErrLocked = errors.New("library database is locked by another process")

// Store manages library persistence backed by SQLite.
type Store struct {
	db     *sql.DB
	path   string
	lock   *flock.Flock
	logger *slog.Logger
}

// Open initializes or connects to the library database and applies migrations.
// The store holds a file lock for its lifetime so concurrent CLI invocations
// cannot interleave mapping writes. A nil logger disables store logging.
func Open(cfg *config.Config, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.DatabasePath()
	lock := flock.New(dbPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire library lock: %w", err)
	}
	if !locked {
		return nil, ErrLocked
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: lock, logger: logging.NewComponentLogger(logger, "library")}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection and releases the lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var err error
	if s.db != nil {
		err = s.db.Close()
	}
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); unlockErr != nil && err == nil {
			err = unlockErr
		}
	}
	return err
}

// AddShow inserts a show into the library.
func (s *Store) AddShow(ctx context.Context, show *Show) (*Show, error) {
	if show == nil {
		return nil, errors.New("show is nil")
	}
	if !indexers.Known(show.Indexer) {
		return nil, fmt.Errorf("unknown indexer %d", int(show.Indexer))
	}
	if strings.TrimSpace(show.SeriesID) == "" {
		return nil, errors.New("series id must not be empty")
	}

	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)

	var externalsJSON any
	if len(show.Externals) > 0 {
		data, err := json.Marshal(show.Externals.Clone())
		if err != nil {
			return nil, fmt.Errorf("marshal externals: %w", err)
		}
		externalsJSON = string(data)
	}

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO shows (indexer, series_id, title, externals_json, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		int(show.Indexer),
		strings.TrimSpace(show.SeriesID),
		strings.TrimSpace(show.Title),
		externalsJSON,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert show: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(ctx, id)
}

// UpdateShow persists changes to an existing show.
func (s *Store) UpdateShow(ctx context.Context, show *Show) error {
	if show == nil {
		return errors.New("show is nil")
	}
	show.UpdatedAt = time.Now().UTC()

	var externalsJSON any
	if len(show.Externals) > 0 {
		data, err := json.Marshal(show.Externals.Clone())
		if err != nil {
			return fmt.Errorf("marshal externals: %w", err)
		}
		externalsJSON = string(data)
	}

	_, err := s.db.ExecContext(
		ctx,
		`UPDATE shows SET indexer = ?, series_id = ?, title = ?, externals_json = ?, updated_at = ?
         WHERE id = ?`,
		int(show.Indexer),
		show.SeriesID,
		show.Title,
		externalsJSON,
		show.UpdatedAt.Format(time.RFC3339Nano),
		show.ID,
	)
	if err != nil {
		return fmt.Errorf("update show: %w", err)
	}
	return nil
}

// GetByID fetches a show by database identifier.
func (s *Store) GetByID(ctx context.Context, id int64) (*Show, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+showColumns+` FROM shows WHERE id = ?`, id)
	show, err := scanShow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get show: %w", err)
	}
	return show, nil
}

// GetShow fetches a show by its indexer and series ID.
func (s *Store) GetShow(ctx context.Context, ix indexers.Indexer, seriesID string) (*Show, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+showColumns+` FROM shows WHERE indexer = ? AND series_id = ?`,
		int(ix),
		strings.TrimSpace(seriesID),
	)
	show, err := scanShow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get show: %w", err)
	}
	return show, nil
}

// ListShows returns every show in the library ordered by creation time.
func (s *Store) ListShows(ctx context.Context) ([]*Show, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+showColumns+` FROM shows ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list shows: %w", err)
	}
	defer rows.Close()

	var shows []*Show
	for rows.Next() {
		show, err := scanShow(rows)
		if err != nil {
			return nil, err
		}
		shows = append(shows, show)
	}
	return shows, rows.Err()
}

// RemoveShow deletes a show by database identifier.
func (s *Store) RemoveShow(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM shows WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete show: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// SaveExternals persists external IDs for a show into the mapping table.
// Externals whose key does not reverse-map to a known indexer, whose value is
// empty, or that point back at the source indexer are skipped.
func (s *Store) SaveExternals(ctx context.Context, source indexers.Indexer, seriesID string, externals indexers.Externals) error {
	seriesID = strings.TrimSpace(seriesID)
	if seriesID == "" {
		return errors.New("series id must not be empty")
	}

	type row struct {
		mappedID string
		mapped   indexers.Indexer
	}
	var rows []row
	for key, value := range externals {
		mapped, ok := indexers.ForKey(key)
		if !ok || strings.TrimSpace(value) == "" || mapped == source {
			continue
		}
		rows = append(rows, row{mappedID: strings.TrimSpace(value), mapped: mapped})
	}
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin mapping tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, r := range rows {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT OR IGNORE INTO indexer_mapping (indexer_id, indexer, mindexer_id, mindexer)
             VALUES (?, ?, ?, ?)`,
			seriesID,
			int(source),
			r.mappedID,
			int(r.mapped),
		); err != nil {
			return fmt.Errorf("insert mapping: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit mappings: %w", err)
	}
	return nil
}

// LoadExternals rebuilds the external ID set for a show from the mapping
// table, matching either side of each stored pair. Rows referencing indexer
// codes this build does not know are skipped.
func (s *Store) LoadExternals(ctx context.Context, ix indexers.Indexer, seriesID string) (indexers.Externals, error) {
	externals := indexers.Externals{}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT indexer, indexer_id, mindexer, mindexer_id
         FROM indexer_mapping
         WHERE (indexer = ? AND indexer_id = ?) OR (mindexer = ? AND mindexer_id = ?)`,
		int(ix),
		strings.TrimSpace(seriesID),
		int(ix),
		strings.TrimSpace(seriesID),
	)
	if err != nil {
		return nil, fmt.Errorf("load externals: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m Mapping
		var indexerCode, mappedCode int
		if err := rows.Scan(&indexerCode, &m.SeriesID, &mappedCode, &m.MappedSeriesID); err != nil {
			return nil, fmt.Errorf("scan mapping: %w", err)
		}
		m.Indexer = indexers.Indexer(indexerCode)
		m.MappedIndexer = indexers.Indexer(mappedCode)

		if m.Indexer == ix {
			if key := m.MappedIndexer.MappedTo(); key != "" {
				externals[key] = m.MappedSeriesID
			} else {
				s.logger.WarnContext(ctx, "indexer code not supported in current mappings, skipping row",
					logging.Int("code", int(m.MappedIndexer)))
			}
		} else {
			if key := m.Indexer.MappedTo(); key != "" {
				externals[key] = m.SeriesID
			} else {
				s.logger.WarnContext(ctx, "indexer code not supported in current mappings, skipping row",
					logging.Int("code", int(m.Indexer)))
			}
		}
	}
	return externals, rows.Err()
}

// Mappings returns the raw join-table rows for a show, both directions.
func (s *Store) Mappings(ctx context.Context, ix indexers.Indexer, seriesID string) ([]Mapping, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT indexer, indexer_id, mindexer, mindexer_id
         FROM indexer_mapping
         WHERE (indexer = ? AND indexer_id = ?) OR (mindexer = ? AND mindexer_id = ?)
         ORDER BY indexer, mindexer`,
		int(ix),
		strings.TrimSpace(seriesID),
		int(ix),
		strings.TrimSpace(seriesID),
	)
	if err != nil {
		return nil, fmt.Errorf("list mappings: %w", err)
	}
	defer rows.Close()

	var mappings []Mapping
	for rows.Next() {
		var m Mapping
		var indexerCode, mappedCode int
		if err := rows.Scan(&indexerCode, &m.SeriesID, &mappedCode, &m.MappedSeriesID); err != nil {
			return nil, fmt.Errorf("scan mapping: %w", err)
		}
		m.Indexer = indexers.Indexer(indexerCode)
		m.MappedIndexer = indexers.Indexer(mappedCode)
		mappings = append(mappings, m)
	}
	return mappings, rows.Err()
}

// Health aggregates library contents for diagnostic output.
func (s *Store) Health(ctx context.Context) (HealthSummary, error) {
	var health HealthSummary
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM shows`).Scan(&health.Shows); err != nil {
		return health, fmt.Errorf("count shows: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM indexer_mapping`).Scan(&health.Mappings); err != nil {
		return health, fmt.Errorf("count mappings: %w", err)
	}
	return health, nil
}

// CheckHealth returns diagnostic information about the library database.
func (s *Store) CheckHealth(ctx context.Context) (DatabaseHealth, error) {
	health := DatabaseHealth{DBPath: s.path}

	if s.path == "" {
		return health, errors.New("library database path is unknown")
	}

	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			health.DatabaseExists = false
			return health, nil
		}
		return health, fmt.Errorf("stat library database: %w", err)
	}
	if info.IsDir() {
		return health, fmt.Errorf("library database path %q is a directory", s.path)
	}
	health.DatabaseExists = true

	if s.db == nil {
		return health, errors.New("library database connection unavailable")
	}

	connCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(connCtx); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("ping library database: %w", err)
	}
	health.DatabaseReadable = true

	expected := []string{"shows", "indexer_mapping"}
	for _, table := range expected {
		var name string
		row := s.db.QueryRowContext(connCtx, "SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table)
		if err := row.Scan(&name); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				health.MissingTables = append(health.MissingTables, table)
				continue
			}
			health.Error = err.Error()
			return health, fmt.Errorf("query table info: %w", err)
		}
		health.TablesPresent = append(health.TablesPresent, name)
	}

	row := s.db.QueryRowContext(connCtx, "PRAGMA integrity_check")
	var integrityResult string
	if err := row.Scan(&integrityResult); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("integrity check: %w", err)
	}
	health.IntegrityCheck = strings.EqualFold(integrityResult, "ok")

	return health, nil
}

const showColumns = "id, indexer, series_id, title, externals_json, created_at, updated_at"

func scanShow(scanner interface{ Scan(dest ...any) error }) (*Show, error) {
	var (
		id         int64
		indexer    int
		seriesID   string
		title      sql.NullString
		externals  sql.NullString
		createdRaw sql.NullString
		updatedRaw sql.NullString
	)

	if err := scanner.Scan(&id, &indexer, &seriesID, &title, &externals, &createdRaw, &updatedRaw); err != nil {
		return nil, err
	}

	show := &Show{
		ID:        id,
		Indexer:   indexers.Indexer(indexer),
		SeriesID:  seriesID,
		Title:     title.String,
		Externals: indexers.Externals{},
	}
	if externals.Valid && externals.String != "" {
		if err := json.Unmarshal([]byte(externals.String), &show.Externals); err != nil {
			return nil, fmt.Errorf("decode externals for show %d: %w", id, err)
		}
	}

	if created, err := parseTimeString(createdRaw.String); err == nil {
		show.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		show.UpdatedAt = updated
	}
	return show, nil
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

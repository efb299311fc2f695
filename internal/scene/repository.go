package scene

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Repository defines the interface for scene persistence.
// This abstraction allows different implementations (SQLite, memory)
// and enables unit testing without database dependencies.
type Repository interface {
	Save(ctx context.Context, scene *Scene) error
	GetByID(ctx context.Context, id string) (*Scene, error)
	List(ctx context.Context) ([]Scene, error)
	Delete(ctx context.Context, id string) error
}

// =============================================================================
// Memory
// =============================================================================

// MemoryRepository keeps scenes in a map. Used by tests and rigs that
// do not need looks to survive a restart.
type MemoryRepository struct {
	mu     sync.RWMutex
	scenes map[string]*Scene
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{scenes: make(map[string]*Scene)}
}

func (r *MemoryRepository) Save(_ context.Context, scene *Scene) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scenes[scene.ID] = scene.DeepCopy()
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*Scene, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.scenes[id]
	if !ok {
		return nil, ErrSceneNotFound
	}
	return s.DeepCopy(), nil
}

func (r *MemoryRepository) List(_ context.Context) ([]Scene, error) {
	r.mu.RLock()
	out := make([]Scene, 0, len(r.scenes))
	for _, s := range r.scenes {
		out = append(out, *s.DeepCopy())
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.scenes[id]; !ok {
		return ErrSceneNotFound
	}
	delete(r.scenes, id)
	return nil
}

// =============================================================================
// SQLite
// =============================================================================

// SQLiteRepository implements Repository using SQLite.
// Channel data is stored as a JSON document; scenes are read whole and
// never queried by channel, so a normalized table buys nothing.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates the repository and ensures its schema.
func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	schema := `
		CREATE TABLE IF NOT EXISTS scenes (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			created_at TEXT NOT NULL,
			data       TEXT NOT NULL
		)`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("creating scenes table: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, scene *Scene) error {
	data, err := json.Marshal(scene.Universes)
	if err != nil {
		return fmt.Errorf("marshalling scene data: %w", err)
	}

	query := `
		INSERT INTO scenes (id, name, created_at, data)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, data = excluded.data`

	_, err = r.db.ExecContext(ctx, query,
		scene.ID,
		scene.Name,
		scene.CreatedAt.UTC().Format(time.RFC3339Nano),
		string(data),
	)
	if err != nil {
		return fmt.Errorf("saving scene: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*Scene, error) {
	query := `SELECT id, name, created_at, data FROM scenes WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, id)
	s, err := scanScene(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSceneNotFound
		}
		return nil, fmt.Errorf("querying scene by id: %w", err)
	}
	return s, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]Scene, error) {
	query := `SELECT id, name, created_at, data FROM scenes ORDER BY name, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing scenes: %w", err)
	}
	defer rows.Close()

	var out []Scene
	for rows.Next() {
		s, err := scanScene(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning scene: %w", err)
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating scenes: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM scenes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting scene: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting scene: %w", err)
	}
	if n == 0 {
		return ErrSceneNotFound
	}
	return nil
}

// scanner abstracts *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanScene(row scanner) (*Scene, error) {
	var s Scene
	var createdAt, data string

	if err := row.Scan(&s.ID, &s.Name, &createdAt, &data); err != nil {
		return nil, err
	}

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	s.CreatedAt = ts

	if err := json.Unmarshal([]byte(data), &s.Universes); err != nil {
		return nil, fmt.Errorf("unmarshalling scene data: %w", err)
	}
	return &s, nil
}

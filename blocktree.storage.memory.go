package blocktree

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryStorage is an in-memory ExpressionStorage for tests and tools.
// All data is lost when the process terminates.
type MemoryStorage struct {
	mu          sync.RWMutex
	expressions map[string][]*StoredExpression // name -> versions, newest first
	closed      bool
}

// MemoryStorageDriver is the driver for creating MemoryStorage instances.
type MemoryStorageDriver struct{}

func init() {
	RegisterStorageDriver(StorageDriverNameMemory, &MemoryStorageDriver{})
}

// Open creates a new MemoryStorage. The connection string is ignored.
func (d *MemoryStorageDriver) Open(connectionString string) (ExpressionStorage, error) {
	return NewMemoryStorage(), nil
}

// NewMemoryStorage creates a new in-memory expression storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		expressions: make(map[string][]*StoredExpression),
	}
}

// Get retrieves the latest version of an expression by name.
func (s *MemoryStorage) Get(ctx context.Context, name string) (*StoredExpression, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	versions := s.expressions[name]
	if len(versions) == 0 {
		return nil, NewExpressionNotFoundError(name)
	}
	return copyStoredExpression(versions[0]), nil
}

// GetVersion retrieves a specific version of an expression.
func (s *MemoryStorage) GetVersion(ctx context.Context, name string, version int) (*StoredExpression, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	for _, expr := range s.expressions[name] {
		if expr.Version == version {
			return copyStoredExpression(expr), nil
		}
	}
	return nil, NewVersionNotFoundError(name, version)
}

// Save stores an expression as a new version.
func (s *MemoryStorage) Save(ctx context.Context, expr *StoredExpression) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateExpression(expr); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	now := time.Now().UTC()
	versions := s.expressions[expr.Name]

	nextVersion := 1
	if len(versions) > 0 {
		nextVersion = versions[0].Version + 1
	}

	stored := copyStoredExpression(expr)
	stored.ID = generateExpressionID()
	stored.Version = nextVersion
	stored.CreatedAt = now
	stored.UpdatedAt = now

	expr.ID = stored.ID
	expr.Version = stored.Version
	expr.CreatedAt = stored.CreatedAt
	expr.UpdatedAt = stored.UpdatedAt

	s.expressions[expr.Name] = append([]*StoredExpression{stored}, versions...)
	return nil
}

// Delete removes all versions of an expression.
func (s *MemoryStorage) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	if _, ok := s.expressions[name]; !ok {
		return NewExpressionNotFoundError(name)
	}
	delete(s.expressions, name)
	return nil
}

// List returns expressions matching the query.
func (s *MemoryStorage) List(ctx context.Context, query *ExpressionQuery) ([]*StoredExpression, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	names := make([]string, 0, len(s.expressions))
	for name := range s.expressions {
		if query != nil && query.NamePrefix != "" && !strings.HasPrefix(name, query.NamePrefix) {
			continue
		}
		if query != nil && query.NameContains != "" && !strings.Contains(name, query.NameContains) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]*StoredExpression, 0, len(names))
	for _, name := range names {
		versions := s.expressions[name]
		if query == nil || !query.IncludeAllVersions {
			versions = versions[:1]
		}
		for _, expr := range versions {
			results = append(results, copyStoredExpression(expr))
		}
	}

	return paginate(results, query), nil
}

// Exists checks if an expression with the given name exists.
func (s *MemoryStorage) Exists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false, NewStorageClosedError()
	}

	return len(s.expressions[name]) > 0, nil
}

// ListVersions returns all version numbers of an expression, newest first.
func (s *MemoryStorage) ListVersions(ctx context.Context, name string) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	versions := s.expressions[name]
	out := make([]int, 0, len(versions))
	for _, expr := range versions {
		out = append(out, expr.Version)
	}
	return out, nil
}

// Close marks the storage as closed and drops its data.
func (s *MemoryStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.expressions = nil
	return nil
}

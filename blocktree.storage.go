package blocktree

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"sort"
	"strconv"
	"sync"
	"time"
)

// ExpressionID is a unique identifier for a stored expression version.
// Uses a prefixed random format (e.g., "expr_6ByTSYmGzT2cQ1Rk").
type ExpressionID string

// StoredExpression is an expression source kept together with the tag
// configuration it is parsed with.
type StoredExpression struct {
	// ID is the unique identifier for this version.
	ID ExpressionID `json:"id"`

	// Name is the expression name used for lookups.
	Name string `json:"name"`

	// Source is the raw expression text.
	Source string `json:"source"`

	// Tags is the tag configuration the source is parsed with.
	Tags TagConfigFile `json:"tags"`

	// Version is the version number (1, 2, 3, ...). Higher versions are newer.
	Version int `json:"version"`

	// Metadata contains arbitrary user-defined key-value pairs.
	Metadata map[string]string `json:"metadata,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Tokenizer creates a CharTokenizer for the expression's tag configuration
func (e *StoredExpression) Tokenizer(opts ...Option) (*CharTokenizer, error) {
	cfg, err := e.Tags.TagConfig()
	if err != nil {
		return nil, err
	}
	return NewCharTokenizer(cfg, opts...), nil
}

// Build validates and parses the expression source into a tree
func (e *StoredExpression) Build(opts ...Option) (*Block, error) {
	tokenizer, err := e.Tokenizer(opts...)
	if err != nil {
		return nil, err
	}
	return Build(e.Source, tokenizer, opts...)
}

// ExpressionQuery defines filters for listing expressions.
type ExpressionQuery struct {
	// NamePrefix filters to names starting with this prefix.
	NamePrefix string

	// NameContains filters to names containing this substring.
	NameContains string

	// Limit is the maximum number of results (0 = no limit).
	Limit int

	// Offset is the number of results to skip.
	Offset int

	// IncludeAllVersions includes all versions, not just latest.
	IncludeAllVersions bool
}

// ExpressionStorage is the interface for pluggable storage backends.
// Implementations must be safe for concurrent use.
type ExpressionStorage interface {
	// Get retrieves the latest version of an expression by name.
	Get(ctx context.Context, name string) (*StoredExpression, error)

	// GetVersion retrieves a specific version of an expression.
	GetVersion(ctx context.Context, name string, version int) (*StoredExpression, error)

	// Save stores an expression as a new version. ID, Version, CreatedAt and
	// UpdatedAt are set by the storage. The tag configuration must be valid.
	Save(ctx context.Context, expr *StoredExpression) error

	// Delete removes all versions of an expression.
	Delete(ctx context.Context, name string) error

	// List returns expressions matching the query, ordered by name and then
	// by version (descending).
	List(ctx context.Context, query *ExpressionQuery) ([]*StoredExpression, error)

	// Exists checks if an expression with the given name exists.
	Exists(ctx context.Context, name string) (bool, error)

	// ListVersions returns all version numbers of an expression, newest first.
	ListVersions(ctx context.Context, name string) ([]int, error)

	// Close releases any resources held by the storage.
	Close() error
}

// StorageDriver is a factory for creating storage instances.
// Drivers register themselves during init().
type StorageDriver interface {
	// Open creates a new storage instance. The connection string format is
	// driver-specific.
	Open(connectionString string) (ExpressionStorage, error)
}

// Storage driver registry
var (
	storageDriversMu sync.RWMutex
	storageDrivers   = make(map[string]StorageDriver)
)

// RegisterStorageDriver registers a storage driver by name.
// Panics if the driver is nil or the name is already registered.
func RegisterStorageDriver(name string, driver StorageDriver) {
	storageDriversMu.Lock()
	defer storageDriversMu.Unlock()

	if driver == nil {
		panic(ErrMsgNilStorageDriver)
	}
	if _, exists := storageDrivers[name]; exists {
		panic(ErrMsgDriverAlreadyRegistered + ": " + name)
	}
	storageDrivers[name] = driver
}

// OpenStorage opens a storage connection using the named driver.
//
//	storage, err := blocktree.OpenStorage("memory", "")
//	storage, err := blocktree.OpenStorage("postgres", "postgres://localhost/exprs?sslmode=disable")
func OpenStorage(driverName, connectionString string) (ExpressionStorage, error) {
	storageDriversMu.RLock()
	driver, ok := storageDrivers[driverName]
	storageDriversMu.RUnlock()

	if !ok {
		return nil, NewStorageDriverNotFoundError(driverName)
	}

	return driver.Open(connectionString)
}

// ListStorageDrivers returns the sorted names of all registered drivers.
func ListStorageDrivers() []string {
	storageDriversMu.RLock()
	defer storageDriversMu.RUnlock()

	names := make([]string, 0, len(storageDrivers))
	for name := range storageDrivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Storage error message constants
const (
	ErrMsgNilStorageDriver         = "storage driver is nil"
	ErrMsgDriverAlreadyRegistered  = "storage driver already registered"
	ErrMsgStorageDriverNotFound    = "storage driver not found"
	ErrMsgStorageClosed            = "storage is closed"
	ErrMsgExpressionNotFound       = "expression not found"
	ErrMsgVersionNotFound          = "expression version not found"
	ErrMsgInvalidExpressionName    = "expression name cannot be empty"
	ErrMsgPostgresEmptyConnString  = "postgres connection string is empty"
	ErrMsgPostgresConnectionFailed = "postgres connection failed"
	ErrMsgPostgresQueryFailed      = "postgres query failed"
	ErrMsgPostgresMigrationFailed  = "postgres migration failed"
	ErrMsgPostgresMarshalFailed    = "postgres metadata encoding failed"
)

// ErrExpressionNotFound is the cause of every not-found StorageError
var ErrExpressionNotFound = errors.New(ErrMsgExpressionNotFound)

// StorageError represents a storage-related error.
type StorageError struct {
	Message string
	Name    string
	Version int
	Cause   error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	if e.Name != "" && e.Version > 0 {
		return e.Message + ": " + e.Name + " v" + strconv.Itoa(e.Version)
	}
	if e.Name != "" {
		return e.Message + ": " + e.Name
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageDriverNotFoundError creates an error for a missing storage driver.
func NewStorageDriverNotFoundError(name string) error {
	return &StorageError{
		Message: ErrMsgStorageDriverNotFound,
		Name:    name,
	}
}

// NewExpressionNotFoundError creates an error for an unknown expression name.
func NewExpressionNotFoundError(name string) error {
	return &StorageError{
		Message: ErrMsgExpressionNotFound,
		Name:    name,
		Cause:   ErrExpressionNotFound,
	}
}

// NewVersionNotFoundError creates an error for an unknown expression version.
func NewVersionNotFoundError(name string, version int) error {
	return &StorageError{
		Message: ErrMsgVersionNotFound,
		Name:    name,
		Version: version,
		Cause:   ErrExpressionNotFound,
	}
}

// NewStorageClosedError creates an error for operations on closed storage.
func NewStorageClosedError() error {
	return &StorageError{
		Message: ErrMsgStorageClosed,
	}
}

// validateExpression checks what every backend requires before saving
func validateExpression(expr *StoredExpression) error {
	if expr.Name == "" {
		return &StorageError{Message: ErrMsgInvalidExpressionName}
	}
	if _, err := expr.Tags.TagConfig(); err != nil {
		return err
	}
	return nil
}

func generateExpressionID() ExpressionID {
	b := make([]byte, ExpressionIDBytes)
	_, _ = rand.Read(b)
	return ExpressionID(ExpressionIDPrefix + base64.RawURLEncoding.EncodeToString(b))
}

func copyStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyStoredExpression(expr *StoredExpression) *StoredExpression {
	if expr == nil {
		return nil
	}
	out := *expr
	out.Metadata = copyStringMap(expr.Metadata)
	return &out
}

// paginate applies offset and limit to an already ordered result set
func paginate(results []*StoredExpression, query *ExpressionQuery) []*StoredExpression {
	if query == nil {
		return results
	}
	if query.Offset > 0 {
		if query.Offset >= len(results) {
			return []*StoredExpression{}
		}
		results = results[query.Offset:]
	}
	if query.Limit > 0 && query.Limit < len(results) {
		results = results[:query.Limit]
	}
	return results
}

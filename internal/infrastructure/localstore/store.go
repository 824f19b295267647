// Package localstore is the durable local cache backing the state store:
// a best-effort mirror of persisted state slices, written after every
// transition and read back once at startup. It is a key/value table in a
// SQLite file; a missing or unparseable value falls back to a built-in
// default so hydration can never fail.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tazamart/backend/internal/domain/catalog"
	"github.com/tazamart/backend/internal/domain/order"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// Cache keys. These strings are part of the on-disk contract and must
// stay stable across app versions or user data is lost.
const (
	KeyProducts     = "tazamart_products"
	KeyOrders       = "tazamart_orders"
	KeyRemoteOrders = "tazamart_remote_orders"
	KeyFavorites    = "tazamart_favorites"
	KeyProfile      = "tazamart_profile"
	KeyLanguage     = "tazamart_language"
	KeyTheme        = "tazamart_theme"
)

// Default preference values used when nothing is cached
const (
	DefaultLanguage = "en"
	DefaultTheme    = "light"
)

type record struct {
	Key       string `gorm:"primaryKey;type:varchar(64)"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (record) TableName() string {
	return "app_cache"
}

// Store is the GORM-backed cache implementation
type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

// Open opens (creating if necessary) the SQLite cache at path
func Open(path string, gormLog gormlogger.Interface, log *zap.Logger) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:                 gormLog,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open local cache: %w", err)
	}
	if err := db.AutoMigrate(&record{}); err != nil {
		return nil, fmt.Errorf("failed to migrate local cache: %w", err)
	}
	return New(db, log), nil
}

// New wraps an existing GORM connection
func New(db *gorm.DB, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{db: db, log: log.Named("localstore")}
}

// Close closes the underlying database connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// SaveProducts mirrors the product catalog
func (s *Store) SaveProducts(products []catalog.Product) error {
	return s.put(KeyProducts, products)
}

// SaveOrders mirrors the customer's local order history
func (s *Store) SaveOrders(orders []order.Order) error {
	return s.put(KeyOrders, orders)
}

// SaveRemoteOrders mirrors the admin-visible order list
func (s *Store) SaveRemoteOrders(orders []order.Order) error {
	return s.put(KeyRemoteOrders, orders)
}

// SaveFavorites mirrors the favorite product ids
func (s *Store) SaveFavorites(ids []int64) error {
	return s.put(KeyFavorites, ids)
}

// SaveProfile mirrors the user profile
func (s *Store) SaveProfile(profile order.Customer) error {
	return s.put(KeyProfile, profile)
}

// SavePreferences mirrors the language and theme preferences
func (s *Store) SavePreferences(language, theme string) error {
	if err := s.put(KeyLanguage, language); err != nil {
		return err
	}
	return s.put(KeyTheme, theme)
}

// LoadProducts reads the cached catalog, falling back to the bundled
// sample catalog when the cache is empty or unreadable.
func (s *Store) LoadProducts() []catalog.Product {
	var products []catalog.Product
	if !s.get(KeyProducts, &products) || len(products) == 0 {
		return catalog.DefaultProducts()
	}
	return products
}

// LoadOrders reads the cached local order history. Order dates come back
// as real time values from their serialized form.
func (s *Store) LoadOrders() []order.Order {
	var orders []order.Order
	s.get(KeyOrders, &orders)
	return orders
}

// LoadRemoteOrders reads the cached admin-visible order list
func (s *Store) LoadRemoteOrders() []order.Order {
	var orders []order.Order
	s.get(KeyRemoteOrders, &orders)
	return orders
}

// LoadFavorites reads the cached favorite set
func (s *Store) LoadFavorites() map[int64]bool {
	var ids []int64
	s.get(KeyFavorites, &ids)
	favorites := make(map[int64]bool, len(ids))
	for _, id := range ids {
		favorites[id] = true
	}
	return favorites
}

// LoadProfile reads the cached user profile
func (s *Store) LoadProfile() order.Customer {
	var profile order.Customer
	s.get(KeyProfile, &profile)
	return profile
}

// LoadPreferences reads the cached language and theme, applying defaults
// for anything missing.
func (s *Store) LoadPreferences() (language, theme string) {
	language, theme = DefaultLanguage, DefaultTheme
	var v string
	if s.get(KeyLanguage, &v) && v != "" {
		language = v
	}
	v = ""
	if s.get(KeyTheme, &v) && v != "" {
		theme = v
	}
	return language, theme
}

// put serializes the value under the key, upserting the row
func (s *Store) put(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", key, err)
	}
	row := record{Key: key, Value: string(data), UpdatedAt: time.Now()}
	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// get reads and deserializes the value under the key. It reports whether
// a usable value was found; read and parse failures are logged, never
// propagated, so callers fall back to defaults.
func (s *Store) get(key string, out any) bool {
	var row record
	if err := s.db.First(&row, "key = ?", key).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Warn("failed to read cache key", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal([]byte(row.Value), out); err != nil {
		s.log.Warn("discarding unparseable cache value", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

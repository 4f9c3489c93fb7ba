package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"keymirror/internal/domain"
	"keymirror/internal/logging"
	"keymirror/internal/ports"
)

// HistoryDBName is the database file inside KEYMIRROR_HOME
const HistoryDBName = "history.db"

// recordBatchSize bounds the rows per INSERT statement
const recordBatchSize = 200

// SQLiteRepository implements ports.RunRepository using GORM
type SQLiteRepository struct {
	db *gorm.DB
}

// Verify interface compliance at compile time
var _ ports.RunRepository = (*SQLiteRepository)(nil)

// gormLogger wraps the keymirror logger for GORM
type gormLogger struct {
	level logger.LogLevel
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{level: level}
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Info {
		logging.Logger.Info(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Warn {
		logging.Logger.Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Error {
		logging.Logger.Error(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level < logger.Info {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logging.Logger.Error("gorm query error",
			"error", err,
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	} else if elapsed > 200*time.Millisecond {
		logging.Logger.Warn("slow query",
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	} else {
		logging.Logger.Debug("gorm query",
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	}
}

func newGormLogger() logger.Interface {
	if os.Getenv("KEYMIRROR_DEBUG") == "1" {
		return (&gormLogger{}).LogMode(logger.Info)
	}
	return (&gormLogger{}).LogMode(logger.Silent)
}

// NewSQLiteRepository opens (and creates if needed) the history database
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if len(dbPath) > 0 && dbPath[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(homeDir, dbPath[1:])
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		PrepareStmt: false,
		NowFunc:     func() time.Time { return time.Now().UTC() },
		Logger:      newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	db.Exec("PRAGMA synchronous=NORMAL")

	if err := db.AutoMigrate(&RunModel{}, &RunRecordModel{}); err != nil {
		if !strings.Contains(err.Error(), "already exists") {
			return nil, fmt.Errorf("failed to migrate history schema: %w", err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(4)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(0)

	return &SQLiteRepository{db: db}, nil
}

// NewSQLiteRepositoryForPath opens the history database inside a KEYMIRROR_HOME directory
func NewSQLiteRepositoryForPath(homePath string) (*SQLiteRepository, error) {
	return NewSQLiteRepository(filepath.Join(homePath, HistoryDBName))
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Get implements RunReader.Get
func (r *SQLiteRepository) Get(ctx context.Context, id string) (*domain.Run, error) {
	var run RunModel
	var records []RunRecordModel

	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("id = ?", id).First(&run).Error; err != nil {
				return err
			}
			return tx.Where("run_id = ?", id).Order("position").Find(&records).Error
		})
	}, 3)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrRunNotFound, id)
		}
		return nil, err
	}

	result := runModelToDomain(run)
	result.Records = make([]domain.Record, 0, len(records))
	for _, m := range records {
		record, err := recordModelToDomain(m)
		if err != nil {
			return nil, err
		}
		result.Records = append(result.Records, record)
	}

	return &result, nil
}

// List implements RunReader.List. Runs come back newest first, without records.
func (r *SQLiteRepository) List(ctx context.Context, limit int) ([]domain.Run, error) {
	var runs []RunModel

	err := withRetry(func() error {
		query := r.db.WithContext(ctx).Order("started_at DESC").Order("id")
		if limit > 0 {
			query = query.Limit(limit)
		}
		return query.Find(&runs).Error
	}, 3)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Run, 0, len(runs))
	for _, m := range runs {
		result = append(result, runModelToDomain(m))
	}
	return result, nil
}

// Add implements RunWriter.Add
func (r *SQLiteRepository) Add(ctx context.Context, run domain.Run) error {
	if run.ID == "" {
		return errors.New("run ID is required")
	}

	records := make([]RunRecordModel, 0, len(run.Records))
	for i, rec := range run.Records {
		model, err := domainToRecordModel(run.ID, i, rec)
		if err != nil {
			return err
		}
		records = append(records, model)
	}

	return withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			model := domainToRunModel(run)
			if err := tx.Create(&model).Error; err != nil {
				return fmt.Errorf("failed to create run: %w", err)
			}
			if len(records) == 0 {
				return nil
			}
			// Copy so a retried transaction does not see IDs from a rolled back insert
			batch := make([]RunRecordModel, len(records))
			copy(batch, records)
			if err := tx.CreateInBatches(&batch, recordBatchSize).Error; err != nil {
				return fmt.Errorf("failed to create run records: %w", err)
			}
			return nil
		})
	}, 3)
}

// Delete implements RunWriter.Delete
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	return withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("run_id = ?", id).Delete(&RunRecordModel{}).Error; err != nil {
				return err
			}
			result := tx.Where("id = ?", id).Delete(&RunModel{})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("%w: %s", domain.ErrRunNotFound, id)
			}
			return nil
		})
	}, 3)
}

// Prune implements RunWriter.Prune
func (r *SQLiteRepository) Prune(ctx context.Context, keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}

	var removed int
	err := withRetry(func() error {
		removed = 0
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var ids []string
			if err := tx.Model(&RunModel{}).Order("started_at DESC").Order("id").Pluck("id", &ids).Error; err != nil {
				return err
			}
			if len(ids) <= keep {
				return nil
			}

			stale := ids[keep:]
			if err := tx.Where("run_id IN ?", stale).Delete(&RunRecordModel{}).Error; err != nil {
				return err
			}
			result := tx.Where("id IN ?", stale).Delete(&RunModel{})
			if result.Error != nil {
				return result.Error
			}
			removed = int(result.RowsAffected)
			return nil
		})
	}, 3)

	return removed, err
}

// withRetry retries operations on SQLITE_BUSY with exponential backoff
func withRetry(fn func() error, maxRetries int) error {
	for i := 0; i < maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}

		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
			time.Sleep(time.Millisecond * time.Duration(50*(i+1)))
			continue
		}

		return err
	}
	return fmt.Errorf("operation failed after %d retries", maxRetries)
}

// Package store 持久化处理记录：一行对应一次抠图请求，
// 记录原图与结果文件的相对路径，供结果页与图库查询。
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/ksuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS processed_images (
	id TEXT PRIMARY KEY,
	original_path TEXT NOT NULL,
	processed_path TEXT NOT NULL DEFAULT '',
	method TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_processed_images_created ON processed_images(created_at);
`

var ErrNotFound = errors.New("record not found")

// Image 一条处理记录。路径是相对 media 目录的相对路径
type Image struct {
	ID            string
	OriginalPath  string
	ProcessedPath string
	Method        string
	CreatedAt     time.Time
}

type Store struct {
	db *sql.DB
}

// Open 打开（或创建）sqlite 数据库并建表
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// NewID 生成记录 id，同时用作媒体文件名前缀
func NewID() string {
	return ksuid.New().String()
}

// Insert 写入一条完整记录。CreatedAt 为零值时取当前时间
func (s *Store) Insert(rec *Image) error {
	if rec.ID == "" {
		return fmt.Errorf("insert record: empty id")
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO processed_images (id, original_path, processed_path, method, created_at) VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.OriginalPath, rec.ProcessedPath, rec.Method, rec.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

func (s *Store) Get(id string) (*Image, error) {
	row := s.db.QueryRow(
		`SELECT id, original_path, processed_path, method, created_at FROM processed_images WHERE id = ?`, id)
	return scanImage(row)
}

// Recent 最近处理完成的记录（有结果文件的）
func (s *Store) Recent(limit int) ([]*Image, error) {
	return s.query(
		`SELECT id, original_path, processed_path, method, created_at FROM processed_images
		 WHERE processed_path != '' ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
}

// All 全部处理完成的记录，图库用
func (s *Store) All() ([]*Image, error) {
	return s.query(
		`SELECT id, original_path, processed_path, method, created_at FROM processed_images
		 WHERE processed_path != '' ORDER BY created_at DESC, id DESC`)
}

// DeleteOlderThan 删除早于 cutoff 的记录，返回被删记录供调用方清理文件
func (s *Store) DeleteOlderThan(cutoff time.Time) ([]*Image, error) {
	old, err := s.query(
		`SELECT id, original_path, processed_path, method, created_at FROM processed_images
		 WHERE created_at < ?`, cutoff.Unix())
	if err != nil {
		return nil, err
	}
	if len(old) == 0 {
		return nil, nil
	}
	if _, err := s.db.Exec(`DELETE FROM processed_images WHERE created_at < ?`, cutoff.Unix()); err != nil {
		return nil, fmt.Errorf("delete records: %w", err)
	}
	return old, nil
}

func (s *Store) query(q string, args ...interface{}) ([]*Image, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var out []*Image
	for rows.Next() {
		rec, err := scanImage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanImage(row scanner) (*Image, error) {
	var rec Image
	var createdAt int64
	err := row.Scan(&rec.ID, &rec.OriginalPath, &rec.ProcessedPath, &rec.Method, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan record: %w", err)
	}
	rec.CreatedAt = time.Unix(createdAt, 0)
	return &rec, nil
}

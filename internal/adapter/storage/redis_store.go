package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

const catalogRowsKey = "catalog:rows"

// RedisStore keeps the catalog snapshot as a Redis list, one CSV-encoded
// row per element, in export order.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Load(ctx context.Context) ([][]string, error) {
	vals, err := r.client.LRange(ctx, catalogRowsKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("load catalog rows: %w", err)
	}

	rows := make([][]string, 0, len(vals))
	for _, v := range vals {
		row, err := decodeRow(v)
		if err != nil {
			return nil, fmt.Errorf("decode catalog row %q: %w", v, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Save replaces the stored list atomically.
func (r *RedisStore) Save(ctx context.Context, rows [][]string) error {
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, catalogRowsKey)
	for _, row := range rows {
		enc, err := encodeRow(row)
		if err != nil {
			return fmt.Errorf("encode catalog row: %w", err)
		}
		pipe.RPush(ctx, catalogRowsKey, enc)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save catalog rows: %w", err)
	}
	return nil
}

func encodeRow(row []string) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write(row); err != nil {
		return "", err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

func decodeRow(s string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(s))
	r.FieldsPerRecord = -1
	return r.Read()
}

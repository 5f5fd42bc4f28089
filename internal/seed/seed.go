// Package seed загружает начальные данные каталога из YAML.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"

	"cafes/internal/model"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// File представляет файл с начальными данными
type File struct {
	Cafes []model.Cafe `yaml:"cafes"`
}

// Result содержит итоги импорта
type Result struct {
	Created int
	Skipped int
}

// LoadFile читает кафе из YAML файла
func LoadFile(path string) ([]model.Cafe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse разбирает кафе из YAML
func Parse(data []byte) ([]model.Cafe, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return file.Cafes, nil
}

// Apply сохраняет кафе; существующие имена пропускаются
func Apply(ctx context.Context, repo model.CafeRepository, cafes []model.Cafe, logger *zap.Logger) (Result, error) {
	var result Result

	for i := range cafes {
		cafe := cafes[i]
		cafe.ID = 0

		err := repo.Create(ctx, &cafe)
		switch {
		case err == nil:
			result.Created++
		case errors.Is(err, model.ErrDuplicateName):
			result.Skipped++
			logger.Debug("Cafe already exists, skipping", zap.String("name", cafe.Name))
		default:
			return result, fmt.Errorf("failed to seed cafe %q: %w", cafe.Name, err)
		}
	}

	logger.Info("Seed applied",
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped))

	return result, nil
}

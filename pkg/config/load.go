// Package config предоставляет загрузку конфигурации из .env файла и переменных окружения.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"taskflow/pkg/logger"
)

const (
	msgLoadingConfiguration    = "loading configuration"
	msgConfigurationLoaded     = "configuration loaded successfully"
	msgEnvFileMissing          = "env file not found, reading process environment"
	msgFailedLoadConfiguration = "failed to load configuration"

	errFailedLoadConfiguration = "failed to load configuration"

	attrService = "service"
	attrPath    = "path"
)

// Load заполняет структуру T по тегам cleanenv.
// Если envPath указывает на существующий файл, значения читаются из него
// (переменные окружения при этом имеют приоритет), иначе только из окружения.
func Load[T any](ctx context.Context, serviceName, envPath string) (*T, error) {
	log := logger.Log(ctx).With(zap.String(attrService, serviceName))

	log.Info(ctx, msgLoadingConfiguration, zap.String(attrPath, envPath))

	var cfg T
	var err error

	if envPath != "" && fileExists(envPath) {
		err = cleanenv.ReadConfig(envPath, &cfg)
	} else {
		log.Debug(ctx, msgEnvFileMissing, zap.String(attrPath, envPath))
		err = cleanenv.ReadEnv(&cfg)
	}

	if err != nil {
		log.Error(ctx, msgFailedLoadConfiguration, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFailedLoadConfiguration, err)
	}

	log.Info(ctx, msgConfigurationLoaded)

	return &cfg, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return !errors.Is(err, os.ErrNotExist)
	}
	return !info.IsDir()
}

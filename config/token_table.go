package config

import (
	"fmt"
	"os"
	"strconv"
)

type TokenTableConfig struct {
	TableName  string
	TtlMinutes int
}

func GetTokenTableConfig() (*TokenTableConfig, error) {
	tableName := os.Getenv("TOKEN_TABLE_NAME")
	if tableName == "" {
		return nil, fmt.Errorf("TOKEN_TABLE_NAME must be set")
	}

	ttlMinutes := 60
	if raw := os.Getenv("TOKEN_TTL_MINUTES"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("TOKEN_TTL_MINUTES must be an integer: %w", err)
		}
		ttlMinutes = parsed
	}

	return &TokenTableConfig{
		TableName:  tableName,
		TtlMinutes: ttlMinutes,
	}, nil
}

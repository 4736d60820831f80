// Package config loads runtime configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	DatabasePath string
	JWTSecret    string

	RPCURL          string
	ContractAddress string
	PrivateKey      string
	ChainID         int64
	GasLimit        uint64
	LedgerTimeout   time.Duration

	SubmitMode string

	AMQPURL    string
	CORSOrigin string
}

// Load reads the environment. A missing .env file is not an error;
// missing required variables are.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:            envOr("PORT", "8080"),
		DatabasePath:    envOr("DATABASE_PATH", "voting.db"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		RPCURL:          envOr("CHAIN_RPC_URL", "http://127.0.0.1:8545"),
		ContractAddress: os.Getenv("CHAIN_CONTRACT_ADDRESS"),
		PrivateKey:      os.Getenv("CHAIN_PRIVATE_KEY"),
		SubmitMode:      envOr("CHAIN_SUBMIT_MODE", "backend"),
		AMQPURL:         os.Getenv("AMQP_URL"),
		CORSOrigin:      envOr("CORS_ORIGIN", "http://localhost:5173"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.ContractAddress == "" {
		return nil, fmt.Errorf("CHAIN_CONTRACT_ADDRESS is required")
	}
	if cfg.PrivateKey == "" {
		return nil, fmt.Errorf("CHAIN_PRIVATE_KEY is required")
	}

	chainID, err := strconv.ParseInt(envOr("CHAIN_ID", "31337"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid CHAIN_ID: %w", err)
	}
	cfg.ChainID = chainID

	gasLimit, err := strconv.ParseUint(envOr("CHAIN_GAS_LIMIT", "900000"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid CHAIN_GAS_LIMIT: %w", err)
	}
	cfg.GasLimit = gasLimit

	timeout, err := time.ParseDuration(envOr("CHAIN_CALL_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid CHAIN_CALL_TIMEOUT: %w", err)
	}
	cfg.LedgerTimeout = timeout

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Sources are applied in order, later ones winning:

 1. .env in the working directory, if present (godotenv)
 2. a YAML file from -config or CONFIG_PATH, otherwise the environment
    alone (cleanenv, with defaults from struct tags)
 3. command-line flags

# Config Fields

  - Env: local, dev or prod; selects the log handler (default: local)
  - Port: Server listen port (default: 3318)
  - DatabaseURL: connection string (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - JWTSecret: token signing secret (required)
  - JWTExpiration: token lifetime (default: 168h)
  - MaxPageSize: largest accepted page size (default: 50)
  - HTTPTimeout, HTTPIdleTimeout: server timeouts (default: 4s, 60s)

# CLI Flags

	-config     Config file path
	-env        Environment
	-p          Server port
	-d          Database URL
	-t          Database type
	-jwt-secret JWT signing secret

# Environment Variables

	ENV, PORT, DATABASE_URL, DATABASE_TYPE, JWT_SECRET, JWT_EXPIRATION,
	MAX_PAGE_SIZE, HTTP_TIMEOUT, HTTP_IDLE_TIMEOUT, CONFIG_PATH

# Validation

ParseFlags returns an error if:

  - DATABASE_URL is missing
  - DATABASE_TYPE is not sqlite or postgres
  - JWT_SECRET is missing
  - MAX_PAGE_SIZE is not positive
*/
package cliparse

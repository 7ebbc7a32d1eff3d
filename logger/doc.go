// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package logger builds the process-wide slog.Logger.

	log := logger.Setup(cfg.Env, os.Stdout)
	slog.SetDefault(log)

Environments:

  - local: debug level; colored PrettyHandler on a terminal, text otherwise
  - dev: debug level, JSON
  - prod (and anything else): info level, JSON

Errors are attached with logger.Err so every handler renders them the same way:

	slog.Error("failed to insert vote", logger.Err(err), "poll_id", id)
*/
package logger

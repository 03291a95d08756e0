// Copyright (c) 2015-present Mattermost, Inc. All Rights Reserved.
// See License.txt for license information.

package server

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mattermost/mattermost-server/v6/shared/mlog"
)

const logFilename = "canonical-issues.log"

// SetupLogging replaces the global logger with one writing to the targets
// enabled in the config.
func SetupLogging(config *Config) error {
	logger, err := mlog.NewLogger()
	if err != nil {
		return fmt.Errorf("unable to create logger: %w", err)
	}

	cfg, err := loggerConfiguration(config.LogSettings)
	if err != nil {
		return err
	}

	if err = logger.ConfigureTargets(cfg, nil); err != nil {
		return fmt.Errorf("unable to configure log targets: %w", err)
	}

	mlog.InitGlobalLogger(logger)
	return nil
}

func loggerConfiguration(settings LogSettings) (mlog.LoggerConfiguration, error) {
	cfg := make(mlog.LoggerConfiguration)

	if settings.EnableConsole {
		levels, err := levelsFrom(settings.ConsoleLevel)
		if err != nil {
			return nil, err
		}
		cfg["console"] = mlog.TargetCfg{
			Type:    "console",
			Format:  formatName(settings.ConsoleJSON),
			Levels:  levels,
			Options: json.RawMessage(`{"out":"stdout"}`),
		}
	}

	if settings.EnableFile {
		levels, err := levelsFrom(settings.FileLevel)
		if err != nil {
			return nil, err
		}
		options, err := json.Marshal(map[string]interface{}{
			"filename": filepath.Join(settings.FileLocation, logFilename),
			"max_size": 100,
			"compress": true,
		})
		if err != nil {
			return nil, err
		}
		cfg["file"] = mlog.TargetCfg{
			Type:    "file",
			Format:  formatName(settings.FileJSON),
			Levels:  levels,
			Options: options,
		}
	}

	return cfg, nil
}

func formatName(asJSON bool) string {
	if asJSON {
		return "json"
	}
	return "plain"
}

// levelsFrom returns the given level and every level more severe than it.
func levelsFrom(name string) ([]mlog.Level, error) {
	ordered := []mlog.Level{mlog.LvlPanic, mlog.LvlFatal, mlog.LvlError, mlog.LvlWarn, mlog.LvlInfo, mlog.LvlDebug}

	switch strings.ToLower(name) {
	case "error":
		return ordered[:3], nil
	case "warn":
		return ordered[:4], nil
	case "", "info":
		return ordered[:5], nil
	case "debug":
		return ordered, nil
	default:
		return nil, fmt.Errorf("unknown log level %q", name)
	}
}

// Copyright (c) 2015-present Mattermost, Inc. All Rights Reserved.
// See License.txt for license information.

package server

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	defaultInitialiseSchedule = "@every 6h"
	defaultMetricsServerPort  = "9000"
	defaultListenAddress      = ":8086"
	defaultRequestsPerSecond  = 10
	defaultRequestsBurst      = 10
	defaultCacheSizeMB        = 64
	defaultCacheMaxAgeSeconds = 3600
)

type Repository struct {
	Owner string
	Name  string
}

type LogSettings struct {
	EnableConsole bool
	ConsoleJSON   bool
	ConsoleLevel  string
	EnableFile    bool
	FileJSON      bool
	FileLevel     string
	FileLocation  string
}

type Config struct {
	ListenAddress     string
	MetricsServerPort string

	// GitHub App credentials. When GitHubAppID is zero the service runs with
	// GithubAccessToken against the configured Repositories only.
	GitHubAppID             int64
	GitHubAppPrivateKeyPath string
	GithubAccessToken       string
	Repositories            []*Repository

	GitHubTokenReserve       int
	GitHubRequestsPerSecond  float64
	GitHubRequestsBurst      int
	GitHubCacheSizeMB        int64
	GitHubCacheMaxAgeSeconds int64

	DriverName string
	DataSource string

	InitialiseSchedule string
	InitialiseOnStart  bool

	// ForceRefreshRepository has its cache dropped before every sync so the
	// live fetch path is always exercised.
	ForceRefreshRepository *Repository

	WelcomeMessage string

	// EnableWriteBack persists newly assigned canonical IDs to the store and
	// the tracker. Without it assignments are only computed and logged.
	EnableWriteBack bool

	// MaxCanonicalGaps bounds the gap scan of the allocator. Keep it in the
	// order of the number of issues; zero means one gap per unnumbered issue.
	MaxCanonicalGaps int

	MattermostWebhookURL    string
	MattermostWebhookFooter string

	LogSettings LogSettings
}

func FindConfigFile(fileName string) string {
	if _, err := os.Stat("/tmp/" + fileName); err == nil {
		fileName, _ = filepath.Abs("/tmp/" + fileName)
	} else if _, err := os.Stat("./config/" + fileName); err == nil {
		fileName, _ = filepath.Abs("./config/" + fileName)
	} else if _, err := os.Stat("../config/" + fileName); err == nil {
		fileName, _ = filepath.Abs("../config/" + fileName)
	} else if _, err := os.Stat(fileName); err == nil {
		fileName, _ = filepath.Abs(fileName)
	}

	return fileName
}

// GetConfig loads the JSON config file, looking it up the way FindConfigFile
// does, and fills in defaults.
func GetConfig(fileName string) (*Config, error) {
	fileName = FindConfigFile(fileName)

	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("unable to open config file %s: %w", fileName, err)
	}
	defer file.Close()

	config := &Config{}
	if err = json.NewDecoder(file).Decode(config); err != nil {
		return nil, fmt.Errorf("unable to decode config file %s: %w", fileName, err)
	}

	config.setDefaults()
	if err = config.IsValid(); err != nil {
		return nil, err
	}
	return config, nil
}

func (config *Config) setDefaults() {
	if config.ListenAddress == "" {
		config.ListenAddress = defaultListenAddress
	}
	if config.MetricsServerPort == "" {
		config.MetricsServerPort = defaultMetricsServerPort
	}
	if config.InitialiseSchedule == "" {
		config.InitialiseSchedule = defaultInitialiseSchedule
	}
	if config.GitHubRequestsPerSecond <= 0 {
		config.GitHubRequestsPerSecond = defaultRequestsPerSecond
	}
	if config.GitHubRequestsBurst <= 0 {
		config.GitHubRequestsBurst = defaultRequestsBurst
	}
	if config.GitHubCacheSizeMB <= 0 {
		config.GitHubCacheSizeMB = defaultCacheSizeMB
	}
	if config.GitHubCacheMaxAgeSeconds <= 0 {
		config.GitHubCacheMaxAgeSeconds = defaultCacheMaxAgeSeconds
	}
}

// IsValid checks that enough credentials are present to reach GitHub.
func (config *Config) IsValid() error {
	if config.GitHubAppID != 0 {
		if config.GitHubAppPrivateKeyPath == "" {
			return fmt.Errorf("GitHubAppPrivateKeyPath is required when GitHubAppID is set")
		}
		return nil
	}

	if config.GithubAccessToken == "" {
		return fmt.Errorf("either GitHubAppID or GithubAccessToken must be set")
	}
	if len(config.Repositories) == 0 {
		return fmt.Errorf("Repositories must be set when running with GithubAccessToken")
	}
	return nil
}

func (config *Config) isForceRefreshRepository(owner, name string) bool {
	repo := config.ForceRefreshRepository
	return repo != nil && repo.Owner == owner && repo.Name == name
}

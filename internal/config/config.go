package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Data struct {
		Folder   string `yaml:"folder"`
		Ontology string `yaml:"ontology"` // go.obo or go.json
	} `yaml:"data"`
	MyGene struct {
		BaseURL        string `yaml:"base_url"`
		BatchSize      int    `yaml:"batch_size"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"mygene"`
}

func Default() *Config {
	var cfg Config
	cfg.Data.Folder = "./data"
	cfg.Data.Ontology = "go.json"
	cfg.MyGene.BaseURL = "https://mygene.info/v3"
	cfg.MyGene.BatchSize = 1000
	cfg.MyGene.TimeoutSeconds = 60
	return &cfg
}

func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()

	// 2. Load YAML config; a missing file means defaults only
	file, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	// 3. Override with Environment Variables if present
	if folder := os.Getenv("GOANNOT_DATA_FOLDER"); folder != "" {
		cfg.Data.Folder = folder
	}
	if ontology := os.Getenv("GOANNOT_ONTOLOGY"); ontology != "" {
		cfg.Data.Ontology = ontology
	}
	if baseURL := os.Getenv("GOANNOT_MYGENE_URL"); baseURL != "" {
		cfg.MyGene.BaseURL = baseURL
	}
	if batch := os.Getenv("GOANNOT_MYGENE_BATCH"); batch != "" {
		if n, err := strconv.Atoi(batch); err == nil && n > 0 {
			cfg.MyGene.BatchSize = n
		}
	}

	return cfg, nil
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"goannot/internal/config"
	"goannot/internal/docs"
	"goannot/internal/ontology"
	"goannot/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "goannot",
		Short: "Gene Ontology annotation pipeline",
	}
	configPath string
	dataFolder string
	outputPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to the configuration file")

	runCmd.Flags().StringVarP(&dataFolder, "data", "d", "", "Data folder (overrides config)")
	runCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write documents to this file instead of stdout")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(ontologyCmd)
}

func loadConfig() *config.Config {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if dataFolder != "" {
		cfg.Data.Folder = dataFolder
	}
	return cfg
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Parse the data folder and emit one JSON document per GO term per line",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		out := os.Stdout
		if outputPath != "" {
			f, err := os.Create(outputPath)
			if err != nil {
				log.Fatalf("Failed to create output file: %v", err)
			}
			defer f.Close()
			out = f
		}

		enc := json.NewEncoder(out)
		start := time.Now()
		count := 0

		p := pipeline.New(cfg)
		err := p.Run(context.Background(), func(doc docs.Record) error {
			count++
			return enc.Encode(doc)
		})
		if err != nil {
			log.Fatalf("Pipeline failed: %v", err)
		}

		log.Printf("emitted %d documents in %v", count, time.Since(start))
	},
}

var ontologyCmd = &cobra.Command{
	Use:   "ontology [file]",
	Short: "Parse an ontology file and dump the term table as JSON",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := ""
		if len(args) > 0 {
			path = args[0]
		} else {
			cfg := loadConfig()
			path = filepath.Join(cfg.Data.Folder, cfg.Data.Ontology)
		}

		terms, err := ontology.LoadFile(path)
		if err != nil {
			log.Fatalf("Failed to load ontology: %v", err)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(terms); err != nil {
			log.Fatalf("Failed to encode terms: %v", err)
		}
	},
}

// cmd/tools/faq-loader/main.go
//
// faq-loader seeds or refreshes the FAQ corpus from a YAML file:
//
//	faq-loader -file configs/faqs.yaml
//	faq-loader -file configs/faqs.yaml -dry-run
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"appraisal-workers/internal/common/config"
	"appraisal-workers/internal/common/database"
	"appraisal-workers/internal/common/logger"
	"appraisal-workers/internal/models"
	"appraisal-workers/internal/repository"
)

type faqEntry struct {
	ID             string `yaml:"id"`
	Question       string `yaml:"question"`
	Answer         string `yaml:"answer"`
	RoleVisibility string `yaml:"roleVisibility"`
	Active         *bool  `yaml:"active"`
}

type faqFile struct {
	Faqs []faqEntry `yaml:"faqs"`
}

func main() {
	filePath := flag.String("file", "configs/faqs.yaml", "Path to the FAQ seed file")
	dryRun := flag.Bool("dry-run", false, "Parse and validate the file without touching the database")
	flag.Parse()

	entries, err := loadFile(*filePath)
	if err != nil {
		fmt.Printf("Error loading %s: %v\n", *filePath, err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d FAQ entries from %s\n", len(entries), *filePath)

	if *dryRun {
		fmt.Println("Dry run, no database changes made.")
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)
	ctx := context.Background()

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		fmt.Printf("Error connecting to postgres: %v\n", err)
		os.Exit(1)
	}
	defer pg.Close()

	redis, err := database.NewRedis(cfg.Database.Redis)
	if err != nil {
		fmt.Printf("Error connecting to redis: %v\n", err)
		os.Exit(1)
	}
	defer redis.Close()

	repo := repository.NewFaqRepository(
		pg.DB,
		redis.Client,
		time.Duration(cfg.Assistant.CacheTTL)*time.Second,
		log,
	)

	for _, faq := range entries {
		if err := repo.UpsertFAQ(ctx, faq); err != nil {
			fmt.Printf("Error upserting FAQ %s: %v\n", faq.ID, err)
			os.Exit(1)
		}
		fmt.Printf("Upserted FAQ: %s\n", faq.ID)
	}

	repo.InvalidateCache(ctx)
	fmt.Printf("Done. %d FAQs upserted, cache invalidated.\n", len(entries))
}

func loadFile(path string) ([]models.FaqRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file faqFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if len(file.Faqs) == 0 {
		return nil, fmt.Errorf("no faqs found in file")
	}

	records := make([]models.FaqRecord, 0, len(file.Faqs))
	seen := make(map[string]bool, len(file.Faqs))
	for i, e := range file.Faqs {
		if e.ID == "" || e.Question == "" || e.Answer == "" {
			return nil, fmt.Errorf("entry %d: id, question and answer are required", i)
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("entry %d: duplicate id %q", i, e.ID)
		}
		seen[e.ID] = true

		visibility := e.RoleVisibility
		if visibility == "" {
			visibility = models.RoleVisibilityAll
		}
		switch visibility {
		case models.RoleVisibilityAll, models.RoleEmployee, models.RoleSupervisor, models.RoleHRAdmin:
		default:
			return nil, fmt.Errorf("entry %d: unknown roleVisibility %q", i, e.RoleVisibility)
		}

		active := true
		if e.Active != nil {
			active = *e.Active
		}

		records = append(records, models.FaqRecord{
			ID:             e.ID,
			Question:       e.Question,
			Answer:         e.Answer,
			RoleVisibility: visibility,
			Active:         active,
		})
	}

	return records, nil
}

package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"resume-editor/internal/adapter/snapshot"
	"resume-editor/internal/config"
	"resume-editor/internal/domain"
)

// Seeds the snapshot store with a generated resume document so the editor
// has something to open, the same way the generation flow persists one.
func main() {
	var (
		file    = flag.String("file", "resume.json", "path to a resume document JSON file")
		company = flag.String("company", "Unknown_Company", "artifact identity (company key)")
	)
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("read %s: %v", *file, err)
	}

	var doc domain.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Fatalf("parse document: %v", err)
	}

	store, err := snapshot.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password)
	if err != nil {
		log.Fatalf("snapshot store: %v", err)
	}
	defer store.Close()

	if err := store.Seed(context.Background(), &doc, *company); err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Printf("seeded snapshot for %s from %s", *company, *file)
}

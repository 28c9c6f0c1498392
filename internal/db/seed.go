package database

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog is the layout of a seed file:
//
//	stations: [Channel1, Channel2]
//	performers: [Colly]
//	songs:
//	  - title: Hello
//	    performer: Colly
type Catalog struct {
	Stations   []string `yaml:"stations"`
	Performers []string `yaml:"performers"`
	Songs      []struct {
		Title     string `yaml:"title"`
		Performer string `yaml:"performer"`
	} `yaml:"songs"`
}

// SeedCatalogFile loads a YAML catalog from path and seeds it.
func SeedCatalogFile(ctx context.Context, c *Client, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return SeedCatalog(ctx, c, f)
}

// SeedCatalog get-or-creates every entry, so it is safe to run on every
// restart. Performers referenced by songs are created as well.
func SeedCatalog(ctx context.Context, c *Client, r io.Reader) error {
	var cat Catalog
	if err := yaml.NewDecoder(r).Decode(&cat); err != nil && err != io.EOF {
		return fmt.Errorf("decode catalog: %w", err)
	}

	log.Printf("🌱 Seeding %d stations, %d performers, %d songs...",
		len(cat.Stations), len(cat.Performers), len(cat.Songs))

	for _, name := range cat.Stations {
		if _, err := c.GetOrCreateStation(ctx, name); err != nil {
			return fmt.Errorf("seed station %q: %w", name, err)
		}
	}
	for _, name := range cat.Performers {
		if _, err := c.GetOrCreatePerformer(ctx, name); err != nil {
			return fmt.Errorf("seed performer %q: %w", name, err)
		}
	}
	for _, s := range cat.Songs {
		performer, err := c.GetOrCreatePerformer(ctx, s.Performer)
		if err != nil {
			return fmt.Errorf("seed performer %q: %w", s.Performer, err)
		}
		if _, err := c.GetOrCreateSong(ctx, s.Title, performer); err != nil {
			return fmt.Errorf("seed song %q: %w", s.Title, err)
		}
	}
	return nil
}

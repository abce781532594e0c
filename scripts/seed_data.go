package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"shareit/internal/config"
	"shareit/internal/database"
	"shareit/internal/models"
	"shareit/internal/service"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// SeedData is a list of users, each with the items they own.
type SeedData struct {
	Users []SeedUser `yaml:"users"`
}

type SeedUser struct {
	Name  string     `yaml:"name"`
	Email string     `yaml:"email"`
	Items []SeedItem `yaml:"items"`
}

type SeedItem struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Available   bool   `yaml:"available"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	var (
		dataPath   = flag.String("data", "configs/seed.yaml", "path to seed.yaml")
		configPath = flag.String("config", config.DefaultPath, "path to config.yaml")
	)
	flag.Parse()

	data, err := os.ReadFile(*dataPath)
	if err != nil {
		return fmt.Errorf("read seed data: %w", err)
	}
	var seed SeedData
	if err = yaml.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("parse seed data: %w", err)
	}
	if len(seed.Users) == 0 {
		return fmt.Errorf("no users in yaml")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	db, err := database.NewDB(cfg.Database, &logger)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	users := service.NewUserService(db, &logger)
	items := service.NewItemService(db, &logger)

	existing, err := users.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	byEmail := make(map[string]int64, len(existing))
	for _, u := range existing {
		byEmail[u.Email] = u.ID
	}

	createdUsers, createdItems := 0, 0
	for _, su := range seed.Users {
		ownerID, ok := byEmail[su.Email]
		if !ok {
			u, err := users.CreateUser(ctx, models.UserDto{Name: su.Name, Email: su.Email})
			if err != nil {
				return fmt.Errorf("create user %s: %w", su.Email, err)
			}
			ownerID = u.ID
			byEmail[su.Email] = ownerID
			createdUsers++
		}

		owned, err := items.ListOwnerItems(ctx, ownerID, models.Page{From: 0, Size: 1000})
		if err != nil {
			return fmt.Errorf("list items of %s: %w", su.Email, err)
		}
		names := make(map[string]bool, len(owned))
		for _, it := range owned {
			names[it.Name] = true
		}

		for _, si := range su.Items {
			if si.Name == "" || names[si.Name] {
				continue
			}
			available := si.Available
			_, err := items.AddItem(ctx, ownerID, models.ItemDto{
				Name:        si.Name,
				Description: si.Description,
				Available:   &available,
			})
			if errors.Is(err, models.ErrValidation) {
				logger.Warn().Err(err).Str("item", si.Name).Msg("skip invalid item")
				continue
			}
			if err != nil {
				return fmt.Errorf("create item %s: %w", si.Name, err)
			}
			createdItems++
		}
	}

	fmt.Printf("done: users=%d items=%d\n", createdUsers, createdItems)
	return nil
}

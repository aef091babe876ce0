package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/healthycorner/site-api/internal/config"
	"github.com/healthycorner/site-api/internal/database"
	"github.com/healthycorner/site-api/internal/model"
	"github.com/healthycorner/site-api/internal/repository"
	"github.com/healthycorner/site-api/internal/schedule"
)

type seedItem struct {
	section, key string
	value        string
	image        string
	json         any
}

var defaults = []seedItem{
	{section: "hero", key: "title", value: "healthy corner"},
	{section: "hero", key: "subtitle", value: "ALPSKI ZDRAVILIŠKI KAMP"},
	{section: "hero", key: "description", value: "Your wellness sanctuary in the heart of the Alps. Experience transformation through healthy living, yoga, and cold therapy."},
	{section: "hero", key: "background_image", image: "/images/hero-bg.jpg"},

	{section: "about", key: "heading", value: "Your Journey to Wellness Begins Here"},
	{section: "about", key: "intro1", value: "Nestled in the breathtaking Camp Menina, Healthy Corner reconnects you with your body, mind and nature."},
	{section: "about", key: "intro2", value: "We combine nutritious cuisine, yoga, the Wim Hof method and ice baths in the pure Alpine air."},

	{section: "brand", key: "heading", value: "The Healthy Corner Way"},
	{section: "brand", key: "description", value: "Our philosophy combines ancient wisdom with modern wellness science"},

	{section: "services", key: "heading", value: "Our Services"},
	{section: "services", key: "description", value: "Discover our range of wellness services designed to transform your health and vitality"},

	{section: "menu", key: "heading", value: "Healthy Menu"},
	{section: "menu", key: "description", value: "Nourish your body with our organic, locally-sourced meals"},

	{section: schedule.Section, key: "heading", value: "Daily Schedule"},
	{section: schedule.Section, key: "description", value: "A typical day at Healthy Corner wellness retreat"},
	{section: schedule.Section, key: schedule.ClassesKey, json: schedule.Default()},
	{section: schedule.Section, key: schedule.EventsKey, json: []schedule.Event{}},

	{section: "gallery", key: "heading", value: "Gallery"},
	{section: "gallery", key: "description", value: "Experience the beauty of our wellness retreat through images"},

	{section: "testimonials", key: "heading", value: "What Our Guests Say"},
	{section: "testimonials", key: "description", value: "Real stories from people who transformed their lives at Healthy Corner"},

	{section: "shop", key: "heading", value: "Wellness Shop"},
	{section: "shop", key: "description", value: "Premium wellness products and retreat packages"},

	{section: "booking", key: "heading", value: "Book Your Experience"},
	{section: "booking", key: "description", value: "Reserve your spot for a transformative wellness journey"},

	{section: "newsletter", key: "heading", value: "Stay Connected"},
	{section: "newsletter", key: "description", value: "Subscribe to our newsletter for wellness tips and exclusive offers"},
	{section: "newsletter", key: "button_text", value: "Subscribe"},

	{section: "contact", key: "heading", value: "Get in Touch"},
	{section: "contact", key: "address", value: "Camp Menina, Mozirje, Slovenia"},
	{section: "contact", key: "email", value: "info@healthycorner.si"},
}

func (s seedItem) item() (model.ContentItem, error) {
	it := model.ContentItem{Section: s.section, Key: s.key, Published: true}
	if s.value != "" {
		v := s.value
		it.Value = &v
	}
	if s.image != "" {
		img := s.image
		it.ImageURL = &img
	}
	if s.json != nil {
		raw, err := json.Marshal(s.json)
		if err != nil {
			return it, err
		}
		it.JSON = raw
	}
	return it, nil
}

func main() {
	force := flag.Bool("force", false, "overwrite items that already exist")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.LoadDatabase()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	content := repository.NewContentRepo(db)

	var written, skipped int
	for _, s := range defaults {
		if !*force {
			_, err := content.GetBySectionKey(ctx, s.section, s.key)
			if err == nil {
				skipped++
				continue
			}
			if !errors.Is(err, repository.ErrNotFound) {
				log.Fatalf("%s.%s: %v", s.section, s.key, err)
			}
		}
		it, err := s.item()
		if err != nil {
			log.Fatalf("%s.%s: %v", s.section, s.key, err)
		}
		if err := content.Upsert(ctx, &it); err != nil {
			log.Printf("%s.%s: %v", s.section, s.key, err)
			continue
		}
		written++
	}
	log.Printf("seeded %d content items (%d already present)", written, skipped)
}

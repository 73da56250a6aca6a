package main

import (
	"context"
	"flag"
	"log"
	"time"

	"sfc-bus-schedule/internal/adapters/cache"
	"sfc-bus-schedule/internal/config"
)

// dbtool prepares the cache backend and removes stale records.
//
//	dbtool              create the kv_cache table for the sqlite/postgres backend
//	dbtool -purge KEY   delete one record, KEY like from_sfc_weekday
func main() {
	purge := flag.String("purge", "", "cache key to delete, e.g. to_sfc_special_20250705")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log.Printf("Opening %s cache backend...", cfg.CacheBackend)
	store, closeStore, err := cache.OpenStore(ctx, cache.StoreOptions{
		Backend:       cfg.CacheBackend,
		SQLitePath:    cfg.SQLitePath,
		DatabaseURL:   cfg.DatabaseURL,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
	})
	if err != nil {
		log.Fatalf("open failed: %v", err)
	}
	defer func() { _ = closeStore() }()
	log.Println("Schema ready.")

	if *purge == "" {
		return
	}

	direction, scheduleType, err := cache.ParseKey(*purge)
	if err != nil {
		log.Fatalf("purge: %v", err)
	}

	sc := cache.NewScheduleCache(store, cfg.CachePrefix, nil)
	if err := sc.Invalidate(ctx, direction, scheduleType); err != nil {
		log.Fatalf("purge %s: %v", sc.Key(direction, scheduleType), err)
	}
	log.Printf("Purged %s.", sc.Key(direction, scheduleType))
}

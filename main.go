package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"staysphere/config"
	"staysphere/db"
	"staysphere/live"
	"staysphere/middleware"
	"staysphere/mq"
	"staysphere/ratelim"
	"staysphere/rdx"
	"staysphere/routes"
	"staysphere/store"

	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
)

func main() {
	cfg := config.Load()

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	roomStore, err := openStore(rootCtx, cfg)
	if err != nil {
		log.Fatalf("❌ store: %v", err)
	}

	hub := live.NewHub()
	go hub.Run()

	// Without Redis the hub is fed directly; with Redis every instance
	// receives events through the subscriber so all websockets see them.
	var rdb *redis.Client
	publisher := mq.Fanout{mq.LogPublisher{}, hub}
	if cfg.RedisAddr != "" {
		rdb, err = rdx.Connect(rootCtx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Printf("⚠️ redis unavailable at %s, events stay local: %v", cfg.RedisAddr, err)
		} else {
			publisher = mq.Fanout{mq.LogPublisher{}, &mq.RedisPublisher{Conn: rdb}}
			go mq.Subscribe(rootCtx, rdb, hub.Deliver)
		}
	}

	router := routes.New(routes.Deps{
		Store:       roomStore,
		Publisher:   publisher,
		Hub:         hub,
		RateLimiter: ratelim.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		Greeting:    cfg.Greeting,
	})

	// apply middleware: CORS → security headers → logging → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}).Handler(router)

	handler := middleware.Logging(middleware.SecurityHeaders(corsHandler))

	server := &http.Server{
		Addr:              cfg.Port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	go func() {
		log.Printf("🚀 Booking server listening on %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("🛑 Shutdown signal received; shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stop()
	if err := shutdown(ctx, server, hub, rdb, roomStore); err != nil {
		log.Printf("❌ Graceful shutdown failed: %v", err)
	}

	log.Println("✅ Server stopped cleanly")
}

// shutdown drains the server, then releases the hub, Redis and the store
// before returning. http.Server runs its own shutdown hooks asynchronously,
// so none of these are registered there.
func shutdown(ctx context.Context, server *http.Server, hub *live.Hub, rdb *redis.Client, st store.RoomStore) error {
	err := server.Shutdown(ctx)

	log.Println("🛑 Closing live updates and store connections...")
	hub.Stop()
	if rdb != nil {
		if cerr := rdb.Close(); cerr != nil {
			log.Printf("redis close: %v", cerr)
		}
	}

	// fresh deadline: ctx may already be spent draining connections
	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if cerr := st.Close(closeCtx); cerr != nil {
		log.Printf("store close: %v", cerr)
	}
	return err
}

func openStore(ctx context.Context, cfg config.Config) (store.RoomStore, error) {
	if cfg.Backend == config.BackendMemory {
		mem := store.NewMemory()
		if cfg.SeedFile != "" {
			f, err := os.Open(cfg.SeedFile)
			if err != nil {
				return nil, err
			}
			defer f.Close()
			n, err := mem.LoadSeed(f)
			if err != nil {
				return nil, err
			}
			log.Printf("Seeded %d rooms from %s", n, cfg.SeedFile)
		}
		log.Println("Using in-memory room store")
		return mem, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	d, err := db.Connect(connectCtx, cfg.MongoURI, cfg.Database)
	if err != nil {
		return nil, err
	}
	m := store.NewMongo(d)
	if err := m.Ping(connectCtx); err != nil {
		log.Printf("⚠️ MongoDB ping failed, continuing: %v", err)
	} else {
		log.Println("Pinged your deployment. You successfully connected to MongoDB!")
		if err := d.EnsureIndexes(connectCtx); err != nil {
			log.Printf("⚠️ index creation failed: %v", err)
		}
	}
	return m, nil
}

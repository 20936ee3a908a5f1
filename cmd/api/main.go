package main

import (
	"log"
	"os"

	"memelaunch/internal/engine"
	"memelaunch/internal/handlers"
	"memelaunch/internal/routes"
	"memelaunch/internal/service"
	"memelaunch/pkg/config"
	solanautil "memelaunch/pkg/solana"
)

func main() {
	// Initialize database
	config.InitDB()

	var opts []service.Option

	// Initialize RabbitMQ (optional, will log warning if not configured)
	if os.Getenv("RABBITMQ_HOST") != "" {
		config.InitRabbitMQ()
		defer func() {
			if config.RabbitMQ != nil {
				config.RabbitMQ.Close()
			}
		}()

		publisher, err := config.NewPublisher()
		if err != nil {
			log.Fatal("Create publisher failed:", err)
		}
		defer publisher.Close()
		opts = append(opts, service.WithEvents(publisher))
		log.Println("RabbitMQ initialized successfully")
	} else {
		log.Println("RabbitMQ not configured, skipping initialization")
	}

	// Live websocket event stream
	hub := handlers.NewStreamHub()
	opts = append(opts, service.WithEvents(hub))

	svc := service.New(config.DB, opts...)
	handlers.Init(svc)

	// Ensure the platform singleton exists. The authority key comes from the
	// environment or a generated keystore entry.
	ensurePlatform(svc)

	// Set up router
	r := routes.SetupRouter(hub)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func ensurePlatform(svc *service.Service) {
	if _, err := svc.GetPlatform(); err == nil {
		return
	}

	authority := os.Getenv("PLATFORM_AUTHORITY")
	if authority == "" {
		km := solanautil.NewKeyManager(os.Getenv("KEYSTORE_DIR"))
		addr, err := km.LoadOrCreateAuthority(os.Getenv("KEYSTORE_PASSWORD"))
		if err != nil {
			log.Fatal("Failed to load platform authority:", err)
		}
		authority = addr
	}

	submissionFee := uint64(100_000_000) // 0.1 SOL
	if _, err := svc.InitializePlatform(authority, submissionFee,
		engine.DefaultPlatformBps, engine.DefaultGenesisBps, engine.DefaultBurnBps); err != nil {
		log.Fatal("Failed to initialize platform:", err)
	}
	log.Println("Platform initialized with authority", authority)
}

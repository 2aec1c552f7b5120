package main

import (
	"log"
	"os"

	"github.com/Shunsuke0205/inspirit-for-supporter/internal/config"
	"github.com/Shunsuke0205/inspirit-for-supporter/internal/db"
	"github.com/Shunsuke0205/inspirit-for-supporter/internal/model"
	"github.com/Shunsuke0205/inspirit-for-supporter/internal/server"
	"github.com/joho/godotenv"
)

// Set via -ldflags at build time.
var (
	gitSHA    = "dev"
	buildTime = "unknown"
)

func main() {
	_ = godotenv.Load()

	srv := server.New(nil, gitSHA, buildTime)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	errCh := make(chan error, 1)

	go func() {
		log.Printf("starting server on %s", addr)
		errCh <- srv.Start(addr)
	}()

	// Connect in the background so the instance can report healthy while the
	// database is still coming up.
	go func() {
		cfg, err := config.Load()
		if err != nil {
			log.Printf("config load error: %v", err)
			return
		}
		conn, err := db.Connect(cfg)
		if err != nil {
			log.Printf("db connect error: %v", err)
			return
		}
		srv.SetDB(conn)
		if err := conn.AutoMigrate(
			&model.ScholarshipApplication{},
			&model.SupporterContribution{},
			&model.StudentCommitment{},
		); err != nil {
			log.Printf("auto migrate error: %v", err)
		}
	}()

	if err := <-errCh; err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

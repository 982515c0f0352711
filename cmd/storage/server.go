package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/XJIeI5/evaluation/internal/logger"
	"github.com/XJIeI5/evaluation/internal/storage"
	_ "github.com/mattn/go-sqlite3"
)

func main() {
	hostPtr := flag.String("host", "http://localhost", "host of server")
	portPtr := flag.Int("port", 8080, "port of server")
	dbPtr := flag.String("db", "store.db", "sqlite database file")
	workersPtr := flag.Int("workers", 4, "amount of expressions calculated at once")
	strictPtr := flag.Bool("strict", false, "reject postfix that leaves operands unused")
	rpcTimeoutPtr := flag.Duration("rpc-timeout", 5*time.Second, "deadline of a compute server call")
	levelPtr := flag.String("log-level", "info", "debug, info, warn or error")
	flag.Parse()

	log := logger.New(os.Stderr, *levelPtr)
	slog.SetDefault(log)

	secret := []byte(os.Getenv("CALC_SECRET"))
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			log.Error("generate secret", "err", err)
			os.Exit(1)
		}
		log.Warn("CALC_SECRET is not set, tokens will not survive a restart")
	}

	db, err := sql.Open("sqlite3", *dbPtr)
	if err != nil {
		log.Error("open database", "path", *dbPtr, "err", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		log.Error("ping database", "err", err)
		os.Exit(1)
	}
	if err := storage.CreateTables(ctx, db); err != nil {
		log.Error("create tables", "err", err)
		os.Exit(1)
	}

	s, err := storage.GetServer(ctx, storage.Config{
		Host:       *hostPtr,
		Port:       *portPtr,
		Workers:    *workersPtr,
		Secret:     secret,
		Strict:     *strictPtr,
		RPCTimeout: *rpcTimeoutPtr,
		Logger:     log,
	}, db)
	if err != nil {
		log.Error("build server", "err", err)
		os.Exit(1)
	}

	go func() {
		log.Info("run storage server", "addr", s.Addr)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("serve", "err", err)
			os.Exit(1)
		}
	}()

	var stopChan = make(chan os.Signal, 2)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	<-stopChan // wait for SIGINT
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "err", err)
	}
	log.Info("stop storage server")
}

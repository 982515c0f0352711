package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/XJIeI5/evaluation/internal/computation"
	"github.com/XJIeI5/evaluation/internal/logger"
	"google.golang.org/grpc"
)

func main() {
	parallelPtr := flag.Int("pc", 10, "amount of parallel calculations")
	hostPtr := flag.String("host", "http://localhost", "host of server")
	portPtr := flag.Int("port", 5000, "port of server")
	storagePtr := flag.String("storage", "", "url of the storage server to register at, e.g. http://localhost:8080")
	advertisePtr := flag.String("advertise", "", "address the storage server dials, defaults to host:port")
	levelPtr := flag.String("log-level", "info", "debug, info, warn or error")
	flag.Parse()

	log := logger.New(os.Stderr, *levelPtr)
	slog.SetDefault(log)

	server := computation.GetServer(*hostPtr, *portPtr, *parallelPtr)
	server.Logger = log
	lis, err := net.Listen("tcp", server.Addr())
	if err != nil {
		log.Error("listen", "addr", server.Addr(), "err", err)
		os.Exit(1)
	}
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(computation.LoggingInterceptor(log)))
	computation.RegisterComputeServer(grpcServer, server)

	go func() {
		log.Info("run compute server", "addr", server.Addr(), "parallel", *parallelPtr)
		if err := grpcServer.Serve(lis); err != nil {
			log.Error("serve", "err", err)
			os.Exit(1)
		}
	}()

	if *storagePtr != "" {
		advertise := *advertisePtr
		if advertise == "" {
			host := strings.TrimPrefix(strings.TrimPrefix(*hostPtr, "http://"), "https://")
			advertise = fmt.Sprintf("%s:%d", host, *portPtr)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := computation.Register(ctx, *storagePtr, advertise)
		cancel()
		if err != nil {
			log.Error("register at storage", "storage", *storagePtr, "err", err)
			os.Exit(1)
		}
		log.Info("registered at storage", "storage", *storagePtr, "addr", advertise)
	}

	var stopChan = make(chan os.Signal, 2)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	<-stopChan // wait for SIGINT
	grpcServer.GracefulStop()
	log.Info("stop compute server")
}

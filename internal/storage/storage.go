package storage

import (
	"context"
	"crypto/sha1"
	"database/sql"
	"encoding/binary"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/XJIeI5/evaluation/internal/computation"
	datastructs "github.com/XJIeI5/evaluation/internal/datastructs"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Host string
	Port int

	// Workers is the number of expressions calculated at once.
	Workers int

	// Secret signs the session tokens.
	Secret []byte

	// Strict rejects postfix that leaves operands unused or underflows.
	Strict     bool
	RPCTimeout time.Duration
	BcryptCost int
	Logger     *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.RPCTimeout <= 0 {
		c.RPCTimeout = 5 * time.Second
	}
	if c.BcryptCost == 0 {
		c.BcryptCost = bcrypt.DefaultCost
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

type compute struct {
	addr     string
	client   *computation.Client
	lastBeat time.Time
}

type storage struct {
	cfg    Config
	router *mux.Router
	db     *sql.DB
	logger *slog.Logger

	computationServers map[string]*compute
	dial               func(addr string) (*computation.Client, error)

	exprQueue *datastructs.CQueue[expr]
	workers   sync.WaitGroup
	closeOnce sync.Once

	mu sync.RWMutex
}

func newStorage(cfg Config, db *sql.DB) *storage {
	cfg = cfg.withDefaults()
	s := &storage{
		cfg:                cfg,
		db:                 db,
		logger:             cfg.Logger,
		computationServers: make(map[string]*compute),
		dial:               func(addr string) (*computation.Client, error) { return computation.Dial(addr) },
		exprQueue:          datastructs.NewCQueue[expr](),
	}

	r := mux.NewRouter()
	r.Use(s.logRequests)
	// user handle
	r.HandleFunc("/register", s.handleRegister).Methods("POST")
	r.HandleFunc("/login", s.handleLogin).Methods("POST")
	// expr handle
	r.HandleFunc("/add_expr", s.authorized(s.handleAddExpression)).Methods("POST")
	r.HandleFunc("/get_result", s.authorized(s.handleGetResult)).Methods("GET")
	r.HandleFunc("/expressions", s.authorized(s.handleListExpressions)).Methods("GET")
	// compute handle
	r.HandleFunc("/regist_compute", s.handleRegistCompute).Methods("POST")
	r.HandleFunc("/get_compute", s.handleGetCompute).Methods("GET")

	s.router = r

	// background processes
	for i := 0; i < cfg.Workers; i++ {
		s.workers.Add(1)
		go s.calcExpressions()
	}

	return s
}

func (s *storage) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close stops the workers after the queued expressions are calculated.
func (s *storage) Close() {
	s.closeOnce.Do(func() {
		s.exprQueue.Close()
		s.workers.Wait()

		s.mu.Lock()
		defer s.mu.Unlock()
		for addr, c := range s.computationServers {
			c.client.Close()
			delete(s.computationServers, addr)
		}
	})
}

func (s *storage) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

// restorePending queues again the expressions a previous run left in progress.
func (s *storage) restorePending(ctx context.Context) error {
	pending, err := getPendingExpressions(ctx, s.db)
	if err != nil {
		return err
	}
	for _, e := range pending {
		if !s.exprQueue.Enqueue(e) {
			return errorShuttingDown
		}
	}
	if len(pending) > 0 {
		s.logger.Info("restored pending expressions", "count", len(pending))
	}
	return nil
}

// GetServer builds the HTTP server of the storage service. Registered compute
// servers and pending expressions are restored from db, workers stop on
// Shutdown.
func GetServer(ctx context.Context, cfg Config, db *sql.DB) (*http.Server, error) {
	var _addr string
	if strings.Contains(cfg.Host, "localhost") || strings.Contains(cfg.Host, "127.0.0.1") {
		_addr = fmt.Sprintf(":%d", cfg.Port)
	} else {
		host := strings.TrimPrefix(strings.TrimPrefix(cfg.Host, "http://"), "https://")
		_addr = fmt.Sprintf("%s:%d", host, cfg.Port)
	}

	s := newStorage(cfg, db)
	if err := s.restoreComputes(ctx); err != nil {
		s.Close()
		return nil, err
	}
	if err := s.restorePending(ctx); err != nil {
		s.Close()
		return nil, fmt.Errorf("restore expressions: %w", err)
	}
	srv := &http.Server{
		Addr:    _addr,
		Handler: s,
	}
	srv.RegisterOnShutdown(s.Close)
	return srv, nil
}

type state string
type postfixExpr string
type exprHash int64

func getHash(line string) exprHash {
	h := sha1.New()
	h.Write([]byte(line))
	return exprHash(binary.BigEndian.Uint32(h.Sum(nil)))
}

const (
	_           state = ""
	has_error   state = "error"
	in_progress state = "in progress"
	ok          state = "ok"
)

type expr struct {
	id          int64
	postfixExpr postfixExpr
}

type expressionState struct {
	ID      int64       `json:"id"`
	Expr    string      `json:"expr"`
	Postfix postfixExpr `json:"postfix"`
	State   state       `json:"state"`
	Result  string      `json:"result,omitempty"`
}

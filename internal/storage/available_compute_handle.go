package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"
)

const probeTimeout = time.Second

func (s *storage) handleRegistCompute(w http.ResponseWriter, r *http.Request) {
	if t := r.Header.Get("Content-Type"); t != "application/json" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	registerData := struct {
		Addr string `json:"addr"`
	}{}

	if err := json.NewDecoder(r.Body).Decode(&registerData); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if registerData.Addr == "" {
		http.Error(w, "addr is required", http.StatusBadRequest)
		return
	}

	if err := s.addCompute(r.Context(), registerData.Addr, time.Now()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.logger.Info("compute server registered", "addr", registerData.Addr)
	w.WriteHeader(http.StatusOK)
}

func (s *storage) handleGetCompute(w http.ResponseWriter, r *http.Request) {
	type compState struct {
		Addr     string    `json:"addr"`
		State    string    `json:"state"`
		Free     int       `json:"free"`
		LastBeat time.Time `json:"last_beat"`
	}

	free := s.probeComputes(r.Context())

	s.mu.RLock()
	states := make([]compState, 0, len(s.computationServers))
	for addr, c := range s.computationServers {
		st := compState{Addr: addr, LastBeat: c.lastBeat}
		if n, ok := free[addr]; ok {
			st.State = "available"
			st.Free = n
		} else {
			st.State = "lost connection"
		}
		states = append(states, st)
	}
	s.mu.RUnlock()

	sort.Slice(states, func(i, j int) bool { return states[i].Addr < states[j].Addr })
	writeJSON(w, states)
}

func (s *storage) addCompute(ctx context.Context, addr string, lastBeat time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.computationServers[addr]; ok {
		c.lastBeat = lastBeat
		return storeCompute(ctx, s.db, addr, lastBeat.UnixMilli())
	}
	client, err := s.dial(addr)
	if err != nil {
		return err
	}
	if err := storeCompute(ctx, s.db, addr, lastBeat.UnixMilli()); err != nil {
		client.Close()
		return err
	}
	s.computationServers[addr] = &compute{addr: addr, client: client, lastBeat: lastBeat}
	return nil
}

func (s *storage) restoreComputes(ctx context.Context) error {
	computes, err := getComputes(ctx, s.db)
	if err != nil {
		return err
	}
	for addr, ping := range computes {
		if err := s.addCompute(ctx, addr, time.UnixMilli(ping)); err != nil {
			return fmt.Errorf("restore compute %s: %w", addr, err)
		}
	}
	return nil
}

func (s *storage) forgetCompute(ctx context.Context, addr string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.computationServers[addr]; ok {
		c.client.Close()
		delete(s.computationServers, addr)
	}
	if err := deleteCompute(ctx, s.db, addr); err != nil {
		s.logger.Error("delete compute", "addr", addr, "err", err)
	}
}

func (s *storage) beat(ctx context.Context, c *compute) {
	now := time.Now()
	s.mu.Lock()
	c.lastBeat = now
	s.mu.Unlock()
	if err := pingCompute(ctx, s.db, c.addr, now.UnixMilli()); err != nil {
		s.logger.Error("ping compute", "addr", c.addr, "err", err)
	}
}

// probeComputes asks every registered compute server for its free processes.
// Servers that do not answer are left out of the result.
func (s *storage) probeComputes(ctx context.Context) map[string]int {
	var (
		wg          sync.WaitGroup
		mu          sync.Mutex
		freeProcess = make(map[string]int)
	)

	s.mu.RLock()
	computes := make([]*compute, 0, len(s.computationServers))
	for _, c := range s.computationServers {
		computes = append(computes, c)
	}
	s.mu.RUnlock()

	for _, c := range computes {
		wg.Add(1)
		go func(c *compute) {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(ctx, probeTimeout)
			defer cancel()
			num, err := c.client.FreeProcess(ctx)
			if err != nil {
				s.logger.Debug("compute server did not answer", "addr", c.addr, "err", err)
				return
			}
			mu.Lock()
			defer mu.Unlock()
			freeProcess[c.addr] = num
		}(c)
	}
	wg.Wait()
	return freeProcess
}

func (s *storage) getMostFreeComputationServer(ctx context.Context) (*compute, error) {
	freeProcess := s.probeComputes(ctx)
	keys := make([]string, 0, len(freeProcess))
	for key := range freeProcess {
		if freeProcess[key] == 0 {
			continue
		}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("no available computation server")
	}
	sort.Slice(keys, func(i, j int) bool { return freeProcess[keys[i]] > freeProcess[keys[j]] })

	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.computationServers[keys[0]]
	if !ok {
		return nil, fmt.Errorf("computation server %s is gone", keys[0])
	}
	return c, nil
}

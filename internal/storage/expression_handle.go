package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/XJIeI5/evaluation/internal/parser"
)

func (s *storage) handleAddExpression(w http.ResponseWriter, r *http.Request, userId int64) {
	if t := r.Header.Get("Content-Type"); t != "application/json" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	_expr := struct {
		Value string `json:"expr"`
	}{}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	err := decoder.Decode(&_expr)

	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if s.exprQueue.Closed() {
		http.Error(w, errorShuttingDown.Error(), http.StatusServiceUnavailable)
		return
	}

	parsedExpr, err := parser.ParseToPostfix(_expr.Value)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id, err := checkExpressionExists(r.Context(), s.db, postfixExpr(parsedExpr), userId)
	if err == nil {
		s.logger.Debug("expression already stored", "id", id, "user", userId)
		w.Write([]byte(strconv.FormatInt(id, 10)))
		return
	}
	if !errors.Is(err, sql.ErrNoRows) {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	id, err = storeExpressionState(r.Context(), s.db, in_progress, userId, _expr.Value, postfixExpr(parsedExpr))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !s.exprQueue.Enqueue(expr{id: id, postfixExpr: postfixExpr(parsedExpr)}) {
		// the row stays in progress and is queued again by restorePending
		http.Error(w, errorShuttingDown.Error(), http.StatusServiceUnavailable)
		return
	}
	w.Write([]byte(strconv.FormatInt(id, 10)))
}

func (s *storage) handleGetResult(w http.ResponseWriter, r *http.Request, userId int64) {
	strId := r.URL.Query().Get("id")
	id, err := strconv.ParseInt(strId, 10, 64)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	st, err := getExpressionState(r.Context(), s.db, id, userId)
	if errors.Is(err, errorUnknownExpression) {
		http.Error(w, fmt.Sprintf("no expr with id %d", id), http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, st)
}

func (s *storage) handleListExpressions(w http.ResponseWriter, r *http.Request, userId int64) {
	states, err := getExpressions(r.Context(), s.db, userId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, states)
}

func writeJSON(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

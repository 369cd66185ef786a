package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/vab-labo/reminders-cli/internal/engine"
	"github.com/vab-labo/reminders-cli/internal/present"
)

// Server exposes a read-only HTTP view over the reminder engine.
type Server struct {
	engine *engine.Engine
	addr   string
}

// New creates a new API server.
func New(e *engine.Engine, addr string) *Server {
	return &Server{engine: e, addr: addr}
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	fmt.Printf("Starting server on %s\n", s.addr)
	return http.ListenAndServe(s.addr, s.Handler())
}

// Handler builds the route table; split out so tests can drive it
// without a listener.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /lists", s.listLists)
	mux.HandleFunc("GET /reminders", s.listReminders)
	mux.HandleFunc("GET /health", s.health)
	return mux
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listLists(w http.ResponseWriter, r *http.Request) {
	lists, err := s.engine.Lists()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	names := make([]string, len(lists))
	for i, l := range lists {
		names[i] = l.Name
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"lists": names})
}

func (s *Server) listReminders(w http.ResponseWriter, r *http.Request) {
	query, err := queryFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := s.engine.Show(query)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, engine.ErrListNotFound) {
			status = http.StatusNotFound
		}
		writeError(w, status, err.Error())
		return
	}

	records := make([]map[string]any, len(items))
	for i := range items {
		records[i] = present.Record(&items[i])
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reminders": records,
		"count":     len(records),
	})
}

func queryFromRequest(r *http.Request) (engine.Query, error) {
	q := engine.Query{Lists: r.URL.Query()["list"]}
	values := r.URL.Query()

	switch values.Get("completed") {
	case "":
		q.Criteria.Completion = engine.IncompleteOnly
	case "all":
		q.Criteria.Completion = engine.AllItems
	case "only":
		q.Criteria.Completion = engine.CompleteOnly
	default:
		return q, fmt.Errorf("completed must be empty, 'all' or 'only'")
	}

	if due := values.Get("due-on"); due != "" {
		day, err := time.ParseInLocation("2006-01-02", due, time.Local)
		if err != nil {
			return q, fmt.Errorf("due-on must be YYYY-MM-DD")
		}
		q.Criteria.DueOn = &day
	}
	q.Criteria.IncludeOverdue = values.Get("include-overdue") == "true"
	q.Criteria.HasDueDate = values.Get("has-due-date") == "true"
	q.Criteria.OnlyFlagged = values.Get("flagged") == "true"
	q.Criteria.Tag = values.Get("tag")
	q.Criteria.Section = values.Get("section")

	key, ok := engine.ParseSortKey(values.Get("sort"))
	if !ok {
		return q, fmt.Errorf("unknown sort key %q", values.Get("sort"))
	}
	q.Sort = key
	order, ok := engine.ParseOrder(values.Get("order"))
	if !ok {
		return q, fmt.Errorf("unknown sort order %q", values.Get("order"))
	}
	q.Order = order

	return q, nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

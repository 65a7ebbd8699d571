package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/xtding233/spinwheel/internal/profile"
	"github.com/xtding233/spinwheel/internal/sim"
	"github.com/xtding233/spinwheel/internal/wheel"
)

// Each remote client drives its own session; the server is just a
// host adapter that forwards spin requests and ticks over HTTP.
var (
	sessions = make(map[string]*wheel.Session)
	lock     sync.Mutex
	loader   *profile.Loader
)

type entryJSON struct {
	ID          string `json:"id"`
	Label       string `json:"label,omitempty"`
	Description string `json:"description,omitempty"`
	Weight      int    `json:"weight"`
}

type startReq struct {
	Title   string      `json:"title"`
	Profile string      `json:"profile,omitempty"`
	Entries []entryJSON `json:"entries"`
}

type sectionJSON struct {
	ID    string  `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type stateResp struct {
	ID       string        `json:"id"`
	Title    string        `json:"title,omitempty"`
	Phase    string        `json:"phase"`
	Rotation float64       `json:"rotation"`
	Velocity float64       `json:"velocity"`
	Selected *entryJSON    `json:"selected,omitempty"`
	Sections []sectionJSON `json:"sections,omitempty"`
	Err      string        `json:"err,omitempty"`
}

func parseFloat(r *http.Request, key string) (float64, bool, string) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, false, ""
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, "invalid " + key
	}
	return v, true, ""
}

func parseInt(r *http.Request, key string) (int, bool, string) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, false, ""
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false, "invalid " + key
	}
	return v, true, ""
}

// overridesFromQuery collects per-request tuning knobs.
func overridesFromQuery(r *http.Request) (profile.Overrides, string) {
	var o profile.Overrides
	if v, ok, msg := parseFloat(r, "speed"); msg != "" {
		return o, msg
	} else if ok {
		o.InitialSpeed = &v
	}
	if v, ok, msg := parseFloat(r, "decel"); msg != "" {
		return o, msg
	} else if ok {
		o.Deceleration = &v
	}
	if v, ok, msg := parseFloat(r, "jitter"); msg != "" {
		return o, msg
	} else if ok {
		o.Jitter = &v
	}
	if v, ok, msg := parseInt(r, "turns"); msg != "" {
		return o, msg
	} else if ok {
		o.Turns = &v
	}
	if s := r.URL.Query().Get("mode"); s != "" {
		o.Mode = &s
	}
	if s := r.URL.Query().Get("easing"); s != "" {
		o.Easing = &s
	}
	return o, ""
}

func toEntries(in []entryJSON) []wheel.Entry {
	out := make([]wheel.Entry, len(in))
	for i, e := range in {
		out[i] = wheel.Entry{ID: e.ID, Label: e.Label, Description: e.Description, Weight: e.Weight}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func sessionState(s *wheel.Session, withSections bool) stateResp {
	resp := stateResp{
		ID:       s.ID(),
		Title:    s.Title(),
		Phase:    s.Phase().String(),
		Rotation: s.Rotation(),
		Velocity: s.Velocity(),
	}
	if e, ok := s.Selected(); ok {
		resp.Selected = &entryJSON{ID: e.ID, Label: e.Label, Description: e.Description, Weight: e.Weight}
	}
	if withSections {
		for _, sec := range s.Sections() {
			resp.Sections = append(resp.Sections, sectionJSON{ID: sec.Entry.ID, Start: sec.Start, End: sec.End})
		}
	}
	return resp
}

func sessionOptions(profileName string, o profile.Overrides) (wheel.Options, error) {
	cfg, err := loader.LoadMerged(profileName)
	if err != nil {
		return wheel.Options{}, err
	}
	if err := profile.ValidateRaw(cfg); err != nil {
		return wheel.Options{}, err
	}
	return profile.Options(cfg, o), nil
}

func handleStart(w http.ResponseWriter, r *http.Request) {
	var req startReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body: "+err.Error(), http.StatusBadRequest)
		return
	}
	o, msg := overridesFromQuery(r)
	if msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	opts, err := sessionOptions(req.Profile, o)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	title := req.Title
	s, err := wheel.NewSession(toEntries(req.Entries), title, opts, func(e wheel.Entry) {
		log.Printf("session result: %q -> %s", title, e.ID)
	})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, stateResp{Err: err.Error()})
		return
	}

	lock.Lock()
	sessions[s.ID()] = s
	lock.Unlock()

	writeJSON(w, http.StatusCreated, sessionState(s, true))
}

func getSession(w http.ResponseWriter, r *http.Request) *wheel.Session {
	id := chi.URLParam(r, "id")
	lock.Lock()
	s := sessions[id]
	lock.Unlock()
	if s == nil {
		http.Error(w, "no such session", http.StatusNotFound)
		return nil
	}
	return s
}

func handleState(w http.ResponseWriter, r *http.Request) {
	s := getSession(w, r)
	if s == nil {
		return
	}
	lock.Lock()
	resp := sessionState(s, r.URL.Query().Get("sections") == "1")
	lock.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

func handleSpin(w http.ResponseWriter, r *http.Request) {
	s := getSession(w, r)
	if s == nil {
		return
	}
	lock.Lock()
	s.RequestSpin()
	resp := sessionState(s, false)
	lock.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

// handleTick advances the session by n ticks of dt (defaults 1, 1.0).
// The remote host owns the tick cadence; this endpoint just batches.
func handleTick(w http.ResponseWriter, r *http.Request) {
	s := getSession(w, r)
	if s == nil {
		return
	}
	n, ok, msg := parseInt(r, "n")
	if msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	if !ok {
		n = 1
	}
	if n < 1 || n > 100000 {
		http.Error(w, "n out of range", http.StatusBadRequest)
		return
	}
	dt, ok, msg := parseFloat(r, "dt")
	if msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	if !ok {
		dt = 1
	}
	if dt <= 0 {
		http.Error(w, "dt must be > 0", http.StatusBadRequest)
		return
	}

	lock.Lock()
	for i := 0; i < n && s.Phase() == wheel.PhaseSpinning; i++ {
		s.HandleTick(dt)
	}
	resp := sessionState(s, false)
	lock.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

// handleRun spins and ticks to completion in one call, for hosts that
// only want the outcome and render no animation.
func handleRun(w http.ResponseWriter, r *http.Request) {
	s := getSession(w, r)
	if s == nil {
		return
	}
	lock.Lock()
	s.RequestSpin()
	for s.Phase() == wheel.PhaseSpinning {
		s.HandleTick(1)
	}
	resp := sessionState(s, false)
	lock.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

func handleClose(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	lock.Lock()
	if s := sessions[id]; s != nil {
		s.Close()
		delete(sessions, id)
	}
	lock.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req startReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body: "+err.Error(), http.StatusBadRequest)
		return
	}
	spins, ok, msg := parseInt(r, "spins")
	if msg != "" || !ok || spins <= 0 || spins > 1_000_000 {
		http.Error(w, "missing/invalid param spins", http.StatusBadRequest)
		return
	}
	seed, _, msg := parseInt(r, "seed")
	if msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	o, msg := overridesFromQuery(r)
	if msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	opts, err := sessionOptions(req.Profile, o)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	rep, err := sim.Run(sim.Params{
		Entries: toEntries(req.Entries),
		Options: opts,
		Seed:    uint64(seed),
	}, spins)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	configDir := flag.String("config", "config", "base directory holding profiles/")
	flag.Parse()

	loader = profile.NewLoader(*configDir)
	paths := profile.Paths{BaseDir: *configDir}
	watcher := profile.NewFileWatcher(
		[]string{paths.DefaultPath()},
		5*time.Second,
		func(p string) {
			log.Printf("profile %s changed, reloading", p)
			loader.Invalidate()
		},
	)
	watcher.Start()
	defer watcher.Stop()

	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Post("/sessions", handleStart)
	r.Get("/sessions/{id}", handleState)
	r.Post("/sessions/{id}/spin", handleSpin)
	r.Post("/sessions/{id}/tick", handleTick)
	r.Post("/sessions/{id}/run", handleRun)
	r.Delete("/sessions/{id}", handleClose)
	r.Post("/simulate", handleSimulate)

	log.Printf("listening on %s ...", *addr)
	log.Fatal(http.ListenAndServe(*addr, r))
}

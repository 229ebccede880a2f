// Package dogapitest provides an in-process fake of the dog image API for tests.
package dogapitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
)

// MaxRandomImages mirrors the server side cap on random image counts.
const MaxRandomImages = 50

// DefaultBreeds is the taxonomy served unless overridden with WithBreeds.
var DefaultBreeds = map[string][]string{
	"beagle":    {},
	"bulldog":   {"boston", "english", "french"},
	"hound":     {"afghan", "basset", "blood"},
	"husky":     {},
	"labrador":  {},
	"poodle":    {"medium", "miniature", "standard", "toy"},
	"retriever": {"chesapeake", "curly", "flatcoated", "golden"},
	"spaniel":   {"blenheim", "brittany", "cocker", "irish"},
	"terrier":   {"american", "irish", "yorkshire"},
}

const imagesPerBreed = 4

// Server is a running fake API. BaseURL is what a client should be pointed at.
type Server struct {
	*httptest.Server
	BaseURL string

	breeds      map[string][]string
	latency     time.Duration
	contentType string

	requests atomic.Int64
	mu       sync.Mutex
	cursor   int
}

// Option customises the fake.
type Option func(*Server)

// WithBreeds replaces the served taxonomy.
func WithBreeds(breeds map[string][]string) Option {
	return func(s *Server) { s.breeds = breeds }
}

// WithLatency delays every response.
func WithLatency(d time.Duration) Option {
	return func(s *Server) { s.latency = d }
}

// WithContentType overrides the response Content-Type header.
func WithContentType(ct string) Option {
	return func(s *Server) { s.contentType = ct }
}

// NewServer starts a fake API mounted under /api.
func NewServer(opts ...Option) *Server {
	s := &Server{
		breeds:      DefaultBreeds,
		contentType: "application/json",
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(s.count, s.delay)
	r.Route("/api", func(r chi.Router) {
		r.Get("/breeds/list/all", s.handleList)
		r.Get("/breeds/image/random", s.handleRandom)
		r.Get("/breeds/image/random/{count}", s.handleRandomN)
		r.Get("/breed/{breed}/images", s.handleBreedImages)
		r.Get("/breed/{breed}/images/random", s.handleBreedRandom)
		r.Get("/breed/{breed}/images/random/{count}", s.handleBreedRandomN)
		r.Get("/breed/{breed}/{subBreed}/images", s.handleSubBreedImages)
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		s.writeError(w, http.StatusNotFound, "No route found")
	})

	s.Server = httptest.NewServer(r)
	s.BaseURL = s.Server.URL + "/api"
	return s
}

// Requests returns the number of requests served so far.
func (s *Server) Requests() int64 { return s.requests.Load() }

// ImageURL returns the canonical image URL of a breed (and optional sub-breed).
func ImageURL(breed, subBreed string, n int) string {
	dir := breed
	if subBreed != "" {
		dir = breed + "-" + subBreed
	}
	return fmt.Sprintf("https://images.dog.ceo/breeds/%s/n0210_%d.jpg", dir, n)
}

func (s *Server) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) delay(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.latency > 0 {
			time.Sleep(s.latency)
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleList(w http.ResponseWriter, _ *http.Request) {
	s.writeSuccess(w, s.breeds)
}

func (s *Server) handleRandom(w http.ResponseWriter, _ *http.Request) {
	imgs := s.nextImages(s.allImages(), 1)
	if len(imgs) == 0 {
		s.writeError(w, http.StatusNotFound, "No images available")
		return
	}
	s.writeSuccess(w, imgs[0])
}

func (s *Server) handleRandomN(w http.ResponseWriter, r *http.Request) {
	n, ok := s.parseCount(w, r)
	if !ok {
		return
	}
	s.writeSuccess(w, s.nextImages(s.allImages(), min(n, MaxRandomImages)))
}

func (s *Server) handleBreedImages(w http.ResponseWriter, r *http.Request) {
	breed := chi.URLParam(r, "breed")
	if _, ok := s.breeds[breed]; !ok {
		s.writeError(w, http.StatusNotFound, "Breed not found (master breed does not exist)")
		return
	}
	s.writeSuccess(w, breedImages(breed, s.breeds[breed]))
}

func (s *Server) handleSubBreedImages(w http.ResponseWriter, r *http.Request) {
	breed, sub := chi.URLParam(r, "breed"), chi.URLParam(r, "subBreed")
	subs, ok := s.breeds[breed]
	if !ok {
		s.writeError(w, http.StatusNotFound, "Breed not found (master breed does not exist)")
		return
	}
	for _, candidate := range subs {
		if candidate == sub {
			s.writeSuccess(w, subBreedImages(breed, sub))
			return
		}
	}
	s.writeError(w, http.StatusNotFound, "Breed not found (sub breed does not exist)")
}

func (s *Server) handleBreedRandom(w http.ResponseWriter, r *http.Request) {
	breed := chi.URLParam(r, "breed")
	if _, ok := s.breeds[breed]; !ok {
		s.writeError(w, http.StatusNotFound, "Breed not found (master breed does not exist)")
		return
	}
	s.writeSuccess(w, s.nextImages(breedImages(breed, s.breeds[breed]), 1)[0])
}

func (s *Server) handleBreedRandomN(w http.ResponseWriter, r *http.Request) {
	breed := chi.URLParam(r, "breed")
	if _, ok := s.breeds[breed]; !ok {
		s.writeError(w, http.StatusNotFound, "Breed not found (master breed does not exist)")
		return
	}
	n, ok := s.parseCount(w, r)
	if !ok {
		return
	}
	pool := breedImages(breed, s.breeds[breed])
	s.writeSuccess(w, s.nextImages(pool, min(n, len(pool), MaxRandomImages)))
}

func (s *Server) parseCount(w http.ResponseWriter, r *http.Request) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, "count"))
	if err != nil || n < 1 {
		s.writeError(w, http.StatusNotFound, "No route found")
		return 0, false
	}
	return n, true
}

// nextImages rotates through pool so consecutive calls differ.
func (s *Server) nextImages(pool []string, n int) []string {
	if len(pool) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, pool[s.cursor%len(pool)])
		s.cursor++
	}
	return out
}

func (s *Server) allImages() []string {
	names := make([]string, 0, len(s.breeds))
	for b := range s.breeds {
		names = append(names, b)
	}
	sort.Strings(names)

	var out []string
	for _, b := range names {
		out = append(out, breedImages(b, s.breeds[b])...)
	}
	return out
}

func breedImages(breed string, subs []string) []string {
	if len(subs) == 0 {
		out := make([]string, 0, imagesPerBreed)
		for i := 1; i <= imagesPerBreed; i++ {
			out = append(out, ImageURL(breed, "", i))
		}
		return out
	}
	var out []string
	for _, sub := range subs {
		out = append(out, subBreedImages(breed, sub)...)
	}
	return out
}

func subBreedImages(breed, sub string) []string {
	out := make([]string, 0, imagesPerBreed)
	for i := 1; i <= imagesPerBreed; i++ {
		out = append(out, ImageURL(breed, sub, i))
	}
	return out
}

func (s *Server) writeSuccess(w http.ResponseWriter, message any) {
	s.writeJSON(w, http.StatusOK, map[string]any{"message": message, "status": "success"})
}

func (s *Server) writeError(w http.ResponseWriter, code int, message string) {
	s.writeJSON(w, code, map[string]any{"message": message, "status": "error", "code": code})
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", s.contentType)
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

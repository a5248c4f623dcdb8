// Package hawkulartest - встраиваемый Hawkular-совместимый бэкенд для тестов:
// хранит точки в памяти и отвечает на status, raw/data, metrics и tenants.
package hawkulartest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"
	"github.com/klauspost/compress/gzip"

	"github.com/chestorix/hawkmon/internal/config"
	"github.com/chestorix/hawkmon/internal/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const Version = "0.21.0"

type seriesKey struct {
	tenant     string
	collection string
	name       string
}

// Request - краткая запись принятого запроса.
type Request struct {
	Method          string
	Path            string
	Query           url.Values
	Tenant          string
	ContentEncoding string
}

// Server - бэкенд в памяти поверх httptest.Server.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	series   map[seriesKey][]models.DataPoint
	requests []Request

	// FailStatus, если не 0, возвращается на любой запрос данных.
	FailStatus int
	// Descending отдаёт точки по убыванию, как Hawkular без order=ASC.
	Descending bool
}

func NewServer() *Server {
	s := &Server{series: make(map[seriesKey][]models.DataPoint)}
	s.Server = httptest.NewServer(s.routes())
	return s
}

// ClientConfig возвращает конфигурацию клиента, указывающую на этот сервер.
func (s *Server) ClientConfig(tenant string) config.ClientConfig {
	u, _ := url.Parse(s.URL)
	port, _ := strconv.Atoi(u.Port())
	cfg := config.DefaultClientConfig()
	cfg.Tenant = tenant
	cfg.Host = u.Hostname()
	cfg.Port = port
	return cfg
}

// Points возвращает сохранённые точки ряда в порядке возрастания.
func (s *Server) Points(tenant string, mType models.MetricType, name string) []models.DataPoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.DataPoint(nil), s.series[seriesKey{tenant, mType.Collection(), name}]...)
}

// Requests возвращает копию журнала запросов.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.recordMiddleware)
	r.Use(gzipRequestMiddleware)

	r.Route("/hawkular/metrics", func(r chi.Router) {
		r.Get("/status", s.statusHandler)
		r.Get("/tenants", s.tenantsHandler)
		r.Get("/metrics", s.metricsHandler)
		for _, collection := range []string{"gauges", "counters", "availability"} {
			collection := collection
			r.Route("/"+collection, func(r chi.Router) {
				r.Post("/raw", s.writeHandler(collection))
				r.Post("/data", s.writeHandler(collection))
				r.Get("/{id}/raw", s.readHandler(collection))
				r.Get("/{id}/data", s.readHandler(collection))
			})
		}
	})
	return r
}

func (s *Server) recordMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:          r.Method,
			Path:            r.URL.Path,
			Query:           r.URL.Query(),
			Tenant:          r.Header.Get("Hawkular-Tenant"),
			ContentEncoding: r.Header.Get("Content-Encoding"),
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func gzipRequestMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.Header.Get("Content-Encoding"), "gzip") {
			gz, err := gzip.NewReader(r.Body)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			defer gz.Close()
			r.Body = gz
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"MetricsService":         "STARTED",
		"Implementation-Version": Version,
		"MohawkBackend":          "memory",
	})
}

func (s *Server) tenantsHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	seen := map[string]bool{}
	tenants := []models.Tenant{}
	for k := range s.series {
		if !seen[k.tenant] {
			seen[k.tenant] = true
			tenants = append(tenants, models.Tenant{ID: k.tenant})
		}
	}
	s.mu.Unlock()

	sort.Slice(tenants, func(i, j int) bool { return tenants[i].ID < tenants[j].ID })
	writeJSON(w, http.StatusOK, tenants)
}

func (s *Server) metricsHandler(w http.ResponseWriter, r *http.Request) {
	tenant := tenantOf(r)
	collection := ""
	if t := r.URL.Query().Get("type"); t != "" {
		mType, err := models.ParseMetricType(t)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		collection = mType.Collection()
	}

	s.mu.Lock()
	defs := []models.MetricDefinition{}
	for k := range s.series {
		if k.tenant == tenant && (collection == "" || k.collection == collection) {
			defs = append(defs, models.MetricDefinition{ID: k.name, Type: k.collection, Tenant: k.tenant})
		}
	}
	s.mu.Unlock()

	if len(defs) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	writeJSON(w, http.StatusOK, defs)
}

type metricHeader struct {
	ID   string             `json:"id"`
	Data []models.DataPoint `json:"data"`
}

func (s *Server) writeHandler(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.FailStatus != 0 {
			writeError(w, s.FailStatus, "injected failure")
			return
		}

		var items []metricHeader
		if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
			return
		}
		for _, item := range items {
			if item.ID == "" {
				writeError(w, http.StatusBadRequest, "metric id is required")
				return
			}
		}

		tenant := tenantOf(r)
		s.mu.Lock()
		for _, item := range items {
			key := seriesKey{tenant, collection, item.ID}
			s.series[key] = upsert(s.series[key], item.Data)
		}
		s.mu.Unlock()

		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"message":"Received %d data items"}`, len(items))
	}
}

func (s *Server) readHandler(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.FailStatus != 0 {
			writeError(w, s.FailStatus, "injected failure")
			return
		}

		id, err := metricIDParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid metric id")
			return
		}
		q := r.URL.Query()
		start, err := strconv.ParseInt(q.Get("start"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid start")
			return
		}
		end, err := strconv.ParseInt(q.Get("end"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid end")
			return
		}
		if start > end {
			writeError(w, http.StatusBadRequest, "Time range is invalid")
			return
		}

		rng := models.TimeRange{Start: start, End: end}
		s.mu.Lock()
		var out []models.DataPoint
		for _, p := range s.series[seriesKey{tenantOf(r), collection, id}] {
			if rng.Contains(p.Timestamp) {
				out = append(out, p)
			}
		}
		s.mu.Unlock()

		if len(out) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if s.Descending || q.Get("order") == "DESC" {
			sort.Slice(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// upsert вставляет точки, сохраняя порядок по времени; одинаковая метка перезаписывается.
func upsert(points, incoming []models.DataPoint) []models.DataPoint {
	for _, p := range incoming {
		i := sort.Search(len(points), func(i int) bool { return points[i].Timestamp >= p.Timestamp })
		if i < len(points) && points[i].Timestamp == p.Timestamp {
			points[i] = p
			continue
		}
		points = append(points, models.DataPoint{})
		copy(points[i+1:], points[i:])
		points[i] = p
	}
	return points
}

// metricIDParam возвращает имя ряда из пути. При непустом RawPath chi
// сопоставляет маршрут по нему, и "a%2Fb" приходит неразобранным.
func metricIDParam(r *http.Request) (string, error) {
	id := chi.URLParam(r, "id")
	if r.URL.RawPath == "" {
		return id, nil
	}
	return url.PathUnescape(id)
}

func tenantOf(r *http.Request) string {
	if t := r.Header.Get("Hawkular-Tenant"); t != "" {
		return t
	}
	return config.DefaultTenant
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"errorMsg": msg})
}

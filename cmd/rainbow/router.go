package main

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vnykmshr/rainbow/pkg/demo"
)

type demoInfo struct {
	Name        string `json:"name"`
	Group       string `json:"group"`
	Description string `json:"description"`
}

// newRouter serves the metrics endpoint alongside a health check and the
// demonstration catalogue.
func newRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/demos", listDemosJSON)
	r.Get("/demos/{group}", listDemosJSON)

	return r
}

func listDemosJSON(w http.ResponseWriter, r *http.Request) {
	demos := demo.All()
	if group := chi.URLParam(r, "group"); group != "" {
		var err error
		if demos, err = demo.ByGroup(group); err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
	}

	infos := make([]demoInfo, len(demos))
	for i, d := range demos {
		infos[i] = demoInfo{Name: d.Name, Group: d.Group, Description: d.Description}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(infos)
}

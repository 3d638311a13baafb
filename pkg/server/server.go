// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package server serves pairwise suite generation over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/pairgen/pkg/log"
	"github.com/google/pairgen/pkg/pairwise"
	"github.com/google/pairgen/pkg/params"
	"github.com/google/pairgen/pkg/render"
	"github.com/google/pairgen/pkg/stat"
	"github.com/google/pairgen/pkg/suite"
	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxRequestSize = 1 << 20

var statRequests = stat.New("requests", "Number of HTTP generate requests",
	stat.Console, stat.Prometheus("pairgen_http_requests"))

// GenerateRequest is the body of POST /generate.
// Empty order, policy and format select the defaults.
type GenerateRequest struct {
	Parameters []params.JSONParameter `json:"parameters"`
	Order      string                 `json:"order,omitempty"`
	Policy     string                 `json:"policy,omitempty"`
	Format     string                 `json:"format,omitempty"`
}

type Server struct {
	cfg *Config
	mux *http.ServeMux
}

func New(cfg *Config) *Server {
	serv := &Server{
		cfg: cfg,
		mux: http.NewServeMux(),
	}
	handle := func(pattern string, handler func(http.ResponseWriter, *http.Request)) {
		serv.mux.Handle(pattern, handlers.CompressHandler(http.HandlerFunc(handler)))
	}
	// keep-sorted start
	handle("/generate", serv.httpGenerate)
	handle("/log", serv.httpLog)
	handle("/metrics", promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{}).ServeHTTP)
	handle("/stats", serv.httpStats)
	// keep-sorted end
	return serv
}

func (serv *Server) Handler() http.Handler {
	return serv.mux
}

func (serv *Server) Serve(ctx context.Context) error {
	log.Logf(0, "serving http on http://%v", serv.cfg.HTTP)
	server := &http.Server{
		Addr:              serv.cfg.HTTP,
		Handler:           serv.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		// The http server package unfortunately does not natively take a context.Context.
		// Let's emulate it via server.Shutdown()
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()
	err := server.ListenAndServe()
	if err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (serv *Server) httpGenerate(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	w.Header().Set("X-Request-Id", id)
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "use POST", http.StatusMethodNotAllowed)
		return
	}
	statRequests.Add(1)
	req, opts, format, err := serv.parseRequest(r)
	if err != nil {
		log.Logf(1, "request %v: %v", id, err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	if serv.cfg.TimeoutSec != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(serv.cfg.TimeoutSec)*time.Second)
		defer cancel()
	}
	cases, err := suite.Generate(ctx, req, opts)
	if err != nil {
		log.Logf(1, "request %v: %v", id, err)
		http.Error(w, err.Error(), errorStatus(err))
		return
	}
	buf := new(bytes.Buffer)
	if err := render.Write(buf, format, suite.Names(req), cases); err != nil {
		log.Errorf("request %v: %v", id, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	log.Logf(1, "request %v: %v parameters, %v cases", id, len(req), len(cases))
	w.Header().Set("Content-Type", contentType(format))
	w.Write(buf.Bytes())
}

func (serv *Server) parseRequest(r *http.Request) ([]params.Parameter, pairwise.Options, render.Format, error) {
	var opts pairwise.Options
	var req GenerateRequest
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxRequestSize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return nil, opts, 0, fmt.Errorf("failed to parse request: %w", err)
	}
	var err error
	if opts.Order, err = pairwise.ParseOrder(req.Order); err != nil {
		return nil, opts, 0, err
	}
	if opts.Policy, err = pairwise.ParsePolicy(req.Policy); err != nil {
		return nil, opts, 0, err
	}
	format, err := render.ParseFormat(req.Format)
	if err != nil {
		return nil, opts, 0, err
	}
	if limit := serv.cfg.MaxParameters; limit != 0 && len(req.Parameters) > limit {
		return nil, opts, 0, fmt.Errorf("too many parameters: %v (max %v)", len(req.Parameters), limit)
	}
	var res []params.Parameter
	for _, p := range req.Parameters {
		if limit := serv.cfg.MaxValues; limit != 0 && len(p.Values) > limit {
			return nil, opts, 0, fmt.Errorf("parameter %q has too many values: %v (max %v)",
				p.Name, len(p.Values), limit)
		}
		res = append(res, p.Parameter())
	}
	if limit := serv.cfg.MaxPairs; limit != 0 {
		total, err := pairwise.UniverseSize(res)
		if err != nil {
			return nil, opts, 0, err
		}
		if total > limit {
			return nil, opts, 0, fmt.Errorf("too many pairs to cover: %v (max %v)", total, limit)
		}
	}
	return res, opts, format, nil
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, pairwise.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func contentType(format render.Format) string {
	switch format {
	case render.CSV:
		return "text/csv; charset=utf-8"
	case render.JSON:
		return "application/json"
	case render.YAML:
		return "application/yaml"
	}
	return "text/plain; charset=utf-8"
}

func (serv *Server) httpStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	for _, ui := range stat.Collect(stat.All) {
		fmt.Fprintf(w, "%-24v%v\n", ui.Name+":", ui.Value)
	}
}

func (serv *Server) httpLog(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, log.CachedLogOutput())
}

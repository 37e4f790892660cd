// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package appserverimpl

import (
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samber/lo"
	"github.com/spf13/cast"
	"go.uber.org/multierr"

	"github.com/DataDog/appserver-discovery/pkg/appserver/instance"
	"github.com/DataDog/appserver-discovery/pkg/appserver/telemetry"
	"github.com/DataDog/appserver-discovery/pkg/util/log"
)

const (
	readTimeout  = time.Second
	writeTimeout = time.Minute
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func summaries(instances []*instance.Instance) []instance.Summary {
	return lo.Map(instances, func(i *instance.Instance, _ int) instance.Summary { return i.Summary() })
}

type refreshResponse struct {
	Instances []instance.Summary `json:"instances"`
	Errors    []string           `json:"errors,omitempty"`
}

type statusResponse struct {
	Size  int             `json:"size"`
	Stats telemetry.Stats `json:"stats"`
}

func (c *component) serve() error {
	ln, err := net.Listen("tcp", c.addr)
	if err != nil {
		return err
	}

	c.server = &http.Server{
		Handler:           c.router(),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readTimeout,
		WriteTimeout:      writeTimeout,
	}
	go c.server.Serve(ln) //nolint:errcheck
	log.Infof("Application server status API listening on %s", ln.Addr())
	return nil
}

// router returns the status API. Instance ids are paths, clients escape them.
func (c *component) router() *mux.Router {
	r := mux.NewRouter().UseEncodedPath()
	r.HandleFunc("/appservers", c.listHandler).Methods(http.MethodGet)
	r.HandleFunc("/appservers/refresh", c.refreshHandler).Methods(http.MethodPost)
	r.HandleFunc("/appservers/{id}", c.getHandler).Methods(http.MethodGet)
	r.HandleFunc("/appservers/{id}/deep-monitoring", c.deepMonitoringHandler).Methods(http.MethodPut)
	r.HandleFunc("/status", c.statusHandler).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(c.metrics.Registry(), promhttp.HandlerOpts{})).Methods(http.MethodGet)
	return r
}

func (c *component) listHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, summaries(c.Instances()))
}

func (c *component) getHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := instanceID(w, r)
	if !ok {
		return
	}
	inst, ok := c.GetInstance(id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown instance "+id)
		return
	}
	writeJSON(w, http.StatusOK, inst.Summary())
}

func (c *component) refreshHandler(w http.ResponseWriter, r *http.Request) {
	full := false
	if v := r.URL.Query().Get("full"); v != "" {
		var err error
		if full, err = cast.ToBoolE(v); err != nil {
			writeError(w, http.StatusBadRequest, "invalid full parameter")
			return
		}
	}

	if err := c.poll(r.Context(), full); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := refreshResponse{}
	if full {
		refreshErr := c.refresh(r.Context())
		resp.Errors = lo.Map(multierr.Errors(refreshErr), func(err error, _ int) string { return err.Error() })
	}
	resp.Instances = summaries(c.Instances())
	writeJSON(w, http.StatusOK, resp)
}

func (c *component) deepMonitoringHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := instanceID(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	enabled, err := cast.ToBoolE(query.Get("enabled"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid enabled parameter")
		return
	}
	protocol := query.Get("protocol")
	if protocol == "" {
		protocol = instance.ProtocolHTTP
	}
	if protocol != instance.ProtocolHTTP && protocol != instance.ProtocolHTTPS {
		writeError(w, http.StatusBadRequest, "protocol must be HTTP or HTTPS")
		return
	}

	if !c.SetDeepMonitored(id, enabled, protocol) {
		writeError(w, http.StatusNotFound, "unknown instance "+id)
		return
	}
	inst, _ := c.GetInstance(id)
	writeJSON(w, http.StatusOK, inst.Summary())
}

func (c *component) statusHandler(w http.ResponseWriter, _ *http.Request) {
	c.mu.Lock()
	size := c.enum.Size()
	c.mu.Unlock()
	writeJSON(w, http.StatusOK, statusResponse{Size: size, Stats: c.metrics.Stats()})
}

func instanceID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := url.PathUnescape(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid instance id")
		return "", false
	}
	return id, true
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Errorf("Error marshalling response: %v", err) //nolint:errcheck
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body) //nolint:errcheck
}

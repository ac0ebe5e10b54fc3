package handlers

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/marqlabs/marq/internal/httpserver/deps"
)

type componentStatus struct {
	OK     bool   `json:"ok"`
	Mode   string `json:"mode,omitempty"`
	Impact string `json:"impact,omitempty"`
	Error  string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports component status: the document store (required) and
// the enrichment cache (optional, degraded when down).
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		components := map[string]componentStatus{
			"mongo": checkMongo(d),
			"cache": checkCache(d),
		}

		mode := "optimal"
		if !components["mongo"].OK {
			mode = "critical" // no document store, nothing works
		} else if !components["cache"].OK {
			mode = "degraded" // every create pays the remote calls
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Mode:       mode,
			Components: components,
		})
	}
}

func checkMongo(d deps.Deps) componentStatus {
	if d.MongoClient == nil {
		return componentStatus{OK: false, Error: "client not initialized"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.MongoClient.Ping(ctx, readpref.Primary()); err != nil {
		return componentStatus{OK: false, Error: err.Error()}
	}
	return componentStatus{OK: true, Mode: "primary"}
}

func checkCache(d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     true,
			Mode:   "disabled",
			Impact: "enrichment-cache-off",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "enrichment-cache-off",
			Error:  err.Error(),
		}
	}
	return componentStatus{OK: true, Mode: "optimal"}
}

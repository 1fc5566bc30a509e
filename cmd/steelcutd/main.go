// Command steelcutd exposes the cutting-stock optimizer over HTTP: a single
// POST /optimize endpoint that accepts an OptimizeRequest JSON body and
// returns an OptimizeResult JSON body.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/julienschmidt/httprouter"
	"gitlab.com/ironspan/cutstock/modules"
	"gitlab.com/ironspan/cutstock/optimizer"
	"gitlab.com/ironspan/cutstock/persist"
)

func main() {
	addr := flag.String("addr", ":9980", "address to listen on")
	flag.Parse()

	cfg := optimizer.DefaultConfig()
	olog, err := optimizer.NewLogger(os.Stderr, "steelcutd")
	if err != nil {
		log.Fatal(err)
	}

	router := httprouter.New()
	router.POST("/optimize", optimizeHandler(cfg, olog))
	router.GET("/health", healthHandler)

	log.Println("steelcutd listening on", *addr)
	log.Fatal(http.ListenAndServe(*addr, router))
}

func healthHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.WriteHeader(http.StatusOK)
}

func optimizeHandler(cfg optimizer.Config, olog *persist.Logger) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var req modules.OptimizeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "decoding request: "+err.Error(), http.StatusBadRequest)
			return
		}

		result, err := optimizer.Optimize(req, cfg, olog)
		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_ = json.NewEncoder(w).Encode(result)
			return
		}
		_ = json.NewEncoder(w).Encode(result)
	}
}

package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/codegangsta/cli"
	"github.com/fatih/color"
	"github.com/gorilla/mux"

	"github.com/awslabs/aws-iot-rules/stack"
)

// ruleSummary is one entry in the GET /rules listing.
type ruleSummary struct {
	LogicalID string `json:"logicalId"`
	Type      string `json:"type"`
}

func serve(c *cli.Context) {

	s, _, err := loadStack(c)
	if err != nil {
		log.Fatalf("%s\n", err)
	}

	router := newPreviewRouter(s)

	fmt.Printf("\n")
	color.New(color.FgYellow).Printf("Previewing stack %s on http://%s:%s\n", s.Name(), c.String("host"), c.String("port"))
	fmt.Printf("\n")
	fmt.Printf("  GET /template    - the synthesized CloudFormation template\n")
	fmt.Printf("  GET /rules       - the registered topic rules\n")
	fmt.Printf("  GET /rules/{id}  - a single resource record\n")
	fmt.Printf("\n")

	log.Fatal(http.ListenAndServe(c.String("host")+":"+c.String("port"), router))

}

// newPreviewRouter mounts the read-only preview endpoints for a stack.
func newPreviewRouter(s *stack.Stack) *mux.Router {

	router := mux.NewRouter()

	router.HandleFunc("/template", func(w http.ResponseWriter, r *http.Request) {
		data, err := s.Template().JSON()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	}).Methods("GET")

	router.HandleFunc("/rules", func(w http.ResponseWriter, r *http.Request) {
		summaries := []ruleSummary{}
		for _, id := range s.LogicalIDs() {
			res, _ := s.Resource(id)
			summaries = append(summaries, ruleSummary{LogicalID: id, Type: res.Type})
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(summaries)
	}).Methods("GET")

	router.HandleFunc("/rules/{id}", func(w http.ResponseWriter, r *http.Request) {
		res, found := s.Resource(mux.Vars(r)["id"])
		if !found {
			http.Error(w, "no such rule", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(res)
	}).Methods("GET")

	return router

}

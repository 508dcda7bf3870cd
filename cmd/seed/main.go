// Command seed loads a deterministic synthetic catalog into a running
// catalog search service over its HTTP API.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/anshulpatil/catalog-search/internal/seed"
)

func main() {
	addr := flag.String("addr", "http://localhost:8080", "base URL of the catalog search service")
	count := flag.Int("count", 500, "number of products to generate")
	seedVal := flag.Int64("seed", 42, "random seed for deterministic generation")
	flag.Parse()

	products := seed.Generate(*count, *seedVal)
	client := &http.Client{Timeout: 10 * time.Second}

	fmt.Printf("seeding %d products into %s\n", len(products), *addr)

	var created, failed int
	start := time.Now()
	for _, p := range products {
		body, err := json.Marshal(p)
		if err != nil {
			failed++
			continue
		}
		resp, err := client.Post(*addr+"/api/v1/products", "application/json", bytes.NewReader(body))
		if err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "post failed: %v\n", err)
			continue
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		if resp.StatusCode == http.StatusCreated {
			created++
		} else {
			failed++
			fmt.Fprintf(os.Stderr, "unexpected status %d for %q\n", resp.StatusCode, p.Title)
		}
	}

	fmt.Printf("done: %d created, %d failed in %s\n", created, failed, time.Since(start).Round(time.Millisecond))
	if failed > 0 {
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hyperifyio/goask/internal/app"
)

// debugsearch runs one search with the configured provider and prints the
// ranked titles and URLs. Configuration comes from .env and the environment.
func main() {
	_ = app.LoadEnvFiles(".env")
	var cfg app.Config
	app.ApplyEnvToConfig(&cfg)
	app.ApplyDefaults(&cfg)

	q := "What is love?"
	if len(os.Args) > 1 {
		q = os.Args[1]
	}
	prov, err := app.NewSearchProvider(cfg, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "provider:", err)
		os.Exit(2)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()
	res, err := prov.Search(ctx, q)
	fmt.Println("provider:", prov.Name(), "err:", err)
	for i, r := range res.Items {
		fmt.Printf("%d. %s — %s\n", i+1, r.Title, r.URL)
	}
}

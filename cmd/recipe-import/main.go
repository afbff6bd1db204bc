package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/platewise/rts/internal/webimport"
	"github.com/platewise/rts/pkg/rts"
	"github.com/platewise/rts/pkg/rts/config"
	"github.com/platewise/rts/pkg/rts/ingredient"
	"github.com/platewise/rts/pkg/rts/store/sqlite"
)

func main() {
	var (
		url        = flag.String("url", "", "Recipe page URL to import")
		file       = flag.String("file", "", "Local HTML file to import")
		configPath = flag.String("config", "rts.yaml", "Repository config file")
		recipe     = flag.String("recipe", "", "Track the imported lines under this recipe name")
		note       = flag.String("note", "", "Note attached to the tracked revision")
		session    = flag.String("session", "", "Session to record against (default from config)")
	)
	flag.Parse()

	if *url == "" && *file == "" {
		log.Fatal("one of -url or -file required")
	}

	var reader io.ReadCloser
	switch {
	case *url != "":
		resp, err := http.Get(*url)
		if err != nil {
			log.Fatal("fetch:", err)
		}
		if resp.StatusCode != 200 {
			log.Fatalf("fetch: status %d", resp.StatusCode)
		}
		reader = resp.Body
	default:
		f, err := os.Open(*file)
		if err != nil {
			log.Fatal("open:", err)
		}
		reader = f
	}
	defer reader.Close()

	lines, err := webimport.ExtractLines(reader)
	if err != nil {
		log.Fatal("extract:", err)
	}
	if len(lines) == 0 {
		log.Fatal("no candidate ingredient lines found")
	}
	log.Printf("extracted %d candidate lines", len(lines))

	raw := strings.Join(lines, "\n")

	// Without a recipe name, just parse and print.
	if *recipe == "" {
		parser := ingredient.NewParser()
		for ing, err := range parser.Parse(raw) {
			if err != nil {
				fmt.Println("!", err)
				continue
			}
			fmt.Printf("quantity=%-12s unit=%-12s name=%s\n", ing.Quantity, ing.Unit, ing.Name)
		}
		return
	}

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("load config:", err)
	}
	st, err := sqlite.Open(ctx, cfg.Store)
	if err != nil {
		log.Fatal("open store:", err)
	}
	engine := rts.New(rts.Options{Store: st})
	defer engine.Close()

	sess := *session
	if sess == "" {
		sess = cfg.Session
	}

	res, err := engine.Track(ctx, rts.TrackRequest{
		Recipe:  *recipe,
		Session: sess,
		RawText: raw,
		Note:    *note,
	})
	if err != nil {
		log.Fatal("track:", err)
	}
	if res.ParseErr != nil {
		log.Printf("skipped malformed lines: %v", res.ParseErr)
	}
	log.Printf("✓ tracked %s @ %s (%d ingredients)", *recipe, res.Revision.ID, len(res.Revision.Ingredients))
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/platewise/rts/pkg/rts"
	"github.com/platewise/rts/pkg/rts/config"
	"github.com/platewise/rts/pkg/rts/ingredient"
	"github.com/platewise/rts/pkg/rts/store/sqlite"
)

func main() {
	var (
		configPath = flag.String("config", "rts.yaml", "Repository config file")
		initRepo   = flag.Bool("init", false, "Initialize a repository (writes config and database)")
		parseLine  = flag.String("parse", "", "Parse ingredient text and print the result (no repository needed)")
		trackFile  = flag.String("track", "", "Track a recipe file as a new revision")
		recipe     = flag.String("recipe", "", "Recipe name (required with -track, -log)")
		note       = flag.String("note", "", "Note attached to the tracked revision")
		session    = flag.String("session", "", "Session to record against (default from config)")
		newSession = flag.String("new-session", "", "Create a named session")
		showRev    = flag.String("show", "", "Show a revision by ID")
		diffFrom   = flag.String("diff-from", "", "Diff: older revision ID")
		diffTo     = flag.String("diff-to", "", "Diff: newer revision ID")
		logRecipe  = flag.Bool("log", false, "List revisions of -recipe, newest first")
		recipes    = flag.Bool("recipes", false, "List tracked recipes")
		sessions   = flag.Bool("sessions", false, "List sessions")
		limit      = flag.Int("limit", 20, "Max revisions to list")
	)
	flag.Parse()

	// Parsing needs no repository.
	if *parseLine != "" {
		parser := ingredient.NewParser()
		for ing, err := range parser.Parse(*parseLine) {
			if err != nil {
				fmt.Println("!", err)
				continue
			}
			printIngredient(ing)
		}
		return
	}

	ctx := context.Background()

	if *initRepo {
		if _, err := os.Stat(*configPath); err == nil {
			log.Fatalf("%s already exists", *configPath)
		}
		cfg := config.Default()
		if err := config.Save(*configPath, cfg); err != nil {
			log.Fatal("write config:", err)
		}
		st, err := sqlite.Open(ctx, cfg.Store)
		if err != nil {
			log.Fatal("open store:", err)
		}
		st.Close()
		fmt.Printf("Initialized repository: %s (store %s)\n", *configPath, cfg.Store)
		return
	}

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

	switch {
	case *trackFile != "":
		if *recipe == "" {
			log.Fatal("-recipe required with -track")
		}
		raw, err := os.ReadFile(*trackFile)
		if err != nil {
			log.Fatal("read recipe file:", err)
		}
		res, err := engine.Track(ctx, rts.TrackRequest{
			Recipe:  *recipe,
			Session: sess,
			RawText: string(raw),
			Note:    *note,
		})
		if err != nil {
			log.Fatal("track:", err)
		}
		if res.ParseErr != nil {
			log.Printf("skipped malformed lines: %v", res.ParseErr)
		}
		fmt.Printf("Tracked %s @ %s (%d ingredients)\n", *recipe, res.Revision.ID, len(res.Revision.Ingredients))

	case *newSession != "":
		if err := engine.CreateSession(ctx, *newSession); err != nil {
			log.Fatal("create session:", err)
		}
		fmt.Println("Created session", *newSession)

	case *showRev != "":
		rev, err := engine.Show(ctx, *showRev)
		if err != nil {
			log.Fatal("show:", err)
		}
		fmt.Printf("revision %s\nrecipe:  %s\nsession: %s\n", rev.ID, rev.Recipe, rev.Session)
		if rev.Parent != "" {
			fmt.Println("parent: ", rev.Parent)
		}
		if rev.Note != "" {
			fmt.Println("note:   ", rev.Note)
		}
		fmt.Println()
		for _, ing := range rev.Ingredients {
			printIngredient(ing)
		}

	case *diffFrom != "" && *diffTo != "":
		diff, err := engine.DiffRevisions(ctx, *diffFrom, *diffTo)
		if err != nil {
			log.Fatal("diff:", err)
		}
		for _, ing := range diff.Removed {
			fmt.Printf("- %s %s %s\n", ing.Quantity, ing.Unit, ing.Name)
		}
		for _, ing := range diff.Added {
			fmt.Printf("+ %s %s %s\n", ing.Quantity, ing.Unit, ing.Name)
		}

	case *logRecipe:
		if *recipe == "" {
			log.Fatal("-recipe required with -log")
		}
		revs, err := engine.Log(ctx, *recipe, *limit)
		if err != nil {
			log.Fatal("log:", err)
		}
		for _, rev := range revs {
			fmt.Printf("%s  %s  [%s]  %s\n", rev.ID, rev.CreatedAt.Format("2006-01-02 15:04"), rev.Session, rev.Note)
		}

	case *recipes:
		list, err := engine.Recipes(ctx)
		if err != nil {
			log.Fatal("recipes:", err)
		}
		for _, r := range list {
			fmt.Printf("%s  head=%s  %s\n", r.Name, r.Head, r.UpdatedAt.Format("2006-01-02 15:04"))
		}

	case *sessions:
		list, err := engine.Sessions(ctx)
		if err != nil {
			log.Fatal("sessions:", err)
		}
		for _, s := range list {
			fmt.Printf("%s  head=%s\n", s.Name, s.Head)
		}

	default:
		flag.Usage()
		os.Exit(2)
	}
}

func printIngredient(ing ingredient.Ingredient) {
	fmt.Printf("quantity=%-12s unit=%-12s name=%s\n", ing.Quantity, ing.Unit, ing.Name)
}

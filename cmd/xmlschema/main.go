// Command xmlschema mines one or more XML documents into struct/enum
// declarations (original_source/main.cpp). Its default front end reads
// a newline-separated file list from standard input and stops at the
// first document producing errors (spec.md §6); -watch substitutes an
// fsnotify-backed directory watch as an alternate file-discovery front
// end (SPEC_FULL.md §5).
package main

import (
	"bufio"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/xmlpull/xmlschema/config"
	"github.com/xmlpull/xmlschema/schema"
	"github.com/xmlpull/xmlschema/token"
	"github.com/xmlpull/xmlschema/xmlreader"
)

func main() {
	jsonOut := flag.Bool("json", false, "render declarations as JSON instead of text")
	configPath := flag.String("config", "", "YAML file overriding the compiled-in limits")
	watchDir := flag.String("watch", "", "watch a directory for newly created .xml files instead of reading a file list from stdin")
	flag.Parse()

	limits, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	interner := token.New()
	miner := schema.New(interner)

	var nfiles, totalErrors int

	processFile := func(fname string) (keepGoing bool) {
		f, err := os.Open(fname)
		if err != nil {
			totalErrors++
			log.Printf("file %q not found", fname)
			return false
		}
		defer f.Close()
		nfiles++

		r := xmlreader.New(f, fname, interner, limits)
		errs := miner.MineDocument(r)
		totalErrors += errs
		return errs == 0
	}

	if *watchDir != "" {
		watchAndMine(*watchDir, processFile)
	} else {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			fname := scanner.Text()
			if fname == "" {
				continue
			}
			if !processFile(fname) {
				break
			}
		}
	}

	decls := miner.Classify()
	if *jsonOut {
		if err := miner.RenderJSON(os.Stdout, decls); err != nil {
			log.Fatal(err)
		}
	} else {
		miner.Render(os.Stdout, decls)
	}

	runID := uuid.New()
	stats := interner.Stats()
	log.Printf("run %s: processed %d files", runID, nfiles)
	log.Printf("finished with %d errors", totalErrors)
	log.Printf("symbols_size = %d", stats.Symbols)
	if stats.Fill > 0 {
		log.Printf("hash_size = %d", stats.TableSize)
		log.Printf("hash_fill = %d%%", 100*stats.Fill/stats.TableSize)
		log.Printf("hash_avg_case = %d", stats.AvgChain)
		log.Printf("hash_worst_case = %d", stats.WorstChain)
	}

	if totalErrors != 0 {
		os.Exit(1)
	}
}

// watchAndMine feeds newly created .xml files in dir to process as
// they appear, stopping early the same way the stdin-list front end
// does: the first file that reports errors ends the run.
func watchAndMine(dir string, process func(string) bool) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Fatal(err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		log.Fatal(err)
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Create == 0 || filepath.Ext(event.Name) != ".xml" {
				continue
			}
			if !process(event.Name) {
				return
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watch error: %v", err)
		}
	}
}

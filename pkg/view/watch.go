package view

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the templates whenever a file in the template
// directory changes. It blocks until the context is cancelled and is
// a no-op for renderers backed by embedded templates.
func (r *Renderer) Watch(ctx context.Context) error {
	if r.dir == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(r.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", r.dir, err)
	}

	log.Printf("Watching %s for template changes", r.dir)

	// Editors fire several events per save; debounce a little.
	var pending bool
	debounce := time.NewTimer(0)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(event.Name, ".html") {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !pending {
				pending = true
				debounce.Reset(100 * time.Millisecond)
			}
		case <-debounce.C:
			pending = false
			if err := r.reload(); err != nil {
				log.Printf("Template reload failed: %v", err)
				continue
			}
			log.Println("Templates reloaded")
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Template watcher error: %v", err)
		}
	}
}

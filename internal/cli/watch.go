package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/zongruxie4/amplication/schema"
)

// WatchCmd returns the command regenerating the output when an entity
// definition file changes.
func WatchCmd(f *flags) *cobra.Command {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate the output files when the entity definitions change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := f.env(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return e.watch(ctx, cmd.OutOrStdout(), debounce)
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", 200*time.Millisecond, "delay between a change and the regeneration")
	return cmd
}

// watch generates the output, then again after every change of the schema
// files until ctx is done. Generation errors are printed and do not stop
// the watch.
func (e *env) watch(ctx context.Context, w io.Writer, debounce time.Duration) error {
	if e.project.Store != nil {
		return errors.New("watch requires schema files")
	}
	if len(e.project.Schema) == 0 {
		return errors.New("no entity definitions: set --schema")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	var (
		dirs  = make(map[string]bool)
		files = make(map[string]bool)
	)
	for _, path := range e.project.Schema {
		path = filepath.Clean(path)
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		dir := path
		if info.IsDir() {
			dirs[path] = true
		} else {
			// Editors replace files on save: the directory is watched.
			dir = filepath.Dir(path)
			files[path] = true
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	relevant := func(name string) bool {
		name = filepath.Clean(name)
		return schema.IsDefinitionFile(name) && (dirs[filepath.Dir(name)] || files[name])
	}

	run := func() {
		if err := e.generate(ctx, w); err != nil && ctx.Err() == nil {
			fmt.Fprintf(w, "%s %v\n", color.New(color.FgRed).Sprint("ERROR "), err)
		}
	}
	run()
	var timer <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(ev.Name) {
				continue
			}
			e.cfg.Logger.Debug("schema changed", "file", ev.Name, "op", ev.Op.String())
			timer = time.After(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch: %w", err)
		case <-timer:
			timer = nil
			run()
		}
	}
}

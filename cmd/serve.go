package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/fakeyudi/lapwing/internal/pomodoro"
	"github.com/fakeyudi/lapwing/internal/task"
	"github.com/fakeyudi/lapwing/internal/watcher"
	"github.com/fakeyudi/lapwing/internal/web"
)

var (
	serveAddr    string
	serveDataDir string
	serveWatch   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web UI and JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; real environment variables win either way.
		_ = godotenv.Load()

		c := GetConfig()
		if v := os.Getenv("LAPWING_ADDR"); v != "" {
			c.ListenAddr = v
		}
		if v := os.Getenv("LAPWING_DATA_DIR"); v != "" {
			c.DataDir = v
		}
		if serveAddr != "" {
			c.ListenAddr = serveAddr
		}
		if serveDataDir != "" {
			c.DataDir = serveDataDir
		}

		dir := c.DataDir
		if dir == "" {
			var err error
			dir, err = task.DataDir()
			if err != nil {
				return err
			}
		}

		store, err := task.NewDiskStore(dir)
		if err != nil {
			return err
		}
		board, err := store.Load()
		if err != nil {
			if !errors.Is(err, task.ErrNoBoard) {
				return err
			}
			board = task.NewBoard()
		}
		best, err := task.NewBestLog(dir)
		if err != nil {
			return err
		}
		favs, err := task.NewFavorites(dir)
		if err != nil {
			return err
		}
		timer, err := pomodoro.New(c.WorkMinutes, c.RestMinutes)
		if err != nil {
			return err
		}

		srv := web.NewServer(web.Deps{
			Config: c,
			Board:  board,
			Store:  store,
			Best:   best,
			Favs:   favs,
			Timer:  timer,
		})

		// Mount the HTML UI when the assets are alongside the binary;
		// without them the JSON API still works.
		if _, statErr := os.Stat("web/templates"); statErr == nil {
			srv.MountUI("web/templates/*", "web/static")
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		// Pick up edits other lapwing commands write while we run.
		if serveWatch {
			go func() {
				err := watcher.Watch(ctx, dir, func(name string) {
					if name != "tasks.json" {
						return
					}
					if b, loadErr := store.Load(); loadErr == nil {
						srv.SetBoard(b)
					}
				})
				if err != nil {
					fmt.Fprintf(os.Stderr, "warning: file watcher stopped: %v\n", err)
				}
			}()
		}

		httpSrv := &http.Server{Addr: c.ListenAddr, Handler: srv}
		errCh := make(chan error, 1)
		go func() {
			errCh <- httpSrv.ListenAndServe()
		}()

		fmt.Printf("lapwing listening on http://%s (data in %s)\n", c.ListenAddr, dir)

		select {
		case err := <-errCh:
			return err
		case <-sigCh:
			fmt.Println("shutting down")
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			return httpSrv.Shutdown(shutdownCtx)
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config and LAPWING_ADDR)")
	serveCmd.Flags().StringVar(&serveDataDir, "data-dir", "", "data directory (overrides config and LAPWING_DATA_DIR)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", true, "reload the board when another process edits tasks.json")
	rootCmd.AddCommand(serveCmd)
}

package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/konverty/backend/internal/router"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	var port, dataDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := loadConfig()
			if err != nil {
				return err
			}

			if port != "" {
				c.Port = port
			}

			if dataDir != "" {
				c.DataDir = dataDir
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			listener, err := net.Listen("tcp", ":"+c.Port)
			if err != nil {
				return err
			}

			return serve(ctx, c, listener)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "port to listen on, overrides PORT")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "directory of the database, overrides DATA_DIR")

	return cmd
}

// serve runs the API on the listener until the context is done.
func serve(ctx context.Context, c config, listener net.Listener) error {
	err := connect(c.DataDir)
	if err != nil {
		return err
	}
	defer disconnect()

	r, teardown, err := router.Config(c.APIURL)
	if err != nil {
		return err
	}
	defer teardown()

	router.AttachRoutes(r.Group(c.APIURL.Path))

	server := &http.Server{
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("address", listener.Addr().String()).Msg("Server started")

		err := server.Serve(listener)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

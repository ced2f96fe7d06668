package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mgpai22/subtrack/internal/media"
	"github.com/mgpai22/subtrack/internal/server"
	"github.com/mgpai22/subtrack/internal/subtitle"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve [subtitle_file]",
	Short: "Serve an interactive timeline over a websocket",
	Long: `Load a subtitle file into the timeline engine and serve it to browser
front ends. Clients send input events as JSON over /ws and receive frames,
seeks, previews and committed segments back. GET /api/segments returns the
committed segments.

On SIGINT or SIGTERM the server stops and, when an output path is given,
writes the committed segments there.

Examples:
  subtrack serve talk.srt --media talk.mp4
  subtrack serve talk.srt --addr :9000 -o talk.edited.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Listen address (default from config, :8080)")
	addMediaFlags(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	subsPath := args[0]
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = cfg.Server.Addr
	}
	outputPath, _ := cmd.Flags().GetString("output")

	segments, err := subtitle.ReadFile(subsPath)
	if err != nil {
		return fmt.Errorf("failed to read subtitles: %w", err)
	}
	duration, err := mediaDuration(ctx, cmd, media.NewFFprobe(cfg.Media.ProbeTimeout))
	if err != nil {
		return err
	}

	srv := server.New(
		segments,
		engineOptions(),
		cfg.Server.FrameInterval,
		logger,
	)
	httpSrv := &http.Server{Addr: addr, Handler: srv.Handler()}

	loopDone := make(chan error, 1)
	go func() { loopDone <- srv.Run(ctx) }()
	if duration > 0 {
		srv.SyncPlayback(0, duration)
	}

	listenErr := make(chan error, 1)
	go func() {
		logger.Infow("Serving timeline",
			"addr", addr,
			"websocket", "ws://localhost"+addr+"/ws",
			"segments", len(segments),
		)
		err := httpSrv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
		close(listenErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-listenErr:
		if err != nil {
			stop()
			<-loopDone
			return fmt.Errorf("server failed: %w", err)
		}
	}

	logger.Infow("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		shutdownTimeout,
	)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Warnw("HTTP shutdown incomplete", "error", err)
	}
	<-loopDone

	if outputPath == "" {
		return nil
	}
	committed := srv.Segments()
	if err := subtitle.WriteFile(outputPath, committed); err != nil {
		return fmt.Errorf("failed to write subtitles: %w", err)
	}
	fmt.Fprintf(
		cmd.OutOrStdout(),
		"Committed segments written: %s (%d segments)\n",
		outputPath,
		len(committed),
	)
	return nil
}

// Command httpdump accepts TCP connections and prints the event stream a
// Parser produces for each pipelined HTTP/1.1 message, one structured log
// line per event. It is a worked example of driving httpparse.Feed from a
// real socket, not part of the core parser package.
package main

import (
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"httpparse"
)

type serveConfig struct {
	Addr           string
	MetricsAddr    string
	Mode           string
	MaxLineLength  int
	MaxEmptyLines  int
	PreviousMethod string
}

var cfg serveConfig

var rootCmd = &cobra.Command{
	Use:   "httpdump",
	Short: "Accept TCP connections and print the parsed HTTP/1.1 event stream",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := zap.NewProduction()
		if err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
		defer logger.Sync()

		mode, err := parseMode(cfg.Mode)
		if err != nil {
			return err
		}
		opts := httpparse.Options{
			Mode:           mode,
			MaxLineLength:  cfg.MaxLineLength,
			MaxEmptyLines:  cfg.MaxEmptyLines,
			PreviousMethod: cfg.PreviousMethod,
		}

		if cfg.MetricsAddr != "" {
			go serveMetrics(cfg.MetricsAddr, logger)
		}

		l, err := net.Listen("tcp", cfg.Addr)
		if err != nil {
			return fmt.Errorf("listen on %s: %w", cfg.Addr, err)
		}
		logger.Info("listening", zap.String("addr", cfg.Addr))

		for {
			conn, err := l.Accept()
			if err != nil {
				logger.Warn("accept error", zap.Error(err))
				continue
			}
			go handleConn(conn, logger, opts)
		}
	},
}

func parseMode(s string) (httpparse.Mode, error) {
	switch s {
	case "", "auto":
		return httpparse.ModeAuto, nil
	case "request":
		return httpparse.ModeRequest, nil
	case "response":
		return httpparse.ModeResponse, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (want auto, request, or response)", s)
	}
}

func serveMetrics(addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Warn("metrics server stopped", zap.Error(err))
	}
}

func init() {
	rootCmd.Flags().StringVar(&cfg.Addr, "addr", ":8080", "TCP address to listen on")
	rootCmd.Flags().StringVar(&cfg.MetricsAddr, "metrics-addr", ":9090", "Address to serve Prometheus metrics on (empty disables it)")
	rootCmd.Flags().StringVar(&cfg.Mode, "mode", "auto", "Parser mode: auto, request, or response")
	rootCmd.Flags().IntVar(&cfg.MaxLineLength, "max-line-length", 0, "Max start-line length (0 uses the parser default)")
	rootCmd.Flags().IntVar(&cfg.MaxEmptyLines, "max-empty-lines", 0, "Max tolerated leading empty lines (0 uses the parser default)")
	rootCmd.Flags().StringVar(&cfg.PreviousMethod, "previous-method", "", "Method of the request a response-mode stream answers (enables HEAD/CONNECT body short-circuits)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

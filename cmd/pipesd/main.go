// Command pipesd runs a small demonstration graph against a synthetic
// audio clock — a time.Ticker standing in for a real device callback —
// and exposes its metrics over HTTP. It exists to give the library a
// runnable host during development; real hosts wire pipes.Client into
// an actual device callback instead of a ticker.
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jaudiolibs/pipes"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pipesd",
		Short: "Run a demonstration pipe graph against a synthetic audio clock",
		RunE:  runDemo,
	}

	cmd.Flags().Float64("sample-rate", 48000, "sample rate in Hz")
	cmd.Flags().Int("block-size", 256, "internal processing block size, in samples")
	cmd.Flags().String("metrics-addr", ":9090", "address to serve /metrics on")
	cmd.Flags().Bool("debug", false, "enable debug logging")

	_ = viper.BindPFlags(cmd.Flags())
	viper.SetEnvPrefix("PIPESD")
	viper.AutomaticEnv()

	return cmd
}

func runDemo(cmd *cobra.Command, args []string) error {
	sampleRate := viper.GetFloat64("sample-rate")
	blockSize := viper.GetInt("block-size")
	metricsAddr := viper.GetString("metrics-addr")

	var logger *zap.Logger
	if viper.GetBool("debug") {
		logger = pipes.NewDevelopmentLogger()
	} else {
		logger = zap.NewNop()
	}
	defer logger.Sync()

	registry := prometheus.NewRegistry()
	metrics := pipes.NewMetrics(registry, "pipesd")

	http.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	go func() {
		logger.Info("serving metrics", zap.String("addr", metricsAddr))
		if err := http.ListenAndServe(metricsAddr, nil); err != nil {
			logger.Error("metrics server stopped", zap.Error(err))
		}
	}()

	graph := pipes.NewGraph(1, 1)
	if err := graph.Output(0).AddSource(&graph.Input(0).Pipe); err != nil {
		return fmt.Errorf("wiring demo graph: %w", err)
	}

	client := pipes.NewClient(blockSize, 1, 1)
	client.SetLogger(logger)
	client.SetMetrics(metrics)
	client.RegisterListener(graph)
	if err := graph.Input(0).AddSource(client.InputPipe(0)); err != nil {
		return fmt.Errorf("wiring demo graph input: %w", err)
	}
	if err := client.OutputPipe(0).AddSource(&graph.Output(0).Pipe); err != nil {
		return fmt.Errorf("wiring demo graph output: %w", err)
	}

	if err := client.Configure(pipes.Config{
		SampleRate:      sampleRate,
		BufferSize:      blockSize,
		InputChannels:   1,
		OutputChannels:  1,
		FixedBufferSize: true,
	}); err != nil {
		return fmt.Errorf("configuring demo graph: %w", err)
	}
	defer client.Shutdown()

	period := time.Duration(float64(blockSize) / sampleRate * float64(time.Second))
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	logger.Info("demo graph running", zap.Float64("sample_rate", sampleRate), zap.Int("block_size", blockSize))

	silence := make([]float32, blockSize)
	output := make([]float32, blockSize)
	inputs := [][]float32{silence}
	outputs := [][]float32{output}

	var t int64
	for range ticker.C {
		client.Process(t, inputs, outputs, blockSize)
		t += int64(period)
	}
	return nil
}

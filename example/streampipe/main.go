package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/kelseyhightower/envconfig"
	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/rodrigorc/cancel-rw/cancelrw"
	"github.com/rodrigorc/cancel-rw/cancelrw/zapadapters"
)

// Config holds the pipeline configuration, loaded from STREAMPIPE_* environment variables.
type Config struct {
	OutputPath      string        `envconfig:"OUTPUT_PATH" default:"events.ndjson.gz"`
	EventsPerSecond int           `envconfig:"EVENTS_PER_SECOND" default:"50"`
	Burst           int           `envconfig:"BURST" default:"10"`
	Duration        time.Duration `envconfig:"DURATION" default:"0"`
}

// event is one record of the newline-delimited JSON stream.
type event struct {
	ID       string    `json:"id"`
	Sequence int       `json:"sequence"`
	Emitted  time.Time `json:"emitted"`
}

var json = jsoniter.ConfigFastest

func main() {
	var cfg Config
	if err := envconfig.Process("streampipe", &cfg); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	duration := flag.Duration("duration", cfg.Duration, "Stop the pipeline after this long (0 runs until interrupted)")
	output := flag.String("output", cfg.OutputPath, "Path of the compressed event stream")
	flag.Parse()

	zapLogger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()
	sugar := zapLogger.Sugar()

	// One context covers both stop conditions: signals and the deadline.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if *duration > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, *duration)
		defer cancelTimeout()
	}

	// The context feeds the token, and the token stops every gated writer.
	token := cancelrw.New(cancelrw.WithLogger(zapadapters.NewZapLogger(zapLogger)))
	stop := cancelrw.LinkContext(ctx, token)
	defer stop()

	written, err := run(ctx, token, sugar, *output, cfg)

	switch {
	case err == nil,
		errors.Is(err, cancelrw.ErrCancelled),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		sugar.Infow("pipeline stopped", "output", *output, "uncompressed_bytes", written)
	default:
		sugar.Fatalw("pipeline failed", "error", err)
	}
}

// run drains the producer through a gated copy into the compressed output
// file. The returned byte count is the uncompressed stream size.
func run(ctx context.Context, token cancelrw.Token, sugar *zap.SugaredLogger, output string, cfg Config) (int64, error) {
	out, err := os.Create(output)
	if err != nil {
		return 0, err
	}
	defer func() { _ = out.Close() }()

	pr, pw := io.Pipe()
	go produce(ctx, token, sugar, pw, cfg)

	// If the copy stops first, closing the read side unblocks the producer.
	defer func() { _ = pr.Close() }()

	gz := gzip.NewWriter(out)
	written, err := cancelrw.Copy(ctx, token, cancelrw.NewWriter(token, gz), pr)

	// The gzip trailer goes to the file directly, past the gated writer, so
	// a cancelled stream still ends as a valid gzip file.
	if closeErr := gz.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	return written, err
}

// produce emits rate-limited events into the pipe until its gated writer
// refuses or the context ends. The guard ties the token to this goroutine:
// if production stops for any reason, the draining side stops too.
func produce(ctx context.Context, token cancelrw.Token, sugar *zap.SugaredLogger, pw *io.PipeWriter, cfg Config) {
	guard := cancelrw.NewGuard(token)
	defer func() { _ = guard.Close() }()

	sink := cancelrw.NewWriter(token, pw)
	limiter := rate.NewLimiter(rate.Limit(cfg.EventsPerSecond), cfg.Burst)

	var produceErr error
	sequence := 0

	for {
		if produceErr = limiter.Wait(ctx); produceErr != nil {
			break
		}

		payload, marshalErr := json.Marshal(event{
			ID:       uuid.NewString(),
			Sequence: sequence,
			Emitted:  time.Now().UTC(),
		})
		if marshalErr != nil {
			produceErr = marshalErr
			break
		}

		if _, produceErr = sink.Write(append(payload, '\n')); produceErr != nil {
			break
		}

		sequence++
	}

	// Hand the stop reason to the reading side of the pipe.
	_ = pw.CloseWithError(produceErr)

	sugar.Infow("producer stopped", "events", sequence, "reason", produceErr)
}

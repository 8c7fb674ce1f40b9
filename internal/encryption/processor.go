package encryption

import (
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/idelchi/wcrypt/internal/config"
	"github.com/idelchi/wcrypt/internal/fileutil"
)

// Processor runs jobs through a shared Engine, several at a time.
// Each job owns its files and its key buffer.
type Processor struct {
	// cfg contains runtime configuration options
	cfg *config.Config

	// engine performs the transform
	engine *Engine

	// results channels processing outcomes to the printer goroutine
	results chan Result
}

// NewProcessor creates a Processor with an engine built from the configuration.
func NewProcessor(cfg *config.Config) (*Processor, error) {
	engine, err := New(Config{
		MaxChunkWords: cfg.ChunkWords,
		Rotation:      cfg.Rotation,
		MaxKeyBytes:   cfg.MaxKeyBytes,
	})
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}

	return &Processor{cfg: cfg, engine: engine}, nil
}

// Process runs all jobs with at most cfg.Parallel in flight.
// A failed checksum is counted in Summary.Corrupt and is not an error.
//
//nolint:cyclop,gocognit
func (p *Processor) Process(jobs []Job) (Summary, error) {
	var summary Summary

	p.results = make(chan Result, len(jobs))

	group := errgroup.Group{}
	group.SetLimit(p.cfg.Parallel)

	done := make(chan struct{})

	go func() {
		defer close(done)

		for result := range p.results {
			input := result.Job.Input

			if result.Error != nil {
				summary.Errored++

				fmt.Fprintf(os.Stderr, "Error processing %q: %v\n", input, result.Error)

				continue
			}

			summary.Processed++
			summary.DataSize += result.Size
			summary.OutputSize += result.OutputSize

			if !result.Intact {
				summary.Corrupt++

				fmt.Fprintf(os.Stderr, "Checksum mismatch %q -> %q: output may be corrupt\n", input, result.Job.Output)
			} else if !p.cfg.Quiet {
				fmt.Printf("Processed %q -> %q\n", input, result.Job.Output) //nolint:forbidigo
			}

			if p.cfg.Delete && result.Intact {
				if err := os.Remove(input); err != nil {
					fmt.Fprintf(os.Stderr, "Error deleting %q: %v\n", input, err)
				} else if !p.cfg.Quiet {
					fmt.Printf("Deleted %q\n", input) //nolint:forbidigo
				}
			}
		}
	}()

	for _, job := range jobs {
		group.Go(func() error {
			result := p.processJob(job)
			p.results <- result

			return result.Error
		})
	}

	err := group.Wait()

	close(p.results)

	<-done // Wait for printer to finish

	if err != nil {
		return summary, fmt.Errorf("processing files: %w", err)
	}

	return summary, nil
}

// processJob runs a single job and finalizes its output.
func (p *Processor) processJob(job Job) Result {
	info, err := os.Stat(job.Input)
	if err != nil {
		return Result{Job: job, Error: &IOError{Role: RoleData, Op: "stat", Path: job.Input, Err: err}}
	}

	size, intact, err := p.engine.Run(job.Direction, job.Input, job.Key, job.Output)
	if err != nil {
		return Result{Job: job, Error: fmt.Errorf("%sing file: %w", job.Direction, err)}
	}

	outSize, err := fileutil.FinalizeOutput(job.Output, p.cfg.PreserveTimestamps, info.ModTime())
	if err != nil {
		return Result{Job: job, Error: fmt.Errorf("finalizing output: %w", err)}
	}

	return Result{Job: job, Size: size, OutputSize: outSize, Intact: intact}
}

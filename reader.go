package main

import (
	"os"
	"runtime"
	"sync"

	"go.uber.org/zap"
)

// Reader reads and decodes the included candidates with a bounded worker
// pool. Results land in an index-addressed slice slot, so the merged output
// preserves traversal order no matter which worker finished first.
type Reader struct {
	cfg      *Config
	det      *Detector
	tok      Tokenizer
	log      *zap.Logger
	progress func(ReadResult) // optional, called once per result, serialized
}

func NewReader(cfg *Config, tok Tokenizer, logger *zap.Logger) *Reader {
	if tok == nil {
		tok = noopTokenizer{}
	}
	return &Reader{
		cfg: cfg,
		det: NewDetector(cfg),
		tok: tok,
		log: logger,
	}
}

// OnResult installs a progress callback. It runs under the reader's lock, in
// completion order; the final result slice still follows input order.
func (r *Reader) OnResult(fn func(ReadResult)) { r.progress = fn }

// ReadAll processes every IncludeFile candidate and returns exactly one
// ReadResult per included file, ordered as the input sequence. Per-file
// failures never abort the batch; they are recorded in the result and the
// stats.
func (r *Reader) ReadAll(candidates []*FileCandidate, stats *RunStats) []ReadResult {
	var included []*FileCandidate
	for _, c := range candidates {
		if c.Decision == IncludeFile {
			included = append(included, c)
		}
	}
	results := make([]ReadResult, len(included))
	if len(included) == 0 {
		return results
	}

	workers := r.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(included) {
		workers = len(included)
	}
	r.log.Debug("starting read pool", zap.Int("workers", workers), zap.Int("files", len(included)))

	jobs := make(chan int, len(included))
	var wg sync.WaitGroup
	var mu sync.Mutex // guards stats and the progress callback

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				res := r.readOne(included[idx])
				results[idx] = res

				mu.Lock()
				switch res.Kind {
				case ReadOK:
					stats.Processed++
					stats.TotalTokens += res.Tokens
				case ReadTooLarge:
					stats.SkippedSize++
				case ReadDecodeFailure:
					stats.Binary++
				case ReadIOError:
					stats.Errors++
				}
				if r.progress != nil {
					r.progress(res)
				}
				mu.Unlock()
			}
		}()
	}

	for i := range included {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

// readOne produces the ReadResult for a single candidate. The size ceiling
// is re-checked against the actual byte count: a file can grow between the
// traversal stat and the read.
func (r *Reader) readOne(c *FileCandidate) ReadResult {
	res := ReadResult{Candidate: c}

	raw, err := os.ReadFile(c.AbsPath)
	if err != nil {
		r.log.Debug("read failed", zap.String("path", c.AbsPath), zap.Error(err))
		res.Kind = ReadIOError
		res.Err = err
		return res
	}
	if int64(len(raw)) > r.cfg.MaxFileSize {
		res.Kind = ReadTooLarge
		return res
	}

	text, enc, ok := r.det.Decode(raw)
	if !ok {
		res.Kind = ReadDecodeFailure
		return res
	}

	res.Text = text
	res.Encoding = enc
	res.Tokens = r.tok.CountTokens(text)
	return res
}

package rag

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/hransun/coursechat"
	"golang.org/x/sync/errgroup"
)

// Ingestor loads course documents into the vector store.
type Ingestor struct {
	Store        coursechat.VectorStore
	Chunker      *coursechat.Chunker
	TokenCounter coursechat.TokenCounter
	Concurrency  int
}

// Result holds the outcome of a directory ingestion.
type Result struct {
	Courses int
	Chunks  int
	Skipped int
	Failed  int
	Bytes   int
	Tokens  int
}

// ProgressEvent reports progress during ingestion.
type ProgressEvent struct {
	Type  ProgressType
	Path  string
	Title string
	Error error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressAdded ProgressType = iota
	ProgressSkipped
	ProgressFailed
)

// ProgressFunc is a callback for reporting ingestion progress.
type ProgressFunc func(event ProgressEvent)

// IngestDocument parses, chunks, and indexes one raw course document. The
// returned bool reports whether the course was added; re-ingesting an
// already-present title is a no-op.
func (ing *Ingestor) IngestDocument(ctx context.Context, text string) (*coursechat.Course, bool, error) {
	course, _, added, err := ing.ingestText(ctx, text)
	if err != nil {
		return nil, false, err
	}
	return course, added, nil
}

// ingestText parses, chunks, and indexes one raw document.
func (ing *Ingestor) ingestText(ctx context.Context, text string) (*coursechat.Course, []coursechat.CourseChunk, bool, error) {
	parsed, err := coursechat.ParseCourseDocument(text)
	if err != nil {
		return nil, nil, false, err
	}

	chunker := ing.Chunker
	if chunker == nil {
		chunker = coursechat.NewChunker(coursechat.DefaultChunkSize, coursechat.DefaultChunkOverlap)
	}
	chunks := chunker.ChunkCourse(parsed)

	added, err := ing.Store.AddCourse(ctx, parsed.Course, chunks)
	if err != nil {
		return nil, nil, false, err
	}

	return parsed.Course, chunks, added, nil
}

// IngestDirectory ingests every .txt file in dir. Malformed documents are
// reported and skipped; ingestion continues with the remaining files.
func (ing *Ingestor) IngestDirectory(ctx context.Context, dir string, progress ProgressFunc) (*Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, coursechat.Errorf(coursechat.ENOTFOUND, "cannot read document directory %q: %v", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".txt") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)

	concurrency := ing.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	var mu sync.Mutex
	result := &Result{}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, path := range paths {
		g.Go(func() error {
			outcome, err := ing.ingestFile(gctx, path)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				result.Failed++
				if progress != nil {
					progress(ProgressEvent{Type: ProgressFailed, Path: path, Error: err})
				}
				// Skip-and-continue: a bad document never aborts the batch.
				return nil
			}

			if !outcome.added {
				result.Skipped++
				if progress != nil {
					progress(ProgressEvent{Type: ProgressSkipped, Path: path, Title: outcome.title})
				}
				return nil
			}

			result.Courses++
			result.Chunks += outcome.chunks
			result.Bytes += outcome.bytes
			result.Tokens += outcome.tokens
			if progress != nil {
				progress(ProgressEvent{Type: ProgressAdded, Path: path, Title: outcome.title})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}

// fileOutcome holds the stats of one ingested file.
type fileOutcome struct {
	title  string
	added  bool
	chunks int
	bytes  int
	tokens int
}

func (ing *Ingestor) ingestFile(ctx context.Context, path string) (*fileOutcome, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, coursechat.Errorf(coursechat.EINTERNAL, "read %q: %v", path, err)
	}

	course, chunks, added, err := ing.ingestText(ctx, string(raw))
	if err != nil {
		return nil, err
	}

	outcome := &fileOutcome{title: course.Title, added: added, chunks: len(chunks), bytes: len(raw)}

	// Token counts are statistics only; counting failures don't fail the file.
	if added && ing.TokenCounter != nil {
		for _, chunk := range chunks {
			n, err := ing.TokenCounter.CountTokens(ctx, chunk.Content)
			if err != nil {
				break
			}
			outcome.tokens += n
		}
	}

	return outcome, nil
}

package main

import (
	"context"
	"fmt"
	"io"
	stdslog "log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/hransun/coursechat"
	"github.com/hransun/coursechat/gemini"
	"github.com/hransun/coursechat/mem"
	"github.com/hransun/coursechat/rag"
	ccslog "github.com/hransun/coursechat/slog"
	"github.com/hransun/coursechat/sqlite"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database backing the vector store.
	DB *sqlite.DB

	// Services for end-to-end testing.
	Store    coursechat.VectorStore
	Sessions coursechat.SessionStore
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("coursechat"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'coursechat --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd = strings.Fields(kongCtx.Command())[0]

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set COURSECHAT_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()
	deps.DB = m.DB

	// Every command except "courses" talks to the Gemini API.
	var client *genai.Client
	if cmd != "courses" {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
	}

	var embedder coursechat.Embedder
	if client != nil {
		embedder = gemini.NewEmbedder(client, gemini.DefaultEmbeddingModel, embedRequestsPerSecond)
	}

	m.Store = sqlite.NewStore(m.DB, embedder)
	deps.Store = m.Store
	if cli.Verbose {
		logger := stdslog.New(stdslog.NewTextHandler(stderr, nil))
		deps.Store = ccslog.NewLoggingStore(m.Store, logger)
	}

	m.Sessions = mem.NewSessionStore(coursechat.DefaultMaxHistory)
	deps.Sessions = m.Sessions

	// Wire command-specific dependencies based on command
	if cmd == "ingest" {
		tokenCounter, err := gemini.NewTokenCounter(tokenizerModel)
		if err != nil {
			return fmt.Errorf("failed to create token counter: %w", err)
		}

		deps.Ingestor = &rag.Ingestor{
			Store:        deps.Store,
			Chunker:      coursechat.NewChunker(cli.Ingest.ChunkSize, cli.Ingest.ChunkOverlap),
			TokenCounter: tokenCounter,
			Concurrency:  cli.Ingest.Concurrency,
		}
	}

	if cmd == "ask" || cmd == "chat" {
		tools := coursechat.NewToolRegistry(
			coursechat.NewCourseSearchTool(deps.Store, coursechat.DefaultMaxResults),
			coursechat.NewCourseOutlineTool(deps.Store),
		)

		deps.System = &rag.System{
			LLM:      gemini.NewChatClient(client, gemini.DefaultModel),
			Tools:    tools,
			Sessions: m.Sessions,
		}
	}

	return kongCtx.Run(deps)
}

// tokenizerModel is used for token counting. Using gemini-2.5-flash until
// gemini-3-flash-preview is supported by google.golang.org/genai/tokenizer.
const tokenizerModel = "gemini-2.5-flash"

// embedRequestsPerSecond throttles embedding calls during bulk ingestion.
const embedRequestsPerSecond = 5.0

func defaultDBPath() string {
	if path := os.Getenv("COURSECHAT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "coursechat.db"
	}
	dir := filepath.Join(home, ".coursechat")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "coursechat.db")
}

package main

import (
	"context"
	"io"

	"github.com/hransun/coursechat"
	"github.com/hransun/coursechat/rag"
	"github.com/hransun/coursechat/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Stdin    io.Reader
	DB       *sqlite.DB
	Store    coursechat.VectorStore
	Sessions coursechat.SessionStore
	System   *rag.System
	Ingestor *rag.Ingestor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log vector store operations"`

	Ingest  IngestCmd  `cmd:"" help:"Ingest course documents from a directory"`
	Ask     AskCmd     `cmd:"" help:"Ask a one-off question about the courses"`
	Chat    ChatCmd    `cmd:"" help:"Start an interactive chat session"`
	Courses CoursesCmd `cmd:"" help:"Show indexed course statistics"`
}

// IngestCmd is the "ingest" subcommand.
type IngestCmd struct {
	Dir          string `arg:"" help:"Directory of course documents (.txt)"`
	ChunkSize    int    `default:"800" help:"Maximum chunk size in characters"`
	ChunkOverlap int    `default:"100" help:"Overlap between chunks in characters"`
	Concurrency  int    `short:"c" default:"4" help:"Concurrent file limit"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Question to ask about the course materials"`
}

// ChatCmd is the "chat" subcommand.
type ChatCmd struct{}

// CoursesCmd is the "courses" subcommand.
type CoursesCmd struct{}

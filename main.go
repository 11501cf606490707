// ragchat - a terminal client for a local RAG backend.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ragchat-tui/internal/config"
	"github.com/jeranaias/ragchat-tui/internal/ragapi"
	"github.com/jeranaias/ragchat-tui/internal/storage"
	"github.com/jeranaias/ragchat-tui/internal/store"
	"github.com/jeranaias/ragchat-tui/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: ~/.ragchat/config.toml)")
	serverURL := flag.String("server", "", "backend base URL (overrides config)")
	transport := flag.String("transport", "", "query transport: socket, rest, or naive (overrides config)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("ragchat %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	if err := run(*configPath, *serverURL, *transport); err != nil {
		fmt.Fprintln(os.Stderr, "ragchat:", err)
		os.Exit(1)
	}
}

func run(configPath, serverURL, transport string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if serverURL != "" {
		cfg.Server.URL = serverURL
	}
	if transport != "" {
		cfg.Server.Transport = strings.ToLower(transport)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	persister, err := openPersister(cfg)
	if err != nil {
		return err
	}

	st := store.New(persister)
	if st.Count() == 0 {
		st.StartNew()
	}

	client := ragapi.NewClientWithConfig(&ragapi.ClientConfig{
		BaseURL: cfg.Server.URL,
		Timeout: cfg.Timeout(),
	})

	var socket *ragapi.Socket
	if cfg.Server.Transport == config.TransportSocket {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		socket, err = ragapi.Dial(ctx, cfg.Server.URL)
		cancel()
		if err != nil {
			return fmt.Errorf("failed to connect to %s: %w", cfg.Server.URL, err)
		}
	}

	m := chat.New(chat.Options{
		Config: cfg,
		Store:  st,
		Client: client,
		Socket: socket,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

func openPersister(cfg *config.Config) (*storage.ConversationStore, error) {
	if cfg.Storage.Path != "" {
		return storage.NewConversationStoreWithPath(cfg.Storage.Path), nil
	}
	return storage.NewConversationStore()
}

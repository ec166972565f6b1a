// Copyright 2025 The TypeWay Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the dictionary engine server and CLI [DBG] application.

Note: This is a BETA release. APIs and functionality may rapidly change.

TypeWay builds a compressed code trie from xing-ma style dictionary
tables and answers two questions about it: what text a raw keystroke
stream decodes into, and what the cheapest keystroke sequence is that
types a given sentence back. It can operate as a MessagePack IPC server
for integration with editors and input-method frontends, or as a CLI
application for testing and debugging.

Decoding simulates a minimal IME: codes are matched greedily against
the trie, selector keystrokes (space, apostrophe, digits) pick among
candidates, and unknown characters pass through unchanged. Encoding
runs a dynamic program over the sentence to find the fragment sequence
with the fewest keystrokes, inserting disambiguating spaces only where
the decoder would otherwise swallow the next code.

# Usage

Start the server with a schema table:

	typeway -dict dicts/xkjd6.extended.dict.yaml -schema xkjd6

Run an interactive decode session:

	typeway -dict dicts/xkjd6.danzi.dict.yaml -c

Run an interactive encode session with debug logging:

	typeway -dict dicts/xkjd6.extended.dict.yaml -schema xkjd6 -c -mode encode -d

Tables are plain tab-separated text, one word and its code per line;
Rime .dict.yaml files work unchanged since their YAML headers carry no
tabs. With -schema, the import_tables block of the main table pulls in
sub-tables from the same directory.

# Configuration

Runtime configuration is managed through a TOML file holding server
caps, dictionary locations, and CLI defaults:

	[server]
	max_sentence = 512
	max_input = 4096

	[dict]
	path = "dicts/xkjd6.extended.dict.yaml"
	schema = "xkjd6"

	[cli]
	default_mode = "eval"
	show_timing = true

The config file is automatically created with defaults if it doesn't
exist. Flags win over the file; the file wins over built-ins.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Requests
are processed synchronously with microsecond timing information
included in responses.

Decode a keystroke stream:

	{"id": "req1", "op": "eval", "in": "naums "}

Encode a sentence:

	{"id": "req2", "op": "encode", "in": "你好吗"}

The lookup op returns the shortest full code for one word, and the
info op reports loaded table sizes. See pkg/server for the full frame
reference.

# CLI Mode

CLI mode provides an interactive interface for testing dictionaries
before deploying to server mode. Decode mode prints the text a typed
stream produces; encode mode prints the cheapest fragments with
selector spaces made visible, plus the keystroke count.

	inputHandler := cli.NewInputHandler(eng, mode, showTiming)
	err := inputHandler.Start()

# Engine

The core functionality lives in pkg/codetrie and pkg/encode: a radix
trie over code strings with arena storage, a greedy decoder, a reverse
word index, and the shortest-keystroke dynamic program. The engine
package ties them to loaded tables.

	eng := engine.New(entries)
	text := eng.Eval("naums ")
	frags, err := eng.Shortest("你好吗")
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/kagura-dev/typeway/internal/cli"
	"github.com/kagura-dev/typeway/internal/utils"
	"github.com/kagura-dev/typeway/pkg/config"
	"github.com/kagura-dev/typeway/pkg/dictionary"
	"github.com/kagura-dev/typeway/pkg/engine"
	"github.com/kagura-dev/typeway/pkg/server"
)

const (
	Version = "0.4.0-beta"
	AppName = "typeway"
	gh      = "https://github.com/kagura-dev/typeway"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main calls other packages to load tables and run the server or CLI.
// main() does not implement logic for them and only manages the flow.
func main() {
	sigHandler()

	// custom Flags
	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	mode := flag.String("mode", "", "CLI mode: eval (decode keystrokes) or encode (find cheapest keystrokes)")
	dictPath := flag.String("dict", "", "Path to a dictionary table file")
	schema := flag.String("schema", "", "Schema name for resolving import_tables references")
	configPath := flag.String("config", "", "Path to a custom config.toml")

	flag.Parse()

	if *showVersion {
		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportCaller:    false,
			ReportTimestamp: false,
			Prefix:          "",
		})

		styles := log.DefaultStyles()

		styles.Values["version"] = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})

		styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})

		logger.SetStyles(styles)

		logger.Print("")
		logger.Print("[ TypeWay ] Types your sentences the short way!")
		logger.Print("", "version", Version)
		logger.Print("")
		logger.Print("use -h or --help to see available options")
		logger.Print("Github Repo", "gh", gh)

		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	appConfig, activePath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
		os.Exit(1)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(activePath))

	// flags win over the config file
	table := *dictPath
	tableSchema := *schema
	if table == "" {
		table = appConfig.Dict.Path
		if tableSchema == "" {
			tableSchema = appConfig.Dict.Schema
		}
	}

	var entries []dictionary.Entry
	if table == "" {
		log.Warn("No dictionary specified, running with empty table...")
	} else {
		pathResolver, err := utils.NewPathResolver()
		if err != nil {
			log.Fatalf("Failed to initialize path resolver: %v", err)
			os.Exit(1)
		}
		resolved, err := pathResolver.FindDictPath(table)
		if err != nil {
			log.Fatalf("Dictionary table not found: (%s)", table)
			os.Exit(1)
		}
		table = resolved

		if tableSchema != "" {
			entries, err = dictionary.LoadSchema(table, tableSchema)
		} else {
			entries, err = dictionary.LoadFile(table)
		}
		if err != nil {
			log.Fatalf("Failed to load dictionary: %v", err)
			os.Exit(1)
		}
	}

	eng := engine.New(entries)

	// CLI would be mainly used for testing and dbg purposes.
	// Any new features or changes should be tested in CLI mode first.
	if *cliMode {
		log.SetReportTimestamp(false)
		sessionMode := *mode
		if sessionMode == "" {
			sessionMode = appConfig.CLI.DefaultMode
		}
		log.Debug("Session info:",
			"mode", sessionMode,
			"entries", eng.Stats().Entries,
			"showTiming", appConfig.CLI.ShowTiming)

		inputHandler := cli.NewInputHandler(eng, sessionMode, appConfig.CLI.ShowTiming)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
			os.Exit(1)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(eng, appConfig)

	showStartupInfo(table, eng.Stats())

	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(table string, stats engine.Stats) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	if table == "" {
		table = "(none)"
	}

	println("===========")
	println("  TypeWay  ")
	println("===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Infof("table: ( %s )", table)
	log.Infof("entries: %d, words: %d, nodes: %d", stats.Entries, stats.Words, stats.Nodes)
	log.Info("status: ready")
	println("===========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}

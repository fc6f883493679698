// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"graphc/internal/config"
	"graphc/internal/lsp"
)

const lsName = "graphc" // Name identifier for the language server

var (
	version = "0.0.1"        // Server version
	handler protocol.Handler // Protocol handler instance (wired up below)
)

func main() {
	configPath := flag.String("config", "", "path to graphc.hcl")
	flag.Parse()

	cfg, err := config.Resolve(*configPath)
	if err != nil {
		commonlog.Configure(0, nil)
		commonlog.GetLogger("graphc").Critical(err.Error())
		os.Exit(1)
	}

	// Logs go to stderr; stdout carries the protocol
	commonlog.Configure(max(1, cfg.Verbosity), nil)
	log := commonlog.GetLogger("graphc")

	bindings, err := cfg.Bindings()
	if err != nil {
		log.Critical(err.Error())
		os.Exit(1)
	}

	graphHandler := lsp.NewGraphHandler(bindings)

	handler = protocol.Handler{
		Initialize:            graphHandler.Initialize,
		Initialized:           graphHandler.Initialized,
		Shutdown:              graphHandler.Shutdown,
		SetTrace:              graphHandler.SetTrace,
		TextDocumentDidOpen:   graphHandler.TextDocumentDidOpen,
		TextDocumentDidClose:  graphHandler.TextDocumentDidClose,
		TextDocumentDidChange: graphHandler.TextDocumentDidChange,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Infof("starting %s language server %s", lsName, version)

	if err := s.RunStdio(); err != nil {
		log.Errorf("language server stopped: %s", err)
		os.Exit(1)
	}
}

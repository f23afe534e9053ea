// This file is part of https://github.com/racingmars/go3270/
// Copyright 2025 by Matthew R. Wilson, licensed under the MIT license. See
// LICENSE in the project root for license information.

// Command tn3270demo is a small TN3270(E) host server: it accepts
// connections, negotiates the terminal, and drives a one-screen
// transaction loop reporting what was negotiated.
package main

import (
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/bcrandall/tn3270e/config"
	"github.com/bcrandall/tn3270e/host"
)

// logWriter adapts a charmbracelet/log.Logger to the io.Writer shape
// host.Debug expects, so the library's own protocol tracing flows
// through this command's structured logger instead of a bare
// io.Writer.
type logWriter struct{ logger *log.Logger }

func (w logWriter) Write(p []byte) (int, error) {
	w.logger.Debug(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

var welcomeScreen = host.Screen{
	{Row: 0, Col: 28, Intense: true, Content: "TN3270E Demo Host"},

	{Row: 2, Col: 0, Content: "Terminal Type  . . ."},
	{Row: 2, Col: 21, Name: "termtype", Intense: true},

	{Row: 3, Col: 0, Content: "Code page . . . . ."},
	{Row: 3, Col: 21, Name: "codepage", Intense: true},

	{Row: 4, Col: 0, Content: "Logical Unit  . . ."},
	{Row: 4, Col: 21, Name: "luname", Intense: true},

	{Row: 6, Col: 0, Content: "Press"},
	{Row: 6, Col: 6, Content: "PF3", Color: host.Yellow, Intense: true},
	{Row: 6, Col: 10, Content: "to disconnect."},
}

func main() {
	configPath := pflag.StringP("config", "c", "tn3270demo.yaml", "Path to YAML config file.")
	verbose := pflag.BoolP("verbose", "v", false, "Log protocol-level negotiation detail.")
	help := pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - a TN3270(E) demo host server\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS]\n\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	logger := log.New(os.Stderr)
	if *verbose {
		logger.SetLevel(log.DebugLevel)
		host.Debug = logWriter{logger: logger}
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Warn("using built-in defaults", "reason", err)
		cfg = &config.Config{}
		cfg.Server.ListenAddr = ":3270"
	}

	ln, err := net.Listen("tcp", cfg.Server.ListenAddr)
	if err != nil {
		logger.Fatal("listen failed", "addr", cfg.Server.ListenAddr, "err", err)
	}
	logger.Info("listening", "addr", cfg.Server.ListenAddr)

	for {
		conn, err := ln.Accept()
		if err != nil {
			logger.Error("accept failed", "err", err)
			continue
		}
		go handle(conn, logger)
	}
}

func handle(conn net.Conn, logger *log.Logger) {
	defer conn.Close()
	defer host.CloseConn(conn)

	dev, err := host.NegotiateTelnet(conn)
	if err != nil {
		logger.Warn("negotiation failed", "remote", conn.RemoteAddr(), "err", err)
		return
	}
	logger.Info("connected", "remote", conn.RemoteAddr(),
		"terminal", dev.TerminalType(), "lu", dev.LUName(), "extended", dev.Extended())

	if err := host.RunTransactions(conn, dev, welcome, nil); err != nil {
		logger.Info("disconnected", "remote", conn.RemoteAddr(), "err", err)
	}
}

func welcome(conn net.Conn, dev host.DevInfo, data any) (host.Tx, any, error) {
	codepage := "(unknown)"
	if dev.Codepage() != nil {
		codepage = dev.Codepage().ID()
	}
	values := map[string]string{
		"termtype": dev.TerminalType(),
		"codepage": codepage,
		"luname":   dev.LUName(),
	}

	resp, err := host.HandleScreenAlt(welcomeScreen, nil, values, nil,
		[]host.AID{host.AIDPF3}, "", 6, 16, conn, dev)
	if err != nil {
		return nil, nil, err
	}

	switch resp.AID {
	case host.AIDPF3:
		return nil, nil, nil
	default:
		return welcome, nil, nil
	}
}

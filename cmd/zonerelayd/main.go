package main

import (
	"flag"
	"fmt"
	"net"
	"os"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"

	"xdao.co/zonerelay/channel"
	"xdao.co/zonerelay/config"
	"xdao.co/zonerelay/grpcrelay"
	"xdao.co/zonerelay/relay"
)

func main() {
	fs := flag.NewFlagSet("zonerelayd", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config.toml (optional)")
	listen := fs.String("listen", "", "listen address (overrides config)")
	stakingAddr := fs.String("btc-staking-addr", "", "downstream staking contract address (overrides config)")
	printVersion := fs.Bool("protocol-version", false, "print the channel protocol version and exit")

	_ = fs.Parse(os.Args[1:])

	if *printVersion {
		_, _ = fmt.Fprintf(os.Stdout, "%s\n", channel.Version)
		return
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "zonerelayd: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *listen != "" {
		cfg.Listen = *listen
	}
	if *stakingAddr != "" {
		cfg.BtcStakingAddr = *stakingAddr
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "zonerelayd: bad log_level %q: %v\n", cfg.LogLevel, err)
		os.Exit(1)
	}
	log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Str("component", "zonerelayd").Logger()

	// The timestamp collaborator is an external process concern; the daemon
	// runs with the no-op processor until one is wired in.
	endpoint := relay.New(relay.StaticStore{Cfg: cfg.RelayConfig()}, nil)

	lis, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		log.Error().Err(err).Str("listen", cfg.Listen).Msg("listen failed")
		os.Exit(1)
	}

	srv := grpc.NewServer()
	grpcrelay.RegisterRelayServer(srv, &grpcrelay.Server{
		Channels: channel.NewManager(),
		Endpoint: endpoint,
		Log:      log,
	})

	log.Info().
		Str("listen", cfg.Listen).
		Str("protocol_version", channel.Version).
		Bool("staking_routing", cfg.BtcStakingAddr != "").
		Msg("serving")
	if err := srv.Serve(lis); err != nil {
		log.Error().Err(err).Msg("serve failed")
		os.Exit(1)
	}
}

package main

import (
	"bufio"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/miseqsprime/neolith/config"
	"github.com/miseqsprime/neolith/dispatch"
	"github.com/miseqsprime/neolith/interactive"
	"github.com/miseqsprime/neolith/interp"
	"github.com/miseqsprime/neolith/iolayer"
	"github.com/miseqsprime/neolith/logging"
	"github.com/miseqsprime/neolith/users"
)

func newServeCmd() *cobra.Command {
	var configPath, listenTelnet, listenWebsocket, logLevel string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "run the interactive dispatcher against telnet and websocket listeners",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if listenTelnet != "" {
				cfg.ListenTelnet = listenTelnet
			}
			if listenWebsocket != "" {
				cfg.ListenWebsocket = listenWebsocket
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			if err := logging.Configure(cfg.LogLevel, cmd.OutOrStderr()); err != nil {
				return err
			}
			return runServer(*cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file (defaults are used if omitted)")
	cmd.Flags().StringVar(&listenTelnet, "listen", "", "telnet listen address, overrides config")
	cmd.Flags().StringVar(&listenWebsocket, "listen-ws", "", "websocket listen address, overrides config")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level, overrides config")
	return cmd
}

func runServer(cfg config.Config) error {
	log := logging.Logger()
	table := users.NewTable(cfg.MaxUsers)
	gateway := iolayer.NewGateway()
	reference := interp.NewReferenceInterpreter()

	d := dispatch.New(table, reference, gateway, dispatch.Config{
		MaxText:            cfg.MaxText,
		DefaultFailMessage: cfg.DefaultFailMessage,
		StripEscapes:       cfg.StripEscapes,
	})

	accept := func(connType interactive.ConnectionType) iolayer.OnAccept {
		return func(conn iolayer.Conn) {
			ob := newGuestObject()
			ip := interactive.New(ob)
			ip.Connection = connType
			ob.SetInteractive(ip)

			if table.Add(ip) < 0 {
				log.WithField("user", ob.Name()).Warn("user table full, dropping connection")
				_ = conn.Close()
				return
			}
			gateway.Register(ip, conn)
			if r, ok := conn.(io.Reader); ok {
				go pumpInput(ip, r)
			}
		}
	}

	errc := make(chan error, 2)
	go func() {
		errc <- iolayer.ListenTelnet(cfg.ListenTelnet, accept(interactive.Telnet))
	}()
	go func() {
		errc <- iolayer.ListenWebsocket(cfg.ListenWebsocket, "/ws", accept(interactive.WebSocket))
	}()

	ticker := time.NewTicker(cfg.TickInterval)
	defer ticker.Stop()

	log.WithField("telnet", cfg.ListenTelnet).WithField("websocket", cfg.ListenWebsocket).Info("neolithd listening")

	for {
		select {
		case err := <-errc:
			return err
		case <-ticker.C:
			grantTurns(table)
			for d.Tick() {
			}
			log.WithField("load", d.Load.Value()).Debug("tick complete")
		}
	}
}

// grantTurns models the external tick scheduler: every round, each
// connected user is handed one turn token before the dispatcher's scan
// runs.
func grantTurns(table *users.Table) {
	for i := 0; i < table.Size(); i++ {
		if ip := table.At(i); ip != nil {
			ip.SetFlag(interactive.HasCmdTurn, true)
		}
	}
}

// pumpInput copies bytes arriving on conn into the user's input buffer,
// turning CR and LF into the null separators the buffer frames commands
// by, and reconciling CMD_IN_BUF after every read, until the connection
// closes.
func pumpInput(ip *interactive.State, conn io.Reader) {
	r := bufio.NewReader(conn)
	buf := make([]byte, 512)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			for i, c := range buf[:n] {
				if c == '\r' || c == '\n' {
					buf[i] = 0
				}
			}
			if appendErr := ip.Input.Append(buf[:n]); appendErr == nil {
				ip.SetFlag(interactive.CmdInBuf, ip.Input.HasCommand())
			}
		}
		if err != nil {
			return
		}
	}
}

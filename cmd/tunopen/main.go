package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/digineo/tun/tun"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"
)

// packet info header in front of every packet (struct tun_pi on Linux,
// the address family on macOS)
const headerLen = 4

var (
	configFile string
	address    string
	netmask    string
	logLevel   string
	verbose    = false
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "tunopen",
		Short:        "Open a TUN device and log packets routed into it",
		SilenceUsage: true,
		RunE:         run,
	}
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "`PATH` to YAML config file")
	rootCmd.Flags().StringVar(&address, "ip", "", "IPv4 address to assign to the interface")
	rootCmd.Flags().StringVar(&netmask, "netmask", "", "netmask for --ip (default 255.255.255.255)")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "", "log level (overrides config)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", verbose, "log every packet")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	c, err := readConfig(configFile)
	if err != nil {
		return err
	}
	if address != "" {
		c.Address = address
	}
	if netmask != "" {
		c.Netmask = netmask
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return errors.Wrap(err, "invalid log level")
	}
	logrus.SetLevel(level)
	tun.SetLogger(logrus.StandardLogger())

	cfg, err := c.tunConfig()
	if err != nil {
		return err
	}
	m, err := tun.NewManager(cfg)
	if err != nil {
		return err
	}

	r := &reader{buf: make([]byte, 8192), ready: make(chan struct{})}
	tunnel, err := m.Open(r.onReadable)
	if err != nil {
		return err
	}
	r.tunnel = tunnel

	log := logrus.WithFields(logrus.Fields{
		"ifname": tunnel.Name(),
		"fd":     tunnel.Fd(),
	})
	if cfg.Address != "" {
		log = log.WithField("address", fmt.Sprintf("%s/%s", cfg.Address, cfg.Netmask))
	}
	log.Info("ready")
	close(r.ready)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	var watchErr error
	select {
	case sig := <-ch:
		logrus.Infof("[interrupt received] %s", sig)
	case <-tunnel.Watcher().Done():
		watchErr = tunnel.Watcher().Err()
	}

	if err := tunnel.Close(); err != nil {
		log.WithError(err).Error("close failed")
	}
	log.WithField("packets", r.packets).Info("closed")
	return errors.Wrap(watchErr, "watching tunnel failed")
}

// reader drains the device each time it becomes readable.
type reader struct {
	tunnel  *tun.Tunnel
	buf     []byte
	packets uint64
	ready   chan struct{}
}

func (r *reader) onReadable() {
	<-r.ready
	for {
		n, err := unix.Read(r.tunnel.Fd(), r.buf)
		if err != nil {
			if err != unix.EAGAIN && err != unix.EINTR {
				logrus.WithError(err).Error("read failed")
			}
			return
		}
		if n == 0 {
			return
		}
		if n < headerLen {
			continue
		}
		r.packets++
		if verbose {
			logrus.WithField("bytes", n-headerLen).Info("got packet")
		}
	}
}

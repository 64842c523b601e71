package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"os/user"
	"path"
	"strings"

	todoist "github.com/nicolagi/todoist-launcher"
	"github.com/nicolagi/todoist-launcher/internal/host"
	"github.com/nicolagi/todoist-launcher/launcher"
	log "github.com/sirupsen/logrus"
)

var plugin *launcher.Plugin

// acmeHost is the launcher's host with one more token source: a file holding just the token.
type acmeHost struct {
	*host.Host
	tokenFile string
}

func (h *acmeHost) ReadString(key string) (string, bool) {
	if s, ok := h.Host.ReadString(key); ok || key != launcher.KeyAPIToken {
		return s, ok
	}
	token, err := readTokenFile(h.tokenFile)
	if err != nil {
		log.WithFields(log.Fields{
			"path":  h.tokenFile,
			"cause": err,
		}).Debug("No token file")
		return "", false
	}
	return token, token != ""
}

func main() {
	home := mustHomeDir()
	tokenFile := path.Join(home, "lib/todoist/token")
	logFile := path.Join(home, "lib/todoist/launcher.log")
	wireLogFile := path.Join(home, "lib/todoist/wire.log")
	logger := mustCreateLogger(logFile)
	h := mustCreateHost(logger, tokenFile)
	client := mustCreateClient(h, logger, wireLogFile)
	plugin = mustCreatePlugin(h, client, logger)

	newLauncherWindow()

	// The program will be terminated when the last acme window owned by this process is deleted.
	select {}
}

func mustHomeDir() string {
	u, err := user.Current()
	if err != nil {
		log.WithField("cause", err).Fatal("Could not get current user")
	}
	return u.HomeDir
}

func mustCreateLogger(logFile string) *log.Logger {
	if err := os.MkdirAll(path.Dir(logFile), 0700); err != nil {
		log.WithField("cause", err).Fatal("Could not create log directory")
	}
	logger, _, err := host.NewLogger(logFile, os.Getenv("TODOIST_DEBUG") != "")
	if err != nil {
		log.WithField("cause", err).Fatal("Could not create logger")
	}
	return logger
}

func mustCreateHost(logger *log.Logger, tokenFile string) *acmeHost {
	configPath, err := host.DefaultConfigPath()
	if err != nil {
		logger.WithField("cause", err).Fatal("Could not find config directory")
	}
	h, err := host.New(configPath, host.WithLogger(logger))
	if err != nil {
		logger.WithField("cause", err).Fatal("Could not load config")
	}
	return &acmeHost{Host: h, tokenFile: tokenFile}
}

// mustCreateClient logs all Todoist traffic to wireLogFile. The token is set again before every call, so a
// missing one is fine here.
func mustCreateClient(h *acmeHost, logger *log.Logger, wireLogFile string) *todoist.Client {
	token, _ := h.ReadString(launcher.KeyAPIToken)
	c, err := todoist.NewClient(token, todoist.WithWireLog(wireLogFile))
	if err != nil {
		logger.WithField("cause", err).Fatal("Could not create client")
	}
	return c
}

func mustCreatePlugin(h *acmeHost, client *todoist.Client, logger *log.Logger) *launcher.Plugin {
	p, err := launcher.New(h,
		launcher.WithLogger(logger),
		launcher.WithRemote(client),
		launcher.WithSettingsURL("file://"+h.Path()),
	)
	if err != nil {
		logger.WithField("cause", err).Fatal("Could not create plugin")
	}
	if fuzzy, ok := h.ReadBool(host.KeyFuzzy); ok {
		p.SetFuzzyMatching(fuzzy)
	}
	if err := h.Watch(func() {
		if fuzzy, ok := h.ReadBool(host.KeyFuzzy); ok {
			p.SetFuzzyMatching(fuzzy)
		}
		reloadAll()
	}); err != nil {
		logger.WithField("cause", err).Warning("Could not watch config, changes need a restart")
	}
	return p
}

func readTokenFile(tokenFile string) (string, error) {
	fi, err := os.Stat(tokenFile)
	if err != nil {
		return "", err
	}
	if fi.Mode()&0077 != 0 {
		return "", fmt.Errorf("stricter permissions required: got %#o, want %#o", fi.Mode().Perm(), fi.Mode().Perm()&0700)
	}
	b, err := ioutil.ReadFile(tokenFile)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

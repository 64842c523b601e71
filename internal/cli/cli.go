// Package cli implements the todoist-launcher command: the launcher plugin driven from a shell.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	todoist "github.com/nicolagi/todoist-launcher"
	"github.com/nicolagi/todoist-launcher/internal/host"
	"github.com/nicolagi/todoist-launcher/internal/tui"
	"github.com/nicolagi/todoist-launcher/launcher"
	log "github.com/sirupsen/logrus"
)

// Version is set at build time
var Version = "dev"

var (
	errSyncFailed = errors.New("sync failed, see the log for details")
	errNoToken    = errors.New("no API token configured, see 'todoist-launcher token set --help'")
)

// Config holds application configuration
type Config struct {
	ConfigPath string // Defaults to host.DefaultConfigPath
	Verbose    bool
	LogFile    string
	WireLog    string // If set, requests and responses are appended here

	// For tests.
	Endpoint    string
	HostOptions []host.Option
}

// Execute runs the CLI with the given arguments and IO writers, returning the exit code.
func Execute(args []string, stdout, stderr io.Writer, cfg *Config) int {
	root := NewRoot(stdout, stderr, cfg)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

// env is what every subcommand works with, built after flags are parsed.
type env struct {
	log    *log.Logger
	closer io.Closer
	host   *host.Host
	plugin *launcher.Plugin
}

func (e *env) close() {
	if err := e.host.Close(); err != nil {
		e.log.WithField("cause", err).Debug("Could not stop config watcher")
	}
	_ = e.closer.Close()
}

func setup(cfg *Config, stderr io.Writer, fuzzy *bool) (*env, error) {
	logger, closer, err := host.NewLogger(cfg.LogFile, cfg.Verbose)
	if err != nil {
		return nil, err
	}
	if cfg.LogFile == "" {
		logger.SetOutput(stderr)
	}
	path := cfg.ConfigPath
	if path == "" {
		if path, err = host.DefaultConfigPath(); err != nil {
			return nil, err
		}
	}
	h, err := host.New(path, append([]host.Option{host.WithLogger(logger)}, cfg.HostOptions...)...)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}
	var clientOpts []todoist.ClientOption
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, todoist.WithEndpoint(cfg.Endpoint))
	}
	if cfg.WireLog != "" {
		clientOpts = append(clientOpts, todoist.WithWireLog(cfg.WireLog))
	}
	token, _ := h.ReadString(launcher.KeyAPIToken)
	c, err := todoist.NewClient(token, clientOpts...)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}
	p, err := launcher.New(h,
		launcher.WithLogger(logger),
		launcher.WithRemote(c),
		launcher.WithSettingsURL(settingsURL(path)),
	)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}
	if fuzzy != nil {
		p.SetFuzzyMatching(*fuzzy)
	} else if v, ok := h.ReadBool(host.KeyFuzzy); ok {
		p.SetFuzzyMatching(v)
	}
	return &env{log: logger, closer: closer, host: h, plugin: p}, nil
}

// settingsURL points the no-token item at the config file, the only settings page this host has.
func settingsURL(path string) string {
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

// NewRoot creates the root command with injectable IO
func NewRoot(stdout, stderr io.Writer, cfg *Config) *cobra.Command {
	if cfg == nil {
		cfg = &Config{}
	}
	var fuzzy bool
	root := &cobra.Command{
		Use:           "todoist-launcher",
		Short:         "Search, add and complete Todoist tasks",
		Long:          "todoist-launcher runs the Todoist launcher plugin from the command line.\n\n" + launcher.Synopsis,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfg.ConfigPath, "config", cfg.ConfigPath, "config file (default $XDG_CONFIG_HOME/todoist-launcher/config.yaml)")
	root.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "log debug messages")
	root.PersistentFlags().StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "append logs to this file instead of stderr")
	root.PersistentFlags().StringVar(&cfg.WireLog, "wire-log", cfg.WireLog, "append Todoist requests and responses to this file, one JSON object per line")
	root.PersistentFlags().BoolVar(&fuzzy, "fuzzy", false, "match fuzzily (default from the config file's fuzzy key)")

	open := func(cmd *cobra.Command) (*env, error) {
		var override *bool
		if cmd.Flags().Changed("fuzzy") {
			override = &fuzzy
		}
		return setup(cfg, stderr, override)
	}

	root.AddCommand(
		newQueryCmd(stdout, open),
		newRunCmd(stdout, open),
		newSyncCmd(stdout, open),
		newAddCmd(open),
		newSchemaCmd(stdout, open),
		newTokenCmd(stdout, open),
		newTUICmd(cfg, open),
	)
	return root
}

type opener func(cmd *cobra.Command) (*env, error)

// ensureSynced syncs and waits if nothing has been synced yet in this process.
func (e *env) ensureSynced() {
	if !e.plugin.Snapshot().Empty() {
		return
	}
	if e.plugin.Refresh(false) {
		e.plugin.Wait()
	}
}

type itemView struct {
	ID      string   `json:"id" yaml:"id"`
	Text    string   `json:"text" yaml:"text"`
	Subtext string   `json:"subtext,omitempty" yaml:"subtext,omitempty"`
	Actions []string `json:"actions,omitempty" yaml:"actions,omitempty"`
}

func viewOf(item launcher.Item) itemView {
	v := itemView{ID: item.ID, Text: item.Text, Subtext: item.Subtext}
	for _, a := range item.Actions {
		v.Actions = append(v.Actions, a.ID)
	}
	return v
}

func newQueryCmd(stdout io.Writer, open opener) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "query [text]",
		Short: "Show the items the launcher would show",
		Long:  "Run the launcher query pipeline on the text typed after the trigger, e.g., 'today', 'add milk', 'project Work'.",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := open(cmd)
			if err != nil {
				return err
			}
			defer e.close()
			e.ensureSynced()
			items := e.plugin.HandleQuery(strings.Join(args, " "))
			views := make([]itemView, 0, len(items))
			for _, item := range items {
				views = append(views, viewOf(item))
			}
			if asJSON {
				enc := json.NewEncoder(stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(views)
			}
			for _, v := range views {
				_, _ = fmt.Fprintf(stdout, "%s\t%s\t%s\t%s\n", v.ID, v.Text, v.Subtext, strings.Join(v.Actions, ","))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}

func newRunCmd(stdout io.Writer, open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "run <query> <item-id> <action-id>",
		Short: "Run an action of an item",
		Long:  "Run the query, find the item by id among the results and run one of its actions, e.g., 'run today 123 done'.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := open(cmd)
			if err != nil {
				return err
			}
			defer e.close()
			e.ensureSynced()
			query, itemID, actionID := args[0], args[1], args[2]
			for _, item := range e.plugin.HandleQuery(query) {
				if item.ID != itemID {
					continue
				}
				action, ok := item.Action(actionID)
				if !ok {
					return fmt.Errorf("item %q has no action %q", itemID, actionID)
				}
				action.Run()
				e.plugin.Wait()
				_, _ = fmt.Fprintf(stdout, "%s: %s\n", action.Text, item.Text)
				return nil
			}
			return fmt.Errorf("no item %q for query %q", itemID, query)
		},
	}
}

func newSyncCmd(stdout io.Writer, open opener) *cobra.Command {
	var notify bool
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Download all tasks and projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := open(cmd)
			if err != nil {
				return err
			}
			defer e.close()
			before := e.plugin.Snapshot()
			if !e.plugin.Refresh(notify) {
				return errNoToken
			}
			e.plugin.Wait()
			after := e.plugin.Snapshot()
			if after == before {
				return errSyncFailed
			}
			_, _ = fmt.Fprintf(stdout, "Synced %d projects and %d tasks\n", len(after.Projects), len(after.Tasks))
			return nil
		},
	}
	cmd.Flags().BoolVar(&notify, "notify", false, "send a desktop notification when done")
	return cmd
}

func newAddCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text>",
		Short: "Add a task with Todoist's quick-add syntax",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := open(cmd)
			if err != nil {
				return err
			}
			defer e.close()
			if token, _ := e.host.ReadString(launcher.KeyAPIToken); token == "" {
				return errNoToken
			}
			e.plugin.AddTask(strings.Join(args, " "))
			e.plugin.Wait()
			return nil
		},
	}
}

func newSchemaCmd(stdout io.Writer, open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the settings schema as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := open(cmd)
			if err != nil {
				return err
			}
			defer e.close()
			enc := yaml.NewEncoder(stdout)
			enc.SetIndent(2)
			if err := enc.Encode(e.plugin.Settings()); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}

func newTokenCmd(stdout io.Writer, open opener) *cobra.Command {
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the API token",
		Long:  "The API token is read from the config file, then the system keyring, then $" + host.TokenEnv + ".",
	}
	tokenCmd.AddCommand(&cobra.Command{
		Use:   "set <token>",
		Short: "Store the API token in the system keyring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := open(cmd)
			if err != nil {
				return err
			}
			defer e.close()
			if err := e.host.StoreToken(strings.TrimSpace(args[0])); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(stdout, "Token stored in the keyring")
			return nil
		},
	})
	return tokenCmd
}

func newTUICmd(cfg *Config, open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive launcher in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := open(cmd)
			if err != nil {
				return err
			}
			defer e.close()
			if cfg.LogFile == "" {
				e.log.SetOutput(io.Discard)
			}
			if err := e.host.Watch(func() {
				if v, ok := e.host.ReadBool(host.KeyFuzzy); ok && !cmd.Flags().Changed("fuzzy") {
					e.plugin.SetFuzzyMatching(v)
				}
			}); err != nil {
				e.log.WithField("cause", err).Warning("Could not watch config")
			}
			return tui.Run(e.plugin)
		},
	}
}

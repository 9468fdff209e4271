// ABOUTME: Entry point for the callbook MCP server, TUI and CLI
// ABOUTME: Loads configuration, opens the backing store and routes to commands
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/harperreed/callbook/charm"
	"github.com/harperreed/callbook/cli"
	"github.com/harperreed/callbook/config"
	"github.com/harperreed/callbook/store"
	"github.com/harperreed/callbook/tui"
)

const version = "0.1.0"

type command func(st *store.Store, args []string) error

// subcommands maps "<group> <sub>" pairs onto CLI commands.
var subcommands = map[string]map[string]command{
	"contacts": {
		"add":    cli.AddContactCommand,
		"list":   cli.ListContactsCommand,
		"update": cli.UpdateContactCommand,
		"delete": cli.DeleteContactCommand,
		"import": cli.ImportContactsCommand,
	},
	"notes": {
		"add":    cli.AddNoteCommand,
		"list":   cli.ListNotesCommand,
		"update": cli.UpdateNoteCommand,
		"delete": cli.DeleteNoteCommand,
		"move":   cli.MoveNotesCommand,
	},
	"reminders": {
		"add":    cli.AddReminderCommand,
		"list":   cli.ListRemindersCommand,
		"done":   cli.CompleteReminderCommand,
		"delete": cli.DeleteReminderCommand,
	},
	"orders": {
		"add":    cli.AddOrderCommand,
		"list":   cli.ListOrdersCommand,
		"status": cli.OrderStatusCommand,
		"remind": cli.OrderReminderCommand,
	},
	"folders": {
		"list":   cli.ListFoldersCommand,
		"add":    cli.AddFolderCommand,
		"delete": cli.DeleteFolderCommand,
	},
	"viz": {
		"dashboard": cli.VizDashboardCommand,
		"graph":     cli.VizGraphCommand,
	},
}

// commands take the store directly with no subcommand.
var commands = map[string]command{
	"catalogs": cli.CatalogsCommand,
	"tags":     cli.TagsCommand,
	"settings": cli.SettingsCommand,
	"search":   cli.SearchCommand,
	"suggest":  cli.SuggestCommand,
	"stats":    cli.StatsCommand,
	"export":   cli.ExportCommand,
	"import":   cli.ImportCommand,
	"seed":     cli.SeedCommand,
}

func main() {
	showVersion := flag.Bool("version", false, "Show version and exit")
	backend := flag.String("backend", "", "Storage backend: sqlite, charm, badger, redis or memory")
	dataDir := flag.String("data-dir", "", "Data directory (default: ~/.local/share/callbook)")
	logLevel := flag.String("log-level", "", "debug, info, warn or error")
	flag.Usage = printUsage

	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("callbook version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}
	name, rest := args[0], args[1:]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config", "err", err)
	}
	if *backend != "" {
		cfg.Backend = *backend
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	logger := cfg.Logger("callbook")

	// sync init only talks to Google and never touches the store.
	if name == "sync" && len(rest) > 0 && rest[0] == "init" {
		if err := cli.SyncInitCommand(rest[1:]); err != nil {
			logger.Fatal("sync init failed", "err", err)
		}
		return
	}

	b, err := cfg.Open()
	if err != nil {
		logger.Fatal("failed to open storage", "backend", cfg.Backend, "err", err)
	}
	st := store.New(b, store.WithLogger(cfg.Logger("store")))
	if err := st.Init(context.Background()); err != nil {
		logger.Fatal("failed to initialize store", "err", err)
	}

	code := 0
	if err := run(name, rest, st, b, logger); err != nil {
		logger.Error(err)
		code = 1
	}
	_ = st.Close()
	_ = b.Close()
	os.Exit(code)
}

func run(name string, args []string, st *store.Store, b *config.Backend, logger *log.Logger) error {
	switch name {
	case "mcp":
		return cli.MCPCommand(st, version, logger)

	case "tui":
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("tui needs an interactive terminal")
		}
		_, err := tea.NewProgram(tui.NewModel(st), tea.WithAltScreen()).Run()
		return err

	case "sync":
		return runSync(args, st, b)
	}

	if cmd, ok := commands[name]; ok {
		return cmd(st, args)
	}

	group, ok := subcommands[name]
	if !ok {
		fmt.Printf("Unknown command: %s\n\n", name)
		printUsage()
		os.Exit(1)
	}
	if len(args) == 0 {
		fmt.Printf("Error: %s requires a subcommand\n\n", name)
		printUsage()
		os.Exit(1)
	}
	cmd, ok := group[args[0]]
	if !ok {
		fmt.Printf("Unknown %s command: %s\n\n", name, args[0])
		printUsage()
		os.Exit(1)
	}
	return cmd(st, args[1:])
}

func runSync(args []string, st *store.Store, b *config.Backend) error {
	if len(args) == 0 {
		return fmt.Errorf("sync requires a subcommand (init, contacts, status, now, auto, wipe)")
	}
	sub, rest := args[0], args[1:]

	if sub == "contacts" {
		return cli.SyncContactsCommand(st, rest)
	}

	if b.Charm == nil {
		return fmt.Errorf("sync %s needs the charm backend (current: %s)", sub, b.Name)
	}
	switch sub {
	case "status":
		return charm.SyncStatusCommand(b.Charm, rest)
	case "now":
		if err := charm.SyncNowCommand(b.Charm, rest); err != nil {
			return err
		}
		st.InvalidateAll()
		return nil
	case "auto":
		return charm.SetAutoSyncCommand(b.Charm, rest)
	case "wipe":
		if err := charm.SyncWipeCommand(b.Charm, rest); err != nil {
			return err
		}
		st.InvalidateAll()
		return nil
	}
	return fmt.Errorf("unknown sync command: %s", sub)
}

func printUsage() {
	fmt.Printf(`callbook v%s - call notes, reminders and orders for your contacts

USAGE:
  callbook [global flags] <command> [subcommand] [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --backend <name>       sqlite (default), charm, badger, redis or memory
  --data-dir <path>      Data directory (default: ~/.local/share/callbook)
  --log-level <level>    debug, info, warn (default) or error

Configuration is also read from ~/.config/callbook/config.json, a .env file
and CALLBOOK_BACKEND, CALLBOOK_DATA_DIR, CALLBOOK_REDIS_URL, CALLBOOK_LOG_LEVEL.

COMMANDS:
  mcp                    Start MCP server on stdio
  tui                    Browse notes interactively

  contacts add           --name <name> --phone <phone> [--card <ref>]
  contacts list          [--query <text>] [--limit <n>]
  contacts update        [--name] [--phone] <id>
  contacts delete        <id>
  contacts import        <file.json|file.yaml>

  notes add              --contact <id> [--text] [--start] [--end] [--direction]
                         [--status] [--custom-status] [--priority] [--tag]
                         [--category] [--folder]
  notes list             [--group-by none|day|week|month|year|folder]
                         [--query <text>] [--contact <id>]
  notes update           [--text] [--status] [--priority] [--tag] <id>
  notes delete           <id>
  notes move             --folder <id> <note-id>...

  reminders add          --title <text> --due <when> [--contact <id>] [--note <id>]
  reminders list         [--all] [--contact <id>]
  reminders done         [--undo] [--archive] <id>
  reminders delete       <id>

  orders add             --contact <id> --item name:price[:qty]... [--remind-date]
  orders list            [--contact <id>] [--status <status>]
  orders status          <id> <status>
  orders remind          <id>
  catalogs               [--name <name> | --add-to <id>] [--product name:price]...

  folders list|add|delete
  tags                   [--add <tag>] [--remove <tag>]
  settings               [--group-by] [--status] [--priority] [--template]

  search <query>         Search notes
  suggest <partial>      Suggest search completions
  stats                  Reminder and note statistics
  viz dashboard|graph    Terminal dashboard or Graphviz folder graph

  export                 [--format json|yaml] [--output <file>]
  import                 [--confirm] <file>
  seed                   [--contacts <n>] [--notes <n>] [--seed <n>]

SYNC:
  sync init              Authorize Google Contacts access
  sync contacts          Import Google Contacts
  sync status|now|auto|wipe   Charm sync (charm backend only)
`, version)
}

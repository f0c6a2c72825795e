package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Carmen-Shannon/mini-jeu-3d/config"
	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// CLI holds the command line flags shared by both programs. None are required.
type CLI struct {
	Config  []string `help:"YAML file overlaid on the default configuration. Repeatable, last wins." short:"c" type:"path" placeholder:"FILE"`
	Debug   bool     `help:"Whether to enable debug logging."`
	Profile bool     `help:"Log frame rate and memory statistics every second."`
	Watch   bool     `help:"Reload the configuration files when they change."`
	VSync   bool     `help:"Wait for vertical blank before presenting frames." name:"vsync"`
	MSAA    int      `help:"Multisample count, 1 or 4. Defaults to the configuration value." name:"msaa"`
}

// newParser builds the kong parser for the variant.
func newParser(v Variant, cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name(v.Name()),
		kong.Description(v.Title()),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
	}, options...)
	return kong.New(cli, options...)
}

// ParseArgs parses the command line for the variant.
//
// Parameters:
//   - v: the program variant, used for the usage text
//   - args: the arguments without the program name
//
// Returns:
//   - *CLI: the parsed flags
//   - error: error if a flag is unknown or invalid
func ParseArgs(v Variant, args []string) (*CLI, error) {
	cli := &CLI{}
	parser, err := newParser(v, cli)
	if err != nil {
		return nil, err
	}
	if _, err := parser.Parse(args); err != nil {
		return nil, err
	}
	return cli, nil
}

// LoadConfig loads the configuration files named on the command line and applies the flag overrides.
//
// Parameters:
//   - cli: the parsed flags
//
// Returns:
//   - *config.Config: the validated configuration
//   - error: error if a file cannot be loaded or the result is invalid
func LoadConfig(cli *CLI) (*config.Config, error) {
	cfg, err := config.Load(cli.Config...)
	if err != nil {
		return nil, err
	}
	if cli.VSync {
		cfg.Renderer.VSync = true
	}
	if cli.MSAA != 0 {
		cfg.Renderer.MSAA = cli.MSAA
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Main is the shared entry point of both programs.
//
// Parameters:
//   - v: the program variant
//   - args: the arguments without the program name
//
// Returns:
//   - int: the process exit status, 0 on normal exit and 1 on startup failure
func Main(v Variant, args []string) int {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cli := &CLI{}
	parser, err := newParser(v, cli)
	if err != nil {
		log.Error().Err(err).Msg("could not build command line parser")
		return 1
	}
	_, err = parser.Parse(args)
	parser.FatalIfErrorf(err)

	if cli.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Warn().Msg("debug logging enabled")
	}

	cfg, err := LoadConfig(cli)
	if err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = Run(ctx, v, cfg, Options{
		ConfigPaths: cli.Config,
		Profile:     cli.Profile,
		Watch:       cli.Watch,
		VSync:       cli.VSync,
	})
	if err != nil {
		log.Error().Err(err).Msg("startup failed")
		return 1
	}
	return 0
}

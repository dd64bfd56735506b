package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"flipdeck/internal/app"
	"flipdeck/internal/flip"
)

// newRootCmd builds the flipdeck command. run receives the resolved settings.
func newRootCmd(run func(app.Params) error) *cobra.Command {
	v := viper.New()
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "flipdeck [deck.toml]",
		Short: "Flip through a deck of cards in the terminal",
		Long: `flipdeck shows one card at a time and flips to the next on a timer.
Cards come from a TOML deck file; without one a built-in example deck is shown.
Enter pauses or resumes the cycle, space flips to the next card.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := readConfig(v, cfgFile); err != nil {
				return err
			}
			return bindFlags(v, cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := paramsFromFlags(cmd.Flags())
			if err != nil {
				return err
			}
			if len(args) == 1 {
				p.DeckPath = args[0]
			}
			return run(p)
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "settings file (default is $HOME/.flipdeck.toml)")
	flags := cmd.Flags()
	flags.Duration("interval", 0, fmt.Sprintf("time between flips (deck value, else %s)", flip.DefaultInterval))
	flags.Bool("autostart", true, "start cycling immediately")
	flags.Bool("keyboard", true, "enter pauses/resumes, space flips")
	flags.Bool("debug", false, "log every cycler operation")
	flags.String("log-file", "", "debug log path (default in the user cache dir)")

	cmd.AddCommand(newInitCmd())
	return cmd
}

// readConfig loads the optional settings file and FLIPDECK_* environment.
// A missing default settings file is not an error; a missing --config file is.
func readConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigType("toml")
		v.SetConfigName(".flipdeck")
	}
	v.SetEnvPrefix("flipdeck")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read settings: %w", err)
	}
	return nil
}

// bindFlags sets flags from settings/env when they were not given on the
// command line. Explicit flags win.
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	var err error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Changed || f.Name == "config" || !v.IsSet(f.Name) {
			return
		}
		if setErr := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name))); setErr != nil {
			err = fmt.Errorf("setting %s from config: %w", f.Name, setErr)
		}
	})
	return err
}

// paramsFromFlags turns flags into app.Params. Deck overrides are only set
// for flags that were given (directly or through settings).
func paramsFromFlags(flags *pflag.FlagSet) (app.Params, error) {
	var p app.Params
	var err error

	if p.Interval, err = flags.GetDuration("interval"); err != nil {
		return p, err
	}
	if p.Interval < 0 {
		return p, fmt.Errorf("--interval must be positive, got %s", p.Interval)
	}
	if flags.Changed("autostart") {
		v, _ := flags.GetBool("autostart")
		p.AutoStart = &v
	}
	if flags.Changed("keyboard") {
		v, _ := flags.GetBool("keyboard")
		p.Keyboard = &v
	}
	if p.Debug, err = flags.GetBool("debug"); err != nil {
		return p, err
	}
	if p.LogPath, err = flags.GetString("log-file"); err != nil {
		return p, err
	}
	if p.LogPath != "" {
		p.LogPath = filepath.Clean(p.LogPath)
	}
	return p, nil
}

func runApp(p app.Params) error {
	fxApp := app.New(p)
	if err := fxApp.Err(); err != nil {
		return err
	}
	fxApp.Run()
	return nil
}

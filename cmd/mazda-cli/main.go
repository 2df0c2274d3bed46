package main

import (
	"log"
	"os"
	"path"

	"github.com/gavinwade12/carif/car"
	"github.com/gavinwade12/carif/car/mazda"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	portSettingName   string = "port"
	carSettingName    string = "car"
	wiringSettingName string = "wiring"
)

var configFile string
var port string
var carName string
var wiring string
var quiet bool
var verbose bool

func init() {
	cobra.OnInitialize(func() {
		initConfig()
		postInitCommands(rootCmd.Commands())
	})

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.mazda-cli.yaml)")
	rootCmd.PersistentFlags().StringVar(&port, portSettingName, "", "serial port of the telemetry logger. Example: /dev/ttyUSB0")
	rootCmd.PersistentFlags().StringVar(&carName, carSettingName, string(mazda.CX5), "car fingerprint")
	rootCmd.PersistentFlags().StringVar(&wiring, wiringSettingName, string(mazda.WiringStandard), "harness wiring")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "quiet all output except errors")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "provide verbose output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

var rootCmd = &cobra.Command{
	Use:           "mazda-cli",
	Short:         "A CLI for running the Mazda vehicle interface against recorded or live telemetry.",
	SilenceErrors: true,
}

func initConfig() {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			log.Fatalf("finding home directory: %v\n", err)
		}

		viper.AddConfigPath(home)
		viper.SetConfigName(".mazda-cli")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("MAZDA")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok || os.IsNotExist(err) {
			if configFile != "" {
				err = viper.WriteConfigAs(configFile)
			} else {
				err = viper.SafeWriteConfig()
			}
			if err != nil {
				log.Fatalf("creating config file %s: %v\n", path.Base(configFile), err)
			}
		} else {
			log.Fatalf("reading config file: %v\n", err)
		}
	}
}

func postInitCommands(commands []*cobra.Command) {
	for _, cmd := range commands {
		presetRequiredFlags(cmd)
		if cmd.HasSubCommands() {
			postInitCommands(cmd.Commands())
		}
	}
}

// presetRequiredFlags copies values from the config file into flags the user
// didn't set on the command line.
func presetRequiredFlags(cmd *cobra.Command) {
	viper.BindPFlags(cmd.Flags())
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if !f.Changed && viper.IsSet(f.Name) && viper.GetString(f.Name) != "" {
			cmd.Flags().Set(f.Name, viper.GetString(f.Name))
		}
	})
}

func carLogger(cmd *cobra.Command) car.Logger {
	if !verbose {
		return car.NopLogger
	}
	return car.DefaultLogger(cmd.ErrOrStderr())
}

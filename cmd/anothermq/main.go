// Command `anothermq` inspects the configuration of the another-mq broker.
//
// The broker never reports configuration problems: a missing or invalid
// file silently yields the defaults. This tool shows what the broker will
// actually use and why a file was rejected.
//
// Usage:
//
//	anothermq path                       - Print the default configuration file location
//	anothermq show [--config FILE]       - Print the effective configuration
//	anothermq check FILE                 - Validate a configuration file
//	anothermq facilities                 - List the accepted syslog facilities
//
// Examples:
//
//	anothermq show -o yaml
//	anothermq check /etc/another-mq/another-mq.toml
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/lc/anothermq/internal/buildinfo"
	"github.com/lc/anothermq/internal/config"
	"github.com/lc/anothermq/internal/filesys"
	"github.com/lc/anothermq/internal/log"
)

func main() {
	root := &cobra.Command{
		Use:   "anothermq",
		Short: "another-mq configuration tool",
		Long: `anothermq inspects the configuration of the another-mq broker.
The broker falls back to default settings whenever its configuration file is
missing or invalid, without reporting it. Use this tool to find out why.`,
		SilenceUsage: true,
	}

	// ---- version command ----
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("version: %s\n", buildinfo.Version)
			fmt.Printf("commit: %s\n", buildinfo.Commit)
		},
	}

	// ---- path command ----
	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the default configuration file location",
		Long: `Print the location the broker reads its configuration from when no
file is given, and whether a file exists there.

  Windows     %APPDATA%\another-mq\another-mq.toml
  macOS       $(brew --prefix)/etc/another-mq/another-mq.toml
  Linux/Unix  $ANOTHERMQ_HOME/etc/another-mq/another-mq.toml`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			path, err := config.ResolvePath(config.DetectEnvironment())
			if err != nil {
				return err
			}
			fmt.Println(path)

			exists, err := filesys.Exists(filesys.OS(), path)
			switch {
			case err != nil:
				color.Red("cannot access file: %v", err)
			case exists:
				color.Green("file exists")
			default:
				color.Yellow("file does not exist, defaults are in effect")
			}
			return nil
		},
	}

	// ---- show command ----
	var configFile, output string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration the broker would run with. Fields missing from
the file are shown with their defaults. When the file cannot be used at all,
the defaults are shown; run "anothermq check" to see why.`,
		Example: "anothermq show --config ./another-mq.toml -o yaml",
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			return render(cfg, output)
		},
	}
	showCmd.Flags().StringVarP(&configFile, "config", "c", "", "configuration file (default: platform location)")
	showCmd.Flags().StringVarP(&output, "output", "o", "toml", "output format: toml, yaml or table")

	// ---- check command ----
	checkCmd := &cobra.Command{
		Use:     "check FILE",
		Short:   "Validate a configuration file",
		Example: "anothermq check /etc/another-mq/another-mq.toml",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if _, err := config.Parse(data); err != nil {
				errs := multierr.Errors(err)
				color.New(color.FgHiRed, color.Bold).Printf("%s is invalid (%d problems), the broker would use defaults:\n", args[0], len(errs))
				for _, e := range errs {
					color.New(color.FgYellow).Printf("  - %v\n", e)
				}
				return errors.New("invalid configuration")
			}
			color.New(color.FgGreen, color.Bold).Printf("✓ %s is valid\n", args[0])
			return nil
		},
	}

	// ---- facilities command ----
	facilitiesCmd := &cobra.Command{
		Use:   "facilities",
		Short: "List the accepted syslog facilities",
		Long: `List the values accepted by log.syslog.facility. Facility names are
case-sensitive and must be lowercase.`,
		Args: cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Facility", "Code"})
			table.SetHeaderColor(
				tablewriter.Colors{tablewriter.Bold, tablewriter.FgHiCyanColor},
				tablewriter.Colors{tablewriter.Bold, tablewriter.FgHiCyanColor},
			)
			table.SetBorder(false)
			for _, f := range config.SyslogFacilities() {
				table.Append([]string{f.String(), strconv.Itoa(int(log.Facility(f)) >> 3)})
			}
			table.Render()
		},
	}

	root.AddCommand(pathCmd, showCmd, checkCmd, facilitiesCmd, versionCmd)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.FromFile(path), nil
	}
	return config.FromConfigFile()
}

func render(cfg *config.Config, format string) error {
	switch format {
	case "toml":
		out, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(out)
		return err
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	case "table":
		renderTable(cfg)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func renderTable(cfg *config.Config) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Value"})
	table.SetBorder(false)
	table.SetColumnColor(
		tablewriter.Colors{tablewriter.FgHiWhiteColor},
		tablewriter.Colors{tablewriter.FgGreenColor},
	)

	table.Append([]string{"log.level", cfg.Log.Level.String()})
	table.Append([]string{"log.file", optional(cfg.Log.File)})
	if s := cfg.Log.Syslog; s != nil {
		host := "local"
		if s.Host != nil {
			host = s.Host.String()
		}
		port := "default"
		if s.Port != nil {
			port = strconv.Itoa(int(*s.Port))
		}
		table.Append([]string{"log.syslog.host", host})
		table.Append([]string{"log.syslog.port", port})
		table.Append([]string{"log.syslog.protocol", s.Protocol.String()})
		table.Append([]string{"log.syslog.facility", s.Facility.String()})
		table.Append([]string{"log.syslog.process", s.Process})
	} else {
		table.Append([]string{"log.syslog", "N/A"})
	}
	table.Append([]string{"network.hostname", cfg.Network.Hostname.String()})
	table.Append([]string{"network.port", strconv.Itoa(int(cfg.Network.Port))})

	color.New(color.Bold).Println("EFFECTIVE CONFIGURATION:")
	table.Render()
}

func optional(s *string) string {
	if s == nil {
		return "N/A"
	}
	return *s
}

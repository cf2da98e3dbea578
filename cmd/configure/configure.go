// Package configure manages the randplay config file.
package configure

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/randplay/cmd/common"
	"github.com/gigurra/randplay/cmd/common/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var ErrConfigExists = errors.New("config file already exists")

type InitParams struct {
	Path  string `short:"c" optional:"true" help:"Where to write the config file. Defaults to ~/.randplay/config.yaml."`
	Force bool   `short:"f" help:"Overwrite an existing config file."`
}

type ShowParams struct {
	Path string `short:"c" optional:"true" help:"Config file to show. Defaults to ~/.randplay/config.yaml."`
}

func Cmd() *cobra.Command {
	return boa.CmdT[boa.NoParams]{
		Use:   "config",
		Short: "Manage the randplay config file",
		SubCmds: []*cobra.Command{
			initCmd(),
			showCmd(),
			pathCmd(),
		},
	}.ToCobra()
}

func initCmd() *cobra.Command {
	return boa.CmdT[InitParams]{
		Use:         "init",
		Short:       "Write a config file with default values",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *InitParams, cmd *cobra.Command, args []string) {
			if err := Init(params, os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "config init: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

func showCmd() *cobra.Command {
	return boa.CmdT[ShowParams]{
		Use:         "show",
		Short:       "Print the effective config, defaults included",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *ShowParams, cmd *cobra.Command, args []string) {
			if err := Show(params, os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "config show: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

func pathCmd() *cobra.Command {
	return boa.CmdT[boa.NoParams]{
		Use:   "path",
		Short: "Print the default config file location",
		RunFunc: func(_ *boa.NoParams, cmd *cobra.Command, args []string) {
			fmt.Println(config.ConfigPath())
		},
	}.ToCobra()
}

func Init(params *InitParams, stdout io.Writer) error {
	path := params.Path
	if path == "" {
		path = config.ConfigPath()
	}

	if !params.Force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s: %w (use --force to overwrite)", path, ErrConfigExists)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	_, _ = fmt.Fprintf(stdout, "Wrote %s\n", path)
	return nil
}

func Show(params *ShowParams, stdout io.Writer) error {
	cfg, err := config.Load(params.Path)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(stdout)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

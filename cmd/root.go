/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/profile"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/bdelements/DG3D/boundary"
	"github.com/notargets/bdelements/DG3D/mesh"
	"github.com/notargets/bdelements/InputParameters"
	"github.com/notargets/bdelements/pipeline"
	"github.com/notargets/bdelements/utils"
)

// Execute runs the root command on the process arguments and exits nonzero on failure
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes a fresh root command and returns the process exit status
func run(args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errUsage) {
			printUsage(stderr, rootCmd.Name())
		} else {
			printError(stderr, err)
		}
		return 1
	}
	return 0
}

// NewRootCmd builds the bdelements command with its own settings registry
func NewRootCmd() *cobra.Command {
	var (
		cfgFile string
		v       = viper.New()
	)
	rootCmd := &cobra.Command{
		Use:   "bdelements ND fileprefix TS",
		Short: "Determines elements containing nodes with zero velocity",
		Long: `
Flags the tetrahedral elements of a mesh snapshot that touch stationary nodes,

` + description,
		Args:          checkArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v, cfgFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoundaryFlags(cmd, args, v)
		},
	}

	// Everything after ND is positional, so a negative TS is not read as a flag
	rootCmd.Flags().SetInterspersed(false)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.bdelements.yaml)")
	flags.StringP("logLevel", "l", "info", "log level: debug, info, warn, error")
	flags.StringP("byteOrder", "b", "native", "byte order of the binary files: native, little or big")
	flags.StringP("summary", "s", "", "write a YAML run summary to this file")
	flags.String("profile", "", "profile the run: cpu or mem")
	flags.String("profilePath", ".", "directory for profile output")
	for _, name := range []string{"logLevel", "byteOrder", "summary", "profile", "profilePath"} {
		if err := v.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
	return rootCmd
}

// checkArgs enforces the positional contract before any file is touched
func checkArgs(cmd *cobra.Command, args []string) error {
	switch {
	case len(args) < 3:
		return errUsage
	case len(args) > 3:
		return mesh.NewArgumentError("parse arguments",
			errors.New("unsupported number of command line arguments"))
	}
	nd, err := strconv.Atoi(args[0])
	if err != nil {
		return mesh.NewArgumentError("parse arguments", fmt.Errorf("ND %q is not an integer", args[0]))
	}
	return boundary.CheckDimension(nd)
}

// initConfig reads in config file and ENV variables if set
func initConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return err
		}
		v.AddConfigPath(home)
		v.SetConfigName(".bdelements")
	}
	v.SetEnvPrefix("BDELEMENTS")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return mesh.NewIOError("read config", cfgFile, err)
	}
	return nil
}

func parseArgs(args []string) (*InputParameters.RunParameters, error) {
	ip := &InputParameters.RunParameters{FilePrefix: args[1]}
	var err error
	if ip.ND, err = strconv.Atoi(args[0]); err != nil {
		return nil, mesh.NewArgumentError("parse arguments", fmt.Errorf("ND %q is not an integer", args[0]))
	}
	if ip.TimeStep, err = strconv.Atoi(args[2]); err != nil {
		return nil, mesh.NewArgumentError("parse arguments", fmt.Errorf("TS %q is not an integer", args[2]))
	}
	return ip, nil
}

func runBoundaryFlags(cmd *cobra.Command, args []string, v *viper.Viper) error {
	ip, err := parseArgs(args)
	if err != nil {
		return err
	}
	ip.ByteOrder = v.GetString("byteOrder")
	ip.SummaryFile = v.GetString("summary")
	if err = ip.Validate(); err != nil {
		return err
	}

	log, err := utils.NewLogger(cmd.ErrOrStderr(), v.GetString("logLevel"))
	if err != nil {
		return mesh.NewArgumentError("parse log level", err)
	}
	if log.GetLevel() <= zerolog.DebugLevel {
		ip.Print(cmd.ErrOrStderr())
	}

	p, err := startProfile(v.GetString("profile"), v.GetString("profilePath"))
	if err != nil {
		return err
	}
	defer p.Stop()

	_, err = pipeline.Run(ip, log)
	return err
}

type stopper interface{ Stop() }

type noProfile struct{}

func (noProfile) Stop() {}

func startProfile(mode, dir string) (stopper, error) {
	switch mode {
	case "":
		return noProfile{}, nil
	case "cpu":
		return profile.Start(profile.CPUProfile, profile.ProfilePath(dir), profile.Quiet, profile.NoShutdownHook), nil
	case "mem":
		return profile.Start(profile.MemProfile, profile.ProfilePath(dir), profile.Quiet, profile.NoShutdownHook), nil
	}
	return nil, mesh.NewArgumentError("start profile", fmt.Errorf("unknown profile mode %q, want cpu or mem", mode))
}

/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package cmd holds the cobra command tree for tlsbio-relay: flag
// registration, viper-backed configuration loading, and the relay's
// run loop.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	spfcbr "github.com/spf13/cobra"
	spfvpr "github.com/spf13/viper"

	"github.com/nabbar/tlsbio/tlsbio/relayconfig"
)

var (
	cfgFile string
	cfg     = relayconfig.Default()
)

var rootCmd = &spfcbr.Command{
	Use:     "tlsbio-relay",
	Short:   "Relay TCP traffic through a tlsbio.Pipe, printing buffer statistics",
	Version: "0.1.0",
	RunE: func(c *spfcbr.Command, args []string) error {
		return runRelay(cfg, logrusFromLevel(cfg.LogLevel))
	},
}

func init() {
	spfcbr.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: $HOME/.tlsbio-relay.yaml)")
	rootCmd.Flags().String("listen", cfg.ListenAddress, "address to listen on")
	rootCmd.Flags().String("dial", cfg.DialAddress, "upstream address to dial for each accepted connection")
	rootCmd.Flags().Int("max-preserved-capacity", cfg.MaxPreservedCapacity, "outbound backing array capacity the governor trims back to, in bytes (-1 = unbounded, 0 = preserve nothing)")
	rootCmd.Flags().String("log-level", cfg.LogLevel, "logrus level: trace, debug, info, warn, error")

	_ = spfvpr.BindPFlag("listenAddress", rootCmd.Flags().Lookup("listen"))
	_ = spfvpr.BindPFlag("dialAddress", rootCmd.Flags().Lookup("dial"))
	_ = spfvpr.BindPFlag("maxPreservedCapacity", rootCmd.Flags().Lookup("max-preserved-capacity"))
	_ = spfvpr.BindPFlag("logLevel", rootCmd.Flags().Lookup("log-level"))
}

func initConfig() {
	if cfgFile != "" {
		spfvpr.SetConfigFile(cfgFile)
	} else {
		spfvpr.SetConfigName(".tlsbio-relay")
		spfvpr.AddConfigPath("$HOME")
		spfvpr.AddConfigPath(".")
	}

	spfvpr.SetEnvPrefix("TLSBIO_RELAY")
	spfvpr.AutomaticEnv()

	_ = spfvpr.ReadInConfig()
	_ = spfvpr.Unmarshal(cfg)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "tlsbio-relay: invalid configuration:", err)
		os.Exit(1)
	}
}

func logrusFromLevel(level string) *logrus.Entry {
	l := logrus.New()
	if lvl, err := logrus.ParseLevel(strings.ToLower(level)); err == nil {
		l.SetLevel(lvl)
	}
	return logrus.NewEntry(l)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

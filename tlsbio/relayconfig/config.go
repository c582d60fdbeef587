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

// Package relayconfig provides the configuration surface for
// cmd/tlsbio-relay: where to listen, where to dial, and the pipe's
// capacity-governor and logging settings, loadable from file or
// environment via viper and validated with go-playground/validator.
package relayconfig

import (
	"fmt"

	libval "github.com/go-playground/validator/v10"

	liberr "github.com/nabbar/tlsbio/errors"
)

// Config is the relay demo's configuration. Every field carries
// mapstructure/json/yaml/toml tags so it can be decoded from any of
// viper's supported sources.
type Config struct {
	ListenAddress string `mapstructure:"listenAddress" json:"listenAddress" yaml:"listenAddress" toml:"listenAddress" validate:"required,hostname_port"`
	DialAddress   string `mapstructure:"dialAddress" json:"dialAddress" yaml:"dialAddress" toml:"dialAddress" validate:"required,hostname_port"`
	// MaxPreservedCapacity is passed straight through to tlsbio.New: -1
	// (tlsbio.Unbounded) disables trimming, 0 trims to nothing, any other
	// nonnegative value is the preserved capacity bound.
	MaxPreservedCapacity int    `mapstructure:"maxPreservedCapacity" json:"maxPreservedCapacity" yaml:"maxPreservedCapacity" toml:"maxPreservedCapacity" validate:"gte=-1"`
	LogLevel             string `mapstructure:"logLevel" json:"logLevel" yaml:"logLevel" toml:"logLevel" validate:"required,oneof=trace debug info warn error"`
}

// Default returns a Config with conservative defaults: a 64KiB preserved
// outbound capacity and info-level logging. ListenAddress and
// DialAddress are left empty and must be supplied by the caller.
func Default() *Config {
	return &Config{
		MaxPreservedCapacity: 64 * 1024,
		LogLevel:             "info",
	}
}

// Validate reports every field that fails its constraint as a single
// aggregated error, or nil if the configuration is valid.
func (c *Config) Validate() liberr.Error {
	err := ErrorValidatorError.Error(nil)

	if er := libval.New().Struct(c); er != nil {
		if e, ok := er.(*libval.InvalidValidationError); ok {
			err.Add(e)
		}

		if ve, ok := er.(libval.ValidationErrors); ok {
			for _, e := range ve {
				err.Add(fmt.Errorf("config field '%s' is not validated by constraint '%s'", e.StructNamespace(), e.ActualTag()))
			}
		}
	}

	if err.HasParent() {
		return err
	}

	return nil
}

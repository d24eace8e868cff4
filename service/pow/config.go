// Copyright 2021 Optakt Labs OÜ
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package pow

// DefaultConfig is the default configuration for the proof-of-work engine.
var DefaultConfig = Config{
	Difficulty: 4,
}

// Config is the configuration for the proof-of-work engine.
type Config struct {
	Difficulty uint
}

// WithDifficulty sets the number of leading zero hex characters a proof
// digest needs to be valid.
func WithDifficulty(difficulty uint) func(*Config) {
	return func(cfg *Config) {
		cfg.Difficulty = difficulty
	}
}

/*
Copyright 2024 Stefan Prodan

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

package flags

import (
	"fmt"
	"strings"
)

var supportedOutputFormats = []string{"table", "yaml", "json"}

type Output string

func (f *Output) String() string {
	return string(*f)
}

func (f *Output) Set(str string) error {
	for _, format := range supportedOutputFormats {
		if str == format {
			*f = Output(str)
			return nil
		}
	}
	return fmt.Errorf("unsupported output format '%s', must be one of: %s",
		str, strings.Join(supportedOutputFormats, ", "))
}

func (f *Output) Type() string {
	return "output"
}

func (f *Output) Default() string {
	return supportedOutputFormats[0]
}

func (f *Output) Shorthand() string {
	return "o"
}

func (f *Output) Description() string {
	return fmt.Sprintf("The format in which the report is printed, can be '%s'.",
		strings.Join(supportedOutputFormats, "', '"))
}

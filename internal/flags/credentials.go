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

type Credentials string

func (f *Credentials) String() string {
	return string(*f)
}

func (f *Credentials) Set(str string) error {
	if strings.HasPrefix(str, ":") {
		return fmt.Errorf("username is required when a password is set")
	}
	*f = Credentials(str)
	return nil
}

func (f *Credentials) Type() string {
	return "creds"
}

func (f *Credentials) Description() string {
	return "The credentials for the container registry in the format '<username>:<password>' or '<token>'."
}

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
	"net/url"
	"strings"
)

// RegistryURL is the address of the test registry,
// the scheme defaults to https when not specified.
type RegistryURL string

func (f *RegistryURL) String() string {
	return string(*f)
}

func (f *RegistryURL) Set(str string) error {
	str = strings.TrimSpace(str)
	if str == "" {
		*f = ""
		return nil
	}
	if !strings.Contains(str, "://") {
		str = "https://" + str
	}

	u, err := url.Parse(str)
	if err != nil {
		return fmt.Errorf("invalid registry URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported registry URL scheme '%s'", u.Scheme)
	}
	if u.Hostname() == "" {
		return fmt.Errorf("registry URL '%s' has no host", str)
	}

	*f = RegistryURL(u.String())
	return nil
}

// Host returns the host name of the registry without the port.
func (f *RegistryURL) Host() string {
	u, err := url.Parse(string(*f))
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// Insecure returns true if the registry is served over plain HTTP.
func (f *RegistryURL) Insecure() bool {
	return strings.HasPrefix(string(*f), "http://")
}

func (f *RegistryURL) Type() string {
	return "url"
}

func (f *RegistryURL) Description() string {
	return "The URL of the test registry e.g. 'https://registry.example.com:5000', images tagged with the registry host are removed."
}

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

package artifact

import (
	"io"
)

// Client removes the test images from the local Docker cache
// and their tags from the remote registry.
type Client struct {
	docker      ImageAPI
	credentials string
	insecure    bool
}

// Option configures a Client.
type Option func(c *Client)

// WithCredentials sets the registry credentials
// in the format '<username>:<password>' or '<token>'.
func WithCredentials(credentials string) Option {
	return func(c *Client) {
		c.credentials = credentials
	}
}

// WithInsecure allows plain HTTP and self-signed certificates for the registry.
func WithInsecure(insecure bool) Option {
	return func(c *Client) {
		c.insecure = insecure
	}
}

// NewClient returns a Client that manages the local cache through the given Docker API.
func NewClient(docker ImageAPI, opts ...Option) *Client {
	c := &Client{docker: docker}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close releases the Docker API connection.
func (c *Client) Close() error {
	if closer, ok := c.docker.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

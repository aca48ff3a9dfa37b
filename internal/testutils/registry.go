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

package testutils

import (
	"context"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/distribution/distribution/v3/configuration"
	dcontext "github.com/distribution/distribution/v3/context"
	"github.com/distribution/distribution/v3/registry"
	_ "github.com/distribution/distribution/v3/registry/auth/htpasswd"
	_ "github.com/distribution/distribution/v3/registry/storage/driver/inmemory"
	"github.com/phayes/freeport"
	"github.com/sirupsen/logrus"
)

// SetupTestRegistry starts an in-memory registry that accepts manifest
// deletion and returns its address. The registry is stopped on test cleanup.
func (t *WithT) SetupTestRegistry() string {
	t.t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.t.Cleanup(cancel)

	config := &configuration.Configuration{}
	config.Log.AccessLog.Disabled = true
	config.Log.Level = "error"
	port, err := freeport.GetFreePort()
	if err != nil {
		t.t.Fatalf("failed to get free port: %s", err)
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	dcontext.SetDefaultLogger(logrus.NewEntry(logger))
	address := fmt.Sprintf("localhost:%d", port)
	config.HTTP.Addr = fmt.Sprintf("127.0.0.1:%d", port)
	config.HTTP.DrainTimeout = time.Duration(10) * time.Second
	config.Storage = map[string]configuration.Parameters{
		"inmemory": map[string]interface{}{},
		"delete":   map[string]interface{}{"enabled": true},
	}
	dockerRegistry, err := registry.NewRegistry(ctx, config)
	if err != nil {
		t.t.Fatalf("failed to create docker registry: %s", err)
	}

	go dockerRegistry.ListenAndServe()

	if err := waitForListener(config.HTTP.Addr, 5*time.Second); err != nil {
		t.t.Fatalf("docker registry not ready: %s", err)
	}

	return address
}

func waitForListener(addr string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		conn, err := net.DialTimeout("tcp", addr, time.Second)
		if err == nil {
			return conn.Close()
		}
		if time.Now().After(deadline) {
			return err
		}
		time.Sleep(50 * time.Millisecond)
	}
}

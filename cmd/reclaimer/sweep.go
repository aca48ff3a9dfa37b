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

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fluxcd/pkg/ssa"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	apiv1 "github.com/stefanprodan/reclaimer/api/v1alpha1"
	"github.com/stefanprodan/reclaimer/internal/flags"
	"github.com/stefanprodan/reclaimer/internal/logger"
	"github.com/stefanprodan/reclaimer/internal/reclaim"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Delete the resources and images left behind by an integration test run",
	Long: `The sweep command deletes the Services, Deployments, ReplicaSets, Pods,
version-tracking ConfigMaps (labeled 'kind=version') and HorizontalPodAutoscalers
from the target namespace, then removes the cached images tagged for the test registry
from the local Docker daemon and from the registry.
Failures are reported at the end of the sweep, they don't stop the removal of the other items.`,
	Example: `  # Reclaim a test namespace and the images pushed to the test registry
  reclaimer sweep -n dew-test --registry-url=https://registry.test:5000

  # Print what would be removed in YAML format
  reclaimer sweep -n dew-test --registry-url=registry.test --dry-run -o yaml

  # Reclaim the namespace only and wait for the Pods to be finalized
  reclaimer sweep -n dew-test --registry-url=registry.test --skip-images --wait

  # Give up on a single removal after one minute
  reclaimer sweep -n dew-test --registry-url=registry.test --item-timeout=1m

  # Load the settings from a file and fail if anything could not be removed
  reclaimer sweep --config=./sweep.yaml --strict
`,
	RunE: runSweepCmd,
}

type sweepFlags struct {
	config           string
	registryURL      flags.RegistryURL
	creds            flags.Credentials
	registryInsecure bool
	dockerHost       string
	concurrency      int
	itemTimeout      time.Duration
	skipImages       bool
	dryRun           bool
	wait             bool
	strict           bool
	output           flags.Output
}

var sweepArgs sweepFlags

func init() {
	sweepCmd.Flags().StringVar(&sweepArgs.config, "config", "",
		"Path to a SweepConfig YAML file, the flags take precedence over the file values.")
	sweepCmd.Flags().Var(&sweepArgs.registryURL, "registry-url", sweepArgs.registryURL.Description()+
		" Defaults to the '"+registryURLEnvVar+"' env var.")
	sweepCmd.Flags().Var(&sweepArgs.creds, "registry-creds", sweepArgs.creds.Description())
	sweepCmd.Flags().BoolVar(&sweepArgs.registryInsecure, "registry-insecure", false,
		"If true, allows connecting to the registry without TLS or with a self-signed certificate.")
	sweepCmd.Flags().StringVar(&sweepArgs.dockerHost, "docker-host", "",
		"The address of the Docker daemon. (defaults to the 'DOCKER_HOST' env var)")
	sweepCmd.Flags().IntVar(&sweepArgs.concurrency, "concurrency", 1,
		"The number of resources deleted in parallel for each kind.")
	sweepCmd.Flags().DurationVar(&sweepArgs.itemTimeout, "item-timeout", reclaim.DefaultItemTimeout,
		"The length of time to wait for a single resource or image removal.")
	sweepCmd.Flags().BoolVar(&sweepArgs.skipImages, "skip-images", false,
		"If true, the cached images and registry tags are not removed.")
	sweepCmd.Flags().BoolVar(&sweepArgs.dryRun, "dry-run", false,
		"Print the resources and images that would be removed, without removing them.")
	sweepCmd.Flags().BoolVar(&sweepArgs.wait, "wait", false,
		"Wait for the deleted Kubernetes objects to be finalized.")
	sweepCmd.Flags().BoolVar(&sweepArgs.strict, "strict", false,
		"Exit with an error if any resource or image could not be removed.")
	sweepArgs.output = flags.Output(sweepArgs.output.Default())
	sweepCmd.Flags().VarP(&sweepArgs.output, "output", sweepArgs.output.Shorthand(), sweepArgs.output.Description())

	rootCmd.AddCommand(sweepCmd)
}

func runSweepCmd(cmd *cobra.Command, args []string) error {
	cfg, err := sweepConfigFromFlags(cmd)
	if err != nil {
		return err
	}

	var registryURL flags.RegistryURL
	if err := registryURL.Set(cfg.RegistryURL); err != nil {
		return err
	}
	if registryURL.Insecure() {
		cfg.RegistryInsecure = true
	}

	target := apiv1.SweepTarget{
		Namespace:    cfg.Namespace,
		RegistryHost: registryURL.Host(),
	}
	if err := target.Validate(); err != nil {
		return fmt.Errorf("invalid sweep target: %w", err)
	}

	log := loggerSweep(cmd.Context(), target.Namespace, target.RegistryHost, rootArgs.prettyLog)

	resources, err := newResourceClient()
	if err != nil {
		return err
	}

	// The interface stays nil when the image phase is skipped.
	var artifacts reclaim.ArtifactClient
	if !cfg.SkipImages {
		ac, err := newArtifactClient(cfg, sweepArgs.creds.String())
		if err != nil {
			return err
		}
		defer ac.Close()
		artifacts = ac
	}

	coordinator := reclaim.NewCoordinator(resources, artifacts,
		reclaim.WithConcurrency(cfg.Concurrency),
		reclaim.WithItemTimeout(cfg.ItemTimeout.Duration),
		reclaim.WithDryRun(cfg.DryRun),
	)

	ctx, cancel := context.WithTimeout(logr.NewContext(cmd.Context(), log), rootArgs.timeout)
	defer cancel()

	if cfg.DryRun {
		log.Info(logger.ColorizeJoin("reclaiming", logger.DryRunClient))
	} else {
		log.Info("reclaiming")
	}

	report := coordinator.Reclaim(ctx, target)

	for _, ref := range report.Deleted {
		if cfg.DryRun {
			log.Info(logger.ColorizeJoin(ref, ssa.DeletedAction, logger.DryRunClient))
		} else {
			log.Info(logger.ColorizeJoin(ref, ssa.DeletedAction))
		}
	}
	for _, sweepErr := range report.Errors {
		log.Error(nil, logger.ColorizeSweepError(sweepErr))
	}

	if cfg.Wait && !cfg.DryRun && len(report.Deleted) > 0 {
		log.Info(fmt.Sprintf("waiting for %d resource(s) to be finalized...", len(report.Deleted)))
		timeout, err := remainingTimeout(ctx)
		if err != nil {
			return err
		}
		sp := logger.StartSpinner("waiting for termination")
		err = resources.WaitForTermination(report.Deleted, timeout)
		sp.Stop()
		if err != nil {
			return err
		}
		log.Info(logger.ColorizeReady("all resources have been deleted"))
	}

	if err := printReport(cmd.OutOrStdout(), report, sweepArgs.output.String()); err != nil {
		return err
	}

	if report.HasErrors() {
		log.Info(logger.ColorizeWarning(report.Summary()))
	} else {
		log.Info(logger.ColorizeInfo(report.Summary()))
	}

	if cfg.Strict && report.HasErrors() {
		return fmt.Errorf("sweep finished with %d error(s)", len(report.Errors))
	}

	return nil
}

// sweepConfigFromFlags loads the config file, if any,
// and overrides its values with the flags set on the command line.
func sweepConfigFromFlags(cmd *cobra.Command) (*apiv1.SweepConfig, error) {
	cfg, err := loadSweepConfig(sweepArgs.config)
	if err != nil {
		return nil, err
	}

	changed := func(name string) bool {
		return cmd.Flags().Changed(name)
	}

	// The kubeconfig context namespace is never used as a fallback.
	if changed("namespace") {
		cfg.Namespace = *kubeconfigArgs.Namespace
	}
	if cfg.Namespace == "" {
		return nil, errors.New("a namespace is required, set it with --namespace or in the config file")
	}

	switch {
	case changed("registry-url"):
		cfg.RegistryURL = sweepArgs.registryURL.String()
	case cfg.RegistryURL == "":
		cfg.RegistryURL = os.Getenv(registryURLEnvVar)
	}

	if changed("registry-insecure") {
		cfg.RegistryInsecure = sweepArgs.registryInsecure
	}
	if changed("docker-host") {
		cfg.DockerHost = sweepArgs.dockerHost
	}
	if changed("concurrency") {
		cfg.Concurrency = sweepArgs.concurrency
	}
	if changed("item-timeout") {
		cfg.ItemTimeout = metav1.Duration{Duration: sweepArgs.itemTimeout}
	}
	if changed("skip-images") {
		cfg.SkipImages = sweepArgs.skipImages
	}
	if changed("dry-run") {
		cfg.DryRun = sweepArgs.dryRun
	}
	if changed("wait") {
		cfg.Wait = sweepArgs.wait
	}
	if changed("strict") {
		cfg.Strict = sweepArgs.strict
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// remainingTimeout returns the time left until the deadline of ctx,
// so that waiting after the sweep stays within the global timeout.
func remainingTimeout(ctx context.Context) (time.Duration, error) {
	deadline, ok := ctx.Deadline()
	if !ok {
		return rootArgs.timeout, nil
	}
	timeout := time.Until(deadline)
	if timeout <= 0 {
		return 0, fmt.Errorf("timeout exceeded before waiting for termination: %w", context.DeadlineExceeded)
	}
	return timeout, nil
}

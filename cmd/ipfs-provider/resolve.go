package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/common/expfmt"
	"github.com/singnet/ipfs-provider-go/pkg/config"
	"github.com/singnet/ipfs-provider-go/pkg/discovery"
	"github.com/singnet/ipfs-provider-go/pkg/embedded"
	"github.com/singnet/ipfs-provider-go/pkg/httpapi"
	"github.com/singnet/ipfs-provider-go/pkg/metrics"
	"github.com/singnet/ipfs-provider-go/pkg/model"
	"github.com/singnet/ipfs-provider-go/pkg/provider"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// report is the printed form of a discovery result.
type report struct {
	Provider   string `json:"provider"`
	APIAddress string `json:"api_address,omitempty"`
	Endpoint   string `json:"endpoint,omitempty"`
	RepoPath   string `json:"repo_path,omitempty"`
}

func newResolveCmd(v *viper.Viper) *cobra.Command {
	var (
		output      string
		showMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Run discovery and print the winning provider",
		Long: `Run discovery and print the winning provider.

Examples:
  ipfs-provider resolve                                     # injected handle, then local RPC API
  ipfs-provider resolve --provider local-repo,network-api   # read $IPFS_PATH/api first
  ipfs-provider resolve --api /dns4/ipfs.example.org/tcp/443/https
  ipfs-provider resolve --provider embedded-node --offline --profile test`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, run, err := resolve(cmd, v)
			if err != nil {
				return err
			}
			defer release(res)

			if err := printReport(cmd.OutOrStdout(), output, newReport(res)); err != nil {
				return err
			}
			if showMetrics {
				return writeMetrics(cmd.ErrOrStderr(), run.Metrics)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format (text, json)")
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "print probe metrics to stderr")

	return cmd
}

// resolve loads the configuration and runs discovery. A nil result is
// reported as an error.
func resolve(cmd *cobra.Command, v *viper.Viper) (*model.Result, *discovery.Config, error) {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(v, configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	base := provider.Options{LoadNode: embedded.Loader}
	if idTest, _ := cmd.Flags().GetBool("id-test"); idTest {
		base.ConnectivityTest = httpapi.IDTest
	}
	run, err := discovery.FromConfig(cfg, base)
	if err != nil {
		return nil, nil, err
	}
	run.Metrics = metrics.New()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeouts.Resolve)
	defer cancel()

	res, err := discovery.GetIpfs(ctx, run)
	if err != nil {
		return nil, run, fmt.Errorf("discovery interrupted: %w", err)
	}
	if res == nil {
		return nil, run, errors.New("no ipfs provider succeeded")
	}
	return res, run, nil
}

func newReport(res *model.Result) report {
	r := report{Provider: res.Provider.String()}
	if res.APIAddress != nil {
		r.APIAddress = res.APIAddress.String()
	}
	switch h := res.IPFS.(type) {
	case *httpapi.Client:
		r.Endpoint = h.Endpoint().URL()
	case *embedded.Node:
		r.RepoPath = h.RepoPath()
	}
	return r
}

func printReport(w io.Writer, format string, r report) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "text", "":
		fmt.Fprintf(w, "provider: %s\n", r.Provider)
		if r.APIAddress != "" {
			fmt.Fprintf(w, "address:  %s\n", r.APIAddress)
		}
		if r.Endpoint != "" {
			fmt.Fprintf(w, "endpoint: %s\n", r.Endpoint)
		}
		if r.RepoPath != "" {
			fmt.Fprintf(w, "repo:     %s\n", r.RepoPath)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeMetrics(w io.Writer, m *metrics.Metrics) error {
	families, err := m.Registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

// release closes handles the command owns, such as an embedded node.
func release(res *model.Result) {
	c, ok := res.IPFS.(io.Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		zap.L().Warn("failed to close ipfs handle", zap.Error(err))
	}
}

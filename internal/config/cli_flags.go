package config

import "github.com/spf13/cobra"

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all output except errors")
	cmd.PersistentFlags().Bool("json", false, "Log in JSON format")
	cmd.PersistentFlags().String("log-file", "", "Also write logs to a rotating file")
	cmd.PersistentFlags().String("user-agent", "", "Custom user agent string")
}

// RegisterRunFlags registers the flags controlling a harvest run
func RegisterRunFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.Flags().StringP("output-dir", "o", DefaultOutputDir, "Directory for per-page CSV files")
	cmd.Flags().String("catalog-url", DefaultCatalogURL, "Catalog root URL the page map is built from")
	cmd.Flags().StringSlice("pages", nil, "Subset of page labels to harvest (default: all)")
	cmd.Flags().Bool("headless", DefaultHeadless, "Run the browser headless")
	cmd.Flags().String("chrome-path", "", "Path to Chrome/Chromium binary (auto-detected when empty)")
	cmd.Flags().Duration("wait-timeout", DefaultWaitTimeout, "How long to wait for page controls to become clickable")
	cmd.Flags().Duration("click-interval", DefaultClickInterval, "Minimum spacing between load-more clicks")
	cmd.Flags().Duration("nav-timeout", DefaultNavTimeout, "Per-page navigation budget")
	cmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address during the run (e.g. :9090)")
	cmd.Flags().Bool("no-progress", false, "Disable the progress bar")
}

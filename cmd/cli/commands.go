package cli

import (
	"bufio"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/turtacn/apiecho/sdk/go/apiecho"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the service is running",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := client().Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}

func newMetricsCmd() *cobra.Command {
	var grep string
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Scrape /metrics and print the exposition text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := client().Metrics(cmd.Context())
			if err != nil {
				return fmt.Errorf("scrape failed: %w", err)
			}
			out := cmd.OutOrStdout()
			if grep == "" {
				fmt.Fprint(out, text)
				return nil
			}
			sc := bufio.NewScanner(strings.NewReader(text))
			for sc.Scan() {
				if strings.Contains(sc.Text(), grep) {
					fmt.Fprintln(out, sc.Text())
				}
			}
			return sc.Err()
		},
	}
	cmd.Flags().StringVar(&grep, "grep", "", "Only print lines containing this substring")
	return cmd
}

func newSendCmd() *cobra.Command {
	var method, data string
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send one request to /api and print the response",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client().Send(cmd.Context(), strings.ToUpper(method), data)
			if err != nil {
				return fmt.Errorf("request failed: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "status: %d\n", resp.StatusCode)
			fmt.Fprint(out, resp.Body)
			return nil
		},
	}
	cmd.Flags().StringVarP(&method, "method", "X", http.MethodPost, "HTTP method (GET, POST, PUT, DELETE)")
	cmd.Flags().StringVarP(&data, "data", "d", "", "Request body")
	return cmd
}

func newLoadCmd() *cobra.Command {
	var opts apiecho.LoadOptions
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Drive concurrent requests against /api",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Method = strings.ToUpper(opts.Method)
			result, err := client().Load(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("load run failed: %w", err)
			}
			printLoadResult(cmd, result)
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.Method, "method", "X", http.MethodPost, "HTTP method")
	cmd.Flags().StringVarP(&opts.Body, "data", "d", "", "Request body")
	cmd.Flags().IntVarP(&opts.Requests, "requests", "n", 100, "Total number of requests")
	cmd.Flags().IntVarP(&opts.Concurrency, "concurrency", "c", 10, "Requests in flight at once")
	return cmd
}

func printLoadResult(cmd *cobra.Command, r apiecho.LoadResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "requests: %d\n", r.Requests)
	fmt.Fprintf(out, "failures: %d\n", r.Failures)
	fmt.Fprintf(out, "elapsed:  %s\n", r.Elapsed)

	codes := make([]int, 0, len(r.ByStatus))
	for code := range r.ByStatus {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	for _, code := range codes {
		fmt.Fprintf(out, "status %d: %d\n", code, r.ByStatus[code])
	}
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "finledger-cli",
		Short: "FinLedger CLI tool",
		Long:  `A command line interface for interacting with the FinLedger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the FinLedger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Account commands
	accountsCmd := &cobra.Command{
		Use:   "accounts",
		Short: "Account operations",
	}
	accountsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List accounts with balances",
		Run: func(cmd *cobra.Command, args []string) {
			listAccounts()
		},
	})
	rootCmd.AddCommand(accountsCmd)

	// Stats commands
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Reporting operations",
	}
	statsCmd.AddCommand(&cobra.Command{
		Use:   "overview",
		Short: "Show income, expense and profit for the last 30 days",
		Run: func(cmd *cobra.Command, args []string) {
			showOverview()
		},
	})
	rootCmd.AddCommand(statsCmd)

	// Import command
	rootCmd.AddCommand(importCmd())

	// Seed command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Create the default accounts and categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			return seedDefaults()
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import transactions from a CSV export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return importFile(args[0])
		},
	}
}

func listAccounts() {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/accounts/?all=true")
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var accounts []struct {
		Name     string `json:"name"`
		Type     string `json:"type"`
		Balance  string `json:"balance"`
		IsActive bool   `json:"is_active"`
	}
	if err := json.Unmarshal(body, &accounts); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	for _, a := range accounts {
		state := "active"
		if !a.IsActive {
			state = "inactive"
		}
		fmt.Printf("%-20s %-8s %12s  %s\n", truncate(a.Name, 20), a.Type, a.Balance, state)
	}
}

func showOverview() {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/stats/overview")
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var overview map[string]any
	if err := json.Unmarshal(body, &overview); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	printJSON(overview)
}

func importFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	client := &http.Client{Timeout: timeout}
	req, err := http.NewRequest(http.MethodPost, baseURL+"/api/v1/transactions/import", f)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "text/csv")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("import of %s failed (Status: %d): %s", filepath.Base(path), resp.StatusCode, string(body))
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	printJSON(result)
	return nil
}

func seedDefaults() error {
	client := &http.Client{Timeout: timeout}
	for _, path := range []string{"/api/v1/accounts/defaults", "/api/v1/categories/defaults"} {
		resp, err := client.Post(baseURL+path, "application/json", nil)
		if err != nil {
			return err
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("seeding via %s failed (Status: %d): %s", path, resp.StatusCode, string(body))
		}
	}

	fmt.Println("Default accounts and categories created")
	return nil
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to render response: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

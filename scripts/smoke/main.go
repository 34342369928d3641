package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

type check struct {
	Name     string `json:"name"`
	Method   string `json:"method"`
	Path     string `json:"path"`
	Status   int    `json:"status"`
	Critical bool   `json:"critical"`
}

type result struct {
	Check    check
	Status   int
	Passed   bool
	Duration time.Duration
	Err      error
}

// Post-deploy smoke checks against a running registrar API. Non-zero exit
// when any critical check fails.
var defaultChecks = []check{
	{Name: "health", Path: "/health", Status: http.StatusOK, Critical: true},
	{Name: "ready", Path: "/ready", Status: http.StatusOK, Critical: true},
	{Name: "curriculum filters required", Path: "/api/v1/curriculum", Status: http.StatusBadRequest, Critical: true},
	{Name: "curriculum", Path: "/api/v1/curriculum?yearLevel=1st&semester=1st", Status: http.StatusOK, Critical: true},
	{Name: "dashboard", Path: "/api/v1/dashboard/statistics", Status: http.StatusOK, Critical: false},
	{Name: "registrations", Path: "/api/v1/registrations", Status: http.StatusOK, Critical: false},
	{Name: "metrics", Path: "/metrics", Status: http.StatusOK, Critical: false},
}

func main() {
	var (
		base       string
		checksPath string
		timeout    time.Duration
	)

	flag.StringVar(&base, "base", "http://localhost:8080", "API base URL")
	flag.StringVar(&checksPath, "checks", "", "Optional JSON checks file overriding the defaults")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	checks := defaultChecks
	if checksPath != "" {
		loaded, err := loadChecks(checksPath)
		if err != nil {
			log.Fatalf("failed to load checks: %v", err)
		}
		checks = loaded
	}

	client := &http.Client{Timeout: timeout}
	var results []result
	criticalFailures := 0
	for _, c := range checks {
		res := run(client, base, c)
		if !res.Passed && c.Critical {
			criticalFailures++
		}
		results = append(results, res)
	}

	report(results)
	if criticalFailures > 0 {
		fmt.Printf("Critical failures: %d\n", criticalFailures)
		os.Exit(1)
	}
}

func loadChecks(path string) ([]check, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var checks []check
	if err := json.Unmarshal(data, &checks); err != nil {
		return nil, err
	}
	if len(checks) == 0 {
		return nil, fmt.Errorf("no checks defined in %s", path)
	}
	return checks, nil
}

func run(client *http.Client, base string, c check) result {
	res := result{Check: c}

	method := strings.ToUpper(strings.TrimSpace(c.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := c.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	req, err := http.NewRequest(method, strings.TrimRight(base, "/")+path, nil)
	if err != nil {
		res.Err = err
		return res
	}

	start := time.Now()
	resp, err := client.Do(req)
	res.Duration = time.Since(start)
	if err != nil {
		res.Err = err
		return res
	}
	defer resp.Body.Close()

	res.Status = resp.StatusCode
	want := c.Status
	if want == 0 {
		want = http.StatusOK
	}
	res.Passed = resp.StatusCode == want
	if res.Passed && isJSON(resp) {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			res.Err = err
			res.Passed = false
			return res
		}
		// Every JSON endpoint wraps its payload in the shared envelope.
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(body, &envelope); err != nil {
			res.Err = fmt.Errorf("malformed envelope: %w", err)
			res.Passed = false
		}
	}
	return res
}

func isJSON(resp *http.Response) bool {
	return strings.Contains(resp.Header.Get("Content-Type"), "application/json")
}

func report(results []result) {
	fmt.Println("Smoke Report")
	fmt.Println("============")
	for _, res := range results {
		status := "PASS"
		if !res.Passed {
			status = "FAIL"
		}
		fmt.Printf("[%s] %s (%s %s)\n", status, res.Check.Name, res.Check.Method, res.Check.Path)
		fmt.Printf("  Status: %d (want %d) in %s | Critical: %t\n", res.Status, res.Check.Status, res.Duration, res.Check.Critical)
		if res.Err != nil {
			fmt.Printf("  Error: %v\n", res.Err)
		}
	}
}

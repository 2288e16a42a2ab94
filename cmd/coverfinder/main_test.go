package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"coverfinder/internal/config"
	"coverfinder/internal/coverart"
	"coverfinder/internal/fileutil"
	"coverfinder/internal/testsupport"
)

type cliTestEnv struct {
	upstreams  *testsupport.Upstreams
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	upstreams := testsupport.NewUpstreams(t)
	cfg := testsupport.NewConfig(t, append([]testsupport.ConfigOption{testsupport.WithUpstreams(upstreams)}, opts...)...)
	base := testsupport.BaseDir(cfg)
	t.Setenv("HOME", base)
	t.Setenv(config.EnvCatalogBaseURL, "")
	t.Setenv(config.EnvStorefrontBaseURL, "")

	return &cliTestEnv{
		upstreams:  upstreams,
		cfg:        cfg,
		configPath: testsupport.WriteConfig(t, cfg),
		baseDir:    base,
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected %q in output:\n%s", needle, haystack)
	}
}

func TestResolveCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"resolve", "Portal", "2"}, env.configPath)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	requireContains(t, out, "[OK] "+testsupport.Portal2SaveURL)

	out, _, err = runCLI(t, []string{"resolve", "--url-only", "Hades"}, env.configPath)
	if err != nil {
		t.Fatalf("resolve hades: %v", err)
	}
	if want := env.upstreams.HadesLibraryURL() + "\n"; out != want {
		t.Fatalf("unexpected url-only output: %q want %q", out, want)
	}

	out, _, err = runCLI(t, []string{"resolve", "Nothing Here"}, env.configPath)
	if err != nil {
		t.Fatalf("resolve missing: %v", err)
	}
	requireContains(t, out, "no cover found")
}

func TestResolveRejectsBlankTitle(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"resolve", "  "}, env.configPath); err == nil {
		t.Fatal("expected validation error for blank title")
	}
}

func TestSearchCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"search", "--json", "Portal"}, env.configPath)
	if err != nil {
		t.Fatalf("search json: %v", err)
	}
	var results coverart.Results
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("decode search output: %v\n%s", err, out)
	}
	if len(results.Catalog) != 2 || results.Catalog[0].Key != "igdb_71" {
		t.Fatalf("unexpected catalog results: %+v", results.Catalog)
	}
	if results.Storefront == nil {
		t.Fatal("expected non-nil storefront slice")
	}

	out, _, err = runCLI(t, []string{"search", "--limit", "1", "Portal"}, env.configPath)
	if err != nil {
		t.Fatalf("search table: %v", err)
	}
	requireContains(t, out, "igdb_71")
	if strings.Contains(out, "igdb_72") {
		t.Fatalf("expected limit to drop second result:\n%s", out)
	}

	out, _, err = runCLI(t, []string{"search", "Nothing Here"}, env.configPath)
	if err != nil {
		t.Fatalf("search empty: %v", err)
	}
	requireContains(t, out, `No covers found for "Nothing Here"`)
}

func TestBatchCommandWritesOutputFile(t *testing.T) {
	env := setupCLITestEnv(t)
	input := filepath.Join(env.baseDir, "apps.json")
	output := filepath.Join(env.baseDir, "out", "apps.json")
	if err := os.WriteFile(input, []byte(`[{"name":"Portal 2","id":1},{"name":"Nothing Here","image-path":"old.png"},{"cmd":"steam"}]`), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	out, _, err := runCLI(t, []string{"batch", input, "-o", output}, env.configPath)
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	requireContains(t, out, "Updated 1 of 3 records")

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if got := records[0]["image-path"]; got != testsupport.Portal2SaveURL {
		t.Fatalf("unexpected image-path: %v", got)
	}
	if got := records[1]["image-path"]; got != "old.png" {
		t.Fatalf("expected unmatched record untouched, got %v", got)
	}
	if _, ok := records[2]["image-path"]; ok {
		t.Fatalf("expected nameless record untouched: %v", records[2])
	}

	original, err := os.ReadFile(input)
	if err != nil {
		t.Fatalf("read input: %v", err)
	}
	if strings.Contains(string(original), "abcd1234") {
		t.Fatal("input file should not change when --output is given")
	}
}

func TestBatchCommandRewritesYAMLInPlace(t *testing.T) {
	env := setupCLITestEnv(t)
	path := filepath.Join(env.baseDir, "apps.yaml")
	original := "env:\n  PATH: /usr/bin\napps:\n  - name: Hades\n"
	testsupport.WriteFile(t, path, original)

	if _, _, err := runCLI(t, []string{"batch", "--backup", path}, env.configPath); err != nil {
		t.Fatalf("batch: %v", err)
	}
	data := testsupport.ReadFile(t, path)
	requireContains(t, data, "image-path: "+env.upstreams.HadesLibraryURL())
	requireContains(t, data, "PATH: /usr/bin")

	if backup := testsupport.ReadFile(t, path+".bak"); backup != original {
		t.Fatalf("unexpected backup contents: %q", backup)
	}
}

func TestBatchCommandRefusesLockedFile(t *testing.T) {
	env := setupCLITestEnv(t)
	path := filepath.Join(env.baseDir, "apps.json")
	testsupport.WriteFile(t, path, `[{"name":"Portal 2"}]`)

	lock, err := fileutil.TryLock(path)
	if err != nil {
		t.Fatalf("lock: %v", err)
	}
	defer lock.Unlock()

	if _, _, err := runCLI(t, []string{"batch", path}, env.configPath); !errors.Is(err, fileutil.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	if got := testsupport.ReadFile(t, path); strings.Contains(got, "image-path") {
		t.Fatalf("locked file should not be rewritten: %s", got)
	}
}

func TestSteamCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"assets", "1145360"}, env.configPath)
	if err != nil {
		t.Fatalf("assets: %v", err)
	}
	requireContains(t, out, "[OK] "+env.upstreams.HadesLibraryURL())
	requireContains(t, out, "[MISS] "+env.upstreams.CDNBaseURL()+"/1145360/header.jpg")

	if _, _, err := runCLI(t, []string{"assets", "0"}, env.configPath); err == nil {
		t.Fatal("expected invalid app id error")
	}

	out, _, err = runCLI(t, []string{"app", "1145360"}, env.configPath)
	if err != nil {
		t.Fatalf("app: %v", err)
	}
	requireContains(t, out, "Supergiant Games")
	requireContains(t, out, "Action")

	if _, _, err := runCLI(t, []string{"app", "400"}, env.configPath); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestCacheCommands(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithPersistentCache())

	if _, _, err := runCLI(t, []string{"resolve", "Portal 2"}, env.configPath); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	out, _, err := runCLI(t, []string{"cache", "stats"}, env.configPath)
	if err != nil {
		t.Fatalf("cache stats: %v", err)
	}
	requireContains(t, out, "Persistent store: "+env.cfg.Cache.Path)
	if strings.Contains(out, "Responses:        0") {
		t.Fatalf("expected stored responses after resolve:\n%s", out)
	}

	out, _, err = runCLI(t, []string{"cache", "clear"}, env.configPath)
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	requireContains(t, out, "Cleared catalog cache and persistent store")

	out, _, err = runCLI(t, []string{"cache", "stats"}, env.configPath)
	if err != nil {
		t.Fatalf("cache stats after clear: %v", err)
	}
	requireContains(t, out, "Responses:        0")
}

func TestCacheStatsWithoutPersistence(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"cache", "stats"}, env.configPath)
	if err != nil {
		t.Fatalf("cache stats: %v", err)
	}
	requireContains(t, out, "Persistent store: disabled")
	requireContains(t, out, "unbounded")
}

func TestConfigInitAndShow(t *testing.T) {
	env := setupCLITestEnv(t)

	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	out, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected refusal to overwrite existing config")
	}

	out, _, err = runCLI(t, []string{"config", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "# Config path: "+env.configPath)
	requireContains(t, out, env.upstreams.Catalog.URL)
}
